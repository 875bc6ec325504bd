// Package exporter writes the campaign report in downloadable formats.
//
// Presentation builds the XLSX workbook served by the export endpoint: a
// "Metrics" sheet with one KPI row and a "Recommendations" sheet with one
// row per recommendation. CSVWriter produces the same tables as CSV files
// for the metrics-report command.
//
// Example usage:
//
//	var buf bytes.Buffer
//	err := exporter.WritePresentation(&buf, metrics, recommendations)
//
//	w := exporter.NewCSVWriter(outDir, logger)
//	err = w.WriteRecommendations("recommendations.csv", recommendations)
package exporter
