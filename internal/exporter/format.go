package exporter

import (
	"strconv"

	"github.com/matanparker/optimize-poc-v2/pkg/contracts/domain"
)

// MetricsColumns is the header of the metrics sheet and CSV, in payload order.
var MetricsColumns = []string{
	"impressions", "reach", "frequency", "conversions", "revenue",
	"cost", "cpc", "conversion_rate", "roas", "simulated",
}

// RecommendationColumns is the header of the recommendations sheet and CSV.
var RecommendationColumns = []string{"id", "campaign", "action", "benefit", "explanation", "simulated"}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

func formatBool(b bool) string {
	return strconv.FormatBool(b)
}

// formatRatio leaves undefined ratios blank.
func formatRatio(r domain.Ratio) string {
	if !r.IsFinite() {
		return ""
	}
	return formatFloat(float64(r))
}

// ratioCell is the spreadsheet value of r; nil leaves the cell empty.
func ratioCell(r domain.Ratio) interface{} {
	if !r.IsFinite() {
		return nil
	}
	return float64(r)
}

func metricsRecord(m domain.Metrics) []string {
	return []string{
		formatInt(m.Impressions),
		formatInt(m.Reach),
		formatFloat(m.Frequency),
		formatInt(m.Conversions),
		formatFloat(m.Revenue),
		formatFloat(m.Cost),
		formatRatio(m.CPC),
		formatRatio(m.ConversionRate),
		formatFloat(m.ROAS),
		formatBool(m.Simulated),
	}
}

func metricsCells(m domain.Metrics) []interface{} {
	return []interface{}{
		m.Impressions,
		m.Reach,
		m.Frequency,
		m.Conversions,
		m.Revenue,
		m.Cost,
		ratioCell(m.CPC),
		ratioCell(m.ConversionRate),
		m.ROAS,
		m.Simulated,
	}
}

func recommendationRecord(r domain.Recommendation) []string {
	return []string{r.ID, r.Campaign, r.Action, r.Benefit, r.Explanation, formatBool(r.Simulated)}
}

func recommendationCells(r domain.Recommendation) []interface{} {
	return []interface{}{r.ID, r.Campaign, r.Action, r.Benefit, r.Explanation, r.Simulated}
}
