package dataprocessing

import (
	"math"
	"strconv"

	"github.com/matanparker/optimize-poc-v2/pkg/contracts/domain"
)

// Synthetic multipliers standing in for ad platform data.
const (
	ImpressionsPerUnit = 120
	CostRatio          = 0.6
)

// Summarize sums the raw inputs of a metrics record.
func Summarize(t *Table) domain.Totals {
	if t.Len() == 0 {
		return domain.Totals{}
	}

	customers := make(map[string]struct{})
	var totals domain.Totals
	for _, row := range t.Rows {
		totals.TotalQuantity += t.Schema.Quantity(row)
		totals.Revenue += t.Schema.Revenue(row)
		customers[t.Schema.Customer(row)] = struct{}{}
	}
	totals.RowCount = len(t.Rows)
	totals.UniqueCustomers = len(customers)
	return totals
}

// ComputeMetrics derives the KPI record of t. It reads nothing but its
// argument, so equal tables always produce equal records.
//
// An empty table yields the all-zero record. Otherwise cpc and
// conversion_rate are plain divisions: a zero denominator gives a
// non-finite Ratio, which encodes as null.
func ComputeMetrics(t *Table) domain.Metrics {
	if t.Len() == 0 {
		return domain.ZeroMetrics()
	}
	return MetricsFromTotals(Summarize(t))
}

// MetricsFromTotals applies the KPI formulas to precomputed sums.
func MetricsFromTotals(tot domain.Totals) domain.Metrics {
	if tot.RowCount == 0 {
		return domain.ZeroMetrics()
	}

	impressions := int64(math.Floor(tot.TotalQuantity * ImpressionsPerUnit))

	reach := int64(tot.UniqueCustomers)
	if reach == 0 {
		reach = int64(tot.RowCount / 2)
	}
	if reach < 1 {
		reach = 1
	}

	conversions := int64(tot.RowCount)
	cost := tot.Revenue * CostRatio

	roas := 0.0
	if cost > 0 {
		roas = Round(tot.Revenue/cost, 2)
	}

	return domain.Metrics{
		Impressions:    impressions,
		Reach:          reach,
		Frequency:      Round(float64(impressions)/float64(reach), 2),
		Conversions:    conversions,
		Revenue:        Round(tot.Revenue, 2),
		Cost:           Round(cost, 2),
		CPC:            domain.Ratio(Round(cost/float64(conversions), 2)),
		ConversionRate: domain.Ratio(Round(float64(conversions)/float64(impressions), 4)),
		ROAS:           roas,
		Simulated:      true,
	}
}

// Round rounds x to the given number of decimals, halves toward positive
// infinity. Non-finite values pass through.
func Round(x float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Floor(x*p+0.5) / p
}

// FormatNumber renders a metric value for human readable text.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
