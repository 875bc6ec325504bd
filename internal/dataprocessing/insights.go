package dataprocessing

import (
	"sort"

	"github.com/matanparker/optimize-poc-v2/pkg/contracts/domain"
)

// AllCampaigns labels the single scatter point of a table without a
// category column.
const AllCampaigns = "All"

// ComputeScatter returns one cost-per-conversion / conversion-rate point
// per category, sorted by category name. Rows with an empty category are
// plotted as DefaultCategory rather than dropped, matching how the
// recommendation rules bucket them.
func ComputeScatter(t *Table) []domain.ScatterPoint {
	if !t.Schema.Has(FieldCategory) {
		m := ComputeMetrics(t)
		return []domain.ScatterPoint{{
			Campaign:          AllCampaigns,
			CostPerConversion: m.CPC,
			ConversionRate:    m.ConversionRate,
		}}
	}

	groups := PartitionByCategory(t)
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Category < groups[j].Category
	})

	points := make([]domain.ScatterPoint, 0, len(groups))
	for _, g := range groups {
		m := ComputeMetrics(g.Table)
		points = append(points, domain.ScatterPoint{
			Campaign:          g.Category,
			CostPerConversion: m.CPC,
			ConversionRate:    m.ConversionRate,
		})
	}
	return points
}

// ComputePivot sums revenue per region and category. It returns no rows
// unless the table has region, category and revenue columns; rows with an
// empty region or category are skipped.
func ComputePivot(t *Table) []domain.PivotRow {
	rows := []domain.PivotRow{}
	if t.Len() == 0 || !t.Schema.Has(FieldRegion) || !t.Schema.Has(FieldCategory) || !t.Schema.Has(FieldRevenue) {
		return rows
	}

	type key struct{ region, category string }
	sums := make(map[key]float64)
	for _, row := range t.Rows {
		k := key{
			region:   t.Schema.String(row, FieldRegion, ""),
			category: t.Schema.String(row, FieldCategory, ""),
		}
		if k.region == "" || k.category == "" {
			continue
		}
		sums[k] += t.Schema.Revenue(row)
	}

	for k, revenue := range sums {
		rows = append(rows, domain.PivotRow{
			Region:   k.region,
			Category: k.category,
			Revenue:  Round(revenue, 2),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Region != rows[j].Region {
			return rows[i].Region < rows[j].Region
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}
