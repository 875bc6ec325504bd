package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matanparker/optimize-poc-v2/pkg/contracts/domain"
)

func TestPartitionByCategoryFirstSeenOrder(t *testing.T) {
	table := ParseCSV("product_category,quantity\nToys,1\nBooks,1\nToys,2\n,1\nAudio,1")

	groups := PartitionByCategory(table)
	require.Len(t, groups, 4)

	var names []string
	for _, g := range groups {
		names = append(names, g.Category)
	}
	assert.Equal(t, []string{"Toys", "Books", DefaultCategory, "Audio"}, names)
	assert.Equal(t, 2, groups[0].Table.Len())
	assert.Equal(t, table.Schema, groups[0].Table.Schema)
}

func TestPartitionByCategorySmallSchema(t *testing.T) {
	table := ParseCSV("ProductCategory,UnitsSold\nOffice,1\nOffice,1")

	groups := PartitionByCategory(table)
	require.Len(t, groups, 1)
	assert.Equal(t, "Office", groups[0].Category)
}

func TestGenerateRecommendations(t *testing.T) {
	tests := []struct {
		name string
		csv  string
		want []domain.Recommendation
	}{
		{
			name: "moderate cpc and low cvr emits nothing",
			csv:  "product_category,quantity,final_amount\nElectronics,10,1000\nElectronics,5,500",
			want: []domain.Recommendation{},
		},
		{
			name: "high cpc wins over strong cvr",
			csv:  "product_category,quantity,final_amount\nShoes,0.5,1000",
			want: []domain.Recommendation{{
				ID:          "rec-shoes-decrease",
				Campaign:    "Shoes",
				Action:      domain.ActionDecreaseBids,
				Benefit:     "Predicted ROAS +0.08",
				Explanation: "High CPC detected (600). Decreasing bids expected to improve efficiency.",
			}},
		},
		{
			name: "strong cvr",
			csv:  "product_category,quantity,final_amount\nHome  Garden,0.5,100",
			want: []domain.Recommendation{{
				ID:          "rec-home-garden-increase",
				Campaign:    "Home  Garden",
				Action:      domain.ActionIncreaseBudget,
				Benefit:     "Predicted ROAS +0.05",
				Explanation: "Strong CVR (0.0167) detected. Increasing budget can scale results.",
			}},
		},
		{
			name: "category iteration order preserved",
			csv:  "product_category,quantity,final_amount\nB,0.5,1000\nA,0.5,100\nC,10,10",
			want: []domain.Recommendation{
				{
					ID:          "rec-b-decrease",
					Campaign:    "B",
					Action:      domain.ActionDecreaseBids,
					Benefit:     "Predicted ROAS +0.08",
					Explanation: "High CPC detected (600). Decreasing bids expected to improve efficiency.",
				},
				{
					ID:          "rec-a-increase",
					Campaign:    "A",
					Action:      domain.ActionIncreaseBudget,
					Benefit:     "Predicted ROAS +0.05",
					Explanation: "Strong CVR (0.0167) detected. Increasing budget can scale results.",
				},
			},
		},
		{
			name: "empty table",
			csv:  "product_category,quantity,final_amount",
			want: []domain.Recommendation{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateRecommendations(ParseCSV(tt.csv)))
		})
	}
}

func TestClassifyNonFiniteConversionRate(t *testing.T) {
	// zero impressions make conversion_rate +Inf, which still exceeds the threshold
	m := ComputeMetrics(ParseCSV("product_category,quantity,final_amount\nTiny,0.001,10"))

	rec, ok := Classify("Tiny", m)
	require.True(t, ok)
	assert.Equal(t, domain.ActionIncreaseBudget, rec.Action)
	assert.Equal(t, "Strong CVR (Infinity) detected. Increasing budget can scale results.", rec.Explanation)
}

func TestMergeRecommendations(t *testing.T) {
	generated := []domain.Recommendation{
		{ID: "rec-a-increase", Campaign: "A"},
		{ID: "rec-b-decrease", Campaign: "B"},
	}
	static := []domain.Recommendation{
		{ID: "rule-boost-electronics", Campaign: "Electronics"},
		{ID: "rec-a-increase", Campaign: "duplicate"},
		{ID: "rule-trim-general", Campaign: "General"},
	}

	tests := []struct {
		name  string
		limit int
		ids   []string
	}{
		{name: "limit one takes the front", limit: 1, ids: []string{"rec-a-increase"}},
		{name: "crosses into static", limit: 3, ids: []string{"rec-a-increase", "rec-b-decrease", "rule-boost-electronics"}},
		{name: "duplicate id dropped", limit: 10, ids: []string{"rec-a-increase", "rec-b-decrease", "rule-boost-electronics", "rule-trim-general"}},
		{name: "zero", limit: 0, ids: []string{}},
		{name: "negative treated as zero", limit: -5, ids: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged := MergeRecommendations(generated, static, tt.limit)

			ids := []string{}
			for _, rec := range merged {
				ids = append(ids, rec.ID)
				assert.True(t, rec.Simulated)
			}
			assert.Equal(t, tt.ids, ids)
		})
	}

	// inputs untouched
	assert.False(t, generated[0].Simulated)
	assert.False(t, static[0].Simulated)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "electronics", Slug("Electronics"))
	assert.Equal(t, "home-garden", Slug("Home \t Garden"))
	assert.Equal(t, "unknown", Slug(DefaultCategory))
}
