package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matanparker/optimize-poc-v2/pkg/contracts/domain"
)

func TestComputeScatter(t *testing.T) {
	table := ParseCSV("product_category,quantity,final_amount\nToys,0.5,1000\nBooks,10,1000\nBooks,5,500")

	points := ComputeScatter(table)
	require.Len(t, points, 2)

	assert.Equal(t, domain.ScatterPoint{Campaign: "Books", CostPerConversion: 450, ConversionRate: 0.0011}, points[0])
	assert.Equal(t, domain.ScatterPoint{Campaign: "Toys", CostPerConversion: 600, ConversionRate: 0.0167}, points[1])
}

func TestComputeScatterEmptyCategoryIsUnknown(t *testing.T) {
	table := ParseCSV("product_category,quantity,final_amount\nBooks,10,1000\n,5,500\nZines,1,10")

	points := ComputeScatter(table)
	require.Len(t, points, 3)

	assert.Equal(t, "Books", points[0].Campaign)
	assert.Equal(t, DefaultCategory, points[1].Campaign)
	assert.Equal(t, "Zines", points[2].Campaign)
	assert.Equal(t, ComputeScatter(ParseCSV("product_category,quantity,final_amount\nUnknown,5,500"))[0], points[1])
}

func TestComputeScatterWithoutCategory(t *testing.T) {
	table := ParseCSV("quantity,final_amount\n10,1000\n5,500")

	points := ComputeScatter(table)
	require.Len(t, points, 1)
	assert.Equal(t, AllCampaigns, points[0].Campaign)
	assert.Equal(t, domain.Ratio(450), points[0].CostPerConversion)
}

func TestComputePivot(t *testing.T) {
	table := ParseCSV(`region,product_category,final_amount
West,Toys,10.5
East,Toys,3
West,Books,1
West,Toys,4.25
,Toys,100
East,,100`)

	rows := ComputePivot(table)
	assert.Equal(t, []domain.PivotRow{
		{Region: "East", Category: "Toys", Revenue: 3},
		{Region: "West", Category: "Books", Revenue: 1},
		{Region: "West", Category: "Toys", Revenue: 14.75},
	}, rows)
}

func TestComputePivotSmallSchema(t *testing.T) {
	table := ParseCSV("Location,ProductCategory,Revenue\nParis,Office,20\nParis,Office,30")

	rows := ComputePivot(table)
	assert.Equal(t, []domain.PivotRow{{Region: "Paris", Category: "Office", Revenue: 50}}, rows)
}

func TestComputePivotMissingColumns(t *testing.T) {
	assert.Empty(t, ComputePivot(ParseCSV("region,final_amount\nWest,10")))
	assert.Empty(t, ComputePivot(ParseCSV("product_category,final_amount\nToys,10")))
	assert.Empty(t, ComputePivot(ParseCSV("region,product_category\nWest,Toys")))
	assert.NotNil(t, ComputePivot(EmptyTable()))
}
