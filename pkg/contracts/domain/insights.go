package domain

// ScatterPoint places one campaign on the cost-per-conversion / conversion
// rate plane.
type ScatterPoint struct {
	Campaign          string `json:"campaign"`
	CostPerConversion Ratio  `json:"cost_per_conversion"`
	ConversionRate    Ratio  `json:"conversion_rate"`
}

// ScatterResponse is the payload of the scatter endpoint.
type ScatterResponse struct {
	Points    []ScatterPoint `json:"points"`
	Simulated bool           `json:"simulated"`
}

// PivotRow is the revenue of one region and category pair.
type PivotRow struct {
	Region   string  `json:"region"`
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
}

// PivotResponse is the payload of the pivot endpoint.
type PivotResponse struct {
	Rows      []PivotRow `json:"rows"`
	Simulated bool       `json:"simulated"`
}
