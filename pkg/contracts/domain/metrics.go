package domain

import (
	"encoding/json"
	"math"
)

// Metrics is the campaign KPI record shown on the dashboard. Every value is
// derived from order rows; none of it is measured ad-platform data.
type Metrics struct {
	Impressions    int64   `json:"impressions"`
	Reach          int64   `json:"reach"`
	Frequency      float64 `json:"frequency"`
	Conversions    int64   `json:"conversions"`
	Revenue        float64 `json:"revenue"`
	Cost           float64 `json:"cost"`
	CPC            Ratio   `json:"cpc"`
	ConversionRate Ratio   `json:"conversion_rate"`
	ROAS           float64 `json:"roas"`
	Simulated      bool    `json:"simulated"`
}

// ZeroMetrics is the record reported for an empty row set.
func ZeroMetrics() Metrics {
	return Metrics{Simulated: true}
}

// Ratio is a quotient that may be non-finite. It encodes as JSON null when
// the division had no defined result.
type Ratio float64

// IsFinite reports whether the ratio holds a real number.
func (r Ratio) IsFinite() bool {
	f := float64(r)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// MarshalJSON implements json.Marshaler
func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.IsFinite() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(r))
}

// UnmarshalJSON implements json.Unmarshaler; null decodes to NaN.
func (r *Ratio) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = Ratio(math.NaN())
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*r = Ratio(f)
	return nil
}

// Totals holds the raw sums a Metrics record is derived from.
type Totals struct {
	RowCount        int     `json:"row_count"`
	TotalQuantity   float64 `json:"total_quantity"`
	Revenue         float64 `json:"revenue"`
	UniqueCustomers int     `json:"unique_customers"`
}
