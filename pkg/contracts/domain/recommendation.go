package domain

// Recommendation actions
const (
	ActionDecreaseBids   = "Decrease Bids"
	ActionIncreaseBudget = "Increase Budget"
)

// Recommendation is a suggested change to a campaign (a product category in
// the demo data).
type Recommendation struct {
	ID          string `json:"id" yaml:"id"`
	Campaign    string `json:"campaign" yaml:"campaign"`
	Action      string `json:"action" yaml:"action"`
	Benefit     string `json:"benefit" yaml:"benefit"`
	Explanation string `json:"explanation" yaml:"explanation"`
	Simulated   bool   `json:"simulated,omitempty" yaml:"-"`
}

// RecommendationList is the payload of the recommendations endpoint.
type RecommendationList struct {
	Items []Recommendation `json:"items"`
}

// AppliedRecommendations acknowledges an apply request. Nothing is changed.
type AppliedRecommendations struct {
	Applied   []string `json:"applied"`
	Simulated bool     `json:"simulated"`
}
