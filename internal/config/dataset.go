package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/matanparker/optimize-poc-v2/pkg/contracts/domain"
)

// Dataset is the demo content served alongside the CSV figures: accounts,
// canned assistant answers and static recommendation rules. It is loaded
// once at startup and handed to the services that need it.
type Dataset struct {
	Users []domain.User           `yaml:"users"`
	FAQs  []domain.FAQ            `yaml:"faqs"`
	Rules []domain.Recommendation `yaml:"rules"`
}

// Defaults applied to incomplete rules read from a dataset file.
const (
	DefaultRuleCampaign    = "All"
	DefaultRuleAction      = domain.ActionIncreaseBudget
	DefaultRuleBenefit     = "Predicted ROAS +0.05"
	DefaultRuleExplanation = "Rule-based recommendation"
)

// DefaultDataset returns the built-in demo content.
func DefaultDataset() *Dataset {
	return &Dataset{
		Users: []domain.User{
			{Username: "demo", Password: "demo", Name: "Demo User", Email: "demo@example.com"},
		},
		FAQs: []domain.FAQ{
			{
				Question: "What are the top factors driving the highest conversion rates?",
				Answer:   "Top drivers: product category 'Electronics', regions 'Europe' and 'Asia Pacific', and orders with quantity > 5. Increase budget on high CVR segments.",
			},
			{
				Question: "Which campaigns are underperforming against benchmark?",
				Answer:   "Campaigns with CPC > 500 and CVR < 0.01 are below benchmark. Consider decreasing bids or reallocating budget.",
			},
			{
				Question: "Show me the executive summary for the last 14 days",
				Answer:   "Impressions ~1.2M, Reach ~35k, Frequency 3.2, Conversions 1.1k, ROAS 1.6. Top recs: Increase Budget for Electronics, Decrease Bids for General.",
			},
		},
		Rules: []domain.Recommendation{
			{
				ID:          "rule-boost-electronics",
				Campaign:    "Electronics",
				Action:      domain.ActionIncreaseBudget,
				Benefit:     "Predicted ROAS +0.06",
				Explanation: "Electronics category shows strong CVR; increasing budget can scale results.",
			},
			{
				ID:          "rule-trim-general",
				Campaign:    "General",
				Action:      domain.ActionDecreaseBids,
				Benefit:     "Predicted CPA -8%",
				Explanation: "High CPC detected relative to conversions; trim bids to improve efficiency.",
			},
		},
	}
}

// LoadDataset reads a YAML dataset file. An empty path yields the built-in
// dataset. Sections missing from the file keep their built-in content.
func LoadDataset(path string) (*Dataset, error) {
	ds := DefaultDataset()
	if path == "" {
		return ds, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}

	var file Dataset
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}

	if file.Users != nil {
		ds.Users = file.Users
	}
	if file.FAQs != nil {
		ds.FAQs = file.FAQs
	}
	if file.Rules != nil {
		ds.Rules = normalizeRules(file.Rules)
	}

	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	return ds, nil
}

func normalizeRules(rules []domain.Recommendation) []domain.Recommendation {
	out := make([]domain.Recommendation, len(rules))
	for i, r := range rules {
		if r.ID == "" {
			r.ID = fmt.Sprintf("rule-%d", i+1)
		}
		if r.Campaign == "" {
			r.Campaign = DefaultRuleCampaign
		}
		if r.Action == "" {
			r.Action = DefaultRuleAction
		}
		if r.Benefit == "" {
			r.Benefit = DefaultRuleBenefit
		}
		if r.Explanation == "" {
			r.Explanation = DefaultRuleExplanation
		}
		out[i] = r
	}
	return out
}

// Validate checks that every user has a username and every FAQ a question.
func (d *Dataset) Validate() error {
	for i, u := range d.Users {
		if u.Username == "" {
			return fmt.Errorf("user %d has no username", i)
		}
	}
	for i, f := range d.FAQs {
		if f.Question == "" {
			return fmt.Errorf("faq %d has no question", i)
		}
	}
	return nil
}

// FindUser returns the user matching both credentials.
func (d *Dataset) FindUser(username, password string) (domain.User, bool) {
	for _, u := range d.Users {
		if u.Username == username && u.Password == password {
			return u, true
		}
	}
	return domain.User{}, false
}
