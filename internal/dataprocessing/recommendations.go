package dataprocessing

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/matanparker/optimize-poc-v2/pkg/contracts/domain"
)

// Classification thresholds, checked in this order.
const (
	HighCPCThreshold            = 500.0
	StrongConversionRateMinimum = 0.01
)

// DefaultRecommendationLimit bounds the merged list when the caller gives
// no limit.
const DefaultRecommendationLimit = 10

// CategoryGroup is the subset of a table sharing one category value.
type CategoryGroup struct {
	Category string
	Table    *Table
}

// PartitionByCategory groups rows by category in order of first
// appearance.
func PartitionByCategory(t *Table) []CategoryGroup {
	if t.Len() == 0 {
		return nil
	}

	index := make(map[string]int)
	var groups []CategoryGroup
	for _, row := range t.Rows {
		cat := t.Schema.Category(row)
		i, ok := index[cat]
		if !ok {
			i = len(groups)
			index[cat] = i
			groups = append(groups, CategoryGroup{Category: cat, Table: t.WithRows(nil)})
		}
		groups[i].Table.Rows = append(groups[i].Table.Rows, row)
	}
	return groups
}

// Classify returns the recommendation for one category's metrics, or false
// when neither rule fires.
func Classify(category string, m domain.Metrics) (domain.Recommendation, bool) {
	slug := Slug(category)
	switch {
	case float64(m.CPC) > HighCPCThreshold:
		return domain.Recommendation{
			ID:          fmt.Sprintf("rec-%s-decrease", slug),
			Campaign:    category,
			Action:      domain.ActionDecreaseBids,
			Benefit:     "Predicted ROAS +0.08",
			Explanation: fmt.Sprintf("High CPC detected (%s). Decreasing bids expected to improve efficiency.", FormatNumber(float64(m.CPC))),
		}, true
	case float64(m.ConversionRate) > StrongConversionRateMinimum:
		return domain.Recommendation{
			ID:          fmt.Sprintf("rec-%s-increase", slug),
			Campaign:    category,
			Action:      domain.ActionIncreaseBudget,
			Benefit:     "Predicted ROAS +0.05",
			Explanation: fmt.Sprintf("Strong CVR (%s) detected. Increasing budget can scale results.", FormatNumber(float64(m.ConversionRate))),
		}, true
	}
	return domain.Recommendation{}, false
}

// GenerateRecommendations classifies every category of t. Categories
// matching no rule are left out.
func GenerateRecommendations(t *Table) []domain.Recommendation {
	recs := []domain.Recommendation{}
	for _, g := range PartitionByCategory(t) {
		if rec, ok := Classify(g.Category, ComputeMetrics(g.Table)); ok {
			recs = append(recs, rec)
		}
	}
	return recs
}

// MergeRecommendations appends static after generated, drops repeated ids
// keeping the first, truncates to limit and marks every item simulated.
// A negative limit is treated as zero.
func MergeRecommendations(generated, static []domain.Recommendation, limit int) []domain.Recommendation {
	if limit < 0 {
		limit = 0
	}

	seen := make(map[string]struct{}, len(generated)+len(static))
	out := make([]domain.Recommendation, 0, min(limit, len(generated)+len(static)))
	for _, list := range [][]domain.Recommendation{generated, static} {
		for _, rec := range list {
			if len(out) == limit {
				return out
			}
			if _, dup := seen[rec.ID]; dup {
				continue
			}
			seen[rec.ID] = struct{}{}
			rec.Simulated = true
			out = append(out, rec)
		}
	}
	return out
}

var whitespace = regexp.MustCompile(`\s+`)

// Slug lowercases name and replaces each whitespace run with a hyphen.
func Slug(name string) string {
	return whitespace.ReplaceAllString(strings.ToLower(name), "-")
}
