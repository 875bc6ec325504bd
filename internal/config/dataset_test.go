package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matanparker/optimize-poc-v2/pkg/contracts/domain"
)

func TestDefaultDataset(t *testing.T) {
	ds := DefaultDataset()

	require.NoError(t, ds.Validate())
	assert.Len(t, ds.Users, 1)
	assert.Len(t, ds.FAQs, 3)
	require.Len(t, ds.Rules, 2)
	assert.Equal(t, "rule-boost-electronics", ds.Rules[0].ID)
	assert.Equal(t, "rule-trim-general", ds.Rules[1].ID)

	user, ok := ds.FindUser("demo", "demo")
	require.True(t, ok)
	assert.Equal(t, "Demo User", user.Name)

	_, ok = ds.FindUser("demo", "wrong")
	assert.False(t, ok)
}

func TestLoadDatasetEmptyPath(t *testing.T) {
	ds, err := LoadDataset("")
	require.NoError(t, err)
	assert.Equal(t, DefaultDataset(), ds)
}

func TestLoadDatasetFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
users:
  - username: alice
    password: secret
    name: Alice
    email: alice@example.com
rules:
  - id: rule-custom
    campaign: Toys
    action: Decrease Bids
    benefit: Predicted CPA -3%
    explanation: Custom rule.
  - campaign: Books
`), 0o644))

	ds, err := LoadDataset(path)
	require.NoError(t, err)

	_, ok := ds.FindUser("demo", "demo")
	assert.False(t, ok, "users section replaced")
	user, ok := ds.FindUser("alice", "secret")
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", user.Email)

	assert.Len(t, ds.FAQs, 3, "faqs section kept from defaults")

	assert.Equal(t, []domain.Recommendation{
		{ID: "rule-custom", Campaign: "Toys", Action: domain.ActionDecreaseBids, Benefit: "Predicted CPA -3%", Explanation: "Custom rule."},
		{ID: "rule-2", Campaign: "Books", Action: DefaultRuleAction, Benefit: DefaultRuleBenefit, Explanation: DefaultRuleExplanation},
	}, ds.Rules)
}

func TestLoadDatasetErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadDataset(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("users: {"), 0o644))
	_, err = LoadDataset(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("faqs:\n  - a: answer without question\n"), 0o644))
	_, err = LoadDataset(invalid)
	assert.Error(t, err)
}
