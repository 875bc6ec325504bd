package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// FixtureNow is the reference time the campaign fixtures are written against.
var FixtureNow = time.Date(2024, time.June, 30, 12, 0, 0, 0, time.UTC)

// Campaign data fixtures shaped like the two bundled CSV exports. Dates are
// relative to FixtureNow so window filtering is deterministic.
const (
	MediumCSV = `order_id,customer_id,product_category,quantity,final_amount,region,order_date
1,c1,Electronics,10,1000,North,2024-06-25
2,c2,Electronics,5,500,South,2024-06-20
3,c1,Books,2,40,North,2024-06-28
4,c3,Books,1,20,East,2024-01-05
5,c4,Toys,3,90,South,not-a-date`

	SmallCSV = `OrderID,Location,ProductCategory,UnitsSold,Revenue,OrderDate
1,Berlin,Garden,4,200,2024-06-29
2,Paris,Garden,1,50,2024-06-01
3,Berlin,Kitchen,2,80,2023-12-31`
)

// WriteFile writes content to dir/name and returns the path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create fixture dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}

// WriteDataset writes both campaign files into a fresh temp directory and
// returns the medium and small paths.
func WriteDataset(t *testing.T, medium, small string) (string, string) {
	t.Helper()

	dir := t.TempDir()
	return WriteFile(t, dir, "demo_data_medium.csv", medium), WriteFile(t, dir, "demo_data_small.csv", small)
}
