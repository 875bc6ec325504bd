// Package shared holds code used across packages that belongs to no single
// layer. Today that is only the testutil subpackage: campaign CSV fixtures
// written to temp directories and a buffering slog handler for asserting on
// log output.
//
//	func TestLoader(t *testing.T) {
//	    medium, small := testutil.WriteDataset(t, testutil.MediumCSV, testutil.SmallCSV)
//	    logger, logs := testutil.NewTestLogger(t)
//	    ...
//	    testutil.AssertLogContains(t, logs, slog.LevelInfo, "demo data loaded")
//	}
package shared
