// Package dataprocessing turns the bundled order CSV files into the demo
// dashboard's campaign figures.
//
// # Pipeline
//
//	CSV text → ParseCSV → Table → FilterByWindow → ComputeMetrics
//	                                            → GenerateRecommendations → MergeRecommendations
//	                                            → ComputeScatter / ComputePivot
//
// Every stage except Loader is a pure function of its arguments. The
// Loader re-reads both files on each call and degrades to empty tables
// when either is unreadable.
//
// # Schema
//
// The two demo files name the same concepts differently (quantity vs
// UnitsSold, final_amount vs Revenue). FieldAliases lists the candidate
// columns of each logical field; ResolveSchema narrows them to the columns
// present in a header once per parse, and the Schema accessors do the
// per-row lookup.
//
// # Known edge cases
//
// The window filter falls back to the full table when no row is inside the
// window. cpc and conversion_rate are not guarded against a zero
// denominator; the non-finite result is carried in domain.Ratio and
// encoded as JSON null.
//
// Quoted fields containing commas are not supported: the comma always
// splits.
package dataprocessing
