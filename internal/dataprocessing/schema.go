package dataprocessing

import (
	"math"
	"strconv"
	"strings"
)

// Field is a logical column the pipeline reads. Each field maps to an
// ordered list of physical column names because the two demo files use
// different headers for the same concept.
type Field int

const (
	FieldQuantity Field = iota
	FieldRevenue
	FieldCustomer
	FieldCategory
	FieldRegion
	FieldOrderDate
	fieldCount
)

var fieldNames = [fieldCount]string{
	FieldQuantity:  "quantity",
	FieldRevenue:   "revenue",
	FieldCustomer:  "customer",
	FieldCategory:  "category",
	FieldRegion:    "region",
	FieldOrderDate: "order_date",
}

// String returns the logical field name.
func (f Field) String() string {
	if f < 0 || f >= fieldCount {
		return "unknown"
	}
	return fieldNames[f]
}

// FieldAliases lists, per logical field, the physical column names in
// lookup priority order.
var FieldAliases = [fieldCount][]string{
	FieldQuantity:  {"quantity", "UnitsSold"},
	FieldRevenue:   {"final_amount", "Revenue"},
	FieldCustomer:  {"customer_id", "Location"},
	FieldCategory:  {"product_category", "ProductCategory"},
	FieldRegion:    {"region", "Location"},
	FieldOrderDate: {"order_date", "OrderDate"},
}

// Numeric defaults used when no alias yields a usable number.
const (
	DefaultQuantity = 1.0
	DefaultRevenue  = 0.0
)

// DefaultCategory is the partition key for rows without a category value.
const DefaultCategory = "Unknown"

// Schema is the set of aliases actually present in a header, resolved once
// per parse.
type Schema struct {
	columns [fieldCount][]string
}

// ResolveSchema keeps, for every field, the aliases that appear in columns,
// preserving alias priority.
func ResolveSchema(columns []string) Schema {
	present := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		present[c] = struct{}{}
	}

	var s Schema
	for f := Field(0); f < fieldCount; f++ {
		for _, alias := range FieldAliases[f] {
			if _, ok := present[alias]; ok {
				s.columns[f] = append(s.columns[f], alias)
			}
		}
	}
	return s
}

// Has reports whether any alias of f is present.
func (s Schema) Has(f Field) bool {
	return len(s.columns[f]) > 0
}

// Column returns the highest priority alias of f present in the header.
func (s Schema) Column(f Field) (string, bool) {
	if !s.Has(f) {
		return "", false
	}
	return s.columns[f][0], true
}

// Columns returns the resolved aliases of f.
func (s Schema) Columns(f Field) []string {
	return s.columns[f]
}

// Number returns the first alias value of f whose leading number is finite
// and non-zero, or def. Trailing text is ignored, so "10 units" is 10 and
// "12.5%" is 12.5. Zero counts as absent so that a row with quantity "0"
// still falls through to the next alias and then the default.
func (s Schema) Number(row Row, f Field, def float64) float64 {
	for _, col := range s.columns[f] {
		v, ok := leadingFloat(row[col])
		if !ok || v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		return v
	}
	return def
}

// leadingFloat parses the longest decimal prefix of s after leading spaces:
// an optional sign, digits with at most one point, then an exponent only
// when it carries digits.
func leadingFloat(s string) (float64, bool) {
	s = strings.TrimLeft(s, " \t\r\n")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := 0
	for end < len(s) && isDigit(s[end]) {
		end++
		digits++
	}
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && isDigit(s[end]) {
			end++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}
	if exp := end; exp < len(s) && (s[exp] == 'e' || s[exp] == 'E') {
		exp++
		if exp < len(s) && (s[exp] == '+' || s[exp] == '-') {
			exp++
		}
		if exp < len(s) && isDigit(s[exp]) {
			for exp < len(s) && isDigit(s[exp]) {
				exp++
			}
			end = exp
		}
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// String returns the first non-empty alias value of f, or def.
func (s Schema) String(row Row, f Field, def string) string {
	for _, col := range s.columns[f] {
		if v := row[col]; v != "" {
			return v
		}
	}
	return def
}

// Quantity is the row's unit count, defaulting to one.
func (s Schema) Quantity(row Row) float64 {
	return s.Number(row, FieldQuantity, DefaultQuantity)
}

// Revenue is the row's order amount, defaulting to zero.
func (s Schema) Revenue(row Row) float64 {
	return s.Number(row, FieldRevenue, DefaultRevenue)
}

// Customer is the row's customer key. Rows with no customer column share
// the empty key.
func (s Schema) Customer(row Row) string {
	return s.String(row, FieldCustomer, "")
}

// Category is the row's campaign proxy.
func (s Schema) Category(row Row) string {
	return s.String(row, FieldCategory, DefaultCategory)
}
