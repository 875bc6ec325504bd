package http

import (
	"bytes"
	"encoding/json"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// parseWindow reads the window parameter in days. A missing, non-numeric
// or non-positive value yields def.
func parseWindow(q url.Values, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(q.Get("window")))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// parseLimit reads the limit parameter from its leading integer, so "2.5"
// and "3rows" are 2 and 3. A missing or non-numeric value yields def and a
// negative one yields zero.
func parseLimit(q url.Values, def int) int {
	n, ok := leadingInt(strings.TrimSpace(q.Get("limit")))
	if !ok {
		return def
	}
	if n < 0 {
		return 0
	}
	return n
}

// leadingInt parses an optional sign followed by the longest run of digits
// at the start of s.
func leadingInt(s string) (int, bool) {
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// Out of int range: the sign decides the clamp.
		if s[0] == '-' {
			return -1, true
		}
		return math.MaxInt, true
	}
	return n, true
}

// decodeBody unmarshals a JSON body into v. An empty body leaves v at its
// zero value.
func decodeBody(body []byte, v interface{}) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	return json.Unmarshal(body, v)
}
