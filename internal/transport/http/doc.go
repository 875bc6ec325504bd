// Package http implements the HTTP handlers of the campaign analytics API.
// Handlers stay thin: they parse the request, call a service and shape the
// response.
//
// # Envelopes
//
// Every JSON endpoint is written as a Function that returns an Envelope, the
// status/headers/body triple a serverless function runtime expects. Serve
// adapts a Function to net/http:
//
//	r.Method(http.MethodGet, "/metrics", Serve(h.Metrics, logger))
//
// Envelopes always carry the permissive CORS header set, OPTIONS requests get
// an empty success envelope, and a panic becomes
//
//	{"error": "Internal server error"}
//
// with status 500.
//
// # Other responses
//
// The XLSX download is a plain handler. Its failures, like router-level 404
// and 405 responses, are RFC 7807 problem documents produced by
// internal/errors.
//
// # Query parameters
//
//	window  days to look back; missing, non-numeric or non-positive means the default (30)
//	limit   recommendation count; missing or non-numeric means the default (10), negative means 0
//	source  metrics data file, medium (default) or small
package http
