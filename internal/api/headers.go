package api

// Headers is attached to every response, errors and preflights included.
// The endpoint is meant to be embedded in frames on arbitrary sites.
var Headers = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "POST, OPTIONS",
	"Access-Control-Allow-Headers": "Content-Type, Authorization, X-Requested-With",
	"X-Frame-Options":              "ALLOWALL",
	"Content-Security-Policy":      "frame-ancestors *",
	"Content-Type":                 "application/json; charset=utf-8",
}
