// Package masking hides token-bearing URL parts before they reach log lines.
// Forwarded query strings (fwqs) routinely carry signed tokens and consumer
// identifiers, so raw target URLs are never logged.
package masking

import (
	"strings"

	masker "github.com/goliatone/go-masker"
)

var sensitiveParams = []string{
	"token", "access_token", "signature", "key", "apikey", "api_key",
}

func init() {
	for _, field := range sensitiveParams {
		masker.Default.RegisterMaskField(field, "preserveEnds(2,2)")
	}
}

// URL masks the query-string portion of a target URL for safe logging. The
// path stays readable; every parameter value is masked.
func URL(raw string) string {
	base, query, found := strings.Cut(raw, "?")
	if !found || query == "" {
		return raw
	}
	params := strings.Split(query, "&")
	for i, param := range params {
		name, value, ok := strings.Cut(param, "=")
		if !ok || value == "" {
			continue
		}
		params[i] = name + "=" + maskValue(value)
	}
	return base + "?" + strings.Join(params, "&")
}

// QueryString masks every value in a bare query string.
func QueryString(query string) string {
	if query == "" {
		return query
	}
	return strings.TrimPrefix(URL("?"+query), "?")
}

func maskValue(value string) string {
	if masked, err := masker.Default.String("preserveEnds(2,2)", value); err == nil {
		return masked
	}
	runes := []rune(value)
	if len(runes) <= 4 {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[:2]) + strings.Repeat("*", len(runes)-4) + string(runes[len(runes)-2:])
}
