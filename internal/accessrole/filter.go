// Package accessrole narrows link collections to what a requesting role may
// see. Role shorthands expand by convention rather than enum lookup, so
// unknown tokens still become well-formed URIs.
package accessrole

import (
	"strings"

	"github.com/goliatone/go-linkresolver/pkg/domain"
)

// RolePrefix namespaces shorthand role tokens.
const RolePrefix = "untp:accessRole#"

// NormalizeRole expands a shorthand token into a role URI. Tokens that
// already carry a scheme separator pass through unchanged.
func NormalizeRole(token string) string {
	if strings.Contains(token, ":") {
		return token
	}
	return RolePrefix + titlecase(token)
}

// Filter keeps public records plus records granting the requested role. An
// empty role token is the identity. The input records are never mutated.
func Filter(records []domain.LinkRecord, roleToken string) []domain.LinkRecord {
	if roleToken == "" {
		return records
	}
	role := NormalizeRole(roleToken)
	out := make([]domain.LinkRecord, 0, len(records))
	for _, rec := range records {
		if rec.IsPublic() || rec.HasAccessRole(role) {
			out = append(out, rec)
		}
	}
	return out
}

func titlecase(token string) string {
	if token == "" {
		return token
	}
	return strings.ToUpper(token[:1]) + strings.ToLower(token[1:])
}
