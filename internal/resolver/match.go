package resolver

import (
	"strings"

	"github.com/goliatone/go-linkresolver/pkg/domain"
)

// match walks the fixed fallback ladder over the active records and returns
// the first hit, or nil. Records are scanned in reverse input order so the
// last-registered record wins ties within a level. This is a strict ordered
// rule chain, not a scored match.
func match(records []domain.LinkRecord, attrs domain.DescriptiveAttributes) *domain.LinkRecord {
	requested := attrs.LinkType
	pairs := attrs.IanaLanguageContexts
	mimes := attrs.MimeTypes

	if requested == "" {
		// Level 8: no link type requested at all.
		return scan(records, func(r domain.LinkRecord) bool {
			return r.DefaultLinkType
		})
	}

	predicates := []func(domain.LinkRecord) bool{
		// 1. type + (language, context) pair + mime, all matched.
		func(r domain.LinkRecord) bool {
			return r.LinkType == requested && matchesPair(r, pairs) && matchesMime(r, mimes)
		},
		// 2. as 1, but the record is the scope's default mime type.
		func(r domain.LinkRecord) bool {
			return r.LinkType == requested && matchesPair(r, pairs) && r.DefaultMimeType
		},
		// 3. type + (language, context) pair, mime unconstrained.
		func(r domain.LinkRecord) bool {
			return r.LinkType == requested && matchesPair(r, pairs)
		},
		// 4. type + language, record is the default context.
		func(r domain.LinkRecord) bool {
			return r.LinkType == requested && matchesLanguage(r, pairs) && r.DefaultContext
		},
		// 5. type + language.
		func(r domain.LinkRecord) bool {
			return r.LinkType == requested && matchesLanguage(r, pairs)
		},
		// 6. type, record is the default language.
		func(r domain.LinkRecord) bool {
			return r.LinkType == requested && r.DefaultIanaLang
		},
		// 7. type alone.
		func(r domain.LinkRecord) bool {
			return r.LinkType == requested
		},
	}

	for _, predicate := range predicates {
		if hit := scan(records, predicate); hit != nil {
			return hit
		}
	}
	return nil
}

func scan(records []domain.LinkRecord, predicate func(domain.LinkRecord) bool) *domain.LinkRecord {
	for i := len(records) - 1; i >= 0; i-- {
		if predicate(records[i]) {
			return &records[i]
		}
	}
	return nil
}

func matchesPair(r domain.LinkRecord, pairs []domain.LanguageContext) bool {
	for _, pair := range pairs {
		if strings.EqualFold(r.IanaLanguage, pair.IanaLanguage) && strings.EqualFold(r.Context, pair.Context) {
			return true
		}
	}
	return false
}

func matchesLanguage(r domain.LinkRecord, pairs []domain.LanguageContext) bool {
	for _, pair := range pairs {
		if strings.EqualFold(r.IanaLanguage, pair.IanaLanguage) {
			return true
		}
	}
	return false
}

func matchesMime(r domain.LinkRecord, mimes []string) bool {
	for _, mime := range mimes {
		if strings.EqualFold(r.MimeType, mime) {
			return true
		}
	}
	return false
}
