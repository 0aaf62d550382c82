package resolver

import (
	"testing"

	"github.com/goliatone/go-linkresolver/pkg/domain"
)

func TestMatchLadderOrdering(t *testing.T) {
	records := []domain.LinkRecord{
		{LinkID: "type-only", LinkType: "gs1:pip", IanaLanguage: "de", Context: "de", MimeType: "text/html", Active: true},
		{LinkID: "default-lang", LinkType: "gs1:pip", IanaLanguage: "fr", Context: "fr", MimeType: "text/html", Active: true, DefaultIanaLang: true},
		{LinkID: "lang", LinkType: "gs1:pip", IanaLanguage: "en", Context: "gb", MimeType: "text/html", Active: true},
		{LinkID: "default-context", LinkType: "gs1:pip", IanaLanguage: "en", Context: "ie", MimeType: "text/html", Active: true, DefaultContext: true},
		{LinkID: "pair", LinkType: "gs1:pip", IanaLanguage: "en", Context: "us", MimeType: "application/xml", Active: true},
		{LinkID: "default-mime", LinkType: "gs1:pip", IanaLanguage: "en", Context: "us", MimeType: "application/json", Active: true, DefaultMimeType: true},
		{LinkID: "exact", LinkType: "gs1:pip", IanaLanguage: "en", Context: "us", MimeType: "text/html", Active: true},
	}

	attrs := domain.DescriptiveAttributes{
		LinkType:             "gs1:pip",
		MimeTypes:            []string{"text/html"},
		IanaLanguageContexts: []domain.LanguageContext{{IanaLanguage: "en", Context: "us"}},
	}

	// Remove the winner at each level and the next level takes over.
	expect := []string{"exact", "default-mime", "pair", "default-context", "lang", "default-lang", "type-only"}
	pool := append([]domain.LinkRecord(nil), records...)
	for _, want := range expect {
		hit := match(pool, attrs)
		if hit == nil {
			t.Fatalf("expected %q, got no match", want)
		}
		if hit.LinkID != want {
			t.Fatalf("expected %q, got %q", want, hit.LinkID)
		}
		next := pool[:0:0]
		for _, rec := range pool {
			if rec.LinkID != want {
				next = append(next, rec)
			}
		}
		pool = next
	}
	if hit := match(pool, attrs); hit != nil {
		t.Fatalf("exhausted pool should not match, got %q", hit.LinkID)
	}
}

func TestMatchNoRequestedTypeIgnoresLadder(t *testing.T) {
	records := []domain.LinkRecord{
		{LinkID: "exactish", LinkType: "gs1:pip", IanaLanguage: "en", Context: "us", MimeType: "text/html", Active: true},
		{LinkID: "fallback", LinkType: "gs1:certificationInfo", Active: true, DefaultLinkType: true},
	}
	hit := match(records, domain.DescriptiveAttributes{
		MimeTypes:            []string{"text/html"},
		IanaLanguageContexts: []domain.LanguageContext{{IanaLanguage: "en", Context: "us"}},
	})
	if hit == nil || hit.LinkID != "fallback" {
		t.Fatalf("missing link type should use the default link type record, got %+v", hit)
	}
}

func TestMatchLinkTypeIsExact(t *testing.T) {
	records := []domain.LinkRecord{
		{LinkID: "pip", LinkType: "gs1:pip", Active: true},
	}
	if hit := match(records, domain.DescriptiveAttributes{LinkType: "GS1:PIP"}); hit != nil {
		t.Fatalf("link type tokens compare exactly, got %+v", hit)
	}
}

func TestMatchMimeIsCaseInsensitive(t *testing.T) {
	records := []domain.LinkRecord{
		{LinkID: "pip", LinkType: "gs1:pip", IanaLanguage: "en", Context: "us", MimeType: "Text/HTML", Active: true},
	}
	hit := match(records, domain.DescriptiveAttributes{
		LinkType:             "gs1:pip",
		MimeTypes:            []string{"text/html"},
		IanaLanguageContexts: []domain.LanguageContext{{IanaLanguage: "en", Context: "us"}},
	})
	if hit == nil || hit.LinkID != "pip" {
		t.Fatalf("mime comparison should ignore case, got %+v", hit)
	}
}
