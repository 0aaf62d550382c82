package linkset

import (
	"strings"
	"testing"

	"github.com/goliatone/go-linkresolver/pkg/config"
	"github.com/goliatone/go-linkresolver/pkg/domain"
)

func testConfig() config.ResolverConfig {
	return config.ResolverConfig{
		ResolverDomain:    "https://id.example.com",
		LinkTypeVocDomain: "https://ref.gs1.org/voc",
		LinkHeaderMaxSize: "8192",
	}
}

func testRecord(links ...domain.LinkRecord) *domain.IdentifierRecord {
	return &domain.IdentifierRecord{
		Namespace:         "gs1",
		IdentificationKey: "09506000134352",
		Qualifier:         "01",
		QualifierPath:     "/",
		Links:             links,
	}
}

func TestCanonicalURL(t *testing.T) {
	b := New(testConfig())

	rec := testRecord()
	if got, want := b.CanonicalURL(rec, "01"), "https://id.example.com/gs1/01/09506000134352"; got != want {
		t.Fatalf("root path: got %q, want %q", got, want)
	}

	rec.QualifierPath = "/10/LOT42"
	if got, want := b.CanonicalURL(rec, "01"), "https://id.example.com/gs1/01/09506000134352/10/LOT42"; got != want {
		t.Fatalf("qualified path: got %q, want %q", got, want)
	}
}

func TestHTTPLinkLine(t *testing.T) {
	b := New(testConfig())
	rec := testRecord(
		domain.LinkRecord{TargetURL: "https://brand.example.com/p", LinkType: "gs1:pip", MimeType: "text/html", IanaLanguage: "en", Title: "Product page"},
		domain.LinkRecord{TargetURL: "https://brand.example.com/cert", LinkType: "gs1:certificationInfo", MimeType: "application/json", IanaLanguage: "en", Title: "Certificate"},
	)

	got := b.HTTPLinkLine(rec, "01")
	want := `<https://brand.example.com/p>; rel="gs1:pip"; type="text/html"; hreflang="en"; title="Product page", ` +
		`<https://brand.example.com/cert>; rel="gs1:certificationInfo"; type="application/json"; hreflang="en"; title="Certificate", ` +
		`<https://id.example.com/gs1/01/09506000134352>; rel="owl:sameAs"`
	if got != want {
		t.Fatalf("link line mismatch:\ngot:  %s\nwant: %s", got, want)
	}
}

func TestBuildDropsBlankLinkTypes(t *testing.T) {
	b := New(testConfig())
	rec := testRecord(
		domain.LinkRecord{TargetURL: "https://a.example.com", LinkType: "  ", Active: true},
		domain.LinkRecord{TargetURL: "https://b.example.com", LinkType: "gs1:pip", Active: true},
	)

	set := b.Build(rec, "01", nil)
	if len(set.Relations) != 1 {
		t.Fatalf("expected one relation, got %d", len(set.Relations))
	}
	if _, ok := set.Relations["https://ref.gs1.org/voc/pip"]; !ok {
		t.Fatalf("missing pip relation, got %v", set.Relations)
	}
}

func TestBuildAnchorAndRelationURI(t *testing.T) {
	b := New(testConfig())
	rec := testRecord(
		domain.LinkRecord{TargetURL: "https://a.example.com", LinkType: "gs1:pip", Active: true},
		domain.LinkRecord{TargetURL: "https://b.example.com", LinkType: "untp:dcc", Active: true},
	)

	set := b.Build(rec, "01", nil)
	if set.Anchor != "https://id.example.com/gs1/01/09506000134352" {
		t.Fatalf("unexpected anchor %q", set.Anchor)
	}
	for _, key := range []string{"https://ref.gs1.org/voc/pip", "https://ref.gs1.org/voc/dcc"} {
		if _, ok := set.Relations[key]; !ok {
			t.Fatalf("missing relation %q in %v", key, set.Relations)
		}
	}
}

func TestBuildMergesLanguageVariantsIntoOneTarget(t *testing.T) {
	b := New(testConfig())
	rec := testRecord(
		domain.LinkRecord{TargetURL: "https://a.example.com", LinkType: "gs1:pip", MimeType: "text/html", IanaLanguage: "en", Title: "Page", Active: true},
		domain.LinkRecord{TargetURL: "https://a.example.com", LinkType: "gs1:pip", MimeType: "text/html", IanaLanguage: "fr", Title: "La page", Active: true},
		domain.LinkRecord{TargetURL: "https://a.example.com", LinkType: "gs1:pip", MimeType: "text/html", IanaLanguage: "en", Title: "Dup", Active: true},
	)

	set := b.Build(rec, "01", nil)
	targets := set.Relations["https://ref.gs1.org/voc/pip"]
	if len(targets) != 1 {
		t.Fatalf("expected one merged target, got %d", len(targets))
	}
	target := targets[0]
	if target.Href != "https://a.example.com" || target.Type != "text/html" {
		t.Fatalf("unexpected target %+v", target)
	}
	if len(target.Hreflang) != 2 || target.Hreflang[0] != "en" || target.Hreflang[1] != "fr" {
		t.Fatalf("expected deduped [en fr], got %v", target.Hreflang)
	}
	if len(target.TitleStar) != 2 || target.TitleStar[0].Value != "Page" || target.TitleStar[1].Value != "La page" {
		t.Fatalf("unexpected title* %v", target.TitleStar)
	}
}

func TestBuildSeparatesTargetsByMimeAndContext(t *testing.T) {
	b := New(testConfig())
	rec := testRecord(
		domain.LinkRecord{TargetURL: "https://a.example.com", LinkType: "gs1:pip", MimeType: "text/html", Active: true},
		domain.LinkRecord{TargetURL: "https://a.example.com", LinkType: "gs1:pip", MimeType: "application/json", Active: true},
		domain.LinkRecord{TargetURL: "https://a.example.com", LinkType: "gs1:pip", MimeType: "text/html", Context: "us", Active: true},
	)

	set := b.Build(rec, "01", nil)
	targets := set.Relations["https://ref.gs1.org/voc/pip"]
	if len(targets) != 3 {
		t.Fatalf("expected three targets, got %d: %+v", len(targets), targets)
	}
}

func TestBuildEmptyMimeOmittedFromOutput(t *testing.T) {
	b := New(testConfig())
	rec := testRecord(
		domain.LinkRecord{TargetURL: "https://a.example.com", LinkType: "gs1:pip", Active: true},
	)

	set := b.Build(rec, "01", nil)
	targets := set.Relations["https://ref.gs1.org/voc/pip"]
	if len(targets) != 1 {
		t.Fatalf("expected one target, got %d", len(targets))
	}
	if targets[0].Type != "" {
		t.Fatalf("empty mime must not leak the grouping placeholder, got %q", targets[0].Type)
	}
}

func TestBuildKeepsEncryptionAndAccessMetadata(t *testing.T) {
	b := New(testConfig())
	rec := testRecord(
		domain.LinkRecord{
			TargetURL:        "https://a.example.com",
			LinkType:         "untp:dcc",
			MimeType:         "application/json",
			EncryptionMethod: "none",
			Method:           "GET",
			AccessRole:       domain.StringList{"untp:accessRole#Customs"},
			Active:           true,
		},
	)

	set := b.Build(rec, "01", nil)
	target := set.Relations["https://ref.gs1.org/voc/dcc"][0]
	if target.EncryptionMethod != "none" {
		t.Fatalf("encryptionMethod value none must survive, got %q", target.EncryptionMethod)
	}
	if target.Method != "GET" {
		t.Fatalf("unexpected method %q", target.Method)
	}
	if len(target.AccessRole) != 1 || target.AccessRole[0] != "untp:accessRole#Customs" {
		t.Fatalf("unexpected accessRole %v", target.AccessRole)
	}
}

func TestBuildAppendsPredecessorEntries(t *testing.T) {
	b := New(testConfig())
	rec := testRecord(
		domain.LinkRecord{LinkID: "l1", TargetURL: "https://v3.example.com", LinkType: "gs1:pip", MimeType: "text/html", IanaLanguage: "en", Active: true},
	)
	history := domain.VersionHistoryList{
		{Version: 2, Changes: []domain.LinkChange{
			{LinkID: "l1", Action: domain.ChangeActionUpdated, PreviousTargetURL: "https://v1.example.com", PreviousMimeType: "text/html"},
		}},
		{Version: 3, Changes: []domain.LinkChange{
			{LinkID: "l1", Action: domain.ChangeActionUpdated, PreviousTargetURL: "https://v2.example.com"},
			{LinkID: "l1", Action: domain.ChangeActionUpdated, PreviousTargetURL: ""},
			{LinkID: "other", Action: domain.ChangeActionUpdated, PreviousTargetURL: "https://x.example.com"},
		}},
	}

	set := b.Build(rec, "01", history)
	targets := set.Relations["https://ref.gs1.org/voc/pip"]
	if len(targets) != 3 {
		t.Fatalf("expected current target plus two predecessors, got %d: %+v", len(targets), targets)
	}
	first, second := targets[1], targets[2]
	if first.Href != "https://v1.example.com" || second.Href != "https://v2.example.com" {
		t.Fatalf("predecessors out of order: %q then %q", first.Href, second.Href)
	}
	for _, target := range []domain.LinkTargetObject{first, second} {
		if len(target.Rel) != 1 || target.Rel[0] != "predecessor-version" {
			t.Fatalf("missing predecessor-version rel: %+v", target)
		}
	}
	// Missing historical attributes fall back to the current record's.
	if second.Type != "text/html" {
		t.Fatalf("expected mime fallback text/html, got %q", second.Type)
	}
	if len(second.Hreflang) != 1 || second.Hreflang[0] != "en" {
		t.Fatalf("expected language fallback en, got %v", second.Hreflang)
	}
}

func TestBuildTargetOrderIsDeterministic(t *testing.T) {
	b := New(testConfig())
	rec := testRecord(
		domain.LinkRecord{TargetURL: "https://b.example.com", LinkType: "gs1:pip", MimeType: "text/html", Active: true},
		domain.LinkRecord{TargetURL: "https://a.example.com", LinkType: "gs1:pip", MimeType: "application/json", Active: true},
	)

	first := b.Build(rec, "01", nil)
	second := b.Build(rec, "01", nil)
	a := first.Relations["https://ref.gs1.org/voc/pip"]
	c := second.Relations["https://ref.gs1.org/voc/pip"]
	if len(a) != 2 || len(c) != 2 {
		t.Fatalf("expected two targets in both builds")
	}
	for i := range a {
		if a[i].Href != c[i].Href {
			t.Fatalf("build order unstable at %d: %q vs %q", i, a[i].Href, c[i].Href)
		}
	}
	// json sorts before html, so the a.example.com target leads.
	if a[0].Href != "https://a.example.com" {
		t.Fatalf("expected mime sort to order targets, got %q first", a[0].Href)
	}
	if !strings.HasPrefix(first.Anchor, "https://id.example.com/") {
		t.Fatalf("unexpected anchor %q", first.Anchor)
	}
}
