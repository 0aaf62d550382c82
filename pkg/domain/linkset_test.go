package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestLinkContextObjectMarshalShape(t *testing.T) {
	doc := LinkContextObject{
		Anchor: "https://id.example.com/gs1/01/9001",
		Relations: map[string][]LinkTargetObject{
			"https://ref.gs1.org/voc/pip": {
				{
					Href:     "https://a.example.com",
					Title:    "Page",
					Type:     "text/html",
					Hreflang: []string{"en", "fr"},
					TitleStar: []LanguageValue{
						{Value: "Page", Language: "en"},
						{Value: "La page", Language: "fr"},
					},
				},
			},
			"https://ref.gs1.org/voc/certificationInfo": {
				{Href: "https://b.example.com"},
			},
		},
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	text := string(payload)

	if !strings.HasPrefix(text, `{"anchor":"https://id.example.com/gs1/01/9001",`) {
		t.Fatalf("anchor must lead the document: %s", text)
	}
	// Relation keys sort, so certificationInfo precedes pip.
	cert := strings.Index(text, "certificationInfo")
	pip := strings.Index(text, "voc/pip")
	if cert < 0 || pip < 0 || cert > pip {
		t.Fatalf("relations not sorted: %s", text)
	}
	if !strings.Contains(text, `"title*":[{"value":"Page","language":"en"}`) {
		t.Fatalf("title* missing or malformed: %s", text)
	}
	// The bare target omits every optional field.
	if !strings.Contains(text, `[{"href":"https://b.example.com"}]`) {
		t.Fatalf("optional fields should be omitted when empty: %s", text)
	}
}

func TestLinkContextObjectMarshalIsByteStable(t *testing.T) {
	doc := LinkContextObject{
		Anchor: "https://id.example.com/gs1/01/9001",
		Relations: map[string][]LinkTargetObject{
			"https://ref.gs1.org/voc/pip":   {{Href: "https://a.example.com"}},
			"https://ref.gs1.org/voc/epcis": {{Href: "https://b.example.com"}},
			"https://ref.gs1.org/voc/dcc":   {{Href: "https://c.example.com"}},
		},
	}
	first, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for i := 0; i < 10; i++ {
		next, err := json.Marshal(doc)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(next) != string(first) {
			t.Fatalf("marshal output unstable:\n%s\n%s", first, next)
		}
	}
}

func TestLinkContextObjectRoundTrip(t *testing.T) {
	in := LinkContextObject{
		Anchor: "https://id.example.com/gs1/01/9001",
		Relations: map[string][]LinkTargetObject{
			"https://ref.gs1.org/voc/pip": {
				{Href: "https://a.example.com", Type: "text/html", Rel: []string{"predecessor-version"}},
			},
		},
	}
	payload, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out LinkContextObject
	if err := json.Unmarshal(payload, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Anchor != in.Anchor {
		t.Fatalf("anchor mismatch: %q", out.Anchor)
	}
	targets := out.Relations["https://ref.gs1.org/voc/pip"]
	if len(targets) != 1 || targets[0].Href != "https://a.example.com" || targets[0].Rel[0] != "predecessor-version" {
		t.Fatalf("relations mismatch: %+v", out.Relations)
	}
}
