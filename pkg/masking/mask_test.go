package masking

import (
	"strings"
	"testing"
)

func TestURLKeepsPathAndParamNames(t *testing.T) {
	raw := "https://brand.example.com/product?token=supersecretvalue&lang=en"
	got := URL(raw)

	if !strings.HasPrefix(got, "https://brand.example.com/product?") {
		t.Fatalf("path must stay readable: %s", got)
	}
	if !strings.Contains(got, "token=") || !strings.Contains(got, "lang=") {
		t.Fatalf("parameter names must stay readable: %s", got)
	}
	if strings.Contains(got, "supersecretvalue") {
		t.Fatalf("parameter value leaked: %s", got)
	}
}

func TestURLWithoutQueryIsUntouched(t *testing.T) {
	raw := "https://brand.example.com/product"
	if got := URL(raw); got != raw {
		t.Fatalf("expected passthrough, got %s", got)
	}
	if got := URL(raw + "?"); got != raw+"?" {
		t.Fatalf("expected passthrough for empty query, got %s", got)
	}
}

func TestURLSkipsValuelessParams(t *testing.T) {
	raw := "https://a.example.com/p?flag&x="
	got := URL(raw)
	if !strings.Contains(got, "flag") {
		t.Fatalf("bare flags should survive: %s", got)
	}
}

func TestQueryString(t *testing.T) {
	got := QueryString("sig=abcdef123456&serial=9001")
	if strings.HasPrefix(got, "?") {
		t.Fatalf("bare query must not gain a separator: %s", got)
	}
	if strings.Contains(got, "abcdef123456") {
		t.Fatalf("value leaked: %s", got)
	}
	if QueryString("") != "" {
		t.Fatal("empty query should stay empty")
	}
}
