// Package messages carries the localized strings hosts render when a
// resolution request fails or degrades.
package messages

import (
	i18n "github.com/goliatone/go-i18n"
)

// Message keys used by host transports.
const (
	KeyNotResolved     = "resolver.error.not_resolved"
	KeyIdentifierShape = "resolver.error.identifier_shape"
	KeyHeaderTruncated = "resolver.warn.header_truncated"
)

// Translations returns the default translation catalog for resolver errors.
func Translations() i18n.Translations {
	return i18n.Translations{
		"en": newCatalog("en", map[string]string{
			KeyNotResolved:     "No link could be resolved for %s",
			KeyIdentifierShape: "The identifier %s is not in a recognized format",
			KeyHeaderTruncated: "The response Link header was reduced to its mandatory entries",
		}),
		"fr": newCatalog("fr", map[string]string{
			KeyNotResolved:     "Aucun lien n'a pu être résolu pour %s",
			KeyIdentifierShape: "L'identifiant %s n'est pas dans un format reconnu",
			KeyHeaderTruncated: "L'en-tête Link de la réponse a été réduit à ses entrées obligatoires",
		}),
	}
}

// Resolve returns the message template for a locale, falling back to en and
// then to the key itself so hosts always have something to render.
func Resolve(locale, key string) string {
	catalogs := Translations()
	if catalog, ok := catalogs[locale]; ok {
		if msg, ok := catalog.Messages[key]; ok {
			return msg.Content()
		}
	}
	if catalog, ok := catalogs["en"]; ok {
		if msg, ok := catalog.Messages[key]; ok {
			return msg.Content()
		}
	}
	return key
}

func newCatalog(locale string, entries map[string]string) *i18n.TranslationCatalog {
	catalog := &i18n.TranslationCatalog{
		Locale:   i18n.Locale{Code: locale},
		Messages: make(map[string]i18n.Message),
	}
	for key, template := range entries {
		msg := i18n.Message{}
		msg.SetContent(template)
		catalog.Messages[key] = msg
	}
	return catalog
}
