// Package linkset derives the wire-level linkset document and the flat HTTP
// Link line from an identifier's registered links. Both outputs are ephemeral
// views; anything resembling them found in storage is stale and untrusted.
package linkset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-linkresolver/pkg/config"
	"github.com/goliatone/go-linkresolver/pkg/domain"
)

// mimeSentinel stands in for an empty mime type during sorting and grouping
// only; output restores the empty string.
const mimeSentinel = "xx"

// Builder renders linkset documents using the configured domains.
type Builder struct {
	cfg config.ResolverConfig
}

// New returns a builder bound to the resolver configuration.
func New(cfg config.ResolverConfig) *Builder {
	return &Builder{cfg: cfg}
}

// CanonicalURL renders the identifier's canonical resolver URL. The
// qualifier path is appended verbatim unless it is the bare root.
func (b *Builder) CanonicalURL(rec *domain.IdentifierRecord, keyCode string) string {
	url := fmt.Sprintf("%s/%s/%s/%s", b.cfg.ResolverDomain, rec.Namespace, keyCode, rec.IdentificationKey)
	if rec.QualifierPath != "" && rec.QualifierPath != "/" {
		url += rec.QualifierPath
	}
	return url
}

// HTTPLinkLine emits one Link entry per registered record in input order,
// comma-space joined, closed by the canonical owl:sameAs entry.
func (b *Builder) HTTPLinkLine(rec *domain.IdentifierRecord, keyCode string) string {
	entries := make([]string, 0, len(rec.Links)+1)
	for _, link := range rec.Links {
		entries = append(entries, fmt.Sprintf(
			`<%s>; rel="%s"; type="%s"; hreflang="%s"; title="%s"`,
			link.TargetURL, link.LinkType, link.MimeType, link.IanaLanguage, link.Title,
		))
	}
	entries = append(entries, fmt.Sprintf(`<%s>; rel="owl:sameAs"`, b.CanonicalURL(rec, keyCode)))
	return strings.Join(entries, ", ")
}

// Build groups the identifier's links into a linkset document anchored at the
// canonical URL. When history is supplied, superseded targets are appended to
// their group as predecessor-version entries.
func (b *Builder) Build(rec *domain.IdentifierRecord, keyCode string, history domain.VersionHistoryList) domain.LinkContextObject {
	records := make([]domain.LinkRecord, 0, len(rec.Links))
	for _, link := range rec.Links {
		if strings.TrimSpace(link.LinkType) == "" {
			continue
		}
		if link.MimeType == "" {
			link.MimeType = mimeSentinel
		}
		records = append(records, link)
	}

	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.LinkType != b.LinkType {
			return a.LinkType < b.LinkType
		}
		if a.Context != b.Context {
			return a.Context < b.Context
		}
		return a.MimeType < b.MimeType
	})

	relations := make(map[string][]domain.LinkTargetObject)
	for start := 0; start < len(records); {
		end := start
		for end < len(records) && records[end].LinkType == records[start].LinkType {
			end++
		}
		group := records[start:end]
		relations[b.relationURI(group[0].LinkType)] = b.buildGroup(group, history)
		start = end
	}

	return domain.LinkContextObject{
		Anchor:    b.CanonicalURL(rec, keyCode),
		Relations: relations,
	}
}

// relationURI derives the extension-relation key from the namespaced link
// type token: the vocabulary domain plus the segment after the first colon.
func (b *Builder) relationURI(linkType string) string {
	segment := linkType
	if idx := strings.Index(linkType, ":"); idx >= 0 {
		segment = linkType[idx+1:]
	}
	return b.cfg.LinkTypeVocDomain + "/" + segment
}

func (b *Builder) buildGroup(group []domain.LinkRecord, history domain.VersionHistoryList) []domain.LinkTargetObject {
	type subgroup struct {
		key     string
		members []domain.LinkRecord
	}
	var subgroups []subgroup
	index := make(map[string]int)
	for _, rec := range group {
		key := rec.TargetURL + "-" + rec.MimeType + "-" + rec.Context
		if at, ok := index[key]; ok {
			subgroups[at].members = append(subgroups[at].members, rec)
			continue
		}
		index[key] = len(subgroups)
		subgroups = append(subgroups, subgroup{key: key, members: []domain.LinkRecord{rec}})
	}

	targets := make([]domain.LinkTargetObject, 0, len(subgroups))
	for _, sg := range subgroups {
		targets = append(targets, buildTarget(sg.members))
	}

	for _, rec := range group {
		if rec.LinkID == "" {
			continue
		}
		targets = append(targets, predecessors(rec, history)...)
	}
	return targets
}

func buildTarget(members []domain.LinkRecord) domain.LinkTargetObject {
	first := members[0]
	target := domain.LinkTargetObject{
		Href:             first.TargetURL,
		Title:            first.Title,
		EncryptionMethod: first.EncryptionMethod,
		Method:           first.Method,
	}
	if first.MimeType != mimeSentinel {
		target.Type = first.MimeType
	}
	if len(first.AccessRole) > 0 {
		target.AccessRole = append([]string(nil), first.AccessRole...)
	}

	seen := make(map[string]bool)
	for _, member := range members {
		lang := member.IanaLanguage
		if lang == "" || lang == mimeSentinel || seen[lang] {
			continue
		}
		seen[lang] = true
		target.Hreflang = append(target.Hreflang, lang)
		target.TitleStar = append(target.TitleStar, domain.LanguageValue{
			Value:    member.Title,
			Language: lang,
		})
	}
	return target
}

// predecessors emits one entry per history change that replaced the record's
// target, in history-entry order, using historical attributes when present.
func predecessors(rec domain.LinkRecord, history domain.VersionHistoryList) []domain.LinkTargetObject {
	var out []domain.LinkTargetObject
	for _, entry := range history {
		for _, change := range entry.Changes {
			if change.LinkID != rec.LinkID || change.PreviousTargetURL == "" {
				continue
			}
			mime := change.PreviousMimeType
			if mime == "" {
				mime = rec.MimeType
			}
			lang := change.PreviousIanaLanguage
			if lang == "" {
				lang = rec.IanaLanguage
			}
			target := domain.LinkTargetObject{
				Href: change.PreviousTargetURL,
				Rel:  []string{"predecessor-version"},
			}
			if mime != mimeSentinel {
				target.Type = mime
			}
			if lang != "" && lang != mimeSentinel {
				target.Hreflang = []string{lang}
			}
			out = append(out, target)
		}
	}
	return out
}
