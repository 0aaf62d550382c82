// Package linkheader builds the RFC 8288 Link header text for a resolution
// response, including the linkset references for the identifier's ancestor
// qualifier paths, under a configurable byte budget.
package linkheader

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-linkresolver/pkg/config"
	"github.com/goliatone/go-linkresolver/pkg/domain"
	"github.com/goliatone/go-linkresolver/pkg/interfaces/logger"
)

// maxAncestorRefs caps how many ancestor linkset references are emitted.
const maxAncestorRefs = 3

// Context carries the identifier coordinates a header is built for.
type Context struct {
	Namespace         string
	KeyCode           string
	IdentificationKey string
	QualifierPath     string
	AccessRole        string
}

// Result bundles the budgeted header text and the unbudgeted full text.
type Result struct {
	Text     string
	FullText string
}

// Assembler renders Link headers under the configured byte budget.
type Assembler struct {
	cfg    config.ResolverConfig
	budget int
	logger logger.Logger
}

// New validates the header budget and returns an assembler.
func New(cfg config.ResolverConfig, lgr logger.Logger) (*Assembler, error) {
	budget, err := cfg.HeaderBudget()
	if err != nil {
		return nil, err
	}
	if lgr == nil {
		lgr = &logger.Nop{}
	}
	return &Assembler{cfg: cfg, budget: budget, logger: lgr}, nil
}

// CanonicalURL renders the full resolver URL for the context.
func (a *Assembler) CanonicalURL(ctx Context) string {
	url := fmt.Sprintf("%s/%s/%s/%s", a.cfg.ResolverDomain, ctx.Namespace, ctx.KeyCode, ctx.IdentificationKey)
	if ctx.QualifierPath != "" && ctx.QualifierPath != "/" {
		url += ctx.QualifierPath
	}
	return url
}

// AncestorRefs returns linkset references for the less-qualified views of the
// identifier, nearest ancestor first. Qualifier pairs are peeled from the
// right; the root ancestor carries no path suffix. Zero qualifier pairs mean
// zero refs.
func (a *Assembler) AncestorRefs(ctx Context) []string {
	segments := splitSegments(ctx.QualifierPath)
	pairs := len(segments) / 2

	var refs []string
	for pairs > 0 && len(refs) < maxAncestorRefs {
		pairs--
		path := joinPairs(segments[:pairs*2])
		refs = append(refs, a.linksetRef(Context{
			Namespace:         ctx.Namespace,
			KeyCode:           ctx.KeyCode,
			IdentificationKey: ctx.IdentificationKey,
			QualifierPath:     path,
			AccessRole:        ctx.AccessRole,
		}))
	}
	return refs
}

// Assemble builds the header pair for the given active records. Text keeps
// only targets matching matchedLinkType when set, and drops all target
// entries at once when the budget is exceeded; FullText is never filtered
// and never budgeted.
func (a *Assembler) Assemble(records []domain.LinkRecord, ctx Context, matchedLinkType string) Result {
	mandatory := a.mandatoryEntries(ctx)

	var filtered, all []string
	for _, rec := range records {
		if !rec.Active {
			continue
		}
		entry := targetEntry(rec)
		all = append(all, entry)
		if matchedLinkType == "" || rec.LinkType == matchedLinkType {
			filtered = append(filtered, entry)
		}
	}

	full := strings.Join(append(append([]string{}, mandatory...), all...), ", ")

	text := strings.Join(append(append([]string{}, mandatory...), filtered...), ", ")
	if len(text) > a.budget {
		text = strings.Join(mandatory, ", ")
		if len(text) > a.budget {
			a.logger.Warn("link header mandatory entries alone exceed the configured budget",
				logger.Field{Key: "budget", Value: a.budget},
				logger.Field{Key: "size", Value: len(text)},
			)
		} else {
			a.logger.Warn("link header exceeded budget, dropping target entries",
				logger.Field{Key: "budget", Value: a.budget},
			)
		}
	}

	return Result{Text: text, FullText: full}
}

// mandatoryEntries are never dropped: owl:sameAs, the self linkset ref, then
// the ancestor refs, in that order.
func (a *Assembler) mandatoryEntries(ctx Context) []string {
	entries := []string{
		fmt.Sprintf(`<%s>; rel="owl:sameAs"`, a.CanonicalURL(ctx)),
		a.linksetRef(ctx),
	}
	return append(entries, a.AncestorRefs(ctx)...)
}

func (a *Assembler) linksetRef(ctx Context) string {
	url := a.CanonicalURL(ctx) + "?linkType=" + domain.LinkTypeAll
	if ctx.AccessRole != "" {
		url += "&accessRole=" + ctx.AccessRole
	}
	return fmt.Sprintf(`<%s>; rel="linkset"; type="application/linkset+json"`, url)
}

func targetEntry(rec domain.LinkRecord) string {
	return fmt.Sprintf(
		`<%s>; rel="%s"; type="%s"; hreflang="%s"; title="%s"`,
		rec.TargetURL, rec.LinkType, rec.MimeType, rec.IanaLanguage, rec.Title,
	)
}

func splitSegments(qualifierPath string) []string {
	var out []string
	for _, segment := range strings.Split(qualifierPath, "/") {
		if segment != "" {
			out = append(out, segment)
		}
	}
	return out
}

func joinPairs(segments []string) string {
	if len(segments) == 0 {
		return "/"
	}
	return "/" + strings.Join(segments, "/")
}
