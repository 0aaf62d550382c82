// Package defaults keeps the per-scope default flags on a link collection
// consistent: among active records, exactly one default per scope whenever
// the scope has at least one active member, and no defaults on inactive
// records. Enforce runs after every mutation, never lazily at read time.
package defaults

import "github.com/goliatone/go-linkresolver/pkg/domain"

// Enforce normalizes the four default flags in place and returns the slice.
// Within a scope the last record claiming a default wins; a scope with active
// members but no claimant promotes its first active record. Running Enforce
// on its own output is a no-op.
func Enforce(records []domain.LinkRecord) []domain.LinkRecord {
	if len(records) == 0 {
		return records
	}

	for i := range records {
		if !records[i].Active {
			records[i].DefaultLinkType = false
			records[i].DefaultIanaLang = false
			records[i].DefaultContext = false
			records[i].DefaultMimeType = false
		}
	}

	enforceScoped(records,
		func(domain.LinkRecord) string { return "" },
		func(r *domain.LinkRecord) *bool { return &r.DefaultLinkType },
	)
	enforceScoped(records,
		func(r domain.LinkRecord) string { return domain.ScopeKey(r.LinkType) },
		func(r *domain.LinkRecord) *bool { return &r.DefaultIanaLang },
	)
	enforceScoped(records,
		func(r domain.LinkRecord) string { return domain.ScopeKey(r.LinkType, r.IanaLanguage) },
		func(r *domain.LinkRecord) *bool { return &r.DefaultContext },
	)
	enforceScoped(records,
		func(r domain.LinkRecord) string { return domain.ScopeKey(r.LinkType, r.IanaLanguage, r.Context) },
		func(r *domain.LinkRecord) *bool { return &r.DefaultMimeType },
	)
	return records
}

// enforceScoped applies the last-wins-else-first rule to one flag, grouping
// active records by scope key. Indexes are collected per scope up front so
// the pass never nests object graphs.
func enforceScoped(records []domain.LinkRecord, key func(domain.LinkRecord) string, flag func(*domain.LinkRecord) *bool) {
	scopes := make(map[string][]int)
	order := make([]string, 0)
	for i, rec := range records {
		if !rec.Active {
			continue
		}
		k := key(rec)
		if _, ok := scopes[k]; !ok {
			order = append(order, k)
		}
		scopes[k] = append(scopes[k], i)
	}

	for _, k := range order {
		members := scopes[k]
		keeper := -1
		for _, idx := range members {
			if *flag(&records[idx]) {
				keeper = idx
			}
		}
		if keeper < 0 {
			keeper = members[0]
		}
		for _, idx := range members {
			*flag(&records[idx]) = idx == keeper
		}
	}
}
