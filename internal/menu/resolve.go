package menu

import (
	"sort"
	"strings"
)

// ResolveOptions control query matching.
type ResolveOptions struct {
	// Exact requires the query to equal a full item path byte-for-byte.
	Exact bool
	// EnabledOnly discards disabled items before scoring.
	EnabledOnly bool
}

// Match is one scored resolver candidate.
type Match struct {
	Item  FlatItem
	Score int
	order int
}

// Resolve maps a query to exactly one flat item, or returns a typed
// not-found / ambiguous error.
func Resolve(items []FlatItem, query string, opts ResolveOptions) (*FlatItem, error) {
	matches, err := Search(items, query, opts, 2)
	if err != nil {
		return nil, err
	}
	if len(matches) >= 2 && matches[0].Score == matches[1].Score &&
		matches[0].Item.Title == matches[1].Item.Title {
		return nil, &Error{
			Kind:       KindAmbiguous,
			Message:    "ambiguous match for " + quote(query),
			Candidates: []string{matches[0].Item.Path, matches[1].Item.Path},
		}
	}
	return &matches[0].Item, nil
}

// Search returns up to limit candidates for the query, best first.
// Ordering: score descending, then path length ascending, then original
// traversal order. limit <= 0 means no limit.
func Search(items []FlatItem, query string, opts ResolveOptions, limit int) ([]Match, error) {
	if opts.Exact {
		return exactSearch(items, query, limit)
	}
	return fuzzySearch(items, query, opts, limit)
}

func exactSearch(items []FlatItem, query string, limit int) ([]Match, error) {
	var matches []Match
	for i, it := range items {
		if it.Path == query {
			matches = append(matches, Match{Item: it, order: i})
		}
	}
	switch {
	case len(matches) == 0:
		return nil, Errf(KindNotFound, "no menu item matches %s", quote(query))
	case len(matches) > 1:
		// Only possible with duplicate paths in the live tree, including
		// the pathological "::"-inside-a-title case.
		paths := make([]string, len(matches))
		for i, m := range matches {
			paths[i] = m.Item.Path
		}
		err := Errf(KindAmbiguous, "multiple menu items share the path %s", quote(query))
		err.Candidates = paths
		return nil, err
	}
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func fuzzySearch(items []FlatItem, query string, opts ResolveOptions, limit int) ([]Match, error) {
	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return nil, Errf(KindNotFound, "empty query")
	}

	var matches []Match
	for i, it := range items {
		if opts.EnabledOnly && !it.Enabled {
			continue
		}
		ok := true
		for _, tok := range tokens {
			if !smartContains(it.Path, tok) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		matches = append(matches, Match{Item: it, Score: score(it, query, tokens), order: i})
	}

	sort.SliceStable(matches, func(a, b int) bool {
		if matches[a].Score != matches[b].Score {
			return matches[a].Score > matches[b].Score
		}
		if len(matches[a].Item.Path) != len(matches[b].Item.Path) {
			return len(matches[a].Item.Path) < len(matches[b].Item.Path)
		}
		return matches[a].order < matches[b].order
	})

	if len(matches) == 0 || matches[0].Score <= 0 {
		return nil, Errf(KindNotFound, "no menu item matches %s", quote(query))
	}
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// score applies the additive rubric:
//
//	+100 full query is a substring of the leaf title
//	 +50 query is a prefix of the leaf title
//	 +25 per token matched in the leaf title (vs. only in ancestors)
//	 +10 per token in the longest consecutive leaf-matching token run
//	  -1 per character of path length
func score(it FlatItem, query string, tokens []string) int {
	s := 0
	if smartContains(it.Title, query) {
		s += 100
	}
	if smartHasPrefix(it.Title, query) {
		s += 50
	}

	run, best := 0, 0
	for _, tok := range tokens {
		if smartContains(it.Title, tok) {
			s += 25
			run++
			if run > best {
				best = run
			}
		} else {
			run = 0
		}
	}
	s += 10 * best

	s -= len(it.Path)
	return s
}

// smartContains is a smart-case substring test: case-insensitive when the
// needle is all lowercase, case-sensitive otherwise.
func smartContains(haystack, needle string) bool {
	if isLower(needle) {
		return strings.Contains(strings.ToLower(haystack), needle)
	}
	return strings.Contains(haystack, needle)
}

func smartHasPrefix(s, prefix string) bool {
	if isLower(prefix) {
		return strings.HasPrefix(strings.ToLower(s), prefix)
	}
	return strings.HasPrefix(s, prefix)
}

func isLower(s string) bool {
	return s == strings.ToLower(s)
}

func quote(q string) string {
	return "\"" + q + "\""
}
