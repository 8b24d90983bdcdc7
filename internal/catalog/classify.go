package catalog

import "sort"

type category struct {
	name      string
	folded    string
	canonical bool
	aliases   map[string]struct{}
}

// AliasTable resolves collection titles to canonical categories and tread
// names. It is built once per request from configuration and read-only
// afterwards.
type AliasTable struct {
	categories []category
	rank       map[string]int // folded category name -> position in canonical order
}

// NewAliasTable builds the resolution table. Categories are tried in the
// configured canonical order first; alias-map entries outside that order
// are appended in sorted folded order so resolution stays deterministic.
func NewAliasTable(cfg Config) *AliasTable {
	t := &AliasTable{rank: make(map[string]int, len(cfg.CategoryOrder))}

	aliasesByFoldedName := make(map[string][]string, len(cfg.Aliases))
	displayByFoldedName := make(map[string]string, len(cfg.Aliases))
	for name, aliases := range cfg.Aliases {
		f := Fold(name)
		aliasesByFoldedName[f] = aliases
		displayByFoldedName[f] = NormalizeWhitespace(name)
	}

	seen := make(map[string]struct{})
	for i, name := range cfg.CategoryOrder {
		f := Fold(name)
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		t.rank[f] = i
		t.categories = append(t.categories, category{
			name:      NormalizeWhitespace(name),
			folded:    f,
			canonical: true,
			aliases:   foldSet(aliasesByFoldedName[f]),
		})
	}

	var extras []string
	for f := range aliasesByFoldedName {
		if _, ok := seen[f]; !ok {
			extras = append(extras, f)
		}
	}
	sort.Strings(extras)
	for _, f := range extras {
		t.categories = append(t.categories, category{
			name:    displayByFoldedName[f],
			folded:  f,
			aliases: foldSet(aliasesByFoldedName[f]),
		})
	}

	return t
}

// ResolveCategory returns the first category, in priority order, for which
// any collection title folds to the category's own name or to one of its
// aliases. Products that resolve to no category are dropped by the caller.
func (t *AliasTable) ResolveCategory(collectionTitles []string) (string, bool) {
	folded := make(map[string]struct{}, len(collectionTitles))
	for _, title := range collectionTitles {
		if f := Fold(title); f != "" {
			folded[f] = struct{}{}
		}
	}

	for _, cat := range t.categories {
		if _, ok := folded[cat.folded]; ok {
			return cat.name, true
		}
		for f := range folded {
			if _, ok := cat.aliases[f]; ok {
				return cat.name, true
			}
		}
	}
	return "", false
}

// ResolveTread returns the first collection title, in product order, whose
// folded form is in the resolved category's alias set. The title's own
// display casing is preserved; a title naming the category itself is never
// taken as the tread.
func (t *AliasTable) ResolveTread(collectionTitles []string, categoryName string) (string, bool) {
	cat, ok := t.lookup(categoryName)
	if !ok {
		return "", false
	}

	for _, title := range collectionTitles {
		normalized := NormalizeWhitespace(title)
		f := Fold(normalized)
		if f == "" || f == cat.folded {
			continue
		}
		if _, ok := cat.aliases[f]; ok {
			return normalized, true
		}
	}
	return "", false
}

// CategoryRank orders categories for output: canonical categories by their
// configured position, everything else after them.
func (t *AliasTable) CategoryRank(categoryName string) (int, bool) {
	r, ok := t.rank[Fold(categoryName)]
	return r, ok
}

func (t *AliasTable) lookup(categoryName string) (category, bool) {
	f := Fold(categoryName)
	for _, cat := range t.categories {
		if cat.folded == f {
			return cat, true
		}
	}
	return category{}, false
}

func foldSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if f := Fold(v); f != "" {
			set[f] = struct{}{}
		}
	}
	return set
}
