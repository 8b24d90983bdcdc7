package catalog

import "sort"

// Skip reasons reported when the debug flag is set.
const (
	SkipNoCategory = "no_category"
	SkipNoTread    = "no_tread"
	SkipNoSKU      = "no_sku"
)

const maxSkipExamples = 10

// SkipReason counts one exclusion cause, with a few example product titles.
type SkipReason struct {
	Count    int      `json:"count"`
	Examples []string `json:"examples,omitempty"`
}

// SkipReport aggregates every product or variant excluded during a build.
type SkipReport map[string]*SkipReason

func (r SkipReport) add(reason, example string) {
	entry := r[reason]
	if entry == nil {
		entry = &SkipReason{}
		r[reason] = entry
	}
	entry.Count++
	if example != "" && len(entry.Examples) < maxSkipExamples {
		entry.Examples = append(entry.Examples, example)
	}
}

type groupKey struct {
	categoria   string
	foldedTread string
}

// Builder accumulates groups-under-construction keyed by (categoria,
// folded tread). Nothing partially built escapes it; Finalize produces the
// deduplicated, sorted output in one shot.
type Builder struct {
	table     *AliasTable
	groups    map[groupKey]*Group
	order     []groupKey     // encounter order of group keys
	seen      map[string]int // folded category -> encounter index, for non-canonical ordering
	itemCount int
	skips     SkipReport
}

func NewBuilder(table *AliasTable) *Builder {
	return &Builder{
		table:  table,
		groups: make(map[groupKey]*Group),
		seen:   make(map[string]int),
		skips:  make(SkipReport),
	}
}

// Add classifies one product and appends its variants. Products that
// resolve to no category or no tread are dropped entirely; variants with
// an empty SKU are dropped individually.
func (b *Builder) Add(p RawProduct) {
	categoria, ok := b.table.ResolveCategory(p.Collections)
	if !ok {
		b.skips.add(SkipNoCategory, p.Title)
		return
	}

	grabado, ok := b.table.ResolveTread(p.Collections, categoria)
	if !ok {
		b.skips.add(SkipNoTread, p.Title)
		return
	}

	key := groupKey{categoria: categoria, foldedTread: Fold(grabado)}
	g := b.groups[key]
	if g == nil {
		g = &Group{Categoria: categoria, Grabado: grabado}
		b.groups[key] = g
		b.order = append(b.order, key)
		if _, ok := b.seen[Fold(categoria)]; !ok {
			b.seen[Fold(categoria)] = len(b.seen)
		}
	}

	g.Imagen = firstNonEmpty(g.Imagen, NormalizeWhitespace(p.ImageURL))
	g.Apps = firstNonEmpty(g.Apps, NormalizeWhitespace(p.Applications))

	for _, v := range p.Variants {
		sku := NormalizeWhitespace(v.SKU)
		if sku == "" {
			b.skips.add(SkipNoSKU, p.Title)
			continue
		}
		g.Items = append(g.Items, DeriveItem(sku, NormalizeWhitespace(v.Title), ParsePrice(v.Price), v.InventoryQuantity))
		b.itemCount++
	}
}

// ItemCount reports how many items have been appended so far, before
// deduplication. The service uses it for the soft result cap.
func (b *Builder) ItemCount() int {
	return b.itemCount
}

// Skips returns the exclusion report accumulated so far.
func (b *Builder) Skips() SkipReport {
	return b.skips
}

// Finalize deduplicates and sorts every group into the output sequence.
// Items dedupe by SKU keeping the last occurrence, then sort by SKU.
// Groups sort by canonical category order (unknown categories after all
// known ones, in encounter order), then by folded tread.
func (b *Builder) Finalize() []Group {
	out := make([]Group, 0, len(b.groups))
	for _, key := range b.order {
		g := *b.groups[key]
		g.Items = dedupeItems(g.Items)
		out = append(out, g)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := b.categoryRank(out[i].Categoria), b.categoryRank(out[j].Categoria)
		if ri != rj {
			return ri < rj
		}
		return Fold(out[i].Grabado) < Fold(out[j].Grabado)
	})

	return out
}

func (b *Builder) categoryRank(categoria string) int {
	if r, ok := b.table.CategoryRank(categoria); ok {
		return r
	}
	// Past every canonical category, ordered by first encounter.
	return len(b.table.rank) + b.seen[Fold(categoria)]
}

// firstNonEmpty is the merge policy for group-level image and applications
// text: the first non-empty value wins and is never overwritten.
func firstNonEmpty(current, candidate string) string {
	if current != "" {
		return current
	}
	return candidate
}

// dedupeItems is the merge policy for SKU collisions: the last occurrence
// in append order wins. The survivors come back sorted by SKU.
func dedupeItems(items []Item) []Item {
	uniq := make(map[string]Item, len(items))
	for _, it := range items {
		uniq[it.SKU] = it
	}

	skus := make([]string, 0, len(uniq))
	for sku := range uniq {
		skus = append(skus, sku)
	}
	sort.Strings(skus)

	out := make([]Item, 0, len(uniq))
	for _, sku := range skus {
		out = append(out, uniq[sku])
	}
	return out
}
