package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultOrder() []string {
	return []string{"TOURING", "ADVENTURE", "TRAIL RALLY", "THREE WHEELS", "SCOOTER"}
}

func TestBuilderEndToEndScenario(t *testing.T) {
	table := NewAliasTable(Config{
		CategoryOrder: defaultOrder(),
		Aliases:       map[string][]string{"TOURING": {"TOURING", "Model X"}},
	})

	b := NewBuilder(table)
	b.Add(RawProduct{
		Title:       "Model X",
		Collections: []string{"Touring", "Model X"},
		Variants: []RawVariant{
			{SKU: "ABC123", Price: "119000", InventoryQuantity: 5},
		},
	})

	groups := b.Finalize()
	require.Len(t, groups, 1)

	g := groups[0]
	assert.Equal(t, "TOURING", g.Categoria)
	assert.Equal(t, "Model X", g.Grabado)
	require.Len(t, g.Items, 1)

	item := g.Items[0]
	assert.Equal(t, "ABC123", item.SKU)
	assert.Equal(t, 5, item.Inventario)
	assert.Equal(t, 100000.0, item.PrecioSinIVA)
	assert.Equal(t, 119000.0, item.PrecioConIVA)
	assert.Equal(t, 77350.0, item.Precio35)
	assert.Equal(t, 83300.0, item.Precio30)
	assert.Equal(t, 89250.0, item.Precio25)
	assert.Equal(t, 95200.0, item.Precio20)
}

func TestBuilderDedupKeepsLastVariant(t *testing.T) {
	table := NewAliasTable(Config{
		CategoryOrder: []string{"TOURING"},
		Aliases:       map[string][]string{"TOURING": {"Snake"}},
	})

	b := NewBuilder(table)
	b.Add(RawProduct{
		Collections: []string{"Touring", "Snake"},
		Variants: []RawVariant{
			{SKU: "DUP-1", Price: "100", InventoryQuantity: 1},
			{SKU: "DUP-1", Price: "200", InventoryQuantity: 9},
		},
	})

	groups := b.Finalize()
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Items, 1)

	// The later variant wins on SKU collision.
	assert.Equal(t, 200.0, groups[0].Items[0].PrecioConIVA)
	assert.Equal(t, 9, groups[0].Items[0].Inventario)
}

func TestBuilderFirstNonEmptyImageAndApps(t *testing.T) {
	table := NewAliasTable(Config{
		CategoryOrder: []string{"TOURING"},
		Aliases:       map[string][]string{"TOURING": {"Snake"}},
	})

	b := NewBuilder(table)
	b.Add(RawProduct{Collections: []string{"Touring", "Snake"}})
	b.Add(RawProduct{
		Collections:  []string{"Touring", "Snake"},
		ImageURL:     "https://cdn/img-a.png",
		Applications: "NKD 125",
	})
	b.Add(RawProduct{
		Collections:  []string{"Touring", "Snake"},
		ImageURL:     "https://cdn/img-b.png",
		Applications: "Pulsar 180",
	})

	groups := b.Finalize()
	require.Len(t, groups, 1)

	// First non-empty value wins and is never overwritten.
	assert.Equal(t, "https://cdn/img-a.png", groups[0].Imagen)
	assert.Equal(t, "NKD 125", groups[0].Apps)
}

func TestBuilderItemsSortedBySKU(t *testing.T) {
	table := NewAliasTable(Config{
		CategoryOrder: []string{"TOURING"},
		Aliases:       map[string][]string{"TOURING": {"Snake"}},
	})

	b := NewBuilder(table)
	b.Add(RawProduct{
		Collections: []string{"Touring", "Snake"},
		Variants: []RawVariant{
			{SKU: "ZZ-9", Price: "1"},
			{SKU: "AA-1", Price: "1"},
			{SKU: "MM-5", Price: "1"},
		},
	})

	groups := b.Finalize()
	require.Len(t, groups, 1)

	skus := make([]string, 0, 3)
	for _, it := range groups[0].Items {
		skus = append(skus, it.SKU)
	}
	assert.Equal(t, []string{"AA-1", "MM-5", "ZZ-9"}, skus)
}

func TestBuilderGroupOrdering(t *testing.T) {
	table := NewAliasTable(Config{
		CategoryOrder: []string{"TOURING", "ADVENTURE"},
		Aliases: map[string][]string{
			"TOURING":   {"Snake", "Angus"},
			"ADVENTURE": {"Karoo"},
			"SCOOTER":   {"City Glide"},
			"VINTAGE":   {"Classic 70"},
		},
	})

	b := NewBuilder(table)
	// Arrival order deliberately scrambled.
	b.Add(RawProduct{Collections: []string{"Scooter", "City Glide"}, Variants: []RawVariant{{SKU: "S1"}}})
	b.Add(RawProduct{Collections: []string{"Adventure", "Karoo"}, Variants: []RawVariant{{SKU: "K1"}}})
	b.Add(RawProduct{Collections: []string{"Touring", "Snake"}, Variants: []RawVariant{{SKU: "T1"}}})
	b.Add(RawProduct{Collections: []string{"Vintage", "Classic 70"}, Variants: []RawVariant{{SKU: "V1"}}})
	b.Add(RawProduct{Collections: []string{"Touring", "Angus"}, Variants: []RawVariant{{SKU: "T2"}}})

	groups := b.Finalize()
	require.Len(t, groups, 5)

	// Canonical categories first in configured order, treads sorted within
	// a category; non-canonical categories last, in encounter order.
	assert.Equal(t, "Angus", groups[0].Grabado)
	assert.Equal(t, "Snake", groups[1].Grabado)
	assert.Equal(t, "ADVENTURE", groups[2].Categoria)
	assert.Equal(t, "SCOOTER", groups[3].Categoria)
	assert.Equal(t, "VINTAGE", groups[4].Categoria)
}

func TestBuilderDropsUnclassifiedProducts(t *testing.T) {
	table := NewAliasTable(Config{
		CategoryOrder: []string{"TOURING"},
		Aliases:       map[string][]string{"TOURING": {"Snake"}},
	})

	b := NewBuilder(table)
	b.Add(RawProduct{Title: "Gift Card", Collections: []string{"Gift Cards"}})
	b.Add(RawProduct{Title: "Orphan", Collections: []string{"Touring"}}) // category but no tread
	b.Add(RawProduct{
		Title:       "Snake 90/90",
		Collections: []string{"Touring", "Snake"},
		Variants:    []RawVariant{{SKU: "OK-1", Price: "1"}, {SKU: "  ", Price: "2"}},
	})

	groups := b.Finalize()
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Items, 1)

	skips := b.Skips()
	require.NotNil(t, skips[SkipNoCategory])
	assert.Equal(t, 1, skips[SkipNoCategory].Count)
	assert.Equal(t, []string{"Gift Card"}, skips[SkipNoCategory].Examples)

	require.NotNil(t, skips[SkipNoTread])
	assert.Equal(t, 1, skips[SkipNoTread].Count)

	require.NotNil(t, skips[SkipNoSKU])
	assert.Equal(t, 1, skips[SkipNoSKU].Count)
}

func TestSkipReportCapsExamples(t *testing.T) {
	r := make(SkipReport)
	for i := 0; i < 25; i++ {
		r.add(SkipNoCategory, "product")
	}

	assert.Equal(t, 25, r[SkipNoCategory].Count)
	assert.Len(t, r[SkipNoCategory].Examples, 10)
}

func TestBuilderDuplicateTreadAcrossProducts(t *testing.T) {
	table := NewAliasTable(Config{
		CategoryOrder: defaultOrder(),
		Aliases:       map[string][]string{"TOURING": {"Snake"}},
	})

	b := NewBuilder(table)
	b.Add(RawProduct{Collections: []string{"Touring", "Snake"}, Variants: []RawVariant{{SKU: "A"}}})
	// Accent variant of the same tread must reuse the same group.
	b.Add(RawProduct{Collections: []string{"Touring", "Snáke"}, Variants: []RawVariant{{SKU: "B"}}})

	groups := b.Finalize()
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Items, 2)
}
