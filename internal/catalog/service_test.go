package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	pages   []Page
	err     error
	errPage int
	fetches int
	cursors []string
}

func (s *fakeSource) FetchProductsPage(ctx context.Context, cursor string) (*Page, error) {
	s.cursors = append(s.cursors, cursor)
	if s.err != nil && s.fetches == s.errPage {
		return nil, s.err
	}
	page := s.pages[s.fetches]
	s.fetches++
	return &page, nil
}

func snakeProduct(sku string) RawProduct {
	return RawProduct{
		Title:       "Snake " + sku,
		Collections: []string{"Touring", "Snake"},
		Variants:    []RawVariant{{SKU: sku, Price: "119000", InventoryQuantity: 1}},
	}
}

func testConfig() Config {
	return Config{
		CategoryOrder: []string{"TOURING"},
		Aliases:       map[string][]string{"TOURING": {"Snake"}},
	}
}

func TestServicePaginationTerminates(t *testing.T) {
	source := &fakeSource{pages: []Page{
		{Products: []RawProduct{snakeProduct("P1-A")}, HasNext: true, EndCursor: "c1"},
		{Products: []RawProduct{snakeProduct("P2-A")}, HasNext: true, EndCursor: "c2"},
		{Products: []RawProduct{snakeProduct("P3-A")}, HasNext: false},
	}}

	service := NewService(source, testConfig())
	result, err := service.Build(context.Background(), BuildOptions{})
	require.NoError(t, err)

	// Exactly one fetch per page, no fetch past the hasNextPage=false one,
	// and each call carries the previous page's cursor.
	assert.Equal(t, 3, source.fetches)
	assert.Equal(t, []string{"", "c1", "c2"}, source.cursors)

	require.Len(t, result.Groups, 1)
	assert.Len(t, result.Groups[0].Items, 3)
}

func TestServiceUpstreamFailureAbortsBuild(t *testing.T) {
	upstream := errors.New("boom")
	source := &fakeSource{
		pages:   []Page{{Products: []RawProduct{snakeProduct("P1-A")}, HasNext: true, EndCursor: "c1"}},
		err:     upstream,
		errPage: 1,
	}

	service := NewService(source, testConfig())
	result, err := service.Build(context.Background(), BuildOptions{})

	// No partial catalog survives a failed page.
	require.Error(t, err)
	assert.ErrorIs(t, err, upstream)
	assert.Nil(t, result)
}

func TestServiceSoftLimitStopsPagination(t *testing.T) {
	source := &fakeSource{pages: []Page{
		{Products: []RawProduct{snakeProduct("A"), snakeProduct("B")}, HasNext: true, EndCursor: "c1"},
		{Products: []RawProduct{snakeProduct("C")}, HasNext: false},
	}}

	service := NewService(source, testConfig())
	result, err := service.Build(context.Background(), BuildOptions{Limit: 2})
	require.NoError(t, err)

	assert.Equal(t, 1, source.fetches)
	assert.Len(t, result.Groups[0].Items, 2)
}

func TestServiceDebugSkipReport(t *testing.T) {
	unclassified := RawProduct{Title: "Gift Card", Collections: []string{"Gift Cards"}}
	source := &fakeSource{pages: []Page{
		{Products: []RawProduct{snakeProduct("A"), unclassified}},
	}}

	service := NewService(source, testConfig())
	result, err := service.Build(context.Background(), BuildOptions{Debug: true})
	require.NoError(t, err)

	require.NotNil(t, result.Skipped)
	require.NotNil(t, result.Skipped[SkipNoCategory])
	assert.Equal(t, 1, result.Skipped[SkipNoCategory].Count)
	assert.Equal(t, []string{"Gift Card"}, result.Skipped[SkipNoCategory].Examples)

	// Dropped products do not affect the group count.
	assert.Len(t, result.Groups, 1)
}

func TestServiceNoSkipReportWithoutDebug(t *testing.T) {
	source := &fakeSource{pages: []Page{
		{Products: []RawProduct{{Title: "Gift Card", Collections: []string{"Gift Cards"}}}},
	}}

	service := NewService(source, testConfig())
	result, err := service.Build(context.Background(), BuildOptions{})
	require.NoError(t, err)

	assert.Nil(t, result.Skipped)
	assert.Empty(t, result.Groups)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, ClampLimit(0))
	assert.Equal(t, DefaultLimit, ClampLimit(-5))
	assert.Equal(t, 1, ClampLimit(1))
	assert.Equal(t, 300, ClampLimit(300))
	assert.Equal(t, MaxLimit, ClampLimit(999999))
}
