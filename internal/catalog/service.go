package catalog

import (
	"context"
	"fmt"
)

// Result-cap bounds for one build. The limit is a soft cap: pagination
// stops once the accumulated item count reaches it, already-built groups
// are returned untrimmed.
const (
	DefaultLimit = 300
	MinLimit     = 1
	MaxLimit     = 5000
)

// BuildOptions are the per-request knobs of a catalog build.
type BuildOptions struct {
	Limit int
	Debug bool
}

// Result is one finished catalog build.
type Result struct {
	Groups  []Group
	Skipped SkipReport // populated only when Debug was set
}

// Service drives sequential pagination over a ProductSource and feeds the
// Builder. Each build starts from scratch; nothing is shared or cached
// across requests.
type Service struct {
	source ProductSource
	table  *AliasTable
}

func NewService(source ProductSource, cfg Config) *Service {
	return &Service{
		source: source,
		table:  NewAliasTable(cfg),
	}
}

// Build fetches every page and returns the grouped catalog. Any page-level
// failure aborts the whole build; there is no partial output.
func (s *Service) Build(ctx context.Context, opts BuildOptions) (*Result, error) {
	limit := ClampLimit(opts.Limit)
	builder := NewBuilder(s.table)

	cursor := ""
	for {
		page, err := s.source.FetchProductsPage(ctx, cursor)
		if err != nil {
			return nil, fmt.Errorf("catalog build aborted: %w", err)
		}

		for _, p := range page.Products {
			builder.Add(p)
		}

		if !page.HasNext || builder.ItemCount() >= limit {
			break
		}
		cursor = page.EndCursor
	}

	result := &Result{Groups: builder.Finalize()}
	if opts.Debug {
		result.Skipped = builder.Skips()
	}
	return result, nil
}

// ClampLimit maps a requested cap into [MinLimit, MaxLimit], with zero and
// negative values falling back to the default.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit < MinLimit {
		return MinLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
