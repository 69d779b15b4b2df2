// Package harvest drives the fetch → parse → consolidate pipeline for a
// set of selection tuples. Failures stay local: a feed that cannot be
// fetched or parsed is recorded and the remaining feeds still land in the
// dataset, so partial input yields a valid, smaller result.
package harvest

import (
	"context"
	"fmt"
	"log/slog"

	"awsprice/internal/consolidate"
	"awsprice/internal/fetch"
	"awsprice/internal/parser"
	"awsprice/pkg/pricing"
)

// Fetcher retrieves the raw document for one feed source.
type Fetcher interface {
	Fetch(ctx context.Context, src fetch.Source) (string, error)
}

// Selection is one (service, scheme, generation) request, optionally
// narrowed to a single canonical region.
type Selection struct {
	Service    pricing.Service
	Scheme     pricing.Scheme
	Generation pricing.Generation
	Region     string
}

// Engine wires a fetcher to the parser registry.
type Engine struct {
	fetcher Fetcher
	parsers *parser.Registry
	logger  *slog.Logger
}

func NewEngine(fetcher Fetcher, parsers *parser.Registry, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{fetcher: fetcher, parsers: parsers, logger: logger}
}

// Run processes the selections in order and returns the consolidated
// dataset plus every per-document error encountered. The error list being
// non-empty never invalidates the dataset; the caller decides how to
// report it.
func (e *Engine) Run(ctx context.Context, selections []Selection) (pricing.Dataset, []error) {
	var sets [][]pricing.PriceRecord
	var errs []error

	for _, sel := range selections {
		p, ok := e.parsers.For(sel.Service)
		if !ok {
			errs = append(errs, fmt.Errorf("no parser registered for service %q", sel.Service))
			continue
		}
		for _, src := range fetch.Sources(sel.Service, sel.Scheme, sel.Generation) {
			raw, err := e.fetcher.Fetch(ctx, src)
			if err != nil {
				e.logger.Warn("feed fetch failed, skipping source",
					"service", src.Service, "scheme", src.Scheme,
					"generation", src.Generation, "url", src.URL, "error", err)
				errs = append(errs, err)
				continue
			}

			records, err := p.Parse(raw, parser.Context{
				Service:     sel.Service,
				Scheme:      sel.Scheme,
				Generation:  sel.Generation,
				OSOrEngine:  src.OSOrEngine,
				Utilization: src.Utilization,
				Region:      sel.Region,
			})
			if err != nil {
				e.logger.Warn("feed parse failed, skipping document",
					"service", src.Service, "scheme", src.Scheme,
					"generation", src.Generation, "url", src.URL, "error", err)
				errs = append(errs, &pricing.FeedParseError{
					Service:    sel.Service,
					Region:     sel.Region,
					Scheme:     sel.Scheme,
					Generation: sel.Generation,
					Err:        err,
				})
				continue
			}
			sets = append(sets, records)
		}
	}

	return consolidate.Consolidate(sets...), errs
}

// Expand builds the selection set for possibly-plural service, scheme and
// generation choices, in canonical output order.
func Expand(services []pricing.Service, schemes []pricing.Scheme, generations []pricing.Generation, region string) []Selection {
	var out []Selection
	for _, svc := range services {
		for _, scheme := range schemes {
			for _, gen := range generations {
				out = append(out, Selection{Service: svc, Scheme: scheme, Generation: gen, Region: region})
			}
		}
	}
	return out
}
