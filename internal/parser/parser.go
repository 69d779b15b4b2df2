// Package parser converts raw feed documents into canonical price records.
// One ServiceParser per service owns that service's ad-hoc document shape;
// the reservation normalizer and the code dictionary are shared so the four
// variants stay thin.
package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"awsprice/internal/dictionary"
	"awsprice/internal/feed"
	"awsprice/internal/reservation"
	"awsprice/pkg/pricing"
)

// DefaultCurrency is the only currency the feeds publish.
const DefaultCurrency = "USD"

// Context identifies the feed a parser is looking at. Everything a
// document does not say about itself — service, scheme, generation, the
// OS or engine variant, the legacy utilization tier — travels here,
// because the source encodes it in the URL, not the payload.
type Context struct {
	Service    pricing.Service
	Scheme     pricing.Scheme
	Generation pricing.Generation

	// OSOrEngine is the feed variant's operating system (compute) or
	// database engine/license tag (database). Empty for cache/warehouse.
	OSOrEngine string

	// Utilization is set for legacy reserved feeds (light/medium/heavy);
	// empty selects the current purchase-option document shape.
	Utilization pricing.PaymentOption

	// Region, when non-empty, keeps only records for that canonical
	// region. Feeds carry all regions in one document.
	Region string
}

// ServiceParser converts one service's raw feed into price records.
// Per-entry problems (missing sub-fields, unparsable price cells) skip the
// entry; only an unparsable document returns an error.
type ServiceParser interface {
	Service() pricing.Service
	Parse(raw string, ctx Context) ([]pricing.PriceRecord, error)
}

// Registry holds the parser for each service.
type Registry struct {
	parsers map[pricing.Service]ServiceParser
}

// NewRegistry registers all four service parsers against a shared
// dictionary.
func NewRegistry(dict *dictionary.Dictionary) *Registry {
	r := &Registry{parsers: make(map[pricing.Service]ServiceParser)}
	r.Register(NewComputeParser(dict))
	r.Register(NewCacheParser(dict))
	r.Register(NewDatabaseParser(dict))
	r.Register(NewWarehouseParser(dict))
	return r
}

// Register adds or replaces the parser for its service.
func (r *Registry) Register(p ServiceParser) {
	r.parsers[p.Service()] = p
}

// For returns the parser registered for a service.
func (r *Registry) For(svc pricing.Service) (ServiceParser, bool) {
	p, ok := r.parsers[svc]
	return p, ok
}

var priceScrub = regexp.MustCompile(`[^0-9.]`)

// parsePrice converts a published price cell to a decimal. Currency signs
// and thousands separators are scrubbed; placeholder text ("N/A") leaves
// nothing parseable and reports ok=false so the entry is skipped.
func parsePrice(p feed.PriceText) (decimal.Decimal, bool) {
	s := priceScrub.ReplaceAllString(string(p), "")
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

func currencyPrice(prices map[string]feed.PriceText, currency string) (decimal.Decimal, bool) {
	p, ok := prices[currency]
	if !ok {
		return decimal.Decimal{}, false
	}
	return parsePrice(p)
}

// keepRegion applies the context's region filter.
func keepRegion(ctx Context, region string) bool {
	return ctx.Region == "" || ctx.Region == region
}

// currentSchemeTerm maps the document's term labels.
func currentSchemeTerm(label string) (pricing.Term, bool) {
	switch label {
	case "yrTerm1":
		return pricing.Term1Year, true
	case "yrTerm3":
		return pricing.Term3Year, true
	}
	return "", false
}

// parseCurrentReserved walks the current-scheme reserved layout shared by
// compute, database and warehouse feeds: instanceTypes[] → terms[] →
// purchaseOptions[] → valueColumns named "upfront" and "monthlyStar".
// The monthly column is the source's published monthly rate and converts
// to hourly at 730 hours/month before amortization.
func parseCurrentReserved(doc *feed.Document, ctx Context, resolveRegion func(string) string, resolveType func(string) string, osOrEngine string) []pricing.PriceRecord {
	var records []pricing.PriceRecord
	if doc.Config == nil {
		return records
	}
	for _, region := range doc.Config.Regions {
		if region.Name == "" {
			continue
		}
		name := resolveRegion(region.Name)
		if !keepRegion(ctx, name) {
			continue
		}
		for _, it := range region.InstanceTypes {
			if it.Type == "" {
				continue
			}
			instanceType := resolveType(it.Type)
			for _, tb := range it.Terms {
				term, ok := currentSchemeTerm(tb.Term)
				if !ok {
					continue
				}
				for _, po := range tb.PurchaseOptions {
					opt := pricing.PaymentOption(po.Option)
					switch opt {
					case pricing.NoUpfront, pricing.PartialUpfront, pricing.AllUpfront:
					default:
						continue
					}

					var upfront, hourly *decimal.Decimal
					for _, vc := range po.ValueColumns {
						price, ok := currencyPrice(vc.Prices, DefaultCurrency)
						if !ok {
							continue
						}
						switch vc.Name {
						case "upfront":
							p := price
							upfront = &p
						case "monthlyStar":
							h := price.Div(reservation.HoursPerMonth)
							hourly = &h
						}
					}

					n, ok := reservation.Normalize(term, opt, upfront, hourly)
					if !ok {
						continue
					}
					up := n.UpfrontPrice
					records = append(records, pricing.PriceRecord{
						Service:                 ctx.Service,
						Region:                  name,
						InstanceType:            instanceType,
						Generation:              ctx.Generation,
						OperatingSystemOrEngine: osOrEngine,
						PricingScheme:           pricing.SchemeReserved,
						Term:                    n.Term,
						PaymentOption:           n.PaymentOption,
						HourlyPrice:             n.EffectiveHourly,
						UpfrontPrice:            &up,
					})
				}
			}
		}
	}
	return records
}

// legacyReservedColumns collects the legacy tier value columns into
// per-term upfront/hourly components. The hourly column name drifted
// between feeds (yrTermNHourly vs yearTermNHourly); both spellings occur.
type legacyComponents struct {
	upfront1, hourly1 *decimal.Decimal
	upfront3, hourly3 *decimal.Decimal
}

func collectLegacyColumns(columns []feed.ValueColumn) legacyComponents {
	var c legacyComponents
	for _, vc := range columns {
		price, ok := currencyPrice(vc.Prices, DefaultCurrency)
		if !ok {
			continue
		}
		p := price
		switch vc.Name {
		case "yrTerm1":
			c.upfront1 = &p
		case "yrTerm1Hourly", "yearTerm1Hourly":
			c.hourly1 = &p
		case "yrTerm3":
			c.upfront3 = &p
		case "yrTerm3Hourly", "yearTerm3Hourly":
			c.hourly3 = &p
		}
	}
	return c
}

// emitLegacyReserved turns collected components into records, one per term
// that published anything.
func emitLegacyReserved(ctx Context, region, instanceType, osOrEngine string, c legacyComponents) []pricing.PriceRecord {
	var records []pricing.PriceRecord
	emit := func(term pricing.Term, upfront, hourly *decimal.Decimal) {
		n, ok := reservation.Normalize(term, ctx.Utilization, upfront, hourly)
		if !ok {
			return
		}
		up := n.UpfrontPrice
		records = append(records, pricing.PriceRecord{
			Service:                 ctx.Service,
			Region:                  region,
			InstanceType:            instanceType,
			Generation:              ctx.Generation,
			OperatingSystemOrEngine: osOrEngine,
			PricingScheme:           pricing.SchemeReserved,
			Term:                    n.Term,
			PaymentOption:           n.PaymentOption,
			HourlyPrice:             n.EffectiveHourly,
			UpfrontPrice:            &up,
		})
	}
	emit(pricing.Term1Year, c.upfront1, c.hourly1)
	emit(pricing.Term3Year, c.upfront3, c.hourly3)
	return records
}

// multiAZDeployment reports whether a legacy database deployment class
// code names a multi-az table.
func multiAZDeployment(code string) bool {
	return strings.HasPrefix(code, "multiAZ")
}
