package parser

import (
	"awsprice/internal/dictionary"
	"awsprice/internal/feed"
	"awsprice/pkg/pricing"
)

// CacheParser handles the managed-cache feeds. Both schemes use internal
// region codes and internal node-class codes that need the dictionary.
// On-demand documents price tiers inline; reserved documents are legacy
// utilization tiers (light/medium/heavy), one feed per tier.
type CacheParser struct {
	dict *dictionary.Dictionary
}

func NewCacheParser(dict *dictionary.Dictionary) *CacheParser {
	return &CacheParser{dict: dict}
}

func (p *CacheParser) Service() pricing.Service { return pricing.ServiceCache }

func (p *CacheParser) Parse(raw string, ctx Context) ([]pricing.PriceRecord, error) {
	doc, err := feed.Decode(raw)
	if err != nil {
		return nil, err
	}
	if ctx.Scheme == pricing.SchemeReserved {
		return p.parseReserved(doc, ctx), nil
	}
	return p.parseOnDemand(doc, ctx), nil
}

func (p *CacheParser) resolveType(code string) string {
	return p.dict.InstanceType(pricing.ServiceCache, code)
}

func (p *CacheParser) parseOnDemand(doc *feed.Document, ctx Context) []pricing.PriceRecord {
	var records []pricing.PriceRecord
	if doc.Config == nil {
		return records
	}
	for _, region := range doc.Config.Regions {
		if region.Name == "" {
			continue
		}
		name := p.dict.Region(region.Name)
		if !keepRegion(ctx, name) {
			continue
		}
		for _, it := range region.Types {
			for _, tier := range it.Tiers {
				if tier.Name == "" {
					continue
				}
				price, ok := currencyPrice(tier.Prices, DefaultCurrency)
				if !ok {
					continue
				}
				records = append(records, pricing.PriceRecord{
					Service:       pricing.ServiceCache,
					Region:        name,
					InstanceType:  p.resolveType(tier.Name),
					Generation:    ctx.Generation,
					PricingScheme: pricing.SchemeOnDemand,
					HourlyPrice:   price,
				})
			}
		}
	}
	return records
}

func (p *CacheParser) parseReserved(doc *feed.Document, ctx Context) []pricing.PriceRecord {
	var records []pricing.PriceRecord
	if doc.Config == nil {
		return records
	}
	for _, region := range doc.Config.Regions {
		if region.Name == "" {
			continue
		}
		name := p.dict.Region(region.Name)
		if !keepRegion(ctx, name) {
			continue
		}
		for _, it := range region.InstanceTypes {
			for _, tier := range it.Tiers {
				if tier.Size == "" {
					continue
				}
				instanceType := p.resolveType(tier.Size)
				c := collectLegacyColumns(tier.ValueColumns)
				records = append(records, emitLegacyReserved(ctx, name, instanceType, "", c)...)
			}
		}
	}
	return records
}
