package parser

import (
	"awsprice/internal/dictionary"
	"awsprice/internal/feed"
	"awsprice/pkg/pricing"
)

// DatabaseParser handles the managed relational database feeds. The
// engine, license model and deployment (single vs multi-az) come from the
// feed variant, folded into the context's OSOrEngine tag. Reserved pricing
// exists in both layouts: the purchase-option scheme for most engines and
// the legacy utilization tiers for the license-included MSSQL variants.
type DatabaseParser struct {
	dict *dictionary.Dictionary
}

func NewDatabaseParser(dict *dictionary.Dictionary) *DatabaseParser {
	return &DatabaseParser{dict: dict}
}

func (p *DatabaseParser) Service() pricing.Service { return pricing.ServiceDatabase }

func (p *DatabaseParser) Parse(raw string, ctx Context) ([]pricing.PriceRecord, error) {
	doc, err := feed.Decode(raw)
	if err != nil {
		return nil, err
	}
	if ctx.Scheme == pricing.SchemeReserved {
		if ctx.Utilization != "" {
			return p.parseLegacyReserved(doc, ctx), nil
		}
		return parseCurrentReserved(doc, ctx, p.dict.Region, p.resolveType, ctx.OSOrEngine), nil
	}
	return p.parseOnDemand(doc, ctx), nil
}

func (p *DatabaseParser) resolveType(code string) string {
	return p.dict.InstanceType(pricing.ServiceDatabase, code)
}

func (p *DatabaseParser) parseOnDemand(doc *feed.Document, ctx Context) []pricing.PriceRecord {
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
					Service:                 pricing.ServiceDatabase,
					Region:                  name,
					InstanceType:            p.resolveType(tier.Name),
					Generation:              ctx.Generation,
					OperatingSystemOrEngine: ctx.OSOrEngine,
					PricingScheme:           pricing.SchemeOnDemand,
					HourlyPrice:             price,
				})
			}
		}
	}
	return records
}

func (p *DatabaseParser) parseLegacyReserved(doc *feed.Document, ctx Context) []pricing.PriceRecord {
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
			// Legacy documents group tiers under deployment classes; the
			// class code tells single from multi-az.
			engine := ctx.OSOrEngine
			if multiAZDeployment(it.Type) {
				engine += ":multi-az"
			}
			for _, tier := range it.Tiers {
				if tier.Size == "" {
					continue
				}
				instanceType := p.resolveType(tier.Size)
				c := collectLegacyColumns(tier.ValueColumns)
				records = append(records, emitLegacyReserved(ctx, name, instanceType, engine, c)...)
			}
		}
	}
	return records
}
