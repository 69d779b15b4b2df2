package parser

import (
	"awsprice/internal/dictionary"
	"awsprice/internal/feed"
	"awsprice/pkg/pricing"
)

// WarehouseParser handles the data-warehouse node feeds. On-demand
// documents nest node sizes in tiers with one price column; reserved
// documents use the current purchase-option layout (the warehouse feeds
// never used the legacy utilization tiers, and uniquely publish noUpfront
// for the 3-year term too).
type WarehouseParser struct {
	dict *dictionary.Dictionary
}

func NewWarehouseParser(dict *dictionary.Dictionary) *WarehouseParser {
	return &WarehouseParser{dict: dict}
}

func (p *WarehouseParser) Service() pricing.Service { return pricing.ServiceWarehouse }

func (p *WarehouseParser) Parse(raw string, ctx Context) ([]pricing.PriceRecord, error) {
	doc, err := feed.Decode(raw)
	if err != nil {
		return nil, err
	}
	if ctx.Scheme == pricing.SchemeReserved {
		return parseCurrentReserved(doc, ctx, p.dict.Region, p.resolveType, ""), nil
	}
	return p.parseOnDemand(doc, ctx), nil
}

func (p *WarehouseParser) resolveType(code string) string {
	return p.dict.InstanceType(pricing.ServiceWarehouse, code)
}

func (p *WarehouseParser) parseOnDemand(doc *feed.Document, ctx Context) []pricing.PriceRecord {
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
				for _, vc := range tier.ValueColumns {
					price, ok := currencyPrice(vc.Prices, DefaultCurrency)
					if !ok {
						continue
					}
					records = append(records, pricing.PriceRecord{
						Service:       pricing.ServiceWarehouse,
						Region:        name,
						InstanceType:  instanceType,
						Generation:    ctx.Generation,
						PricingScheme: pricing.SchemeOnDemand,
						HourlyPrice:   price,
					})
				}
			}
		}
	}
	return records
}
