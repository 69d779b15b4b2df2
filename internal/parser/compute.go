package parser

import (
	"awsprice/internal/dictionary"
	"awsprice/internal/feed"
	"awsprice/pkg/pricing"
)

// ComputeParser handles the compute-instance feeds. On-demand documents
// nest sizes under instance families with one value column per operating
// system; reserved documents use the current purchase-option layout with
// the OS fixed by the feed variant.
type ComputeParser struct {
	dict *dictionary.Dictionary
}

func NewComputeParser(dict *dictionary.Dictionary) *ComputeParser {
	return &ComputeParser{dict: dict}
}

func (p *ComputeParser) Service() pricing.Service { return pricing.ServiceCompute }

func (p *ComputeParser) Parse(raw string, ctx Context) ([]pricing.PriceRecord, error) {
	doc, err := feed.Decode(raw)
	if err != nil {
		return nil, err
	}
	if ctx.Scheme == pricing.SchemeReserved {
		return parseCurrentReserved(doc, ctx, p.dict.Region, p.resolveType, ctx.OSOrEngine), nil
	}
	return p.parseOnDemand(doc, ctx), nil
}

func (p *ComputeParser) resolveType(code string) string {
	return p.dict.InstanceType(pricing.ServiceCompute, code)
}

func (p *ComputeParser) parseOnDemand(doc *feed.Document, ctx Context) []pricing.PriceRecord {
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
			for _, size := range it.Sizes {
				if size.Size == "" {
					continue
				}
				instanceType := p.resolveType(size.Size)
				// One value column per OS variant.
				for _, vc := range size.ValueColumns {
					price, ok := currencyPrice(vc.Prices, DefaultCurrency)
					if !ok {
						continue
					}
					records = append(records, pricing.PriceRecord{
						Service:                 pricing.ServiceCompute,
						Region:                  name,
						InstanceType:            instanceType,
						Generation:              ctx.Generation,
						OperatingSystemOrEngine: vc.Name,
						PricingScheme:           pricing.SchemeOnDemand,
						HourlyPrice:             price,
					})
				}
			}
		}
	}
	return records
}
