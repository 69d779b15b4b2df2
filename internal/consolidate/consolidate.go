// Package consolidate merges per-feed record sets into one dataset.
package consolidate

import (
	"sort"

	"awsprice/pkg/pricing"
)

var serviceOrder = map[pricing.Service]int{
	pricing.ServiceCompute:   0,
	pricing.ServiceCache:     1,
	pricing.ServiceDatabase:  2,
	pricing.ServiceWarehouse: 3,
}

var schemeOrder = map[pricing.Scheme]int{
	pricing.SchemeOnDemand: 0,
	pricing.SchemeReserved: 1,
}

var generationOrder = map[pricing.Generation]int{
	pricing.GenerationCurrent:  0,
	pricing.GenerationPrevious: 1,
}

// Consolidate concatenates record sets and applies the canonical
// (service, scheme, generation, region) ordering with a stable sort, so
// the result is independent of fetch-arrival order and a concurrent
// driver cannot change it. Within one key, feed order is preserved.
// Nothing is deduplicated or validated: duplicate keys across feed
// updates are tolerated and simply appended.
func Consolidate(sets ...[]pricing.PriceRecord) pricing.Dataset {
	var ds pricing.Dataset
	for _, set := range sets {
		ds = append(ds, set...)
	}
	sort.SliceStable(ds, func(i, j int) bool {
		a, b := ds[i], ds[j]
		if serviceOrder[a.Service] != serviceOrder[b.Service] {
			return serviceOrder[a.Service] < serviceOrder[b.Service]
		}
		if schemeOrder[a.PricingScheme] != schemeOrder[b.PricingScheme] {
			return schemeOrder[a.PricingScheme] < schemeOrder[b.PricingScheme]
		}
		if generationOrder[a.Generation] != generationOrder[b.Generation] {
			return generationOrder[a.Generation] < generationOrder[b.Generation]
		}
		return a.Region < b.Region
	})
	return ds
}
