// Package pricing defines the canonical price record produced by the
// service parsers and consumed by the output formatters and stores.
package pricing

import "github.com/shopspring/decimal"

// Service identifies one of the four priced services.
type Service string

const (
	ServiceCompute   Service = "compute"   // EC2 instances
	ServiceCache     Service = "cache"     // ElastiCache nodes
	ServiceDatabase  Service = "database"  // RDS instances
	ServiceWarehouse Service = "warehouse" // Redshift nodes
)

// AllServices returns the services in canonical output order.
func AllServices() []Service {
	return []Service{ServiceCompute, ServiceCache, ServiceDatabase, ServiceWarehouse}
}

// Scheme is the pricing scheme of a record.
type Scheme string

const (
	SchemeOnDemand Scheme = "ondemand"
	SchemeReserved Scheme = "reserved"
)

// Generation is the provider's hardware-family classification.
type Generation string

const (
	GenerationCurrent  Generation = "current"
	GenerationPrevious Generation = "previous"
)

// Term is the reservation commitment length.
type Term string

const (
	Term1Year Term = "1yr"
	Term3Year Term = "3yr"
)

// PaymentOption is the reservation payment structure. The first three
// belong to the current purchase-option scheme, the utilization tiers to
// the legacy one.
type PaymentOption string

const (
	NoUpfront          PaymentOption = "noUpfront"
	PartialUpfront     PaymentOption = "partialUpfront"
	AllUpfront         PaymentOption = "allUpfront"
	LightUtilization   PaymentOption = "light"
	MediumUtilization  PaymentOption = "medium"
	HeavyUtilization   PaymentOption = "heavy"
)

// PriceRecord is the single canonical shape every feed normalizes into.
// HourlyPrice is always the effective hourly rate: for reserved records
// the upfront component is already amortized in. Term and PaymentOption
// are set iff PricingScheme is SchemeReserved.
type PriceRecord struct {
	Service                 Service          `json:"service"`
	Region                  string           `json:"region"`
	InstanceType            string           `json:"instanceType"`
	Generation              Generation       `json:"generation"`
	OperatingSystemOrEngine string           `json:"operatingSystemOrEngine,omitempty"`
	PricingScheme           Scheme           `json:"pricingScheme"`
	Term                    Term             `json:"term,omitempty"`
	PaymentOption           PaymentOption    `json:"paymentOption,omitempty"`
	HourlyPrice             decimal.Decimal  `json:"hourlyPrice"`
	UpfrontPrice            *decimal.Decimal `json:"upfrontPrice,omitempty"`
}

// Dataset is an ordered sequence of price records. Order is
// (service, scheme, generation, region) for reproducibility; duplicates
// are tolerated and simply appended.
type Dataset []PriceRecord
