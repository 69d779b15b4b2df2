// Package feed decodes the raw price-list documents published by the
// pricing pages. The documents are JS literals, not strict JSON: they may
// open with a block-comment banner, wrap the payload in callback(...), and
// leave object keys unquoted. Decode normalizes that into JSON and
// unmarshals into the shared document shape.
package feed

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Document is the top-level feed shape shared by all four services.
type Document struct {
	Config *Config `json:"config"`
}

// Config holds the currency and the per-region price tables.
type Config struct {
	Currency string   `json:"currency"`
	Unit     string   `json:"unit"`
	Regions  []Region `json:"regions"`
}

// Region is one region's table. On-demand cache and database feeds list
// entries under "types", everything else under "instanceTypes".
type Region struct {
	Name          string         `json:"region"`
	InstanceTypes []InstanceType `json:"instanceTypes"`
	Types         []InstanceType `json:"types"`
}

// InstanceType is one instance-family block. Exactly one of Sizes, Tiers
// or Terms is populated depending on the feed variant.
type InstanceType struct {
	Type  string      `json:"type"`
	Sizes []Size      `json:"sizes"`
	Tiers []Tier      `json:"tiers"`
	Terms []TermBlock `json:"terms"`
}

// Size is an on-demand compute entry: one instance size with one value
// column per operating system.
type Size struct {
	Size         string        `json:"size"`
	ValueColumns []ValueColumn `json:"valueColumns"`
}

// Tier is the legacy table row: the entry code sits in Size or Name and
// prices sit either inline or in value columns.
type Tier struct {
	Size         string               `json:"size"`
	Name         string               `json:"name"`
	Prices       map[string]PriceText `json:"prices"`
	ValueColumns []ValueColumn        `json:"valueColumns"`
}

// TermBlock is a current-scheme reservation term (yrTerm1 / yrTerm3).
type TermBlock struct {
	Term            string           `json:"term"`
	PurchaseOptions []PurchaseOption `json:"purchaseOptions"`
}

// PurchaseOption holds the value columns of one payment option.
type PurchaseOption struct {
	Option       string        `json:"purchaseOption"`
	ValueColumns []ValueColumn `json:"valueColumns"`
}

// ValueColumn is a named price cell keyed by currency.
type ValueColumn struct {
	Name   string               `json:"name"`
	Prices map[string]PriceText `json:"prices"`
}

// PriceText is a price cell as published: usually a decimal string, but
// the source occasionally emits bare numbers or placeholder text. Values
// that are neither are kept verbatim and rejected later by the parsers.
type PriceText string

func (p *PriceText) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*p = PriceText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*p = PriceText(n.String())
		return nil
	}
	*p = ""
	return nil
}

var (
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	// Quotes bare object keys. Keys already quoted are untouched because
	// the closing quote breaks the match.
	bareKey      = regexp.MustCompile(`([a-zA-Z0-9]+):`)
	callbackOpen = regexp.MustCompile(`^\s*callback\(`)
)

// Decode turns one raw feed document into its structured form. The cleanup
// mirrors what the pricing pages' own JS does in reverse: strip the comment
// banner, unwrap the callback, quote the keys.
func Decode(raw string) (*Document, error) {
	s := blockComment.ReplaceAllString(raw, "")
	s = strings.TrimSpace(s)
	if callbackOpen.MatchString(s) {
		s = callbackOpen.ReplaceAllString(s, "")
		s = strings.TrimRight(s, "; \t\r\n")
		s = strings.TrimSuffix(s, ")")
	}
	s = strings.TrimRight(s, "; \t\r\n")
	s = bareKey.ReplaceAllString(s, `"$1":`)

	var doc Document
	if err := json.Unmarshal([]byte(s), &doc); err != nil {
		return nil, fmt.Errorf("decode feed document: %w", err)
	}
	return &doc, nil
}
