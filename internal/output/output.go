// Package output renders a consolidated dataset as JSON, an aligned text
// table, or CSV. Column order is fixed across formats.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"awsprice/pkg/pricing"
)

// Header is the fixed column set shared by the table and CSV formats.
var Header = []string{
	"service", "region", "instanceType", "generation",
	"operatingSystemOrEngine", "pricingScheme", "term", "paymentOption",
	"hourlyPrice", "upfrontPrice",
}

func row(r pricing.PriceRecord) []string {
	upfront := ""
	if r.UpfrontPrice != nil {
		upfront = r.UpfrontPrice.String()
	}
	return []string{
		string(r.Service), r.Region, r.InstanceType, string(r.Generation),
		r.OperatingSystemOrEngine, string(r.PricingScheme),
		string(r.Term), string(r.PaymentOption),
		r.HourlyPrice.String(), upfront,
	}
}

// WriteJSON emits the dataset as an indented JSON array. On-demand records
// omit the reservation-only fields entirely.
func WriteJSON(w io.Writer, ds pricing.Dataset) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ds); err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	return nil
}

// WriteTable emits an aligned, human-readable table.
func WriteTable(w io.Writer, ds pricing.Dataset) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, col := range Header {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, col)
	}
	fmt.Fprintln(tw)
	for _, r := range ds {
		cells := row(r)
		for i, c := range cells {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			if c == "" {
				c = "-"
			}
			fmt.Fprint(tw, c)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

// WriteCSV emits the dataset with the fixed header. Absent optionals are
// empty cells, not placeholders.
func WriteCSV(w io.Writer, ds pricing.Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range ds {
		if err := cw.Write(row(r)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// DefaultFilename names the CSV file for a scheme selection. The "full"
// label covers runs that combined both schemes.
func DefaultFilename(scheme string) string {
	switch scheme {
	case string(pricing.SchemeOnDemand):
		return "FULL_ondemand_pricing.csv"
	case string(pricing.SchemeReserved):
		return "FULL_reserved_pricing.csv"
	}
	return "FULL_pricing.csv"
}

// SaveCSV writes the dataset to dir under the scheme's default filename
// and returns the path written.
func SaveCSV(dir, scheme string, ds pricing.Dataset) (string, error) {
	path := filepath.Join(dir, DefaultFilename(scheme))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := WriteCSV(f, ds); err != nil {
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}
