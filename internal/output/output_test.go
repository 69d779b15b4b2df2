package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"awsprice/pkg/pricing"
)

func sampleDataset() pricing.Dataset {
	upfront := decimal.RequireFromString("876")
	return pricing.Dataset{
		{
			Service:                 pricing.ServiceCompute,
			Region:                  "us-east-1",
			InstanceType:            "m3.medium",
			Generation:              pricing.GenerationCurrent,
			OperatingSystemOrEngine: "linux",
			PricingScheme:           pricing.SchemeOnDemand,
			HourlyPrice:             decimal.RequireFromString("0.07"),
		},
		{
			Service:                 pricing.ServiceDatabase,
			Region:                  "eu-west-1",
			InstanceType:            "db.m3.large",
			Generation:              pricing.GenerationCurrent,
			OperatingSystemOrEngine: "mysql:multi-az",
			PricingScheme:           pricing.SchemeReserved,
			Term:                    pricing.Term1Year,
			PaymentOption:           pricing.AllUpfront,
			HourlyPrice:             decimal.RequireFromString("0.1"),
			UpfrontPrice:            &upfront,
		},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleDataset()))

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)

	onDemand := decoded[0]
	assert.Equal(t, "compute", onDemand["service"])
	assert.Equal(t, "m3.medium", onDemand["instanceType"])
	assert.Equal(t, "ondemand", onDemand["pricingScheme"])

	// Reservation-only fields must be omitted for on-demand records.
	_, hasTerm := onDemand["term"]
	assert.False(t, hasTerm)
	_, hasOption := onDemand["paymentOption"]
	assert.False(t, hasOption)
	_, hasUpfront := onDemand["upfrontPrice"]
	assert.False(t, hasUpfront)

	reserved := decoded[1]
	assert.Equal(t, "1yr", reserved["term"])
	assert.Equal(t, "allUpfront", reserved["paymentOption"])
	assert.Equal(t, "876", reserved["upfrontPrice"])
	assert.Equal(t, "mysql:multi-az", reserved["operatingSystemOrEngine"])
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleDataset()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, Header, rows[0])

	onDemand := rows[1]
	assert.Equal(t, "compute", onDemand[0])
	assert.Equal(t, "us-east-1", onDemand[1])
	assert.Equal(t, "", onDemand[6], "term cell empty for on-demand")
	assert.Equal(t, "", onDemand[7], "paymentOption cell empty for on-demand")
	assert.Equal(t, "", onDemand[9], "upfront cell empty for on-demand")

	reserved := rows[2]
	assert.Equal(t, "database", reserved[0])
	assert.Equal(t, "1yr", reserved[6])
	assert.Equal(t, "allUpfront", reserved[7])
	assert.Equal(t, "0.1", reserved[8])
	assert.Equal(t, "876", reserved[9])
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, sampleDataset()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "service")
	assert.Contains(t, lines[0], "upfrontPrice")
	assert.Contains(t, lines[1], "m3.medium")
	assert.Contains(t, lines[2], "allUpfront")
}

func TestSaveCSV(t *testing.T) {
	dir := t.TempDir()
	path, err := SaveCSV(dir, "ondemand", sampleDataset())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "FULL_ondemand_pricing.csv"), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), strings.Join(Header, ",")))
}

func TestDefaultFilename(t *testing.T) {
	assert.Equal(t, "FULL_ondemand_pricing.csv", DefaultFilename("ondemand"))
	assert.Equal(t, "FULL_reserved_pricing.csv", DefaultFilename("reserved"))
	assert.Equal(t, "FULL_pricing.csv", DefaultFilename("all"))
}
