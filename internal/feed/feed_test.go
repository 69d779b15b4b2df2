package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	t.Run("plain json", func(t *testing.T) {
		doc, err := Decode(`{"config": {"currency": "USD", "regions": [{"region": "us-east-1"}]}}`)
		require.NoError(t, err)
		require.NotNil(t, doc.Config)
		assert.Equal(t, "USD", doc.Config.Currency)
		require.Len(t, doc.Config.Regions, 1)
		assert.Equal(t, "us-east-1", doc.Config.Regions[0].Name)
	})

	t.Run("callback wrapper and bare keys", func(t *testing.T) {
		raw := `callback({config: {currency: "USD", regions: [{region: "eu-ireland", types: []}]}});`
		doc, err := Decode(raw)
		require.NoError(t, err)
		require.NotNil(t, doc.Config)
		assert.Equal(t, "eu-ireland", doc.Config.Regions[0].Name)
	})

	t.Run("comment banner", func(t *testing.T) {
		raw := `/*
 * This file is intended for use only on aws.amazon.com.
 */
callback({config: {regions: []}});`
		doc, err := Decode(raw)
		require.NoError(t, err)
		require.NotNil(t, doc.Config)
	})

	t.Run("quoted keys survive the key rewrite", func(t *testing.T) {
		raw := `{"config": {"regions": [{region: "us-west-2", instanceTypes: [{type: "m3", sizes: [{size: "m3.medium", valueColumns: [{name: "linux", prices: {USD: "0.070"}}]}]}]}]}}`
		doc, err := Decode(raw)
		require.NoError(t, err)
		region := doc.Config.Regions[0]
		require.Len(t, region.InstanceTypes, 1)
		size := region.InstanceTypes[0].Sizes[0]
		assert.Equal(t, "m3.medium", size.Size)
		assert.Equal(t, PriceText("0.070"), size.ValueColumns[0].Prices["USD"])
	})

	t.Run("numeric price cells", func(t *testing.T) {
		raw := `{config: {regions: [{region: "us-east-1", types: [{tiers: [{name: "cache.m1.small", prices: {USD: 0.022}}]}]}]}}`
		doc, err := Decode(raw)
		require.NoError(t, err)
		tier := doc.Config.Regions[0].Types[0].Tiers[0]
		assert.Equal(t, PriceText("0.022"), tier.Prices["USD"])
	})

	t.Run("malformed document", func(t *testing.T) {
		_, err := Decode(`callback({config: {regions: [`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode feed document")
	})
}
