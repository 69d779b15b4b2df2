package dictionary

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"awsprice/pkg/pricing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testDict(t *testing.T) *Dictionary {
	t.Helper()
	return Default(discardLogger())
}

func TestRegion(t *testing.T) {
	d := testDict(t)

	t.Run("alias resolves to canonical name", func(t *testing.T) {
		assert.Equal(t, "eu-west-1", d.Region("eu-ireland"))
		assert.Equal(t, "ap-southeast-2", d.Region("apac-syd"))
		assert.Equal(t, "eu-central-1", d.Region("eu-frankfurt"))
	})

	t.Run("canonical name is idempotent", func(t *testing.T) {
		assert.Equal(t, "us-east-1", d.Region("us-east-1"))
		assert.Equal(t, d.Region("eu-ireland"), d.Region(d.Region("eu-ireland")))
	})

	t.Run("unknown code passes through", func(t *testing.T) {
		assert.Equal(t, "mars-north-1", d.Region("mars-north-1"))
	})
}

func TestInstanceType(t *testing.T) {
	d := testDict(t)

	t.Run("cache class codes resolve", func(t *testing.T) {
		assert.Equal(t, "cache.m1.small", d.InstanceType(pricing.ServiceCache, "sCacheNode.sm"))
		assert.Equal(t, "cache.m2.xlarge", d.InstanceType(pricing.ServiceCache, "xlHiMem"))
	})

	t.Run("database class codes resolve", func(t *testing.T) {
		assert.Equal(t, "db.m2.xlarge", d.InstanceType(pricing.ServiceDatabase, "stdDeployRes.xlHiMem"))
		assert.Equal(t, "db.m1.large", d.InstanceType(pricing.ServiceDatabase, "multiAZdeployRes.lg"))
	})

	t.Run("lookups are service scoped", func(t *testing.T) {
		// "xlHiMem" means a cache node for cache and a db instance for
		// database reserved tables; compute has no table at all.
		assert.Equal(t, "cache.m2.xlarge", d.InstanceType(pricing.ServiceCache, "xlHiMem"))
		assert.Equal(t, "xlHiMem", d.InstanceType(pricing.ServiceCompute, "xlHiMem"))
	})

	t.Run("unknown or already canonical codes pass through", func(t *testing.T) {
		assert.Equal(t, "m3.medium", d.InstanceType(pricing.ServiceCompute, "m3.medium"))
		assert.Equal(t, "dw.hs1.xlarge", d.InstanceType(pricing.ServiceWarehouse, "dw.hs1.xlarge"))
	})
}

func TestLoadOverrides(t *testing.T) {
	t.Run("empty paths keep embedded defaults", func(t *testing.T) {
		d, err := Load("", "", discardLogger())
		require.NoError(t, err)
		assert.Equal(t, "eu-west-1", d.Region("eu-ireland"))
	})

	t.Run("missing override file errors", func(t *testing.T) {
		_, err := Load("/nonexistent/regions.json", "", discardLogger())
		require.Error(t, err)
	})
}

func TestRegionAliases(t *testing.T) {
	d := testDict(t)
	aliases := d.RegionAliases()
	assert.Equal(t, "eu-west-1", aliases["eu-ireland"])

	// Mutating the copy must not affect the dictionary.
	aliases["eu-ireland"] = "broken"
	assert.Equal(t, "eu-west-1", d.Region("eu-ireland"))
}
