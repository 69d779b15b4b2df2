package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"awsprice/pkg/pricing"
)

func TestSources(t *testing.T) {
	t.Run("compute expands to one source per OS variant", func(t *testing.T) {
		srcs := Sources(pricing.ServiceCompute, pricing.SchemeOnDemand, pricing.GenerationCurrent)
		require.Len(t, srcs, 6)
		seen := map[string]bool{}
		for _, s := range srcs {
			assert.NotEmpty(t, s.OSOrEngine)
			assert.Contains(t, s.URL, "/ec2/")
			assert.True(t, strings.HasSuffix(s.URL, "-od.min.js"), s.URL)
			seen[s.OSOrEngine] = true
		}
		assert.True(t, seen["linux"])
		assert.True(t, seen["mswinSQLWeb"])
	})

	t.Run("previous generation inserts the path prefix", func(t *testing.T) {
		for _, s := range Sources(pricing.ServiceCompute, pricing.SchemeReserved, pricing.GenerationPrevious) {
			assert.Contains(t, s.URL, "/previous-generation/", s.URL)
		}
		for _, s := range Sources(pricing.ServiceCompute, pricing.SchemeReserved, pricing.GenerationCurrent) {
			assert.NotContains(t, s.URL, "/previous-generation/", s.URL)
		}
	})

	t.Run("cache reserved expands to the three utilization tiers", func(t *testing.T) {
		srcs := Sources(pricing.ServiceCache, pricing.SchemeReserved, pricing.GenerationCurrent)
		require.Len(t, srcs, 3)
		tiers := map[pricing.PaymentOption]string{}
		for _, s := range srcs {
			tiers[s.Utilization] = s.URL
		}
		// The current-generation light feed kept its older filename.
		assert.Contains(t, tiers[pricing.LightUtilization], "light-standard-deployments-elasticache")
		assert.Contains(t, tiers[pricing.MediumUtilization], "medium-standard-deployments")
		assert.Contains(t, tiers[pricing.HeavyUtilization], "heavy-standard-deployments")

		prev := Sources(pricing.ServiceCache, pricing.SchemeReserved, pricing.GenerationPrevious)
		for _, s := range prev {
			if s.Utilization == pricing.LightUtilization {
				assert.Contains(t, s.URL, "light-standard-deployments.min.js")
			}
		}
	})

	t.Run("database reserved mixes purchase-option and legacy variants", func(t *testing.T) {
		srcs := Sources(pricing.ServiceDatabase, pricing.SchemeReserved, pricing.GenerationCurrent)
		var current, legacy int
		for _, s := range srcs {
			assert.NotEmpty(t, s.OSOrEngine)
			if s.Utilization == "" {
				current++
				assert.Contains(t, s.URL, "reserved-instances")
			} else {
				legacy++
				assert.Contains(t, s.URL, "sqlserver-li-")
			}
		}
		assert.Equal(t, 10, current)
		assert.Equal(t, 9, legacy, "three MSSQL license-included variants x three tiers")
	})

	t.Run("database engine tags carry deployment and license", func(t *testing.T) {
		srcs := Sources(pricing.ServiceDatabase, pricing.SchemeOnDemand, pricing.GenerationCurrent)
		require.Len(t, srcs, 14)
		tags := map[string]bool{}
		for _, s := range srcs {
			tags[s.OSOrEngine] = true
		}
		assert.True(t, tags["mysql"])
		assert.True(t, tags["mysql:multi-az"])
		assert.True(t, tags["oracle:byol:multi-az"])
		assert.True(t, tags["sqlserver-se:multi-az"])
		assert.True(t, tags["postgres"])
	})

	t.Run("warehouse has one source per scheme", func(t *testing.T) {
		od := Sources(pricing.ServiceWarehouse, pricing.SchemeOnDemand, pricing.GenerationCurrent)
		ri := Sources(pricing.ServiceWarehouse, pricing.SchemeReserved, pricing.GenerationCurrent)
		require.Len(t, od, 1)
		require.Len(t, ri, 1)
		assert.Contains(t, od[0].URL, "on-demand-redshift")
		assert.Contains(t, ri[0].URL, "reserved-redshift")
	})
}

func TestClientFetch(t *testing.T) {
	t.Run("returns the body on 200", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`callback({config: {}});`))
		}))
		defer srv.Close()

		c := NewClient(5 * time.Second)
		body, err := c.Fetch(context.Background(), Source{URL: srv.URL})
		require.NoError(t, err)
		assert.Equal(t, `callback({config: {}});`, body)
	})

	t.Run("non-200 status becomes a FetchError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))
		defer srv.Close()

		c := NewClient(5 * time.Second)
		_, err := c.Fetch(context.Background(), Source{URL: srv.URL})
		var fe *FetchError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, srv.URL, fe.URL)
	})

	t.Run("unreachable host becomes a FetchError", func(t *testing.T) {
		c := NewClient(time.Second)
		_, err := c.Fetch(context.Background(), Source{URL: "http://127.0.0.1:1/nope"})
		var fe *FetchError
		require.ErrorAs(t, err, &fe)
	})
}
