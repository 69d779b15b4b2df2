// Package fetch holds the feed source catalog and the HTTP fetcher.
// Every (service, scheme, generation) choice expands to the concrete feed
// variants the pricing pages publish: per-OS files for compute, per
// engine/license/deployment files for database, per utilization tier for
// the legacy reserved feeds.
package fetch

import (
	"fmt"

	"awsprice/pkg/pricing"
)

const baseURL = "http://a0.awsstatic.com/pricing/1"

// Source is one fetchable feed document and the variant metadata its URL
// encodes.
type Source struct {
	Service     pricing.Service
	Scheme      pricing.Scheme
	Generation  pricing.Generation
	OSOrEngine  string
	Utilization pricing.PaymentOption
	URL         string
}

// Sources expands a (service, scheme, generation) choice into its feed
// sources, in catalog order.
func Sources(svc pricing.Service, scheme pricing.Scheme, gen pricing.Generation) []Source {
	switch svc {
	case pricing.ServiceCompute:
		return computeSources(scheme, gen)
	case pricing.ServiceCache:
		return cacheSources(scheme, gen)
	case pricing.ServiceDatabase:
		return databaseSources(scheme, gen)
	case pricing.ServiceWarehouse:
		return warehouseSources(scheme, gen)
	}
	return nil
}

func genPrefix(gen pricing.Generation) string {
	if gen == pricing.GenerationPrevious {
		return "previous-generation/"
	}
	return ""
}

// ---------------------------------------------------------------------------
// Compute (EC2)
// ---------------------------------------------------------------------------

var computeOnDemandFiles = []struct{ os, file string }{
	{"linux", "linux-od.min.js"},
	{"rhel", "rhel-od.min.js"},
	{"sles", "sles-od.min.js"},
	{"mswin", "mswin-od.min.js"},
	{"mswinSQL", "mswinSQL-od.min.js"},
	{"mswinSQLWeb", "mswinSQLWeb-od.min.js"},
}

var computeReservedFiles = []struct{ os, file string }{
	{"linux", "linux-unix-shared.min.js"},
	{"rhel", "red-hat-enterprise-linux-shared.min.js"},
	{"sles", "suse-linux-shared.min.js"},
	{"mswin", "windows-shared.min.js"},
	{"mswinSQL", "windows-with-sql-server-standard-shared.min.js"},
	{"mswinSQLWeb", "windows-with-sql-server-web-shared.min.js"},
}

func computeSources(scheme pricing.Scheme, gen pricing.Generation) []Source {
	var out []Source
	if scheme == pricing.SchemeReserved {
		for _, v := range computeReservedFiles {
			out = append(out, Source{
				Service: pricing.ServiceCompute, Scheme: scheme, Generation: gen,
				OSOrEngine: v.os,
				URL:        fmt.Sprintf("%s/ec2/%sri-v2/%s", baseURL, genPrefix(gen), v.file),
			})
		}
		return out
	}
	for _, v := range computeOnDemandFiles {
		out = append(out, Source{
			Service: pricing.ServiceCompute, Scheme: scheme, Generation: gen,
			OSOrEngine: v.os,
			URL:        fmt.Sprintf("%s/ec2/%s%s", baseURL, genPrefix(gen), v.file),
		})
	}
	return out
}

// ---------------------------------------------------------------------------
// Cache (ElastiCache)
// ---------------------------------------------------------------------------

func cacheSources(scheme pricing.Scheme, gen pricing.Generation) []Source {
	if scheme == pricing.SchemeReserved {
		// The current-generation light feed kept an older filename; the
		// others were renamed when the tiers were introduced.
		files := map[pricing.PaymentOption]string{
			pricing.LightUtilization:  "pricing-elasticache-light-standard-deployments-elasticache.min.js",
			pricing.MediumUtilization: "pricing-elasticache-medium-standard-deployments.min.js",
			pricing.HeavyUtilization:  "pricing-elasticache-heavy-standard-deployments.min.js",
		}
		if gen == pricing.GenerationPrevious {
			files[pricing.LightUtilization] = "pricing-elasticache-light-standard-deployments.min.js"
		}
		var out []Source
		for _, tier := range []pricing.PaymentOption{pricing.LightUtilization, pricing.MediumUtilization, pricing.HeavyUtilization} {
			out = append(out, Source{
				Service: pricing.ServiceCache, Scheme: scheme, Generation: gen,
				Utilization: tier,
				URL:         fmt.Sprintf("%s/elasticache/%s%s", baseURL, genPrefix(gen), files[tier]),
			})
		}
		return out
	}
	return []Source{{
		Service: pricing.ServiceCache, Scheme: scheme, Generation: gen,
		URL: fmt.Sprintf("%s/elasticache/%spricing-standard-deployments-elasticache.min.js", baseURL, genPrefix(gen)),
	}}
}

// ---------------------------------------------------------------------------
// Database (RDS)
// ---------------------------------------------------------------------------

// databaseOnDemandFiles lists the engine/license/deployment variants. The
// engine tag lands in operatingSystemOrEngine; byol and multi-az are
// suffixes on the tag so one canonical record shape covers them all.
var databaseOnDemandFiles = []struct{ engine, dir, file string }{
	{"mysql", "mysql", "pricing-standard-deployments.min.js"},
	{"mysql:multi-az", "mysql", "pricing-multiAZ-deployments.min.js"},
	{"oracle-se1", "oracle", "pricing-li-standard-deployments.min.js"},
	{"oracle-se1:multi-az", "oracle", "pricing-li-multiAZ-deployments.min.js"},
	{"oracle:byol", "oracle", "pricing-byol-standard-deployments.min.js"},
	{"oracle:byol:multi-az", "oracle", "pricing-byol-multiAZ-deployments.min.js"},
	{"sqlserver-ex", "sqlserver", "sqlserver-li-ex-ondemand.min.js"},
	{"sqlserver-web", "sqlserver", "sqlserver-li-web-ondemand.min.js"},
	{"sqlserver-se", "sqlserver", "sqlserver-li-se-ondemand.min.js"},
	{"sqlserver-se:multi-az", "sqlserver", "sqlserver-li-se-ondemand-maz.min.js"},
	{"sqlserver:byol", "sqlserver", "sqlserver-byol-ondemand.min.js"},
	{"sqlserver:byol:multi-az", "sqlserver", "sqlserver-byol-ondemand-maz.min.js"},
	{"postgres", "postgresql", "pricing-standard-deployments.min.js"},
	{"postgres:multi-az", "postgresql", "pricing-multiAZ-deployments.min.js"},
}

var databaseReservedFiles = []struct{ engine, file string }{
	{"mysql", "mysql-standard.min.js"},
	{"mysql:multi-az", "mysql-multiAZ.min.js"},
	{"oracle-se1", "oracle-se1-license-included-standard.min.js"},
	{"oracle-se1:multi-az", "oracle-se1-license-included-multiAZ.min.js"},
	{"oracle:byol", "oracle-se-byol-standard.min.js"},
	{"oracle:byol:multi-az", "oracle-se-byol-multiAZ.min.js"},
	{"sqlserver:byol", "sql-server-se-byol-standard.min.js"},
	{"sqlserver:byol:multi-az", "sql-server-se-byol-multiAZ.min.js"},
	{"postgres", "postgresql-standard.min.js"},
	{"postgres:multi-az", "postgresql-multiAZ.min.js"},
}

// The license-included MSSQL variants never moved to purchase options and
// still publish legacy utilization tiers.
var databaseLegacyReservedEngines = []struct{ engine, tag string }{
	{"sqlserver-ex", "ex"},
	{"sqlserver-web", "web"},
	{"sqlserver-se", "se"},
}

func databaseSources(scheme pricing.Scheme, gen pricing.Generation) []Source {
	var out []Source
	if scheme == pricing.SchemeReserved {
		for _, v := range databaseReservedFiles {
			dir := "rds/reserved-instances"
			if gen == pricing.GenerationPrevious {
				dir = "rds/previous-generation/reserved-instances"
			}
			out = append(out, Source{
				Service: pricing.ServiceDatabase, Scheme: scheme, Generation: gen,
				OSOrEngine: v.engine,
				URL:        fmt.Sprintf("%s/%s/%s", baseURL, dir, v.file),
			})
		}
		for _, v := range databaseLegacyReservedEngines {
			for _, tier := range []pricing.PaymentOption{pricing.LightUtilization, pricing.MediumUtilization, pricing.HeavyUtilization} {
				out = append(out, Source{
					Service: pricing.ServiceDatabase, Scheme: scheme, Generation: gen,
					OSOrEngine:  v.engine,
					Utilization: tier,
					URL:         fmt.Sprintf("%s/rds/sqlserver/%ssqlserver-li-%s-%s-ri.min.js", baseURL, genPrefix(gen), v.tag, tier),
				})
			}
		}
		return out
	}
	for _, v := range databaseOnDemandFiles {
		out = append(out, Source{
			Service: pricing.ServiceDatabase, Scheme: scheme, Generation: gen,
			OSOrEngine: v.engine,
			URL:        fmt.Sprintf("%s/rds/%s/%s%s", baseURL, v.dir, genPrefix(gen), v.file),
		})
	}
	return out
}

// ---------------------------------------------------------------------------
// Warehouse (Redshift)
// ---------------------------------------------------------------------------

func warehouseSources(scheme pricing.Scheme, gen pricing.Generation) []Source {
	file := "pricing-on-demand-redshift-instances.min.js"
	if scheme == pricing.SchemeReserved {
		file = "pricing-reserved-redshift-instances.min.js"
	}
	return []Source{{
		Service: pricing.ServiceWarehouse, Scheme: scheme, Generation: gen,
		URL: fmt.Sprintf("%s/redshift/%s%s", baseURL, genPrefix(gen), file),
	}}
}
