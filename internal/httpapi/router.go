// Package httpapi wires the query engine behind a Gin router: the
// native check/check-batch/stats surface, an OPA-compatible mirror of
// the same decisions, and Prometheus metrics.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/occlusion-dev/occlusion/internal/query"
	"github.com/occlusion-dev/occlusion/internal/snapshot"
)

var requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "occlusion_request_duration_seconds",
	Help:    "Latency of occlusion HTTP handlers by route.",
	Buckets: prometheus.DefBuckets,
}, []string{"route"})

// NewRouter builds the Gin engine reading from holder. holder must
// already be published before the router starts serving requests — the
// happens-before edge between load and the first accepted query is
// established by the caller, not by this package.
func NewRouter(holder *snapshot.Holder) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", handleHealth(holder))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		v1.POST("/check", instrument("check", handleCheck(holder)))
		v1.POST("/check/batch", instrument("check_batch", handleCheckBatch(holder)))
		v1.GET("/stats", instrument("stats", handleStats(holder)))
	}

	opa := r.Group("/v1/data/occlusion")
	{
		opa.POST("/visible", instrument("opa_visible", handleOPAVisible(holder)))
		opa.POST("/visible_batch", instrument("opa_visible_batch", handleOPAVisibleBatch(holder)))
	}

	return r
}

func instrument(route string, h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		timer := prometheus.NewTimer(requestDuration.WithLabelValues(route))
		defer timer.ObserveDuration()
		h(c)
	}
}

func engineOrFail(c *gin.Context, holder *snapshot.Holder) (*query.Engine, bool) {
	e, err := holder.Get()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return nil, false
	}
	return e, true
}
