package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Draws = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pdnsview",
		Name:      "draws_total",
		Help:      "Chart draw requests by chart type",
	}, []string{"chart"})

	Frames = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pdnsview",
		Name:      "frames_total",
		Help:      "Animation frames painted",
	})

	FrameDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "pdnsview",
		Name:      "frame_duration_seconds",
		Help:      "Time spent painting one frame",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
	})

	HitTests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pdnsview",
		Name:      "hit_tests_total",
		Help:      "Pointer hit tests by result",
	}, []string{"result"})

	TemplateCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pdnsview",
		Name:      "template_cache_total",
		Help:      "Template program cache lookups by result",
	}, []string{"result"})

	Instances = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "pdnsview",
		Name:      "instances",
		Help:      "Live chart instances",
	})
)

func New() http.Handler {
	return promhttp.Handler()
}
