package router

import (
	"net/http"
	"net/http/pprof"

	"github.com/vinceanalytics/pdnsview"
	"github.com/vinceanalytics/pdnsview/internal/api"
	"github.com/vinceanalytics/pdnsview/internal/config"
	"github.com/vinceanalytics/pdnsview/internal/limit"
	"github.com/vinceanalytics/pdnsview/internal/metrics"
	"github.com/vinceanalytics/pdnsview/internal/plug"
	"github.com/vinceanalytics/pdnsview/internal/render"
)

// New returns the chart server handler.
func New(e *pdnsview.Engine, o *config.Options) http.Handler {
	charts := api.New(e, int(o.Width), int(o.Height))
	a := plug.Pipeline{plug.RateLimit(limit.New(o.RateLimit, int(o.Burst)))}
	body := a.And(plug.AcceptJSON)

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", metrics.New())
	if o.EnableProfile {
		mux.HandleFunc("/debug/pprof/", pprof.Index)
	}
	mux.Handle("POST /charts", body.Pass(charts.Create))
	mux.Handle("PUT /charts/{id}", body.Pass(charts.Update))
	mux.Handle("GET /charts/{id}", a.Pass(charts.Get))
	mux.Handle("GET /charts/{id}/hover", a.Pass(charts.Hover))
	mux.Handle("DELETE /charts/{id}", a.Pass(charts.Delete))
	mux.Handle("POST /resize", body.Pass(charts.Resize))
	mux.Handle("/", http.HandlerFunc(NotFound))
	return plug.Log(mux)
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	render.ERROR(w, http.StatusNotFound)
}
