// Package api serves chart instances over HTTP.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/vinceanalytics/pdnsview"
	"github.com/vinceanalytics/pdnsview/internal/data"
	"github.com/vinceanalytics/pdnsview/internal/log"
	"github.com/vinceanalytics/pdnsview/internal/options"
	"github.com/vinceanalytics/pdnsview/internal/render"
	"github.com/vinceanalytics/pdnsview/internal/surface"
)

// ChartRequest creates or updates a chart.
type ChartRequest struct {
	Type    string        `json:"type,omitempty"`
	Data    *data.Payload `json:"data,omitempty"`
	Options options.Map   `json:"options,omitempty"`
	Width   int           `json:"width,omitempty"`
	Height  int           `json:"height,omitempty"`
}

// Chart describes an instance.
type Chart struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Phase string `json:"phase"`
}

// Charts holds the handlers of the chart API.
type Charts struct {
	engine        *pdnsview.Engine
	width, height int

	mu    sync.Mutex
	types map[pdnsview.Handle]options.Chart
}

// New returns handlers drawing on width by height rasters unless a request
// asks for another size.
func New(e *pdnsview.Engine, width, height int) *Charts {
	return &Charts{
		engine: e,
		width:  width,
		height: height,
		types:  map[pdnsview.Handle]options.Chart{},
	}
}

func (c *Charts) Create(w http.ResponseWriter, r *http.Request) {
	var req ChartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.ERROR(w, http.StatusBadRequest, err.Error())
		return
	}
	kind, ok := options.ParseChart(req.Type)
	if !ok {
		render.ERROR(w, http.StatusBadRequest, "unknown chart type "+strconv.Quote(req.Type))
		return
	}
	width, height := req.Width, req.Height
	if width <= 0 {
		width = c.width
	}
	if height <= 0 {
		height = c.height
	}
	h, err := c.engine.Render(kind, req.Data, req.Options, surface.NewRaster(width, height))
	if err != nil {
		fail(w, err)
		return
	}
	c.mu.Lock()
	c.types[h] = kind
	c.mu.Unlock()
	render.JSON(w, http.StatusCreated, c.describe(h))
}

func (c *Charts) Update(w http.ResponseWriter, r *http.Request) {
	h, ok := c.handle(w, r.PathValue("id"))
	if !ok {
		return
	}
	var req ChartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.ERROR(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := c.engine.Update(h, req.Data, req.Options); err != nil {
		fail(w, err)
		return
	}
	render.JSON(w, http.StatusOK, c.describe(h))
}

// Get describes an instance, or writes its final image when the id carries
// a .png suffix.
func (c *Charts) Get(w http.ResponseWriter, r *http.Request) {
	id, png := strings.CutSuffix(r.PathValue("id"), ".png")
	h, ok := c.handle(w, id)
	if !ok {
		return
	}
	if _, err := c.engine.Phase(h); err != nil {
		fail(w, err)
		return
	}
	if !png {
		render.JSON(w, http.StatusOK, c.describe(h))
		return
	}
	var b bytes.Buffer
	_, err := c.engine.ExportImage(h, pdnsview.ExportOptions{
		Destination: pdnsview.NewView,
		Writer:      &b,
		Tooltip:     r.URL.Query().Get("tooltip") == "true",
	})
	if err != nil {
		fail(w, err)
		return
	}
	render.PNG(w, b.Bytes())
}

// Hover reports the tooltip under x, y. kind defaults to mousemove.
func (c *Charts) Hover(w http.ResponseWriter, r *http.Request) {
	h, ok := c.handle(w, r.PathValue("id"))
	if !ok {
		return
	}
	q := r.URL.Query()
	x, err := strconv.ParseFloat(q.Get("x"), 64)
	if err != nil {
		render.ERROR(w, http.StatusBadRequest, "invalid x")
		return
	}
	y, err := strconv.ParseFloat(q.Get("y"), 64)
	if err != nil {
		render.ERROR(w, http.StatusBadRequest, "invalid y")
		return
	}
	kind := q.Get("kind")
	if kind == "" {
		kind = "mousemove"
	}
	tip, err := c.engine.Pointer(h, pdnsview.PointerEvent{X: x, Y: y, Kind: kind})
	if err != nil {
		fail(w, err)
		return
	}
	if tip == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	render.JSON(w, http.StatusOK, tip)
}

func (c *Charts) Delete(w http.ResponseWriter, r *http.Request) {
	h, ok := c.handle(w, r.PathValue("id"))
	if !ok {
		return
	}
	if err := c.engine.Release(h); err != nil {
		fail(w, err)
		return
	}
	c.mu.Lock()
	delete(c.types, h)
	c.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

// Resize applies a viewport to every responsive chart.
func (c *Charts) Resize(w http.ResponseWriter, r *http.Request) {
	var v pdnsview.Viewport
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		render.ERROR(w, http.StatusBadRequest, err.Error())
		return
	}
	if v.Width <= 0 {
		render.ERROR(w, http.StatusBadRequest, "width must be positive")
		return
	}
	if err := c.engine.Resize(v); err != nil {
		fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *Charts) handle(w http.ResponseWriter, id string) (pdnsview.Handle, bool) {
	h, err := pdnsview.ParseHandle(id)
	if err != nil {
		fail(w, err)
		return h, false
	}
	return h, true
}

func (c *Charts) describe(h pdnsview.Handle) Chart {
	c.mu.Lock()
	o := Chart{ID: h.String(), Type: string(c.types[h])}
	c.mu.Unlock()
	if p, err := c.engine.Phase(h); err == nil {
		o.Phase = p.String()
	}
	return o
}

func fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pdnsview.ErrUnknownHandle):
		render.ERROR(w, http.StatusNotFound, err.Error())
	case errors.Is(err, pdnsview.ErrUnknownChart),
		errors.Is(err, options.ErrUnknownFunction):
		render.ERROR(w, http.StatusBadRequest, err.Error())
	default:
		log.Get().Err(err).Msg("chart request failed")
		render.ERROR(w, http.StatusUnprocessableEntity, err.Error())
	}
}
