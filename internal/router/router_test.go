package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vinceanalytics/pdnsview"
	"github.com/vinceanalytics/pdnsview/internal/annotate"
	"github.com/vinceanalytics/pdnsview/internal/api"
	"github.com/vinceanalytics/pdnsview/internal/config"
	"github.com/vinceanalytics/pdnsview/internal/data"
)

func server(t *testing.T, o *config.Options) http.Handler {
	t.Helper()
	e, err := pdnsview.New(pdnsview.Options{})
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return New(e, o)
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = httptest.NewRequest(method, path, bytes.NewReader(b))
		r.Header.Set("content-type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

const barChart = `{
	"type": "bar",
	"width": 300,
	"height": 200,
	"data": {
		"labels": ["A", "MX"],
		"datasets": [{"label": "queries", "data": [3, 5]}]
	},
	"options": {"annotateDisplay": true, "animation": false}
}`

func TestCharts(t *testing.T) {
	h := server(t, config.Defaults())

	r := httptest.NewRequest(http.MethodPost, "/charts", bytes.NewBufferString(barChart))
	r.Header.Set("content-type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var chart api.Chart
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &chart))
	require.Equal(t, "Bar", chart.Type)
	require.Equal(t, "settled", chart.Phase)

	w = do(t, h, http.MethodGet, "/charts/"+chart.ID+".png", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "image/png", w.Header().Get("Content-Type"))
	require.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))

	w = do(t, h, http.MethodGet, "/charts/"+chart.ID+"/hover?x=-50&y=-50", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, http.MethodGet, "/charts/"+chart.ID+"/hover?x=abc&y=1", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPut, "/charts/"+chart.ID, api.ChartRequest{})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodPost, "/resize", pdnsview.Viewport{Width: 600, Height: 400})
	require.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, http.MethodDelete, "/charts/"+chart.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, h, http.MethodGet, "/charts/"+chart.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestHover(t *testing.T) {
	h := server(t, config.Defaults())
	w := do(t, h, http.MethodPost, "/charts", api.ChartRequest{
		Type:   "Pie",
		Width:  200,
		Height: 200,
		Data:   mustPayload(t, `[{"value": 1, "label": "A"}, {"value": 1, "label": "MX"}]`),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var chart api.Chart
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &chart))

	w = do(t, h, http.MethodPut, "/charts/"+chart.ID, map[string]any{
		"options": map[string]any{"annotateDisplay": true},
	})
	require.Equal(t, http.StatusOK, w.Code)

	// the first segment starts at twelve o'clock and runs clockwise
	w = do(t, h, http.MethodGet, "/charts/"+chart.ID+"/hover?x=130&y=80", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var tip annotate.Tooltip
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tip))
	require.Equal(t, 0, tip.Point)
	require.Contains(t, tip.Text, "A")
}

func TestErrors(t *testing.T) {
	h := server(t, config.Defaults())
	type Case struct {
		name   string
		method string
		path   string
		body   any
		code   int
	}
	cases := []Case{
		{name: "unknown type", method: http.MethodPost, path: "/charts", body: api.ChartRequest{Type: "Gantt"}, code: http.StatusBadRequest},
		{name: "unknown easing", method: http.MethodPost, path: "/charts", body: map[string]any{
			"type":    "line",
			"options": map[string]any{"animationEasing": "wobble"},
		}, code: http.StatusBadRequest},
		{name: "bad handle", method: http.MethodGet, path: "/charts/nope", code: http.StatusNotFound},
		{name: "missing handle", method: http.MethodDelete, path: "/charts/01HQ0000000000000000000000", code: http.StatusNotFound},
		{name: "bad viewport", method: http.MethodPost, path: "/resize", body: pdnsview.Viewport{}, code: http.StatusBadRequest},
		{name: "not found", method: http.MethodGet, path: "/sites", code: http.StatusNotFound},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := do(t, h, c.method, c.path, c.body)
			require.Equal(t, c.code, w.Code, w.Body.String())
		})
	}

	r := httptest.NewRequest(http.MethodPost, "/charts", bytes.NewBufferString(barChart))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	require.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestRateLimit(t *testing.T) {
	o := config.Defaults()
	o.RateLimit = 0.001
	o.Burst = 1
	h := server(t, o)
	require.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/charts/nope", nil).Code)
	require.Equal(t, http.StatusTooManyRequests, do(t, h, http.MethodGet, "/charts/nope", nil).Code)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/metrics", nil).Code, "metrics are not limited")
}

func mustPayload(t *testing.T, src string) *data.Payload {
	t.Helper()
	p, err := data.Decode([]byte(src))
	require.NoError(t, err)
	return p
}
