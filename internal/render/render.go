package render

import (
	"encoding/json"
	"net/http"

	"github.com/vinceanalytics/pdnsview/internal/log"
)

func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Get().Err(err).Msg("failed writing response")
	}
}

func PNG(w http.ResponseWriter, b []byte) {
	w.Header().Add("Content-Type", "image/png")
	w.Header().Add("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(b); err != nil {
		log.Get().Err(err).Msg("failed writing image")
	}
}

type err struct {
	Error any `json:"error"`
}

func ERROR(w http.ResponseWriter, code int, msg ...any) {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(code)
	if len(msg) == 0 {
		msg = []any{http.StatusText(code)}
	}
	json.NewEncoder(w).Encode(err{Error: msg[0]})
}
