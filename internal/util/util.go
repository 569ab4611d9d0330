package util

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ronincompetition/ronin/internal/util/logs"
)

// Handler lets route handlers return errors; anything that escapes is
// logged with the request logger and mapped to a 500. Handlers
// translate expected domain failures themselves before returning.
type Handler func(w http.ResponseWriter, r *http.Request) error

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h(w, r); err != nil {
		logs.Logger(r.Context()).Error("unhandled error", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func Encode[T any](w http.ResponseWriter, status int, v T) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error(err.Error())
	}
}

func Decode[T any](r *http.Request, v *T) {
	_ = json.NewDecoder(r.Body).Decode(v)
}

// PathInt parses a numeric path parameter; ok is false when the value
// is absent or not a number.
func PathInt(r *http.Request, name string) (int64, bool) {
	v, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// QueryInt parses a numeric query parameter; ok is false when the
// value is absent or not a number.
func QueryInt(r *http.Request, name string) (int64, bool) {
	v, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func Distinct[T comparable](items []T) []T {
	seen := make(map[T]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
