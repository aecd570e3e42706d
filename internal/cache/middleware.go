package cache

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"yatube/internal/metrics"
)

// KeyFunc derives the cache key of a request. Requests it maps to "" bypass the cache.
type KeyFunc func(r *http.Request) string

// PageKey keys a page by its path, page number and the viewer, so signed-in
// users never see a page rendered for someone else. Other query parameters
// do not change the page and are left out of the key.
func PageKey(r *http.Request, username string) string {
	key := "page:" + r.URL.Path
	if page := r.URL.Query().Get("page"); page != "" {
		key += "?page=" + url.QueryEscape(page)
	}
	return key + "|" + username
}

type recorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (r *recorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *recorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// Page serves GET requests from store and stores successful HTML responses for ttl.
// Store failures are logged and the request is served uncached.
func Page(store Store, ttl time.Duration, keyFunc KeyFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			key := keyFunc(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			body, ok, err := store.Get(ctx, key)
			switch {
			case err != nil:
				metrics.PageCacheRequests.WithLabelValues("error").Inc()
				slog.WarnContext(ctx, "кэш недоступен", slog.String("key", key), slog.Any("error", err))
			case ok:
				metrics.PageCacheRequests.WithLabelValues("hit").Inc()
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.Header().Set("X-Cache", "HIT")
				w.Write(body)
				return
			default:
				metrics.PageCacheRequests.WithLabelValues("miss").Inc()
			}

			w.Header().Set("X-Cache", "MISS")
			rec := &recorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			if rec.status != http.StatusOK {
				return
			}
			if err := store.Set(ctx, key, rec.body.Bytes(), ttl); err != nil {
				slog.WarnContext(ctx, "не удалось сохранить страницу в кэш", slog.String("key", key), slog.Any("error", err))
			}
		})
	}
}
