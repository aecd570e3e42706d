package cache

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("connection refused")
}

func (failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("connection refused")
}

func (failingStore) Delete(context.Context, string) error { return nil }

func (failingStore) Clear(context.Context) error { return nil }

func anonymousKey(r *http.Request) string {
	return PageKey(r, "")
}

func TestPage_StaleUntilCleared(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	content := "A"
	calls := 0
	index := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, content)
	})
	handler := Page(store, 20*time.Second, anonymousKey)(index)

	get := func() *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		return rr
	}

	first := get()
	assert.Equal(t, "A", first.Body.String())
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	// a new post appears but the cached page is still served
	content = "B"
	second := get()
	assert.Equal(t, "A", second.Body.String())
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))

	require.NoError(t, store.Clear(ctx))
	assert.Equal(t, "B", get().Body.String())

	// the post is deleted, the page stays until the next clear
	content = "C"
	assert.Equal(t, "B", get().Body.String())

	require.NoError(t, store.Clear(ctx))
	assert.Equal(t, "C", get().Body.String())

	assert.Equal(t, 3, calls)
}

func TestPage_KeysAndBypass(t *testing.T) {
	store := NewMemoryStore()
	calls := 0

	handler := Page(store, time.Minute, anonymousKey)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Query().Get("page") == "9" {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		fmt.Fprintf(w, "page %s", r.URL.Query().Get("page"))
	}))

	serve := func(method, target string) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(method, target, nil))
		return rr
	}

	assert.Equal(t, "page 1", serve(http.MethodGet, "/?page=1").Body.String())
	assert.Equal(t, "page 2", serve(http.MethodGet, "/?page=2").Body.String())
	assert.Equal(t, "page 1", serve(http.MethodGet, "/?page=1").Body.String())
	assert.Equal(t, 2, calls)

	t.Run("Не GET запрос не кэшируется", func(t *testing.T) {
		serve(http.MethodPost, "/?page=1")
		assert.Equal(t, 3, calls)
	})

	t.Run("Редирект не кэшируется", func(t *testing.T) {
		assert.Equal(t, http.StatusFound, serve(http.MethodGet, "/?page=9").Code)
		assert.Equal(t, http.StatusFound, serve(http.MethodGet, "/?page=9").Code)
		assert.Equal(t, 5, calls)
	})
}

func TestPage_StoreFailure(t *testing.T) {
	handler := Page(failingStore{}, time.Minute, anonymousKey)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "live")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "live", rr.Body.String())
}

func TestPageKey(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?page=2", nil)

	assert.Equal(t, "page:/?page=2|leo", PageKey(r, "leo"))
	assert.NotEqual(t, PageKey(r, "leo"), PageKey(r, ""))
	assert.Equal(t, "page:/|", PageKey(httptest.NewRequest(http.MethodGet, "/", nil), ""))
	assert.Equal(t, "page:/?page=2|leo", PageKey(httptest.NewRequest(http.MethodGet, "/?utm=mail&page=2", nil), "leo"))
	assert.Equal(t, "page:/|", PageKey(httptest.NewRequest(http.MethodGet, "/?junk=1", nil), ""))
}

func TestPage_ExtraQueryDoesNotGrowStore(t *testing.T) {
	store := NewMemoryStore()
	calls := 0

	handler := Page(store, time.Minute, anonymousKey)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, "index")
	}))

	for i := 0; i < 500; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/?junk=%d", i), nil))
		require.Equal(t, http.StatusOK, rr.Code)
	}

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, store.Len())
}
