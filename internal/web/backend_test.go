package web_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"ProductTrac/internal/productapi"
	"ProductTrac/pkg/kit"
)

// fakeBackend speaks the products REST contract over an in-memory map.
type fakeBackend struct {
	mu       sync.Mutex
	products map[int64]productapi.Product
	deletes  int
	down     bool
}

func newFakeBackend(t *testing.T, seed ...productapi.Product) (*fakeBackend, *httptest.Server) {
	t.Helper()

	b := &fakeBackend{products: map[int64]productapi.Product{}}
	for _, p := range seed {
		b.products[p.ID] = p
	}

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b.mu.Lock()
			down := b.down
			b.mu.Unlock()
			if down {
				kit.WriteJSON(w, http.StatusInternalServerError, map[string]any{"detail": "down"})
				return
			}
			next.ServeHTTP(w, r)
		})
	})
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) { kit.WriteJSON(w, http.StatusOK, "welcome") })
	r.Get("/all products", b.list)
	r.Post("/products", b.create)
	r.Put("/products", b.update)
	r.Delete("/products", b.remove)

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return b, ts
}

func (b *fakeBackend) setDown(v bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.down = v
}

func (b *fakeBackend) list(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]productapi.Product, 0, len(b.products))
	for _, p := range b.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	kit.WriteJSON(w, http.StatusOK, out)
}

func (b *fakeBackend) create(w http.ResponseWriter, r *http.Request) {
	var p productapi.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		kit.WriteJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": err.Error()})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.products[p.ID]; ok {
		kit.WriteJSON(w, http.StatusConflict, map[string]any{"detail": "Product with this ID already exists"})
		return
	}
	b.products[p.ID] = p
	kit.WriteJSON(w, http.StatusOK, p)
}

func (b *fakeBackend) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		kit.WriteJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": "bad id"})
		return
	}
	var p productapi.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		kit.WriteJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": err.Error()})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.products[id]; !ok {
		kit.WriteJSON(w, http.StatusOK, "no product found")
		return
	}
	p.ID = id
	b.products[id] = p
	kit.WriteJSON(w, http.StatusOK, "Product updated")
}

func (b *fakeBackend) remove(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.deletes++
	if _, ok := b.products[id]; !ok {
		kit.WriteJSON(w, http.StatusNotFound, "Product not found")
		return
	}
	delete(b.products, id)
	kit.WriteJSON(w, http.StatusOK, "Product removed successfully")
}

func (b *fakeBackend) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.products)
}

func (b *fakeBackend) deleteCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.deletes
}
