package productview_test

import (
	"context"
	"net/http"
	"sync"

	"ProductTrac/internal/productapi"
)

type call struct {
	op      string
	id      string
	product productapi.Product
}

// fakeBackend serves an in-memory collection and records every call.
type fakeBackend struct {
	mu       sync.Mutex
	products []productapi.Product
	calls    []call

	listErr      error
	createErr    error
	updateErr    error
	deleteErr    error
	deleteStatus int
}

func newFakeBackend(products ...productapi.Product) *fakeBackend {
	return &fakeBackend{products: products, deleteStatus: http.StatusOK}
}

func (f *fakeBackend) List(_ context.Context) ([]productapi.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{op: "list"})
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]productapi.Product(nil), f.products...), nil
}

func (f *fakeBackend) Create(_ context.Context, p productapi.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{op: "create", product: p})
	if f.createErr != nil {
		return f.createErr
	}
	f.products = append(f.products, p)
	return nil
}

func (f *fakeBackend) Update(_ context.Context, id string, p productapi.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{op: "update", id: id, product: p})
	if f.updateErr != nil {
		return f.updateErr
	}
	for i := range f.products {
		if f.products[i].ID == p.ID {
			f.products[i] = p
		}
	}
	return nil
}

func (f *fakeBackend) Delete(_ context.Context, id int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{op: "delete", product: productapi.Product{ID: id}})
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	kept := f.products[:0]
	for _, p := range f.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	f.products = kept
	return f.deleteStatus, nil
}

func (f *fakeBackend) ops() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.op)
	}
	return out
}

func (f *fakeBackend) last(op string) (call, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.calls) - 1; i >= 0; i-- {
		if f.calls[i].op == op {
			return f.calls[i], true
		}
	}
	return call{}, false
}
