// Package productview owns the page state: the product list mirrored from
// the backend, the search projection over it, the create/edit form and the
// single error slot. Every backend call goes through View.
package productview

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"ProductTrac/internal/productapi"
)

// Messages shown in the error slot.
const (
	MsgFetchFailed    = "Unable to fetch products"
	MsgCreateRequired = "All fields are required"
	MsgCreateNumeric  = "ID and Price must be numbers"
	MsgCreateFailed   = "Failed to add product"
	MsgUpdateRequired = "Name and Price are required"
	MsgUpdateNumeric  = "Price must be a number"
	MsgUpdateFailed   = "Failed to update product"
	MsgDeleteFailed   = "Failed to delete product"
	MsgUnreachable    = "Server not reachable"
)

// ErrValidation wraps form validation failures; no request was sent.
var ErrValidation = errors.New("invalid form")

type Backend interface {
	List(ctx context.Context) ([]productapi.Product, error)
	Create(ctx context.Context, p productapi.Product) error
	Update(ctx context.Context, id string, p productapi.Product) error
	Delete(ctx context.Context, id int64) (int, error)
}

// View serialises access to State but never holds its lock across a
// backend call, so concurrent actions interleave and the last applied
// fetch wins.
type View struct {
	backend  Backend
	log      *zap.Logger
	validate *validator.Validate

	mu sync.Mutex
	st State
}

func New(backend Backend, log *zap.Logger) *View {
	if log == nil {
		log = zap.NewNop()
	}
	return &View{
		backend:  backend,
		log:      log,
		validate: newValidator(),
		st: State{
			Products: []productapi.Product{},
			Filtered: []productapi.Product{},
		},
	}
}

func (v *View) Snapshot() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.st.clone()
}

// Lookup finds a product in the cached list.
func (v *View) Lookup(id int64) (productapi.Product, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, p := range v.st.Products {
		if p.ID == id {
			return p, true
		}
	}
	return productapi.Product{}, false
}

// FetchAll replaces the product list with the backend's. On failure the
// list is left as it was.
func (v *View) FetchAll(ctx context.Context) error {
	products, err := v.backend.List(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()

	if err != nil {
		v.log.Warn("fetch products failed", zap.Error(err))
		v.st.Error = MsgFetchFailed
		return err
	}
	v.st.Products = products
	v.st.Filtered = Filter(products, v.st.Search)
	return nil
}

func (v *View) Search(term string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.st.Search = term
	v.st.Filtered = Filter(v.st.Products, term)
}

// SetField updates one form input. The id is read-only while editing.
func (v *View) SetField(name, value string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch name {
	case "id":
		if v.st.Mode == ModeEdit {
			return
		}
		v.st.Form.ID = value
	case "name":
		v.st.Form.Name = value
	case "desc":
		v.st.Form.Desc = value
	case "price":
		v.st.Form.Price = value
	}
}

func (v *View) BeginEdit(p productapi.Product) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.st.Form = FormBuffer{
		ID:    strconv.FormatInt(p.ID, 10),
		Name:  p.Name,
		Desc:  p.Desc,
		Price: strconv.FormatFloat(p.Price, 'f', -1, 64),
	}
	v.st.Mode = ModeEdit
}

func (v *View) CancelEdit() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.resetLocked()
}

// Submit sends the form as a create or an update depending on the mode.
func (v *View) Submit(ctx context.Context) error {
	v.mu.Lock()
	mode := v.st.Mode
	v.mu.Unlock()

	if mode == ModeEdit {
		return v.SubmitUpdate(ctx)
	}
	return v.SubmitCreate(ctx)
}

func (v *View) SubmitCreate(ctx context.Context) error {
	form := v.beginSubmit()

	p, msg := v.validateCreate(form)
	if msg != "" {
		v.setError(msg)
		return fmt.Errorf("%w: %s", ErrValidation, msg)
	}

	if err := v.backend.Create(ctx, p); err != nil {
		v.log.Warn("create product failed", zap.Int64("id", p.ID), zap.Error(err))
		v.setError(createFailure(err))
		return err
	}

	v.reset()
	return v.FetchAll(ctx)
}

func (v *View) SubmitUpdate(ctx context.Context) error {
	form := v.beginSubmit()

	p, msg := v.validateUpdate(form)
	if msg != "" {
		v.setError(msg)
		return fmt.Errorf("%w: %s", ErrValidation, msg)
	}

	if err := v.backend.Update(ctx, form.ID, p); err != nil {
		v.log.Warn("update product failed", zap.String("id", form.ID), zap.Error(err))
		v.setError(updateFailure(err))
		return err
	}

	v.reset()
	return v.FetchAll(ctx)
}

// DeleteByID refreshes the list whatever status the backend answers; only
// a transport failure is reported.
func (v *View) DeleteByID(ctx context.Context, id int64) error {
	code, err := v.backend.Delete(ctx, id)
	if err != nil {
		v.log.Warn("delete product failed", zap.Int64("id", id), zap.Error(err))
		v.setError(MsgDeleteFailed)
		return err
	}
	if code < 200 || code > 299 {
		v.log.Debug("delete answered non-success", zap.Int64("id", id), zap.Int("status", code))
	}
	return v.FetchAll(ctx)
}

func (v *View) beginSubmit() FormBuffer {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.st.Error = ""
	return v.st.Form
}

func (v *View) setError(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.st.Error = msg
}

func (v *View) reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.resetLocked()
}

func (v *View) resetLocked() {
	v.st.Form = FormBuffer{}
	v.st.Mode = ModeCreate
	v.st.Error = ""
}

func createFailure(err error) string {
	var ce *productapi.ConflictError
	switch {
	case errors.As(err, &ce):
		return ce.Detail
	case errors.Is(err, productapi.ErrBadStatus):
		return MsgCreateFailed
	default:
		return MsgUnreachable
	}
}

func updateFailure(err error) string {
	if errors.Is(err, productapi.ErrBadStatus) {
		return MsgUpdateFailed
	}
	return MsgUnreachable
}
