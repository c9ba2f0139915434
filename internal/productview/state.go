package productview

import (
	"fmt"

	"ProductTrac/internal/productapi"
)

type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "EDIT"
	}
	return "CREATE"
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	switch string(b) {
	case "CREATE":
		*m = ModeCreate
	case "EDIT":
		*m = ModeEdit
	default:
		return fmt.Errorf("unknown mode %q", b)
	}
	return nil
}

// FormBuffer holds the create/edit inputs as typed, before numeric coercion.
type FormBuffer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Desc  string `json:"desc"`
	Price string `json:"price"`
}

// State is everything the page renders. Products mirrors the backend and
// is only ever replaced wholesale; Filtered is derived from Products and
// Search.
type State struct {
	Products []productapi.Product `json:"products"`
	Filtered []productapi.Product `json:"filtered"`
	Search   string               `json:"search"`
	Form     FormBuffer           `json:"form"`
	Mode     Mode                 `json:"mode"`
	Error    string               `json:"error,omitempty"`
}

func (s State) Editing() bool { return s.Mode == ModeEdit }

func (s State) clone() State {
	out := s
	out.Products = append([]productapi.Product(nil), s.Products...)
	out.Filtered = append([]productapi.Product(nil), s.Filtered...)
	if out.Products == nil {
		out.Products = []productapi.Product{}
	}
	if out.Filtered == nil {
		out.Filtered = []productapi.Product{}
	}
	return out
}
