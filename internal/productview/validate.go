package productview

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"ProductTrac/internal/productapi"
)

const (
	tagNumber   = "number"
	tagIntegral = "integral"
)

type createInput struct {
	ID    string `validate:"required,number,integral"`
	Name  string `validate:"required"`
	Price string `validate:"required,number"`
}

type updateInput struct {
	Name  string `validate:"required"`
	Price string `validate:"required,number"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation(tagNumber, func(fl validator.FieldLevel) bool {
		return isNumber(fl.Field().String())
	})
	_ = v.RegisterValidation(tagIntegral, func(fl validator.FieldLevel) bool {
		_, err := parseID(fl.Field().String())
		return err == nil
	})
	return v
}

// validateCreate checks presence of id, name and price, then that id and
// price are numbers. Presence failures win over numeric ones.
func (v *View) validateCreate(f FormBuffer) (productapi.Product, string) {
	in := createInput{
		ID:    strings.TrimSpace(f.ID),
		Name:  f.Name,
		Price: strings.TrimSpace(f.Price),
	}
	if err := v.validate.Struct(in); err != nil {
		return productapi.Product{}, classify(err, MsgCreateRequired, MsgCreateNumeric)
	}

	id, _ := parseID(in.ID)
	price, _ := strconv.ParseFloat(in.Price, 64)
	return productapi.Product{ID: id, Name: f.Name, Desc: f.Desc, Price: price}, ""
}

// validateUpdate does not look at id: it was locked when editing began.
func (v *View) validateUpdate(f FormBuffer) (productapi.Product, string) {
	in := updateInput{
		Name:  f.Name,
		Price: strings.TrimSpace(f.Price),
	}
	if err := v.validate.Struct(in); err != nil {
		return productapi.Product{}, classify(err, MsgUpdateRequired, MsgUpdateNumeric)
	}

	id, _ := parseID(strings.TrimSpace(f.ID))
	price, _ := strconv.ParseFloat(in.Price, 64)
	return productapi.Product{ID: id, Name: f.Name, Desc: f.Desc, Price: price}, ""
}

func classify(err error, requiredMsg, numericMsg string) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return numericMsg
	}
	for _, fe := range ve {
		if fe.Tag() == "required" {
			return requiredMsg
		}
	}
	return numericMsg
}

// isNumber accepts anything strconv reads as a finite float, including
// ".5", "5." and "1e3".
func isNumber(s string) bool {
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
}

var errNotIntegral = errors.New("not an integral number")

// parseID accepts any decimal that denotes a whole number, so "2" and "2.0"
// both give 2.
func parseID(s string) (int64, error) {
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return id, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, errNotIntegral
	}
	return int64(f), nil
}
