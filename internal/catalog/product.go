package catalog

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type Rating struct {
	Rate  float64 `json:"rate" validate:"gte=0,lte=5"`
	Count int     `json:"count" validate:"gte=0"`
}

// Product is the catalog record in the fake-store API shape.
type Product struct {
	ID          int             `json:"id" validate:"gt=0"`
	Title       string          `json:"title" validate:"required"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Image       string          `json:"image" validate:"required"`
	Rating      Rating          `json:"rating"`
}

// Source is anything that can hand out the catalog.
type Source interface {
	Ping(ctx context.Context) error
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int) (Product, bool, error)
}

var ErrInvalidProduct = errors.New("invalid catalog product")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		d, ok := f.Interface().(decimal.Decimal)
		if !ok {
			return nil
		}
		fl, _ := d.Float64()
		return fl
	}, decimal.Decimal{})
	return v
}

// Validate checks the fields the cart relies on. Failures wrap
// ErrInvalidProduct.
func Validate(p Product) error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidProduct, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%w: id=%d: %s", ErrInvalidProduct, p.ID, strings.Join(msgs, "; "))
}
