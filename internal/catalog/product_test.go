package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validProduct() Product {
	return Product{
		ID:     1,
		Title:  "Shirt",
		Price:  decimal.RequireFromString("19.99"),
		Image:  "https://img.example.com/shirt.jpg",
		Rating: Rating{Rate: 4.1, Count: 3},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Product)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Product) {}},
		{name: "free product", mutate: func(p *Product) { p.Price = decimal.Zero }},
		{name: "zero id", mutate: func(p *Product) { p.ID = 0 }, wantErr: true},
		{name: "negative price", mutate: func(p *Product) { p.Price = decimal.RequireFromString("-1.5") }, wantErr: true},
		{name: "missing title", mutate: func(p *Product) { p.Title = "" }, wantErr: true},
		{name: "missing image", mutate: func(p *Product) { p.Image = "" }, wantErr: true},
		{name: "rating above five", mutate: func(p *Product) { p.Rating.Rate = 5.5 }, wantErr: true},
		{name: "negative rating count", mutate: func(p *Product) { p.Rating.Count = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProduct()
			tt.mutate(&p)

			err := Validate(p)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidProduct)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSeedProductsAreValid(t *testing.T) {
	for _, p := range SeedProducts() {
		assert.NoError(t, Validate(p), "seed product %d", p.ID)
	}
}
