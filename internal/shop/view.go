package shop

import (
	"github.com/shopspring/decimal"

	"MiniCart/internal/cart"
	"MiniCart/internal/catalog"
)

type lineView struct {
	ID       int             `json:"id"`
	Title    string          `json:"title"`
	Image    string          `json:"image"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// cartView is what the UI renders: lines sorted by id plus totals.
type cartView struct {
	SessionID string          `json:"session_id"`
	Items     []lineView      `json:"items"`
	Count     int             `json:"count"`
	Total     decimal.Decimal `json:"total"`
}

func newCartView(sessionID string, st cart.State) cartView {
	lines := st.Lines()
	items := make([]lineView, 0, len(lines))
	for _, li := range lines {
		items = append(items, lineView{
			ID:       li.ID,
			Title:    li.Title,
			Image:    li.Image,
			Price:    li.Price,
			Quantity: li.Quantity,
			Subtotal: li.Subtotal(),
		})
	}

	return cartView{
		SessionID: sessionID,
		Items:     items,
		Count:     st.Count(),
		Total:     st.Total(),
	}
}

// lineItemFrom keeps only what the cart freezes from a product.
func lineItemFrom(p catalog.Product) cart.LineItem {
	return cart.LineItem{
		ID:    p.ID,
		Title: p.Title,
		Image: p.Image,
		Price: p.Price,
	}
}
