package models

// CartItem is a single entry in the active cart: a product reference plus a
// quantity. The cart holds at most one entry per product ID; adding the same
// product again merges quantities instead of appending.
type CartItem struct {
	ProductID string `json:"id"`
	Quantity  int    `json:"quantity"`
}
