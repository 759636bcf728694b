package model

import "time"

type SaleStatus string

const (
	SalePaid SaleStatus = "pagado"
	SaleDebt SaleStatus = "deuda"
)

// DefaultCustomer is used when a sale is registered without a customer name.
const DefaultCustomer = "Consumidor Final"

// Sale is a ledger entry. Product fields are denormalized snapshots taken at
// the moment of sale. ItemID is a reference only; the item may be deleted
// later without touching the sale.
type Sale struct {
	ID        string     `json:"id"`
	ItemID    string     `json:"itemId"`
	Product   string     `json:"producto"`
	Size      string     `json:"talla"`
	Color     string     `json:"color"`
	Quantity  LaxInt     `json:"cantidad"`
	UnitPrice LaxFloat   `json:"precioUnitario"`
	Total     LaxFloat   `json:"totalVenta"`
	Date      time.Time  `json:"fecha"`
	Seller    string     `json:"vendedor"`
	Customer  string     `json:"cliente"`
	Status    SaleStatus `json:"estado"`
	PaidAt    *time.Time `json:"fechaPago,omitempty"`
}

// SaleRequest is the input for registering a sale.
type SaleRequest struct {
	ItemID   string     `json:"itemId" validate:"required"`
	Quantity LaxInt     `json:"cantidad" validate:"gt=0"`
	Customer string     `json:"cliente"`
	Status   SaleStatus `json:"estado" validate:"omitempty,oneof=pagado deuda"`
}
