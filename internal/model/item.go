package model

import "time"

// InventoryItem is one clothing entry in a user's inventory. JSON field names
// follow the stored document format, which predates this backend.
type InventoryItem struct {
	ID        string    `json:"id"`
	Kind      string    `json:"tipo"`
	Size      string    `json:"talla"`
	Color     string    `json:"color"`
	Quantity  LaxInt    `json:"cantidad"`
	Price     LaxFloat  `json:"precio"`
	Category  string    `json:"categoria"`
	CreatedAt time.Time `json:"fechaCreacion"`
	UpdatedAt time.Time `json:"ultimaModificacion"`
	CreatedBy string    `json:"creadoPor"`
}

// ItemDraft carries the mutable fields of an item as submitted by a client.
// Quantity and price accept both numbers and strings; unparseable values
// decode as zero.
type ItemDraft struct {
	Kind     string   `json:"tipo"`
	Size     string   `json:"talla"`
	Color    string   `json:"color"`
	Quantity LaxInt   `json:"cantidad"`
	Price    LaxFloat `json:"precio"`
	Category string   `json:"categoria"`
}
