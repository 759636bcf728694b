package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// ItemList, SaleList and NoteList persist as JSONB columns.
type ItemList []InventoryItem

func (l ItemList) Value() (driver.Value, error) { return jsonValue(l) }
func (l *ItemList) Scan(src interface{}) error  { return jsonScan(l, src) }

type SaleList []Sale

func (l SaleList) Value() (driver.Value, error) { return jsonValue(l) }
func (l *SaleList) Scan(src interface{}) error  { return jsonScan(l, src) }

type NoteList []Note

func (l NoteList) Value() (driver.Value, error) { return jsonValue(l) }
func (l *NoteList) Scan(src interface{}) error  { return jsonScan(l, src) }

func jsonValue(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func jsonScan(dst interface{}, src interface{}) error {
	if src == nil {
		return nil
	}
	switch s := src.(type) {
	case []byte:
		return json.Unmarshal(s, dst)
	case string:
		return json.Unmarshal([]byte(s), dst)
	default:
		return errors.New("unsupported column type for json section")
	}
}

// Document is the single per-user row holding the access token and all data
// sections. The token is provisioned out-of-band (see cmd/set-token) and never
// written by the sync path.
type Document struct {
	Username   string    `gorm:"type:varchar(255);primaryKey" json:"-"`
	Token      string    `gorm:"type:varchar(255)" json:"-"`
	Inventory  ItemList  `gorm:"type:jsonb" json:"inventory"`
	Sales      SaleList  `gorm:"type:jsonb" json:"sales"`
	Notes      NoteList  `gorm:"type:jsonb" json:"notes"`
	LastUpdate time.Time `json:"lastUpdate"`
}

func (Document) TableName() string { return "user_documents" }

// DocumentPatch is a merge-write: nil sections are left untouched by the
// store. LastUpdate is always written.
type DocumentPatch struct {
	Inventory  *ItemList
	Sales      *SaleList
	Notes      *NoteList
	LastUpdate time.Time
}

// Snapshot is the in-memory view of a document's data sections. It is the
// unit handed to sync listeners. LastUpdate orders snapshots of the same
// document; a watcher can drop one that is older than what it already holds.
type Snapshot struct {
	Inventory  ItemList  `json:"inventory"`
	Sales      SaleList  `json:"sales"`
	Notes      NoteList  `json:"notes"`
	LastUpdate time.Time `json:"lastUpdate"`
}

// FillDefaults replaces absent sections with empty ones. The store does not
// guarantee every field exists in a document.
func (s *Snapshot) FillDefaults() {
	if s.Inventory == nil {
		s.Inventory = ItemList{}
	}
	if s.Sales == nil {
		s.Sales = SaleList{}
	}
	if s.Notes == nil {
		s.Notes = NoteList{}
	}
}

// Clone returns a copy whose slices are independent of the receiver's.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Inventory:  make(ItemList, len(s.Inventory)),
		Sales:      make(SaleList, len(s.Sales)),
		Notes:      make(NoteList, len(s.Notes)),
		LastUpdate: s.LastUpdate,
	}
	copy(out.Inventory, s.Inventory)
	copy(out.Sales, s.Sales)
	copy(out.Notes, s.Notes)
	return out
}
