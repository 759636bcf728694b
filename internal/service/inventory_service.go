package service

import (
	"context"
	"time"

	"go-stockcontrol-ws/internal/model"
	"go-stockcontrol-ws/internal/session"
	"go-stockcontrol-ws/pkg/metrics"

	"github.com/google/uuid"
)

// InventoryStats summarizes the inventory: distinct entries and total units.
type InventoryStats struct {
	TotalItems int `json:"totalItems"`
	TotalStock int `json:"totalStock"`
}

type InventoryService interface {
	Items(ctx context.Context, sess *session.Session) model.ItemList
	AddItem(ctx context.Context, sess *session.Session, draft *model.ItemDraft) (*model.InventoryItem, error)
	UpdateItem(ctx context.Context, sess *session.Session, id string, draft *model.ItemDraft) (bool, error)
	DeleteItem(ctx context.Context, sess *session.Session, id string) error
	Stats(sess *session.Session) InventoryStats
}

type inventoryService struct{}

func NewInventoryService() InventoryService {
	return &inventoryService{}
}

func (s *inventoryService) Items(ctx context.Context, sess *session.Session) model.ItemList {
	if sess == nil {
		return model.ItemList{}
	}
	return sess.Inventory(ctx)
}

// AddItem appends a fresh item to the inventory and persists the snapshot.
// Quantity and price arrive already coerced (garbage decodes as zero); there
// is deliberately no validation layer on top of that.
func (s *inventoryService) AddItem(ctx context.Context, sess *session.Session, draft *model.ItemDraft) (*model.InventoryItem, error) {
	if sess == nil {
		return nil, ErrNoSession
	}

	now := time.Now()
	item := model.InventoryItem{
		ID:        uuid.NewString(),
		Kind:      draft.Kind,
		Size:      draft.Size,
		Color:     draft.Color,
		Quantity:  draft.Quantity,
		Price:     draft.Price,
		Category:  draft.Category,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: sess.Username(),
	}

	sess.Apply(func(snap *model.Snapshot) {
		snap.Inventory = append(snap.Inventory, item)
	})

	if !sess.Persist(ctx, session.SectionInventory|session.SectionSales) {
		metrics.Operations.WithLabelValues("add_item", "error").Inc()
		return &item, ErrPersistFailed
	}
	metrics.Operations.WithLabelValues("add_item", "ok").Inc()
	return &item, nil
}

// UpdateItem replaces the mutable fields of an item. Returns false, with no
// error, when the id does not exist.
func (s *inventoryService) UpdateItem(ctx context.Context, sess *session.Session, id string, draft *model.ItemDraft) (bool, error) {
	if sess == nil {
		return false, ErrNoSession
	}

	found := false
	sess.Apply(func(snap *model.Snapshot) {
		for i := range snap.Inventory {
			if snap.Inventory[i].ID != id {
				continue
			}
			it := &snap.Inventory[i]
			it.Kind = draft.Kind
			it.Size = draft.Size
			it.Color = draft.Color
			it.Quantity = draft.Quantity
			it.Price = draft.Price
			it.Category = draft.Category
			it.UpdatedAt = time.Now()
			found = true
			return
		}
	})
	if !found {
		return false, nil
	}

	if !sess.Persist(ctx, session.SectionInventory|session.SectionSales) {
		metrics.Operations.WithLabelValues("update_item", "error").Inc()
		return true, ErrPersistFailed
	}
	metrics.Operations.WithLabelValues("update_item", "ok").Inc()
	return true, nil
}

// DeleteItem removes an item if present. Deleting an unknown id is
// indistinguishable from success.
func (s *inventoryService) DeleteItem(ctx context.Context, sess *session.Session, id string) error {
	if sess == nil {
		return ErrNoSession
	}

	sess.Apply(func(snap *model.Snapshot) {
		kept := snap.Inventory[:0]
		for _, it := range snap.Inventory {
			if it.ID != id {
				kept = append(kept, it)
			}
		}
		snap.Inventory = kept
	})

	sess.Persist(ctx, session.SectionInventory|session.SectionSales)
	metrics.Operations.WithLabelValues("delete_item", "ok").Inc()
	return nil
}

// Stats counts distinct entries and sums units across the inventory.
func (s *inventoryService) Stats(sess *session.Session) InventoryStats {
	if sess == nil {
		return InventoryStats{}
	}
	snap := sess.Snapshot()
	total := 0
	for _, it := range snap.Inventory {
		total += int(it.Quantity)
	}
	return InventoryStats{TotalItems: len(snap.Inventory), TotalStock: total}
}
