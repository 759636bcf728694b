package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go-stockcontrol-ws/internal/model"
)

func TestAddItem_CoercesDraftAndUpdatesStats(t *testing.T) {
	sess, repo := newTestSession(t, &model.Document{})
	svc := NewInventoryService()

	// Form values arrive string-typed.
	var draft model.ItemDraft
	body := `{"tipo":"Remera","talla":"M","color":"Azul","cantidad":"10","precio":"5.5","categoria":"remeras"}`
	if err := json.Unmarshal([]byte(body), &draft); err != nil {
		t.Fatalf("draft decode failed: %v", err)
	}

	item, err := svc.AddItem(context.Background(), sess, &draft)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if item.ID == "" {
		t.Error("expected a generated id")
	}
	if item.Quantity != 10 {
		t.Errorf("expected cantidad 10, got %d", item.Quantity)
	}
	if float64(item.Price) != 5.5 {
		t.Errorf("expected precio 5.5, got %v", item.Price)
	}
	if item.CreatedBy != "maria" {
		t.Errorf("expected creator maria, got %s", item.CreatedBy)
	}

	stats := svc.Stats(sess)
	if stats.TotalItems != 1 || stats.TotalStock != 10 {
		t.Errorf("expected 1 item / 10 units, got %+v", stats)
	}

	if doc := repo.Doc("maria"); len(doc.Inventory) != 1 {
		t.Errorf("item not persisted: %+v", doc.Inventory)
	}
}

func TestAddItem_GarbageNumbersBecomeZero(t *testing.T) {
	sess, _ := newTestSession(t, &model.Document{})
	svc := NewInventoryService()

	var draft model.ItemDraft
	body := `{"tipo":"Pantalón","cantidad":"muchos","precio":"gratis"}`
	if err := json.Unmarshal([]byte(body), &draft); err != nil {
		t.Fatalf("draft decode failed: %v", err)
	}

	item, err := svc.AddItem(context.Background(), sess, &draft)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if item.Quantity != 0 || item.Price != 0 {
		t.Errorf("unparseable numbers must coerce to zero, got %d / %v", item.Quantity, item.Price)
	}
}

func TestUpdateItem_UnknownIDReturnsFalse(t *testing.T) {
	sess, _ := newTestSession(t, stockedDoc(10))
	svc := NewInventoryService()

	found, err := svc.UpdateItem(context.Background(), sess, "missing", &model.ItemDraft{Kind: "Campera"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected false for unknown id")
	}
	// Snapshot unchanged.
	snap := sess.Snapshot()
	if snap.Inventory[0].Kind != "Remera" {
		t.Errorf("snapshot mutated on missed update: %+v", snap.Inventory[0])
	}
}

func TestUpdateItem_PreservesIdentityFields(t *testing.T) {
	sess, _ := newTestSession(t, stockedDoc(10))
	svc := NewInventoryService()

	created := sess.Snapshot().Inventory[0].CreatedAt

	found, err := svc.UpdateItem(context.Background(), sess, "item-1", &model.ItemDraft{
		Kind: "Campera", Size: "L", Color: "Negro", Quantity: 3, Price: 20, Category: "abrigos",
	})
	if err != nil || !found {
		t.Fatalf("UpdateItem failed: found=%v err=%v", found, err)
	}

	it := sess.Snapshot().Inventory[0]
	if it.ID != "item-1" || !it.CreatedAt.Equal(created) {
		t.Errorf("id/creation time must survive updates: %+v", it)
	}
	if it.Kind != "Campera" || it.Quantity != 3 {
		t.Errorf("mutable fields not replaced: %+v", it)
	}
}

func TestDeleteItem_Idempotent(t *testing.T) {
	sess, repo := newTestSession(t, stockedDoc(10))
	svc := NewInventoryService()

	if err := svc.DeleteItem(context.Background(), sess, "item-1"); err != nil {
		t.Fatalf("first delete failed: %v", err)
	}
	saves := repo.SaveCalls
	if err := svc.DeleteItem(context.Background(), sess, "item-1"); err != nil {
		t.Fatalf("second delete failed: %v", err)
	}
	if repo.SaveCalls != saves+1 {
		t.Error("second delete should still persist")
	}
	if len(sess.Snapshot().Inventory) != 0 {
		t.Error("inventory should stay empty")
	}
}

func TestOperations_RequireSession(t *testing.T) {
	svc := NewInventoryService()

	if _, err := svc.AddItem(context.Background(), nil, &model.ItemDraft{}); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}
	if items := svc.Items(context.Background(), nil); len(items) != 0 {
		t.Errorf("expected empty result without a session, got %+v", items)
	}
}
