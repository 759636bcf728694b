package service

import (
	"context"
	"errors"
	"testing"

	"go-stockcontrol-ws/internal/model"
)

func TestRegisterSale_DecrementsStockAndRecordsLedger(t *testing.T) {
	sess, repo := newTestSession(t, stockedDoc(10))
	svc := NewSalesService()

	sale, err := svc.Register(context.Background(), sess, &model.SaleRequest{ItemID: "item-1", Quantity: 3})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if sale.Quantity != 3 {
		t.Errorf("expected cantidad 3, got %d", sale.Quantity)
	}
	if float64(sale.Total) != 3*5.5 {
		t.Errorf("expected totalVenta %v, got %v", 3*5.5, sale.Total)
	}
	if sale.Product != "Remera" || sale.Size != "M" || sale.Color != "Azul" {
		t.Errorf("denormalized product fields wrong: %+v", sale)
	}
	if sale.Customer != model.DefaultCustomer {
		t.Errorf("expected default customer, got %q", sale.Customer)
	}
	if sale.Status != model.SalePaid {
		t.Errorf("expected default status pagado, got %q", sale.Status)
	}
	if sale.Seller != "maria" {
		t.Errorf("expected seller maria, got %q", sale.Seller)
	}

	snap := sess.Snapshot()
	if snap.Inventory[0].Quantity != 7 {
		t.Errorf("expected stock 7, got %d", snap.Inventory[0].Quantity)
	}
	if doc := repo.Doc("maria"); len(doc.Sales) != 1 || doc.Inventory[0].Quantity != 7 {
		t.Errorf("sale and decrement must persist together: %+v", doc)
	}
}

func TestRegisterSale_SequentialSalesNewestFirst(t *testing.T) {
	sess, _ := newTestSession(t, stockedDoc(10))
	svc := NewSalesService()

	if _, err := svc.Register(context.Background(), sess, &model.SaleRequest{ItemID: "item-1", Quantity: 3}); err != nil {
		t.Fatalf("first sale failed: %v", err)
	}
	second, err := svc.Register(context.Background(), sess, &model.SaleRequest{ItemID: "item-1", Quantity: 4})
	if err != nil {
		t.Fatalf("second sale failed: %v", err)
	}

	snap := sess.Snapshot()
	if snap.Inventory[0].Quantity != 3 {
		t.Errorf("expected stock 3 after both sales, got %d", snap.Inventory[0].Quantity)
	}
	if len(snap.Sales) != 2 || snap.Sales[0].ID != second.ID {
		t.Errorf("sales must be ordered newest first: %+v", snap.Sales)
	}
}

func TestRegisterSale_InsufficientStock(t *testing.T) {
	sess, _ := newTestSession(t, stockedDoc(2))
	svc := NewSalesService()

	_, err := svc.Register(context.Background(), sess, &model.SaleRequest{ItemID: "item-1", Quantity: 3})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	snap := sess.Snapshot()
	if snap.Inventory[0].Quantity != 2 || len(snap.Sales) != 0 {
		t.Errorf("failed sale must leave the snapshot untouched: %+v", snap)
	}
}

func TestRegisterSale_UnknownItem(t *testing.T) {
	sess, _ := newTestSession(t, stockedDoc(10))
	svc := NewSalesService()

	if _, err := svc.Register(context.Background(), sess, &model.SaleRequest{ItemID: "missing", Quantity: 1}); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
}

func TestRegisterSale_PersistFailureKeepsOptimisticState(t *testing.T) {
	sess, repo := newTestSession(t, stockedDoc(10))
	svc := NewSalesService()
	repo.FailWrites = true

	sale, err := svc.Register(context.Background(), sess, &model.SaleRequest{ItemID: "item-1", Quantity: 3})
	if !errors.Is(err, ErrPersistFailed) {
		t.Fatalf("expected ErrPersistFailed, got %v", err)
	}
	if sale == nil {
		t.Fatal("the applied sale should still be returned")
	}

	// At-most-once local apply, best-effort remote persist.
	snap := sess.Snapshot()
	if snap.Inventory[0].Quantity != 7 || len(snap.Sales) != 1 {
		t.Errorf("in-memory mutation should survive the failed write: %+v", snap)
	}
	if repo.Doc("maria").Inventory[0].Quantity != 10 {
		t.Error("store must be untouched by the failed write")
	}
}

func TestDeleteSale_RestoresStock(t *testing.T) {
	sess, _ := newTestSession(t, stockedDoc(10))
	svc := NewSalesService()

	sale, err := svc.Register(context.Background(), sess, &model.SaleRequest{ItemID: "item-1", Quantity: 4})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := svc.Delete(context.Background(), sess, sale.ID, true); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	snap := sess.Snapshot()
	if snap.Inventory[0].Quantity != 10 {
		t.Errorf("expected stock restored to 10, got %d", snap.Inventory[0].Quantity)
	}
	if len(snap.Sales) != 0 {
		t.Errorf("sale should be removed: %+v", snap.Sales)
	}
}

func TestDeleteSale_RestoreIsNoopWhenItemGone(t *testing.T) {
	sess, _ := newTestSession(t, stockedDoc(10))
	salesSvc := NewSalesService()
	invSvc := NewInventoryService()

	sale, err := salesSvc.Register(context.Background(), sess, &model.SaleRequest{ItemID: "item-1", Quantity: 4})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := invSvc.DeleteItem(context.Background(), sess, "item-1"); err != nil {
		t.Fatalf("DeleteItem failed: %v", err)
	}

	if err := salesSvc.Delete(context.Background(), sess, sale.ID, true); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n := len(sess.Snapshot().Inventory); n != 0 {
		t.Errorf("restore must be a no-op when the item is gone, inventory has %d entries", n)
	}
}

func TestDeleteSale_WithoutRestore(t *testing.T) {
	sess, _ := newTestSession(t, stockedDoc(10))
	svc := NewSalesService()

	sale, err := svc.Register(context.Background(), sess, &model.SaleRequest{ItemID: "item-1", Quantity: 4})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := svc.Delete(context.Background(), sess, sale.ID, false); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if got := sess.Snapshot().Inventory[0].Quantity; got != 6 {
		t.Errorf("stock must stay decremented without restore, got %d", got)
	}
}

func TestUpdateSaleStatus_StampsPaymentTime(t *testing.T) {
	sess, _ := newTestSession(t, stockedDoc(10))
	svc := NewSalesService()

	sale, err := svc.Register(context.Background(), sess, &model.SaleRequest{
		ItemID: "item-1", Quantity: 1, Status: model.SaleDebt, Customer: "Carlos",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if sale.PaidAt != nil {
		t.Fatal("a debt sale must not carry a payment time")
	}

	if err := svc.UpdateStatus(context.Background(), sess, sale.ID, model.SalePaid); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	paid := sess.Snapshot().Sales[0]
	if paid.Status != model.SalePaid || paid.PaidAt == nil {
		t.Errorf("expected pagado with payment time, got %+v", paid)
	}

	// Moving back to debt keeps the stamp.
	if err := svc.UpdateStatus(context.Background(), sess, sale.ID, model.SaleDebt); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	back := sess.Snapshot().Sales[0]
	if back.Status != model.SaleDebt || back.PaidAt == nil {
		t.Errorf("payment time must not be cleared: %+v", back)
	}
}

func TestUpdateSaleStatus_UnknownSale(t *testing.T) {
	sess, _ := newTestSession(t, stockedDoc(10))
	svc := NewSalesService()

	if err := svc.UpdateStatus(context.Background(), sess, "missing", model.SalePaid); !errors.Is(err, ErrSaleNotFound) {
		t.Errorf("expected ErrSaleNotFound, got %v", err)
	}
	if err := svc.Delete(context.Background(), sess, "missing", true); !errors.Is(err, ErrSaleNotFound) {
		t.Errorf("expected ErrSaleNotFound, got %v", err)
	}
}
