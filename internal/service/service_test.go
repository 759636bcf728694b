package service

import (
	"context"
	"testing"

	"go-stockcontrol-ws/internal/broker"
	"go-stockcontrol-ws/internal/model"
	"go-stockcontrol-ws/internal/session"
	"go-stockcontrol-ws/internal/testutil"
)

// newTestSession logs in a seeded user and returns the live session plus the
// backing repo for store-side assertions.
func newTestSession(t *testing.T, doc *model.Document) (*session.Session, *testutil.MemoryRepo) {
	t.Helper()
	repo := testutil.NewMemoryRepo()
	doc.Username = "maria"
	doc.Token = "secreto"
	repo.Seed(doc)

	mgr := session.NewManager(repo, broker.NewMemoryBroker())
	sess, err := mgr.Login(context.Background(), "maria", "secreto")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	t.Cleanup(func() { mgr.Logout("maria") })
	return sess, repo
}

func stockedDoc(quantity int) *model.Document {
	return &model.Document{
		Inventory: model.ItemList{{
			ID:       "item-1",
			Kind:     "Remera",
			Size:     "M",
			Color:    "Azul",
			Quantity: model.LaxInt(quantity),
			Price:    5.5,
			Category: "remeras",
		}},
	}
}
