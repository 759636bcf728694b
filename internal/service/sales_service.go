package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-stockcontrol-ws/internal/model"
	"go-stockcontrol-ws/internal/session"
	"go-stockcontrol-ws/pkg/metrics"
	"go-stockcontrol-ws/pkg/validator"

	"github.com/google/uuid"
)

var (
	ErrItemNotFound      = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrSaleNotFound      = errors.New("sale not found")
)

type SalesService interface {
	Sales(ctx context.Context, sess *session.Session) model.SaleList
	Register(ctx context.Context, sess *session.Session, req *model.SaleRequest) (*model.Sale, error)
	UpdateStatus(ctx context.Context, sess *session.Session, saleID string, status model.SaleStatus) error
	Delete(ctx context.Context, sess *session.Session, saleID string, restoreStock bool) error
}

type salesService struct{}

func NewSalesService() SalesService {
	return &salesService{}
}

func (s *salesService) Sales(ctx context.Context, sess *session.Session) model.SaleList {
	if sess == nil {
		return model.SaleList{}
	}
	return sess.Sales(ctx)
}

// Register decrements the item's stock and prepends a sale carrying a
// denormalized product snapshot. The decrement and the ledger entry are one
// logical step: both happen before persistence starts, and a failed write
// leaves them applied in memory with ErrPersistFailed telling the caller.
func (s *salesService) Register(ctx context.Context, sess *session.Session, req *model.SaleRequest) (*model.Sale, error) {
	if sess == nil {
		return nil, ErrNoSession
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}

	var sale *model.Sale
	var opErr error
	sess.Apply(func(snap *model.Snapshot) {
		idx := -1
		for i := range snap.Inventory {
			if snap.Inventory[i].ID == req.ItemID {
				idx = i
				break
			}
		}
		if idx == -1 {
			opErr = ErrItemNotFound
			return
		}

		item := &snap.Inventory[idx]
		qty := int(req.Quantity)
		if int(item.Quantity) < qty {
			opErr = ErrInsufficientStock
			return
		}

		item.Quantity = model.LaxInt(int(item.Quantity) - qty)
		item.UpdatedAt = time.Now()

		customer := strings.TrimSpace(req.Customer)
		if customer == "" {
			customer = model.DefaultCustomer
		}
		status := req.Status
		if status == "" {
			status = model.SalePaid
		}

		sale = &model.Sale{
			ID:        uuid.NewString(),
			ItemID:    item.ID,
			Product:   item.Kind,
			Size:      item.Size,
			Color:     item.Color,
			Quantity:  model.LaxInt(qty),
			UnitPrice: item.Price,
			Total:     model.LaxFloat(float64(item.Price) * float64(qty)),
			Date:      time.Now(),
			Seller:    sess.Username(),
			Customer:  customer,
			Status:    status,
		}
		snap.Sales = append(model.SaleList{*sale}, snap.Sales...)
	})
	if opErr != nil {
		metrics.Operations.WithLabelValues("register_sale", "error").Inc()
		return nil, opErr
	}

	if !sess.Persist(ctx, session.SectionAll) {
		metrics.Operations.WithLabelValues("register_sale", "error").Inc()
		return sale, ErrPersistFailed
	}
	metrics.Operations.WithLabelValues("register_sale", "ok").Inc()
	return sale, nil
}

// UpdateStatus sets a sale's status. Moving to "pagado" stamps the payment
// time; moving away does not clear it, matching the ledger's history-keeping
// behavior.
func (s *salesService) UpdateStatus(ctx context.Context, sess *session.Session, saleID string, status model.SaleStatus) error {
	if sess == nil {
		return ErrNoSession
	}

	found := false
	sess.Apply(func(snap *model.Snapshot) {
		for i := range snap.Sales {
			if snap.Sales[i].ID != saleID {
				continue
			}
			snap.Sales[i].Status = status
			if status == model.SalePaid {
				now := time.Now()
				snap.Sales[i].PaidAt = &now
			}
			found = true
			return
		}
	})
	if !found {
		return ErrSaleNotFound
	}

	if !sess.Persist(ctx, session.SectionAll) {
		return ErrPersistFailed
	}
	metrics.Operations.WithLabelValues("update_sale_status", "ok").Inc()
	return nil
}

// Delete removes a sale. With restoreStock, the referenced item gets the
// sale's quantity back, silently skipped when the item no longer exists.
func (s *salesService) Delete(ctx context.Context, sess *session.Session, saleID string, restoreStock bool) error {
	if sess == nil {
		return ErrNoSession
	}

	found := false
	sess.Apply(func(snap *model.Snapshot) {
		idx := -1
		for i := range snap.Sales {
			if snap.Sales[i].ID == saleID {
				idx = i
				break
			}
		}
		if idx == -1 {
			return
		}
		found = true
		sale := snap.Sales[idx]

		if restoreStock {
			for i := range snap.Inventory {
				if snap.Inventory[i].ID == sale.ItemID {
					snap.Inventory[i].Quantity += sale.Quantity
					snap.Inventory[i].UpdatedAt = time.Now()
					break
				}
			}
		}

		snap.Sales = append(snap.Sales[:idx], snap.Sales[idx+1:]...)
	})
	if !found {
		return ErrSaleNotFound
	}

	if !sess.Persist(ctx, session.SectionAll) {
		return ErrPersistFailed
	}
	metrics.Operations.WithLabelValues("delete_sale", "ok").Inc()
	return nil
}
