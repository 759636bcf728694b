package repository

import (
	"context"
	"errors"

	"go-stockcontrol-ws/internal/model"

	"gorm.io/gorm"
)

// ErrNotFound is returned when no document exists for a username. Callers use
// it to tell "unknown user" apart from a backend failure.
var ErrNotFound = errors.New("document not found")

type DocumentRepository interface {
	Find(ctx context.Context, username string) (*model.Document, error)
	SavePatch(ctx context.Context, username string, patch model.DocumentPatch) error
	SetToken(ctx context.Context, username, token string) error
}

type documentRepo struct {
	db *gorm.DB
}

func NewDocumentRepo(db *gorm.DB) DocumentRepository {
	return &documentRepo{db}
}

func (r *documentRepo) Find(ctx context.Context, username string) (*model.Document, error) {
	var doc model.Document
	err := r.db.WithContext(ctx).First(&doc, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// SavePatch merge-writes the sections present in the patch. A missing row is
// created on first write, so a user's document exists implicitly once anything
// is saved for them.
func (r *documentRepo) SavePatch(ctx context.Context, username string, patch model.DocumentPatch) error {
	updates := map[string]interface{}{"last_update": patch.LastUpdate}
	if patch.Inventory != nil {
		updates["inventory"] = *patch.Inventory
	}
	if patch.Sales != nil {
		updates["sales"] = *patch.Sales
	}
	if patch.Notes != nil {
		updates["notes"] = *patch.Notes
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Document{}).Where("username = ?", username).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		doc := &model.Document{Username: username, LastUpdate: patch.LastUpdate}
		if patch.Inventory != nil {
			doc.Inventory = *patch.Inventory
		}
		if patch.Sales != nil {
			doc.Sales = *patch.Sales
		}
		if patch.Notes != nil {
			doc.Notes = *patch.Notes
		}
		return tx.Create(doc).Error
	})
}

func (r *documentRepo) SetToken(ctx context.Context, username, token string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Document{}).Where("username = ?", username).Update("token", token)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		return tx.Create(&model.Document{Username: username, Token: token}).Error
	})
}
