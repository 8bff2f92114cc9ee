package repository

import (
	"context"
	"errors"

	"fashionhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DraftRepository interface {
	Create(ctx context.Context, draft *model.Draft) error
	Update(ctx context.Context, draft *model.Draft) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Draft, error)
	List(ctx context.Context, page, limit int) ([]model.Draft, int64, error)
}

type draftRepository struct {
	db *gorm.DB
}

func NewDraftRepository(db *gorm.DB) DraftRepository {
	return &draftRepository{db: db}
}

func (r *draftRepository) Create(ctx context.Context, draft *model.Draft) error {
	return GetDB(ctx, r.db).Create(draft).Error
}

func (r *draftRepository) Update(ctx context.Context, draft *model.Draft) error {
	// Replace the item set wholesale; drafts are small and edited as a unit.
	return GetDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("draft_id = ?", draft.ID).Delete(&model.DraftItem{}).Error; err != nil {
			return err
		}
		return tx.Save(draft).Error
	})
}

func (r *draftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Draft{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrDraftNotFound
	}
	return nil
}

func (r *draftRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Draft, error) {
	var draft model.Draft
	if err := GetDB(ctx, r.db).
		Preload("Items").
		Preload("Creator").
		First(&draft, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDraftNotFound
		}
		return nil, err
	}
	return &draft, nil
}

func (r *draftRepository) List(ctx context.Context, page, limit int) ([]model.Draft, int64, error) {
	var drafts []model.Draft
	var total int64

	if err := GetDB(ctx, r.db).Model(&model.Draft{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := GetDB(ctx, r.db).
		Preload("Items").
		Preload("Creator").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&drafts).Error; err != nil {
		return nil, 0, err
	}

	return drafts, total, nil
}
