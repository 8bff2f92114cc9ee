package service

import (
	"context"
	"fmt"

	"fashionhub/internal/model"
	"fashionhub/internal/repository"

	"github.com/google/uuid"
)

type DraftItemRequest struct {
	ProductID   string  `json:"product_id" binding:"required"`
	ProductName string  `json:"product_name" binding:"required"`
	Quantity    int     `json:"quantity" binding:"required,gt=0"`
	Price       float64 `json:"price" binding:"required,gte=0"`
	Discount    float64 `json:"discount" binding:"gte=0,lte=100"`
	Size        string  `json:"size"`
	Color       string  `json:"color"`
}

type DraftRequest struct {
	Name          string             `json:"name" binding:"required"`
	Items         []DraftItemRequest `json:"items" binding:"required,min=1,dive"`
	CustomerName  string             `json:"customer_name"`
	CustomerPhone string             `json:"customer_phone"`
	Notes         string             `json:"notes"`
}

type DraftService interface {
	Create(ctx context.Context, userID string, req DraftRequest) (*model.Draft, error)
	Get(ctx context.Context, id string) (*model.Draft, error)
	List(ctx context.Context, page, limit int) ([]model.Draft, int64, error)
	Update(ctx context.Context, id string, req DraftRequest) (*model.Draft, error)
	Delete(ctx context.Context, id string) error
}

type draftService struct {
	repo repository.DraftRepository
}

func NewDraftService(repo repository.DraftRepository) DraftService {
	return &draftService{repo: repo}
}

func buildDraftItems(reqs []DraftItemRequest) ([]model.DraftItem, error) {
	items := make([]model.DraftItem, 0, len(reqs))
	for _, itemReq := range reqs {
		pid, err := uuid.Parse(itemReq.ProductID)
		if err != nil {
			return nil, fmt.Errorf("invalid product_id: %w", err)
		}
		items = append(items, model.DraftItem{
			ProductID:   pid,
			ProductName: itemReq.ProductName,
			Quantity:    itemReq.Quantity,
			Price:       itemReq.Price,
			Discount:    itemReq.Discount,
			Size:        itemReq.Size,
			Color:       itemReq.Color,
		})
	}
	return items, nil
}

func (s *draftService) Create(ctx context.Context, userID string, req DraftRequest) (*model.Draft, error) {
	items, err := buildDraftItems(req.Items)
	if err != nil {
		return nil, err
	}

	var createdBy *uuid.UUID
	if parsed, parseErr := uuid.Parse(userID); parseErr == nil {
		createdBy = &parsed
	}

	draft := &model.Draft{
		Name:          req.Name,
		Items:         items,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Notes:         req.Notes,
		CreatedBy:     createdBy,
	}
	if err := s.repo.Create(ctx, draft); err != nil {
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}
	return draft, nil
}

func (s *draftService) Get(ctx context.Context, id string) (*model.Draft, error) {
	draftID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a valid id", repository.ErrDraftNotFound, id)
	}
	return s.repo.FindByID(ctx, draftID)
}

func (s *draftService) List(ctx context.Context, page, limit int) ([]model.Draft, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.repo.List(ctx, page, limit)
}

func (s *draftService) Update(ctx context.Context, id string, req DraftRequest) (*model.Draft, error) {
	draftID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a valid id", repository.ErrDraftNotFound, id)
	}

	draft, err := s.repo.FindByID(ctx, draftID)
	if err != nil {
		return nil, err
	}

	items, err := buildDraftItems(req.Items)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].DraftID = draft.ID
	}

	draft.Name = req.Name
	draft.Items = items
	draft.CustomerName = req.CustomerName
	draft.CustomerPhone = req.CustomerPhone
	draft.Notes = req.Notes

	if err := s.repo.Update(ctx, draft); err != nil {
		return nil, fmt.Errorf("failed to update draft: %w", err)
	}
	return draft, nil
}

func (s *draftService) Delete(ctx context.Context, id string) error {
	draftID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: %q is not a valid id", repository.ErrDraftNotFound, id)
	}
	return s.repo.Delete(ctx, draftID)
}
