package service

import (
	"context"
	"fmt"

	"fashionhub/internal/model"
	"fashionhub/internal/repository"

	"github.com/google/uuid"
)

type SupplierRequest struct {
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone" binding:"required"`
	Email         string `json:"email" binding:"omitempty,email"`
	Address       string `json:"address"`
	GSTNumber     string `json:"gst_number"`
	Notes         string `json:"notes"`
	IsActive      *bool  `json:"is_active"`
}

type SupplierService interface {
	Create(ctx context.Context, req SupplierRequest) (*model.Supplier, error)
	Get(ctx context.Context, id string) (*model.Supplier, error)
	List(ctx context.Context, page, limit int) ([]model.Supplier, int64, error)
	Update(ctx context.Context, id string, req SupplierRequest) (*model.Supplier, error)
	Delete(ctx context.Context, id string) error
}

type supplierService struct {
	repo repository.SupplierRepository
}

func NewSupplierService(repo repository.SupplierRepository) SupplierService {
	return &supplierService{repo: repo}
}

func applySupplierRequest(supplier *model.Supplier, req SupplierRequest) {
	supplier.Name = req.Name
	supplier.ContactPerson = req.ContactPerson
	supplier.Phone = req.Phone
	supplier.Email = req.Email
	supplier.Address = req.Address
	supplier.GSTNumber = req.GSTNumber
	supplier.Notes = req.Notes
	if req.IsActive != nil {
		supplier.IsActive = *req.IsActive
	}
}

func (s *supplierService) Create(ctx context.Context, req SupplierRequest) (*model.Supplier, error) {
	supplier := &model.Supplier{IsActive: true}
	applySupplierRequest(supplier, req)
	if err := s.repo.Create(ctx, supplier); err != nil {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}
	return supplier, nil
}

func (s *supplierService) Get(ctx context.Context, id string) (*model.Supplier, error) {
	supplierID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a valid id", repository.ErrSupplierNotFound, id)
	}
	return s.repo.FindByID(ctx, supplierID)
}

func (s *supplierService) List(ctx context.Context, page, limit int) ([]model.Supplier, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.repo.List(ctx, page, limit)
}

func (s *supplierService) Update(ctx context.Context, id string, req SupplierRequest) (*model.Supplier, error) {
	supplierID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a valid id", repository.ErrSupplierNotFound, id)
	}

	supplier, err := s.repo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	applySupplierRequest(supplier, req)
	if err := s.repo.Update(ctx, supplier); err != nil {
		return nil, fmt.Errorf("failed to update supplier: %w", err)
	}
	return supplier, nil
}

func (s *supplierService) Delete(ctx context.Context, id string) error {
	supplierID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: %q is not a valid id", repository.ErrSupplierNotFound, id)
	}
	return s.repo.Delete(ctx, supplierID)
}
