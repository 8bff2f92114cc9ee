package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"fashionhub/internal/model"
	"fashionhub/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// --- DTOs ---

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=admin salesPerson"`

	CanDiscount        *bool `json:"can_discount"`
	CanRefund          *bool `json:"can_refund"`
	CanViewReports     *bool `json:"can_view_reports"`
	MaxDiscountPercent *int  `json:"max_discount_percent" binding:"omitempty,gte=0,lte=100"`
}

type UpdateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"omitempty,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=admin salesPerson"`
	Status   string `json:"status" binding:"omitempty,oneof=active inactive"`

	CanDiscount        *bool `json:"can_discount"`
	CanRefund          *bool `json:"can_refund"`
	CanViewReports     *bool `json:"can_view_reports"`
	MaxDiscountPercent *int  `json:"max_discount_percent" binding:"omitempty,gte=0,lte=100"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

type SetupStatus struct {
	SetupRequired bool   `json:"setup_required"`
	Message       string `json:"message"`
}

type CreateAdminRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// --- Interface ---

type UserService interface {
	Create(ctx context.Context, actorID string, req CreateUserRequest) (*model.User, error)
	Get(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context, page, limit int) ([]model.User, int64, error)
	Update(ctx context.Context, actorID string, id string, req UpdateUserRequest) (*model.User, error)
	Delete(ctx context.Context, actorID string, id string) error
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	// CheckSetup and CreateInitialAdmin back the unauthenticated bootstrap
	// flow a fresh install goes through before any login is possible.
	CheckSetup(ctx context.Context) (*SetupStatus, error)
	CreateInitialAdmin(ctx context.Context, req CreateAdminRequest) (*model.User, error)
}

type userService struct {
	repo      repository.UserRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
	logger    *zap.Logger
}

func NewUserService(
	repo repository.UserRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	logger *zap.Logger,
) UserService {
	return &userService{repo: repo, auditRepo: auditRepo, txManager: txManager, logger: logger}
}

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_super_secret_key" // development fallback only
	}
	return []byte(secret)
}

func (s *userService) Create(ctx context.Context, actorID string, req CreateUserRequest) (*model.User, error) {
	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, repository.ErrDuplicateEmail
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: string(hashed),
		Role:     req.Role,
		Status:   model.UserStatusActive,
		Permissions: model.UserPermissions{
			CanDiscount:        true,
			MaxDiscountPercent: 10,
		},
	}
	applyPermissions(&user.Permissions, req.CanDiscount, req.CanRefund, req.CanViewReports, req.MaxDiscountPercent)

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Create(txCtx, user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		return s.audit(txCtx, actorID, model.ActionCreateUser, user, map[string]interface{}{"role": user.Role})
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a valid id", repository.ErrUserNotFound, id)
	}
	return s.repo.FindByID(ctx, userID)
}

func (s *userService) List(ctx context.Context, page, limit int) ([]model.User, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.repo.List(ctx, page, limit)
}

func (s *userService) Update(ctx context.Context, actorID string, id string, req UpdateUserRequest) (*model.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a valid id", repository.ErrUserNotFound, id)
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != "" && req.Email != user.Email {
		if _, findErr := s.repo.FindByEmail(ctx, req.Email); findErr == nil {
			return nil, repository.ErrDuplicateEmail
		}
		user.Email = req.Email
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.Status != "" {
		user.Status = req.Status
	}
	if req.Password != "" {
		hashed, hashErr := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if hashErr != nil {
			return nil, fmt.Errorf("failed to hash password: %w", hashErr)
		}
		user.Password = string(hashed)
	}
	applyPermissions(&user.Permissions, req.CanDiscount, req.CanRefund, req.CanViewReports, req.MaxDiscountPercent)

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Update(txCtx, user); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		return s.audit(txCtx, actorID, model.ActionUpdateUser, user, map[string]interface{}{"status": user.Status, "role": user.Role})
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, actorID string, id string) error {
	if actorID == id {
		return ErrSelfDelete
	}

	userID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: %q is not a valid id", repository.ErrUserNotFound, id)
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Delete(txCtx, userID); err != nil {
			return err
		}
		return s.audit(txCtx, actorID, model.ActionDeleteUser, user, map[string]interface{}{"deleted": true})
	})
}

func (s *userService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.Status != model.UserStatusActive {
		return nil, ErrUserInactive
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.repo.Update(ctx, user); err != nil {
		s.logger.Warn("failed to record last login", zap.Error(err))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"name": user.Name,
		"exp":  now.Add(24 * time.Hour).Unix(),
	})
	tokenString, err := token.SignedString(jwtSecret())
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.logger.Info("user logged in", zap.String("email", user.Email), zap.String("role", user.Role))
	return &LoginResponse{Token: tokenString, User: user}, nil
}

func (s *userService) CheckSetup(ctx context.Context) (*SetupStatus, error) {
	exists, err := s.repo.AdminExists(ctx)
	if err != nil {
		return nil, err
	}
	status := &SetupStatus{SetupRequired: !exists}
	if exists {
		status.Message = "Admin user exists. Please login."
	} else {
		status.Message = "No admin user found. Please create initial admin user."
	}
	return status, nil
}

func (s *userService) CreateInitialAdmin(ctx context.Context, req CreateAdminRequest) (*model.User, error) {
	exists, err := s.repo.AdminExists(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAdminExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: string(hashed),
		Role:     model.RoleAdmin,
		Status:   model.UserStatusActive,
		Permissions: model.UserPermissions{
			CanDiscount:        true,
			CanRefund:          true,
			CanViewReports:     true,
			MaxDiscountPercent: 50,
		},
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("failed to create admin user: %w", err)
	}

	s.logger.Info("initial admin created", zap.String("email", admin.Email))
	return admin, nil
}

func applyPermissions(perms *model.UserPermissions, canDiscount, canRefund, canViewReports *bool, maxDiscount *int) {
	if canDiscount != nil {
		perms.CanDiscount = *canDiscount
	}
	if canRefund != nil {
		perms.CanRefund = *canRefund
	}
	if canViewReports != nil {
		perms.CanViewReports = *canViewReports
	}
	if maxDiscount != nil {
		perms.MaxDiscountPercent = *maxDiscount
	}
}

func (s *userService) audit(ctx context.Context, actorID, action string, user *model.User, details interface{}) error {
	var uid *uuid.UUID
	if parsed, err := uuid.Parse(actorID); err == nil {
		uid = &parsed
	}
	payload, _ := json.Marshal(details)
	entry := &model.AuditLog{
		UserID:     uid,
		Action:     action,
		EntityID:   user.ID.String(),
		EntityName: user.Email,
		Details:    string(payload),
	}
	if err := s.auditRepo.Log(ctx, entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}
