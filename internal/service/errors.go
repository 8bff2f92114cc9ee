package service

import "errors"

var (
	// Receipt conflicts. Both are terminal states for the receive path;
	// neither call mutates any stock.
	ErrOrderAlreadyReceived = errors.New("purchase order already received")
	ErrOrderCancelled       = errors.New("purchase order is cancelled")
	ErrOrderNotPending      = errors.New("purchase order is not pending")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrAdminExists        = errors.New("admin user already exists")
	ErrSelfDelete         = errors.New("cannot delete your own account")

	ErrZeroAdjustment = errors.New("stock adjustment delta must be non-zero")
)
