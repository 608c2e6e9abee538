package repository

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrEmailRegistered       = errors.New("email already registered")
	ErrMobileRegistered      = errors.New("mobile already registered")
	ErrIDGenerationExhausted = errors.New("failed to generate unique user id")
	ErrPlanNotFound          = errors.New("plan not found")
	ErrDuplicatePlanName     = errors.New("plan with this name already exists")
	ErrKycAlreadySubmitted   = errors.New("kyc already submitted")
	ErrKycNotFound           = errors.New("kyc record not found")
	ErrKycAlreadyDecided     = errors.New("kyc record already decided")
	ErrRequestNotFound       = errors.New("request not found")
	ErrRequestNotPending     = errors.New("request is not pending")
)
