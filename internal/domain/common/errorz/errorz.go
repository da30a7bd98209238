package errorz

import "errors"

var (
	ErrForbidden          = errors.New("forbidden")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user is inactive")
	ErrEmailNotConfirmed  = errors.New("email is not confirmed")
	ErrPasswordNotSet     = errors.New("password has not been set")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidCode        = errors.New("invalid code")
	ErrCodeExpired        = errors.New("code expired")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrEmailInUse         = errors.New("email already verified")
	ErrClubNotFound       = errors.New("club not found")
	ErrEventNotFound      = errors.New("event not found")
	ErrValidation         = errors.New("validation failed")
)
