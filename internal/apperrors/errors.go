package apperrors

import "errors"

// Authentication
var (
	ErrMissingToken = errors.New("Missing authentication token")
	ErrInvalidToken = errors.New("Provided authentication token is invalid")
)

// Channels
var (
	ErrChannelNotFound     = errors.New("Channel not found")
	ErrChannelAccessDenied = errors.New("Access channel was not possible due to insufficient permissions")
	ErrChannelUpdateDenied = errors.New("Channel update was not possible due to insufficient permissions")
)

// Messages
var (
	ErrMessageNotFound     = errors.New("Message not found")
	ErrMessageUpdateDenied = errors.New("Message update was not possible due to insufficient permissions")
)

// Users
var (
	ErrUserNotFound  = errors.New("User not found")
	ErrNicknameTaken = errors.New("User with this nickname already exists")
	ErrEmailTaken    = errors.New("User with this email already exists")
)

// Payload
var (
	ErrMissingField     = errors.New("Required field is missing")
	ErrMalformedPayload = errors.New("Invalid request payload")
)
