// Package errors provides custom error types for storefront operations.
package errors

import "errors"

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrStoreNotFound       = errors.New("store not found")
	ErrTestimonialNotFound = errors.New("testimonial not found")
	ErrInquiryNotFound     = errors.New("inquiry not found")
	ErrSubscriberNotFound  = errors.New("subscriber not found")

	ErrAlreadySubscribed   = errors.New("email is already subscribed")
	ErrAlreadyUnsubscribed = errors.New("email is already unsubscribed")
	ErrDuplicateID         = errors.New("record with this id already exists")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
)

// ErrInvalidInput marks a request that is well-formed but breaks a business rule.
var ErrInvalidInput = errors.New("invalid input")
