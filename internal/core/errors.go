// Package core defines the fundamental types and errors for Synk.
package core

import "errors"

// Core errors that can occur across the system
var (
	// Auth / router errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("not authenticated")

	// Onboarding errors
	ErrNicknameRequired = errors.New("nickname is required")
	ErrConsentRequired  = errors.New("consent has not been granted")

	// Check-in errors
	ErrBaselineExists   = errors.New("baseline check-in already recorded")
	ErrBaselineRequired = errors.New("baseline check-in not recorded")
	ErrCheckinDone      = errors.New("daily check-in already recorded today")
	ErrInvalidScore     = errors.New("score out of range")

	// Survey errors
	ErrSurveyIncomplete = errors.New("survey has unanswered questions")
	ErrAtFirstQuestion  = errors.New("already at the first question")

	// Diagnosis errors
	ErrDiagnosisRequired = errors.New("diagnosis not available")
	ErrDiagnosisInvalid  = errors.New("diagnosis payload failed validation")

	// Progression errors
	ErrConnectLocked = errors.New("connect surface is locked")

	// Chat errors
	ErrChatNotFound    = errors.New("chat session not found")
	ErrChatBusy        = errors.New("chat already has a request in flight")
	ErrScenarioUnknown = errors.New("unknown practice scenario")
	ErrProfileUnknown  = errors.New("unknown connect profile")

	// Validation errors
	ErrInvalidInput    = errors.New("invalid input")
	ErrMissingRequired = errors.New("missing required field")
)
