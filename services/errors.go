package services

import "errors"

// Общие ошибки сервисного слоя, маппятся на HTTP статусы в handlers.
var (
	// Not found
	ErrCardNotFound       = errors.New("card not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrUserNotFound       = errors.New("user not found")

	// Validation / business rules
	ErrValidationFailed                  = errors.New("validation failed")
	ErrCardTitleRequired                 = errors.New("card title is required")
	ErrTournamentNameRequired            = errors.New("tournament name is required")
	ErrTournamentInvalidFormat           = errors.New("invalid tournament format provided")
	ErrTournamentInvalidStatus           = errors.New("invalid tournament status provided")
	ErrTournamentInvalidStatusTransition = errors.New("invalid tournament status transition")
	ErrTournamentInvalidDateRange        = errors.New("tournament end date must be after start date")
	ErrTournamentInvalidCapacity         = errors.New("tournament max participants must be positive")
	ErrMatchInvalidStatus                = errors.New("invalid match status provided")
	ErrMatchInvalidWinner                = errors.New("winner must be one of the match players")
	ErrMatchNegativeScore                = errors.New("match scores must not be negative")

	// Bracket lifecycle
	ErrInsufficientPlayers      = errors.New("at least 2 players are required to start a tournament")
	ErrTournamentAlreadyStarted = errors.New("tournament has already been started")
	ErrBracketsAlreadyExist     = errors.New("brackets already exist for this tournament")

	// Access
	ErrForbiddenOperation = errors.New("operation not permitted for this user")

	// Registration
	ErrRegistrationNotOpen  = errors.New("tournament is not accepting registrations")
	ErrTournamentFull       = errors.New("tournament registration is full")
	ErrRegistrationConflict = errors.New("user is already registered for this tournament")
	ErrRegistrationNotFound = errors.New("registration not found")
)
