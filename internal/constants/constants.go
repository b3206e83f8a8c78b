package constants

import "time"

// Gin context and session keys
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUsername  = "username"
	ContextKeyRequestID = "request_id"
	SessionCookieName   = "taskflow_session"
)

// Authentication
const (
	MinPasswordLength = 6
	DefaultTokenTTL   = 24 * time.Hour
	BearerScheme      = "Bearer"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// MaxPage keeps (page-1)*MaxPageSize far from int overflow
	MaxPage = 1_000_000
)

// AI task drafting
const (
	MaxAIGeneratedTasks = 20
	MaxAIInputLength    = 8000
)

// Placeholder analytics values. They are not derived from stored data yet.
const (
	PlaceholderAvgCompletionHours = 2.4
	PlaceholderTeamProductivity   = 94
	PlaceholderFocusTime          = "6.2h"
	PlaceholderCompletionRate     = 87
	PlaceholderTeamVelocity       = 23
	PlaceholderBestWorkHours      = "10-12 AM"
)
