package constants

const (
	// ContextKeyUserID is the key under which the authenticated user's ID is
	// stored, both in the session and in the gin context.
	ContextKeyUserID = "user_id"

	// ContextKeyRequestID is the gin context key holding the request ID.
	ContextKeyRequestID = "request_id"

	// ContextKeyResourceID holds the parsed :id path parameter.
	ContextKeyResourceID = "resource_id"

	// ContextKeyTeam holds the team loaded from the :id path parameter.
	ContextKeyTeam = "team"

	// SessionCookieName is the name of the session cookie.
	SessionCookieName = "reqroute_session"

	// MinPasswordLength is the minimum accepted password length at signup.
	MinPasswordLength = 8
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Date and time wire formats
const (
	DateLayout      = "2006-01-02"
	TimeOfDayLayout = "15:04:05"
)
