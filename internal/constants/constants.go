package constants

// Session / context keys
const (
	ContextKeyUserID = "user_id"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Auth
const (
	MinPasswordLength = 8
)

// DefaultBoxLabel is assigned to equipment and materials whose box was never set.
const DefaultBoxLabel = "Caja 1"
