package constants

// Centralized constants for env keys, routes and API messages.
const (
	// Environment variable keys
	EnvConfigPath = "CARD_ARENA_CONFIG"
	EnvDBPath     = "CARD_ARENA_DB"
	EnvServerAddr = "CARD_ARENA_ADDR"

	// HTTP headers and content types
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"
)

// Routes used by the backend router
const (
	RouteAPIPrefix      = "/api"
	RouteVersion        = "/version"
	RouteBattles        = "/battles"
	RouteBattleSimulate = "/battles/simulate"
	RouteBattleByID     = "/battles/:battleID"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest     = "Invalid request"
	ErrInvalidBattleID    = "Invalid battle ID"
	ErrBattleNotFound     = "Battle not found"
	ErrFailedFetchBattles = "Failed to fetch battles"
	ErrFailedSaveBattle   = "Failed to save battle"
	ErrFailedDeleteBattle = "Failed to delete battle"
	ErrFailedRunBattle    = "Failed to run battle"
)

// Logging field names
const (
	LogFieldBattleID = "battle_id"
	LogFieldWinner   = "winner"
	LogFieldTurns    = "turns"
	LogFieldAddr     = "addr"
)
