package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUsernameAlreadyExists is returned when registration hits the unique
	// index on username or email.
	ErrUsernameAlreadyExists = errors.New("username or email already exists")

	// ErrNoUserWasFound is returned when a lookup matches no account.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrProfileNotFound is returned when a handle or user id has no profile.
	ErrProfileNotFound = errors.New("profile was not found")

	// ErrChallengeNotFound is returned when no OTP challenge is stored for a
	// handle, including after it expired.
	ErrChallengeNotFound = errors.New("otp challenge was not found")

	// ErrCredentialNotFound is returned by the client credential store.
	ErrCredentialNotFound = errors.New("credential was not found")
)

// Low-level database operation errors.
var (
	// ErrBuildingSQLQuery is returned when squirrel cannot render a query.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when a transaction cannot start.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing a transaction fails.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when a result row cannot be scanned.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrEncodingColumn is returned when a JSON column cannot be encoded or
	// decoded.
	ErrEncodingColumn = errors.New("failed to encode json column")
)
