package constants

type ContextKey string

const (
	MaxGuesses = 6
)

const (
	GuessStatusWrong   = "wrong"
	GuessStatusClose   = "close"
	GuessStatusCorrect = "correct"
	GuessStatusFail    = "fail"
)

const (
	SessionCookieName = "session_id"
)

const (
	RouteHome    = "/"
	RoutePuzzle  = "/puzzle"
	RouteGuess   = "/guess"
	RouteHealthz = "/healthz"
)

const (
	ErrorCodeMissingGuess  = "missing_guess"
	ErrorCodePuzzleFailure = "puzzle_unavailable"
)

const (
	// NoHintSentinel is returned in place of the synonym list when a
	// puzzle defines none.
	NoHintSentinel = "No hint available"
)

const (
	RequestIDKey ContextKey = "request_id"
)
