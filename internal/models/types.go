package models

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Puzzle is one day's entry in the collection: the word to find, the clue
// pairs shown to the player, and an optional synonym list used for "close"
// scoring and hints.
type Puzzle struct {
	Answer   string      `json:"answer"`
	Pairs    [][2]string `json:"pairs"`
	Synonyms []string    `json:"synonyms,omitempty"`
}

// PuzzleCollection is the day-ordered puzzle set. Index 0 is the epoch day.
type PuzzleCollection []Puzzle

// PuzzleProvider hands out the collection. Implementations may reload per
// call or cache; callers must not assume either.
type PuzzleProvider interface {
	Collection() (PuzzleCollection, error)
}

// GuessRecord is one line of a day's guess history. Answer is non-nil only
// on the guess that ended the round.
type GuessRecord struct {
	Guess  string  `json:"guess"`
	Status string  `json:"status"`
	Answer *string `json:"answer"`
}

// SessionState is the per-player state for the current day. DailyIndex -1
// marks a session that has not seen any day yet; a mismatch with the
// freshly computed index resets everything.
type SessionState struct {
	DailyIndex     int           `json:"dailyIndex"`
	GuessCount     int           `json:"guessCount"`
	History        []GuessRecord `json:"history"`
	Solved         bool          `json:"solved"`
	ExtraRevealed  []int         `json:"extraRevealed"`
	LastAccessTime time.Time     `json:"lastAccessTime"`
}

type GuessRequest struct {
	Guess *string `json:"guess"`
}

type GuessResponse struct {
	Status        string  `json:"status"`
	Advance       bool    `json:"advance"`
	Answer        *string `json:"answer"`
	ExtraRevealed []int   `json:"extra_revealed"`
}

type PuzzleResponse struct {
	Pairs          [][2]string   `json:"pairs"`
	MaxGuesses     int           `json:"max_guesses"`
	CurrentGuesses int           `json:"current_guesses"`
	History        []GuessRecord `json:"history"`
	Solved         bool          `json:"solved"`
	ExtraRevealed  []int         `json:"extra_revealed"`
	DayIndex       int           `json:"day_index"`
	Synonyms       []string      `json:"synonyms"`
}

// RateLimiterEntry represents a rate limiter entry for a client IP
type RateLimiterEntry struct {
	Limiter    *rate.Limiter
	LastAccess time.Time
}

type App struct {
	Puzzles        PuzzleProvider
	StartDate      time.Time
	Sessions       map[string]*SessionState
	SessionMutex   sync.RWMutex
	LimiterMap     map[string]*RateLimiterEntry
	LimiterMutex   sync.RWMutex
	IsProduction   bool
	StartTime      time.Time
	CookieMaxAge   time.Duration
	StaticCacheAge time.Duration
	RateLimitRPS   int
	RateLimitBurst int
	RateLimiterTTL time.Duration
	SessionTTL     time.Duration
}
