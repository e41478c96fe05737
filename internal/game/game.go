package game

import (
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
	constants "parludo/internal/constants"
	models "parludo/internal/models"
)

// Normalize maps a raw word to its heuristic stem. At most one suffix rule
// fires per call, checked in this order: "ing" (with a doubled-consonant
// trim), "e", "ed" (with a trailing i -> y rewrite), "es", "s". The rule
// table is a product decision, not a real stemmer: it accepts false
// positives, and "close" scoring depends on reproducing it exactly.
func Normalize(word string) string {
	w := strings.ToLower(strings.TrimSpace(word))
	switch {
	case strings.HasSuffix(w, "ing"):
		base := w[:len(w)-3]
		if len(base) >= 2 && base[len(base)-1] == base[len(base)-2] {
			base = base[:len(base)-1]
		}
		return base
	case strings.HasSuffix(w, "e"):
		return w[:len(w)-1]
	case strings.HasSuffix(w, "ed"):
		base := w[:len(w)-2]
		if strings.HasSuffix(base, "i") {
			base = base[:len(base)-1] + "y"
		}
		return base
	case strings.HasSuffix(w, "es"):
		return w[:len(w)-2]
	case strings.HasSuffix(w, "s"):
		return w[:len(w)-1]
	}
	return w
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DailyIndex selects today's position in the collection: whole calendar
// days elapsed since startDate, clamped at zero for clocks before the
// epoch, mod collectionSize. Time of day is ignored on both sides, so the
// result is stable for an entire calendar day. collectionSize must be >= 1.
func DailyIndex(today, startDate time.Time, collectionSize int) int {
	days := int(midnight(today).Sub(midnight(startDate)) / (24 * time.Hour))
	if days < 0 {
		days = 0
	}
	return days % collectionSize
}

// NewSessionState returns a fresh session that has not seen any day yet, so
// the first puzzle fetch or guess always resets it to the current day.
func NewSessionState() *models.SessionState {
	return &models.SessionState{
		DailyIndex:     -1,
		GuessCount:     0,
		History:        []models.GuessRecord{},
		Solved:         false,
		ExtraRevealed:  []int{},
		LastAccessTime: time.Now(),
	}
}

// EnsureDay resets the session to fresh defaults when its stored day index
// does not match dayIndex (new day, or first contact). Reports whether a
// reset happened.
func EnsureDay(state *models.SessionState, dayIndex int) bool {
	if state.DailyIndex == dayIndex {
		return false
	}
	state.DailyIndex = dayIndex
	state.GuessCount = 0
	state.History = []models.GuessRecord{}
	state.Solved = false
	state.ExtraRevealed = []int{}
	return true
}

// EvaluateGuess classifies one submitted guess against the puzzle and
// mutates the session in place. All session access is through the explicit
// state argument, so the evaluator is deterministic under test.
//
// A guess after the round has ended is still scored and appended to
// history; the outcome fields can no longer flip a win into a loss because
// the fail override only fires while Solved is false.
func EvaluateGuess(state *models.SessionState, puzzle models.Puzzle, rawGuess string) models.GuessResponse {
	guess := strings.ToLower(strings.TrimSpace(rawGuess))
	answer := strings.ToLower(puzzle.Answer)
	synonyms := lo.Map(puzzle.Synonyms, func(s string, _ int) string {
		return strings.ToLower(s)
	})

	guessNorm := Normalize(guess)

	status := constants.GuessStatusWrong
	advance := false
	var reveal *string

	switch {
	case guess == answer:
		status = constants.GuessStatusCorrect
		advance = true
		state.Solved = true
		answerVerbatim := puzzle.Answer
		reveal = &answerVerbatim
	case slices.Contains(synonyms, guess) || guessNorm == Normalize(answer):
		status = constants.GuessStatusClose
	}

	// Pair reveals are independent of the win/loss outcome and grow
	// monotonically within the day.
	for i, pair := range puzzle.Pairs {
		if guessNorm == Normalize(pair[0]) || guessNorm == Normalize(pair[1]) {
			if !slices.Contains(state.ExtraRevealed, i) {
				state.ExtraRevealed = append(state.ExtraRevealed, i)
			}
		}
	}

	state.GuessCount++

	if !state.Solved && state.GuessCount >= constants.MaxGuesses {
		status = constants.GuessStatusFail
		advance = true
		answerVerbatim := puzzle.Answer
		reveal = &answerVerbatim
	}

	state.History = append(state.History, models.GuessRecord{
		Guess:  guess,
		Status: status,
		Answer: reveal,
	})

	return models.GuessResponse{
		Status:        status,
		Advance:       advance,
		Answer:        reveal,
		ExtraRevealed: state.ExtraRevealed,
	}
}

// Synonyms returns the puzzle's hint list, or the sentinel when the puzzle
// defines none.
func Synonyms(puzzle models.Puzzle) []string {
	if len(puzzle.Synonyms) == 0 {
		return []string{constants.NoHintSentinel}
	}
	return puzzle.Synonyms
}
