package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	constants "parludo/internal/constants"
	game "parludo/internal/game"
	models "parludo/internal/models"
	session "parludo/internal/session"
	util "parludo/internal/util"
)

// resolveToday loads the collection and computes today's index. The
// collection is fetched exactly once per request so the two stay
// consistent even with a reloading provider.
func resolveToday(app *models.App) (models.PuzzleCollection, int, error) {
	collection, err := app.Puzzles.Collection()
	if err != nil {
		return nil, 0, err
	}
	idx := game.DailyIndex(time.Now(), app.StartDate, len(collection))
	return collection, idx, nil
}

func HomeHandler(_ *models.App, c *gin.Context) {
	c.File("static/index.html")
}

// PuzzleHandler returns today's clue pairs together with the session's
// progress. Visiting on a new day resets the session before responding.
func PuzzleHandler(app *models.App, c *gin.Context) {
	collection, idx, err := resolveToday(app)
	if err != nil {
		util.LogWarn("Puzzle collection unavailable: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": constants.ErrorCodePuzzleFailure})
		return
	}

	sessionID := session.GetOrCreateSession(app, c)
	state := session.GetSessionState(app, sessionID)
	if game.EnsureDay(state, idx) {
		util.LogInfo("Session %s reset for day index %d", sessionID, idx)
	}
	session.SaveSessionState(app, sessionID, state)

	puzzle := collection[idx]
	c.JSON(http.StatusOK, models.PuzzleResponse{
		Pairs:          puzzle.Pairs,
		MaxGuesses:     constants.MaxGuesses,
		CurrentGuesses: state.GuessCount,
		History:        state.History,
		Solved:         state.Solved,
		ExtraRevealed:  state.ExtraRevealed,
		DayIndex:       idx + 1,
		Synonyms:       game.Synonyms(puzzle),
	})
}

// GuessHandler scores one guess. A payload without a "guess" key is
// rejected before any session state is touched.
func GuessHandler(app *models.App, c *gin.Context) {
	var req models.GuessRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Guess == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": constants.ErrorCodeMissingGuess})
		return
	}

	collection, idx, err := resolveToday(app)
	if err != nil {
		util.LogWarn("Puzzle collection unavailable: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": constants.ErrorCodePuzzleFailure})
		return
	}

	sessionID := session.GetOrCreateSession(app, c)
	state := session.GetSessionState(app, sessionID)
	if game.EnsureDay(state, idx) {
		util.LogInfo("Session %s reset for day index %d before guess", sessionID, idx)
	}

	resp := game.EvaluateGuess(state, collection[idx], *req.Guess)
	session.SaveSessionState(app, sessionID, state)

	util.LogInfo("Session %s guessed %q: %s (attempt %d/%d)",
		sessionID, *req.Guess, resp.Status, state.GuessCount, constants.MaxGuesses)

	c.JSON(http.StatusOK, resp)
}

func HealthzHandler(app *models.App, c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	uptime := time.Since(app.StartTime)

	app.SessionMutex.RLock()
	sessionCount := len(app.Sessions)
	app.SessionMutex.RUnlock()

	app.LimiterMutex.RLock()
	limiterCount := len(app.LimiterMap)
	app.LimiterMutex.RUnlock()

	puzzleCount := 0
	dayNumber := 0
	if collection, idx, err := resolveToday(app); err == nil {
		puzzleCount = len(collection)
		dayNumber = idx + 1
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"env":             map[bool]string{true: "production", false: "development"}[app.IsProduction],
		"puzzles_loaded":  puzzleCount,
		"day_number":      dayNumber,
		"active_sessions": sessionCount,
		"active_limiters": limiterCount,
		"memory_alloc_mb": m.Alloc / 1024 / 1024,
		"memory_sys_mb":   m.Sys / 1024 / 1024,
		"memory_gc_count": m.NumGC,
		"uptime":          util.FormatUptime(uptime),
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
	})
}
