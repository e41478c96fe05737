package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	constants "parludo/internal/constants"
	game "parludo/internal/game"
	models "parludo/internal/models"
	util "parludo/internal/util"
)

func GetOrCreateSession(app *models.App, c *gin.Context) string {
	sessionID, err := c.Cookie(constants.SessionCookieName)
	if err != nil || len(sessionID) < 10 {
		sessionID = uuid.NewString()
		c.SetSameSite(http.SameSiteStrictMode)
		secure := app.IsProduction
		c.SetCookie(constants.SessionCookieName, sessionID, int(app.CookieMaxAge.Seconds()), "/", "", secure, true)
		util.LogInfo("Created new session: %s", sessionID)
	}
	return sessionID
}

// GetSessionState returns the stored state for the session, creating a
// fresh one on first contact. Concurrent guesses from one player can both
// read the same state before either save lands; sessions are not locked
// across the read-evaluate-save cycle and that double-submit race is
// accepted.
func GetSessionState(app *models.App, sessionID string) *models.SessionState {
	app.SessionMutex.RLock()
	state, exists := app.Sessions[sessionID]
	app.SessionMutex.RUnlock()
	if exists {
		app.SessionMutex.Lock()
		state.LastAccessTime = time.Now()
		app.SessionMutex.Unlock()
		return state
	}

	util.LogInfo("Creating fresh state for session: %s", sessionID)
	state = game.NewSessionState()
	app.SessionMutex.Lock()
	app.Sessions[sessionID] = state
	app.SessionMutex.Unlock()
	return state
}

func SaveSessionState(app *models.App, sessionID string, state *models.SessionState) {
	app.SessionMutex.Lock()
	app.Sessions[sessionID] = state
	state.LastAccessTime = time.Now()
	app.SessionMutex.Unlock()
}

func CleanupExpiredSessions(app *models.App) {
	app.SessionMutex.Lock()
	defer app.SessionMutex.Unlock()

	now := time.Now()
	expiredCount := 0
	for sessionID, state := range app.Sessions {
		if now.Sub(state.LastAccessTime) > app.SessionTTL {
			delete(app.Sessions, sessionID)
			expiredCount++
		}
	}

	if expiredCount > 0 {
		util.LogInfo("Cleaned up %d expired sessions", expiredCount)
	}
}

func StartSessionCleanup(app *models.App) {
	ticker := time.NewTicker(10 * time.Minute)
	go func() {
		defer ticker.Stop()
		for range ticker.C {
			CleanupExpiredSessions(app)
		}
	}()
	util.LogInfo("Started session cleanup goroutine")
}
