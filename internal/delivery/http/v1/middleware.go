package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"choretracker/internal/services"
)

const (
	ownerIDCtxKey = "owner_id"
	sessionCtxKey = "session"
)

// HandleAuthMiddleware authenticates API requests through the session
// cookie: a signed access token whose subject is the session id.
func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	accessToken, err := c.Cookie(sessionCookie)
	if err != nil {
		h.logger.Debug().Msg("session cookie missing")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	claims, err := h.auth.ParseJWTToken(accessToken)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to parse access token")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	session, err := h.sessions.GetSessionByID(c, claims.Subject)
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) ||
			errors.Is(err, services.ErrSessionExpired) {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to fetch session")
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Set(ownerIDCtxKey, session.OwnerID)
	c.Set(sessionCtxKey, session)
	c.Next()
}

func ownerIDFromContext(c *gin.Context) (int64, bool) {
	value, exists := c.Get(ownerIDCtxKey)
	if !exists {
		return 0, false
	}
	ownerID, ok := value.(int64)
	return ownerID, ok
}
