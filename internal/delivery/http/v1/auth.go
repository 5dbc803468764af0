package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"choretracker/internal/models"
)

const (
	sessionCookie    = "session_id"
	oauthStateCookie = "oauth_state"
)

func (h *handlerImpl) HandleOAuthLogin(c *gin.Context) {
	// Already logged in sessions go straight back home.
	if _, err := c.Cookie(sessionCookie); err == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	state := uuid.NewString()
	setOAuthStateCookie(c, state)

	c.Redirect(http.StatusFound, h.auth.AuthorizeURL(state))
}

func (h *handlerImpl) HandleOAuthCallback(c *gin.Context) {
	state, err := c.Cookie(oauthStateCookie)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("oauth state cookie missing")
		abort(c, newBadRequestError(errMandatoryCookieNotFound.Error()))
		return
	}
	if state == "" || state != c.Query("state") {
		h.logger.Error().Msg("oauth state mismatch")
		abort(c, newBadRequestError(errOAuthStateMismatch.Error()))
		return
	}

	code := c.Query("code")
	if code == "" {
		h.logger.Error().Msg("oauth code missing")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	identity, err := h.auth.ExchangeCode(c, code)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to exchange oauth code")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	result, err := h.sessions.CreateSession(c, *identity)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create session")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	clearOAuthStateCookie(c)
	setSessionCookie(c, result.AccessToken, time.Until(result.AccessTokenExpiresAt))

	c.Redirect(http.StatusFound, "/")
}

func (h *handlerImpl) HandleLogout(c *gin.Context) {
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		h.logger.Error().Msg("no owner id found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	err := h.sessions.DeleteSessionsByOwner(c, ownerID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to logout")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	clearSessionCookie(c)
	c.Status(http.StatusOK)
}

type getUserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

func (h *handlerImpl) HandleGetUser(c *gin.Context) {
	value, exists := c.Get(sessionCtxKey)
	if !exists {
		h.logger.Error().Msg("no session found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	session, ok := value.(*models.Session)
	if !ok {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, getUserResponse{
		ID:       session.OwnerID,
		Username: session.Username,
		Avatar:   session.Avatar,
	})
}

func setSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, token, int(ttl.Seconds()), "/", "", false, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
}

func setOAuthStateCookie(c *gin.Context, state string) {
	const stateTTL = 10 * time.Minute
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, int(stateTTL.Seconds()), "/", "", false, true)
}

func clearOAuthStateCookie(c *gin.Context) {
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)
}
