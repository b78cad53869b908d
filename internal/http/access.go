package http

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/fyrsmithlabs/socialintel/internal/gate"
	"github.com/fyrsmithlabs/socialintel/internal/logging"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// sessionCtxKey is the echo context key holding the request's gate.
const sessionCtxKey = "socialintel.gate"

// currentSession resolves the session cookie to its gate. It records a
// hashed session id in the request context for logging.
func (s *Server) currentSession(c echo.Context) (string, *gate.Gate, bool) {
	cookie, err := c.Cookie(s.config.CookieName)
	if err != nil || cookie.Value == "" {
		return "", nil, false
	}
	g, ok := s.sessions.Get(cookie.Value)
	if !ok {
		return "", nil, false
	}
	req := c.Request()
	c.SetRequest(req.WithContext(logging.WithSessionID(req.Context(), sessionLogID(cookie.Value))))
	return cookie.Value, g, true
}

// sessionLogID derives a loggable identifier from a session id. The id
// itself is a bearer credential and never reaches the log.
func sessionLogID(id string) string {
	sum := sha256.Sum256([]byte(id))
	return hex.EncodeToString(sum[:6])
}

// attempt submits candidate to the caller's gate. Callers without a
// session are checked against a detached gate, and a session is stored
// only once the code is granted.
func (s *Server) attempt(c echo.Context, candidate string) gate.Result {
	id, g, existing := s.currentSession(c)
	if !existing {
		g = s.sessions.NewGate()
	}

	result := g.Attempt(candidate)
	s.metrics.RecordAttempt(c, result)

	ctx := c.Request().Context()
	if result == gate.Granted {
		if !existing {
			id = s.sessions.Adopt(g)
			s.setSessionCookie(c, id)
			ctx = logging.WithSessionID(ctx, sessionLogID(id))
		}
		s.logger.Info(ctx, "access granted")
		return result
	}

	s.logger.Warn(ctx, "access denied", zap.Bool("existing_session", existing))
	return result
}

// endSession resets and forgets the caller's session and expires its
// cookie. Safe to call without a session.
func (s *Server) endSession(c echo.Context) {
	if id, g, ok := s.currentSession(c); ok {
		g.Reset()
		s.sessions.Delete(id)
		s.logger.Info(c.Request().Context(), "session ended")
	}
	s.expireSessionCookie(c)
}

func (s *Server) setSessionCookie(c echo.Context, id string) {
	c.SetCookie(&http.Cookie{
		Name:     s.config.CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.config.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) expireSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     s.config.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.config.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// RequireAccess rejects requests whose session gate is not authenticated
// with 401 and a JSON error. The gate is consulted once per request.
func (s *Server) RequireAccess() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			_, g, ok := s.currentSession(c)
			if !ok || !g.IsAuthenticated() {
				return echo.NewHTTPError(http.StatusUnauthorized, msgAuthRequired)
			}
			c.Set(sessionCtxKey, g)
			return next(c)
		}
	}
}

// handleLogin processes the login form.
func (s *Server) handleLogin(c echo.Context) error {
	var req SessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	if s.attempt(c, req.AccessCode) == gate.Denied {
		return c.Render(http.StatusUnauthorized, pageLogin, loginPage{Error: msgInvalidCode})
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// handleLogout ends the session and returns to the login page.
func (s *Server) handleLogout(c echo.Context) error {
	s.endSession(c)
	return c.Redirect(http.StatusSeeOther, "/")
}

// handleCreateSession is the JSON form of login.
func (s *Server) handleCreateSession(c echo.Context) error {
	var req SessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if s.attempt(c, req.AccessCode) == gate.Denied {
		return c.JSON(http.StatusUnauthorized, SessionResponse{Granted: false})
	}
	return c.JSON(http.StatusOK, SessionResponse{Granted: true})
}

// handleDeleteSession is the JSON form of logout.
func (s *Server) handleDeleteSession(c echo.Context) error {
	s.endSession(c)
	return c.NoContent(http.StatusNoContent)
}
