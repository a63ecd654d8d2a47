package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stocks-simulator/middleware"
	"stocks-simulator/session"
)

func (h *Handler) LoginForm(c *gin.Context) {
	h.endSession(c)
	h.render(c, http.StatusOK, "login.html", "Log In", nil)
}

func (h *Handler) Login(c *gin.Context) {
	h.endSession(c)

	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		h.apology(c, formError(err))
		return
	}

	user, err := h.auth.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		h.apology(c, err)
		return
	}

	if err := h.startSession(c, user.ID, ""); err != nil {
		h.apology(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) RegisterForm(c *gin.Context) {
	h.endSession(c)
	h.render(c, http.StatusOK, "register.html", "Register", nil)
}

func (h *Handler) Register(c *gin.Context) {
	h.endSession(c)

	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		h.apology(c, formError(err))
		return
	}

	user, err := h.auth.Register(c.Request.Context(), form.Username, form.Password, form.Confirmation)
	if err != nil {
		h.apology(c, err)
		return
	}

	if err := h.startSession(c, user.ID, "Registered!"); err != nil {
		h.apology(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) Logout(c *gin.Context) {
	h.endSession(c)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) startSession(c *gin.Context, userID uint, flash string) error {
	_, token, err := h.sessions.Create(c.Request.Context(), userID, flash)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, token, 0, "/", "", h.secureCookie, true)
	return nil
}

// endSession forgets the current user, server side and in the browser.
func (h *Handler) endSession(c *gin.Context) {
	if sess, ok := middleware.CurrentSession(c); ok {
		if err := h.sessions.Destroy(c.Request.Context(), sess.ID); err != nil {
			h.log.WithError(err).Warn("could not destroy session")
		}
	}
	middleware.ClearSession(c)

	if _, err := c.Cookie(session.CookieName); err == nil {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(session.CookieName, "", -1, "/", "", h.secureCookie, true)
	}
}
