package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stocks-simulator/middleware"
	"stocks-simulator/services"
	"stocks-simulator/session"
)

func (h *Handler) render(c *gin.Context, status int, page, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	_, loggedIn := session.UserID(c.Request.Context())
	data["Title"] = title
	data["LoggedIn"] = loggedIn
	data["Flash"] = h.popFlash(c)
	c.HTML(status, page, data)
}

// popFlash returns the pending flash message once.
func (h *Handler) popFlash(c *gin.Context) string {
	sess, ok := middleware.CurrentSession(c)
	if !ok || sess.Flash == "" {
		return ""
	}
	msg := sess.Flash
	sess.Flash = ""
	if err := h.sessions.Save(c.Request.Context(), sess); err != nil {
		h.log.WithError(err).Warn("could not clear flash message")
	}
	return msg
}

// flash queues msg for the next rendered page.
func (h *Handler) flash(c *gin.Context, msg string) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		return
	}
	sess.Flash = msg
	if err := h.sessions.Save(c.Request.Context(), sess); err != nil {
		h.log.WithError(err).Warn("could not store flash message")
	}
}

// apology renders err for the user. Rejections keep their status and
// message; anything else is logged and shown as a 500.
func (h *Handler) apology(c *gin.Context, err error) {
	var rejection *services.Rejection
	if errors.As(err, &rejection) {
		h.render(c, rejection.Status, "apology.html", "Apology", gin.H{
			"Status":  rejection.Status,
			"Message": rejection.Message,
		})
		return
	}

	h.log.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
	h.render(c, http.StatusInternalServerError, "apology.html", "Apology", gin.H{
		"Status":  http.StatusInternalServerError,
		"Message": "internal server error",
	})
}
