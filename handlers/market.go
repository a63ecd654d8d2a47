package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) QuoteForm(c *gin.Context) {
	h.render(c, http.StatusOK, "quote.html", "Quote", nil)
}

func (h *Handler) Quote(c *gin.Context) {
	var form QuoteForm
	if err := c.ShouldBind(&form); err != nil {
		h.apology(c, formError(err))
		return
	}

	quote, err := h.trading.Quote(c.Request.Context(), form.Symbol)
	if err != nil {
		h.apology(c, err)
		return
	}

	h.render(c, http.StatusOK, "quoted.html", "Quoted", gin.H{"Quote": quote})
}
