package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stocks-simulator/session"
)

func currentUser(c *gin.Context) uint {
	id, _ := session.UserID(c.Request.Context())
	return id
}

func (h *Handler) Index(c *gin.Context) {
	portfolio, err := h.trading.Portfolio(c.Request.Context(), currentUser(c))
	if err != nil {
		h.apology(c, err)
		return
	}
	h.render(c, http.StatusOK, "index.html", "Portfolio", gin.H{"Portfolio": portfolio})
}

func (h *Handler) BuyForm(c *gin.Context) {
	h.render(c, http.StatusOK, "buy.html", "Buy", nil)
}

func (h *Handler) Buy(c *gin.Context) {
	var form TradeForm
	if err := c.ShouldBind(&form); err != nil {
		h.apology(c, formError(err))
		return
	}
	shares, _ := ParseShares(form.Shares)

	if _, err := h.trading.Buy(c.Request.Context(), currentUser(c), form.Symbol, shares); err != nil {
		h.apology(c, err)
		return
	}

	h.flash(c, "Bought!")
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) SellForm(c *gin.Context) {
	symbols, err := h.trading.OwnedSymbols(c.Request.Context(), currentUser(c))
	if err != nil {
		h.apology(c, err)
		return
	}
	h.render(c, http.StatusOK, "sell.html", "Sell", gin.H{"Symbols": symbols})
}

func (h *Handler) Sell(c *gin.Context) {
	var form TradeForm
	if err := c.ShouldBind(&form); err != nil {
		h.apology(c, formError(err))
		return
	}
	shares, _ := ParseShares(form.Shares)

	if _, err := h.trading.Sell(c.Request.Context(), currentUser(c), form.Symbol, shares); err != nil {
		h.apology(c, err)
		return
	}

	h.flash(c, "Sold!")
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) History(c *gin.Context) {
	history, err := h.trading.History(c.Request.Context(), currentUser(c))
	if err != nil {
		h.apology(c, err)
		return
	}
	h.render(c, http.StatusOK, "history.html", "History", gin.H{"History": history})
}
