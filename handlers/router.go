package handlers

import (
	"html/template"

	"github.com/gin-gonic/gin"

	"stocks-simulator/middleware"
)

// NewRouter builds the engine with every route of the application.
func NewRouter(h *Handler, pages *template.Template) *gin.Engine {
	registerValidators()

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.NoCache(),
		middleware.RequestLogger(h.log),
		middleware.LoadSession(h.sessions, h.log),
	)
	r.SetHTMLTemplate(pages)

	r.GET("/healthz", h.Health)

	r.GET("/login", h.LoginForm)
	r.POST("/login", h.Login)
	r.GET("/register", h.RegisterForm)
	r.POST("/register", h.Register)
	r.GET("/logout", h.Logout)

	auth := r.Group("/")
	auth.Use(middleware.RequireLogin())
	{
		auth.GET("/", h.Index)
		auth.GET("/buy", h.BuyForm)
		auth.POST("/buy", h.Buy)
		auth.GET("/sell", h.SellForm)
		auth.POST("/sell", h.Sell)
		auth.GET("/quote", h.QuoteForm)
		auth.POST("/quote", h.Quote)
		auth.GET("/history", h.History)
	}

	return r
}
