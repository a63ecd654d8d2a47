package handlers

import (
	"errors"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"stocks-simulator/services"
)

type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

type RegisterForm struct {
	Username     string `form:"username"`
	Password     string `form:"password"`
	Confirmation string `form:"confirmation"`
}

type QuoteForm struct {
	Symbol string `form:"symbol" binding:"required"`
}

// TradeForm is posted by both the buy and the sell page.
type TradeForm struct {
	Symbol string `form:"symbol" binding:"required"`
	Shares string `form:"shares" binding:"required,shares"`
}

var registerOnce sync.Once

func registerValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			if err := v.RegisterValidation("shares", validShares); err != nil {
				panic(err)
			}
		}
	})
}

func validShares(fl validator.FieldLevel) bool {
	_, ok := ParseShares(fl.Field().String())
	return ok
}

// ParseShares accepts a plain decimal number of shares within the order
// limits. Signs, spaces and fractions are refused.
func ParseShares(s string) (int64, bool) {
	if s == "" || len(s) > 10 {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 1 || n > services.MaxShares {
		return 0, false
	}
	return n, true
}

// formError turns a binding failure into the rejection shown to the user.
func formError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Field() {
		case "Shares":
			return services.ErrInvalidShares
		case "Symbol":
			return services.ErrSymbolRequired
		}
	}
	return &services.Rejection{Status: 400, Message: "invalid form submission"}
}
