package services

import "net/http"

// Rejection is a user-facing refusal. It carries the HTTP status the
// presentation layer should answer with.
type Rejection struct {
	Status  int
	Message string
}

func (r *Rejection) Error() string {
	return r.Message
}

func badRequest(msg string) *Rejection {
	return &Rejection{Status: http.StatusBadRequest, Message: msg}
}

func forbidden(msg string) *Rejection {
	return &Rejection{Status: http.StatusForbidden, Message: msg}
}

var (
	ErrUsernameRequired = badRequest("must provide username")
	ErrPasswordRequired = badRequest("must provide password")
	ErrPasswordMismatch = badRequest("confirmation must match password")
	ErrUsernameTaken    = badRequest("sorry, username already exists")
	ErrInvalidShares    = badRequest("shares must be a whole, positive number")
	ErrSymbolRequired   = badRequest("must provide symbol")
	ErrInvalidSymbol    = badRequest("stock symbol doesn't exist")

	ErrInvalidCredentials = forbidden("invalid username and/or password")
	ErrInsufficientCash   = forbidden("cannot purchase stock, insufficient cash")
	ErrInsufficientShares = forbidden("cannot sell stock, insufficient shares")
	ErrNotOwned           = forbidden("cannot sell stock you don't own")
)
