package http

import (
	"net/http"

	"villagevisits/internal/platform/net/http/bind"
)

// Result turns a handler's (out, err) into a Response,
// out is passed through when it already is one
func Result(out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return OK(out)
}

// JSONHandler binds and validates the body into T before calling fn
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		return Result(fn(r, in))
	})
}

// Call wraps a handler that reads no body
func Call(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response { return Result(fn(r)) })
}
