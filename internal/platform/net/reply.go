package net

import (
	"encoding/json"
	"net/http"

	perr "villagevisits/internal/platform/errors"
)

// Envelope wraps every JSON body the api writes, success or failure
type Envelope struct {
	StatusCode int               `json:"status_code"`
	Status     string            `json:"status"`
	Code       perr.ErrorCode    `json:"code,omitempty"`
	Error      string            `json:"error,omitempty"`
	RequestID  string            `json:"request_id,omitempty"`
	Data       any               `json:"data,omitempty"`
	Errors     []perr.FieldError `json:"errors,omitempty"`
}

func Reply(status int, data any, reqID string) Envelope {
	return Envelope{StatusCode: status, Status: http.StatusText(status), RequestID: reqID, Data: data}
}

// Failure is err's envelope together with the status its code maps to
func Failure(err error, reqID string) (int, Envelope) {
	status := perr.HTTPStatus(err)
	wire := perr.WireFrom(err)
	env := Reply(status, nil, reqID)
	env.Code, env.Error, env.Errors = wire.Code, wire.Message, wire.Details
	return status, env
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
