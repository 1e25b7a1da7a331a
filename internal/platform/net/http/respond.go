// Package http is the JSON transport layer: the chi backed Router, the
// response envelope and the server
package http

import (
	stdhttp "net/http"

	"villagevisits/internal/core/pagination"
	perr "villagevisits/internal/platform/errors"
	pnet "villagevisits/internal/platform/net"
)

// Envelope wraps every JSON body the api writes
type Envelope = pnet.Envelope

// JSON writes v with status
func JSON(w stdhttp.ResponseWriter, status int, v any) { pnet.WriteJSON(w, status, v) }

func envelope(r *stdhttp.Request, status int, data any) Envelope {
	return pnet.Reply(status, data, pnet.RequestID(r.Context()))
}

func errorEnvelope(r *stdhttp.Request, err error) (int, Envelope) {
	return pnet.Failure(err, pnet.RequestID(r.Context()))
}

// RespondOK writes data in a 200 envelope
func RespondOK(w stdhttp.ResponseWriter, r *stdhttp.Request, data any) {
	JSON(w, stdhttp.StatusOK, envelope(r, stdhttp.StatusOK, data))
}

// RespondError writes err with the status its code maps to
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	status, env := errorEnvelope(r, err)
	JSON(w, status, env)
}

// Response is what return style handlers hand back
// a Body that is an error is written as an error envelope
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// Handle adapts a return style handler
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	if err, ok := resp.Body.(error); ok {
		RespondError(w, r, err)
		return
	}
	status := resp.Status
	switch status {
	case 0:
		status = stdhttp.StatusOK
	case stdhttp.StatusNoContent:
		w.WriteHeader(status)
		return
	}
	JSON(w, status, envelope(r, status, resp.Body))
}

func OK(data any) Response      { return Response{Status: stdhttp.StatusOK, Body: data} }
func Created(data any) Response { return Response{Status: stdhttp.StatusCreated, Body: data} }
func NoContent() Response       { return Response{Status: stdhttp.StatusNoContent} }
func Error(err error) Response  { return Response{Body: err} }

// List answers one page in the pagination envelope
func List[T any](p pagination.Params, total int64, items []T) Response {
	return OK(pagination.New(p, total, items))
}

// NotFound answers unmatched routes
func NotFound(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	RespondError(w, r, perr.NotFoundf("route %s %s not found", r.Method, r.URL.Path))
}

// MethodNotAllowed answers a known path hit with the wrong verb
func MethodNotAllowed(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	RespondError(w, r, perr.Newf(perr.ErrorCodeMethodNotAllowed, "method %s not allowed", r.Method))
}
