// Package httpkit is what module http packages build routes with:
// return style handlers, body binding, auth groups and list helpers
package httpkit

import (
	"mime/multipart"
	"net/http"
	"strings"

	"villagevisits/internal/core/pagination"
	"villagevisits/internal/modkit/scope"
	"villagevisits/internal/platform/net/http/bind"
	"villagevisits/internal/platform/net/middleware"

	phttp "villagevisits/internal/platform/net/http"
)

type (
	Envelope = phttp.Envelope
	Response = phttp.Response
	Handler  = phttp.Handler
	Router   = phttp.Router
)

func OK(data any) Response      { return phttp.OK(data) }
func Created(data any) Response { return phttp.Created(data) }
func NoContent() Response       { return phttp.NoContent() }
func Error(err error) Response  { return phttp.Error(err) }

// List answers one page of items
func List[T any](p pagination.Params, total int64, items []T) Response {
	return phttp.List(p, total, items)
}

// JSON binds and validates the body into T, failures answer 422 per field
func JSON[T any](fn func(*http.Request, T) (any, error)) Handler { return phttp.JSONHandler(fn) }

// Upload binds T from a JSON body or from multipart form values,
// the fileField part is nil when absent and always for JSON
func Upload[T any](fileField string, fn func(*http.Request, T, *multipart.FileHeader) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) Response {
		var (
			in  T
			fh  *multipart.FileHeader
			err error
		)
		if bind.IsMultipart(r) {
			in, fh, err = bind.ParseMultipart[T](r, fileField, 0)
		} else {
			in, err = bind.ParseJSON[T](r)
		}
		if err != nil {
			return phttp.Error(err)
		}
		return phttp.Result(fn(r, in, fh))
	})
}

func Get(r Router, path string, h func(*http.Request) (any, error))    { r.Get(path, phttp.Call(h)) }
func Post(r Router, path string, h func(*http.Request) (any, error))   { r.Post(path, phttp.Call(h)) }
func Delete(r Router, path string, h func(*http.Request) (any, error)) { r.Delete(path, phttp.Call(h)) }

func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, JSON(h))
}

func PatchJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Patch(path, JSON(h))
}

func PostUpload[T any](r Router, path, fileField string, h func(*http.Request, T, *multipart.FileHeader) (any, error)) {
	r.Post(path, Upload(fileField, h))
}

// MountAPI mounts under /api/{version} with mw applied to every route
func MountAPI(r Router, version string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route("/api/"+strings.Trim(version, "/"), func(api Router) {
		api.Use(mw...)
		mount(api)
	})
}

func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountAPI(r, "v1", mw, mount)
}

// Protected puts fn's routes behind bearer auth and resolves the caller's scope
func Protected(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(g Router) {
		g.Use(Auth(p), scope.Middleware)
		fn(g)
	})
}
