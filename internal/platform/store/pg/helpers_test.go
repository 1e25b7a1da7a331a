package pg

import (
	"context"
	"net/http"
)

type httpHandler func(context.Context)

func (h httpHandler) ServeHTTP(_ http.ResponseWriter, r *http.Request) { h(r.Context()) }
