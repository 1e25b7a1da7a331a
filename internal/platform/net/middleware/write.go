package middleware

import (
	"net/http"

	pnet "villagevisits/internal/platform/net"
)

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, env := pnet.Failure(err, pnet.RequestID(r.Context()))
	pnet.WriteJSON(w, status, env)
}
