package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/sleepdoctor/sleepdoc/internal/xcontext"
	"github.com/sleepdoctor/sleepdoc/internal/xhttp"
)

// RequestID honors an inbound X-Request-ID and otherwise mints a UUID.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(xhttp.XRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		ctx := xcontext.SetRequestID(r.Context(), id)
		xhttp.SetHeaderRequestID(w, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
