package middleware

import (
	"net/http"

	"github.com/sleepdoctor/sleepdoc/internal/xhttp"
)

func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(xhttp.XContentTypeOpts, "nosniff")
		w.Header().Set(xhttp.XFrameOpts, "DENY")
		w.Header().Set(xhttp.ReferrerPolicy, "no-referrer")
		next.ServeHTTP(w, r)
	})
}
