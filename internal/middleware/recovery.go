package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/hongminglow/finance-be/internal/http/respond"
)

// Recovery turns a handler panic into an internal error response. The stack is
// attached to the error so it reaches the server log but never the client.
func Recovery(errs *respond.Dispatcher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					errs.Error(w, r, fmt.Errorf("panic: %v\n%s", rec, debug.Stack()))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
