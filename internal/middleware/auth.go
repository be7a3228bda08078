package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/hongminglow/finance-be/internal/auth"
	"github.com/hongminglow/finance-be/internal/http/respond"
)

// Authorize runs the authorization gate for req on every request and either
// hands the resolved principal to next through the context or answers with the
// rejection.
func Authorize(gate *auth.Gate, errs *respond.Dispatcher, req auth.Requirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				errs.Error(w, r, err)
				return
			}

			decision := gate.Evaluate(r.Context(), token, req)
			if !decision.Authorized() {
				errs.Error(w, r, decision.Reason)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), decision.Principal)))
		})
	}
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", auth.ErrInvalidCredentials.WithCause(errors.New("missing authorization header"))
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", auth.ErrInvalidCredentials.WithCause(errors.New("malformed authorization header"))
	}
	return strings.TrimSpace(parts[1]), nil
}
