package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/hongminglow/finance-be/internal/apperr"
	"github.com/hongminglow/finance-be/internal/auth"
	"github.com/hongminglow/finance-be/internal/http/respond"
	"github.com/hongminglow/finance-be/internal/middleware"
	"github.com/hongminglow/finance-be/internal/storage"
	"github.com/hongminglow/finance-be/internal/validate"
)

const maxBodyBytes = 1 << 20

// handlerFunc is an HTTP handler that reports failures by returning them; the
// router hands every returned error to the dispatcher.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// Router mounts handlers on a ServeMux under a path prefix, with or without an
// authorization requirement.
type Router struct {
	mux    *http.ServeMux
	prefix string
	errs   *respond.Dispatcher
	gate   *auth.Gate
}

func NewRouter(mux *http.ServeMux, prefix string, errs *respond.Dispatcher, gate *auth.Gate) *Router {
	return &Router{mux: mux, prefix: strings.TrimRight(prefix, "/"), errs: errs, gate: gate}
}

// Unprefixed returns a router mounting at the server root.
func (rt *Router) Unprefixed() *Router {
	cp := *rt
	cp.prefix = ""
	return &cp
}

// Public mounts h without authorization. pattern is "METHOD /path".
func (rt *Router) Public(pattern string, h handlerFunc) {
	rt.mux.Handle(rt.pattern(pattern), rt.adapt(h))
}

// Guarded mounts h behind the authorization gate at level req.
func (rt *Router) Guarded(pattern string, req auth.Requirement, h handlerFunc) {
	rt.mux.Handle(rt.pattern(pattern), middleware.Authorize(rt.gate, rt.errs, req)(rt.adapt(h)))
}

func (rt *Router) pattern(p string) string {
	method, path, ok := strings.Cut(p, " ")
	if !ok {
		return rt.prefix + p
	}
	return method + " " + rt.prefix + path
}

func (rt *Router) adapt(h handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			rt.errs.Error(w, r, err)
		}
	})
}

// bindJSON decodes the request body into dst and validates it. Malformed JSON
// is reported the same way as a failed field rule.
func bindJSON(v *validate.Validator, r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return decodeError(err)
	}
	return v.Struct(dst)
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return apperr.Validation(apperr.FieldError{
			Loc:  []string{"body", typeErr.Field},
			Msg:  fmt.Sprintf("expected %s", typeErr.Type),
			Type: "type_error",
		}).WithCause(err)
	}
	return apperr.Validation(apperr.FieldError{
		Loc:  []string{"body"},
		Msg:  "invalid JSON payload",
		Type: "json_invalid",
	}).WithCause(err)
}

// pageFromQuery reads skip/limit query parameters.
func pageFromQuery(r *http.Request) (storage.Page, error) {
	var page storage.Page
	var fields []apperr.FieldError
	for _, q := range []struct {
		name string
		dst  *int
	}{{"skip", &page.Skip}, {"limit", &page.Limit}} {
		raw := r.URL.Query().Get(q.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			fields = append(fields, apperr.FieldError{
				Loc:  []string{"query", q.name},
				Msg:  "value is not a valid non-negative integer",
				Type: "int_parsing",
			})
			continue
		}
		*q.dst = n
	}
	if len(fields) > 0 {
		return storage.Page{}, apperr.Validation(fields...)
	}
	return page.Normalize(), nil
}
