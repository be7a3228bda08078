package respond

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hongminglow/finance-be/internal/apperr"
	"github.com/hongminglow/finance-be/internal/storage"
)

// Error types rendered in the "type" field by rules that are not driven by an
// *apperr.Error kind.
const (
	TypeIntegrity = "integrity_error"
	TypeInternal  = "internal_server_error"
)

const (
	integrityMessage = "数据库完整性错误，请检查数据关联。"
	internalMessage  = "服务器内部错误"
	notFoundMessage  = "记录未找到"
	conflictMessage  = "数据已存在"
)

// Rule maps one error category to a response.
type Rule struct {
	Name   string
	Match  func(err error) bool
	Render func(err error) (status int, body any)
}

// Dispatcher turns errors into HTTP responses. Rules are tried in registration
// order, so more specific categories must be registered first; anything no rule
// claims is answered as an internal error.
type Dispatcher struct {
	logger *slog.Logger
	rules  []Rule
}

// NewDispatcher returns a dispatcher with the default rule set.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	d := &Dispatcher{logger: logger}
	d.Register(
		appErrorRule("validation", apperr.KindValidation, func(ae *apperr.Error) any {
			detail := ae.Fields
			if detail == nil {
				detail = []apperr.FieldError{}
			}
			return struct {
				Detail []apperr.FieldError `json:"detail"`
			}{Detail: detail}
		}),
		appErrorRule("business", apperr.KindBusiness, messageBody),
		appErrorRule("not_found", apperr.KindNotFound, messageBody),
		appErrorRule("conflict", apperr.KindConflict, messageBody),
		sentinelRule("storage_not_found", storage.ErrNotFound, http.StatusNotFound, ErrorBody{Message: notFoundMessage, Type: string(apperr.KindNotFound)}),
		sentinelRule("storage_conflict", storage.ErrAlreadyExists, http.StatusConflict, ErrorBody{Message: conflictMessage, Type: string(apperr.KindConflict)}),
		sentinelRule("integrity", storage.ErrIntegrity, http.StatusBadRequest, ErrorBody{Message: integrityMessage, Type: TypeIntegrity}),
	)
	return d
}

// Register appends rules after the existing ones.
func (d *Dispatcher) Register(rules ...Rule) {
	d.rules = append(d.rules, rules...)
}

// Error writes the response for err.
func (d *Dispatcher) Error(w http.ResponseWriter, r *http.Request, err error) {
	for _, rule := range d.rules {
		if !rule.Match(err) {
			continue
		}
		status, body := rule.Render(err)
		d.logger.InfoContext(r.Context(), "request rejected",
			slog.String("rule", rule.Name),
			slog.Int("status", status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		if status == http.StatusUnauthorized {
			w.Header().Set("WWW-Authenticate", "Bearer")
		}
		JSON(w, status, body)
		return
	}

	d.logger.ErrorContext(r.Context(), "unhandled error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	JSON(w, http.StatusInternalServerError, ErrorBody{Message: internalMessage, Type: TypeInternal})
}

func appErrorRule(name string, kind apperr.Kind, body func(*apperr.Error) any) Rule {
	return Rule{
		Name: name,
		Match: func(err error) bool {
			ae, ok := apperr.As(err)
			return ok && ae.Kind == kind
		},
		Render: func(err error) (int, any) {
			ae, _ := apperr.As(err)
			return ae.Status, body(ae)
		},
	}
}

func messageBody(ae *apperr.Error) any {
	return ErrorBody{Message: ae.Message, Type: string(ae.Kind)}
}

func sentinelRule(name string, target error, status int, body ErrorBody) Rule {
	return Rule{
		Name:   name,
		Match:  func(err error) bool { return errors.Is(err, target) },
		Render: func(error) (int, any) { return status, body },
	}
}
