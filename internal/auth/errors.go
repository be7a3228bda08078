package auth

import (
	"net/http"

	"github.com/hongminglow/finance-be/internal/apperr"
)

// Rejection reasons. Bad tokens and unknown subjects deliberately share
// ErrInvalidCredentials so callers cannot tell them apart.
var (
	ErrInvalidCredentials = apperr.Business(http.StatusUnauthorized, "无法验证凭据")
	ErrInactiveUser       = apperr.Business(http.StatusBadRequest, "用户未激活")
	ErrForbidden          = apperr.Business(http.StatusForbidden, "权限不足")
)
