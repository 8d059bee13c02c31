package errors

import "net/http"

var (
	ErrInvalidRequest = &DomainError{
		Code:    "INVALID_REQUEST",
		Message: "invalid request",
		Status:  http.StatusBadRequest,
	}
	ErrInvalidAmount = &DomainError{
		Code:    "INVALID_AMOUNT",
		Message: "amount must be greater than zero",
		Status:  http.StatusBadRequest,
	}
	ErrMissingMethod = &DomainError{
		Code:    "MISSING_METHOD",
		Message: "both transfer methods are required",
		Status:  http.StatusBadRequest,
	}
	ErrSameMethod = &DomainError{
		Code:    "SAME_METHOD",
		Message: "source and destination methods must differ",
		Status:  http.StatusBadRequest,
	}
	ErrMethodNotFound = &DomainError{
		Code:    "METHOD_NOT_FOUND",
		Message: "transfer method not found",
		Status:  http.StatusNotFound,
	}
	ErrMethodInUse = &DomainError{
		Code:    "METHOD_IN_USE",
		Message: "transfer method is referenced by fee rules or orders",
		Status:  http.StatusConflict,
	}
	ErrMethodCodeTaken = &DomainError{
		Code:    "METHOD_CODE_TAKEN",
		Message: "transfer method code already exists",
		Status:  http.StatusConflict,
	}
	ErrFeeRuleNotFound = &DomainError{
		Code:    "FEE_RULE_NOT_FOUND",
		Message: "fee rule not found",
		Status:  http.StatusNotFound,
	}
	ErrInvalidFeeRule = &DomainError{
		Code:    "INVALID_FEE_RULE",
		Message: "invalid fee rule",
		Status:  http.StatusBadRequest,
	}
	ErrQuoteUnavailable = &DomainError{
		Code:    "QUOTE_UNAVAILABLE",
		Message: "transfer is not available for this route and amount",
		Status:  http.StatusUnprocessableEntity,
	}
	ErrOrderNotFound = &DomainError{
		Code:    "ORDER_NOT_FOUND",
		Message: "transfer order not found",
		Status:  http.StatusNotFound,
	}
	ErrInvalidStatus = &DomainError{
		Code:    "INVALID_STATUS",
		Message: "unknown order status",
		Status:  http.StatusBadRequest,
	}
	ErrIllegalTransition = &DomainError{
		Code:    "ILLEGAL_TRANSITION",
		Message: "order status transition not allowed",
		Status:  http.StatusConflict,
	}
	ErrPhoneRequired = &DomainError{
		Code:    "PHONE_REQUIRED",
		Message: "phone is required",
		Status:  http.StatusBadRequest,
	}
)

var (
	ErrInvalidCredentials = &DomainError{
		Code:    "INVALID_CREDENTIALS",
		Message: "invalid email or password",
		Status:  http.StatusUnauthorized,
	}
	ErrInvalidToken = &DomainError{
		Code:    "INVALID_TOKEN",
		Message: "invalid token",
		Status:  http.StatusUnauthorized,
	}
	ErrUserNotFound = &DomainError{
		Code:    "USER_NOT_FOUND",
		Message: "user not found",
		Status:  http.StatusNotFound,
	}
)
