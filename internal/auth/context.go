package auth

import (
	"context"
	"strings"
)

type ctxKey string

const accountKey ctxKey = "auth_account_number"

// ContextWithAccount attaches the authenticated account number.
func ContextWithAccount(ctx context.Context, accountNumber string) context.Context {
	accountNumber = strings.TrimSpace(accountNumber)
	if accountNumber == "" {
		return ctx
	}
	return context.WithValue(ctx, accountKey, accountNumber)
}

// AccountFromContext extracts the authenticated account number, if any.
func AccountFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	v, ok := ctx.Value(accountKey).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
