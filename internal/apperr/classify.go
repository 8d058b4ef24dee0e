package apperr

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"strings"
)

// Classify folds any raw failure into a classified *Error. Already-classified
// errors pass through unchanged, so it is safe to call at every layer.
// A nil err yields nil. When a history is provided the result is recorded.
func Classify(err error, history *History) *Error {
	if err == nil {
		return nil
	}

	classified := classify(err)
	if history != nil {
		history.Record(classified)
	}
	return classified
}

func classify(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	// Known sentinel and interface checks first.
	if errors.Is(err, sql.ErrNoRows) {
		return Wrap(err, KindNotFound, "no matching entity")
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Wrap(err, KindNetwork, "store call timed out")
	}
	if errors.Is(err, context.Canceled) {
		return Wrap(err, KindNetwork, "store call canceled")
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return Wrap(err, KindNetwork, "transport failure reaching store")
	}

	// Fall back to message patterns, same order as the taxonomy.
	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, "unauthorized", "missing token", "invalid token", "token expired"):
		return Wrap(err, KindAuthentication, "caller identity missing or invalid")
	case containsAny(msg, "forbidden", "permission denied", "not owner"):
		return Wrap(err, KindAuthorization, "forbidden")
	case containsAny(msg, "not found", "no rows"):
		return Wrap(err, KindNotFound, "no matching entity")
	case containsAny(msg, "invalid", "malformed", "required", "must be"):
		return Wrap(err, KindValidation, "malformed input")
	case containsAny(msg, "connection refused", "connection reset", "broken pipe",
		"no such host", "network is unreachable", "dial tcp", "i/o timeout", "timeout"):
		return Wrap(err, KindNetwork, "transport failure reaching store")
	case containsAny(msg, "constraint", "duplicate key", "database", "sql", "pq:"):
		return Wrap(err, KindStorage, "store returned an error")
	default:
		return Wrap(err, KindUnknown, "unclassified failure")
	}
}

func containsAny(s string, patterns ...string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
