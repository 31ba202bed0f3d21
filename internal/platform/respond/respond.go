package respond

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/janisto/hello-world-api/internal/api"
	applog "github.com/janisto/hello-world-api/internal/platform/logging"
)

const (
	// MsgNotFound is the message of the catch-all 404 response.
	MsgNotFound = "The requested resource does not exist"
	// MsgInternal is used when a fault carries no description of its own.
	MsgInternal = "An unexpected error occurred"
)

var installOnce sync.Once

// Install makes huma render every error with the shared ErrorResponse body.
func Install() {
	installOnce.Do(func() {
		huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
			return newStatusError(context.Background(), status, msg, errs...)
		}
		huma.NewErrorWithContext = func(hctx huma.Context, status int, msg string, errs ...error) huma.StatusError {
			ctx := context.Background()
			if hctx != nil {
				ctx = hctx.Context()
			}
			return newStatusError(ctx, status, msg, errs...)
		}
	})
}

// StatusError carries an ErrorResponse and its HTTP status through huma.
type StatusError struct {
	api.ErrorResponse
	status int
}

func (e *StatusError) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *StatusError) GetStatus() int {
	return e.status
}

// Error builds a logged StatusError for handlers that fail explicitly.
func Error(ctx context.Context, status int, msg string, errs ...error) *StatusError {
	return newStatusError(ctx, status, msg, errs...)
}

// Write serializes body as JSON. Used outside huma operations.
func Write(w http.ResponseWriter, status int, body any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(body)
}

// WriteError logs and renders an ErrorResponse.
func WriteError(w http.ResponseWriter, ctx context.Context, status int, msg string, errs ...error) error {
	se := newStatusError(ctx, status, msg, errs...)
	return Write(w, se.status, se.ErrorResponse)
}

// NotFoundHandler is the catch-all for unmatched routes.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := WriteError(w, r.Context(), http.StatusNotFound, MsgNotFound); err != nil {
			applog.LogError(r.Context(), "failed to render not found", err)
		}
	}
}

func newStatusError(ctx context.Context, status int, msg string, errs ...error) *StatusError {
	cause := errors.Join(errs...)
	issues := issuesFromErrors(errs)
	if status >= http.StatusInternalServerError && cause != nil && len(issues) == 0 {
		msg = cause.Error()
	}
	msg = messageOrDefault(status, msg)

	fields := []zap.Field{
		zap.Int("status", status),
		zap.String("message", msg),
	}
	if len(issues) > 0 {
		fields = append(fields, zap.Any("details", issues))
	}
	logWithStatus(ctx, status, cause, fields...)

	return &StatusError{
		ErrorResponse: api.ErrorResponse{
			Error:   statusName(status),
			Message: msg,
			Details: issues,
		},
		status: status,
	}
}

func issuesFromErrors(errs []error) []api.FieldIssue {
	var issues []api.FieldIssue
	for _, err := range errs {
		detailer, ok := err.(huma.ErrorDetailer)
		if !ok {
			continue
		}
		if detail := detailer.ErrorDetail(); detail != nil {
			issues = append(issues, api.FieldIssue{Field: detail.Location, Issue: detail.Message})
		}
	}
	return issues
}

func statusName(status int) string {
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", status)
}

func messageOrDefault(status int, msg string) string {
	if strings.TrimSpace(msg) != "" {
		return msg
	}
	if status >= http.StatusInternalServerError {
		return MsgInternal
	}
	return statusName(status)
}

func logWithStatus(ctx context.Context, status int, err error, fields ...zap.Field) {
	switch {
	case status >= http.StatusInternalServerError:
		applog.LogError(ctx, "request failed", err, fields...)
	case status >= http.StatusBadRequest:
		if err != nil {
			fields = append(fields, zap.Error(err))
		}
		applog.LogWarn(ctx, "request rejected", fields...)
	default:
		applog.LogInfo(ctx, "request finished without body", fields...)
	}
}
