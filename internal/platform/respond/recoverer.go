package respond

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"

	applog "github.com/janisto/hello-world-api/internal/platform/logging"
)

// Recoverer turns handler panics into a 500 ErrorResponse whose message is the panic text.
func Recoverer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				var err error
				switch v := rec.(type) {
				case error:
					err = v
				default:
					err = errors.New(fmt.Sprint(v))
				}
				applog.LogError(r.Context(), "handler panic", err, zap.ByteString("stack", debug.Stack()))
				if writeErr := WriteError(w, r.Context(), http.StatusInternalServerError, err.Error()); writeErr != nil {
					applog.LogError(r.Context(), "failed to render internal error", writeErr)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
