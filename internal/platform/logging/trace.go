package logging

import (
	"fmt"
	"regexp"
	"sync/atomic"

	"go.uber.org/zap"
)

const traceparentHeader = "traceparent"

// W3C Trace Context: {version}-{trace-id}-{parent-id}-{trace-flags}
var traceHeaderRe = regexp.MustCompile(`^([0-9a-fA-F]{2})-([0-9a-fA-F]{32})-([0-9a-fA-F]{16})-([0-9a-fA-F]{2})$`)

var projectID atomic.Pointer[string]

// SetProjectID sets the Google Cloud project used to build trace resource names.
// An empty id disables trace correlation fields.
func SetProjectID(id string) {
	projectID.Store(&id)
}

func currentProjectID() string {
	if p := projectID.Load(); p != nil {
		return *p
	}
	return ""
}

func loggerWithTrace(base *zap.Logger, header, project, requestID string) *zap.Logger {
	if base == nil {
		base = zap.NewNop()
	}
	fields := traceFields(header, project)
	if requestID != "" {
		fields = append(fields, zap.String("requestId", requestID))
	}
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}

func traceFields(header, project string) []zap.Field {
	traceID, spanID, sampled, ok := parseTraceparent(header)
	if project == "" || !ok {
		return nil
	}
	return []zap.Field{
		zap.String("logging.googleapis.com/trace", fmt.Sprintf("projects/%s/traces/%s", project, traceID)),
		zap.String("logging.googleapis.com/spanId", spanID),
		zap.Bool("logging.googleapis.com/trace_sampled", sampled),
	}
}

func parseTraceparent(header string) (traceID, spanID string, sampled, ok bool) {
	m := traceHeaderRe.FindStringSubmatch(header)
	if len(m) != 5 {
		return "", "", false, false
	}
	return m[2], m[3], m[4] == "01", true
}
