package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CaseInsensitivePaths makes routing ignore ASCII letter case. Anything after
// one of the keepCase prefixes (itself matched without case) is left as sent,
// so path parameters reach handlers unchanged. Must run before routing, like
// chi's StripSlashes.
func CaseInsensitivePaths(keepCase ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rctx := chi.RouteContext(r.Context())
			folded := foldPath(routePath(r, rctx), keepCase)
			if rctx != nil {
				rctx.RoutePath = folded
			} else {
				r.URL.Path = folded
			}
			next.ServeHTTP(w, r)
		})
	}
}

// routePath is the path chi would route on.
func routePath(r *http.Request, rctx *chi.Context) string {
	if rctx != nil && rctx.RoutePath != "" {
		return rctx.RoutePath
	}
	if r.URL.RawPath != "" {
		return r.URL.RawPath
	}
	return r.URL.Path
}

func foldPath(path string, keepCase []string) string {
	lower := asciiLower(path)
	for _, prefix := range keepCase {
		p := asciiLower(prefix)
		if len(lower) > len(p) && lower[:len(p)] == p {
			return lower[:len(p)] + path[len(p):]
		}
	}
	return lower
}

// asciiLower keeps byte offsets stable, unlike strings.ToLower.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
