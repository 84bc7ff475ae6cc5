package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/templui/scheduletable/internal/ctxkeys"
)

// SecurityHeaders sets the CSP and the usual hardening headers. Scripts run
// only from self, the two CDNs the pages load from, or with the request's
// nonce. Websockets may connect back to the same host.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nonce := GetNonce(r.Context())

		scriptSrc := []string{"'self'", "https://unpkg.com", "https://cdn.tailwindcss.com"}
		if nonce != "" {
			scriptSrc = append(scriptSrc, fmt.Sprintf("'nonce-%s'", nonce))
		}

		connectSrc := []string{"'self'", "ws:", "wss:"}
		imgSrc := []string{"'self'", "data:"}
		if cfg := ctxkeys.Config(r.Context()); cfg != nil && cfg.S3Endpoint != "" {
			imgSrc = append(imgSrc, cfg.S3Endpoint)
		}

		csp := strings.Join([]string{
			"default-src 'self'",
			"script-src " + strings.Join(scriptSrc, " "),
			// Tailwind's play CDN injects its generated styles inline
			"style-src 'self' 'unsafe-inline'",
			"img-src " + strings.Join(imgSrc, " "),
			"connect-src " + strings.Join(connectSrc, " "),
			"frame-ancestors 'none'",
			"base-uri 'self'",
			"form-action 'self'",
		}, "; ")

		h := w.Header()
		h.Set("Content-Security-Policy", csp)
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next.ServeHTTP(w, r)
	})
}
