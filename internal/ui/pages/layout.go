package pages

import (
	"context"
	"encoding/json"

	"github.com/templui/scheduletable/internal/ctxkeys"
)

func appName(ctx context.Context) string {
	if cfg := ctxkeys.Config(ctx); cfg != nil && cfg.AppName != "" {
		return cfg.AppName
	}
	return "Schedule Table Manager"
}

// hxHeaders attaches the CSRF token to every htmx request from the page.
func hxHeaders(ctx context.Context) string {
	b, _ := json.Marshal(map[string]string{"X-CSRF-Token": ctxkeys.CSRFToken(ctx)})
	return string(b)
}
