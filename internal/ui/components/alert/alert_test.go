package alert

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, p Props) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Alert(p).Render(context.Background(), &buf))
	return buf.String()
}

func TestAlert_Variants(t *testing.T) {
	html := render(t, Props{Message: "Failed to delete entry", Variant: VariantError})
	assert.Contains(t, html, `role="alert"`)
	assert.Contains(t, html, "bg-red-100")
	assert.Contains(t, html, "Failed to delete entry")
	assert.NotContains(t, html, "data-transient")
	assert.NotContains(t, html, "<a ")

	html = render(t, Props{Message: "Snapshot saved", Variant: VariantSuccess, Transient: true})
	assert.Contains(t, html, "bg-green-100")
	assert.NotContains(t, html, "bg-red-100", "variant classes are merged, not appended")
	assert.Contains(t, html, "data-transient")
}

func TestAlert_Link(t *testing.T) {
	html := render(t, Props{Message: "Snapshot saved:", Href: "https://example.com/s.html?a=1&b=2"})

	assert.Contains(t, html, `href="https://example.com/s.html?a=1&amp;b=2"`)
	assert.Contains(t, html, `target="_blank"`)
}
