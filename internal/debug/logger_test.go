package debug

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger_DisabledByDefault(t *testing.T) {
	assert.NotNil(t, Logger())
	assert.NotPanics(t, func() {
		Debug("before init")
		Statement("select", "users", "SELECT 1", nil)
	})
}

func TestInitWriter(t *testing.T) {
	t.Cleanup(func() { InitWriter(nil, false) })

	var buf bytes.Buffer
	InitWriter(&buf, true)
	assert.True(t, Enabled())

	Statement("insert", "users", "INSERT INTO users (name) VALUES ($1)", []any{"Jane"})
	out := buf.String()
	assert.Contains(t, out, "composed statement")
	assert.Contains(t, out, "op=insert")
	assert.Contains(t, out, "table=users")
	assert.Contains(t, out, "args=[Jane]")

	With("component", "test").Info("hello")
	assert.Contains(t, buf.String(), "component=test")

	buf.Reset()
	InitWriter(&buf, false)
	assert.False(t, Enabled())
	Debug("hidden")
	Error("hidden too")
	assert.Empty(t, buf.String())
}
