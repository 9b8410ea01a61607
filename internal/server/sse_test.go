package server

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSSEWriter_WriteEvent(t *testing.T) {
	w := httptest.NewRecorder()
	sse, err := NewSSEWriter(w)
	require.NoError(t, err)

	err = sse.WriteEvent("reply", map[string]string{"reply": "hello"})
	require.NoError(t, err)

	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, "event: reply\n")
	assert.Contains(t, body, `data: {"reply":"hello"}`)
}

func TestSSEWriter_WriteError(t *testing.T) {
	w := httptest.NewRecorder()
	sse, err := NewSSEWriter(w)
	require.NoError(t, err)

	sse.WriteError("something broke")
	body := w.Body.String()
	assert.Contains(t, body, "event: error\n")
	assert.Contains(t, body, "something broke")
}
