package helpers

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	t.Run("Should write indented JSON with trailing newline", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteJSON(&buf, map[string]int{"count": 2}))
		assert.Equal(t, "{\n  \"count\": 2\n}\n", buf.String())
	})
	t.Run("Should fail on unsupported values", func(t *testing.T) {
		var buf bytes.Buffer
		err := WriteJSON(&buf, make(chan int))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to marshal output")
	})
}

func TestFormatError(t *testing.T) {
	t.Run("Should include the error message", func(t *testing.T) {
		assert.Contains(t, FormatError(errors.New("boom")), "boom")
	})
	t.Run("Should render nothing for nil", func(t *testing.T) {
		assert.Empty(t, FormatError(nil))
	})
}

func TestSuccess(t *testing.T) {
	t.Run("Should format the message", func(t *testing.T) {
		var buf bytes.Buffer
		Success(&buf, "applied %d migrations", 3)
		assert.Contains(t, buf.String(), "applied 3 migrations")
	})
}
