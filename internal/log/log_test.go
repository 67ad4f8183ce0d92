package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for _, enc := range []string{"console", "json"} {
		logger, err := New(enc, 1)
		require.NoError(t, err, enc)
		assert.True(t, logger.V(1).Enabled())
		assert.False(t, logger.V(2).Enabled())
	}
}

func TestNew_UnknownEncoding(t *testing.T) {
	_, err := New("xml", 0)
	assert.Error(t, err)
}

func TestSetLogger(t *testing.T) {
	prev := DefaultLogger
	t.Cleanup(func() { SetLogger(prev) })

	logger, err := New("json", 0)
	require.NoError(t, err)
	SetLogger(logger.WithName("test"))
	assert.False(t, DefaultLogger.V(1).Enabled())
}
