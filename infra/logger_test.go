package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerClient(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerClient(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := context.Background()

	logger.InfoWithContextf(ctx, "[VM] created %s", "vm-1")
	logger.WarningWithContextf(ctx, "[VM] slow %d", 3)
	logger.ErrorWithContextf(ctx, errors.New("boom"), "[VM] failed: %v", "boom")
	logger.ErrorWithContextf(ctx, nil, "[VM] no cause")
	logger.DebugWithContextf(ctx, "[VM] debug")

	dec := json.NewDecoder(&buf)
	var records []map[string]interface{}
	for dec.More() {
		var rec map[string]interface{}
		require.NoError(t, dec.Decode(&rec))
		records = append(records, rec)
	}
	require.Len(t, records, 5)

	assert.Equal(t, "INFO", records[0]["level"])
	assert.Equal(t, "[VM] created vm-1", records[0]["msg"])
	assert.Equal(t, "WARN", records[1]["level"])
	assert.Equal(t, "boom", records[2]["error"])
	assert.NotContains(t, records[3], "error")
	assert.Equal(t, "DEBUG", records[4]["level"])

	assert.NoError(t, logger.Shutdown(ctx))
}
