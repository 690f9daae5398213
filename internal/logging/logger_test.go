package logging_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/marks/internal/logging"
)

func TestNewWithWriter_Levels(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantDebug bool
		wantInfo  bool
	}{
		{"debug", "debug", true, true},
		{"info", "info", false, true},
		{"warn", "warn", false, false},
		{"warning alias", "WARNING", false, false},
		{"unknown defaults to info", "verbose", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := logging.NewWithWriter(logging.Config{Level: tt.level}, &buf)

			logger.Debug("debug line")
			logger.Info("info line")

			out := buf.String()
			assert.Equal(t, strings.Contains(out, "debug line"), tt.wantDebug)
			assert.Equal(t, strings.Contains(out, "info line"), tt.wantInfo)
		})
	}
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(logging.Config{Level: "info", Format: "json"}, &buf)

	logger.Info("hello", "key", "value")

	assert.Assert(t, is.Contains(buf.String(), `"msg":"hello"`))
	assert.Assert(t, is.Contains(buf.String(), `"key":"value"`))
}

func TestWithOp_TagsLines(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(logging.Config{Level: "info", Format: "logfmt"}, &buf)

	logging.WithOp(logger, "add").Info("bookmark added")

	out := buf.String()
	assert.Assert(t, is.Contains(out, "op=add"))
	assert.Assert(t, is.Contains(out, "op_id="))
}

func TestWithOp_NilLogger(t *testing.T) {
	// Must not panic.
	logging.WithOp(nil, "noop").Info("discarded")
}

func TestNew_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marks.log")

	logger, closer := logging.New(logging.Config{Level: "info", File: path, MaxSizeMB: 1})
	logger.Info("to file")
	assert.NilError(t, closer.Close())

	data, err := os.ReadFile(path)
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(string(data), "to file"))
}

func TestNew_NoFile(t *testing.T) {
	logger, closer := logging.New(logging.Config{})
	logger.Info("dropped")
	assert.NilError(t, closer.Close())
}
