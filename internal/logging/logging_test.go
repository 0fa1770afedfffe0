package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nikbrunner/lbl/internal/logging"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gotest.tools/v3/assert"
)

func TestNew_EmptyFileDiscards(t *testing.T) {
	logger, err := logging.New(logging.Options{Level: "debug"})
	assert.NilError(t, err)
	assert.Assert(t, !logger.Core().Enabled(zapcore.ErrorLevel))
}

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "lbl.log")

	logger, err := logging.New(logging.Options{Level: "warn", File: path})
	assert.NilError(t, err)

	logger.Info("hidden")
	logger.Warn("classify failed", zap.String("image", "a.jpg"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	assert.NilError(t, err)
	out := string(data)

	assert.Assert(t, !strings.Contains(out, "hidden"))
	assert.Assert(t, strings.Contains(out, `"msg":"classify failed"`), out)
	assert.Assert(t, strings.Contains(out, `"image":"a.jpg"`), out)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    zapcore.Level
		wantErr bool
	}{
		{"debug", zapcore.DebugLevel, false},
		{"", zapcore.InfoLevel, false},
		{"info", zapcore.InfoLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"loud", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := logging.ParseLevel(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			assert.Equal(t, got, tt.want)
		})
	}
}

func TestNew_UnknownLevel(t *testing.T) {
	_, err := logging.New(logging.Options{Level: "loud", File: "stderr"})
	assert.ErrorContains(t, err, "unknown log level")
}

func TestNew_UnknownLevelWithoutFile(t *testing.T) {
	_, err := logging.New(logging.Options{Level: "bogus"})
	assert.ErrorContains(t, err, "unknown log level")
}
