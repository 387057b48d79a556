package logging

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogFilePath(t *testing.T) {
	start := time.Date(2026, 2, 12, 21, 38, 36, 0, time.UTC)

	tests := []struct {
		name    string
		logsDir string
		app     string
		want    string
	}{
		{
			name:    "basic path",
			logsDir: "plannerlogs",
			app:     "ocap_planner",
			want:    filepath.Join("plannerlogs", "ocap_planner.20260212_213836.log"),
		},
		{
			name:    "relative path with dot",
			logsDir: "./plannerlogs",
			app:     "ocap_planner",
			want:    filepath.Join(".", "plannerlogs", "ocap_planner.20260212_213836.log"),
		},
		{
			name:    "absolute path",
			logsDir: filepath.Join("/var", "log", "planner"),
			app:     "ocap_planner",
			want:    filepath.Join("/var", "log", "planner", "ocap_planner.20260212_213836.log"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LogFilePath(tt.logsDir, tt.app, start)
			assert.Equal(t, tt.want, got)
		})
	}
}
