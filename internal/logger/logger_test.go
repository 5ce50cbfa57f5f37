package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{"debug", zerolog.DebugLevel, false},
		{"INFO", zerolog.InfoLevel, false},
		{"", zerolog.InfoLevel, false},
		{"warning", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"loud", zerolog.InfoLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLevel(%q): expected error=%v, got %v", tt.in, tt.wantErr, err)
		}
		if got != tt.want {
			t.Fatalf("ParseLevel(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetLevel("info")
		CloseLogFile()
	})

	SetLevel("warn")
	Info("hidden")
	Warnf("monitor %s not found", "DP-9")
	Error("move failed", errors.New("boom"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected info to be filtered, got %q", out)
	}
	if !strings.Contains(out, "monitor DP-9 not found") {
		t.Fatalf("expected warning in output, got %q", out)
	}
	if !strings.Contains(out, "boom") {
		t.Fatalf("expected error value in output, got %q", out)
	}
}

func TestSetOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "winpos.log")
	if err := SetOutputFile(path); err != nil {
		t.Fatalf("SetOutputFile: %v", err)
	}
	t.Cleanup(CloseLogFile)

	SetLevel("debug")
	t.Cleanup(func() { SetLevel("info") })
	Debugf("placing %d windows", 2)
	CloseLogFile()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "placing 2 windows") {
		t.Fatalf("expected message in log file, got %q", string(data))
	}
}
