package logger

import (
	"testing"

	"mecanica_xpto_os/internal/config"

	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	log, err := New(config.LogConfig{Level: "warn", Format: "json"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if log.Core().Enabled(zap.InfoLevel) {
		t.Fatalf("info must be disabled at warn level")
	}
	if !log.Core().Enabled(zap.ErrorLevel) {
		t.Fatalf("error must be enabled at warn level")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]string{"debug": "debug", " ERROR ": "error", "": "info", "verbose": "info"}
	for in, want := range cases {
		if got := parseLevel(in).String(); got != want {
			t.Fatalf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
