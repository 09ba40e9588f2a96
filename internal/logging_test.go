package internal

import "testing"

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level   string
		json    bool
		wantErr bool
	}{
		{level: "debug"},
		{level: "info", json: true},
		{level: "warn"},
		{level: "error", json: true},
		{level: "chatty", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger, err := NewLogger(tt.level, tt.json)
			if tt.wantErr {
				if err == nil {
					t.Error("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewLogger failed: %v", err)
			}
			if !logger.Core().Enabled(logger.Level()) {
				t.Errorf("logger should be enabled at its own level")
			}
		})
	}
}
