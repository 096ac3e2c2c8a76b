package main

import (
	"errors"
	"testing"

	"github.com/san-kum/trainviz/internal/config"
	"github.com/san-kum/trainviz/internal/sim"
)

func TestRequireBound(t *testing.T) {
	cfg := config.DefaultConfig()
	unbounded := cfg.QuantumDriver()
	unbounded.MaxTicks = 0

	tests := []struct {
		name    string
		runCfg  sim.Config
		wantErr bool
	}{
		{"quantum defaults", cfg.QuantumDriver(), false},
		{"images defaults", cfg.ImagesDriver(), false},
		{"zero ticks", unbounded, true},
		{"single tick", sim.Config{Dt: 0.1, MaxTicks: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := requireBound(tt.runCfg, tt.name)
			if tt.wantErr {
				if !errors.Is(err, sim.ErrInvalidParameter) {
					t.Errorf("expected ErrInvalidParameter, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
