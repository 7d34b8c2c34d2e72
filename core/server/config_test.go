package server_test

import (
	"testing"

	"catalog-service/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_ClampPageSize(t *testing.T) {
	cfg := server.Config{PageSize: 10, PageSizeMax: 10}

	tests := []struct {
		name      string
		requested int
		want      int
	}{
		{"Zero falls back to default", 0, 10},
		{"Negative falls back to default", -3, 10},
		{"Within cap", 5, 5},
		{"At cap", 10, 10},
		{"Above cap is clamped", 50, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.ClampPageSize(tt.requested))
		})
	}
}
