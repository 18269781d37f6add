package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWebSocketURL(t *testing.T) {
	tests := []struct {
		server   string
		expected string
	}{
		{server: "http://localhost:8080", expected: "ws://localhost:8080/ws"},
		{server: "http://localhost:8080/", expected: "ws://localhost:8080/ws"},
		{server: "https://duel.example.com", expected: "wss://duel.example.com/ws"},
	}

	for _, tt := range tests {
		t.Run(tt.server, func(t *testing.T) {
			cfg := &Config{ServerURL: tt.server}
			assert.Equal(t, tt.expected, cfg.WebSocketURL())
		})
	}
}

func TestDefaultConfigFromEnv(t *testing.T) {
	t.Setenv("WORDDUEL_SERVER", "http://game:9000")
	assert.Equal(t, "http://game:9000", DefaultConfig().ServerURL)
}
