package http

import (
	"net/http/httptest"
	"testing"
)

func TestExtractClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		xri        string
		want       string
	}{
		{
			name:       "direct connection",
			remoteAddr: "203.0.113.5:1234",
			want:       "203.0.113.5",
		},
		{
			name:       "forwarded header from untrusted source is ignored",
			remoteAddr: "203.0.113.5:1234",
			xff:        "198.51.100.7",
			want:       "203.0.113.5",
		},
		{
			name:       "forwarded header from trusted proxy",
			remoteAddr: "127.0.0.1:1234",
			xff:        "198.51.100.7",
			want:       "198.51.100.7",
		},
		{
			name:       "first hop of a forwarded chain",
			remoteAddr: "10.0.0.2:1234",
			xff:        "198.51.100.7, 10.0.0.1",
			want:       "198.51.100.7",
		},
		{
			name:       "invalid forwarded value falls back to direct",
			remoteAddr: "192.168.1.10:1234",
			xff:        "not-an-ip",
			want:       "192.168.1.10",
		},
		{
			name:       "real-ip header from trusted proxy",
			remoteAddr: "172.16.0.3:1234",
			xri:        "198.51.100.9",
			want:       "198.51.100.9",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				r.Header.Set("X-Real-IP", tt.xri)
			}
			if got := extractClientIP(r); got != tt.want {
				t.Errorf("extractClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetectSuspiciousRequest(t *testing.T) {
	tests := []struct {
		name   string
		target string
		agent  string
		want   bool
	}{
		{"normal api call", "/api/stats/expenses?days=30", "Mozilla/5.0", false},
		{"curl is a normal client", "/api/expenses", "curl/8.0", false},
		{"path traversal", "/api/../etc/passwd", "Mozilla/5.0", true},
		{"dotfile probe", "/.env", "Mozilla/5.0", true},
		{"hex probe in query", "/api/stats/expenses?days=0x41", "Mozilla/5.0", true},
		{"scanner user agent", "/api/expenses", "sqlmap/1.7", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics := &securityMetrics{}
			r := httptest.NewRequest("GET", tt.target, nil)
			r.Header.Set("User-Agent", tt.agent)
			if got := detectSuspiciousRequest(r, metrics); got != tt.want {
				t.Errorf("detectSuspiciousRequest() = %v, want %v", got, tt.want)
			}
		})
	}
}
