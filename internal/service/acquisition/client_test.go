package acquisition

import "testing"

func TestHealthURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"ws://gw.local:9000/stream", "http://gw.local:9000/stream/healthz"},
		{"wss://gw.local/stream/", "https://gw.local/stream/healthz"},
		{"ws://gw.local:9000", "http://gw.local:9000/healthz"},
	}
	for _, tc := range cases {
		if got := healthURL(tc.in); got != tc.want {
			t.Fatalf("healthURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
