package ratelimit

import "testing"

func TestAllowDepletesBucket(t *testing.T) {
	l := New()
	for i := 0; i < 3; i++ {
		if !l.Allow("ip1", 3, 0) {
			t.Fatalf("request %d should pass", i+1)
		}
	}
	if l.Allow("ip1", 3, 0) {
		t.Fatalf("bucket should be empty")
	}
	// other keys are independent
	if !l.Allow("ip2", 3, 0) {
		t.Fatalf("fresh key should pass")
	}
}
