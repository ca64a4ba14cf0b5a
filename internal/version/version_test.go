package version

import (
	"strings"
	"testing"
)

func TestUserAgent(t *testing.T) {
	t.Parallel()

	ua := UserAgent()
	if !strings.HasPrefix(ua, "sleepdoc/") {
		t.Fatalf("UserAgent() = %q, want sleepdoc/ prefix", ua)
	}
	if strings.TrimPrefix(ua, "sleepdoc/") != Get() {
		t.Errorf("UserAgent() = %q, want version %q", ua, Get())
	}
}
