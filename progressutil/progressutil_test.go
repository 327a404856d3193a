package progressutil

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestSpinnerWritesOnEveryCallWhenIntervalIsZero(t *testing.T) {
	var buf bytes.Buffer
	cb := Spinner(&buf, "build", 0)
	cb(0)
	cb(50)
	cb(100)

	out := buf.String()
	for _, want := range []string{"0%", "50%", "100%"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestSpinnerThrottlesWithinInterval(t *testing.T) {
	var buf bytes.Buffer
	cb := Spinner(&buf, "build", time.Hour)
	cb(0)
	cb(10)
	cb(20)

	out := buf.String()
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected only the first call to write within the interval, got: %q", out)
	}
}
