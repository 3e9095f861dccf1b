package profiler

import (
	"bytes"
	"log"
	"strings"
	"testing"
	"time"
)

func TestTickReportsAtInterval(t *testing.T) {
	var buf bytes.Buffer
	p := NewProfiler(WithInterval(time.Second), WithLogger(log.New(&buf, "", 0)))

	clock := p.lastTime
	p.now = func() time.Time { return clock }

	for i := 0; i < 49; i++ {
		clock = clock.Add(20 * time.Millisecond)
		if p.Tick() {
			t.Fatalf("Tick() #%d reported early", i)
		}
		p.RecordChange()
	}
	clock = clock.Add(20 * time.Millisecond)
	if !p.Tick() {
		t.Fatal("Tick() should report once the interval has elapsed")
	}

	out := buf.String()
	if !strings.Contains(out, "[Profiler] FPS: 50.00") {
		t.Errorf("report = %q, want 50 FPS", out)
	}
	if !strings.Contains(out, "Camera changes: 49.00/s") {
		t.Errorf("report = %q, want 49 changes per second", out)
	}

	buf.Reset()
	clock = clock.Add(20 * time.Millisecond)
	if p.Tick() {
		t.Error("counters should reset after a report")
	}
}
