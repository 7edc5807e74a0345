package observ

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestTimerPhases(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("lex")
	tm.End(idx, "12 tokens")
	err := tm.Measure("parse", func() error { return errors.New("SYN2001") })
	if err == nil {
		t.Fatal("Measure must return fn's error")
	}
	tm.End(42, "ignored")

	rep := tm.Report()
	if len(rep.Phases) != 2 {
		t.Fatalf("phases = %+v", rep.Phases)
	}
	if rep.Phases[0].Note != "12 tokens" || rep.Phases[1].Note != "SYN2001" {
		t.Fatalf("notes = %q, %q", rep.Phases[0].Note, rep.Phases[1].Note)
	}

	sum := tm.Summary()
	for _, want := range []string{"timings:", "lex", "// 12 tokens", "parse", "total"} {
		if !strings.Contains(sum, want) {
			t.Errorf("summary misses %q:\n%s", want, sum)
		}
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.End(tm.Begin("x"), "")
	if err := tm.Measure("y", func() error { return nil }); err != nil {
		t.Fatal(err)
	}
	if len(tm.Report().Phases) != 0 {
		t.Fatal("nil timer reported phases")
	}
}

func TestTimerConcurrent(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.End(tm.Begin("file"), "")
		}()
	}
	wg.Wait()
	if n := len(tm.Report().Phases); n != 16 {
		t.Fatalf("phases = %d", n)
	}
}
