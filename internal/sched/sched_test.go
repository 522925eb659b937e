package sched

import (
	"reflect"
	"testing"
	"time"
)

func TestVirtualFiresInDueOrder(t *testing.T) {
	v := NewVirtual()
	var got []string
	v.After(300*time.Millisecond, func() { got = append(got, "c") })
	v.After(100*time.Millisecond, func() { got = append(got, "a") })
	v.After(100*time.Millisecond, func() { got = append(got, "b") })

	v.Advance(99 * time.Millisecond)
	if len(got) != 0 {
		t.Fatalf("expected nothing fired yet, got %v", got)
	}
	v.Advance(time.Millisecond)
	if want := []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	v.Advance(time.Second)
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if v.Now() != 1100*time.Millisecond {
		t.Fatalf("expected clock at 1.1s, got %v", v.Now())
	}
}

func TestVirtualNestedCallbacksFireWithinSameAdvance(t *testing.T) {
	v := NewVirtual()
	var at []time.Duration
	v.After(time.Second, func() {
		at = append(at, v.Now())
		v.After(time.Second, func() { at = append(at, v.Now()) })
	})

	v.Advance(5 * time.Second)
	if want := []time.Duration{time.Second, 2 * time.Second}; !reflect.DeepEqual(at, want) {
		t.Fatalf("expected callbacks at %v, got %v", want, at)
	}
	if v.Pending() != 0 {
		t.Fatalf("expected empty queue, got %d", v.Pending())
	}
}

func TestVirtualAdvanceToPastIsIgnored(t *testing.T) {
	v := NewVirtual()
	v.Advance(2 * time.Second)
	v.AdvanceTo(time.Second)
	if v.Now() != 2*time.Second {
		t.Fatalf("expected clock to stay at 2s, got %v", v.Now())
	}
}

func TestVirtualDrain(t *testing.T) {
	v := NewVirtual()
	fired := 0
	v.After(-time.Second, func() { fired++ })
	v.After(time.Hour, func() {
		fired++
		v.After(time.Minute, func() { fired++ })
	})
	v.Drain()
	if fired != 3 {
		t.Fatalf("expected 3 callbacks, got %d", fired)
	}
	if v.Now() != time.Hour+time.Minute {
		t.Fatalf("unexpected clock %v", v.Now())
	}
}
