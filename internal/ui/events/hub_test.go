package events

import (
	"reflect"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestDispatchNewestFirstStopsAtConsumer(t *testing.T) {
	hub := NewHub()
	var calls []string

	hub.Subscribe(func(ev tcell.Event) bool {
		calls = append(calls, "first")
		return true
	})
	hub.Subscribe(func(ev tcell.Event) bool {
		calls = append(calls, "second")
		return false
	})
	hub.Subscribe(func(ev tcell.Event) bool {
		calls = append(calls, "third")
		return false
	})

	if !hub.Dispatch(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone)) {
		t.Fatalf("expected event to be consumed")
	}
	want := []string{"third", "second", "first"}
	if !reflect.DeepEqual(calls, want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}

	calls = nil
	hub.Subscribe(func(ev tcell.Event) bool {
		calls = append(calls, "fourth")
		return true
	})
	hub.Dispatch(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	if !reflect.DeepEqual(calls, []string{"fourth"}) {
		t.Fatalf("calls = %v, want only the newest listener", calls)
	}
}

func TestUnsubscribeReleasesListener(t *testing.T) {
	hub := NewHub()
	count := 0
	unsubscribe := hub.Subscribe(func(ev tcell.Event) bool {
		count++
		return true
	})

	hub.Dispatch(tcell.NewEventResize(80, 24))
	unsubscribe()
	unsubscribe()

	if hub.Dispatch(tcell.NewEventResize(100, 24)) {
		t.Fatalf("expected no consumer after unsubscribe")
	}
	if count != 1 {
		t.Fatalf("listener called %d times, want 1", count)
	}
	if hub.Len() != 0 {
		t.Fatalf("expected empty hub, got %d", hub.Len())
	}
}

func TestUnsubscribeOnlyRemovesOwnListener(t *testing.T) {
	hub := NewHub()
	var calls []string
	unsubA := hub.Subscribe(func(ev tcell.Event) bool {
		calls = append(calls, "a")
		return false
	})
	hub.Subscribe(func(ev tcell.Event) bool {
		calls = append(calls, "b")
		return false
	})

	unsubA()
	hub.Dispatch(tcell.NewEventResize(1, 1))
	if !reflect.DeepEqual(calls, []string{"b"}) {
		t.Fatalf("calls = %v", calls)
	}
}

func TestListenerMayUnsubscribeDuringDispatch(t *testing.T) {
	hub := NewHub()
	var unsubscribe func()
	unsubscribe = hub.Subscribe(func(ev tcell.Event) bool {
		unsubscribe()
		return true
	})

	if !hub.Dispatch(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Fatalf("expected consumption")
	}
	if hub.Len() != 0 {
		t.Fatalf("expected listener removed")
	}
}

func TestNilListenerIgnored(t *testing.T) {
	hub := NewHub()
	hub.Subscribe(nil)()
	if hub.Len() != 0 {
		t.Fatalf("nil listener registered")
	}
}
