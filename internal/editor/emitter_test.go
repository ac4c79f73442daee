package editor

import "testing"

func TestEmitterFiresInSubscriptionOrder(t *testing.T) {
	e := newEmitter()

	var got []int
	e.subscribe(func() { got = append(got, 1) })
	e.subscribe(func() { got = append(got, 2) })
	e.subscribe(func() { got = append(got, 3) })

	e.notify()
	want := []int{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("fired %d callbacks, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("firing order = %v, want %v", got, want)
		}
	}
}

func TestEmitterUnsubscribeDuringNotify(t *testing.T) {
	e := newEmitter()

	fired := 0
	var id = e.subscribe(func() { fired++ })
	e.subscribe(func() { e.unsubscribe(id) })

	e.notify()
	e.notify()
	if fired != 1 {
		t.Fatalf("callback fired %d times, want 1", fired)
	}
}

func TestEmitterCloseDropsSubscribers(t *testing.T) {
	e := newEmitter()

	fired := 0
	e.subscribe(func() { fired++ })
	e.close()
	e.notify()
	if fired != 0 {
		t.Fatalf("closed emitter fired %d callbacks", fired)
	}

	// Subscribing after close is inert.
	e.subscribe(func() { fired++ })
	e.notify()
	if fired != 0 {
		t.Fatalf("post-close subscription fired %d callbacks", fired)
	}
}
