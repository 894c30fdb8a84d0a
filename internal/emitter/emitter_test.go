package emitter

import (
	"reflect"
	"testing"
)

func TestEmitOrder(t *testing.T) {
	var e Emitter[string]
	var got []string

	e.On(func(v string) { got = append(got, "a:"+v) })
	e.On(func(v string) { got = append(got, "b:"+v) })
	e.On(func(v string) { got = append(got, "c:"+v) })

	e.Emit("x")

	want := []string{"a:x", "b:x", "c:x"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestOffRemovesOnlyItsRegistration(t *testing.T) {
	var e Emitter[int]
	calls := 0
	fn := func(int) { calls++ }

	off1 := e.On(fn)
	e.On(fn)

	off1()
	off1()

	e.Emit(1)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if e.Len() != 1 {
		t.Errorf("Len() = %d, want 1", e.Len())
	}
}

func TestHandlerAddedDuringEmit(t *testing.T) {
	var e Emitter[int]
	late := 0

	e.On(func(int) {
		e.On(func(int) { late++ })
	})

	e.Emit(1)
	if late != 0 {
		t.Errorf("late handler ran %d times during the emission that added it", late)
	}

	e.Emit(2)
	if late != 1 {
		t.Errorf("late handler ran %d times, want 1", late)
	}
}

func TestOffDuringEmit(t *testing.T) {
	var e Emitter[int]
	var order []string
	var offB func()

	e.On(func(int) {
		order = append(order, "a")
		offB()
	})
	offB = e.On(func(int) { order = append(order, "b") })

	e.Emit(1)
	e.Emit(2)

	want := []string{"a", "b", "a"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}
