package handle

import (
	"testing"
)

type testObserver struct {
	events []Event
}

func (o *testObserver) OnHandleEvent(e Event) {
	o.events = append(o.events, e)
}

type testDropper struct {
	dropped int
}

func (d *testDropper) Drop() {
	d.dropped++
}

func TestTable_Basic(t *testing.T) {
	table := NewTable()

	h := table.Insert(1, "obj")
	if h == None {
		t.Fatal("Expected non-zero handle")
	}

	val, ok := table.Get(h)
	if !ok {
		t.Fatal("Get failed")
	}
	if val != "obj" {
		t.Fatalf("Expected 'obj', got %v", val)
	}

	// GetTyped with correct type
	_, ok = table.GetTyped(h, 1)
	if !ok {
		t.Fatal("GetTyped with correct type failed")
	}

	// GetTyped with wrong type
	_, ok = table.GetTyped(h, 2)
	if ok {
		t.Fatal("GetTyped with wrong type should fail")
	}

	val, ok = table.Release(h)
	if !ok {
		t.Fatal("Release failed")
	}
	if val != "obj" {
		t.Fatalf("Expected 'obj', got %v", val)
	}

	if table.Len() != 0 {
		t.Fatal("Expected Len() == 0 after Release")
	}
	if table.Live(h) {
		t.Fatal("Released handle should not be live")
	}
}

func TestTable_InvalidHandle(t *testing.T) {
	table := NewTable()

	if _, ok := table.Get(None); ok {
		t.Fatal("Get(None) should fail")
	}
	if _, ok := table.Get(999); ok {
		t.Fatal("Get of unknown handle should fail")
	}
	if _, ok := table.Release(999); ok {
		t.Fatal("Release of unknown handle should fail")
	}
}

func TestTable_SlotReuse(t *testing.T) {
	table := NewTable()

	h1 := table.Insert(1, "a")
	table.Release(h1)

	h2 := table.Insert(1, "b")
	if h2 != h1 {
		t.Fatalf("Expected slot reuse, got %d and %d", h1, h2)
	}

	val, ok := table.Get(h2)
	if !ok || val != "b" {
		t.Fatalf("Expected 'b', got %v (ok=%v)", val, ok)
	}
}

func TestTable_Identity(t *testing.T) {
	table := NewTable()

	// Equal payloads still get distinct handles
	h1 := table.Insert(1, "same")
	h2 := table.Insert(1, "same")
	if h1 == h2 {
		t.Fatal("Distinct objects must get distinct handles")
	}
}

func TestTable_Observer(t *testing.T) {
	table := NewTable()
	obs := &testObserver{}
	table.Subscribe(obs)

	h := table.Insert(7, "watched")
	table.Release(h)

	if len(obs.events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(obs.events))
	}
	if obs.events[0].Type != EventCreated || obs.events[0].Handle != h {
		t.Fatalf("Unexpected created event: %+v", obs.events[0])
	}
	if obs.events[1].Type != EventReleased || obs.events[1].TypeID != 7 {
		t.Fatalf("Unexpected released event: %+v", obs.events[1])
	}

	table.Unsubscribe(obs)
	table.Insert(7, "unwatched")
	if len(obs.events) != 2 {
		t.Fatal("Observer should not fire after Unsubscribe")
	}
}

func TestTable_Dropper(t *testing.T) {
	table := NewTable()
	d := &testDropper{}

	h := table.Insert(1, d)
	table.Release(h)

	if d.dropped != 1 {
		t.Fatalf("Expected Drop called once, got %d", d.dropped)
	}
}

func TestTable_Close(t *testing.T) {
	table := NewTable()
	d := &testDropper{}
	table.Insert(1, d)
	table.Insert(2, "x")

	if err := table.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if d.dropped != 1 {
		t.Fatal("Close should drop stored values")
	}
	if table.Len() != 0 {
		t.Fatal("Expected empty table after Close")
	}

	if h := table.Insert(1, "late"); h != None {
		t.Fatal("Insert after Close should return None")
	}
	if err := table.Close(); err != ErrClosed {
		t.Fatalf("Second Close should return ErrClosed, got %v", err)
	}
}
