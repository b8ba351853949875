package heap

import "testing"

func TestAllocReadRoundTrip(t *testing.T) {
	a := New(64)
	ref, ok := a.Alloc("HELLO")
	if !ok {
		t.Fatal("Alloc() = false, want true")
	}
	if got := a.Read(ref); got != "HELLO" {
		t.Errorf("Read() = %q, want %q", got, "HELLO")
	}
}

func TestAllocFailsWhenCapacityExhausted(t *testing.T) {
	a := New(4)
	if _, ok := a.Alloc("HELLO"); ok {
		t.Fatal("Alloc() = true for a string larger than capacity, want false")
	}
}

func TestResetReclaimsAllSpace(t *testing.T) {
	a := New(8)
	if _, ok := a.Alloc("ABCDEFGH"); !ok {
		t.Fatal("Alloc() = false, want true")
	}
	if _, ok := a.Alloc("X"); ok {
		t.Fatal("Alloc() = true on a full arena, want false")
	}
	a.Reset()
	if a.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", a.Len())
	}
	if _, ok := a.Alloc("X"); !ok {
		t.Fatal("Alloc() after Reset = false, want true")
	}
}

// TestCollectCompactsAroundLiveRoots exercises the mark-and-compact path:
// an unreferenced string (never passed as a root) is dropped, and every
// referenced one is relocated but still reads back correctly.
func TestCollectCompactsAroundLiveRoots(t *testing.T) {
	a := New(32)
	keep1, ok := a.Alloc("KEEP1")
	if !ok {
		t.Fatal("Alloc(KEEP1) failed")
	}
	_, ok = a.Alloc("DROPPED")
	if !ok {
		t.Fatal("Alloc(DROPPED) failed")
	}
	keep2, ok := a.Alloc("KEEP2")
	if !ok {
		t.Fatal("Alloc(KEEP2) failed")
	}

	roots := []*Ref{&keep1, &keep2}
	a.Collect(roots)

	if got := a.Read(keep1); got != "KEEP1" {
		t.Errorf("Read(keep1) after Collect = %q, want %q", got, "KEEP1")
	}
	if got := a.Read(keep2); got != "KEEP2" {
		t.Errorf("Read(keep2) after Collect = %q, want %q", got, "KEEP2")
	}
	if a.Len() != len("KEEP1")+len("KEEP2") {
		t.Errorf("Len() after Collect = %d, want %d", a.Len(), len("KEEP1")+len("KEEP2"))
	}

	// The compacted space should now fit a string that wouldn't have
	// fit before collection freed the dropped string's room.
	if _, ok := a.Alloc("0123456789012345678"); !ok {
		t.Error("Alloc() after Collect = false, want true (compaction should have freed room)")
	}
}

// TestAllocCollectsViaRootsFunc: once a roots provider is registered, a
// full arena compacts itself and retries before failing an allocation.
func TestAllocCollectsViaRootsFunc(t *testing.T) {
	a := New(16)
	live, ok := a.Alloc("LIVE")
	if !ok {
		t.Fatal("Alloc(LIVE) failed")
	}
	if _, ok := a.Alloc("GARBAGEGARBA"); !ok {
		t.Fatal("Alloc(GARBAGEGARBA) failed")
	}
	a.SetRootsFunc(func() []*Ref { return []*Ref{&live} })

	got, ok := a.Alloc("MORETEXT")
	if !ok {
		t.Fatal("Alloc() = false, want collection to free room")
	}
	if a.Read(live) != "LIVE" {
		t.Errorf("Read(live) = %q, want %q", a.Read(live), "LIVE")
	}
	if a.Read(got) != "MORETEXT" {
		t.Errorf("Read(got) = %q, want %q", a.Read(got), "MORETEXT")
	}
}

func TestCollectWithNilRootSkipsGracefully(t *testing.T) {
	a := New(16)
	live, ok := a.Alloc("LIVE")
	if !ok {
		t.Fatal("Alloc(LIVE) failed")
	}
	a.Collect([]*Ref{&live, nil})
	if got := a.Read(live); got != "LIVE" {
		t.Errorf("Read(live) after Collect = %q, want %q", got, "LIVE")
	}
}
