package runtime

import (
	"reflect"
	"testing"
)

func TestProgramInsertsInSortedOrder(t *testing.T) {
	p := NewProgram()
	p.Put(30, []byte("C"))
	p.Put(10, []byte("A"))
	p.Put(20, []byte("B"))

	var got []int
	for _, l := range p.All() {
		got = append(got, l.Number)
	}
	want := []int{10, 20, 30}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestProgramOverwriteReplacesInPlace(t *testing.T) {
	p := NewProgram()
	p.Put(10, []byte("A"))
	p.Put(10, []byte("A2"))

	if p.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", p.Len())
	}
	text, _ := p.Get(10)
	if string(text) != "A2" {
		t.Errorf("Get(10) = %q, want %q", text, "A2")
	}
}

func TestProgramEmptyBodyDeletes(t *testing.T) {
	p := NewProgram()
	p.Put(10, []byte("A"))
	p.Put(10, nil)

	if p.Has(10) {
		t.Error("line 10 should have been deleted")
	}
}

func TestProgramNextFallsThrough(t *testing.T) {
	p := NewProgram()
	p.Put(10, []byte("A"))
	p.Put(30, []byte("C"))

	next, ok := p.Next(10)
	if !ok || next.Number != 30 {
		t.Errorf("Next(10) = %v, %v, want line 30", next, ok)
	}

	_, ok = p.Next(30)
	if ok {
		t.Error("Next(30) should report no further line")
	}
}

func TestStackForReturnDiscardsIntervening(t *testing.T) {
	s := NewStack(0)
	_ = s.Push(&GosubFrame{ReturnLine: 100}, 0)
	_ = s.Push(&ForFrame{LoopVar: "I", ResumeLine: 200}, 0)
	_ = s.Push(&ForFrame{LoopVar: "J", ResumeLine: 300}, 0)

	gf := s.PopGosub()
	if gf == nil || gf.ReturnLine != 100 {
		t.Fatalf("PopGosub() = %v, want ReturnLine 100", gf)
	}
	if s.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0 (ForFrames above should be discarded)", s.Depth())
	}
}

func TestStackNextMatchesNearestLoopVar(t *testing.T) {
	s := NewStack(0)
	_ = s.Push(&ForFrame{LoopVar: "I", ResumeLine: 100}, 0)
	_ = s.Push(&ForFrame{LoopVar: "J", ResumeLine: 200}, 0)

	ff := s.PopFor("I")
	if ff == nil || ff.LoopVar != "I" {
		t.Fatalf("PopFor(\"I\") = %v, want LoopVar I", ff)
	}
	if s.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0 (frame J above I should be discarded)", s.Depth())
	}
}

func TestStackOverflow(t *testing.T) {
	s := NewStack(2)
	_ = s.Push(&GosubFrame{}, 10)
	_ = s.Push(&GosubFrame{}, 10)
	if err := s.Push(&GosubFrame{}, 10); err == nil {
		t.Error("expected overflow error on third push")
	}
}

func TestMemoryOutOfRange(t *testing.T) {
	m := NewMemory(4)
	if got := m.Peek(100); got != 0 {
		t.Errorf("Peek(100) = %d, want 0", got)
	}
	m.Poke(100, 7) // must not panic
	m.Poke(1, 42)
	if got := m.Peek(1); got != 42 {
		t.Errorf("Peek(1) = %d, want 42", got)
	}
}
