package arena

import (
	"testing"
	"unsafe"
)

type point struct {
	X, Y int64
}

func TestAllocZeroInitializes(t *testing.T) {
	a := New(1024)
	p, err := Alloc[point](a)
	if err != nil {
		t.Fatalf("Alloc failed: %v", err)
	}
	if p.X != 0 || p.Y != 0 {
		t.Errorf("expected zero-initialized value, got %+v", *p)
	}
}

func TestAllocPointersAreStable(t *testing.T) {
	a := New(1024)
	p1, _ := Alloc[point](a)
	p1.X = 7
	_, _ = Alloc[point](a)
	_, _ = Alloc[point](a)
	if p1.X != 7 {
		t.Errorf("pointer contents changed after further allocations: got %d, want 7", p1.X)
	}
}

func TestEmplaceCopiesValue(t *testing.T) {
	a := New(1024)
	p, err := Emplace(a, point{X: 1, Y: 2})
	if err != nil {
		t.Fatalf("Emplace failed: %v", err)
	}
	if p.X != 1 || p.Y != 2 {
		t.Errorf("unexpected value: %+v", *p)
	}
}

func TestAllocFailsWhenExhausted(t *testing.T) {
	a := New(8)
	if _, err := Alloc[point](a); err == nil {
		t.Fatalf("expected ErrExhausted, got nil")
	} else if _, ok := err.(ErrExhausted); !ok {
		t.Errorf("expected ErrExhausted, got %T", err)
	}
}

func TestAllocRespectsAlignment(t *testing.T) {
	a := New(64)
	if _, err := Alloc[byte](a); err != nil {
		t.Fatalf("Alloc[byte] failed: %v", err)
	}
	p, err := Alloc[point](a)
	if err != nil {
		t.Fatalf("Alloc[point] failed: %v", err)
	}
	if uintptr(unsafe.Pointer(p))%unsafe.Alignof(*p) != 0 {
		t.Errorf("Alloc[point] returned misaligned pointer %p", p)
	}
	p.X = 5
	if p.X != 5 {
		t.Errorf("misaligned pointer corrupted write")
	}
}

func TestNewDefaultsCapacity(t *testing.T) {
	a := New(0)
	if a.Cap() != DefaultCapacity {
		t.Errorf("New(0).Cap() = %d, want %d", a.Cap(), DefaultCapacity)
	}
}
