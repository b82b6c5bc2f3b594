package pool

import "testing"

func TestAllocGrowsUntilCapacity(t *testing.T) {
	p := New[int](2)

	idx0, slot0, err := p.Alloc()
	if err != nil {
		t.Fatalf("Alloc() #1: %v", err)
	}
	*slot0 = 1

	_, _, err = p.Alloc()
	if err != nil {
		t.Fatalf("Alloc() #2: %v", err)
	}

	if _, _, err := p.Alloc(); err != ErrExhausted {
		t.Fatalf("Alloc() #3 = %v, want ErrExhausted", err)
	}

	if got := *p.At(idx0); got != 1 {
		t.Fatalf("At(idx0) = %d, want 1", got)
	}
}

func TestFreeReusesSlot(t *testing.T) {
	p := New[int](1)

	idx, _, err := p.Alloc()
	if err != nil {
		t.Fatalf("Alloc(): %v", err)
	}
	p.Free(idx)

	idx2, slot, err := p.Alloc()
	if err != nil {
		t.Fatalf("Alloc() after Free: %v", err)
	}
	if idx2 != idx {
		t.Fatalf("Alloc() after Free reused handle %d, want %d", idx2, idx)
	}
	if *slot != 0 {
		t.Fatalf("reused slot not zeroed: got %d", *slot)
	}
}

func TestClearResetsPool(t *testing.T) {
	p := New[int](4)

	for i := 0; i < 4; i++ {
		if _, _, err := p.Alloc(); err != nil {
			t.Fatalf("Alloc() #%d: %v", i, err)
		}
	}
	if _, _, err := p.Alloc(); err != ErrExhausted {
		t.Fatalf("pool not exhausted before Clear")
	}

	p.Clear()

	if got := p.Len(); got != 0 {
		t.Fatalf("Len() after Clear = %d, want 0", got)
	}
	for i := 0; i < 4; i++ {
		if _, _, err := p.Alloc(); err != nil {
			t.Fatalf("Alloc() #%d after Clear: %v", i, err)
		}
	}
}

func TestFreeManyBulkReturnsHandles(t *testing.T) {
	p := New[int](3)

	var handles []int
	for i := 0; i < 3; i++ {
		idx, _, err := p.Alloc()
		if err != nil {
			t.Fatalf("Alloc() #%d: %v", i, err)
		}
		handles = append(handles, idx)
	}

	p.FreeMany(handles)
	if got := p.Len(); got != 0 {
		t.Fatalf("Len() after FreeMany = %d, want 0", got)
	}
}
