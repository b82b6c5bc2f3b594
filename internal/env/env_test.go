package env

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCopyIsDeepAndIndependent(t *testing.T) {
	a := NewAllocator(64)

	original := a.Pair(a.Int(1), a.Int(2))
	copy := a.Copy(original)

	if copy == original {
		t.Fatal("Copy returned the same pointer")
	}
	if copy.Left == original.Left || copy.Right == original.Right {
		t.Fatal("Copy shares Pair substructure with the original")
	}
	if diff := cmp.Diff(original, copy); diff != "" {
		t.Fatalf("Copy produced a structurally different value (-original +copy):\n%s", diff)
	}

	// Mutating the original's children must not affect the copy: Copy must
	// not share mutable Env substructure with what it copied.
	original.Left.Num = 99
	if copy.Left.Num != 1 {
		t.Fatalf("copy.Left.Num = %d, want 1 (unaffected by mutating original)", copy.Left.Num)
	}
}

func TestCopyClosureSharesCode(t *testing.T) {
	a := NewAllocator(64)

	ctx := a.Int(7)
	closure := a.Closure(ctx, nil)
	copy := a.Copy(closure)

	if copy.Ctx == closure.Ctx {
		t.Fatal("Copy shares Ctx pointer with the original closure")
	}
	if copy.Code != closure.Code {
		t.Fatal("Copy did not share the Code pointer with the original closure (IR should never be copied)")
	}
	if diff := cmp.Diff(closure, copy); diff != "" {
		t.Fatalf("Copy produced a structurally different closure (-original +copy):\n%s", diff)
	}
}

func TestFreeReclaimsPoolCapacity(t *testing.T) {
	a := NewAllocator(3)

	v := a.Pair(a.Int(1), a.Int(2))
	if _, _, err := a.pool.Alloc(); err == nil {
		t.Fatal("expected pool exhausted after 3 allocations from a 3-slot pool")
	}

	a.Free(v)

	_ = a.Int(1)
	_ = a.Int(2)
	_ = a.Int(3)
}
