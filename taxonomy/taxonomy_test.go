package taxonomy

import "testing"

// TestLCALineGraph encodes spec.md section 8 scenario 2 literally:
// parent=[0,0,1,2,3], height=[0,1,2,3,4].
// LCA(3,4)=3; LCA(2,4)=2; LCA(4,4)=4; LCA(1,3)=1.
func TestLCALineGraph(t *testing.T) {
	tree, err := New(
		[]uint32{0, 0, 1, 2, 3},
		[]uint32{0, 1, 2, 3, 4},
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	cases := []struct{ n1, n2, want uint32 }{
		{3, 4, 3},
		{2, 4, 2},
		{4, 4, 4},
		{1, 3, 1},
	}
	for _, c := range cases {
		got, err := tree.LCA(c.n1, c.n2)
		if err != nil {
			t.Fatalf("LCA(%d,%d): %v", c.n1, c.n2, err)
		}
		if got != c.want {
			t.Errorf("LCA(%d,%d) = %d, want %d", c.n1, c.n2, got, c.want)
		}
	}
}

func TestLCABranchingTree(t *testing.T) {
	// 0 is root; 1,2 children of 0; 3,4 children of 1; 5 child of 2.
	tree, err := New(
		[]uint32{0, 0, 0, 1, 1, 2},
		[]uint32{0, 1, 1, 2, 2, 2},
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got, _ := tree.LCA(3, 4); got != 1 {
		t.Errorf("LCA(3,4) = %d, want 1", got)
	}
	if got, _ := tree.LCA(3, 5); got != 0 {
		t.Errorf("LCA(3,5) = %d, want 0", got)
	}
}

func TestNewRejectsMalformedTree(t *testing.T) {
	// node 1 claims height 5 but parent 0 has height 0: violates
	// height[parent[i]] = height[i]-1.
	if _, err := New([]uint32{0, 0}, []uint32{0, 5}); err == nil {
		t.Fatal("expected error for malformed height invariant")
	}
}

func TestNewRejectsNonZeroRootParent(t *testing.T) {
	if _, err := New([]uint32{1, 0}, []uint32{0, 1}); err == nil {
		t.Fatal("expected error: node 0 must be its own parent")
	}
}

func TestLCAOutOfRange(t *testing.T) {
	tree, err := New([]uint32{0}, []uint32{0})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := tree.LCA(0, 99); err == nil {
		t.Fatal("expected error for out-of-range node id")
	}
}
