// Package taxonomy implements the flat-array taxonomy tree and LCA
// algorithm of spec.md section 4.C7, re-expressed over parent/height
// arrays (no pointer-chasing node graph) but grounded on the
// getAncestry/getLCA shape of
// other_examples/mmcco-bioinformatics__repeatgenome.go's ClassTree.
package taxonomy

import "github.com/gobio/blastcore/errs"

// Tree is a taxonomy over tax-ids 0..len(Parent)-1: node 0 is the root
// sentinel, per spec.md section 3's "Taxonomy" data model.
type Tree struct {
	Parent []uint32
	Height []uint32
}

// New validates and wraps parent/height arrays into a Tree. It checks
// the invariants spec.md section 3 states: parent[0]=0,
// height[parent[i]] = height[i]-1 for i>0, and following parent from any
// non-zero node reaches 0 in height[i] steps.
func New(parent, height []uint32) (*Tree, error) {
	if len(parent) != len(height) {
		return nil, errs.New(errs.LCA, "parent and height arrays must have equal length")
	}
	if len(parent) == 0 || parent[0] != 0 {
		return nil, errs.New(errs.LCA, "node 0 must be its own parent (root sentinel)")
	}
	if height[0] != 0 {
		return nil, errs.New(errs.LCA, "node 0 (root sentinel) must have height 0")
	}
	t := &Tree{Parent: parent, Height: height}
	for i := 1; i < len(parent); i++ {
		p := parent[i]
		if int(p) >= len(height) {
			return nil, errs.Newf(errs.LCA, "node %d has out-of-range parent %d", i, p)
		}
		if height[p]+1 != height[i] {
			return nil, errs.Newf(errs.LCA, "node %d: height[parent]=%d, height[node]=%d, want height[parent]+1", i, height[p], height[i])
		}
	}
	return t, nil
}

// LCA computes the lowest common ancestor of n1 and n2, per spec.md
// section 4.C7's exact four-step algorithm:
//  1. n1 == n2 -> return n1.
//  2. lift the deeper node until both are at equal height.
//  3. step both toward the root in lockstep; return the first common
//     value.
//  4. if either reaches 0 without meeting, fail with LCAError.
//
// Complexity is O(max(height[n1], height[n2])); no memoization.
func (t *Tree) LCA(n1, n2 uint32) (uint32, error) {
	if n1 == n2 {
		return n1, nil
	}
	if int(n1) >= len(t.Parent) || int(n2) >= len(t.Parent) {
		return 0, errs.Newf(errs.LCA, "node id out of range: n1=%d n2=%d len=%d", n1, n2, len(t.Parent))
	}

	for t.Height[n1] > t.Height[n2] {
		n1 = t.Parent[n1]
	}
	for t.Height[n2] > t.Height[n1] {
		n2 = t.Parent[n2]
	}

	for n1 != n2 {
		if n1 == 0 || n2 == 0 {
			return 0, errs.Newf(errs.LCA, "path did not lead to root: n1=%d n2=%d", n1, n2)
		}
		n1 = t.Parent[n1]
		n2 = t.Parent[n2]
	}
	return n1, nil
}
