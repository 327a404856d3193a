package suffixarray

// discoverBuckets walks the phase-1-sorted SA once, single-threaded, and
// returns the bucket directory dir such that bucket i spans
// sa[dir[i]:dir[i+1]]. Two adjacent suffixes fall in the same bucket iff
// their first L symbols (clipped at sequence end) compare equal, per
// spec.md section 4.C2 "bucket directory discovery (single-threaded)".
func (b *Builder) discoverBuckets(sa []Entry) []int {
	n := len(sa)
	dir := make([]int, 0, n/2+2)
	dir = append(dir, 0)
	for i := 1; i < n; i++ {
		if compareSuffixes(b.ss, sa[i-1], sa[i], 0, b.L) != 0 {
			dir = append(dir, i)
		}
	}
	dir = append(dir, n)
	return dir
}
