package alphabet

// Bytes256 orders all 256 byte values by natural numeric value. It backs
// the generic string/string-set suffix array tests spec.md's testable
// properties describe directly in terms of raw bytes (e.g. the
// S = "banana$" scenario), rather than one of the biological alphabets.
var Bytes256 = func() *Alphabet {
	a := &Alphabet{Name: "Bytes256", Size: 256}
	for i := range a.rank {
		a.rank[i] = int16(i)
	}
	return a
}()
