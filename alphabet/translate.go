package alphabet

import "github.com/gobio/blastcore/errs"

// BlastProgram selects the alphabets and frame multipliers for a search,
// per spec.md section 3 ("FrameMultiplier").
type BlastProgram uint8

const (
	Unknown BlastProgram = iota
	BLASTN
	BLASTP
	BLASTX
	TBLASTN
	TBLASTX
)

func (p BlastProgram) String() string {
	switch p {
	case BLASTN:
		return "BLASTN"
	case BLASTP:
		return "BLASTP"
	case BLASTX:
		return "BLASTX"
	case TBLASTN:
		return "TBLASTN"
	case TBLASTX:
		return "TBLASTX"
	default:
		return "UNKNOWN"
	}
}

// FrameMultiplier returns (qNumFrames, sNumFrames) for a BLAST mode, per
// the table in spec.md section 3.
func FrameMultiplier(p BlastProgram) (qNumFrames, sNumFrames int, err error) {
	switch p {
	case BLASTN:
		return 1, 1, nil
	case BLASTP:
		return 1, 1, nil
	case BLASTX:
		return 6, 1, nil
	case TBLASTN:
		return 1, 6, nil
	case TBLASTX:
		return 6, 6, nil
	default:
		return 0, 0, errs.Newf(errs.Config, "cannot determine frame multipliers for program %s; UNKNOWN requires auto-detection from alphabets", p)
	}
}

// Detect infers the BlastProgram from the query and subject alphabets,
// used when Config.BlastProgram is UNKNOWN, per spec.md section 6.
func Detect(query, subject *Alphabet) (BlastProgram, error) {
	qNuc := query == DNA5
	sNuc := subject == DNA5
	switch {
	case qNuc && sNuc:
		return BLASTN, nil
	case !qNuc && !sNuc:
		return BLASTP, nil
	case qNuc && !sNuc:
		return BLASTX, nil
	case !qNuc && sNuc:
		return TBLASTN, nil
	}
	return Unknown, errs.New(errs.Config, "cannot auto-detect BLAST program from the given alphabets")
}

// GeneticCode is a codon translation table: a map from a 3-nucleotide
// codon (upper-case, no ambiguity codes) to a single amino acid symbol,
// or '*' for a stop codon.
type GeneticCode struct {
	Index int
	Name  string
	table map[[3]byte]byte
}

// standardCode is NCBI genetic code translation table 1.
var standardCode = buildStandardCode()

func buildStandardCode() *GeneticCode {
	// The standard code, one entry per codon in TCAG-product order,
	// matching the classical codon table layout.
	bases := [4]byte{'T', 'C', 'A', 'G'}
	aas := "FFLLSSSSYY**CC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG"
	t := make(map[[3]byte]byte, 64)
	i := 0
	for _, b1 := range bases {
		for _, b2 := range bases {
			for _, b3 := range bases {
				t[[3]byte{b1, b2, b3}] = aas[i]
				i++
			}
		}
	}
	return &GeneticCode{Index: 1, Name: "Standard", table: t}
}

// GeneticCodeByIndex resolves a translation table by its NCBI index. Only
// table 1 (the standard code) is built in; index 1, and index 0 taken as
// "unset", resolve to it with ok=true. Any other index falls back to it
// and reports ok=false so the caller can surface a warning rather than
// an error, per spec.md section 6 ("mismatch triggers a warning, not an
// error").
func GeneticCodeByIndex(idx int) (code *GeneticCode, ok bool) {
	if idx == 1 || idx == 0 {
		return standardCode, true
	}
	return standardCode, false
}

// Translate maps one codon to an amino acid symbol ('*' for stop, 'X' for
// an ambiguous/unrecognized codon).
func (g *GeneticCode) Translate(codon [3]byte) byte {
	if aa, ok := g.table[codon]; ok {
		return aa
	}
	return 'X'
}

var complement = func() [256]byte {
	var c [256]byte
	for i := range c {
		c[i] = byte(i)
	}
	c['A'], c['T'] = 'T', 'A'
	c['C'], c['G'] = 'G', 'C'
	c['N'] = 'N'
	return c
}()

// ReverseComplement returns the reverse complement of a DNA5 sequence.
func ReverseComplement(seq []byte) []byte {
	out := make([]byte, len(seq))
	n := len(seq)
	for i, b := range seq {
		out[n-1-i] = complement[b]
	}
	return out
}

// Translate6Frames translates a nucleotide sequence into its six frames
// (three forward, three on the reverse complement), per spec.md section 3.
// Frame i of the returned slice corresponds to physical frame id i; the
// caller maps a translated "true" query id to a physical qryId via
// trueId*6+frame, and back via qryId/qNumFrames, per spec.md's
// "frame-expanded id" convention.
func Translate6Frames(seq []byte, code *GeneticCode) [6][]byte {
	var frames [6][]byte
	rc := ReverseComplement(seq)
	for frame := 0; frame < 3; frame++ {
		frames[frame] = translateFrame(seq, frame, code)
		frames[frame+3] = translateFrame(rc, frame, code)
	}
	return frames
}

func translateFrame(seq []byte, frame int, code *GeneticCode) []byte {
	n := (len(seq) - frame) / 3
	if n < 0 {
		n = 0
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		j := frame + i*3
		out[i] = code.Translate([3]byte{seq[j], seq[j+1], seq[j+2]})
	}
	return out
}
