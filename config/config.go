// Package config holds the runtime-dispatched configuration struct that
// collapses the cross-product of {indexType, subjAlph, transAlph,
// reducedAlph, qryAlph, blastProgram, gapModel} described in spec.md's
// Design Notes ("Static-polymorphism explosion") into one plain struct,
// instead of nested generic/template specialization.
package config

import (
	"os"
	"runtime"

	"github.com/gobio/blastcore/alphabet"
	"github.com/gobio/blastcore/errs"
	"github.com/gobio/blastcore/internal/logging"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/twotwotwo/sorts"
)

var log = logging.MustGetLogger("config")

// DBIndexType selects the index backend consumed by the seed lookup
// surface (dbindex.Index), per spec.md section 6.
type DBIndexType uint8

const (
	SA DBIndexType = iota
	FM
	BIFM
)

// Algorithm selects the sort strategy used by the suffix-array builder's
// phase-1 bucket sort, per spec.md section 4.C2.
type Algorithm uint8

const (
	Quicksort Algorithm = iota
	MultiwayMergesort
	DefaultParallel
)

// Band encodes the band-width policy of spec.md section 4.C5. Values -1,
// -2, -3 are the named policies (unbanded, sqrt, log2); values >= 0 are a
// constant band width.
type Band int

const (
	BandUnbanded      Band = -1
	BandSqrt          Band = -2
	BandLog2          Band = -3
)

// Config is the single dynamically-dispatched configuration struct
// consumed by every component, mirroring the shape (if not the field
// set) of index.SearchOptions / index.Chaining2Options in the teacher.
type Config struct {
	BlastProgram alphabet.BlastProgram
	DBIndexType  DBIndexType

	SubjOrigAlphabet *alphabet.Alphabet
	TransAlphabet    *alphabet.Alphabet
	ReducedAlphabet  *alphabet.Alphabet
	QryOrigAlphabet  *alphabet.Alphabet

	GeneticCode      int
	GeneticCodeIndex int

	SAAlgorithm Algorithm
	MinSeedLen  int

	Band      Band
	GapOpen   int
	GapExtend int

	FilterPutativeAbundant   bool
	FilterPutativeDuplicates bool
	MergePutativeSiblings    bool

	EValueThreshold float64

	Verbosity int // 0..3

	NumWorkers int

	// TaxdumpDir is the on-disk directory the caller ingests
	// accession2taxid/UniProt shards from, per spec.md section 6. It may
	// use "~" for the user's home directory; resolve it with
	// ResolvedTaxdumpDir before passing it to taxio.
	TaxdumpDir string
}

// DefaultConfig mirrors the teacher's DefaultSearchOptions /
// DefaultChaining2Options pattern: a ready-to-use, sensible baseline.
var DefaultConfig = Config{
	BlastProgram: alphabet.BLASTN,
	DBIndexType:  SA,

	SubjOrigAlphabet: alphabet.DNA5,
	QryOrigAlphabet:  alphabet.DNA5,

	GeneticCode:      1,
	GeneticCodeIndex: 1,

	SAAlgorithm: DefaultParallel,
	MinSeedLen:  11,

	Band:      BandSqrt,
	GapOpen:   11,
	GapExtend: 1,

	EValueThreshold: 10,

	Verbosity: 1,

	NumWorkers: runtime.NumCPU(),
}

// Validate reports a ConfigError for incompatible option combinations,
// checked "before work begins" per spec.md section 7.
func (c *Config) Validate() error {
	if c.QryOrigAlphabet == nil || c.SubjOrigAlphabet == nil {
		return errs.New(errs.Config, "query and subject alphabets must be set")
	}

	qNumFrames, sNumFrames, err := resolveFrames(c)
	if err != nil {
		return err
	}

	if qNumFrames > 1 && c.QryOrigAlphabet != alphabet.DNA5 {
		return errs.Newf(errs.Config, "%s requires a nucleotide query alphabet, got %s", c.BlastProgram, c.QryOrigAlphabet.Name)
	}
	if sNumFrames > 1 && c.SubjOrigAlphabet != alphabet.DNA5 {
		return errs.Newf(errs.Config, "%s requires a nucleotide subject alphabet, got %s", c.BlastProgram, c.SubjOrigAlphabet.Name)
	}
	if qNumFrames == 1 && c.QryOrigAlphabet == alphabet.DNA5 && c.SubjOrigAlphabet != alphabet.DNA5 {
		return errs.Newf(errs.Config, "nucleotide query against protein index requires BLASTX, not %s", c.BlastProgram)
	}

	if c.GapOpen < 0 || c.GapExtend < 0 {
		return errs.New(errs.Config, "gapOpen and gapExtend must be non-negative")
	}
	if c.EValueThreshold < 0 {
		return errs.New(errs.Config, "eValueThreshold must be non-negative")
	}
	if _, ok := alphabet.GeneticCodeByIndex(c.GeneticCodeIndex); !ok {
		// Warning-only per spec.md section 6; Validate does not fail here.
		log.Warningf("genetic code index %d is not built in; falling back to table 1 (standard code)", c.GeneticCodeIndex)
	}
	return nil
}

func resolveFrames(c *Config) (qNumFrames, sNumFrames int, err error) {
	program := c.BlastProgram
	if program == alphabet.Unknown {
		program, err = alphabet.Detect(c.QryOrigAlphabet, c.SubjOrigAlphabet)
		if err != nil {
			return 0, 0, err
		}
	}
	return alphabet.FrameMultiplier(program)
}

// ResolvedProgram returns the effective BlastProgram, auto-detecting from
// the alphabets when BlastProgram is UNKNOWN.
func (c *Config) ResolvedProgram() (alphabet.BlastProgram, error) {
	if c.BlastProgram != alphabet.Unknown {
		return c.BlastProgram, nil
	}
	return alphabet.Detect(c.QryOrigAlphabet, c.SubjOrigAlphabet)
}

// BandWidth resolves the configured Band policy to a concrete width for a
// sequence of the given length, per spec.md section 4.C5 / the "Band
// selection" testable property. INT_MAX is represented as math.MaxInt.
func (c *Config) BandWidth(seqLen int) int {
	return c.Band.Width(seqLen)
}

// ResolvedTaxdumpDir expands a leading "~" in TaxdumpDir to the user's
// home directory, mirroring the teacher's use of go-homedir wherever a
// user-supplied path may be shorthand for $HOME (lexicmap accepts
// "~/.lexicmap" style directories for its default output locations).
func (c *Config) ResolvedTaxdumpDir() (string, error) {
	if c.TaxdumpDir == "" {
		return "", nil
	}
	expanded, err := homedir.Expand(c.TaxdumpDir)
	if err != nil {
		return "", errs.Wrap(errs.Config, err, "expand taxdump dir")
	}
	return expanded, nil
}

// SetEnv is the portable environment-variable setter required by spec.md
// section 6: "Implementations must provide a portable setEnv(key, value)
// -> bool returning success."
func SetEnv(key, value string) bool {
	return os.Setenv(key, value) == nil
}

// ApplyParallelism sets the process-wide parallelism knobs used by the
// third-party sort library and the Go runtime, exactly as
// lexicmap/cmd/util.go:getOptions does with sorts.MaxProcs and
// runtime.GOMAXPROCS. This is the "arbitrary key/value pairs... used for
// tuning library parallelism knobs" side effect spec.md section 6
// describes.
func ApplyParallelism(numWorkers int) {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	sorts.MaxProcs = numWorkers
	runtime.GOMAXPROCS(numWorkers)
}
