package taxio

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/gobio/blastcore/errs"
	"github.com/klauspost/pgzip"
)

// OpenShard opens a single accession2taxid/idmapping shard, transparently
// decompressing it with pgzip if it ends in ".gz". NCBI ships
// accession2taxid in gzip form; pgzip parallelizes the inflate the way
// the teacher's own dependency set (klauspost/pgzip, an indirect
// dependency of shenwei356/xopen) already does for large inputs, used
// here directly for shards big enough that ingestion, not search, is the
// bottleneck.
func OpenShard(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.Parse, err, "open shard")
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}

	gz, err := pgzip.NewReader(bufio.NewReader(f))
	if err != nil {
		f.Close()
		return nil, errs.Wrap(errs.Parse, err, "open gzip reader")
	}
	return &gzipReadCloser{gz: gz, f: f}, nil
}

type gzipReadCloser struct {
	gz *pgzip.Reader
	f  *os.File
}

func (g *gzipReadCloser) Read(p []byte) (int, error) { return g.gz.Read(p) }

func (g *gzipReadCloser) Close() error {
	g.gz.Close()
	return g.f.Close()
}
