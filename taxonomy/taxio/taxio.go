// Package taxio implements the accession-to-taxonomy ingestion helpers of
// spec.md section 6: "collaborator-facing helpers, not part of the hot
// path." Grounded on lexicmap/cmd/util.go's readKVs (xopen.Ropen +
// bufio.Scanner line reading) and getFileListFromDir (cwalk directory
// walking), generalized from a flat key/value reader to the two
// accession2taxid/UniProt column layouts spec.md section 6 names.
package taxio

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/gobio/blastcore/errs"
	"github.com/gobio/blastcore/internal/logging"
	"github.com/iafan/cwalk"
	"github.com/shenwei356/util/pathutil"
	"github.com/shenwei356/xopen"
)

var log = logging.MustGetLogger("taxio")

// ParseAccession2TaxID parses the NCBI accession2taxid layout: columns
// accession, accession.version, taxid, gi, tab-delimited, with a header
// line that is always skipped, per spec.md section 6. The returned map
// is keyed by accession.version (the column uniquely identifying one
// sequence record).
//
// The column split is a strict tab split (strings.Split(line, "\t")),
// resolving spec.md's Open Question against the original
// take_until(is_alnum) behavior some ingestion tools use: a strict split
// is simpler, matches the documented column layout exactly, and does not
// silently absorb embedded whitespace into an adjacent field.
func ParseAccession2TaxID(path string) (map[string]uint32, error) {
	fh, err := xopen.Ropen(path)
	if err != nil {
		return nil, errs.Wrap(errs.Parse, err, "open accession2taxid file")
	}
	defer fh.Close()

	m := make(map[string]uint32, 1<<16)
	scanner := bufio.NewScanner(fh)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo == 1 {
			continue // header: accession accession.version taxid gi
		}
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) < 3 {
			return nil, errs.Newf(errs.Parse, "%s:%d: expected >=3 tab-delimited columns, got %d", path, lineNo, len(cols))
		}
		taxID, err := strconv.ParseUint(cols[2], 10, 32)
		if err != nil {
			return nil, errs.Newf(errs.Parse, "%s:%d: non-numeric taxid %q", path, lineNo, cols[2])
		}
		m[cols[1]] = uint32(taxID)
	}
	if err := scanner.Err(); err != nil {
		return nil, errs.Wrap(errs.Parse, err, "scan accession2taxid file")
	}
	log.Infof("%s: parsed %d accession2taxid rows", path, len(m))
	return m, nil
}

// ParseUniProt parses the UniProt idmapping layout: columns accession,
// column-name, value, tab-delimited, no header, filtered to rows where
// column-name = "NCBI_TaxID", per spec.md section 6.
func ParseUniProt(path string) (map[string]uint32, error) {
	fh, err := xopen.Ropen(path)
	if err != nil {
		return nil, errs.Wrap(errs.Parse, err, "open UniProt idmapping file")
	}
	defer fh.Close()

	m := make(map[string]uint32, 1<<16)
	scanner := bufio.NewScanner(fh)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) < 3 {
			return nil, errs.Newf(errs.Parse, "%s:%d: expected 3 tab-delimited columns, got %d", path, lineNo, len(cols))
		}
		if cols[1] != "NCBI_TaxID" {
			continue
		}
		taxID, err := strconv.ParseUint(cols[2], 10, 32)
		if err != nil {
			return nil, errs.Newf(errs.Parse, "%s:%d: non-numeric taxid %q", path, lineNo, cols[2])
		}
		m[cols[0]] = uint32(taxID)
	}
	if err := scanner.Err(); err != nil {
		return nil, errs.Wrap(errs.Parse, err, "scan UniProt idmapping file")
	}
	log.Infof("%s: parsed %d UniProt NCBI_TaxID rows", path, len(m))
	return m, nil
}

// WalkShards lists every file under dir matching pattern, for ingesting a
// directory of sharded accession2taxid/idmapping files, grounded on
// lexicmap/cmd/util.go's getFileListFromDir (cwalk.WalkWithSymlinks,
// pathutil.DirExists guard before walking).
func WalkShards(dir string, pattern *regexp.Regexp, numWorkers int) ([]string, error) {
	ok, err := pathutil.DirExists(dir)
	if err != nil {
		return nil, errs.Wrap(errs.Parse, err, "check shard directory")
	}
	if !ok {
		return nil, errs.Newf(errs.Parse, "%s: not a directory", dir)
	}

	if numWorkers < 1 {
		numWorkers = 1
	}
	files := make([]string, 0, 512)
	ch := make(chan string, numWorkers)
	done := make(chan struct{})
	go func() {
		for f := range ch {
			files = append(files, f)
		}
		close(done)
	}()

	cwalk.NumWorkers = numWorkers
	walkErr := cwalk.WalkWithSymlinks(dir, func(relPath string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && pattern.MatchString(info.Name()) {
			ch <- filepath.Join(dir, relPath)
		}
		return nil
	})
	close(ch)
	<-done
	if walkErr != nil {
		return nil, errs.Wrap(errs.Parse, walkErr, "walk shard directory")
	}
	return files, nil
}
