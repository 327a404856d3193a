package taxio

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestParseAccession2TaxIDSkipsHeader(t *testing.T) {
	content := "accession\taccession.version\ttaxid\tgi\n" +
		"P0A\tP0A.1\t9606\t12345\n" +
		"P0B\tP0B.1\t10090\t12346\n"
	path := writeTemp(t, "acc2tax.tsv", content)

	m, err := ParseAccession2TaxID(path)
	if err != nil {
		t.Fatalf("ParseAccession2TaxID: %v", err)
	}
	if len(m) != 2 {
		t.Fatalf("got %d entries, want 2", len(m))
	}
	if m["P0A.1"] != 9606 {
		t.Errorf("P0A.1 -> %d, want 9606", m["P0A.1"])
	}
	if m["P0B.1"] != 10090 {
		t.Errorf("P0B.1 -> %d, want 10090", m["P0B.1"])
	}
}

func TestParseAccession2TaxIDRejectsNonNumericTaxID(t *testing.T) {
	content := "header\n" + "P0A\tP0A.1\tNOTANUMBER\t12345\n"
	path := writeTemp(t, "bad.tsv", content)

	if _, err := ParseAccession2TaxID(path); err == nil {
		t.Fatal("expected error for non-numeric taxid")
	}
}

func TestParseUniProtFiltersByColumnName(t *testing.T) {
	content := "P0A\tGene_Name\tsomeGene\n" +
		"P0A\tNCBI_TaxID\t9606\n" +
		"P0B\tNCBI_TaxID\t10090\n"
	path := writeTemp(t, "idmapping.tsv", content)

	m, err := ParseUniProt(path)
	if err != nil {
		t.Fatalf("ParseUniProt: %v", err)
	}
	if len(m) != 2 {
		t.Fatalf("got %d entries, want 2 (only NCBI_TaxID rows)", len(m))
	}
	if m["P0A"] != 9606 {
		t.Errorf("P0A -> %d, want 9606", m["P0A"])
	}
}

func TestWalkShardsFindsMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.tsv", "b.tsv", "c.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	files, err := WalkShards(dir, regexp.MustCompile(`\.tsv$`), 2)
	if err != nil {
		t.Fatalf("WalkShards: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2", len(files))
	}
}

func TestWalkShardsRejectsMissingDirectory(t *testing.T) {
	_, err := WalkShards(filepath.Join(t.TempDir(), "does-not-exist"), regexp.MustCompile(`\.tsv$`), 1)
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}
