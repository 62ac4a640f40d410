package sentences

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseSkipsBlankAndComments(t *testing.T) {
	in := "# practice list\n\n  Merhaba dünya  \n...\nKitap defter\n"
	list, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(list) != 2 || list[0] != "Merhaba dünya" || list[1] != "Kitap defter" {
		t.Fatalf("unexpected list: %q", list)
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := Parse(strings.NewReader("\n# only a comment\n")); err == nil {
		t.Fatalf("expected error for empty list")
	}
}

func TestDefaultHasSentences(t *testing.T) {
	list := Default()
	if len(list) < 10 {
		t.Fatalf("expected a usable default list, got %d", len(list))
	}
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.txt")
	list, err := LoadOrDefault(missing)
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if len(list) != len(Default()) {
		t.Fatalf("expected default list for missing file")
	}

	path := filepath.Join(dir, "sentences.txt")
	if err := os.WriteFile(path, []byte("Elma\nArmut\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	list, err = LoadOrDefault(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 sentences, got %d", len(list))
	}
}
