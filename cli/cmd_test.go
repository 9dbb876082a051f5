package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveGrammar_BuiltinName(t *testing.T) {
	p, err := resolveGrammar("arithmetic")
	if err != nil {
		t.Fatalf("resolveGrammar(arithmetic) returned error: %v", err)
	}

	found := false

	for range p.Parse("1+2") {
		found = true
	}

	if !found {
		t.Error("arithmetic grammar did not match \"1+2\"")
	}
}

func TestResolveGrammar_UnknownNameFallsBackToFile(t *testing.T) {
	if _, err := resolveGrammar("no-such-grammar-or-file.yaml"); err == nil {
		t.Error("resolveGrammar should fail for a name that is neither a builtin nor an existing file")
	}
}

func TestResolveGrammar_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "greeting.yaml")

	const doc = "name: greeting\nrules:\n  - name: greeting\n    term: hi\n"

	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := resolveGrammar(path)
	if err != nil {
		t.Fatalf("resolveGrammar(%q) returned error: %v", path, err)
	}

	found := false

	for range p.Parse("hi") {
		found = true
	}

	if !found {
		t.Error("loaded grammar did not match \"hi\"")
	}
}
