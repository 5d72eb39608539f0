package splitter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/d-kuro/docsplit/internal/errors"
	"github.com/d-kuro/docsplit/internal/security"
)

func TestWriteSection(t *testing.T) {
	outputDir := t.TempDir()
	writer := NewWriter(outputDir, security.NewDefaultValidator())

	section := &Section{
		Title: "Properties",
		Subsections: []*Subsection{
			{Title: "foo", Content: "### foo\nfoo docs"},
			{Title: "bar", Content: "### bar\nbar docs"},
		},
	}

	written, err := writer.WriteSection(section)
	if err != nil {
		t.Fatalf("WriteSection failed: %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("expected 2 files, got %d", len(written))
	}

	for _, sub := range section.Subsections {
		path := filepath.Join(outputDir, "Properties", sub.Title+".md")
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read %s: %v", path, err)
		}
		if string(data) != sub.Content {
			t.Errorf("%s: expected %q, got %q", path, sub.Content, string(data))
		}
	}
}

func TestWriteSectionOverwrites(t *testing.T) {
	outputDir := t.TempDir()
	sectionDir := filepath.Join(outputDir, "Methods")
	if err := os.MkdirAll(sectionDir, 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	target := filepath.Join(sectionDir, "stake.md")
	if err := os.WriteFile(target, []byte("stale content that is longer than the new one"), 0644); err != nil {
		t.Fatalf("failed to seed file: %v", err)
	}

	writer := NewWriter(outputDir, security.NewDefaultValidator())
	_, err := writer.WriteSection(&Section{
		Title:       "Methods",
		Subsections: []*Subsection{{Title: "stake", Content: "### stake\nnew"}},
	})
	if err != nil {
		t.Fatalf("WriteSection failed: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("failed to read: %v", err)
	}
	if string(data) != "### stake\nnew" {
		t.Errorf("expected overwritten content, got %q", string(data))
	}
}

func TestWriteSectionEmpty(t *testing.T) {
	outputDir := t.TempDir()
	writer := NewWriter(outputDir, security.NewDefaultValidator())

	written, err := writer.WriteSection(&Section{Title: "Accessors"})
	if err != nil {
		t.Fatalf("WriteSection failed: %v", err)
	}
	if len(written) != 0 {
		t.Errorf("expected no files, got %v", written)
	}

	entries, err := os.ReadDir(filepath.Join(outputDir, "Accessors"))
	if err != nil {
		t.Fatalf("section directory should exist: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty directory, got %d entries", len(entries))
	}
}

func TestWriteSectionInvalidTitle(t *testing.T) {
	outputDir := t.TempDir()
	writer := NewWriter(outputDir, security.NewDefaultValidator())

	written, err := writer.WriteSection(&Section{
		Title: "Methods",
		Subsections: []*Subsection{
			{Title: "stake", Content: "### stake\nok"},
			{Title: "read/write", Content: "### read/write\nbad"},
			{Title: "unstake", Content: "### unstake\nnever written"},
		},
	})
	if !errors.Is(err, ErrInvalidTitle) {
		t.Fatalf("expected ErrInvalidTitle, got %v", err)
	}
	if len(written) != 1 {
		t.Errorf("expected the file before the failure to be reported, got %v", written)
	}
	if _, err := os.Stat(filepath.Join(outputDir, "Methods", "stake.md")); err != nil {
		t.Errorf("earlier file should stay on disk: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outputDir, "Methods", "unstake.md")); !os.IsNotExist(err) {
		t.Errorf("later file should not be written, stat err = %v", err)
	}

	_, err = writer.WriteSection(&Section{Title: ".."})
	if !errors.Is(err, ErrInvalidTitle) {
		t.Errorf("expected ErrInvalidTitle for section title, got %v", err)
	}
}

func TestWriteSectionDryRun(t *testing.T) {
	outputDir := t.TempDir()
	writer := NewWriter(outputDir, security.NewDefaultValidator(), WithDryRun(true))

	written, err := writer.WriteSection(&Section{
		Title:       "Properties",
		Subsections: []*Subsection{{Title: "foo", Content: "### foo"}},
	})
	if err != nil {
		t.Fatalf("WriteSection failed: %v", err)
	}
	if len(written) != 1 || written[0] != filepath.Join(outputDir, "Properties", "foo.md") {
		t.Errorf("unexpected planned paths: %v", written)
	}
	if _, err := os.Stat(filepath.Join(outputDir, "Properties")); !os.IsNotExist(err) {
		t.Errorf("dry run should not create directories, stat err = %v", err)
	}
}
