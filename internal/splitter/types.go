// Package splitter turns a generated API-reference markdown document into a
// directory tree with one file per third-level heading.
//
// The document is scanned line by line into a Document of Sections (one per
// "## " heading) holding Subsections (one per "### " heading). Each Section
// becomes a directory and each Subsection a "<title>.md" file inside it.
// Text between a section heading and its first subsection is kept in
// Section.Lead and is not written to any file.
package splitter

import (
	"strings"

	"github.com/d-kuro/docsplit/internal/errors"
)

const (
	sectionMarker    = "## "
	subsectionMarker = "### "
	fileExtension    = ".md"
)

// DefaultAnchor is the heading that marks where meaningful content begins.
const DefaultAnchor = "Properties"

// Parse and write failures. Callers can match them with errors.Is.
var (
	ErrAnchorNotFound   = errors.New("anchor heading not found")
	ErrEmptyTitle       = errors.New("empty heading title")
	ErrEmptySection     = errors.New("section heading has no body")
	ErrDuplicateSection = errors.New("duplicate section title")
	ErrInvalidTitle     = errors.New("heading title is not a valid path component")
)

// Document is the parsed reference document.
type Document struct {
	Sections []*Section
}

// Section is a second-level heading block.
type Section struct {
	Title string
	// Lead is the text between the section heading and its first
	// subsection. It is kept for inspection but never written.
	Lead        string
	Subsections []*Subsection
}

// Subsection is a third-level heading block.
type Subsection struct {
	Title string
	// Content is the heading line and body, trimmed, starting with "### ".
	Content string
}

// FileCount returns the number of subsections across all sections.
func (d *Document) FileCount() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Subsections)
	}
	return n
}

// Section returns the section with the given title.
func (d *Document) Section(title string) (*Section, bool) {
	for _, s := range d.Sections {
		if s.Title == title {
			return s, true
		}
	}
	return nil, false
}

// DuplicatePolicy decides what happens when two sections share a title.
type DuplicatePolicy string

const (
	// DuplicateLastWins replaces the earlier section with the later one.
	DuplicateLastWins DuplicatePolicy = "last-wins"
	// DuplicateError rejects the document.
	DuplicateError DuplicatePolicy = "error"
	// DuplicateMerge appends the later section's subsections to the earlier one.
	DuplicateMerge DuplicatePolicy = "merge"
)

// ParseDuplicatePolicy parses a policy name. The empty string means last-wins.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch p := DuplicatePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DuplicateLastWins, nil
	case DuplicateLastWins, DuplicateError, DuplicateMerge:
		return p, nil
	default:
		return "", errors.ValidationWithDetails("unknown duplicate policy", s)
	}
}

// Options controls how a document is parsed.
type Options struct {
	// Anchor is the section title content starts at.
	Anchor string
	// Renames maps a section title to the title used for its directory.
	Renames map[string]string
	// OnDuplicate is applied to sections with the same title after renaming.
	OnDuplicate DuplicatePolicy
}

// DefaultOptions returns the options matching the TypeDoc class layout.
func DefaultOptions() Options {
	return Options{
		Anchor: DefaultAnchor,
		Renames: map[string]string{
			"Constructors": "Constructor",
		},
		OnDuplicate: DuplicateLastWins,
	}
}

// Result summarises a split run.
type Result struct {
	Sections int      `json:"sections"`
	Files    int      `json:"files"`
	Written  []string `json:"written"`
	DryRun   bool     `json:"dry_run,omitempty"`
}
