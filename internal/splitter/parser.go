package splitter

import (
	"regexp"
	"strings"

	"github.com/d-kuro/docsplit/internal/errors"
)

var dividerRegex = regexp.MustCompile(`^(?:-{3,}|_{3,})[ \t]*$`)

// StripPreamble drops everything before the first "## <anchor>" line.
func StripPreamble(text, anchor string) (string, error) {
	heading := sectionMarker + anchor
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimRight(line, " \t") == heading {
			return strings.Join(lines[i:], "\n"), nil
		}
	}
	return "", errors.Wrap(ErrAnchorNotFound, "looking for %q", heading)
}

// RemoveDividers drops horizontal-rule lines made of three or more
// hyphens or underscores.
func RemoveDividers(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if dividerRegex.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// Parse scans text into a Document. Lines before the first section heading
// are ignored; "####" and deeper headings are body text.
func Parse(text string, opts Options) (*Document, error) {
	var (
		sections []*sectionBuilder
		current  *sectionBuilder
	)

	for i, line := range strings.Split(text, "\n") {
		lineNo := i + 1

		switch {
		case strings.HasPrefix(line, sectionMarker):
			title := strings.TrimSpace(line[len(sectionMarker):])
			if title == "" {
				return nil, errors.Wrap(ErrEmptyTitle, "line %d", lineNo)
			}
			if renamed, ok := opts.Renames[title]; ok {
				title = renamed
			}
			current = &sectionBuilder{title: title, line: lineNo}
			sections = append(sections, current)

		case current == nil:
			continue

		case strings.HasPrefix(line, subsectionMarker):
			current.bodyLines++
			rest := line[len(subsectionMarker):]
			title := strings.TrimSpace(rest)
			if title == "" {
				return nil, errors.Wrap(ErrEmptyTitle, "line %d", lineNo)
			}
			current.open = &subsectionBuilder{title: title, lines: []string{rest}}
			current.subsections = append(current.subsections, current.open)

		default:
			current.bodyLines++
			if current.open != nil {
				current.open.lines = append(current.open.lines, line)
			} else {
				current.lead = append(current.lead, line)
			}
		}
	}

	doc := &Document{}
	index := make(map[string]int, len(sections))
	for _, b := range sections {
		if b.bodyLines == 0 {
			return nil, errors.Wrap(ErrEmptySection, "line %d: %q", b.line, b.title)
		}
		section := b.build()

		pos, seen := index[section.Title]
		if !seen {
			index[section.Title] = len(doc.Sections)
			doc.Sections = append(doc.Sections, section)
			continue
		}

		switch opts.OnDuplicate {
		case DuplicateError:
			return nil, errors.Wrap(ErrDuplicateSection, "line %d: %q", b.line, section.Title)
		case DuplicateMerge:
			existing := doc.Sections[pos]
			existing.Lead = joinNonEmpty(existing.Lead, section.Lead)
			existing.Subsections = append(existing.Subsections, section.Subsections...)
		default:
			doc.Sections[pos] = section
		}
	}

	return doc, nil
}

type sectionBuilder struct {
	title       string
	line        int
	bodyLines   int
	lead        []string
	subsections []*subsectionBuilder
	open        *subsectionBuilder
}

type subsectionBuilder struct {
	title string
	// lines[0] is the heading text after the marker.
	lines []string
}

func (b *sectionBuilder) build() *Section {
	section := &Section{
		Title: b.title,
		Lead:  strings.TrimSpace(strings.Join(b.lead, "\n")),
	}
	for _, sb := range b.subsections {
		section.Subsections = append(section.Subsections, &Subsection{
			Title:   sb.title,
			Content: subsectionMarker + strings.TrimSpace(strings.Join(sb.lines, "\n")),
		})
	}
	return section
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + "\n\n" + b
	}
}
