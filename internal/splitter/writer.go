package splitter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/d-kuro/docsplit/internal/errors"
	"github.com/d-kuro/docsplit/internal/logging"
)

// ComponentValidator checks that a heading title is usable as a path element.
type ComponentValidator interface {
	ValidateComponent(name string) error
}

// Writer writes sections under an output directory.
type Writer struct {
	outputDir string
	validator ComponentValidator
	logger    *logging.Logger
	dryRun    bool
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithLogger sets the logger used for per-file messages.
func WithLogger(logger *logging.Logger) WriterOption {
	return func(w *Writer) {
		w.logger = logger
	}
}

// WithDryRun makes the writer report paths without touching the disk.
func WithDryRun(dryRun bool) WriterOption {
	return func(w *Writer) {
		w.dryRun = dryRun
	}
}

// NewWriter creates a writer rooted at outputDir.
func NewWriter(outputDir string, validator ComponentValidator, opts ...WriterOption) *Writer {
	w := &Writer{
		outputDir: outputDir,
		validator: validator,
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteSection creates the section directory and writes one file per
// subsection, overwriting existing files. It returns the written paths.
// A failure stops at the failing subsection; earlier files stay on disk.
func (w *Writer) WriteSection(section *Section) ([]string, error) {
	logger := w.logger.WithSection(section.Title)

	if err := w.validateTitle(section.Title); err != nil {
		return nil, err
	}

	sectionDir := filepath.Join(w.outputDir, section.Title)
	if !w.dryRun {
		if err := os.MkdirAll(sectionDir, 0755); err != nil {
			return nil, errors.ExecutionWithCause(fmt.Sprintf("failed to create directory %s", sectionDir), err)
		}
	}

	if len(section.Subsections) == 0 {
		logger.Debug("Section has no subsections", slog.String("dir", sectionDir))
		return nil, nil
	}

	written := make([]string, 0, len(section.Subsections))
	for _, sub := range section.Subsections {
		if err := w.validateTitle(sub.Title); err != nil {
			return written, err
		}

		filename := filepath.Join(sectionDir, sub.Title+fileExtension)
		if !w.dryRun {
			if err := os.WriteFile(filename, []byte(sub.Content), 0644); err != nil {
				return written, errors.ExecutionWithCause(fmt.Sprintf("failed to write %s", filename), err)
			}
		}

		logger.WithFile(filename).Debug("Wrote subsection",
			slog.Int("bytes", len(sub.Content)),
			slog.Bool("dry_run", w.dryRun))
		written = append(written, filename)
	}

	return written, nil
}

func (w *Writer) validateTitle(title string) error {
	if w.validator == nil {
		return nil
	}
	if err := w.validator.ValidateComponent(title); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidTitle, title, err)
	}
	return nil
}
