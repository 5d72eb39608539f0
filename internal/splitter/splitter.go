package splitter

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/d-kuro/docsplit/internal/errors"
	"github.com/d-kuro/docsplit/internal/logging"
)

// Request describes one split run.
type Request struct {
	InputPath string
	OutputDir string
	Options   Options
	DryRun    bool
	Validator ComponentValidator
}

// Load reads the whole document. CRLF and lone CR line endings are
// normalised to LF.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NotFoundWithCause("input document "+path, err)
		}
		return "", errors.Wrap(err, "failed to read %s", path)
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n"), nil
}

// Prepare strips the preamble and dividers from text and parses the rest.
func Prepare(text string, opts Options) (*Document, error) {
	if opts.Anchor == "" {
		opts.Anchor = DefaultAnchor
	}

	body, err := StripPreamble(text, opts.Anchor)
	if err != nil {
		return nil, err
	}

	return Parse(RemoveDividers(body), opts)
}

// Split loads the input document and writes every subsection under the
// output directory, section by section in document order. The first error
// aborts the run.
func Split(ctx context.Context, req Request, logger *logging.Logger) (*Result, error) {
	if logger == nil {
		logger = logging.Discard()
	}

	text, err := Load(req.InputPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded document",
		slog.String("input", req.InputPath),
		slog.Int("bytes", len(text)))

	doc, err := Prepare(text, req.Options)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse %s", req.InputPath)
	}
	logger.Info("Parsed document",
		slog.Int("sections", len(doc.Sections)),
		slog.Int("subsections", doc.FileCount()))

	writer := NewWriter(req.OutputDir, req.Validator,
		WithLogger(logger),
		WithDryRun(req.DryRun))

	result := &Result{DryRun: req.DryRun}
	for _, section := range doc.Sections {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		written, err := writer.WriteSection(section)
		result.Written = append(result.Written, written...)
		result.Files += len(written)
		if err != nil {
			return result, err
		}
		result.Sections++
	}

	return result, nil
}
