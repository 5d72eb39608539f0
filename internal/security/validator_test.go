package security

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/d-kuro/docsplit/internal/errors"
)

func TestNewDefaultValidator(t *testing.T) {
	v := NewDefaultValidator()

	if v == nil {
		t.Fatal("NewDefaultValidator returned nil")
	}

	expectedBlockedPaths := []string{
		"/etc", "/usr/bin", "/usr/sbin", "/sbin", "/bin", "/sys", "/proc",
	}
	if len(v.blockedPaths) != len(expectedBlockedPaths) {
		t.Errorf("expected %d blocked paths, got %d", len(expectedBlockedPaths), len(v.blockedPaths))
	}
	if len(v.allowedPaths) != 0 {
		t.Errorf("expected 0 allowed paths, got %d", len(v.allowedPaths))
	}
}

func TestWithAllowedPaths(t *testing.T) {
	v := NewDefaultValidator()
	paths := []string{"/home/user", "/tmp"}

	v.WithAllowedPaths(paths)

	if len(v.allowedPaths) != len(paths) {
		t.Errorf("expected %d allowed paths, got %d", len(paths), len(v.allowedPaths))
	}

	// Verify paths are copied, not referenced
	paths[0] = "/modified"
	if v.allowedPaths[0] == "/modified" {
		t.Error("allowed paths should be copied, not referenced")
	}
}

func TestWithBlockedPaths(t *testing.T) {
	blocked := filepath.Join(t.TempDir(), "private")
	v := NewDefaultValidator().WithBlockedPaths([]string{blocked})

	if len(v.blockedPaths) != 8 {
		t.Errorf("expected 8 blocked paths, got %d", len(v.blockedPaths))
	}

	err := v.ValidatePath(filepath.Join(blocked, "OpusPool.md"))
	if !errors.Is(err, errors.ErrSecurity) {
		t.Errorf("expected security error under blocked path, got %v", err)
	}

	if err := v.ValidatePath(filepath.Join(filepath.Dir(blocked), "public", "OpusPool.md")); err != nil {
		t.Errorf("sibling of blocked path should pass, got %v", err)
	}
}

func TestValidatePath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix paths")
	}

	allowedRoot := t.TempDir()

	tests := []struct {
		name      string
		validator *DefaultValidator
		path      string
		wantErr   error
	}{
		{
			name:      "relative path",
			validator: NewDefaultValidator(),
			path:      "docs/OpusPool.md",
			wantErr:   errors.ErrValidation,
		},
		{
			name:      "blocked system directory",
			validator: NewDefaultValidator(),
			path:      "/etc/passwd",
			wantErr:   errors.ErrSecurity,
		},
		{
			name:      "blocked prefix is not a parent",
			validator: NewDefaultValidator(),
			path:      "/binaries/doc.md",
		},
		{
			name:      "inside allowed root",
			validator: NewDefaultValidator().WithAllowedPaths([]string{allowedRoot}),
			path:      filepath.Join(allowedRoot, "OpusPool.md"),
		},
		{
			name:      "outside allowed root",
			validator: NewDefaultValidator().WithAllowedPaths([]string{allowedRoot}),
			path:      "/var/docs/OpusPool.md",
			wantErr:   errors.ErrSecurity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.validator.ValidatePath(tt.path)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateComponent(t *testing.T) {
	v := NewDefaultValidator()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain", "Properties", false},
		{"method signature", "stake(params)", false},
		{"spaces", "Some Title", false},
		{"empty", "", true},
		{"dot", ".", true},
		{"dotdot", "..", true},
		{"slash", "a/b", true},
		{"backslash", `a\b`, true},
		{"nul", "a\x00b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateComponent(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateComponent(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestSanitizePath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix paths")
	}

	v := NewDefaultValidator()
	got, err := v.SanitizePath("/tmp/docs/../docs/OpusPool.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "/tmp/docs/OpusPool.md" {
		t.Errorf("expected cleaned path, got %q", got)
	}
}
