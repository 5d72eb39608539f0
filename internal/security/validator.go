// Package security provides path validation for input documents and output trees.
package security

import (
	"path/filepath"
	"strings"

	"github.com/d-kuro/docsplit/internal/errors"
)

// Validator defines the path validation interface.
type Validator interface {
	ValidatePath(path string) error
	ValidateComponent(name string) error
	SanitizePath(path string) (string, error)
}

// DefaultValidator provides default path validation.
type DefaultValidator struct {
	allowedPaths []string
	blockedPaths []string
}

// NewDefaultValidator creates a new default validator with secure defaults.
func NewDefaultValidator() *DefaultValidator {
	return &DefaultValidator{
		allowedPaths: []string{},
		blockedPaths: []string{
			"/etc",
			"/usr/bin",
			"/usr/sbin",
			"/sbin",
			"/bin",
			"/sys",
			"/proc",
		},
	}
}

// WithAllowedPaths sets the allowed roots for input and output paths.
func (v *DefaultValidator) WithAllowedPaths(paths []string) *DefaultValidator {
	v.allowedPaths = make([]string, len(paths))
	copy(v.allowedPaths, paths)
	return v
}

// WithBlockedPaths adds blocked paths to the default list.
func (v *DefaultValidator) WithBlockedPaths(paths []string) *DefaultValidator {
	v.blockedPaths = append(v.blockedPaths, paths...)
	return v
}

// ValidatePath checks that path is absolute and outside blocked directories.
func (v *DefaultValidator) ValidatePath(path string) error {
	if !filepath.IsAbs(path) {
		return errors.ValidationWithDetails("path must be absolute", path)
	}

	cleanPath := filepath.Clean(path)
	resolvedPath, err := filepath.EvalSymlinks(cleanPath)
	if err != nil {
		resolvedPath = cleanPath
	}

	for _, blocked := range v.blockedPaths {
		if within(cleanPath, blocked) || within(resolvedPath, blocked) {
			return errors.SecurityWithDetails(
				"path is blocked",
				"path accesses restricted system directory",
			)
		}
	}

	if len(v.allowedPaths) > 0 {
		allowed := false
		for _, allowedPath := range v.allowedPaths {
			if within(cleanPath, allowedPath) || within(resolvedPath, allowedPath) {
				allowed = true
				break
			}
		}
		if !allowed {
			return errors.SecurityWithDetails(
				"path not allowed",
				"path is not in allowed directories",
			)
		}
	}

	return nil
}

// ValidateComponent checks that name can be used as a single path element.
// Headings become directory and file names, so anything that would escape
// the parent directory is rejected.
func (v *DefaultValidator) ValidateComponent(name string) error {
	if name == "" {
		return errors.Validation("name cannot be empty")
	}
	if name == "." || name == ".." {
		return errors.ValidationWithDetails("name is a relative path reference", name)
	}
	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return errors.ValidationWithDetails("name contains a path separator or NUL", name)
	}
	return nil
}

// SanitizePath validates and cleans a file path.
func (v *DefaultValidator) SanitizePath(path string) (string, error) {
	if err := v.ValidatePath(path); err != nil {
		return "", err
	}

	return filepath.Clean(path), nil
}

func within(path, root string) bool {
	root = filepath.Clean(root)
	return path == root || strings.HasPrefix(path, root+string(filepath.Separator))
}
