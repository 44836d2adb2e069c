package services

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed defaults/*
var defaultAssets embed.FS

// DefaultAssetNames lists the documents seeded into an empty public root
var DefaultAssetNames = []string{"index.html", "style.css", "script.js"}

// AssetSeeder prepares the content roots before the server accepts traffic
type AssetSeeder struct {
	publicDir string
	audioDir  string

	// write copies a default document into a freshly created file
	write func(f *os.File, content []byte) (int, error)
}

// NewAssetSeeder creates a seeder for the given public and audio roots
func NewAssetSeeder(publicDir, audioDir string) *AssetSeeder {
	return &AssetSeeder{
		publicDir: publicDir,
		audioDir:  audioDir,
		write:     (*os.File).Write,
	}
}

// EnsureRoots creates both content roots if they are missing
func (s *AssetSeeder) EnsureRoots() error {
	var errs []error
	for _, dir := range []string{s.publicDir, s.audioDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			errs = append(errs, fmt.Errorf("create %s: %w", dir, err))
		}
	}
	return errors.Join(errs...)
}

// Seed writes each default document that does not already exist in the public
// root and returns the names it wrote. Existing files are left untouched.
func (s *AssetSeeder) Seed() ([]string, error) {
	var (
		written []string
		errs    []error
	)

	for _, name := range DefaultAssetNames {
		ok, err := s.seedFile(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ok {
			written = append(written, name)
		}
	}

	return written, errors.Join(errs...)
}

func (s *AssetSeeder) seedFile(name string) (bool, error) {
	content, err := fs.ReadFile(defaultAssets, "defaults/"+name)
	if err != nil {
		return false, fmt.Errorf("read default %s: %w", name, err)
	}

	target := filepath.Join(s.publicDir, name)
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("create %s: %w", target, err)
	}

	// A partial file would block every later seed because of O_EXCL
	if _, err := s.write(f, content); err != nil {
		f.Close()
		os.Remove(target)
		return false, fmt.Errorf("write %s: %w", target, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(target)
		return false, fmt.Errorf("close %s: %w", target, err)
	}
	return true, nil
}
