package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"jukebox/types"

	"golang.org/x/sync/errgroup"
)

// AudioRoutePrefix is the request path under which the audio root is served
const AudioRoutePrefix = "/audio"

var audioContentTypes = map[string]string{
	".mp3": "audio/mpeg",
	".wav": "audio/wav",
	".ogg": "audio/ogg",
}

// AudioIndex interface defines methods for listing and resolving audio files
type AudioIndex interface {
	Scan(ctx context.Context) ([]types.AudioFile, error)
	Resolve(requestPath string) (string, os.FileInfo, error)
	ContentType(name string) string
	Root() string
}

// audioIndex implements the AudioIndex interface over one directory
type audioIndex struct {
	root    string
	workers int
}

// NewAudioIndex creates an index over root. workers bounds concurrent stat calls.
func NewAudioIndex(root string, workers int) AudioIndex {
	if workers < 1 {
		workers = 1
	}
	return &audioIndex{
		root:    root,
		workers: workers,
	}
}

// Root returns the directory the index scans
func (ai *audioIndex) Root() string {
	return ai.root
}

// IsAudioFile reports whether name ends in a playable extension, ignoring case
func IsAudioFile(name string) bool {
	_, ok := audioContentTypes[strings.ToLower(filepath.Ext(name))]
	return ok
}

// Scan lists the direct entries of the audio root and returns a descriptor for
// every regular file with a playable extension, in directory order.
func (ai *audioIndex) Scan(ctx context.Context) ([]types.AudioFile, error) {
	entries, err := os.ReadDir(ai.root)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrScanFailure, ai.root, err)
	}

	var candidates []fs.DirEntry
	for _, entry := range entries {
		if IsAudioFile(entry.Name()) {
			candidates = append(candidates, entry)
		}
	}

	// Each goroutine owns one slot so directory order survives the fan-out
	slots := make([]*types.AudioFile, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ai.workers)
	for i, entry := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			info, err := os.Stat(filepath.Join(ai.root, entry.Name()))
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					log.Printf("Skipping %s: removed during scan", entry.Name())
					return nil
				}
				return fmt.Errorf("%w: stat %s: %w", ErrScanFailure, entry.Name(), err)
			}
			if !info.Mode().IsRegular() {
				return nil
			}

			slots[i] = &types.AudioFile{
				Name: entry.Name(),
				URL:  AudioRoutePrefix + "/" + entry.Name(),
				Size: info.Size(),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if !errors.Is(err, ErrScanFailure) {
			err = fmt.Errorf("%w: %w", ErrScanFailure, err)
		}
		return nil, err
	}

	files := make([]types.AudioFile, 0, len(slots))
	for _, f := range slots {
		if f != nil {
			files = append(files, *f)
		}
	}
	return files, nil
}

// Resolve maps a path below the audio route to a regular file inside the root
func (ai *audioIndex) Resolve(requestPath string) (string, os.FileInfo, error) {
	requestPath = strings.TrimPrefix(requestPath, "/")

	if err := ValidateFilePath(requestPath); err != nil {
		return "", nil, err
	}

	fullPath := filepath.Join(ai.root, filepath.FromSlash(requestPath))

	absRoot, err := filepath.Abs(ai.root)
	if err != nil {
		return "", nil, err
	}
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrInvalidPath, err)
	}
	if absPath != absRoot && !strings.HasPrefix(absPath, absRoot+string(filepath.Separator)) {
		return "", nil, fmt.Errorf("%w: outside audio root", ErrInvalidPath)
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil, fmt.Errorf("%w: %s", ErrNotFound, requestPath)
		}
		return "", nil, err
	}
	if info.IsDir() {
		return "", nil, fmt.Errorf("%w: %s is a directory", ErrNotFound, requestPath)
	}

	return fullPath, info, nil
}

// ContentType returns the MIME type to serve a file in the audio root with
func (ai *audioIndex) ContentType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ct, ok := audioContentTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// ValidateFilePath checks for path traversal attempts and other security issues
func ValidateFilePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	if strings.HasPrefix(path, "/") || filepath.IsAbs(path) {
		return fmt.Errorf("%w: absolute paths not allowed", ErrInvalidPath)
	}

	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == ".." {
			return fmt.Errorf("%w: path traversal not allowed", ErrInvalidPath)
		}
	}

	if IsHiddenPath(path) {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	return nil
}

// IsHiddenPath reports whether any segment of a slash-separated path is a dotfile
func IsHiddenPath(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if strings.HasPrefix(part, ".") && part != "." && part != ".." {
			return true
		}
	}
	return false
}
