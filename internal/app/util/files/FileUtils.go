package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"audio-transcriber/internal/app/audio"
	apperrors "audio-transcriber/internal/app/errors"
	"github.com/samber/lo"
)

// CollectAudioFiles expands the given paths into a sorted, duplicate-free list of absolute audio file paths.
// Directories are scanned one level deep. Paths that do not exist or are not audio files are reported to warn
// and skipped. An empty paths list means the current directory.
func CollectAudioFiles(paths []string, warn io.Writer) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	if warn == nil {
		warn = io.Discard
	}

	var audioFiles []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			if os.IsNotExist(err) {
				fmt.Fprintf(warn, "Skipping (does not exist): %s\n", p)
				continue
			}
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}

		if !info.IsDir() {
			if !info.Mode().IsRegular() || !audio.IsAudioFile(p) {
				fmt.Fprintf(warn, "Skipping (not audio): %s\n", p)
				continue
			}
			resolved, err := resolvePath(p)
			if err != nil {
				return nil, err
			}
			audioFiles = append(audioFiles, resolved)
			continue
		}

		found, err := scanDirectory(p)
		if err != nil {
			fmt.Fprintf(warn, "Skipping (unreadable directory): %s: %v\n", p, err)
			continue
		}
		audioFiles = append(audioFiles, found...)
	}

	audioFiles = lo.Uniq(audioFiles)
	sort.Strings(audioFiles)
	return audioFiles, nil
}

func scanDirectory(dir string) ([]string, error) {
	resolvedDir, err := resolvePath(dir)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(resolvedDir)
	if err != nil {
		return nil, err
	}

	var found []string
	for _, entry := range entries {
		if !audio.IsAudioFile(entry.Name()) {
			continue
		}
		fullPath := filepath.Join(resolvedDir, entry.Name())
		// Follow symlinks so a link to an audio file counts, a link to a directory does not.
		info, err := os.Stat(fullPath)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		found = append(found, fullPath)
	}
	return found, nil
}

func resolvePath(p string) (string, error) {
	absPath, err := GetAbsolutePath(p)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", p, err)
	}
	return resolved, nil
}

// GetAbsolutePath returns the cleaned absolute form of path.
func GetAbsolutePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path of %s: %w", path, err)
	}
	return absPath, nil
}

// NormalizeTextOutputPath makes sure the output path ends in ".txt" (any case).
// Other extensions are kept and ".txt" is appended after them.
// The path is cleaned first, so "out/" becomes "out.txt".
func NormalizeTextOutputPath(path string) string {
	path = filepath.Clean(path)
	if strings.ToLower(filepath.Ext(path)) == ".txt" {
		return path
	}
	return path + ".txt"
}

// ReadOutputFile reads the specified output file and returns its text content.
func ReadOutputFile(filePath string) (string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrFileReadFailed, err)
	}

	return strings.TrimSpace(string(content)), nil
}
