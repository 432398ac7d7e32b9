package gen

import (
	"fmt"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes all generated files to the output directory.
// It creates the directory if it doesn't exist. Files carrying their own Dir
// are written there instead when outputDir is empty.
func WriteFiles(files []GeneratedFile, outputDir string) ([]string, error) {
	written := make([]string, 0, len(files))

	for _, file := range files {
		dir := outputDir
		if dir == "" {
			dir = file.Dir
		}

		if dir == "" {
			dir = "."
		}

		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return written, fmt.Errorf("creating output directory: %w", err)
		}

		outputPath := filepath.Join(dir, file.Filename)

		if err := os.WriteFile(outputPath, file.Content, filePerm); err != nil {
			return written, fmt.Errorf("writing file %s: %w", file.Filename, err)
		}

		written = append(written, outputPath)
	}

	return written, nil
}
