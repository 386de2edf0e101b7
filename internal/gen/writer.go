package gen

import (
	"errors"
	"fmt"
	"os"
)

// File permission constants.
const filePerm = 0o644

// WriteFiles writes every file into its package directory. Nil entries are
// skipped.
func WriteFiles(files []*GeneratedFile) error {
	for _, file := range files {
		if file == nil {
			continue
		}

		if err := os.WriteFile(file.Path(), file.Content, filePerm); err != nil {
			return fmt.Errorf("writing file %s: %w", file.Path(), err)
		}
	}

	return nil
}

// RemoveStale deletes a previously generated file that is no longer
// produced. A missing file is not an error, and a file without the
// generated-code header is left alone.
func RemoveStale(dir, filename string) (bool, error) {
	f := &GeneratedFile{Dir: dir, Filename: filename}

	content, err := os.ReadFile(f.Path())
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("reading %s: %w", f.Path(), err)
	}

	if !IsGenerated(content) {
		return false, nil
	}

	if err := os.Remove(f.Path()); err != nil {
		return false, fmt.Errorf("removing %s: %w", f.Path(), err)
	}

	return true, nil
}
