package files

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// StdStream is the path value that selects stdin or stdout.
const StdStream = "-"

// ExpandPath resolves paths that include a tilde (~) to the user's home directory.
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(homeDir, path[2:]), nil
	}
	return path, nil
}

// IsStdStream reports whether path selects a standard stream.
func IsStdStream(path string) bool {
	return path == "" || path == StdStream
}

// ValidatePath checks if the given path is a valid file path for reading.
func ValidatePath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path stat error: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path %q is a directory, not a file", path)
	}

	if info.Mode()&os.ModeType != 0 {
		return fmt.Errorf("path %q is not a regular file", path)
	}
	return nil
}

// OpenInput opens the file at path for reading, or returns stdin for an empty path or "-".
func OpenInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	if IsStdStream(path) {
		return io.NopCloser(stdin), nil
	}

	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to unwrap path %q: %w", path, err)
	}
	if err := ValidatePath(expanded); err != nil {
		return nil, err
	}

	file, err := os.Open(expanded)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file %q: %w", expanded, err)
	}
	return file, nil
}

// CreateFolderIfNotExists checks if a folder exists, and if not, creates it.
func CreateFolderIfNotExists(folder string) error {
	if _, err := os.Stat(folder); os.IsNotExist(err) {
		if err := os.MkdirAll(folder, os.ModePerm); err != nil {
			return fmt.Errorf("unable to create folder %q: %w", folder, err)
		}
	} else if err != nil {
		return fmt.Errorf("unable to check folder %q: %w", folder, err)
	}
	return nil
}

// WriteJsonFile writes JSON data to the specified file, creating its parent folder if needed.
func WriteJsonFile(outputFile string, data []byte) error {
	outputFile, err := ExpandPath(outputFile)
	if err != nil {
		return fmt.Errorf("failed to unwrap path %q: %w", outputFile, err)
	}
	if err := CreateFolderIfNotExists(filepath.Dir(outputFile)); err != nil {
		return err
	}

	file, err := os.OpenFile(outputFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed creating file: %w", err)
	}
	defer file.Close()

	datawriter := bufio.NewWriter(file)
	if _, err := datawriter.Write(data); err != nil {
		return fmt.Errorf("error writing data to file: %w", err)
	}
	if err := datawriter.Flush(); err != nil {
		return fmt.Errorf("error writing data to file: %w", err)
	}

	return nil
}

// WriteOutput writes data to the file at path, or to stdout for an empty path or "-".
func WriteOutput(path string, stdout io.Writer, data []byte) error {
	if IsStdStream(path) {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("error writing data to stdout: %w", err)
		}
		return nil
	}
	return WriteJsonFile(path, data)
}
