package cmd

import (
	"fmt"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/scan-io-git/ruffrules/pkg/shared/files"
)

// ValidateNoArgs rejects positional arguments.
func ValidateNoArgs(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected positional arguments: %s", strings.Join(args, ", "))
	}
	return nil
}

// InputPathRule accepts "-", an empty value or a readable regular file.
var InputPathRule = validation.By(func(value interface{}) error {
	path, _ := value.(string)
	if files.IsStdStream(path) {
		return nil
	}
	expanded, err := files.ExpandPath(path)
	if err != nil {
		return err
	}
	return files.ValidatePath(expanded)
})

// OutputPathRule accepts "-", an empty value or a path that is not an existing directory.
var OutputPathRule = validation.By(func(value interface{}) error {
	path, _ := value.(string)
	if files.IsStdStream(path) {
		return nil
	}
	expanded, err := files.ExpandPath(path)
	if err != nil {
		return err
	}
	if info, err := os.Stat(expanded); err == nil && info.IsDir() {
		return fmt.Errorf("path %q is a directory, not a file", expanded)
	}
	return nil
})
