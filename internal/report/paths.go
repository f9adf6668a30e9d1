package report

import (
	"strings"
	"unicode/utf8"
)

// CommonPrefix returns the longest string every value starts with.
func CommonPrefix(values []string) string {
	if len(values) == 0 {
		return ""
	}
	prefix := values[0]
	for _, value := range values[1:] {
		i := 0
		for i < len(prefix) && i < len(value) && prefix[i] == value[i] {
			i++
		}
		prefix = prefix[:i]
	}
	for len(prefix) > 0 && !utf8.ValidString(prefix) {
		prefix = prefix[:len(prefix)-1]
	}
	return prefix
}

// CommonDir cuts prefix back to its last "/", keeping the slash, so that
// removing it never splits a file or directory name.
func CommonDir(prefix string) string {
	i := strings.LastIndex(prefix, "/")
	if i < 0 {
		return ""
	}
	return prefix[:i+1]
}

// RemovePrefix strips prefix from value when both are non-empty.
func RemovePrefix(value, prefix string) string {
	if prefix != "" && value != "" && strings.HasPrefix(value, prefix) {
		return value[len(prefix):]
	}
	return value
}

// DeriveModule turns a relative file name into a dotted module name.
func DeriveModule(filename string) string {
	return strings.ReplaceAll(strings.TrimSuffix(filename, ".py"), "/", ".")
}

// DerivePackage returns the package a module belongs to. A package's
// __init__ module belongs to the package itself and a top-level module is its
// own package.
func DerivePackage(module string) string {
	if trimmed := strings.TrimSuffix(module, ".__init__"); trimmed != module {
		return trimmed
	}
	if i := strings.LastIndex(module, "."); i >= 0 {
		return module[:i]
	}
	return module
}

// CodeClass strips the trailing digits of a rule code, "F401" becomes "F".
func CodeClass(code string) string {
	return strings.TrimRight(code, "0123456789")
}
