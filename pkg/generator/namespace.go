package generator

import (
	"path/filepath"
	"strings"
)

// namespaceSegments splits a logical namespace on '.', '/' or '\'.
func namespaceSegments(ns string) []string {
	return strings.FieldsFunc(ns, func(r rune) bool {
		return r == '.' || r == '/' || r == '\\'
	})
}

// PhpNamespace converts a logical namespace into a backslash delimited PHP
// namespace.
func PhpNamespace(ns string) string {
	return strings.Join(namespaceSegments(ns), `\`)
}

// TypesNamespace joins the root namespace and the types sub-namespace.
func TypesNamespace(root, sub string) string {
	return PhpNamespace(strings.Join([]string{root, sub}, `\`))
}

// PathFromNamespace maps a namespace to its directory below outDir.
func PathFromNamespace(outDir, ns string) string {
	return filepath.Join(append([]string{outDir}, namespaceSegments(ns)...)...)
}
