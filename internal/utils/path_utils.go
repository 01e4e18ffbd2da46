// Package utils holds small name helpers shared by the Module
// Dispatcher and cache layers. Mirrors funxy's internal/utils, minus its
// file-path resolution half: resolving a relative import to a file path
// is file I/O, out of scope here (see DESIGN.md).
package utils

// QualifiedName joins a module name and a signature name the same way
// throughout the codebase, so cache keys and diagnostics never drift
// apart on separator choice.
func QualifiedName(moduleName, signatureName string) string {
	return moduleName + "::" + signatureName
}
