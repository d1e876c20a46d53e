package codeanalyzer

import "regexp"

// Regex-based scanning only: multi-line signatures, destructured imports
// and CommonJS modules are not guaranteed to be found.
var (
	jsFunctionRegexp = regexp.MustCompile(`(?:async\s+)?function\s+(\w+)\s*\([^)]*\)`)
	jsClassRegexp    = regexp.MustCompile(`class\s+(\w+)(?:\s+extends\s+(\w+))?`)
	jsImportRegexp   = regexp.MustCompile(`import\s+(?:{[^}]+}|\w+)\s+from\s+["']([^"']+)["']`)
	jsConstRegexp    = regexp.MustCompile(`const\s+(\w+)\s*=`)
)

// analyzeJavaScript extracts approximate structure from JavaScript or
// TypeScript source using independent regular-expression scans
func analyzeJavaScript(code, filePath, language string) *JSReport {
	functions := make([]JSFunctionInfo, 0)
	for _, m := range jsFunctionRegexp.FindAllStringSubmatch(code, -1) {
		functions = append(functions, JSFunctionInfo{Name: m[1], Type: "function"})
	}

	classes := make([]JSClassInfo, 0)
	for _, m := range jsClassRegexp.FindAllStringSubmatch(code, -1) {
		classes = append(classes, JSClassInfo{Name: m[1], Extends: optionalString(m[2])})
	}

	imports := make([]JSImportInfo, 0)
	for _, m := range jsImportRegexp.FindAllStringSubmatch(code, -1) {
		imports = append(imports, JSImportInfo{Module: m[1]})
	}

	// Top-level consts are scanned but not surfaced in the report
	_ = jsConstRegexp.FindAllStringSubmatch(code, -1)

	return &JSReport{
		Language: "javascript",
		FilePath: filePath,
		Stats:    basicStats(code, language),
		Structure: JSStructure{
			Functions: functions,
			Classes:   classes,
			Imports:   imports,
		},
		Metrics: JSMetrics{
			TotalFunctions: len(functions),
			TotalClasses:   len(classes),
			TotalImports:   len(imports),
		},
		Note: "Basic regex analysis. For complete results, use a JS AST parser.",
	}
}
