package depmapper

import (
	"regexp"
	"strings"
)

var (
	fromImportRegexp   = regexp.MustCompile(`from\s+([\w.]+)\s+import`)
	jsImportFromRegexp = regexp.MustCompile(`import\s+.*?\s+from\s+['"]([^'"]+)['"]`)
	jsBareImportRegexp = regexp.MustCompile(`import\s+['"]([^'"]+)['"]`)
	jsRequireRegexp    = regexp.MustCompile(`require\(['"]([^'"]+)['"]\)`)
)

// wellKnownPrefixes marks imports that are clearly not project modules.
// Relative imports always count as internal.
var wellKnownPrefixes = []string{"os", "sys", "json", "react", "vue"}

// extractInternalDependencies maps each file to its project-internal
// imports, preserving file order. Files with no internal imports are
// omitted entirely.
func extractInternalDependencies(files []ProjectFile, language string) []ModuleDeps {
	var modules []ModuleDeps

	for _, file := range files {
		var imports []string
		switch language {
		case "python":
			imports = extractPythonImports(file.Content)
		case "javascript", "typescript":
			imports = extractJSImports(file.Content)
		}

		var internal []string
		for _, imp := range imports {
			if isInternalImport(imp) {
				internal = append(internal, imp)
			}
		}

		if len(internal) > 0 {
			modules = append(modules, ModuleDeps{Path: file.Path, Imports: internal})
		}
	}

	return modules
}

func isInternalImport(imp string) bool {
	if strings.HasPrefix(imp, ".") {
		return true
	}
	for _, pkg := range wellKnownPrefixes {
		if strings.HasPrefix(imp, pkg) {
			return false
		}
	}
	return true
}

// extractPythonImports scans import statements line by line. Only the
// first module of a multi-import line is taken.
func extractPythonImports(content string) []string {
	var imports []string

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)

		if strings.HasPrefix(line, "import ") {
			pkg := strings.TrimPrefix(line, "import ")
			pkg = strings.SplitN(pkg, " as ", 2)[0]
			pkg = strings.SplitN(pkg, ",", 2)[0]
			imports = append(imports, strings.TrimSpace(pkg))
		} else if strings.HasPrefix(line, "from ") {
			if m := fromImportRegexp.FindStringSubmatch(line); m != nil {
				imports = append(imports, m[1])
			}
		}
	}

	return imports
}

// extractJSImports collects ES imports, bare imports and CommonJS
// requires, deduplicated preserving first occurrence
func extractJSImports(content string) []string {
	var imports []string
	for _, re := range []*regexp.Regexp{jsImportFromRegexp, jsBareImportRegexp, jsRequireRegexp} {
		for _, m := range re.FindAllStringSubmatch(content, -1) {
			imports = append(imports, m[1])
		}
	}
	return dedupe(imports)
}
