package depmapper

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"
)

var (
	versionSplitRegexp    = regexp.MustCompile(`[><=!]`)
	installRequiresRegexp = regexp.MustCompile(`(?s)install_requires\s*=\s*\[(.*?)\]`)
	artifactIDRegexp      = regexp.MustCompile(`<artifactId>(.*?)</artifactId>`)
)

// extractExternalDependencies collects third-party packages from the
// manifest files matching the project language
func extractExternalDependencies(files []ProjectFile, language string) ExternalDependencies {
	deps := ExternalDependencies{
		Production:  []string{},
		Development: []string{},
	}

	for _, file := range files {
		switch language {
		case "python":
			switch {
			case strings.Contains(strings.ToLower(file.Path), "requirements"):
				deps.Production = append(deps.Production, parseRequirementsTxt(file.Content)...)
			case strings.Contains(file.Path, "setup.py"):
				deps.Production = append(deps.Production, parseSetupPy(file.Content)...)
			case strings.Contains(file.Path, "pyproject.toml"):
				deps.Production = append(deps.Production, parsePyprojectToml(file.Content)...)
			}
		case "javascript", "typescript":
			if strings.Contains(file.Path, "package.json") {
				production, development := parsePackageJSON(file.Content)
				deps.Production = append(deps.Production, production...)
				deps.Development = append(deps.Development, development...)
			}
		case "java":
			if strings.Contains(file.Path, "pom.xml") {
				deps.Production = append(deps.Production, parsePomXML(file.Content)...)
			}
		case "go":
			if strings.Contains(file.Path, "go.mod") {
				deps.Production = append(deps.Production, parseGoMod(file.Content)...)
			}
		}
	}

	deps.Production = dedupe(deps.Production)
	deps.Development = dedupe(deps.Development)
	deps.TotalCount = len(deps.Production) + len(deps.Development)

	return deps
}

func parseRequirementsTxt(content string) []string {
	var deps []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		pkg := strings.TrimSpace(versionSplitRegexp.Split(line, 2)[0])
		deps = append(deps, pkg)
	}
	return deps
}

func parseSetupPy(content string) []string {
	m := installRequiresRegexp.FindStringSubmatch(content)
	if m == nil {
		return nil
	}

	var deps []string
	for _, part := range strings.Split(m[1], ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		part = strings.Trim(part, `"'`)
		part = strings.SplitN(part, ">=", 2)[0]
		part = strings.SplitN(part, "==", 2)[0]
		deps = append(deps, part)
	}
	return deps
}

// parsePyprojectToml reads the dependency table line by line; it covers
// both poetry and PEP 621 layouts without a full TOML parser
func parsePyprojectToml(content string) []string {
	var deps []string
	inDepsSection := false

	for _, line := range strings.Split(content, "\n") {
		if strings.Contains(line, "[tool.poetry.dependencies]") || strings.Contains(line, "[project.dependencies]") {
			inDepsSection = true
			continue
		}
		if !inDepsSection {
			continue
		}
		if strings.HasPrefix(line, "[") {
			break
		}
		if idx := strings.IndexByte(line, '='); idx >= 0 {
			pkg := strings.TrimSpace(line[:idx])
			if pkg != "" && pkg != "python" {
				deps = append(deps, pkg)
			}
		}
	}
	return deps
}

// parsePackageJSON returns production and development package names.
// Malformed JSON yields empty lists rather than an error.
func parsePackageJSON(content string) ([]string, []string) {
	var manifest struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal([]byte(content), &manifest); err != nil {
		return []string{}, []string{}
	}
	return sortedKeys(manifest.Dependencies), sortedKeys(manifest.DevDependencies)
}

func parsePomXML(content string) []string {
	var deps []string
	for _, m := range artifactIDRegexp.FindAllStringSubmatch(content, -1) {
		deps = append(deps, m[1])
	}
	return dedupe(deps)
}

func parseGoMod(content string) []string {
	var deps []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") ||
			strings.HasPrefix(line, "module") || strings.HasPrefix(line, "require") ||
			strings.HasPrefix(line, "go ") || line == ")" {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) >= 1 {
			deps = append(deps, parts[0])
		}
	}
	return deps
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func dedupe(values []string) []string {
	seen := map[string]bool{}
	result := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}
