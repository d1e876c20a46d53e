// Package scanner walks a project directory and prepares the inputs the
// analysis tools expect: file and directory name lists, a path-keyed
// structure map, and per-language file contents.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// MaxFileSize is the largest file the scanner will read
const MaxFileSize = 100 * 1024

// DefaultFilesPerLanguage caps how many files of each language are kept
const DefaultFilesPerLanguage = 20

var excludedDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	"node_modules": true,
	"__pycache__":  true,
	".venv":        true,
	"venv":         true,
	"env":          true,
	"dist":         true,
	"build":        true,
	"target":       true,
	".idea":        true,
	".vscode":      true,
	"vendor":       true,
}

var languageByExtension = map[string]string{
	".py":   "python",
	".js":   "javascript",
	".jsx":  "javascript",
	".ts":   "typescript",
	".tsx":  "typescript",
	".java": "java",
	".go":   "go",
	".cpp":  "cpp",
	".cc":   "cpp",
	".h":    "cpp",
	".hpp":  "cpp",
}

var manifestNames = map[string]bool{
	"requirements.txt": true,
	"setup.py":         true,
	"pyproject.toml":   true,
	"package.json":     true,
	"pom.xml":          true,
	"go.mod":           true,
}

// File is one scanned source or manifest file
type File struct {
	Path     string
	RelPath  string
	Content  string
	Language string
}

// Project is the scan result, ready to feed the analysis tools
type Project struct {
	Root           string
	FileNames      []string
	DirectoryNames []string
	FileStructure  map[string]interface{}
	SourceFiles    []File
	ManifestFiles  []File
	Language       string
}

// Scan walks root and collects project structure and file contents.
// Oversized files are listed in the structure but their content is not
// read; per-language source files are capped at maxPerLanguage.
func Scan(root string, maxPerLanguage int) (*Project, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("error accessing directory: %v", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", root)
	}

	if maxPerLanguage <= 0 {
		maxPerLanguage = DefaultFilesPerLanguage
	}

	project := &Project{
		Root:          root,
		FileStructure: map[string]interface{}{},
	}
	perLanguage := map[string]int{}
	languageTotals := map[string]int{}

	walkFn := func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if path != root && excludedDirs[info.Name()] {
				return filepath.SkipDir
			}
			if path != root {
				project.DirectoryNames = append(project.DirectoryNames, info.Name())
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		project.FileNames = append(project.FileNames, info.Name())
		project.FileStructure[rel] = "file"

		if info.Size() > MaxFileSize {
			return nil
		}

		name := info.Name()
		ext := strings.ToLower(filepath.Ext(name))
		language := languageByExtension[ext]
		isManifest := manifestNames[name] || strings.Contains(strings.ToLower(name), "requirements")

		if language == "" && !isManifest {
			return nil
		}
		if language != "" {
			languageTotals[language]++
			if !isManifest && perLanguage[language] >= maxPerLanguage {
				return nil
			}
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return nil
		}

		file := File{Path: path, RelPath: rel, Content: string(content), Language: language}
		if isManifest {
			project.ManifestFiles = append(project.ManifestFiles, file)
		}
		if language != "" {
			perLanguage[language]++
			project.SourceFiles = append(project.SourceFiles, file)
		}
		return nil
	}

	if err := filepath.Walk(root, walkFn); err != nil {
		return nil, err
	}

	project.Language = dominantLanguage(languageTotals)
	return project, nil
}

// dominantLanguage picks the language with the most files, ties broken
// alphabetically so scans are reproducible
func dominantLanguage(totals map[string]int) string {
	languages := make([]string, 0, len(totals))
	for lang := range totals {
		languages = append(languages, lang)
	}
	sort.Strings(languages)

	best := ""
	bestCount := 0
	for _, lang := range languages {
		if totals[lang] > bestCount {
			best = lang
			bestCount = totals[lang]
		}
	}
	if best == "" {
		return "python"
	}
	return best
}

// MapperFiles converts the scan result into the file objects the
// dependency mapper expects (sources plus manifests)
func (p *Project) MapperFiles() []interface{} {
	var files []interface{}
	for _, f := range p.ManifestFiles {
		files = append(files, map[string]interface{}{
			"path":    f.RelPath,
			"content": f.Content,
			"type":    "manifest",
		})
	}
	for _, f := range p.SourceFiles {
		files = append(files, map[string]interface{}{
			"path":    f.RelPath,
			"content": f.Content,
			"type":    "source",
		})
	}
	return files
}

// CheckerFiles converts the scan result into the file objects the
// quality checker expects
func (p *Project) CheckerFiles() []interface{} {
	var files []interface{}
	for _, f := range p.SourceFiles {
		files = append(files, map[string]interface{}{
			"path":     f.RelPath,
			"content":  f.Content,
			"language": f.Language,
		})
	}
	return files
}
