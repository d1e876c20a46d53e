package codeanalyzer

import (
	"fmt"
	"math"

	"github.com/Mustasheep/nawi-agent/pkg/pyast"
)

// analyzePython parses Python source and extracts its structure. Syntax
// errors degrade to a report carrying only basic statistics.
func analyzePython(code, filePath string) interface{} {
	stats := basicStats(code, "python")

	module, err := pyast.Parse(code)
	if err != nil {
		return &DegradedReport{
			Error:    fmt.Sprintf("syntax error: %v", err),
			Language: "python",
			FilePath: filePath,
			Stats:    stats,
		}
	}

	functions := make([]FunctionInfo, 0)
	classes := make([]ClassInfo, 0)
	imports := make([]ImportInfo, 0)
	constants := make([]ConstantInfo, 0)

	totalFunctionLines := 0

	pyast.Walk(module.Body, func(stmt pyast.Stmt) {
		switch node := stmt.(type) {
		case *pyast.FunctionDef:
			functions = append(functions, FunctionInfo{
				Name:       node.Name,
				Line:       node.Line,
				Args:       stringsOrEmpty(node.Args),
				Docstring:  docstringOf(node.Body),
				IsAsync:    node.IsAsync,
				Decorators: stringsOrEmpty(node.Decorators),
			})
			totalFunctionLines += node.EndLine - node.Line + 1

		case *pyast.ClassDef:
			methods := make([]MethodInfo, 0)
			for _, child := range node.Body {
				if fn, ok := child.(*pyast.FunctionDef); ok {
					methods = append(methods, MethodInfo{
						Name:          fn.Name,
						Line:          fn.Line,
						Args:          stringsOrEmpty(fn.Args),
						IsStatic:      hasDecorator(fn.Decorators, "staticmethod"),
						IsClassmethod: hasDecorator(fn.Decorators, "classmethod"),
					})
				}
			}
			classes = append(classes, ClassInfo{
				Name:       node.Name,
				Line:       node.Line,
				Bases:      stringsOrEmpty(node.Bases),
				Docstring:  docstringOf(node.Body),
				Methods:    methods,
				Decorators: stringsOrEmpty(node.Decorators),
			})

		case *pyast.Import:
			for _, alias := range node.Names {
				imports = append(imports, ImportInfo{
					Type:   "import",
					Module: alias.Name,
					Alias:  optionalString(alias.AsName),
					Line:   node.Line,
				})
			}

		case *pyast.ImportFrom:
			for _, alias := range node.Names {
				imports = append(imports, ImportInfo{
					Type:   "from_import",
					Module: node.Module,
					Name:   alias.Name,
					Alias:  optionalString(alias.AsName),
					Line:   node.Line,
				})
			}
		}
	})

	// Constants are module-level upper-case assignments only
	for _, stmt := range module.Body {
		if assign, ok := stmt.(*pyast.Assign); ok && isUpperIdentifier(assign.Target) {
			constants = append(constants, ConstantInfo{Name: assign.Target, Line: assign.Line})
		}
	}

	avgLength := 0.0
	if len(functions) > 0 {
		avgLength = math.Round(float64(totalFunctionLines)/float64(len(functions))*100) / 100
	}

	return &PythonReport{
		Language: "python",
		FilePath: filePath,
		Stats:    stats,
		Structure: PythonStructure{
			Functions: functions,
			Classes:   classes,
			Imports:   imports,
			Constants: constants,
		},
		Metrics: PythonMetrics{
			TotalFunctions:    len(functions),
			TotalClasses:      len(classes),
			TotalImports:      len(imports),
			TotalConstants:    len(constants),
			AvgFunctionLength: avgLength,
		},
	}
}

func docstringOf(body []pyast.Stmt) *string {
	if doc, ok := pyast.Docstring(body); ok {
		return &doc
	}
	return nil
}

func hasDecorator(decorators []string, name string) bool {
	for _, d := range decorators {
		if d == name {
			return true
		}
	}
	return false
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringsOrEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// isUpperIdentifier reports whether the identifier consists solely of
// upper-case letters, digits and underscores, with at least one letter
func isUpperIdentifier(name string) bool {
	hasLetter := false
	for _, ch := range name {
		switch {
		case ch >= 'A' && ch <= 'Z':
			hasLetter = true
		case ch >= '0' && ch <= '9', ch == '_':
		default:
			return false
		}
	}
	return hasLetter
}
