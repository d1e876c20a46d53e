package codeanalyzer

// BasicStats are line and character statistics computable for any source
// text, regardless of parse success
type BasicStats struct {
	TotalLines   int `json:"total_lines"`
	CodeLines    int `json:"code_lines"`
	BlankLines   int `json:"blank_lines"`
	CommentLines int `json:"comment_lines"`
	Characters   int `json:"characters"`
}

// FunctionInfo describes one function found in Python source
type FunctionInfo struct {
	Name       string   `json:"name"`
	Line       int      `json:"line"`
	Args       []string `json:"args"`
	Docstring  *string  `json:"docstring"`
	IsAsync    bool     `json:"is_async"`
	Decorators []string `json:"decorators"`
}

// MethodInfo describes a method declared directly inside a class body
type MethodInfo struct {
	Name          string   `json:"name"`
	Line          int      `json:"line"`
	Args          []string `json:"args"`
	IsStatic      bool     `json:"is_static"`
	IsClassmethod bool     `json:"is_classmethod"`
}

// ClassInfo describes one class found in Python source
type ClassInfo struct {
	Name       string       `json:"name"`
	Line       int          `json:"line"`
	Bases      []string     `json:"bases"`
	Docstring  *string      `json:"docstring"`
	Methods    []MethodInfo `json:"methods"`
	Decorators []string     `json:"decorators"`
}

// ImportInfo describes one imported symbol. Type is "import" for direct
// imports and "from_import" for from-imports, which also carry Name.
type ImportInfo struct {
	Type   string  `json:"type"`
	Module string  `json:"module"`
	Name   string  `json:"name,omitempty"`
	Alias  *string `json:"alias"`
	Line   int     `json:"line"`
}

// ConstantInfo describes a module-level upper-case assignment
type ConstantInfo struct {
	Name string `json:"name"`
	Line int    `json:"line"`
}

// PythonStructure groups the structural findings for a Python source unit
type PythonStructure struct {
	Functions []FunctionInfo `json:"functions"`
	Classes   []ClassInfo    `json:"classes"`
	Imports   []ImportInfo   `json:"imports"`
	Constants []ConstantInfo `json:"constants"`
}

// PythonMetrics are counts derived from the structure lists
type PythonMetrics struct {
	TotalFunctions    int     `json:"total_functions"`
	TotalClasses      int     `json:"total_classes"`
	TotalImports      int     `json:"total_imports"`
	TotalConstants    int     `json:"total_constants"`
	AvgFunctionLength float64 `json:"avg_function_length"`
}

// PythonReport is the full structure report for parseable Python source
type PythonReport struct {
	Language  string          `json:"language"`
	FilePath  string          `json:"file_path"`
	Stats     BasicStats      `json:"stats"`
	Structure PythonStructure `json:"structure"`
	Metrics   PythonMetrics   `json:"metrics"`
}

// DegradedReport is returned when structural analysis is unavailable but
// basic statistics still are (parse failure)
type DegradedReport struct {
	Error    string     `json:"error"`
	Language string     `json:"language"`
	FilePath string     `json:"file_path"`
	Stats    BasicStats `json:"stats"`
}

// UnsupportedReport is returned for languages with no structural analyzer
type UnsupportedReport struct {
	Error      string     `json:"error"`
	BasicStats BasicStats `json:"basic_stats"`
}

// JSFunctionInfo describes a function declaration found by regex scanning
type JSFunctionInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// JSClassInfo describes a class declaration with its optional parent
type JSClassInfo struct {
	Name    string  `json:"name"`
	Extends *string `json:"extends"`
}

// JSImportInfo describes an ES-module import with a literal module path
type JSImportInfo struct {
	Module string `json:"module"`
}

// JSStructure groups the regex findings for JavaScript/TypeScript source
type JSStructure struct {
	Functions []JSFunctionInfo `json:"functions"`
	Classes   []JSClassInfo    `json:"classes"`
	Imports   []JSImportInfo   `json:"imports"`
}

// JSMetrics are counts derived from the JS structure lists
type JSMetrics struct {
	TotalFunctions int `json:"total_functions"`
	TotalClasses   int `json:"total_classes"`
	TotalImports   int `json:"total_imports"`
}

// JSReport is the approximate structure report for JavaScript/TypeScript
type JSReport struct {
	Language  string      `json:"language"`
	FilePath  string      `json:"file_path"`
	Stats     BasicStats  `json:"stats"`
	Structure JSStructure `json:"structure"`
	Metrics   JSMetrics   `json:"metrics"`
	Note      string      `json:"note"`
}
