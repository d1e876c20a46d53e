package qualitycheck

// SourceFile is one input file for the quality checks
type SourceFile struct {
	Path     string
	Content  string
	Language string
}

// DocumentationScore measures docstring coverage of functions and classes
type DocumentationScore struct {
	Score            float64 `json:"score"`
	FunctionCoverage float64 `json:"function_coverage"`
	ClassCoverage    float64 `json:"class_coverage"`
	TotalItems       int     `json:"total_items"`
	DocumentedItems  int     `json:"documented_items"`
}

// TestingScore estimates test coverage from the share of test files
type TestingScore struct {
	Score         float64 `json:"score"`
	TestFiles     int     `json:"test_files"`
	TotalFiles    int     `json:"total_files"`
	TestFunctions int     `json:"test_functions"`
	HasTests      bool    `json:"has_tests"`
}

// NamingScore measures adherence to naming conventions
type NamingScore struct {
	Score           float64  `json:"score"`
	Violations      []string `json:"violations"`
	TotalViolations int      `json:"total_violations"`
	TotalChecks     int      `json:"total_checks"`
}

// ComplexFunction is a function whose estimated complexity exceeds the limit
type ComplexFunction struct {
	Name       string `json:"name"`
	Complexity int    `json:"complexity"`
}

// ComplexityScore measures the share of overly complex functions
type ComplexityScore struct {
	Score            float64           `json:"score"`
	ComplexFunctions []ComplexFunction `json:"complex_functions"`
	TotalComplex     int               `json:"total_complex"`
	TotalFunctions   int               `json:"total_functions"`
}

// BestPracticesScore aggregates per-file hygiene checks
type BestPracticesScore struct {
	Score        float64  `json:"score"`
	Issues       []string `json:"issues"`
	TotalIssues  int      `json:"total_issues"`
	ChecksPassed int      `json:"checks_passed"`
	TotalChecks  int      `json:"total_checks"`
}

// DetailedScores groups every category result
type DetailedScores struct {
	Documentation     DocumentationScore `json:"documentation"`
	Testing           TestingScore       `json:"testing"`
	NamingConventions NamingScore        `json:"naming_conventions"`
	CodeComplexity    ComplexityScore    `json:"code_complexity"`
	BestPractices     BestPracticesScore `json:"best_practices"`
}

// Misspelling is one suspect word found in a docstring
type Misspelling struct {
	Word        string   `json:"word"`
	Suggestions []string `json:"suggestions"`
}

// SpellingDiagnostic reports suspect words in docstrings. Informational
// only; it does not feed the overall score.
type SpellingDiagnostic struct {
	CheckedWords int           `json:"checked_words"`
	Misspelled   []Misspelling `json:"misspelled"`
}

// QualityReport is the full weighted quality assessment
type QualityReport struct {
	OverallQualityScore float64             `json:"overall_quality_score"`
	QualityGrade        string              `json:"quality_grade"`
	DetailedScores      DetailedScores      `json:"detailed_scores"`
	Recommendations     []string            `json:"recommendations"`
	Summary             string              `json:"summary"`
	Spelling            *SpellingDiagnostic `json:"spelling,omitempty"`
}
