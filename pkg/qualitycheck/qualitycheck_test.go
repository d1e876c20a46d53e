package qualitycheck

import (
	"context"
	"strings"
	"testing"
)

func checkFiles(t *testing.T, files []map[string]interface{}) *QualityReport {
	t.Helper()
	items := make([]interface{}, len(files))
	for i, f := range files {
		items[i] = map[string]interface{}(f)
	}
	result, err := (&Checker{}).Execute(context.Background(), map[string]interface{}{"files": items})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	report, ok := result.(*QualityReport)
	if !ok {
		t.Fatalf("expected *QualityReport, got %T", result)
	}
	return report
}

func TestEmptyFileListScoresWithoutDivisionByZero(t *testing.T) {
	report := checkFiles(t, []map[string]interface{}{})

	if report.DetailedScores.Documentation.Score != 0 {
		t.Errorf("documentation = %v", report.DetailedScores.Documentation.Score)
	}
	if report.DetailedScores.Testing.Score != 0 {
		t.Errorf("testing = %v", report.DetailedScores.Testing.Score)
	}
	if report.DetailedScores.CodeComplexity.Score != 100 {
		t.Errorf("complexity = %v", report.DetailedScores.CodeComplexity.Score)
	}
	// Only complexity contributes: 100 * 0.15
	if report.OverallQualityScore != 15.0 {
		t.Errorf("overall = %v", report.OverallQualityScore)
	}
	if !strings.HasPrefix(report.QualityGrade, "F") {
		t.Errorf("grade = %q", report.QualityGrade)
	}
}

func TestWeightedOverallScore(t *testing.T) {
	calc := "def add(a, b):\n    \"\"\"Add two numbers.\"\"\"\n    return a + b\n\nclass Calculator:\n    \"\"\"Simple calculator.\"\"\"\n"
	test := "def test_add():\n    assert add(1, 2) == 3\n"

	report := checkFiles(t, []map[string]interface{}{
		{"path": "app/calc.py", "content": calc, "language": "python"},
		{"path": "tests/test_calc.py", "content": test, "language": "python"},
	})

	scores := report.DetailedScores
	if scores.Documentation.Score != 75.0 {
		t.Errorf("documentation = %v", scores.Documentation.Score)
	}
	if scores.Testing.Score != 100.0 || !scores.Testing.HasTests || scores.Testing.TestFunctions != 1 {
		t.Errorf("testing = %+v", scores.Testing)
	}
	if scores.NamingConventions.Score != 100.0 {
		t.Errorf("naming = %+v", scores.NamingConventions)
	}
	if scores.CodeComplexity.Score != 100.0 {
		t.Errorf("complexity = %+v", scores.CodeComplexity)
	}
	if scores.BestPractices.Score != 100.0 {
		t.Errorf("best_practices = %+v", scores.BestPractices)
	}

	// 75*0.25 + 100*0.30 + 100*0.15 + 100*0.15 + 100*0.15
	if report.OverallQualityScore != 93.75 {
		t.Errorf("overall = %v", report.OverallQualityScore)
	}
	if !strings.HasPrefix(report.QualityGrade, "A") {
		t.Errorf("grade = %q", report.QualityGrade)
	}
	if len(report.Recommendations) != 1 || !strings.Contains(report.Recommendations[0], "High-quality") {
		t.Errorf("recommendations = %v", report.Recommendations)
	}
}

func TestBestPracticesFlagsLargeFilesAndSecrets(t *testing.T) {
	content := strings.Repeat("x = 1\n", 600) + `password = "hunter2"`

	report := checkFiles(t, []map[string]interface{}{
		{"path": "big.py", "content": content, "language": "python"},
	})

	bp := report.DetailedScores.BestPractices
	if bp.Score != 50.0 {
		t.Errorf("score = %v", bp.Score)
	}
	if bp.TotalIssues != 2 {
		t.Fatalf("issues = %v", bp.Issues)
	}
	if !strings.Contains(bp.Issues[0], "too large") {
		t.Errorf("issues[0] = %q", bp.Issues[0])
	}
	if !strings.Contains(bp.Issues[1], "hardcoded secret") {
		t.Errorf("issues[1] = %q", bp.Issues[1])
	}
}

func TestComplexityFlagsBranchyFunctions(t *testing.T) {
	content := "def busy(x):\n" + strings.Repeat("    if x:\n        x -= 1\n", 12)

	report := checkFiles(t, []map[string]interface{}{
		{"path": "busy.py", "content": content, "language": "python"},
	})

	cx := report.DetailedScores.CodeComplexity
	if cx.TotalFunctions != 1 || cx.TotalComplex != 1 {
		t.Fatalf("complexity = %+v", cx)
	}
	if cx.ComplexFunctions[0].Name != "busy" || cx.ComplexFunctions[0].Complexity != 13 {
		t.Errorf("complex function = %+v", cx.ComplexFunctions[0])
	}
	if cx.Score != 0.0 {
		t.Errorf("score = %v", cx.Score)
	}

	found := false
	for _, r := range report.Recommendations {
		if strings.Contains(r, "Complexity") {
			found = true
		}
	}
	if !found {
		t.Errorf("recommendations = %v", report.Recommendations)
	}
}

func TestComplexityCountsNestedDefOnce(t *testing.T) {
	content := "def outer():\n" +
		"    def inner():\n" +
		"        if a and b:\n" +
		"            pass\n" +
		"    return inner\n" +
		"\n" +
		"def after():\n" +
		"    pass\n"

	report := checkFiles(t, []map[string]interface{}{
		{"path": "nested.py", "content": content, "language": "python"},
	})

	cx := report.DetailedScores.CodeComplexity
	// inner belongs to outer's body, so only outer and after count
	if cx.TotalFunctions != 2 {
		t.Fatalf("complexity = %+v", cx)
	}
	if cx.TotalComplex != 0 || cx.Score != 100.0 {
		t.Errorf("complexity = %+v", cx)
	}
}

func TestNamingViolations(t *testing.T) {
	content := "class foo:\n    pass\n\ndef Bar():\n    pass\n"

	report := checkFiles(t, []map[string]interface{}{
		{"path": "style.py", "content": content, "language": "python"},
	})

	naming := report.DetailedScores.NamingConventions
	if naming.TotalViolations != 2 {
		t.Fatalf("violations = %v", naming.Violations)
	}
	if !strings.Contains(naming.Violations[0], "'foo'") {
		t.Errorf("violations[0] = %q", naming.Violations[0])
	}
	if !strings.Contains(naming.Violations[1], "'Bar'") {
		t.Errorf("violations[1] = %q", naming.Violations[1])
	}
	if naming.Score != 33.33 {
		t.Errorf("score = %v", naming.Score)
	}
}

func TestSpellingDiagnostic(t *testing.T) {
	content := "def get_value():\n    \"\"\"Retrn the valu stored in the record.\"\"\"\n    pass\n"

	report := checkFiles(t, []map[string]interface{}{
		{"path": "store.py", "content": content, "language": "python"},
	})

	if report.Spelling == nil {
		t.Fatal("spelling diagnostic missing")
	}
	if report.Spelling.CheckedWords == 0 {
		t.Error("no words checked")
	}

	var words []string
	for _, m := range report.Spelling.Misspelled {
		words = append(words, strings.ToLower(m.Word))
	}
	joined := strings.Join(words, " ")
	if !strings.Contains(joined, "retrn") {
		t.Errorf("misspelled = %v", words)
	}
	for _, m := range report.Spelling.Misspelled {
		if len(m.Suggestions) == 0 {
			t.Errorf("no suggestions for %q", m.Word)
		}
	}
}

func TestGradeBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{95, "A (Excellent)"},
		{85, "B (Good)"},
		{75, "C (Fair)"},
		{65, "D (Needs Improvement)"},
		{40, "F (Inadequate)"},
	}
	for _, tc := range cases {
		if got := grade(tc.score); got != tc.want {
			t.Errorf("grade(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}
