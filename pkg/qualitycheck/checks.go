package qualitycheck

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

var (
	pyFunctionRegexp      = regexp.MustCompile(`def\s+(\w+)\s*\(`)
	pyDocumentedFnRegexp  = regexp.MustCompile(`def\s+\w+\s*\([^)]*\)\s*:\s*"""`)
	pyClassRegexp         = regexp.MustCompile(`class\s+(\w+)`)
	pyDocumentedClsRegexp = regexp.MustCompile(`class\s+\w+[^:]*:\s*"""`)

	pyTestFnRegexp = regexp.MustCompile(`def\s+test_\w+`)
	jsTestFnRegexp = regexp.MustCompile(`it\s*\(|test\s*\(`)

	lowerClassRegexp = regexp.MustCompile(`class\s+([a-z_]\w*)`)
	upperFnRegexp    = regexp.MustCompile(`def\s+([A-Z]\w*)\s*\(`)

	fnHeaderRegexp   = regexp.MustCompile(`def\s+(\w+)\s*\([^)]*\):`)
	fnBoundaryRegexp = regexp.MustCompile(`\n(?:def|class)\s`)
	ifRegexp         = regexp.MustCompile(`\bif\b`)
	forRegexp        = regexp.MustCompile(`\bfor\b`)
	whileRegexp      = regexp.MustCompile(`\bwhile\b`)
	boolOpRegexp     = regexp.MustCompile(`\band\b|\bor\b`)

	hardcodedSecretRegexp = regexp.MustCompile(`(?i)(password|secret|api_key)\s*=\s*["'][^"']+["']`)
	todoRegexp            = regexp.MustCompile(`TODO|FIXME`)
)

var testPathIndicators = []string{"test_", "_test", "spec", "test/"}

func checkDocumentation(files []SourceFile) DocumentationScore {
	totalFunctions, documentedFunctions := 0, 0
	totalClasses, documentedClasses := 0, 0

	for _, file := range files {
		if file.Language != "python" {
			continue
		}
		totalFunctions += len(pyFunctionRegexp.FindAllString(file.Content, -1))
		documentedFunctions += len(pyDocumentedFnRegexp.FindAllString(file.Content, -1))
		totalClasses += len(pyClassRegexp.FindAllString(file.Content, -1))
		documentedClasses += len(pyDocumentedClsRegexp.FindAllString(file.Content, -1))
	}

	funcCoverage := 0.0
	if totalFunctions > 0 {
		funcCoverage = float64(documentedFunctions) / float64(totalFunctions) * 100
	}
	classCoverage := 0.0
	if totalClasses > 0 {
		classCoverage = float64(documentedClasses) / float64(totalClasses) * 100
	}
	overall := 0.0
	if totalFunctions+totalClasses > 0 {
		overall = (funcCoverage + classCoverage) / 2
	}

	return DocumentationScore{
		Score:            round2(overall),
		FunctionCoverage: round2(funcCoverage),
		ClassCoverage:    round2(classCoverage),
		TotalItems:       totalFunctions + totalClasses,
		DocumentedItems:  documentedFunctions + documentedClasses,
	}
}

// checkTesting estimates coverage from the ratio of test files to a 30%
// target share of all files
func checkTesting(files []SourceFile) TestingScore {
	testFiles := 0
	testFunctions := 0

	for _, file := range files {
		pathLower := strings.ToLower(file.Path)
		isTest := false
		for _, indicator := range testPathIndicators {
			if strings.Contains(pathLower, indicator) {
				isTest = true
				break
			}
		}
		if !isTest {
			continue
		}
		testFiles++
		testFunctions += len(pyTestFnRegexp.FindAllString(file.Content, -1))
		testFunctions += len(jsTestFnRegexp.FindAllString(file.Content, -1))
	}

	target := math.Max(float64(len(files))*0.3, 1)
	estimated := math.Min(float64(testFiles)/target*100, 100)

	return TestingScore{
		Score:         round2(estimated),
		TestFiles:     testFiles,
		TotalFiles:    len(files),
		TestFunctions: testFunctions,
		HasTests:      testFiles > 0,
	}
}

func checkNaming(files []SourceFile) NamingScore {
	violations := []string{}
	totalChecks := 0

	for _, file := range files {
		language := file.Language
		if language == "" {
			language = "python"
		}
		if language != "python" {
			continue
		}

		for _, m := range lowerClassRegexp.FindAllStringSubmatch(file.Content, -1) {
			violations = append(violations, fmt.Sprintf("Class '%s' is not PascalCase", m[1]))
		}
		totalChecks += len(pyClassRegexp.FindAllString(file.Content, -1))

		for _, m := range upperFnRegexp.FindAllStringSubmatch(file.Content, -1) {
			violations = append(violations, fmt.Sprintf("Function '%s' is not snake_case", m[1]))
		}
		totalChecks += len(pyFunctionRegexp.FindAllString(file.Content, -1))

		totalChecks++
	}

	compliance := float64(totalChecks-len(violations)) / math.Max(float64(totalChecks), 1) * 100

	capped := violations
	if len(capped) > 10 {
		capped = capped[:10]
	}

	return NamingScore{
		Score:           round2(compliance),
		Violations:      capped,
		TotalViolations: len(violations),
		TotalChecks:     totalChecks,
	}
}

// checkComplexity estimates cyclomatic complexity per function by
// counting branches and boolean operators in the function body
func checkComplexity(files []SourceFile) ComplexityScore {
	complexFunctions := []ComplexFunction{}
	totalFunctions := 0

	for _, file := range files {
		for _, fn := range sliceFunctions(file.Content) {
			totalFunctions++

			complexity := 1
			complexity += len(ifRegexp.FindAllString(fn.body, -1))
			complexity += len(forRegexp.FindAllString(fn.body, -1))
			complexity += len(whileRegexp.FindAllString(fn.body, -1))
			complexity += len(boolOpRegexp.FindAllString(fn.body, -1))

			if complexity > 10 {
				complexFunctions = append(complexFunctions, ComplexFunction{
					Name:       fn.name,
					Complexity: complexity,
				})
			}
		}
	}

	score := math.Max(0, 100-float64(len(complexFunctions))/math.Max(float64(totalFunctions), 1)*100)

	capped := complexFunctions
	if len(capped) > 5 {
		capped = capped[:5]
	}

	return ComplexityScore{
		Score:            round2(score),
		ComplexFunctions: capped,
		TotalComplex:     len(complexFunctions),
		TotalFunctions:   totalFunctions,
	}
}

type functionSlice struct {
	name string
	body string
}

// sliceFunctions pairs each def header with the text up to the next
// top-of-line def or class, or end of file. Headers inside an already
// sliced body belong to that function and are not sliced again.
func sliceFunctions(content string) []functionSlice {
	var slices []functionSlice
	consumed := 0

	headers := fnHeaderRegexp.FindAllStringSubmatchIndex(content, -1)
	for _, h := range headers {
		if h[0] < consumed {
			continue
		}
		name := content[h[2]:h[3]]
		bodyStart := h[1]

		rest := content[bodyStart:]
		end := len(rest)
		if b := fnBoundaryRegexp.FindStringIndex(rest); b != nil {
			end = b[0]
		}
		slices = append(slices, functionSlice{name: name, body: rest[:end]})
		consumed = bodyStart + end
	}
	return slices
}

func checkBestPractices(files []SourceFile) BestPracticesScore {
	issues := []string{}
	checksPassed := 0
	totalChecks := 0

	for _, file := range files {
		lines := strings.Split(file.Content, "\n")

		totalChecks++
		if len(lines) > 500 {
			issues = append(issues, fmt.Sprintf("%s: File too large (%d lines)", file.Path, len(lines)))
		} else {
			checksPassed++
		}

		totalChecks++
		if hardcodedSecretRegexp.MatchString(file.Content) {
			issues = append(issues, fmt.Sprintf("%s: Possible hardcoded secret", file.Path))
		} else {
			checksPassed++
		}

		// Imports are expected within the first 30 lines; a def followed
		// by more imports further down suggests scattered imports
		totalChecks++
		head := strings.Join(lines[:min(30, len(lines))], "\n")
		if strings.Contains(head, "import") {
			rest := ""
			if len(lines) > 30 {
				rest = strings.Join(lines[30:], "\n")
			}
			if strings.Contains(rest, "import ") && strings.Contains(rest, "def ") {
				issues = append(issues, fmt.Sprintf("%s: Imports are not at the top", file.Path))
			} else {
				checksPassed++
			}
		} else {
			checksPassed++
		}

		totalChecks++
		todos := len(todoRegexp.FindAllString(file.Content, -1))
		if todos > 5 {
			issues = append(issues, fmt.Sprintf("%s: Too many TODOs/FIXMEs (%d)", file.Path, todos))
		} else {
			checksPassed++
		}
	}

	compliance := float64(checksPassed) / math.Max(float64(totalChecks), 1) * 100

	capped := issues
	if len(capped) > 10 {
		capped = capped[:10]
	}

	return BestPracticesScore{
		Score:        round2(compliance),
		Issues:       capped,
		TotalIssues:  len(issues),
		ChecksPassed: checksPassed,
		TotalChecks:  totalChecks,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
