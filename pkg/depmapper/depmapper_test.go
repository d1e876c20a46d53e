package depmapper

import (
	"context"
	"strings"
	"testing"
)

func mapProject(t *testing.T, language string, files []map[string]interface{}) *DependencyReport {
	t.Helper()
	items := make([]interface{}, len(files))
	for i, f := range files {
		items[i] = map[string]interface{}(f)
	}
	result, err := (&Mapper{}).Execute(context.Background(), map[string]interface{}{
		"files":    items,
		"language": language,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	report, ok := result.(*DependencyReport)
	if !ok {
		t.Fatalf("expected *DependencyReport, got %T", result)
	}
	return report
}

func TestPythonExternalDependencies(t *testing.T) {
	report := mapProject(t, "python", []map[string]interface{}{
		{"path": "requirements.txt", "content": "flask>=2.0\nrequests==2.28.0\n# comment\nnumpy\n"},
	})

	got := report.ExternalDependencies.Production
	want := []string{"flask", "requests", "numpy"}
	if len(got) != len(want) {
		t.Fatalf("production = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("production[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if report.ExternalDependencies.TotalCount != 3 {
		t.Errorf("total_count = %d", report.ExternalDependencies.TotalCount)
	}
}

func TestSetupPyAndPyproject(t *testing.T) {
	setupPy := "from setuptools import setup\nsetup(\n    install_requires=[\n        \"click>=8.0\",\n        'rich==13.0',\n    ],\n)\n"
	pyproject := "[tool.poetry.dependencies]\npython = \"^3.11\"\nhttpx = \"*\"\n\n[tool.poetry.group.dev.dependencies]\npytest = \"*\"\n"

	report := mapProject(t, "python", []map[string]interface{}{
		{"path": "setup.py", "content": setupPy},
		{"path": "pyproject.toml", "content": pyproject},
	})

	joined := strings.Join(report.ExternalDependencies.Production, " ")
	for _, pkg := range []string{"click", "rich", "httpx"} {
		if !strings.Contains(joined, pkg) {
			t.Errorf("missing %q in %v", pkg, report.ExternalDependencies.Production)
		}
	}
	if strings.Contains(joined, "python") {
		t.Errorf("python itself must not be listed: %v", report.ExternalDependencies.Production)
	}
}

func TestPackageJSONMalformedDegrades(t *testing.T) {
	report := mapProject(t, "javascript", []map[string]interface{}{
		{"path": "package.json", "content": "{not json"},
	})

	if report.ExternalDependencies.TotalCount != 0 {
		t.Errorf("total_count = %d", report.ExternalDependencies.TotalCount)
	}
}

func TestPackageJSONDependencies(t *testing.T) {
	content := `{"dependencies": {"express": "^4.18.0"}, "devDependencies": {"jest": "^29.0.0", "eslint": "^8.0.0"}}`
	report := mapProject(t, "javascript", []map[string]interface{}{
		{"path": "package.json", "content": content},
	})

	if len(report.ExternalDependencies.Production) != 1 || report.ExternalDependencies.Production[0] != "express" {
		t.Errorf("production = %v", report.ExternalDependencies.Production)
	}
	if len(report.ExternalDependencies.Development) != 2 {
		t.Errorf("development = %v", report.ExternalDependencies.Development)
	}
	if report.ExternalDependencies.TotalCount != 3 {
		t.Errorf("total_count = %d", report.ExternalDependencies.TotalCount)
	}
}

func TestInternalImportsFiltered(t *testing.T) {
	report := mapProject(t, "python", []map[string]interface{}{
		{"path": "app/main.py", "content": "import os\nimport sys\nfrom app.services import UserService\nfrom . import helpers\n"},
	})

	deps := report.InternalDependencies["app/main.py"]
	if len(deps) != 2 {
		t.Fatalf("deps = %v", deps)
	}
	if deps[0] != "app.services" || deps[1] != "." {
		t.Errorf("deps = %v", deps)
	}
}

func TestCircularDependencyDetection(t *testing.T) {
	report := mapProject(t, "python", []map[string]interface{}{
		{"path": "a", "content": "import b\n"},
		{"path": "b", "content": "import a\n"},
	})

	if len(report.CircularDependencies) != 1 {
		t.Fatalf("circular = %v", report.CircularDependencies)
	}
	cycle := report.CircularDependencies[0]
	// A cycle closes on its starting node
	if len(cycle) < 3 || cycle[0] != cycle[len(cycle)-1] {
		t.Errorf("cycle = %v", cycle)
	}

	found := false
	for _, r := range report.Recommendations {
		if strings.Contains(r, "circular") {
			found = true
		}
	}
	if !found {
		t.Errorf("recommendations = %v", report.Recommendations)
	}
}

func TestLaterRootReachingFoundCycle(t *testing.T) {
	// c reaches a cycle collected from an earlier root; only the
	// cycle itself is reported
	modules := []ModuleDeps{
		{Path: "a", Imports: []string{"b"}},
		{Path: "b", Imports: []string{"a"}},
		{Path: "c", Imports: []string{"b"}},
	}

	cycles := detectCircularDependencies(modules)
	if len(cycles) != 1 {
		t.Fatalf("cycles = %v", cycles)
	}
	for _, cycle := range cycles {
		if len(cycle) < 3 || cycle[0] != cycle[len(cycle)-1] {
			t.Errorf("cycle = %v", cycle)
		}
	}
}

func TestNoDependenciesReport(t *testing.T) {
	report := mapProject(t, "python", []map[string]interface{}{
		{"path": "empty.py", "content": "x = 1\n"},
	})

	if report.DependencyGraph != "No internal dependencies" {
		t.Errorf("graph = %q", report.DependencyGraph)
	}
	if report.Metrics.CouplingLevel != "none" {
		t.Errorf("coupling = %q", report.Metrics.CouplingLevel)
	}
	if report.Metrics.MostDependentModule != nil {
		t.Errorf("most_dependent = %+v", report.Metrics.MostDependentModule)
	}
	if len(report.Recommendations) != 1 || !strings.Contains(report.Recommendations[0], "Healthy") {
		t.Errorf("recommendations = %v", report.Recommendations)
	}
}

func TestMetricsAndGraph(t *testing.T) {
	report := mapProject(t, "javascript", []map[string]interface{}{
		{"path": "src/app.js", "content": "import {a} from './a'\nimport {b} from './b'\nconst c = require('./c')\n"},
		{"path": "src/a.js", "content": "import {util} from './util'\n"},
	})

	if report.Metrics.TotalInternalDependencies != 4 {
		t.Errorf("total_internal = %d", report.Metrics.TotalInternalDependencies)
	}
	if report.Metrics.AvgDependenciesPerModule != 2.0 {
		t.Errorf("avg = %v", report.Metrics.AvgDependenciesPerModule)
	}
	most := report.Metrics.MostDependentModule
	if most == nil || most.Path != "src/app.js" || most.Count != 3 {
		t.Errorf("most_dependent = %+v", most)
	}
	if !strings.Contains(report.DependencyGraph, "app.js -> a") {
		t.Errorf("graph = %q", report.DependencyGraph)
	}
}

func TestGoModExternalDependencies(t *testing.T) {
	goMod := "module example.com/demo\n\ngo 1.22\n\nrequire (\n\tgithub.com/google/uuid v1.6.0\n\tgithub.com/joho/godotenv v1.5.1\n)\n"
	report := mapProject(t, "go", []map[string]interface{}{
		{"path": "go.mod", "content": goMod},
	})

	got := report.ExternalDependencies.Production
	if len(got) != 2 || got[0] != "github.com/google/uuid" || got[1] != "github.com/joho/godotenv" {
		t.Errorf("production = %v", got)
	}
}
