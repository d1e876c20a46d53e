package codeanalyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

const pythonSample = `import os
from typing import List as L

MAX_SIZE = 100

def top(a, b):
    """Top doc."""
    return a + b

async def fetch(url):
    pass

class Greeter(Base):
    """Greets."""

    @staticmethod
    def shout(msg):
        return msg.upper()

    @classmethod
    def build(cls):
        return cls()

    def greet(self, name):
        def inner():
            pass
        return name
`

func TestAnalyzePythonStructure(t *testing.T) {
	result := analyzePython(pythonSample, "greeter.py")
	report, ok := result.(*PythonReport)
	if !ok {
		t.Fatalf("expected *PythonReport, got %T", result)
	}

	if report.Language != "python" || report.FilePath != "greeter.py" {
		t.Errorf("unexpected header: %s %s", report.Language, report.FilePath)
	}

	names := make([]string, 0)
	for _, fn := range report.Structure.Functions {
		names = append(names, fn.Name)
	}
	want := []string{"top", "fetch", "shout", "build", "greet", "inner"}
	if len(names) != len(want) {
		t.Fatalf("functions = %v, want %v", names, want)
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("functions[%d] = %q, want %q", i, names[i], name)
		}
	}

	top := report.Structure.Functions[0]
	if top.Docstring == nil || *top.Docstring != "Top doc." {
		t.Errorf("top docstring = %v", top.Docstring)
	}
	if len(top.Args) != 2 || top.Args[0] != "a" || top.Args[1] != "b" {
		t.Errorf("top args = %v", top.Args)
	}
	if top.IsAsync {
		t.Error("top should not be async")
	}
	if !report.Structure.Functions[1].IsAsync {
		t.Error("fetch should be async")
	}

	if len(report.Structure.Classes) != 1 {
		t.Fatalf("classes = %d, want 1", len(report.Structure.Classes))
	}
	greeter := report.Structure.Classes[0]
	if greeter.Name != "Greeter" {
		t.Errorf("class name = %q", greeter.Name)
	}
	if len(greeter.Bases) != 1 || greeter.Bases[0] != "Base" {
		t.Errorf("class bases = %v", greeter.Bases)
	}
	if greeter.Docstring == nil || *greeter.Docstring != "Greets." {
		t.Errorf("class docstring = %v", greeter.Docstring)
	}
	if len(greeter.Methods) != 3 {
		t.Fatalf("methods = %d, want 3", len(greeter.Methods))
	}
	if !greeter.Methods[0].IsStatic || greeter.Methods[0].Name != "shout" {
		t.Errorf("shout flags wrong: %+v", greeter.Methods[0])
	}
	if !greeter.Methods[1].IsClassmethod || greeter.Methods[1].Name != "build" {
		t.Errorf("build flags wrong: %+v", greeter.Methods[1])
	}
	if greeter.Methods[2].IsStatic || greeter.Methods[2].IsClassmethod {
		t.Errorf("greet should carry no flags: %+v", greeter.Methods[2])
	}

	if len(report.Structure.Imports) != 2 {
		t.Fatalf("imports = %+v", report.Structure.Imports)
	}
	if report.Structure.Imports[0].Type != "import" || report.Structure.Imports[0].Module != "os" {
		t.Errorf("import[0] = %+v", report.Structure.Imports[0])
	}
	from := report.Structure.Imports[1]
	if from.Type != "from_import" || from.Module != "typing" || from.Name != "List" {
		t.Errorf("import[1] = %+v", from)
	}
	if from.Alias == nil || *from.Alias != "L" {
		t.Errorf("import[1] alias = %v", from.Alias)
	}

	if len(report.Structure.Constants) != 1 || report.Structure.Constants[0].Name != "MAX_SIZE" {
		t.Errorf("constants = %+v", report.Structure.Constants)
	}

	if report.Metrics.TotalFunctions != len(report.Structure.Functions) {
		t.Error("total_functions does not match function list")
	}
	if report.Metrics.TotalClasses != len(report.Structure.Classes) {
		t.Error("total_classes does not match class list")
	}
	if report.Metrics.AvgFunctionLength <= 0 {
		t.Errorf("avg_function_length = %v", report.Metrics.AvgFunctionLength)
	}
}

func TestAnalyzePythonSyntaxErrorDegrades(t *testing.T) {
	result := analyzePython("def f():\n", "broken.py")
	report, ok := result.(*DegradedReport)
	if !ok {
		t.Fatalf("expected *DegradedReport, got %T", result)
	}
	if !strings.Contains(report.Error, "syntax error") {
		t.Errorf("error = %q", report.Error)
	}
	if report.Stats.TotalLines == 0 {
		t.Error("degraded report should still carry stats")
	}
}

func TestAnalyzeJavaScript(t *testing.T) {
	code := `import React from "react"
import {helper} from './util'

function hello(name) { return name }
async function load() {}

class Dog extends Animal {}
class Cat {}
`
	report := analyzeJavaScript(code, "app.ts", "typescript")

	if report.Language != "javascript" {
		t.Errorf("language = %q, want javascript", report.Language)
	}
	if report.Metrics.TotalFunctions != 2 {
		t.Errorf("functions = %+v", report.Structure.Functions)
	}
	if report.Metrics.TotalClasses != 2 {
		t.Fatalf("classes = %+v", report.Structure.Classes)
	}
	dog := report.Structure.Classes[0]
	if dog.Name != "Dog" || dog.Extends == nil || *dog.Extends != "Animal" {
		t.Errorf("dog = %+v", dog)
	}
	if report.Structure.Classes[1].Extends != nil {
		t.Errorf("cat extends = %v", report.Structure.Classes[1].Extends)
	}
	if report.Metrics.TotalImports != 2 {
		t.Errorf("imports = %+v", report.Structure.Imports)
	}
	if report.Note == "" {
		t.Error("js report should disclose the approximation")
	}
}

func TestExecuteUnsupportedLanguage(t *testing.T) {
	analyzer := &Analyzer{}
	result, err := analyzer.Execute(context.Background(), map[string]interface{}{
		"code":     "package main\n\nfunc main() {}\n",
		"language": "go",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	report, ok := result.(*UnsupportedReport)
	if !ok {
		t.Fatalf("expected *UnsupportedReport, got %T", result)
	}
	if !strings.Contains(report.Error, "not implemented") {
		t.Errorf("error = %q", report.Error)
	}
	if report.BasicStats.CodeLines == 0 {
		t.Error("basic stats should still be computed")
	}
}

func TestExecuteMissingArguments(t *testing.T) {
	analyzer := &Analyzer{}
	if _, err := analyzer.Execute(context.Background(), map[string]interface{}{"code": "x = 1"}); err == nil {
		t.Error("expected error for missing language")
	}
	if _, err := analyzer.Execute(context.Background(), map[string]interface{}{"language": "python"}); err == nil {
		t.Error("expected error for missing code")
	}
}

func TestExecuteDeterministic(t *testing.T) {
	analyzer := &Analyzer{}
	args := map[string]interface{}{
		"code":     pythonSample,
		"language": "python",
		"file_path": "greeter.py",
	}

	first, err := analyzer.Execute(context.Background(), args)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	second, err := analyzer.Execute(context.Background(), args)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if !bytes.Equal(a, b) {
		t.Error("identical input should produce identical output")
	}
}

func TestBasicStats(t *testing.T) {
	code := "# comment\n\nx = 1\ny = 2\n"
	stats := basicStats(code, "python")
	if stats.TotalLines != 5 {
		t.Errorf("total_lines = %d", stats.TotalLines)
	}
	if stats.CommentLines != 1 || stats.BlankLines != 2 || stats.CodeLines != 2 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.Characters != len(code) {
		t.Errorf("characters = %d", stats.Characters)
	}

	js := basicStats("// c\nlet x = 1\n", "javascript")
	if js.CommentLines != 1 {
		t.Errorf("js comment lines = %d", js.CommentLines)
	}
}
