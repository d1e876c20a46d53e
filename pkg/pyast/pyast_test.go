package pyast

import (
	"errors"
	"strings"
	"testing"
)

func parseOrFail(t *testing.T, source string) *Module {
	t.Helper()
	module, err := Parse(source)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return module
}

func TestParseFunctionDef(t *testing.T) {
	module := parseOrFail(t, "def add(a, b=1, *args, **kwargs):\n    \"\"\"Adds.\"\"\"\n    return a + b\n")

	if len(module.Body) != 1 {
		t.Fatalf("body = %d statements", len(module.Body))
	}
	fn, ok := module.Body[0].(*FunctionDef)
	if !ok {
		t.Fatalf("expected *FunctionDef, got %T", module.Body[0])
	}
	if fn.Name != "add" || fn.Line != 1 || fn.EndLine != 3 {
		t.Errorf("fn = %q lines %d-%d", fn.Name, fn.Line, fn.EndLine)
	}
	if len(fn.Args) != 2 || fn.Args[0] != "a" || fn.Args[1] != "b" {
		t.Errorf("args = %v, star and double-star params must be dropped", fn.Args)
	}
	if doc, ok := Docstring(fn.Body); !ok || doc != "Adds." {
		t.Errorf("docstring = %q %v", doc, ok)
	}
}

func TestParseAsyncAndDecorators(t *testing.T) {
	source := "@app.route(\"/x\")\n@cached\nasync def handler(req):\n    pass\n"
	module := parseOrFail(t, source)

	fn, ok := module.Body[0].(*FunctionDef)
	if !ok {
		t.Fatalf("expected *FunctionDef, got %T", module.Body[0])
	}
	if !fn.IsAsync {
		t.Error("handler should be async")
	}
	if len(fn.Decorators) != 2 || fn.Decorators[0] != "app.route" || fn.Decorators[1] != "cached" {
		t.Errorf("decorators = %v", fn.Decorators)
	}
}

func TestParseClassDef(t *testing.T) {
	source := "class Repo(Base, metaclass=Meta):\n    \"\"\"Doc.\"\"\"\n    def save(self):\n        pass\n"
	module := parseOrFail(t, source)

	cls, ok := module.Body[0].(*ClassDef)
	if !ok {
		t.Fatalf("expected *ClassDef, got %T", module.Body[0])
	}
	if len(cls.Bases) != 1 || cls.Bases[0] != "Base" {
		t.Errorf("bases = %v, keyword arguments must be skipped", cls.Bases)
	}
	if len(cls.Body) != 2 {
		t.Fatalf("class body = %d statements", len(cls.Body))
	}
	if _, ok := cls.Body[1].(*FunctionDef); !ok {
		t.Errorf("expected method, got %T", cls.Body[1])
	}
}

func TestParseImports(t *testing.T) {
	source := "import os, sys as system\nfrom collections import OrderedDict, defaultdict as dd\n"
	module := parseOrFail(t, source)

	imp, ok := module.Body[0].(*Import)
	if !ok {
		t.Fatalf("expected *Import, got %T", module.Body[0])
	}
	if len(imp.Names) != 2 || imp.Names[1].Name != "sys" || imp.Names[1].AsName != "system" {
		t.Errorf("import names = %+v", imp.Names)
	}

	from, ok := module.Body[1].(*ImportFrom)
	if !ok {
		t.Fatalf("expected *ImportFrom, got %T", module.Body[1])
	}
	if from.Module != "collections" || len(from.Names) != 2 {
		t.Errorf("from import = %+v", from)
	}
	if from.Names[1].AsName != "dd" {
		t.Errorf("alias = %+v", from.Names[1])
	}
}

func TestParseNestedBlocks(t *testing.T) {
	source := `if True:
    def inner():
        pass
else:
    class Hidden:
        pass
`
	module := parseOrFail(t, source)

	var functions, classes int
	Walk(module.Body, func(stmt Stmt) {
		switch stmt.(type) {
		case *FunctionDef:
			functions++
		case *ClassDef:
			classes++
		}
	})
	if functions != 1 || classes != 1 {
		t.Errorf("found %d functions, %d classes inside blocks", functions, classes)
	}
}

func TestParseMultilineSignature(t *testing.T) {
	source := "def long_one(\n    first,\n    second,\n):\n    return first\n"
	module := parseOrFail(t, source)

	fn, ok := module.Body[0].(*FunctionDef)
	if !ok {
		t.Fatalf("expected *FunctionDef, got %T", module.Body[0])
	}
	if len(fn.Args) != 2 || fn.Args[0] != "first" || fn.Args[1] != "second" {
		t.Errorf("args = %v", fn.Args)
	}
}

func TestParseTripleQuotedStrings(t *testing.T) {
	source := "\"\"\"Module\ndoc.\"\"\"\nX = 1\n"
	module := parseOrFail(t, source)

	if doc, ok := Docstring(module.Body); !ok || doc != "Module\ndoc." {
		t.Errorf("module docstring = %q %v", doc, ok)
	}
	assign, ok := module.Body[1].(*Assign)
	if !ok || assign.Target != "X" {
		t.Errorf("assignment = %+v", module.Body[1])
	}
}

func TestParseSoftKeywords(t *testing.T) {
	// match and case are identifiers outside match statements
	module := parseOrFail(t, "match = 5\ncase = compute()\n")
	if assign, ok := module.Body[0].(*Assign); !ok || assign.Target != "match" {
		t.Errorf("expected assignment to match, got %+v", module.Body[0])
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name   string
		source string
	}{
		{"missing body", "def f():\n"},
		{"unterminated string", "x = \"oops\n"},
		{"unmatched bracket", "x = (1, 2\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.source)
			if err == nil {
				t.Fatal("expected a syntax error")
			}
			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Errorf("expected *SyntaxError, got %T", err)
			}
			if !strings.Contains(err.Error(), "line") {
				t.Errorf("error should carry a line number: %v", err)
			}
		})
	}
}

func TestParseComments(t *testing.T) {
	module := parseOrFail(t, "# leading comment\nx = 1  # trailing\n")
	if len(module.Body) != 1 {
		t.Fatalf("body = %d statements", len(module.Body))
	}
	if assign, ok := module.Body[0].(*Assign); !ok || assign.Target != "x" {
		t.Errorf("assignment = %+v", module.Body[0])
	}
}
