// Package pyast provides a lightweight structural parser for Python source.
// It recognizes the statement shapes the analyzers care about (function and
// class definitions, imports, assignments, string expressions) and reports
// malformed source as a *SyntaxError value rather than panicking.
//
// It is not a full grammar: expressions inside statements are kept as raw
// text, and only the structure relevant for documentation analysis is built.
package pyast

import "fmt"

// SyntaxError describes a parse failure with its source line
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Stmt is implemented by all statement nodes
type Stmt interface {
	stmtNode()
}

// Module is the root of a parsed source unit
type Module struct {
	Body []Stmt
}

// FunctionDef is a def or async def statement
type FunctionDef struct {
	Name       string
	Line       int
	EndLine    int
	Args       []string
	Decorators []string
	IsAsync    bool
	Body       []Stmt
}

// ClassDef is a class statement
type ClassDef struct {
	Name       string
	Line       int
	EndLine    int
	Bases      []string
	Decorators []string
	Body       []Stmt
}

// ImportAlias is one imported name with its optional binding
type ImportAlias struct {
	Name   string
	AsName string
}

// Import is an "import a.b, c as d" statement
type Import struct {
	Line  int
	Names []ImportAlias
}

// ImportFrom is a "from m import x as y" statement
type ImportFrom struct {
	Line   int
	Module string
	Names  []ImportAlias
}

// Assign is an assignment to a single bare identifier
type Assign struct {
	Line   int
	Target string
}

// StringExpr is a bare string-literal expression statement
type StringExpr struct {
	Line  int
	Value string
}

// Block is any other compound statement (if, for, try, with, ...);
// its body is kept so nested definitions remain reachable
type Block struct {
	Line    int
	EndLine int
	Body    []Stmt
}

// Other is any remaining simple statement
type Other struct {
	Line int
}

func (*FunctionDef) stmtNode() {}
func (*ClassDef) stmtNode()    {}
func (*Import) stmtNode()      {}
func (*ImportFrom) stmtNode()  {}
func (*Assign) stmtNode()      {}
func (*StringExpr) stmtNode()  {}
func (*Block) stmtNode()       {}
func (*Other) stmtNode()       {}

// Walk visits every statement in pre-order, descending into function,
// class and block bodies
func Walk(body []Stmt, visit func(Stmt)) {
	for _, stmt := range body {
		visit(stmt)
		switch node := stmt.(type) {
		case *FunctionDef:
			Walk(node.Body, visit)
		case *ClassDef:
			Walk(node.Body, visit)
		case *Block:
			Walk(node.Body, visit)
		}
	}
}

// Docstring returns the value of the first statement when it is a bare
// string literal, following the convention for module, class and
// function documentation
func Docstring(body []Stmt) (string, bool) {
	if len(body) == 0 {
		return "", false
	}
	if s, ok := body[0].(*StringExpr); ok {
		return s.Value, true
	}
	return "", false
}
