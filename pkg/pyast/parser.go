package pyast

import (
	"regexp"
	"strings"
)

// Parse parses Python source into a Module. Malformed source returns a
// *SyntaxError; the Module is nil in that case.
func Parse(source string) (*Module, error) {
	lines, serr := scanLogicalLines(source)
	if serr != nil {
		return nil, serr
	}

	if len(lines) > 0 && lines[0].indent != 0 {
		return nil, &SyntaxError{Line: lines[0].line, Msg: "unexpected indent"}
	}

	p := &parser{lines: lines}
	body, serr := p.parseSuite(-1)
	if serr != nil {
		return nil, serr
	}

	return &Module{Body: body}, nil
}

// logicalLine is one statement after joining continuations and stripping
// comments and leading indentation
type logicalLine struct {
	text    string
	indent  int
	line    int
	endLine int
}

// scanLogicalLines joins physical lines into logical statements, tracking
// bracket depth, string literals and backslash continuations
func scanLogicalLines(source string) ([]logicalLine, *SyntaxError) {
	physical := strings.Split(source, "\n")

	var result []logicalLine
	var buf strings.Builder

	depth := 0
	inString := false
	triple := false
	var quote byte
	building := false
	startLine := 0
	indent := 0

	flush := func(endLine int) {
		text := strings.TrimSpace(buf.String())
		if text != "" {
			result = append(result, logicalLine{text: text, indent: indent, line: startLine, endLine: endLine})
		}
		buf.Reset()
		building = false
	}

	for n, raw := range physical {
		lineNo := n + 1

		if !building {
			trimmed := strings.TrimSpace(raw)
			if trimmed == "" || strings.HasPrefix(trimmed, "#") {
				continue
			}
			building = true
			startLine = lineNo
			indent = indentWidth(raw)
		}

		continued := false
		i := 0
		if inString {
			// Resume a string literal spanning physical lines
			end, closed := scanStringRest(raw, 0, quote, triple)
			if !closed {
				buf.WriteString(raw)
				buf.WriteByte('\n')
				continue
			}
			buf.WriteString(raw[:end])
			inString = false
			i = end
		}

	scan:
		for i < len(raw) {
			ch := raw[i]
			switch ch {
			case '"', '\'':
				start := i
				var closed bool
				i, triple, closed = scanStringStart(raw, i)
				quote = ch
				buf.WriteString(raw[start:i])
				if !closed {
					if !triple && !strings.HasSuffix(raw, "\\") {
						return nil, &SyntaxError{Line: lineNo, Msg: "unterminated string literal"}
					}
					inString = true
					buf.WriteByte('\n')
					break scan
				}
			case '(', '[', '{':
				depth++
				buf.WriteByte(ch)
				i++
			case ')', ']', '}':
				depth--
				if depth < 0 {
					return nil, &SyntaxError{Line: lineNo, Msg: "unmatched closing bracket"}
				}
				buf.WriteByte(ch)
				i++
			case '#':
				break scan
			case '\\':
				if i == len(raw)-1 {
					continued = true
					buf.WriteByte(' ')
					i++
					break scan
				}
				buf.WriteByte(ch)
				i++
			default:
				buf.WriteByte(ch)
				i++
			}
		}

		if inString {
			continue
		}
		if depth > 0 {
			buf.WriteByte(' ')
			continue
		}
		if continued {
			continue
		}
		flush(lineNo)
	}

	if inString {
		return nil, &SyntaxError{Line: startLine, Msg: "unterminated string literal"}
	}
	if depth > 0 {
		return nil, &SyntaxError{Line: startLine, Msg: "unexpected EOF while parsing"}
	}
	if building {
		flush(len(physical))
	}

	return result, nil
}

// scanStringStart consumes a string literal beginning at i. It returns the
// index just past what was consumed on this line, whether the literal is
// triple-quoted, and whether it closed on this line.
func scanStringStart(s string, i int) (end int, triple bool, closed bool) {
	q := s[i]
	if strings.HasPrefix(s[i:], strings.Repeat(string(q), 3)) {
		end, closed = scanStringRest(s, i+3, q, true)
		return end, true, closed
	}
	end, closed = scanStringRest(s, i+1, q, false)
	return end, false, closed
}

// scanStringRest scans for the closing delimiter from position i
func scanStringRest(s string, i int, q byte, triple bool) (end int, closed bool) {
	delim := string(q)
	if triple {
		delim = strings.Repeat(string(q), 3)
	}
	for i < len(s) {
		if s[i] == '\\' {
			i += 2
			continue
		}
		if strings.HasPrefix(s[i:], delim) {
			return i + len(delim), true
		}
		i++
	}
	return len(s), false
}

// indentWidth computes leading indentation, expanding tabs to 8 columns
func indentWidth(s string) int {
	width := 0
	for _, ch := range s {
		switch ch {
		case ' ':
			width++
		case '\t':
			width = (width/8 + 1) * 8
		default:
			return width
		}
	}
	return width
}

// ── statement parsing ───────────────────────────────────────────────────

type parser struct {
	lines []logicalLine
	pos   int
}

var (
	defRegexp    = regexp.MustCompile(`^(async\s+)?def\s+([A-Za-z_]\w*)\s*\(`)
	classRegexp  = regexp.MustCompile(`^class\s+([A-Za-z_]\w*)\s*[(:]`)
	fromRegexp   = regexp.MustCompile(`^from\s+([.\w]+)\s+import\s+(.+)$`)
	importRegexp = regexp.MustCompile(`^import\s+(.+)$`)
	nameRegexp   = regexp.MustCompile(`^[A-Za-z_]\w*(\.[A-Za-z_]\w*)*$`)
	identRegexp  = regexp.MustCompile(`^[A-Za-z_]\w*$`)
)

// blockKeywords are compound statements we descend into without modeling
var blockKeywords = []string{
	"if", "elif", "else", "for", "while", "try", "except",
	"finally", "with", "match", "case",
}

// parseSuite parses consecutive statements more indented than parentIndent.
// The first statement fixes the suite's indentation level.
func (p *parser) parseSuite(parentIndent int) ([]Stmt, *SyntaxError) {
	if p.pos >= len(p.lines) || p.lines[p.pos].indent <= parentIndent {
		return nil, nil
	}
	suiteIndent := p.lines[p.pos].indent

	var body []Stmt
	var decorators []string
	decoratorLine := 0

	for p.pos < len(p.lines) {
		ll := p.lines[p.pos]
		if ll.indent <= parentIndent {
			break
		}
		if ll.indent > suiteIndent {
			return nil, &SyntaxError{Line: ll.line, Msg: "unexpected indent"}
		}
		if ll.indent < suiteIndent {
			return nil, &SyntaxError{Line: ll.line, Msg: "unindent does not match any outer indentation level"}
		}

		if strings.HasPrefix(ll.text, "@") {
			decorators = append(decorators, resolveNameExpr(ll.text[1:]))
			decoratorLine = ll.line
			p.pos++
			continue
		}

		stmt, serr := p.parseStatement(ll, suiteIndent)
		if serr != nil {
			return nil, serr
		}

		if len(decorators) > 0 {
			switch node := stmt.(type) {
			case *FunctionDef:
				node.Decorators = decorators
			case *ClassDef:
				node.Decorators = decorators
			default:
				return nil, &SyntaxError{Line: decoratorLine, Msg: "decorator is not followed by a function or class definition"}
			}
			decorators = nil
		}

		body = append(body, stmt)
	}

	if len(decorators) > 0 {
		return nil, &SyntaxError{Line: decoratorLine, Msg: "decorator is not followed by a function or class definition"}
	}

	return body, nil
}

// parseStatement parses one statement; compound statements consume their
// indented suites
func (p *parser) parseStatement(ll logicalLine, indent int) (Stmt, *SyntaxError) {
	text := ll.text

	if m := defRegexp.FindStringSubmatch(text); m != nil {
		return p.parseFunctionDef(ll, indent, m[2], m[1] != "")
	}
	if m := classRegexp.FindStringSubmatch(text); m != nil {
		return p.parseClassDef(ll, indent, m[1])
	}
	if m := fromRegexp.FindStringSubmatch(text); m != nil {
		p.pos++
		return &ImportFrom{Line: ll.line, Module: m[1], Names: parseImportNames(m[2])}, nil
	}
	if m := importRegexp.FindStringSubmatch(text); m != nil {
		p.pos++
		return &Import{Line: ll.line, Names: parseImportNames(m[1])}, nil
	}
	if isBlockOpener(text) {
		// match/case are soft keywords; without a suite colon they are
		// ordinary identifiers
		if headerColon(text, 0) < 0 && (strings.HasPrefix(text, "match") || strings.HasPrefix(text, "case")) {
			p.pos++
			return classifySimple(text, ll.line), nil
		}
		return p.parseBlock(ll, indent)
	}
	p.pos++
	return classifySimple(text, ll.line), nil
}

// parseBody handles the suite of a compound statement, either inline after
// the colon or as the following indented block
func (p *parser) parseBody(ll logicalLine, indent, colon int) ([]Stmt, int, *SyntaxError) {
	inline := strings.TrimSpace(ll.text[colon+1:])
	p.pos++

	if inline != "" {
		var body []Stmt
		for _, part := range splitTopLevel(inline, ';') {
			part = strings.TrimSpace(part)
			if part != "" {
				body = append(body, classifySimple(part, ll.line))
			}
		}
		return body, ll.endLine, nil
	}

	body, serr := p.parseSuite(indent)
	if serr != nil {
		return nil, 0, serr
	}
	if len(body) == 0 {
		return nil, 0, &SyntaxError{Line: ll.line, Msg: "expected an indented block"}
	}
	return body, lastLine(body, ll.endLine), nil
}

func (p *parser) parseFunctionDef(ll logicalLine, indent int, name string, isAsync bool) (Stmt, *SyntaxError) {
	open := strings.IndexByte(ll.text, '(')
	close := matchBracket(ll.text, open)
	if close < 0 {
		return nil, &SyntaxError{Line: ll.line, Msg: "malformed function signature"}
	}
	colon := headerColon(ll.text, close+1)
	if colon < 0 {
		return nil, &SyntaxError{Line: ll.line, Msg: "expected ':'"}
	}

	args := parseParams(ll.text[open+1 : close])

	body, endLine, serr := p.parseBody(ll, indent, colon)
	if serr != nil {
		return nil, serr
	}

	return &FunctionDef{
		Name:    name,
		Line:    ll.line,
		EndLine: endLine,
		Args:    args,
		IsAsync: isAsync,
		Body:    body,
	}, nil
}

func (p *parser) parseClassDef(ll logicalLine, indent int, name string) (Stmt, *SyntaxError) {
	var bases []string
	searchFrom := len("class ") + len(name)

	if open := strings.IndexByte(ll.text, '('); open >= 0 && open < headerColon(ll.text, searchFrom) {
		close := matchBracket(ll.text, open)
		if close < 0 {
			return nil, &SyntaxError{Line: ll.line, Msg: "malformed class header"}
		}
		bases = parseBases(ll.text[open+1 : close])
		searchFrom = close + 1
	}

	colon := headerColon(ll.text, searchFrom)
	if colon < 0 {
		return nil, &SyntaxError{Line: ll.line, Msg: "expected ':'"}
	}

	body, endLine, serr := p.parseBody(ll, indent, colon)
	if serr != nil {
		return nil, serr
	}

	return &ClassDef{
		Name:    name,
		Line:    ll.line,
		EndLine: endLine,
		Bases:   bases,
		Body:    body,
	}, nil
}

func (p *parser) parseBlock(ll logicalLine, indent int) (Stmt, *SyntaxError) {
	colon := headerColon(ll.text, 0)
	if colon < 0 {
		return nil, &SyntaxError{Line: ll.line, Msg: "expected ':'"}
	}

	body, endLine, serr := p.parseBody(ll, indent, colon)
	if serr != nil {
		return nil, serr
	}

	return &Block{Line: ll.line, EndLine: endLine, Body: body}, nil
}

// classifySimple classifies a simple (non-compound) statement
func classifySimple(text string, line int) Stmt {
	if value, ok := parseStringLiteral(text); ok {
		return &StringExpr{Line: line, Value: value}
	}
	if target, ok := assignTarget(text); ok {
		return &Assign{Line: line, Target: target}
	}
	return &Other{Line: line}
}

// isBlockOpener reports whether the statement starts a compound block we
// descend into
func isBlockOpener(text string) bool {
	word := text
	if i := strings.IndexAny(text, " \t(:"); i >= 0 {
		word = text[:i]
	}
	if word == "async" {
		rest := strings.TrimSpace(text[len("async"):])
		return isBlockOpener(rest)
	}
	for _, kw := range blockKeywords {
		if word == kw {
			return true
		}
	}
	return false
}

// ── expression helpers ──────────────────────────────────────────────────

// headerColon finds the colon that terminates a statement header,
// ignoring colons inside strings and brackets
func headerColon(s string, from int) int {
	depth := 0
	for i := from; i < len(s); i++ {
		switch ch := s[i]; ch {
		case '"', '\'':
			end, _, _ := scanStringStart(s, i)
			i = end - 1
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ':':
			if depth == 0 {
				return i
			}
		default:
			_ = ch
		}
	}
	return -1
}

// matchBracket returns the index of the bracket closing s[open]
func matchBracket(s string, open int) int {
	if open < 0 || open >= len(s) {
		return -1
	}
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '"', '\'':
			end, _, _ := scanStringStart(s, i)
			i = end - 1
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitTopLevel splits on sep, honoring strings and bracket nesting
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"', '\'':
			end, _, _ := scanStringStart(s, i)
			i = end - 1
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// parseParams extracts positional parameter names from a def signature.
// Starred parameters and everything after them are excluded, mirroring
// how positional arguments are reported by Python's own ast module.
func parseParams(s string) []string {
	var args []string
	for _, part := range splitTopLevel(s, ',') {
		part = strings.TrimSpace(part)
		if part == "" || part == "/" {
			continue
		}
		if strings.HasPrefix(part, "*") {
			break
		}
		name := part
		if i := strings.IndexAny(part, ":="); i >= 0 {
			name = part[:i]
		}
		name = strings.TrimSpace(name)
		if identRegexp.MatchString(name) {
			args = append(args, name)
		}
	}
	return args
}

// parseBases extracts base-class expressions from a class header,
// skipping keyword arguments such as metaclass=
func parseBases(s string) []string {
	var bases []string
	for _, part := range splitTopLevel(s, ',') {
		part = strings.TrimSpace(part)
		if part == "" || strings.HasPrefix(part, "*") {
			continue
		}
		if isKeywordArg(part) {
			continue
		}
		bases = append(bases, resolveNameExpr(part))
	}
	return bases
}

func isKeywordArg(part string) bool {
	for i := 0; i < len(part); i++ {
		switch part[i] {
		case '"', '\'', '(', '[', '{':
			return false
		case '=':
			if i+1 < len(part) && part[i+1] == '=' {
				return false
			}
			return true
		}
	}
	return false
}

// parseImportNames parses the name list of an import statement
func parseImportNames(s string) []ImportAlias {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = s[1 : len(s)-1]
	}

	var names []ImportAlias
	for _, part := range splitTopLevel(s, ',') {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		alias := ImportAlias{Name: part}
		if fields := strings.Fields(part); len(fields) == 3 && fields[1] == "as" {
			alias.Name = fields[0]
			alias.AsName = fields[2]
		}
		names = append(names, alias)
	}
	return names
}

// resolveNameExpr resolves an expression to a plain or dotted name.
// Calls resolve to their callee; anything else yields "unknown".
func resolveNameExpr(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '('); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	if nameRegexp.MatchString(s) {
		return s
	}
	return "unknown"
}

// assignTarget reports the single bare-identifier target of an assignment
func assignTarget(text string) (string, bool) {
	depth := 0
	for i := 0; i < len(text); i++ {
		switch ch := text[i]; ch {
		case '"', '\'':
			end, _, _ := scanStringStart(text, i)
			i = end - 1
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case '=':
			if depth != 0 {
				continue
			}
			if i+1 < len(text) && text[i+1] == '=' {
				return "", false
			}
			if i > 0 && strings.IndexByte("=!<>+-*/%&|^:@", text[i-1]) >= 0 {
				return "", false
			}
			target := strings.TrimSpace(text[:i])
			if identRegexp.MatchString(target) {
				return target, true
			}
			return "", false
		}
	}
	return "", false
}

// parseStringLiteral reports the contents of a statement that is purely a
// string literal (including implicit concatenation of adjacent literals)
func parseStringLiteral(text string) (string, bool) {
	var value strings.Builder
	i := 0
	found := false

	for i < len(text) {
		// Skip whitespace between adjacent literals
		for i < len(text) && (text[i] == ' ' || text[i] == '\t' || text[i] == '\n') {
			i++
		}
		if i >= len(text) {
			break
		}

		start := i
		// Optional string prefix (r, b, u, f and combinations)
		for i < len(text) && strings.IndexByte("rbufRBUF", text[i]) >= 0 && i-start < 2 {
			i++
		}
		if i >= len(text) || (text[i] != '"' && text[i] != '\'') {
			return "", false
		}

		quoteStart := i
		end, triple, closed := scanStringStart(text, i)
		if !closed {
			return "", false
		}

		width := 1
		if triple {
			width = 3
		}
		value.WriteString(text[quoteStart+width : end-width])
		found = true
		i = end
	}

	return value.String(), found
}

// lastLine returns the greatest end line among statements
func lastLine(body []Stmt, fallback int) int {
	end := fallback
	for _, stmt := range body {
		var candidate int
		switch node := stmt.(type) {
		case *FunctionDef:
			candidate = node.EndLine
		case *ClassDef:
			candidate = node.EndLine
		case *Block:
			candidate = node.EndLine
		case *Import:
			candidate = node.Line
		case *ImportFrom:
			candidate = node.Line
		case *Assign:
			candidate = node.Line
		case *StringExpr:
			candidate = node.Line
		case *Other:
			candidate = node.Line
		}
		if candidate > end {
			end = candidate
		}
	}
	return end
}
