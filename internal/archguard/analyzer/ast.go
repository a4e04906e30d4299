package analyzer

import (
	"context"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/archguard/archguard/internal/archguard/domain"
)

func grammarFor(ext string) *sitter.Language {
	switch ext {
	case ".tsx":
		return tsx.GetLanguage()
	case ".ts":
		return typescript.GetLanguage()
	case ".js", ".jsx":
		return javascript.GetLanguage()
	}
	return nil
}

// Declaration queries differ per grammar: interface/type-alias/parameter
// node types only exist in the TypeScript grammars.
const tsDeclQuery = `
(variable_declarator name: (identifier) @variable)
(function_declaration name: (identifier) @function)
(class_declaration name: (type_identifier) @class)
(interface_declaration name: (type_identifier) @interface)
(type_alias_declaration name: (type_identifier) @type)
(required_parameter pattern: (identifier) @parameter)
(optional_parameter pattern: (identifier) @parameter)
`

const jsDeclQuery = `
(variable_declarator name: (identifier) @variable)
(function_declaration name: (identifier) @function)
(class_declaration name: (identifier) @class)
(formal_parameters (identifier) @parameter)
`

const importQuery = `
(import_statement source: (string (string_fragment) @path))
(export_statement source: (string (string_fragment) @path))
`

const callQuery = `
(call_expression function: (identifier) @fn)
`

const jsxAttrQuery = `
(jsx_attribute (property_identifier) @attr)
`

const anyTypeQuery = `
(predefined_type) @t
`

var hookNameRe = regexp.MustCompile(`^use[A-Z]`)
var handlerNameRe = regexp.MustCompile(`^on[A-Z]`)

// browserGlobals are the browser-runtime identifiers whose presence marks a
// file as needing the interactive runtime.
var browserGlobals = map[string]bool{
	"window":         true,
	"document":       true,
	"localStorage":   true,
	"sessionStorage": true,
	"navigator":      true,
}

// extractFromTree parses content with the grammar matching facts.Extension
// and fills the AST-derived facts. Returns false when no grammar exists or
// the tree contains syntax errors, in which case the caller falls back to
// the text heuristics.
func (a *Analyzer) extractFromTree(facts *domain.FileFacts, content []byte) bool {
	lang := grammarFor(facts.Extension)
	if lang == nil {
		return false
	}

	parser := sitter.NewParser()
	parser.SetLanguage(lang)
	tree, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil || tree == nil {
		return false
	}
	root := tree.RootNode()
	if root.HasError() {
		return false
	}

	for _, cap := range runQuery(importQuery, lang, root, content) {
		facts.ImportTargets = append(facts.ImportTargets, cap.text)
	}

	for _, cap := range runQuery(callQuery, lang, root, content) {
		switch {
		case hookNameRe.MatchString(cap.text):
			facts.UsedHooks[cap.text] = true
		case cap.text == "fetch":
			facts.FetchCallCount++
		}
	}

	// Browser globals appear as bare identifiers in member expressions
	// (window.location, document.title).
	for _, cap := range runQuery(`(identifier) @id`, lang, root, content) {
		if browserGlobals[cap.text] {
			facts.UsedBrowserAPIs[cap.text] = true
		}
	}

	if facts.Extension == ".tsx" || facts.Extension == ".jsx" {
		for _, cap := range runQuery(jsxAttrQuery, lang, root, content) {
			if handlerNameRe.MatchString(cap.text) {
				facts.EventHandlerNames[cap.text] = true
			}
		}
	}

	declQuery := tsDeclQuery
	if facts.Extension == ".js" || facts.Extension == ".jsx" {
		declQuery = jsDeclQuery
	}
	for _, cap := range runQuery(declQuery, lang, root, content) {
		facts.DeclaredIdentifiers = append(facts.DeclaredIdentifiers, domain.Identifier{
			Name:     cap.text,
			Kind:     domain.IdentifierKind(cap.name),
			Line:     cap.line,
			Exported: lineIsExported(content, cap.line),
		})
	}

	if facts.Extension == ".ts" || facts.Extension == ".tsx" {
		for _, cap := range runQuery(anyTypeQuery, lang, root, content) {
			if cap.text == "any" {
				facts.AnyTypeLines = append(facts.AnyTypeLines, cap.line)
			}
		}
	}

	return true
}

type capture struct {
	name string
	text string
	line int
}

func runQuery(queryStr string, lang *sitter.Language, root *sitter.Node, content []byte) []capture {
	q, err := sitter.NewQuery([]byte(queryStr), lang)
	if err != nil {
		return nil
	}
	qc := sitter.NewQueryCursor()
	qc.Exec(q, root)

	var out []capture
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range m.Captures {
			if c.Node == nil {
				continue
			}
			out = append(out, capture{
				name: q.CaptureNameForId(c.Index),
				text: string(content[c.Node.StartByte():c.Node.EndByte()]),
				line: int(c.Node.StartPoint().Row) + 1,
			})
		}
	}
	return out
}

// lineIsExported checks whether the declaration's line starts with the export
// keyword rather than walking ancestor nodes for an export_statement.
func lineIsExported(content []byte, line int) bool {
	return strings.HasPrefix(strings.TrimSpace(LineAt(content, line)), "export ")
}
