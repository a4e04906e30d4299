package domain

import "fmt"

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Finding is one reported rule violation. Message must be self-contained:
// it names the offending construct so the caller never needs the rule id
// to understand what went wrong.
type Finding struct {
	RuleID   string   `json:"rule_id"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	File     string   `json:"file"`
	Line     int      `json:"line"`             // 1-based
	Column   int      `json:"column,omitempty"` // 1-based, 0 when unknown (text-heuristic rules)
	Context  string   `json:"context,omitempty"`
	Fix      string   `json:"fix,omitempty"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%s:%d [%s] %s", f.File, f.Line, f.RuleID, f.Message)
}

type IdentifierKind string

const (
	KindVariable  IdentifierKind = "variable"
	KindFunction  IdentifierKind = "function"
	KindClass     IdentifierKind = "class"
	KindInterface IdentifierKind = "interface"
	KindType      IdentifierKind = "type"
	KindParameter IdentifierKind = "parameter"
)

type Identifier struct {
	Name     string         `json:"name"`
	Kind     IdentifierKind `json:"kind"`
	Line     int            `json:"line"`
	Exported bool           `json:"exported"`
}

// FileFacts is the analyzer's extracted summary of one file, the input to
// every rule. Built fresh per scan invocation; rules must not mutate it.
type FileFacts struct {
	Path            string
	Extension       string
	LineCount       int
	IsComponentFile bool

	HasClientDirective bool
	HasServerDirective bool

	UsedHooks         map[string]bool
	UsedBrowserAPIs   map[string]bool
	EventHandlerNames map[string]bool

	ImportTargets       []string
	DeclaredIdentifiers []Identifier

	FetchCallCount   int
	AwaitedFetches   int
	UsesCacheWrapper bool
	UsesPromiseAll   bool

	// AnyTypeLines are the 1-based lines carrying a literal `any` type
	// annotation. Only populated when a full parse succeeded.
	AnyTypeLines []int

	// Parsed is false when the syntax tree was unavailable and only the
	// text heuristics ran.
	Parsed bool
}

// NeedsClient reports whether the file references any client-only feature
// (interactive hooks, browser globals, JSX event handlers).
func (ff *FileFacts) NeedsClient() bool {
	for h := range ff.UsedHooks {
		if ClientOnlyHooks[h] {
			return true
		}
	}
	return len(ff.UsedBrowserAPIs) > 0 || len(ff.EventHandlerNames) > 0
}

// ClientOnlyHooks are framework hooks that only run in the interactive
// runtime. A file calling any of these must opt in with the client directive.
var ClientOnlyHooks = map[string]bool{
	"useState":             true,
	"useEffect":            true,
	"useLayoutEffect":      true,
	"useReducer":           true,
	"useRef":               true,
	"useContext":           true,
	"useCallback":          true,
	"useMemo":              true,
	"useTransition":        true,
	"useDeferredValue":     true,
	"useSyncExternalStore": true,
	"useRouter":            true,
	"useSearchParams":      true,
	"usePathname":          true,
}

type ComponentStats struct {
	ClientComponents int `json:"client_components"`
	ServerComponents int `json:"server_components"`
	UsingCache       int `json:"using_cache"`
	Oversized        int `json:"oversized"`
}

type IssueCount struct {
	RuleID string `json:"rule_id"`
	Count  int    `json:"count"`
}

// ValidationReport is the aggregate result for a directory or single file.
// Success is derived: true iff Errors is empty, regardless of warnings.
type ValidationReport struct {
	Success          bool           `json:"success"`
	Errors           []Finding      `json:"errors"`
	Warnings         []Finding      `json:"warnings"`
	FilesChecked     int            `json:"files_checked"`
	ComponentStats   ComponentStats `json:"component_stats"`
	MostCommonIssues []IssueCount   `json:"most_common_issues"`
	Summary          string         `json:"summary"`
}

// Recommendation is the human-readable remediation for one finding.
type Recommendation struct {
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	FixText  string   `json:"fix_text,omitempty"`
	DocLinks []string `json:"doc_links,omitempty"`
}
