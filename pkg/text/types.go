package text

import (
	"context"
	"io"
)

// RuleKind selects how a Rule matches and rewrites the buffer
type RuleKind string

const (
	// KindLiteral replaces every occurrence of Pattern with Replacement
	KindLiteral RuleKind = "literal"

	// KindRegex replaces every match of the Pattern regexp; Replacement may
	// reference capture groups as $1 or ${name} unless Literal is set
	KindRegex RuleKind = "regex"

	// KindInsertAfter inserts Replacement right after every occurrence of the
	// Pattern anchor, unless the anchor is already followed by it
	KindInsertAfter RuleKind = "insert_after"
)

// Valid reports whether k is a known rule kind
func (k RuleKind) Valid() bool {
	switch k {
	case KindLiteral, KindRegex, KindInsertAfter:
		return true
	}
	return false
}

// Rule defines a single rewrite pass
type Rule struct {
	// Name identifies the pass in logs and reports
	Name string

	// Kind selects the matching strategy
	Kind RuleKind

	// Pattern is the literal text, regexp or anchor to match
	Pattern string

	// Replacement is the replacement text, template, or inserted block
	Replacement string

	// Literal disables $-expansion of Replacement for regex rules
	Literal bool

	// FileFilterGlob optionally restricts the rule to targets matching a doublestar glob
	FileFilterGlob string
}

// PassResult reports what a single rule did to the buffer
type PassResult struct {
	Name    string
	Kind    RuleKind
	Matches int

	// Skipped is set when the rule's glob did not match the target
	Skipped bool

	// Guarded is set when an insert was already present and the pass did nothing
	Guarded bool
}

// RewriteResult contains the results of a rewrite
type RewriteResult struct {
	// WasModified indicates if any pass changed the buffer
	WasModified bool

	// ReplacementCount is the total number of matches across all passes
	ReplacementCount int

	// OriginalContent is the content before any pass
	OriginalContent []byte

	// ModifiedContent is the content after the last pass
	ModifiedContent []byte

	// Passes holds one entry per rule, in application order
	Passes []PassResult
}

// Unmatched returns the names of passes that ran and matched nothing
func (r *RewriteResult) Unmatched() []string {
	var names []string
	for _, p := range r.Passes {
		if !p.Skipped && !p.Guarded && p.Matches == 0 {
			names = append(names, p.Name)
		}
	}
	return names
}

// Rewriter defines the interface for rule-driven text rewriting
type Rewriter interface {
	// Rewrite applies rules in order to the content read from r. target is the
	// path the content belongs to and is only used for rule glob filters; an
	// empty target applies every rule.
	Rewrite(ctx context.Context, target string, r io.Reader, rules []Rule) (*RewriteResult, error)

	// ValidateRules checks that all rules are well formed
	ValidateRules(rules []Rule) error
}
