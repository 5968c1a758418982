package text

import (
	"context"
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// RegexRewriter implements Rewriter with literal, regexp and insert-after passes
type RegexRewriter struct{}

// NewRegexRewriter creates a new RegexRewriter
func NewRegexRewriter() *RegexRewriter {
	return &RegexRewriter{}
}

// compiledRule pairs a rule with its compiled regexp, if any
type compiledRule struct {
	Rule
	re *regexp.Regexp
}

// Rewrite implements Rewriter.Rewrite
func (r *RegexRewriter) Rewrite(ctx context.Context, target string, content io.Reader, rules []Rule) (*RewriteResult, error) {
	// compile everything up front so a bad pattern never leaves a half-applied buffer
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}

	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	logger := zerolog.Ctx(ctx)

	result := &RewriteResult{
		OriginalContent: originalContent,
		Passes:          make([]PassResult, 0, len(compiled)),
	}

	current := string(originalContent)
	for _, rule := range compiled {
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("rewrite cancelled before %q: %w", rule.Name, err)
		}

		pass := PassResult{Name: rule.Name, Kind: rule.Kind}

		if !appliesTo(rule.FileFilterGlob, target) {
			pass.Skipped = true
			result.Passes = append(result.Passes, pass)
			logger.Debug().Str("rule", rule.Name).Str("glob", rule.FileFilterGlob).Msg("rule filtered out")
			continue
		}

		var next string
		next, pass = rule.apply(current, pass)

		if next != current {
			result.WasModified = true
		}
		result.ReplacementCount += pass.Matches
		result.Passes = append(result.Passes, pass)

		logger.Debug().
			Str("rule", rule.Name).
			Str("kind", string(rule.Kind)).
			Int("matches", pass.Matches).
			Bool("guarded", pass.Guarded).
			Msg("applied rule")

		current = next
	}

	result.ModifiedContent = []byte(current)
	return result, nil
}

// ValidateRules implements Rewriter.ValidateRules
func (r *RegexRewriter) ValidateRules(rules []Rule) error {
	_, err := compileRules(rules)
	return err
}

// RewriteString applies rules to s and returns the rewritten text
func RewriteString(ctx context.Context, s string, rules []Rule) (string, error) {
	result, err := NewRegexRewriter().Rewrite(ctx, "", strings.NewReader(s), rules)
	if err != nil {
		return "", err
	}
	return string(result.ModifiedContent), nil
}

func compileRules(rules []Rule) ([]compiledRule, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for i, rule := range rules {
		if rule.Pattern == "" {
			return nil, errors.Errorf("rule %d (%s): pattern is required", i, rule.Name)
		}
		if rule.Kind == "" {
			rule.Kind = KindRegex
		}
		if !rule.Kind.Valid() {
			return nil, errors.Errorf("rule %d (%s): unknown kind %q", i, rule.Name, rule.Kind)
		}
		if rule.Name == "" {
			rule.Name = string(rule.Kind) + "-" + strconv.Itoa(i)
		}
		if rule.FileFilterGlob != "" && !doublestar.ValidatePattern(rule.FileFilterGlob) {
			return nil, errors.Errorf("rule %d (%s): invalid file glob %q", i, rule.Name, rule.FileFilterGlob)
		}

		c := compiledRule{Rule: rule}
		if rule.Kind == KindRegex {
			re, err := regexp.Compile(rule.Pattern)
			if err != nil {
				return nil, errors.Errorf("rule %d (%s): compiling pattern: %w", i, rule.Name, err)
			}
			c.re = re
		}
		compiled = append(compiled, c)
	}
	return compiled, nil
}

func (c compiledRule) apply(s string, pass PassResult) (string, PassResult) {
	switch c.Kind {
	case KindLiteral:
		pass.Matches = strings.Count(s, c.Pattern)
		if pass.Matches == 0 {
			return s, pass
		}
		return strings.ReplaceAll(s, c.Pattern, c.Replacement), pass

	case KindInsertAfter:
		out, inserted, guarded := insertAfter(s, c.Pattern, c.Replacement)
		pass.Matches = inserted
		pass.Guarded = inserted == 0 && guarded > 0
		return out, pass

	default:
		pass.Matches = len(c.re.FindAllStringIndex(s, -1))
		if pass.Matches == 0 {
			return s, pass
		}
		if c.Literal {
			return c.re.ReplaceAllLiteralString(s, c.Replacement), pass
		}
		return c.re.ReplaceAllString(s, c.Replacement), pass
	}
}

// insertAfter adds insertion after every anchor not already followed by it
func insertAfter(s, anchor, insertion string) (string, int, int) {
	var b strings.Builder
	inserted, guarded := 0, 0
	rest := s
	for {
		i := strings.Index(rest, anchor)
		if i < 0 {
			break
		}
		end := i + len(anchor)
		b.WriteString(rest[:end])
		rest = rest[end:]
		if strings.HasPrefix(rest, insertion) {
			guarded++
			b.WriteString(insertion)
			rest = rest[len(insertion):]
			continue
		}
		inserted++
		b.WriteString(insertion)
	}
	if inserted == 0 {
		return s, 0, guarded
	}
	b.WriteString(rest)
	return b.String(), inserted, guarded
}

func appliesTo(glob, target string) bool {
	if glob == "" || target == "" {
		return true
	}
	slashed := filepath.ToSlash(target)
	if ok, _ := doublestar.Match(glob, slashed); ok {
		return true
	}
	// a bare pattern like "*.svelte" should still match a nested target
	ok, _ := doublestar.Match(glob, filepath.Base(slashed))
	return ok
}
