package text_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/walteh/rewriterc/pkg/text"
)

func ExampleRegexRewriter_Rewrite() {
	rewriter := text.NewRegexRewriter()

	rules := []text.Rule{
		{
			Name:        "input",
			Kind:        text.KindRegex,
			Pattern:     `<input\s+type="(text|email)"\s+`,
			Replacement: `<Input type="$1" `,
		},
		{
			Name:    "strip-class",
			Kind:    text.KindLiteral,
			Pattern: ` class="border"`,
		},
	}

	content := strings.NewReader(`<input type="text" class="border" /><input type="checkbox" />`)

	result, err := rewriter.Rewrite(context.Background(), "form.svelte", content, rules)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Modified: %s\n", result.ModifiedContent)
	for _, pass := range result.Passes {
		fmt.Printf("%s: %d\n", pass.Name, pass.Matches)
	}

	// Output:
	// Modified: <Input type="text" /><input type="checkbox" />
	// input: 1
	// strip-class: 1
}

func ExampleRegexRewriter_ValidateRules() {
	rewriter := text.NewRegexRewriter()

	rules := []text.Rule{
		{Name: "ok", Kind: text.KindLiteral, Pattern: "foo", Replacement: "bar"},
		{Name: "broken", Kind: text.KindInsertAfter},
	}

	err := rewriter.ValidateRules(rules)
	fmt.Printf("Validation error: %v\n", err)

	// Output:
	// Validation error: rule 1 (broken): pattern is required
}
