// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package preset

import (
	"context"
	"regexp"
	"strings"

	"github.com/walteh/rewriterc/pkg/text"
)

const (
	// ShadcnStaffForm converts the staff/new form to shadcn-svelte components
	ShadcnStaffForm = "shadcn-staff-form"

	// StaffFormTarget is the form the shadcn-staff-form preset was written for
	StaffFormTarget = "frontend-school/src/routes/(app)/staff/new/+page.svelte"

	// ButtonImport is the anchor the component imports are inserted after
	ButtonImport = "import { Button } from '$lib/components/ui/button';"

	// LegacyFieldClass is the tailwind class string the components make redundant
	LegacyFieldClass = `class="w-full px-3 py-2 border border-border rounded-md"`

	// TitlePlaceholder is shown by the title trigger when nothing is selected
	TitlePlaceholder = "เลือกคำนำหน้า"
)

// ComponentImports are inserted after ButtonImport, one per line
var ComponentImports = []string{
	"import { Input } from '$lib/components/ui/input';",
	"import { Label } from '$lib/components/ui/label';",
	"import { Textarea } from '$lib/components/ui/textarea';",
	"import * as Select from '$lib/components/ui/select';",
}

// InputTypes are the <input> types rewritten to <Input>; checkbox and radio stay native
var InputTypes = []string{"text", "email", "tel", "password", "date"}

// TitleOptions are the title <select> values, in display order
var TitleOptions = []string{"นาย", "นาง", "นางสาว", "ดร.", "ศ.", "รศ.", "ผศ."}

func init() {
	Register(ShadcnStaffForm, ShadcnStaffFormPreset)
}

// 🎨 ShadcnStaffFormPreset returns the staff form conversion rules
func ShadcnStaffFormPreset() Preset {
	return Preset{
		Name:        ShadcnStaffForm,
		Description: "swap native form elements in the staff/new form for shadcn-svelte components",
		Target:      StaffFormTarget,
		Rules: []text.Rule{
			{
				Name:        "component-imports",
				Kind:        text.KindInsertAfter,
				Pattern:     ButtonImport,
				Replacement: "\n\t" + strings.Join(ComponentImports, "\n\t") + "\n\t",
			},
			{
				Name:        "input",
				Kind:        text.KindRegex,
				Pattern:     `<input\s+type="(` + strings.Join(InputTypes, "|") + `)"\s+`,
				Replacement: `<Input type="${1}" `,
			},
			{
				Name:        "textarea-open",
				Kind:        text.KindRegex,
				Pattern:     `<textarea\s+`,
				Replacement: "<Textarea ",
			},
			{
				Name:        "textarea-close",
				Kind:        text.KindLiteral,
				Pattern:     "></textarea>",
				Replacement: "/>",
			},
			{
				Name:    "legacy-field-class",
				Kind:    text.KindLiteral,
				Pattern: LegacyFieldClass,
			},
			{
				Name:        "title-select",
				Kind:        text.KindRegex,
				Pattern:     titleSelectPattern(TitleOptions),
				Replacement: titleSelectReplacement(TitleOptions),
				Literal:     true,
			},
		},
	}
}

// Rewrite applies the shadcn-staff-form rules to s
func Rewrite(ctx context.Context, s string) (string, error) {
	return text.RewriteString(ctx, s, ShadcnStaffFormPreset().Rules)
}

// titleSelectPattern matches the native title <select>, one option per line,
// with LF or CRLF line endings
func titleSelectPattern(options []string) string {
	var b strings.Builder
	// the class attribute is optional so the legacy-field-class strip can run first
	b.WriteString(`<select\s+bind:value=\{formData\.title\}\s*(?:class="[^"]*"\s*)?>\r?\n`)
	for _, opt := range options {
		q := regexp.QuoteMeta(opt)
		b.WriteString(`\s*<option value="` + q + `">` + q + `</option>\r?\n`)
	}
	b.WriteString(`\s*</select>`)
	return b.String()
}

func titleSelectReplacement(options []string) string {
	indent := func(n int) string { return strings.Repeat("\t", n) }

	var b strings.Builder
	b.WriteString(`<Select.Root type="single" bind:value={formData.title}>` + "\n")
	b.WriteString(indent(7) + `<Select.Trigger>{formData.title || '` + TitlePlaceholder + `'}</Select.Trigger>` + "\n")
	b.WriteString(indent(7) + "<Select.Content>\n")
	for _, opt := range options {
		b.WriteString(indent(8) + `<Select.Item value="` + opt + `">` + opt + "</Select.Item>\n")
	}
	b.WriteString(indent(7) + "</Select.Content>\n")
	b.WriteString(indent(6) + "</Select.Root>")
	return b.String()
}
