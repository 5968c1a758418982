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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/rewriterc/pkg/text"
)

const staffForm = "<script lang=\"ts\">\n" +
	"\timport { goto } from '$app/navigation';\n" +
	"\timport { Button } from '$lib/components/ui/button';\n" +
	"\n" +
	"\tlet formData = $state({ title: '', firstName: '', email: '', notes: '' });\n" +
	"</script>\n" +
	"\n" +
	"<form>\n" +
	"\t<div>\n" +
	"\t\t<label for=\"title\">คำนำหน้า</label>\n" +
	"\t\t<select\n" +
	"\t\t\tbind:value={formData.title}\n" +
	"\t\t\tclass=\"w-full px-3 py-2 border border-border rounded-md bg-background\"\n" +
	"\t\t>\n" +
	"\t\t\t<option value=\"นาย\">นาย</option>\n" +
	"\t\t\t<option value=\"นาง\">นาง</option>\n" +
	"\t\t\t<option value=\"นางสาว\">นางสาว</option>\n" +
	"\t\t\t<option value=\"ดร.\">ดร.</option>\n" +
	"\t\t\t<option value=\"ศ.\">ศ.</option>\n" +
	"\t\t\t<option value=\"รศ.\">รศ.</option>\n" +
	"\t\t\t<option value=\"ผศ.\">ผศ.</option>\n" +
	"\t\t</select>\n" +
	"\t</div>\n" +
	"\t<input type=\"text\" bind:value={formData.firstName} class=\"w-full px-3 py-2 border border-border rounded-md\" />\n" +
	"\t<input type=\"email\" bind:value={formData.email} class=\"w-full px-3 py-2 border border-border rounded-md\" />\n" +
	"\t<input type=\"checkbox\" bind:checked={formData.active} />\n" +
	"\t<input type=\"radio\" name=\"kind\" value=\"a\" />\n" +
	"\t<textarea\n" +
	"\t\tbind:value={formData.notes}\n" +
	"\t\tclass=\"w-full px-3 py-2 border border-border rounded-md\"\n" +
	"\t\trows=\"3\"\n" +
	"\t></textarea>\n" +
	"</form>\n"

const wantTitleSelect = "<Select.Root type=\"single\" bind:value={formData.title}>\n" +
	"\t\t\t\t\t\t\t<Select.Trigger>{formData.title || 'เลือกคำนำหน้า'}</Select.Trigger>\n" +
	"\t\t\t\t\t\t\t<Select.Content>\n" +
	"\t\t\t\t\t\t\t\t<Select.Item value=\"นาย\">นาย</Select.Item>\n" +
	"\t\t\t\t\t\t\t\t<Select.Item value=\"นาง\">นาง</Select.Item>\n" +
	"\t\t\t\t\t\t\t\t<Select.Item value=\"นางสาว\">นางสาว</Select.Item>\n" +
	"\t\t\t\t\t\t\t\t<Select.Item value=\"ดร.\">ดร.</Select.Item>\n" +
	"\t\t\t\t\t\t\t\t<Select.Item value=\"ศ.\">ศ.</Select.Item>\n" +
	"\t\t\t\t\t\t\t\t<Select.Item value=\"รศ.\">รศ.</Select.Item>\n" +
	"\t\t\t\t\t\t\t\t<Select.Item value=\"ผศ.\">ผศ.</Select.Item>\n" +
	"\t\t\t\t\t\t\t</Select.Content>\n" +
	"\t\t\t\t\t\t</Select.Root>"

func TestShadcnStaffForm_EndToEnd(t *testing.T) {
	out, err := Rewrite(context.Background(), staffForm)
	require.NoError(t, err)

	t.Run("imports_follow_anchor_once", func(t *testing.T) {
		wantImports := ButtonImport + "\n" +
			"\timport { Input } from '$lib/components/ui/input';\n" +
			"\timport { Label } from '$lib/components/ui/label';\n" +
			"\timport { Textarea } from '$lib/components/ui/textarea';\n" +
			"\timport * as Select from '$lib/components/ui/select';\n" +
			"\t"
		assert.Contains(t, out, wantImports)
		assert.Equal(t, 1, strings.Count(out, ButtonImport), "anchor should still appear exactly once")
	})

	t.Run("text_inputs_become_components", func(t *testing.T) {
		assert.Contains(t, out, "<Input type=\"text\" bind:value={formData.firstName}  />")
		assert.Contains(t, out, "<Input type=\"email\" bind:value={formData.email}  />")
	})

	t.Run("checkbox_and_radio_untouched", func(t *testing.T) {
		assert.Contains(t, out, "<input type=\"checkbox\" bind:checked={formData.active} />")
		assert.Contains(t, out, "<input type=\"radio\" name=\"kind\" value=\"a\" />")
	})

	t.Run("textarea_collapsed", func(t *testing.T) {
		assert.Contains(t, out, "\t<Textarea bind:value={formData.notes}\n")
		assert.Contains(t, out, "\t\trows=\"3\"\n\t/>\n")
		assert.NotContains(t, out, "</textarea>")
		assert.NotContains(t, out, "<textarea")
	})

	t.Run("legacy_class_removed", func(t *testing.T) {
		assert.NotContains(t, out, LegacyFieldClass)
	})

	t.Run("title_select_replaced", func(t *testing.T) {
		assert.Contains(t, out, "\t\t"+wantTitleSelect+"\n\t</div>")
		assert.NotContains(t, out, "<select")
		assert.NotContains(t, out, "<option")
		for _, opt := range TitleOptions {
			assert.Equal(t, 1, strings.Count(out, `<Select.Item value="`+opt+`">`+opt+`</Select.Item>`), "option %q should appear once", opt)
		}
	})

	t.Run("titles_keep_order", func(t *testing.T) {
		last := -1
		for _, opt := range TitleOptions {
			idx := strings.Index(out, `<Select.Item value="`+opt+`">`)
			require.Greater(t, idx, last, "option %q out of order", opt)
			last = idx
		}
	})
}

func TestShadcnStaffForm_SelectWithLegacyClass(t *testing.T) {
	in := strings.Replace(staffForm,
		"class=\"w-full px-3 py-2 border border-border rounded-md bg-background\"",
		LegacyFieldClass, 1)
	require.NotEqual(t, staffForm, in)

	out, err := Rewrite(context.Background(), in)
	require.NoError(t, err)

	assert.Contains(t, out, "\t\t"+wantTitleSelect+"\n\t</div>", "strip must not break the select match")
	assert.NotContains(t, out, "<select")
}

func TestShadcnStaffForm_CRLF(t *testing.T) {
	in := strings.ReplaceAll(staffForm, "\n", "\r\n")

	out, err := Rewrite(context.Background(), in)
	require.NoError(t, err)

	assert.Contains(t, out, `<Select.Root type="single" bind:value={formData.title}>`)
	assert.NotContains(t, out, "<select")
	assert.NotContains(t, out, "<option")
	assert.Contains(t, out, `<Input type="text" bind:value={formData.firstName}  />`)
}

func TestShadcnStaffForm_Idempotent(t *testing.T) {
	ctx := context.Background()

	once, err := Rewrite(ctx, staffForm)
	require.NoError(t, err)

	twice, err := Rewrite(ctx, once)
	require.NoError(t, err)

	assert.Equal(t, once, twice, "second rewrite should not change anything")
}

func TestShadcnStaffForm_SecondRunReportsGuard(t *testing.T) {
	ctx := context.Background()
	rules := ShadcnStaffFormPreset().Rules

	once, err := Rewrite(ctx, staffForm)
	require.NoError(t, err)

	result, err := text.NewRegexRewriter().Rewrite(ctx, StaffFormTarget, strings.NewReader(once), rules)
	require.NoError(t, err)

	assert.False(t, result.WasModified)
	require.NotEmpty(t, result.Passes)
	assert.True(t, result.Passes[0].Guarded, "import pass should be guarded on re-run")
}

func TestShadcnStaffForm_NoAnchorsIsNoop(t *testing.T) {
	inputs := []string{
		"",
		"plain text with nothing to see",
		"<div class=\"w-full\">\n\t<input type=\"checkbox\" />\n</div>\n",
		"<select bind:value={x}><option value=\"a\">a</option></select>",
		"import { Card } from '$lib/components/ui/card';",
	}

	for _, in := range inputs {
		out, err := Rewrite(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	}
}

func TestShadcnStaffForm_InputTypes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "text", in: `<input type="text" id="a" />`, want: `<Input type="text" id="a" />`},
		{name: "email", in: `<input type="email" id="a" />`, want: `<Input type="email" id="a" />`},
		{name: "tel", in: `<input type="tel" id="a" />`, want: `<Input type="tel" id="a" />`},
		{name: "password", in: `<input type="password" id="a" />`, want: `<Input type="password" id="a" />`},
		{name: "date", in: `<input type="date" id="a" />`, want: `<Input type="date" id="a" />`},
		{name: "multiline", in: "<input\n\t\ttype=\"tel\"\n\t\tid=\"a\" />", want: "<Input type=\"tel\" id=\"a\" />"},
		{name: "checkbox", in: `<input type="checkbox" id="a" />`, want: `<input type="checkbox" id="a" />`},
		{name: "radio", in: `<input type="radio" id="a" />`, want: `<input type="radio" id="a" />`},
		{name: "number", in: `<input type="number" id="a" />`, want: `<input type="number" id="a" />`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Rewrite(context.Background(), tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestShadcnStaffForm_RulesValidate(t *testing.T) {
	p := ShadcnStaffFormPreset()
	require.NoError(t, text.NewRegexRewriter().ValidateRules(p.Rules))
	assert.Equal(t, StaffFormTarget, p.Target)
	assert.Len(t, p.Rules, 6)
}

func TestRegistry(t *testing.T) {
	assert.Contains(t, Names(), ShadcnStaffForm)

	p, err := Get(ShadcnStaffForm)
	require.NoError(t, err)
	assert.Equal(t, ShadcnStaffForm, p.Name)

	// callers may mutate what Get returns
	p.Rules[0].Pattern = "changed"
	again, err := Get(ShadcnStaffForm)
	require.NoError(t, err)
	assert.Equal(t, ButtonImport, again.Rules[0].Pattern)

	_, err = Get("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown preset "nope"`)
}
