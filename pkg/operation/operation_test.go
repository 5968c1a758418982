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

package operation

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/rewriterc/pkg/config"
	"github.com/walteh/rewriterc/pkg/log"
	"github.com/walteh/rewriterc/pkg/preset"
	"github.com/walteh/rewriterc/pkg/status"
	"github.com/walteh/rewriterc/pkg/text"
)

const target = "form.svelte"

// 🔧 newTestOptions writes content to a temp target and returns options that point at it
func newTestOptions(t *testing.T, content string, cfg *config.Config) (Options, string, *bytes.Buffer) {
	t.Helper()

	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	dir := t.TempDir()
	if content != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, target), []byte(content), 0644))
	}

	if cfg.Target == "" {
		cfg.Target = target
	}

	zlog := zerolog.Nop()
	out := &bytes.Buffer{}

	return Options{
		Config:   cfg,
		Rewriter: text.NewRegexRewriter(),
		Files:    status.New(dir, &zlog),
		Logger:   log.New(out, zlog),
	}, dir, out
}

func literalConfig(pattern, replacement string) *config.Config {
	return &config.Config{
		Rules: []config.RuleConfig{
			{Name: "rename", Kind: "literal", Pattern: pattern, Replacement: replacement},
		},
	}
}

func TestNewRewriteOperation_Validation(t *testing.T) {
	valid, _, _ := newTestOptions(t, "", literalConfig("a", "b"))

	tests := []struct {
		name        string
		mutate      func(o *Options)
		errContains string
	}{
		{
			name:        "missing_config",
			mutate:      func(o *Options) { o.Config = nil },
			errContains: "config is required",
		},
		{
			name:        "missing_target",
			mutate:      func(o *Options) { o.Config = &config.Config{Rules: o.Config.Rules} },
			errContains: "target is required",
		},
		{
			name:        "missing_rewriter",
			mutate:      func(o *Options) { o.Rewriter = nil },
			errContains: "rewriter is required",
		},
		{
			name:        "missing_files",
			mutate:      func(o *Options) { o.Files = nil },
			errContains: "file manager is required",
		},
		{
			name:        "missing_logger",
			mutate:      func(o *Options) { o.Logger = nil },
			errContains: "logger is required",
		},
		{
			name: "bad_rule",
			mutate: func(o *Options) {
				o.Config = &config.Config{
					Target: target,
					Rules:  []config.RuleConfig{{Name: "bad", Kind: "regex", Pattern: "(unclosed"}},
				}
			},
			errContains: "resolving rules",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := valid
			tt.mutate(&opts)

			_, err := NewRewriteOperation(opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)

			_, err = NewCheckOperation(opts, false)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestNewRewriteOperation_ExplicitRulesWin(t *testing.T) {
	opts, dir, _ := newTestOptions(t, "foo", literalConfig("foo", "config"))
	opts.Rules = []text.Rule{{Name: "explicit", Kind: text.KindLiteral, Pattern: "foo", Replacement: "explicit"}}

	op, err := NewRewriteOperation(opts)
	require.NoError(t, err)
	require.NoError(t, op.Execute(context.Background()))

	got, err := os.ReadFile(filepath.Join(dir, target))
	require.NoError(t, err)
	assert.Equal(t, "explicit", string(got))
}

func TestRewriteOperation_Execute(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		cfg        *config.Config
		want       string
		wantBackup bool
		wantLines  []string
		notLines   []string
	}{
		{
			name:    "rewrites_and_reports_progress",
			content: "foo and foo",
			cfg:     literalConfig("foo", "bar"),
			want:    "bar and bar",
			wantLines: []string{
				"[rewriting form.svelte]",
				"◆ custom • 1 rules",
				"✓ rename",
				"✅ 2 replacements across 1 pass",
				"✅ conversion completed",
				"ℹ️  writing to form.svelte",
				"📝 Rewrote form.svelte (2 replacements)",
				"✅ done",
			},
		},
		{
			name:    "unchanged_still_written",
			content: "nothing here",
			cfg:     literalConfig("foo", "bar"),
			want:    "nothing here",
			wantLines: []string{
				"! rename",
				"(1 unmatched)",
				"✅ conversion completed",
				"ℹ️  writing to form.svelte",
				"👍 Unchanged form.svelte",
				"✅ done",
			},
			notLines: []string{"📝 Rewrote"},
		},
		{
			name:    "backup_keeps_original",
			content: "foo",
			cfg: &config.Config{
				Backup: true,
				Rules:  []config.RuleConfig{{Name: "rename", Kind: "literal", Pattern: "foo", Replacement: "bar"}},
			},
			want:       "bar",
			wantBackup: true,
		},
		{
			name: "preset_converts_imports",
			content: "<script lang=\"ts\">\n\t" + preset.ButtonImport + "\n</script>\n" +
				"<input type=\"email\" bind:value={email} />\n",
			cfg: &config.Config{Preset: preset.ShadcnStaffForm},
			want: "<script lang=\"ts\">\n\t" + preset.ButtonImport + "\n\t" +
				strings.Join(preset.ComponentImports, "\n\t") + "\n\t\n</script>\n" +
				"<Input type=\"email\" bind:value={email} />\n",
			wantLines: []string{"◆ shadcn-staff-form • 6 rules"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, dir, out := newTestOptions(t, tt.content, tt.cfg)

			op, err := NewRewriteOperation(opts)
			require.NoError(t, err)
			assert.Equal(t, "rewrite", op.Name())

			require.NoError(t, op.Execute(context.Background()))

			got, err := os.ReadFile(filepath.Join(dir, target))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))

			backup, err := os.ReadFile(filepath.Join(dir, target+".bak"))
			if tt.wantBackup {
				require.NoError(t, err)
				assert.Equal(t, tt.content, string(backup))
			} else {
				assert.True(t, os.IsNotExist(err), "no backup expected")
			}

			for _, line := range tt.wantLines {
				assert.Contains(t, out.String(), line)
			}
			for _, line := range tt.notLines {
				assert.NotContains(t, out.String(), line)
			}

			info, err := opts.Files.GetFileInfo(context.Background(), target)
			require.NoError(t, err)
			assert.NoError(t, info.Error)
		})
	}
}

func TestRewriteOperation_Idempotent(t *testing.T) {
	content := "<script lang=\"ts\">\n\t" + preset.ButtonImport + "\n</script>\n"
	opts, dir, out := newTestOptions(t, content, &config.Config{Preset: preset.ShadcnStaffForm})

	op, err := NewRewriteOperation(opts)
	require.NoError(t, err)

	require.NoError(t, op.Execute(context.Background()))
	first, err := os.ReadFile(filepath.Join(dir, target))
	require.NoError(t, err)

	out.Reset()
	require.NoError(t, op.Execute(context.Background()))
	second, err := os.ReadFile(filepath.Join(dir, target))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second), "second run should not change the file")
	assert.Contains(t, out.String(), "• component-imports")
	assert.Contains(t, out.String(), "👍 Unchanged form.svelte")
}

func TestRewriteOperation_UnchangedStillWrites(t *testing.T) {
	opts, dir, out := newTestOptions(t, "nothing to convert\n", &config.Config{Preset: preset.ShadcnStaffForm})
	path := filepath.Join(dir, target)

	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(path, old, old))

	op, err := NewRewriteOperation(opts)
	require.NoError(t, err)
	require.NoError(t, op.Execute(context.Background()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().After(old), "target should be rewritten even without matches")

	got := out.String()
	completed := strings.Index(got, "conversion completed")
	writing := strings.Index(got, "writing to form.svelte")
	require.GreaterOrEqual(t, completed, 0)
	require.GreaterOrEqual(t, writing, 0)
	assert.Less(t, completed, writing, "progress lines should be in order")
}

func TestRewriteOperation_UnwritableTarget(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced")
	}

	opts, dir, _ := newTestOptions(t, "nothing to convert\n", literalConfig("foo", "bar"))
	require.NoError(t, os.Chmod(dir, 0555))
	t.Cleanup(func() { os.Chmod(dir, 0755) })

	op, err := NewRewriteOperation(opts)
	require.NoError(t, err)

	err = op.Execute(context.Background())
	require.Error(t, err, "an unwritable target must fail even when nothing matched")
	assert.Contains(t, err.Error(), "writing form.svelte")
}

// 🔧 tornWriteStore leaves partial content behind and then fails the write
type tornWriteStore struct {
	*status.Manager
	dir string
}

func (s *tornWriteStore) WriteFileAtomic(ctx context.Context, path string, content []byte) error {
	if err := os.WriteFile(filepath.Join(s.dir, path), content[:len(content)/2], 0644); err != nil {
		return err
	}
	return assert.AnError
}

func TestRewriteOperation_RestoresBackupOnWriteFailure(t *testing.T) {
	cfg := &config.Config{
		Backup: true,
		Rules:  []config.RuleConfig{{Name: "rename", Kind: "literal", Pattern: "foo", Replacement: "bar"}},
	}
	opts, dir, out := newTestOptions(t, "foo foo foo", cfg)
	opts.Files = &tornWriteStore{Manager: opts.Files.(*status.Manager), dir: dir}

	op, err := NewRewriteOperation(opts)
	require.NoError(t, err)

	err = op.Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)

	assert.Equal(t, "foo foo foo", readTarget(t, dir), "original content should be restored")
	_, err = os.Stat(filepath.Join(dir, target+".bak"))
	assert.True(t, os.IsNotExist(err), "backup should be consumed by the restore")

	assert.Contains(t, out.String(), "❌ writing form.svelte failed")
	assert.Contains(t, out.String(), "restored form.svelte from backup")
	assert.NotContains(t, out.String(), "done")
}

func readTarget(t *testing.T, dir string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(dir, target))
	require.NoError(t, err)
	return string(b)
}

func TestRewriteOperation_MissingTarget(t *testing.T) {
	opts, _, out := newTestOptions(t, "", literalConfig("foo", "bar"))

	op, err := NewRewriteOperation(opts)
	require.NoError(t, err)

	err = op.Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "reading target")
	assert.Contains(t, err.Error(), "form.svelte not found")
	assert.NotContains(t, out.String(), "conversion completed")

	info, err := opts.Files.GetFileInfo(context.Background(), target)
	require.NoError(t, err)
	assert.Error(t, info.Error)
}
