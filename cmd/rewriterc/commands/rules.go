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

package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/walteh/rewriterc/cmd/rewriterc/opts"
	"github.com/walteh/rewriterc/pkg/preset"
)

// NewRulesCmd creates a new rules command
func NewRulesCmd(opts *opts.RootOpts) *cobra.Command {
	var listPresets bool

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the resolved rule sequence",
		Long: `Rules prints the rules run and check would apply, in order:
the preset rules first, then the rules from the config file.
With --presets it lists the registered presets instead.`,
		Args: cobra.NoArgs,
		// listing presets needs no config, so a broken one must not block it
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if listPresets {
				return nil
			}
			return cmd.Parent().PersistentPreRunE(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if listPresets {
				for _, name := range preset.Names() {
					p, err := preset.Get(name)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "%s\t%s\n", color.New(color.Bold).Sprint(p.Name), p.Description)
				}
				return nil
			}

			fmt.Fprintf(out, "%s %s\n", color.New(color.FgMagenta).Sprint("◆"), opts.Config.String())

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for i, r := range opts.Rules {
				filter := r.FileFilterGlob
				if filter == "" {
					filter = "*"
				}
				name := r.Name
				if name == "" {
					name = fmt.Sprintf("%s-%d", r.Kind, i)
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%q\n", i+1, name, r.Kind, filter, r.Pattern)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&listPresets, "presets", false, "list the registered presets")

	return cmd
}
