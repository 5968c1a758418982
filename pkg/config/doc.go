/*
Package config manages configuration parsing and validation for rewriterc.

	            +-------------+
	            |   Config    |
	            |  (Target,   |
	            |   Rules)    |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   YAML   | |   HCL    | |   JSON   |
	|  Parser  | |  Parser  | |  Parser  |
	+----------+ +----------+ +----------+

🎯 Purpose:
- Loads the target path, preset name and custom rules from a file
- Validates rules before any file is touched
- Resolves a preset plus custom rules into one ordered rule sequence

🔄 Flow:
1. Reads configuration from file (or uses Default)
2. Picks a parser by file extension
3. Validates and fills defaults (regex kind, preset target)
4. ResolveRules hands the ordered rules to the rewriter

🔍 Example:

	cfg, err := config.Load(ctx, ".rewriterc.yaml")
	if err != nil {
		return err
	}

	rules, err := cfg.ResolveRules()
	if err != nil {
		return err
	}

A YAML config:

	target: frontend-school/src/routes/(app)/staff/new/+page.svelte
	preset: shadcn-staff-form
	backup: true
	rules:
	  - name: strip-focus-ring
	    kind: literal
	    pattern: ' focus:ring-2'
*/
package config
