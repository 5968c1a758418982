/*
Package operation implements the rewrite and check operations of rewriterc.

	+-------------+
	|   Runner    |
	|  (run_id)   |
	+------+------+
	       |
	+------+------+
	|  Operation  |
	| rewrite or  |
	|   check     |
	+------+------+
	       |
	+------+------+     +-------------+
	|    Text     |     |   Status    |
	| (Rewriter)  |     | (file io)   |
	+-------------+     +-------------+

🎯 Purpose:
- Reads the target through the status package
- Runs the ordered rule sequence through a text.Rewriter
- Reports every pass through the log package
- Writes the result back atomically, or diffs it for check

🔄 Flow:
1. Runner attaches a run_id to the context logger
2. Operation reads the target and rewrites it in memory
3. Each pass outcome is logged, then the totals
4. rewrite: backup (optional) and atomic write when content changed
5. check: character diff counts, optional line diff, Pending() for exit codes

🔍 Example:

	op, err := operation.NewRewriteOperation(operation.Options{
		Config:   cfg,
		Rewriter: text.NewRegexRewriter(),
		Files:    status.New(".", zerolog.Ctx(ctx)),
		Logger:   log.New(os.Stdout, *zerolog.Ctx(ctx)),
	})
	if err != nil {
		return err
	}
	return operation.NewRunner(zerolog.Ctx(ctx)).Run(ctx, op)
*/
package operation
