/*
Package status manages file storage and status reporting for rewriterc.

	            +-------------+
	            |   Status    |
	            |  (Storage)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |                         |
	+-----+------+           +------+-----+
	|   Files    |           | Formatter  |
	| (atomic io)|           | (UI/UX)    |
	+------------+           +------------+

🎯 Purpose:
- Reads the target and writes it back through temp file + rename
- Keeps an optional .bak copy and can restore it
- Tracks before/after checksums for each rewritten file
- Formats pass, file and summary lines for the console

🔄 Flow:
1. Operation reads the target through the Manager
2. Rewriter produces new content and per-pass results
3. Manager tracks the outcome and writes atomically
4. Formatter turns results into user-facing lines

🔍 Example:

	mgr := status.New(".", zerolog.Ctx(ctx))

	content, err := mgr.ReadFile(ctx, target)
	// ... rewrite ...
	if err := mgr.WriteFileAtomic(ctx, target, result.ModifiedContent); err != nil {
		return err
	}
	info := mgr.Track(ctx, target, result.OriginalContent, result.ModifiedContent, result.ReplacementCount)
*/
package status
