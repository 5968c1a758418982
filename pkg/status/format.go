package status

import (
	"fmt"

	"github.com/walteh/rewriterc/pkg/text"
)

// FileFormatter defines how rewrite results should be formatted
type FileFormatter interface {
	// FormatFileOperation formats the outcome for one file
	FormatFileOperation(path string, status FileStatus, replacements int) string

	// FormatSummary formats totals for a whole rewrite
	FormatSummary(result *text.RewriteResult) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatFileOperation formats a file status message with emojis
func (f *DefaultFileFormatter) FormatFileOperation(path string, status FileStatus, replacements int) string {
	switch status {
	case StatusModified:
		return fmt.Sprintf("📝 Rewrote %s (%s)", path, plural(replacements, "replacement"))
	case StatusUnchanged:
		return fmt.Sprintf("👍 Unchanged %s", path)
	default:
		return fmt.Sprintf("❓ Unknown %s", path)
	}
}

// FormatSummary formats totals with the number of passes that matched nothing
func (f *DefaultFileFormatter) FormatSummary(result *text.RewriteResult) string {
	if result == nil {
		return ""
	}
	unmatched := len(result.Unmatched())
	msg := fmt.Sprintf("%s across %s", plural(result.ReplacementCount, "replacement"), plural(len(result.Passes), "pass"))
	if unmatched > 0 {
		return fmt.Sprintf("⚠️  %s (%d unmatched)", msg, unmatched)
	}
	return fmt.Sprintf("✅ %s", msg)
}

// FormatError formats an error message with emoji
func (f *DefaultFileFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	switch noun {
	case "match", "pass":
		return fmt.Sprintf("%d %ses", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
