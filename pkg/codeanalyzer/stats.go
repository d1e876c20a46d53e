package codeanalyzer

import "strings"

// lineCommentMarker returns the line-comment prefix used for basic
// statistics. Only javascript/typescript differ from the default.
func lineCommentMarker(language string) string {
	switch language {
	case "javascript", "typescript":
		return "//"
	default:
		return "#"
	}
}

// basicStats computes line and character statistics for any source text
func basicStats(code, language string) BasicStats {
	marker := lineCommentMarker(language)
	lines := strings.Split(code, "\n")

	stats := BasicStats{
		TotalLines: len(lines),
		Characters: len(code),
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			stats.BlankLines++
		case strings.HasPrefix(trimmed, marker):
			stats.CommentLines++
		default:
			stats.CodeLines++
		}
	}

	return stats
}
