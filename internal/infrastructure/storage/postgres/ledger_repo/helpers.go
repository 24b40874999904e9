package ledger_repo

import "strings"

// columnList joins columns for hand-written SQL where squirrel does not
// fit (DISTINCT ON queries).
func columnList(cols []string) string {
	return strings.Join(cols, ", ")
}
