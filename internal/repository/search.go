package repository

import (
	"fmt"
	"strings"
)

// likeEscaper escapes LIKE special characters to prevent pattern injection.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// searchCondition builds the case-insensitive prefix predicate used by the
// name and title searches. It matches rows whose column either starts with
// the query or contains a word starting with the query, where a word boundary
// is a single space. The query is trimmed first; an empty query yields no
// condition (empty string, nil args, unchanged argIndex).
//
// The returned condition references placeholders $argIndex and $argIndex+1
// and the returned argIndex is advanced past them.
func searchCondition(column, query string, argIndex int) (string, []interface{}, int) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return "", nil, argIndex
	}

	escaped := likeEscaper.Replace(trimmed)
	condition := fmt.Sprintf("(%s ILIKE $%d OR %s ILIKE $%d)", column, argIndex, column, argIndex+1)
	args := []interface{}{escaped + "%", "% " + escaped + "%"}

	return condition, args, argIndex + 2
}
