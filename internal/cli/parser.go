// Package cli implements the small command grammar the debug REPL
// accepts: CHECK(uuid,mask), STATS(), and EXIT/QUIT.
package cli

import "strings"

// ParseCall parses strings like:
//
//	CHECK(550e8400-e29b-41d4-a716-446655440000,10)
//	STATS()
//	EXIT
//
// returns: cmd, args, ok, errMsg
func ParseCall(line string) (string, []string, bool, string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", nil, false, ""
	}

	// allow EXIT/QUIT without parentheses
	up := strings.ToUpper(line)
	if up == "EXIT" || up == "QUIT" {
		return up, nil, true, ""
	}

	// Must contain (...) form
	open := strings.IndexByte(line, '(')
	close := strings.LastIndexByte(line, ')')
	if open <= 0 || close < open {
		return "", nil, false, "expected format CMD(arg1,arg2,...)"
	}

	cmd := strings.ToUpper(strings.TrimSpace(line[:open]))
	inside := strings.TrimSpace(line[open+1 : close])

	args, err := SplitArgs(inside)
	if err != "" {
		return "", nil, false, err
	}
	return cmd, args, true, ""
}

// SplitArgs splits inside a CMD(...) call by commas. CHECK's UUID and
// mask arguments never contain a comma, so a plain split covers the
// whole grammar; no quoting is needed.
func SplitArgs(s string) ([]string, string) {
	if strings.TrimSpace(s) == "" {
		return []string{}, ""
	}

	parts := strings.Split(s, ",")
	args := make([]string, len(parts))
	for i, p := range parts {
		args[i] = strings.TrimSpace(p)
		if args[i] == "" {
			return nil, "empty argument not allowed"
		}
	}
	return args, ""
}
