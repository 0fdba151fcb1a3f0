package structmap

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeNotStruct    = "not_struct"
	CodeNoSuchKey    = "no_such_key"
	CodeTypeMismatch = "type_mismatch"
	CodeDuplicateKey = "duplicate_key"
	CodeParseError   = "parse_error"
)

// Issue represents a single failure entry.
type Issue struct {
	Path    string // Slash-prefixed field key (for example: /name), or "/" for the whole value.
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: the offending key, expected/got types, etc.
	Cause   error  // Optional: underlying error.
}

// Issues is a collection of failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. no_such_key at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// IsNoSuchKey reports whether err carries at least one no_such_key issue.
func IsNoSuchKey(err error) bool { return hasCode(err, CodeNoSuchKey) }

// IsTypeMismatch reports whether err carries at least one type_mismatch issue.
func IsTypeMismatch(err error) bool { return hasCode(err, CodeTypeMismatch) }

func hasCode(err error, code string) bool {
	iss, ok := AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}
