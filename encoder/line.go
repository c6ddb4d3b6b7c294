package encoder

import (
	"strconv"
	"strings"
)

// Normalize splits a raw source line into its mnemonic and operand tokens.
//
// Anything after a '#' is a comment and is discarded, as are the commas
// between operands. A line with no tokens left returns an empty mnemonic.
func Normalize(line string) (mnemonic string, operands []string) {
	line = trimComments(line)
	line = strings.ReplaceAll(line, ",", " ")
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}

func trimComments(line string) string {
	hash := strings.IndexByte(line, '#')
	if hash == -1 {
		return line
	}
	return line[:hash]
}

func partition(s string, sep string) (l, r string) {
	idx := strings.Index(s, sep)
	if idx == -1 {
		return s, ""
	}
	return s[:idx], s[idx+len(sep):]
}

// isMemRef reports whether the token looks like it is trying to be an
// "offset(base)" memory reference, though it may still be malformed.
func isMemRef(tok string) bool {
	return strings.ContainsRune(tok, '(')
}

// parseMemRef splits an "offset(base)" token into its two parts. The
// offset must be a decimal integer, optionally negative, and there must be
// nothing after the closing parenthesis.
func parseMemRef(tok string) (offset int64, base string, ok bool) {
	rawOffset, rest := partition(tok, "(")
	if rest == "" || !strings.HasSuffix(rest, ")") {
		return 0, "", false
	}
	base = rest[:len(rest)-1]
	if base == "" || strings.ContainsAny(base, "()") {
		return 0, "", false
	}
	offset, ok = parseImmediate(rawOffset)
	if !ok {
		return 0, "", false
	}
	return offset, base, true
}

// parseImmediate parses a decimal integer with an optional leading minus
// sign.
func parseImmediate(tok string) (int64, bool) {
	if tok == "" || tok[0] == '+' {
		return 0, false
	}
	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
