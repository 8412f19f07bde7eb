// Package util provides argument helpers shared by the command handlers and
// the CLI.
package util

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// TrimQuotes removes leading and trailing double quotes from a string.
func TrimQuotes(s string) string {
	return strings.Trim(s, `"`)
}

// FixEscapeQuotes replaces escaped double quotes ("") with single double quotes (").
func FixEscapeQuotes(s string) string {
	return strings.ReplaceAll(s, `""`, `"`)
}

// CleanArg removes surrounding quotes and whitespace from an argument as a
// host scripting bridge sends it.
func CleanArg(s string) string {
	return FixEscapeQuotes(TrimQuotes(strings.TrimSpace(s)))
}

// CleanArgs applies CleanArg to every element in place and returns args.
func CleanArgs(args []string) []string {
	for i, v := range args {
		args[i] = CleanArg(v)
	}
	return args
}

// ParseFloat parses one numeric argument; name is used in the error.
func ParseFloat(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("argument %s: %q is not a number", name, s)
	}
	return v, nil
}

// ParseInt parses one integer argument; name is used in the error.
func ParseInt(name, s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("argument %s: %q is not an integer", name, s)
	}
	return v, nil
}

// ParseFloats parses len(names) consecutive arguments starting at args[0].
func ParseFloats(args []string, names ...string) ([]float64, error) {
	if len(args) < len(names) {
		return nil, fmt.Errorf("expected %d numbers (%s), got %d", len(names), strings.Join(names, " "), len(args))
	}
	out := make([]float64, len(names))
	for i, name := range names {
		v, err := ParseFloat(name, args[i])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// SplitLine splits a command line into fields on whitespace. Double-quoted
// sections are kept together with the quotes removed, so names may contain
// spaces. An unterminated quote runs to the end of the line.
func SplitLine(line string) []string {
	var (
		fields  []string
		cur     strings.Builder
		inQuote bool
		started bool
	)
	flush := func() {
		if started {
			fields = append(fields, cur.String())
		}
		cur.Reset()
		started = false
	}
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
			started = true
		case unicode.IsSpace(r) && !inQuote:
			flush()
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	flush()
	return fields
}
