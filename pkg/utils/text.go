package utils

import "strings"

// Lines splits text into lines the way the text codecs read them.
//
// Lines are separated by "\n"; a trailing "\r" is removed from each line.
// A final line terminator does not produce an extra empty line, so
// "a\nb\n" and "a\nb" both yield ["a", "b"]. Empty input yields no lines.
func Lines(s string) []string {
	if s == "" {
		return nil
	}

	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
