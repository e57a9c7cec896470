package parser

import (
	"fmt"
	"strings"

	"github.com/buildkite/shellwords"
)

// Split breaks a console line into words using POSIX shell quoting, so
// `spawn tree "Silver Lime" Alice` yields four words. A leading slash on the
// first word is dropped.
func Split(line string) ([]string, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}
	words, err := shellwords.SplitPosix(line)
	if err != nil {
		return nil, fmt.Errorf("split %q: %w", line, err)
	}
	if len(words) > 0 {
		words[0] = strings.TrimPrefix(words[0], "/")
		if words[0] == "" {
			words = words[1:]
		}
	}
	return words, nil
}
