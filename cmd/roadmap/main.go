package main

import (
	"os"
	"strings"

	"roadmap-cli/internal/cli"
)

func isWeekRef(s string) bool {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "week-") {
		return false
	}
	num := s[len("week-"):]
	if num == "" {
		return false
	}
	for _, r := range num {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func rewriteDirectWeekLookupArgs(argv []string) []string {
	// Convenience: `roadmap week-7` works like `roadmap weeks show 7`.
	//
	// Cobra treats the first non-flag token as a subcommand, so we rewrite
	// argv before parsing.
	//
	// Users often pass persistent flags first (e.g. `roadmap --dir ... week-7`),
	// so we must find the first positional token, not just argv[1].
	if len(argv) < 2 {
		return argv
	}

	// Minimal persistent-flag awareness. Unknown flags are skipped without
	// trying to consume a value, to avoid eating the week ref.
	valueFlags := map[string]bool{
		"--dir": true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
	}

	rewriteAt := func(i int) []string {
		out := make([]string, 0, len(argv)+2)
		out = append(out, argv[:i]...)
		out = append(out, "weeks", "show")
		out = append(out, strings.TrimPrefix(strings.TrimSpace(argv[i]), "week-"))
		out = append(out, argv[i+1:]...)
		return out
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isWeekRef(argv[i+1]) {
				return rewriteAt(i + 1)
			}
			return argv
		}

		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") {
				continue
			}
			if boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++ // skip value if present
				continue
			}
			continue
		}

		// First positional token.
		if isWeekRef(a) {
			return rewriteAt(i)
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteDirectWeekLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
