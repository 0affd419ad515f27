package env

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
)

// Load reads each file (e.g. ".env") in order and sets environment variables from
// KEY=VALUE lines. Variables already present in the process environment win, so a shell
// export overrides the file. Missing files are skipped.
func Load(paths ...string) error {
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return err
		}
		vars, err := Parse(f)
		f.Close()
		if err != nil {
			return err
		}
		for _, kv := range vars {
			if _, set := os.LookupEnv(kv[0]); set {
				continue
			}
			_ = os.Setenv(kv[0], kv[1])
		}
	}
	return nil
}

// Parse returns the KEY=VALUE pairs in r in file order. Empty lines, lines starting with #
// and lines without a key are skipped; an optional "export " prefix and surrounding
// quotes are removed.
func Parse(r io.Reader) ([][2]string, error) {
	var out [][2]string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		i := strings.Index(line, "=")
		if i <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:i])
		value := strings.TrimSpace(line[i+1:])
		if key == "" {
			continue
		}
		if len(value) >= 2 && (value[0] == '"' && value[len(value)-1] == '"' || value[0] == '\'' && value[len(value)-1] == '\'') {
			value = value[1 : len(value)-1]
		}
		out = append(out, [2]string{key, value})
	}
	return out, scanner.Err()
}
