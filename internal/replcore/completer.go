package replcore

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/gYonder/posh/internal/builtins"
	"github.com/gYonder/posh/internal/session"
)

// completer provides tab completion for the shell: builtin and PATH
// executable names for the first word, filesystem entries for every
// word after that.
type completer struct {
	sess *session.Session
}

// NewCompleter builds a readline.AutoCompleter bound to sess.
func NewCompleter(sess *session.Session) readline.AutoCompleter {
	return &completer{sess: sess}
}

func (c *completer) Do(line []rune, pos int) (newLine [][]rune, length int) {
	lineStr := string(line[:pos])
	words := strings.Fields(lineStr)

	if len(words) == 0 || (len(words) == 1 && !strings.HasSuffix(lineStr, " ")) {
		prefix := ""
		if len(words) == 1 {
			prefix = words[0]
		}
		return c.completeCommand(prefix)
	}

	lastSpace := strings.LastIndex(lineStr, " ")
	partial := ""
	if lastSpace < len(lineStr)-1 {
		partial = lineStr[lastSpace+1:]
	}
	return c.completePath(partial)
}

func (c *completer) completeCommand(prefix string) ([][]rune, int) {
	seen := make(map[string]bool)
	var matches []string
	for _, name := range builtins.Names() {
		if strings.HasPrefix(name, prefix) {
			matches = append(matches, name)
			seen[name] = true
		}
	}
	for _, name := range executablesOnPath(prefix) {
		if !seen[name] {
			matches = append(matches, name)
			seen[name] = true
		}
	}
	sort.Strings(matches)

	result := make([][]rune, len(matches))
	for i, m := range matches {
		result[i] = []rune(m[len(prefix):] + " ")
	}
	return result, len(prefix)
}

func (c *completer) completePath(partial string) ([][]rune, int) {
	var searchDir, searchPrefix string
	switch {
	case partial == "":
		searchDir = c.sess.CWD
	case strings.HasSuffix(partial, "/"):
		searchDir = c.resolve(partial)
	case strings.Contains(partial, "/"):
		searchDir = c.resolve(filepath.Dir(partial))
		searchPrefix = filepath.Base(partial)
	default:
		searchDir = c.sess.CWD
		searchPrefix = partial
	}

	entries, err := os.ReadDir(searchDir)
	if err != nil {
		return nil, 0
	}

	var matches []string
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, searchPrefix) {
			continue
		}
		if e.IsDir() {
			matches = append(matches, name+"/")
		} else {
			matches = append(matches, name)
		}
	}
	sort.Strings(matches)

	result := make([][]rune, len(matches))
	for i, m := range matches {
		suffix := m[len(searchPrefix):]
		if !strings.HasSuffix(suffix, "/") {
			suffix += " "
		}
		result[i] = []rune(suffix)
	}
	return result, len(searchPrefix)
}

func (c *completer) resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(c.sess.CWD, path))
}

func executablesOnPath(prefix string) []string {
	pathEnv := os.Getenv("PATH")
	if pathEnv == "" {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, dir := range strings.Split(pathEnv, ":") {
		if dir == "" {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			name := e.Name()
			if !strings.HasPrefix(name, prefix) || seen[name] {
				continue
			}
			info, err := e.Info()
			if err != nil || info.IsDir() || info.Mode()&0o111 == 0 {
				continue
			}
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}
