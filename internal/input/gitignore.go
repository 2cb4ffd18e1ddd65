package input

import (
	"bufio"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ignoreRule is one .gitignore line compiled to an absolute,
// slash-separated doublestar pattern.
type ignoreRule struct {
	glob    string
	negate  bool
	dirOnly bool
}

// ignoreSet accumulates rules while a directory tree is walked. Rules are
// appended root to leaf, so the last matching rule decides.
type ignoreSet struct {
	rules []ignoreRule
}

// newIgnoreSet returns a set holding the rules of every .gitignore above
// root. Rules inside root are added by addDir as the walk reaches them.
func newIgnoreSet(root string) *ignoreSet {
	s := &ignoreSet{}
	abs, err := filepath.Abs(root)
	if err != nil {
		return s
	}
	var dirs []string
	for dir := filepath.Dir(abs); ; dir = filepath.Dir(dir) {
		dirs = append(dirs, dir)
		if filepath.Dir(dir) == dir {
			break
		}
	}
	for i := len(dirs) - 1; i >= 0; i-- {
		s.addDir(dirs[i])
	}
	return s
}

// addDir loads dir/.gitignore if it exists. Unreadable files are skipped.
func (s *ignoreSet) addDir(dir string) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return
	}
	f, err := os.Open(filepath.Join(abs, ".gitignore"))
	if err != nil {
		return
	}
	defer func() { _ = f.Close() }()
	rules, err := parseIgnoreRules(f, filepath.ToSlash(abs))
	if err != nil {
		return
	}
	s.rules = append(s.rules, rules...)
}

// ignores reports whether p is excluded by the rules loaded so far.
func (s *ignoreSet) ignores(p string, isDir bool) bool {
	abs, err := filepath.Abs(p)
	if err != nil {
		return false
	}
	abs = filepath.ToSlash(abs)
	ignored := false
	for _, r := range s.rules {
		if r.dirOnly && !isDir {
			continue
		}
		if ok, err := doublestar.Match(r.glob, abs); err == nil && ok {
			ignored = !r.negate
		}
	}
	return ignored
}

// parseIgnoreRules reads .gitignore lines and compiles them relative to
// base, a slash-separated absolute directory.
//
// A pattern without an inner slash matches at any depth below base. A
// leading backslash escapes '#' and '!', and "\ " keeps a trailing space.
func parseIgnoreRules(r io.Reader, base string) ([]ignoreRule, error) {
	prefix := escapeGlob(base)
	var rules []ignoreRule
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := trimUnescapedSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}

		var rule ignoreRule
		switch {
		case line[0] == '!':
			rule.negate = true
			line = line[1:]
		case strings.HasPrefix(line, `\#`), strings.HasPrefix(line, `\!`):
			line = line[1:]
		}
		if trimmed := strings.TrimSuffix(line, "/"); trimmed != line {
			rule.dirOnly = true
			line = trimmed
		}
		if line == "" {
			continue
		}

		switch {
		case line[0] == '/':
			rule.glob = path.Join(prefix, line[1:])
		case strings.Contains(line, "/"):
			rule.glob = path.Join(prefix, line)
		default:
			rule.glob = path.Join(prefix, "**", line)
		}
		rules = append(rules, rule)
	}
	return rules, sc.Err()
}

// trimUnescapedSpace drops trailing blanks. A blank preceded by a
// backslash survives as a single space.
func trimUnescapedSpace(s string) string {
	t := strings.TrimRight(s, " \t")
	if len(t) < len(s) && strings.HasSuffix(t, `\`) {
		return t[:len(t)-1] + " "
	}
	return t
}

// escapeGlob quotes doublestar metacharacters in a literal path.
func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`*?[]{}\`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
