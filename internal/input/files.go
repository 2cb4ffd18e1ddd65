package input

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// extensions lists the file types picked up when walking directories and
// expanding globs.
var extensions = map[string]Format{
	".txt":      FormatText,
	".text":     FormatText,
	".md":       FormatMarkdown,
	".markdown": FormatMarkdown,
	".html":     FormatHTML,
	".htm":      FormatHTML,
}

// isSupported returns true if the file extension is a known text format.
func isSupported(path string) bool {
	_, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// hasGlobChars returns true if the string contains glob meta-characters.
func hasGlobChars(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}

// ResolveOpts controls how file resolution behaves.
type ResolveOpts struct {
	// UseGitignore enables filtering of walked directories by .gitignore
	// rules. Explicitly named file paths are never filtered by gitignore.
	UseGitignore bool

	// Ignore reports whether a discovered path should be skipped.
	// Explicitly named file paths are never filtered.
	Ignore func(path string) bool
}

// DefaultResolveOpts returns options with defaults applied.
func DefaultResolveOpts() ResolveOpts {
	return ResolveOpts{UseGitignore: true}
}

func (o ResolveOpts) ignored(path string) bool {
	return o.Ignore != nil && o.Ignore(path)
}

// ResolveFiles takes positional arguments and returns deduplicated, sorted
// file paths. It supports individual files, directories (recursive, known
// extensions only), and doublestar glob patterns such as "corpus/**/*.md".
// Returns an error for nonexistent paths that are not glob patterns.
func ResolveFiles(args []string, opts ResolveOpts) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	addFile := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if !seen[abs] {
			seen[abs] = true
			result = append(result, path)
		}
	}

	for _, arg := range args {
		if err := resolveArg(arg, opts, addFile); err != nil {
			return nil, err
		}
	}

	sort.Strings(result)
	return result, nil
}

// resolveArg resolves a single argument (glob, directory, or file) and calls
// addFile for each text file found.
func resolveArg(arg string, opts ResolveOpts, addFile func(string)) error {
	if hasGlobChars(arg) {
		return resolveGlob(arg, opts, addFile)
	}

	info, err := os.Stat(arg)
	if err != nil {
		return fmt.Errorf("cannot access %q: %w", arg, err)
	}

	if info.IsDir() {
		return addDirFiles(arg, opts, addFile)
	}

	addFile(arg)
	return nil
}

// resolveGlob expands a glob pattern and adds matching text files.
func resolveGlob(pattern string, opts ResolveOpts, addFile func(string)) error {
	if !doublestar.ValidatePathPattern(pattern) {
		return fmt.Errorf("invalid glob pattern %q", pattern)
	}
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return fmt.Errorf("expanding glob pattern %q: %w", pattern, err)
	}
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		if info.IsDir() {
			if err := addDirFiles(m, opts, addFile); err != nil {
				return err
			}
		} else if isSupported(m) && !opts.ignored(m) {
			addFile(m)
		}
	}
	return nil
}

// addDirFiles walks a directory and adds all text files found.
func addDirFiles(dir string, opts ResolveOpts, addFile func(string)) error {
	files, err := walkDir(dir, opts)
	if err != nil {
		return err
	}
	for _, f := range files {
		addFile(f)
	}
	return nil
}

// walkDir recursively walks a directory and returns all text files not
// excluded by .gitignore rules or the ignore callback. Each directory's
// .gitignore is loaded when the walk enters it.
func walkDir(dir string, opts ResolveOpts) ([]string, error) {
	var ignore *ignoreSet
	if opts.UseGitignore {
		ignore = newIgnoreSet(dir)
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		skip := opts.ignored(path) || (ignore != nil && ignore.ignores(path, d.IsDir()))
		if skip && path != dir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if ignore != nil {
				ignore.addDir(path)
			}
			return nil
		}
		if isSupported(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %q: %w", dir, err)
	}
	return files, nil
}
