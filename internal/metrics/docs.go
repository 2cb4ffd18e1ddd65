package metrics

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed MET*/README.md
var docsFS embed.FS

// DocInfo holds metadata extracted from a metric README's front matter.
type DocInfo struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Column      string `yaml:"column"`
	Group       string `yaml:"group"`
	Description string `yaml:"description"`
	Content     string `yaml:"-"`
}

// ListDocs returns all embedded metrics docs sorted by ID.
func ListDocs() ([]DocInfo, error) {
	return listDocsFromFS(docsFS)
}

// LookupDoc finds a metric doc by ID (e.g. MET001) or name (e.g. yules-k).
func LookupDoc(query string) (string, error) {
	return lookupDocFromFS(docsFS, query)
}

func listDocsFromFS(fsys fs.FS) ([]DocInfo, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading metrics directory: %w", err)
	}

	var docs []DocInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		path := entry.Name() + "/README.md"
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			continue
		}

		info, err := parseFrontMatter(string(data))
		if err != nil {
			continue
		}
		info.Content = string(data)
		docs = append(docs, info)
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].ID < docs[j].ID
	})
	return docs, nil
}

func lookupDocFromFS(fsys fs.FS, query string) (string, error) {
	docs, err := listDocsFromFS(fsys)
	if err != nil {
		return "", err
	}

	q := strings.ToUpper(strings.TrimSpace(query))
	qName := strings.ToLower(strings.TrimSpace(query))
	for _, d := range docs {
		if strings.ToUpper(d.ID) == q || d.Name == qName {
			return d.Content, nil
		}
	}

	return "", fmt.Errorf("unknown metric %q", query)
}

// parseFrontMatter extracts the metric metadata from YAML front matter.
func parseFrontMatter(content string) (DocInfo, error) {
	rest, ok := strings.CutPrefix(content, "---\n")
	if !ok {
		return DocInfo{}, fmt.Errorf("missing front matter")
	}
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return DocInfo{}, fmt.Errorf("unterminated front matter")
	}

	var info DocInfo
	if err := yaml.Unmarshal([]byte(rest[:end]), &info); err != nil {
		return DocInfo{}, fmt.Errorf("parsing front matter: %w", err)
	}
	if info.ID == "" {
		return DocInfo{}, fmt.Errorf("front matter missing id")
	}
	if info.Name == "" {
		return DocInfo{}, fmt.Errorf("front matter missing name")
	}
	return info, nil
}
