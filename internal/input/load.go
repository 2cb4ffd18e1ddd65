// Package input turns files, directories, globs and streams into the
// texts analyzed by the metrics package.
package input

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/jeduden/arastat/internal/mdtext"
	"github.com/jeduden/arastat/internal/metrics"
)

// Format names how a source is turned into plain text.
type Format string

const (
	// FormatText passes the content through unchanged.
	FormatText Format = "text"
	// FormatMarkdown keeps the prose of a Markdown document.
	FormatMarkdown Format = "markdown"
	// FormatHTML keeps the visible text of an HTML document.
	FormatHTML Format = "html"
)

// ParseFormat parses a user-provided input format.
func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case FormatText, FormatMarkdown, FormatHTML:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	case "txt":
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown input format %q (supported: text, markdown, html)", raw)
}

// FormatFor picks the format of path from its extension. Unknown
// extensions are read as plain text.
func FormatFor(path string) Format {
	if f, ok := extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return f
	}
	return FormatText
}

// LoadOpts controls text extraction.
type LoadOpts struct {
	// FrontMatter strips YAML front matter from Markdown sources.
	FrontMatter bool
}

// Load reads path and extracts its text according to its extension.
func Load(path string, opts LoadOpts) (metrics.Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return metrics.Input{}, fmt.Errorf("reading %q: %w", path, err)
	}
	return Extract(path, data, FormatFor(path), opts)
}

// LoadReader reads all of r and extracts its text in format f. name is
// used as the source of the result.
func LoadReader(name string, r io.Reader, f Format, opts LoadOpts) (metrics.Input, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return metrics.Input{}, fmt.Errorf("reading %s: %w", name, err)
	}
	return Extract(name, data, f, opts)
}

// Extract turns raw bytes into an analyzable text. The data must be valid
// UTF-8; a leading byte order mark is dropped.
func Extract(name string, data []byte, f Format, opts LoadOpts) (metrics.Input, error) {
	if !utf8.Valid(data) {
		return metrics.Input{}, fmt.Errorf("%s: invalid UTF-8", name)
	}
	data = bytes.TrimPrefix(data, []byte("\ufeff"))

	var text string
	switch f {
	case FormatMarkdown:
		if opts.FrontMatter {
			_, data = StripFrontMatter(data)
		}
		text = mdtext.PlainText(data)
	case FormatHTML:
		t, err := htmlText(data)
		if err != nil {
			return metrics.Input{}, fmt.Errorf("%s: parsing html: %w", name, err)
		}
		text = t
	default:
		text = string(data)
	}
	return metrics.Input{Source: name, Text: text}, nil
}

// blockElements end a line of extracted HTML text.
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "dd": true, "div": true, "dl": true, "dt": true,
	"figcaption": true, "footer": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "header": true, "hr": true,
	"li": true, "main": true, "nav": true, "ol": true, "p": true,
	"pre": true, "section": true, "table": true, "td": true, "th": true,
	"tr": true, "ul": true,
}

// htmlText returns the visible text of an HTML document, one block
// element per line with inner whitespace collapsed.
func htmlText(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	doc.Find("head, script, style, noscript, template").Remove()

	var b strings.Builder
	var walk func(*goquery.Selection)
	walk = func(s *goquery.Selection) {
		s.Contents().Each(func(_ int, c *goquery.Selection) {
			name := goquery.NodeName(c)
			switch {
			case name == "#text":
				b.WriteString(c.Text())
			case strings.HasPrefix(name, "#"):
				// comments and doctype
			default:
				walk(c)
				if blockElements[name] {
					b.WriteByte('\n')
				}
			}
		})
	}
	walk(doc.Selection)

	var lines []string
	for _, line := range strings.Split(b.String(), "\n") {
		if fields := strings.Fields(line); len(fields) > 0 {
			lines = append(lines, strings.Join(fields, " "))
		}
	}
	return strings.Join(lines, "\n"), nil
}

// SplitLines turns every non-blank line of in into its own input, named
// "<source>:<line>".
func SplitLines(in metrics.Input) []metrics.Input {
	var out []metrics.Input
	for i, line := range strings.Split(in.Text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, metrics.Input{
			Source: in.Source + ":" + strconv.Itoa(i+1),
			Text:   line,
		})
	}
	return out
}
