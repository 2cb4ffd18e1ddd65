package input

import "bytes"

// StripFrontMatter removes YAML front matter delimited by "---" lines
// from the beginning of source. It returns the front matter block
// (including delimiters) and the remaining content. If no front
// matter is found, prefix is nil and content equals source.
func StripFrontMatter(source []byte) (prefix, content []byte) {
	nl := []byte("\n")
	if bytes.HasPrefix(source, []byte("---\r\n")) {
		nl = []byte("\r\n")
	} else if !bytes.HasPrefix(source, []byte("---\n")) {
		return nil, source
	}

	start := 3 + len(nl)
	delim := append(append([]byte(nil), nl...), "---"...)
	rest := source[start-len(nl):]
	idx := bytes.Index(rest, delim)
	if idx < 0 {
		return nil, source
	}
	end := start - len(nl) + idx + len(delim)
	switch {
	case bytes.HasPrefix(source[end:], nl):
		end += len(nl)
	case end == len(source):
	default:
		return nil, source
	}
	return source[:end], source[end:]
}
