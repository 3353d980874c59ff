package frontend

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is an input file split into its front matter and body.
type Document struct {
	Brand string
	URL   string
	Data  map[string]any
	Body  string
}

// ParseDocument extracts YAML front matter from content.
// Front matter is only recognized when content starts with a "---" line and
// a closing "---" line follows; anything else is all body, which keeps
// markup containing <hr>-like dashes intact.
func ParseDocument(content string) (*Document, error) {
	content = strings.TrimPrefix(content, "\uFEFF")
	doc := &Document{Data: make(map[string]any), Body: content}

	rest, ok := cutDelimiter(content)
	if !ok {
		return doc, nil
	}
	// a leading newline lets an empty block close on the first line
	rest = "\n" + rest
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return doc, nil
	}

	fm := rest[:end]
	body := rest[end+len("\n---"):]
	// the closing delimiter must end its line
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		if strings.TrimSpace(body[:nl]) != "" {
			return doc, nil
		}
		body = body[nl+1:]
	} else if strings.TrimSpace(body) != "" {
		return doc, nil
	} else {
		body = ""
	}

	var data map[string]any
	if err := yaml.Unmarshal([]byte(fm), &data); err != nil {
		return nil, fmt.Errorf("error parsing front matter: %w", err)
	}
	if data == nil {
		data = make(map[string]any)
	}

	doc.Data = data
	doc.Body = body
	doc.Brand = stringField(data, "brand")
	doc.URL = stringField(data, "url")
	return doc, nil
}

func cutDelimiter(content string) (string, bool) {
	for _, prefix := range []string{"---\r\n", "---\n"} {
		if rest, ok := strings.CutPrefix(content, prefix); ok {
			return strings.ReplaceAll(rest, "\r\n", "\n"), true
		}
	}
	return "", false
}

func stringField(data map[string]any, key string) string {
	switch v := data[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
