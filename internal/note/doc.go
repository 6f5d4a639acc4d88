package note

import (
	"encoding/json"
	"strings"
)

// Content versions. Version 1 is the legacy plain-text encoding, version 2 is
// the structured document JSON the editor works with.
const (
	VersionLegacy     = 1
	VersionStructured = 2
)

// Doc is the root of a structured rich-text document. The editor owns the
// full node vocabulary; this package only needs enough of the shape to detect
// documents and build minimal ones from plain text.
type Doc struct {
	Type    string `json:"type"`
	Content []Node `json:"content,omitempty"`
}

type Node struct {
	Type    string `json:"type"`
	Text    string `json:"text,omitempty"`
	Content []Node `json:"content,omitempty"`
}

// EmptyDoc returns the serialized form of a document with one empty
// paragraph, the content of a freshly created note.
func EmptyDoc() string {
	return mustEncode(Doc{Type: "doc", Content: []Node{{Type: "paragraph"}}})
}

// FromPlainText converts legacy plain-text content into a minimal structured
// document: one paragraph per input line, blank lines become empty
// paragraphs.
func FromPlainText(text string) string {
	if text == "" {
		return EmptyDoc()
	}
	lines := strings.Split(text, "\n")
	paragraphs := make([]Node, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			paragraphs = append(paragraphs, Node{Type: "paragraph"})
			continue
		}
		paragraphs = append(paragraphs, Node{
			Type:    "paragraph",
			Content: []Node{{Type: "text", Text: line}},
		})
	}
	return mustEncode(Doc{Type: "doc", Content: paragraphs})
}

// IsDoc reports whether content already parses as a structured document.
func IsDoc(content string) bool {
	var d Doc
	if err := json.Unmarshal([]byte(content), &d); err != nil {
		return false
	}
	return d.Type == "doc"
}

// PlainText projects a document back to plain text, one line per paragraph.
// Used by surfaces that cannot render rich text.
func PlainText(content string) string {
	var d Doc
	if err := json.Unmarshal([]byte(content), &d); err != nil {
		return content
	}
	if d.Type != "doc" {
		return content
	}
	lines := make([]string, 0, len(d.Content))
	for _, p := range d.Content {
		lines = append(lines, nodeText(p))
	}
	return strings.Join(lines, "\n")
}

func nodeText(n Node) string {
	if n.Text != "" {
		return n.Text
	}
	var b strings.Builder
	for _, child := range n.Content {
		b.WriteString(nodeText(child))
	}
	return b.String()
}

// Upgrade stamps a note to the structured encoding. Content that already
// parses as a document is kept as is; anything else is treated as legacy
// plain text and converted. Upgrading an already upgraded note is a no-op.
func Upgrade(n Note) Note {
	if n.ContentVersion == VersionStructured {
		return n
	}
	if !IsDoc(n.Content) {
		n.Content = FromPlainText(n.Content)
	}
	n.ContentVersion = VersionStructured
	return n
}

// Migrate upgrades every note in the collection. Idempotent.
func Migrate(notes []Note) []Note {
	out := make([]Note, len(notes))
	for i, n := range notes {
		out[i] = Upgrade(n)
	}
	return out
}

func mustEncode(d Doc) string {
	raw, err := json.Marshal(d)
	if err != nil {
		// Doc contains only strings and slices; Marshal cannot fail.
		panic(err)
	}
	return string(raw)
}
