// Package highlight finds vocabulary words in the visible text of an HTML
// tree, wraps each match in a styled mark element, and removes those marks
// again without changing the document's text.
package highlight

import (
	"encoding/json"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vocabmark/vocabmark/internal/notes"
)

// MarkerClass tags every mark element so any later pass can find it.
const MarkerClass = "vocab-highlight"

// DefaultLookupEndpoint is the dictionary search prefix; the looked-up text
// is appended URL-encoded.
const DefaultLookupEndpoint = "https://www.google.com/search?q=define+"

// skippedTags are never descended into while marking. Besides non-content
// elements this lists every element the serializer writes as raw text, where
// a mark would turn into visible markup after a render.
var skippedTags = map[atom.Atom]bool{
	atom.Script:    true,
	atom.Style:     true,
	atom.Iframe:    true,
	atom.Noscript:  true,
	atom.Head:      true,
	atom.Title:     true,
	atom.Textarea:  true,
	atom.Xmp:       true,
	atom.Noembed:   true,
	atom.Noframes:  true,
	atom.Plaintext: true,
	atom.Template:  true,
}

// Options configures a marking pass.
type Options struct {
	// Color is the CSS background color of every mark.
	Color string
	// LookupEndpoint prefixes the URL opened when a mark is activated.
	LookupEndpoint string
}

func (o Options) withDefaults() Options {
	if strings.TrimSpace(o.Color) == "" {
		o.Color = notes.DefaultHighlightColor
	}
	if o.LookupEndpoint == "" {
		o.LookupEndpoint = DefaultLookupEndpoint
	}
	return o
}

// LookupURL returns the dictionary URL for text.
func LookupURL(endpoint, text string) string {
	if endpoint == "" {
		endpoint = DefaultLookupEndpoint
	}
	return endpoint + url.QueryEscape(strings.TrimSpace(text))
}

// IsMark reports whether n is an element carrying MarkerClass.
func IsMark(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == "class" {
			for _, c := range strings.Fields(a.Val) {
				if c == MarkerClass {
					return true
				}
			}
		}
	}
	return false
}

func skipped(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if skippedTags[n.DataAtom] {
		return true
	}
	// Elements the parser does not know have no atom.
	switch strings.ToLower(n.Data) {
	case "script", "style", "iframe", "noscript", "head", "title",
		"textarea", "xmp", "noembed", "noframes", "plaintext", "template":
		return true
	}
	return false
}

// TextContent concatenates every text node under n.
func TextContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
				continue
			}
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// onclickScript reads the mark's own text at activation time, like the
// data-lookup attribute does at marking time.
func onclickScript(endpoint string) string {
	quoted, _ := json.Marshal(endpoint)
	return "window.open(" + string(quoted) + "+encodeURIComponent(this.textContent.trim()),'_blank')"
}

// joinAttr records which neighbours of a mark were cut from the same text
// node: "prev", "next", both, or "none".
const joinAttr = "data-vocab-join"

func joinValue(prev, next bool) string {
	switch {
	case prev && next:
		return "prev next"
	case prev:
		return "prev"
	case next:
		return "next"
	}
	return "none"
}

// joins reports which neighbours a mark's restored text merges with. Marks
// without joinAttr come from elsewhere and merge with both.
func joins(mark *html.Node) (prev, next bool) {
	for _, a := range mark.Attr {
		if a.Namespace == "" && a.Key == joinAttr {
			for _, f := range strings.Fields(a.Val) {
				switch f {
				case "prev":
					prev = true
				case "next":
					next = true
				}
			}
			return prev, next
		}
	}
	return true, true
}

func newMark(text, join string, opts Options) *html.Node {
	mark := &html.Node{
		Type:     html.ElementNode,
		Data:     "span",
		DataAtom: atom.Span,
		Attr: []html.Attribute{
			{Key: "class", Val: MarkerClass},
			{Key: "style", Val: "background-color: " + opts.Color + "; font-weight: bold; cursor: pointer;"},
			{Key: "data-lookup", Val: LookupURL(opts.LookupEndpoint, text)},
			{Key: "onclick", Val: onclickScript(opts.LookupEndpoint)},
			{Key: joinAttr, Val: join},
		},
	}
	mark.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return mark
}
