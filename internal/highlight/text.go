package highlight

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Run is a stretch of visible text, either plain or inside a mark.
type Run struct {
	Text string
	Mark bool
}

var blockTags = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Br: true, atom.Dd: true, atom.Div: true, atom.Dl: true, atom.Dt: true,
	atom.Figcaption: true, atom.Footer: true, atom.Form: true, atom.H1: true,
	atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Header: true, atom.Hr: true, atom.Li: true, atom.Main: true, atom.Nav: true,
	atom.Ol: true, atom.P: true, atom.Pre: true, atom.Section: true, atom.Table: true,
	atom.Tr: true, atom.Ul: true,
}

// VisibleText flattens the visible text under root into runs, collapsing
// whitespace and breaking lines at block elements. It is a reading view for
// terminals, not a faithful layout.
func VisibleText(root *html.Node) []Run {
	var runs []Run
	emit := func(text string, mark bool) {
		if text == "" {
			return
		}
		if n := len(runs); n > 0 && runs[n-1].Mark == mark {
			runs[n-1].Text += text
			return
		}
		runs = append(runs, Run{Text: text, Mark: mark})
	}
	newline := func() {
		if n := len(runs); n > 0 && !strings.HasSuffix(runs[n-1].Text, "\n") {
			emit("\n", false)
		}
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				emit(collapseSpace(c.Data), false)
			case html.ElementNode:
				if skipped(c) {
					continue
				}
				if IsMark(c) {
					emit(collapseSpace(TextContent(c)), true)
					continue
				}
				block := blockTags[c.DataAtom]
				if block {
					newline()
				}
				walk(c)
				if block {
					newline()
				}
			}
		}
	}
	walk(root)
	return runs
}

func collapseSpace(s string) string {
	if s == "" {
		return ""
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return " "
	}
	out := strings.Join(fields, " ")
	if strings.TrimLeftFunc(s, unicode.IsSpace) != s {
		out = " " + out
	}
	if strings.TrimRightFunc(s, unicode.IsSpace) != s {
		out += " "
	}
	return out
}
