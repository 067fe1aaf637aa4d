package highlight

import "golang.org/x/net/html"

// Unmark replaces every mark under root with a plain text node holding the
// mark's text and returns how many marks were removed. The text is merged
// only with the neighbours that were cut from the same text node, restoring
// the tree as it was before marking. Calling it again is a no-op.
func Unmark(root *html.Node) int {
	if root == nil {
		return 0
	}
	var marks []*html.Node
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if IsMark(c) {
				marks = append(marks, c)
				continue
			}
			collect(c)
		}
	}
	collect(root)

	for _, m := range marks {
		collapse(m)
	}
	return len(marks)
}

func collapse(mark *html.Node) {
	parent := mark.Parent
	if parent == nil {
		return
	}
	joinPrev, joinNext := joins(mark)
	text := &html.Node{Type: html.TextNode, Data: TextContent(mark)}
	parent.InsertBefore(text, mark)
	parent.RemoveChild(mark)

	if prev := text.PrevSibling; joinPrev && prev != nil && prev.Type == html.TextNode {
		prev.Data += text.Data
		parent.RemoveChild(text)
		text = prev
	}
	if next := text.NextSibling; joinNext && next != nil && next.Type == html.TextNode {
		text.Data += next.Data
		parent.RemoveChild(next)
	}
}
