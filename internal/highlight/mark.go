package highlight

import (
	"regexp"

	"golang.org/x/net/html"
)

type fragment struct {
	text string
	mark bool
}

// replacement swaps one text node for the nodes built from its fragments.
type replacement struct {
	node  *html.Node
	nodes []*html.Node
}

// Mark wraps every whole-word match of words inside root in a mark element
// and returns the number of marks inserted. Words are applied in order; text
// already inside a mark is not matched again. Text nodes without a match are
// left in place untouched.
func Mark(root *html.Node, words []string, opts Options) int {
	if root == nil || len(words) == 0 {
		return 0
	}
	opts = opts.withDefaults()

	patterns := make([]*regexp.Regexp, 0, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		patterns = append(patterns, Pattern(w))
	}
	if len(patterns) == 0 {
		return 0
	}
	return markTree(root, patterns, opts)
}

func markTree(n *html.Node, patterns []*regexp.Regexp, opts Options) int {
	if skipped(n) || IsMark(n) {
		return 0
	}

	// Snapshot first: replacements below change the sibling links.
	var children []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, c)
	}

	count := 0
	var ops []replacement
	for _, c := range children {
		switch c.Type {
		case html.TextNode:
			frags, marks := markText(c.Data, patterns)
			if marks == 0 {
				continue
			}
			count += marks
			ops = append(ops, replacement{node: c, nodes: buildNodes(frags, opts)})
		case html.ElementNode:
			count += markTree(c, patterns, opts)
		}
	}

	for _, op := range ops {
		for _, nn := range op.nodes {
			n.InsertBefore(nn, op.node)
		}
		n.RemoveChild(op.node)
	}
	return count
}

// markText runs every pattern over the plain fragments of text in turn.
func markText(text string, patterns []*regexp.Regexp) ([]fragment, int) {
	frags := []fragment{{text: text}}
	marks := 0
	for _, re := range patterns {
		next := make([]fragment, 0, len(frags))
		for _, f := range frags {
			if f.mark {
				next = append(next, f)
				continue
			}
			segs, ok := split(re, f.text)
			if !ok {
				next = append(next, f)
				continue
			}
			for _, s := range segs {
				if s.Text == "" {
					continue
				}
				if s.Match {
					marks++
				}
				next = append(next, fragment{text: s.Text, mark: s.Match})
			}
		}
		frags = next
	}
	return frags, marks
}

func buildNodes(frags []fragment, opts Options) []*html.Node {
	nodes := make([]*html.Node, 0, len(frags))
	for i, f := range frags {
		if f.mark {
			nodes = append(nodes, newMark(f.text, joinValue(i > 0, i < len(frags)-1), opts))
			continue
		}
		nodes = append(nodes, &html.Node{Type: html.TextNode, Data: f.text})
	}
	return nodes
}
