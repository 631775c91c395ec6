package render

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Mode selects how hidden fragments appear in rendered HTML.
type Mode int

const (
	// ModeDecorate keeps hidden fragments and tags them with HiddenClass.
	ModeDecorate Mode = iota
	// ModePrune drops hidden fragments from the rendered copy. The source
	// content is never changed.
	ModePrune
)

// HTMLDocument is rich-text HTML with its conditional fragments. Elements
// carrying ConditionAttr become fragments: <span> as spans, anything else as
// blocks.
type HTMLDocument struct {
	roots     []*html.Node
	dropped   map[*html.Node]bool
	nodes     map[*Fragment]*html.Node
	Fragments []*Fragment
}

var bodyContext = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}

// ParseHTML parses content as the body of an HTML document.
func ParseHTML(content string) (*HTMLDocument, error) {
	roots, err := html.ParseFragment(strings.NewReader(content), bodyContext)
	if err != nil {
		return nil, fmt.Errorf("parsing document html: %w", err)
	}
	d := &HTMLDocument{
		roots:   roots,
		dropped: make(map[*html.Node]bool),
		nodes:   make(map[*Fragment]*html.Node),
	}
	for _, n := range roots {
		d.Fragments = append(d.Fragments, d.collect(n)...)
	}
	return d, nil
}

// collect returns the outermost conditional fragments at or below n, each
// with its nested conditional fragments as children.
func (d *HTMLDocument) collect(n *html.Node) []*Fragment {
	var children []*Fragment
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, d.collect(c)...)
	}
	if n.Type != html.ElementNode {
		return children
	}
	cond, ok := attr(n, ConditionAttr)
	if !ok {
		return children
	}
	kind := KindBlock
	if n.DataAtom == atom.Span {
		kind = KindSpan
	}
	f := &Fragment{
		ID:        fmt.Sprintf("%s-%d", kind, len(d.nodes)+1),
		Kind:      kind,
		Condition: &cond,
		Content:   textContent(n),
		Children:  children,
	}
	d.nodes[f] = n
	return []*Fragment{f}
}

// Apply writes visibility decisions into the parsed tree.
func (d *HTMLDocument) Apply(decisions []Visibility, mode Mode) {
	for _, v := range decisions {
		n, ok := d.nodes[v.Fragment]
		if !ok {
			continue
		}
		switch mode {
		case ModePrune:
			if v.Visible {
				setClass(n, HiddenClass, false)
				continue
			}
			if n.Parent == nil {
				d.dropped[n] = true
			} else {
				n.Parent.RemoveChild(n)
			}
		default:
			setClass(n, HiddenClass, !v.Own)
		}
	}
}

// String serializes the (possibly decorated) tree back to HTML.
func (d *HTMLDocument) String() (string, error) {
	var buf bytes.Buffer
	for _, n := range d.roots {
		if d.dropped[n] {
			continue
		}
		if err := html.Render(&buf, n); err != nil {
			return "", fmt.Errorf("rendering document html: %w", err)
		}
	}
	return buf.String(), nil
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// setClass adds or removes class from n's class attribute.
func setClass(n *html.Node, class string, on bool) {
	idx := -1
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == "class" {
			idx = i
			break
		}
	}
	var classes []string
	if idx >= 0 {
		for _, c := range strings.Fields(n.Attr[idx].Val) {
			if c != class {
				classes = append(classes, c)
			}
		}
	}
	if on {
		classes = append(classes, class)
	}
	switch {
	case len(classes) == 0 && idx >= 0:
		n.Attr = append(n.Attr[:idx], n.Attr[idx+1:]...)
	case len(classes) > 0 && idx >= 0:
		n.Attr[idx].Val = strings.Join(classes, " ")
	case len(classes) > 0:
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: strings.Join(classes, " ")})
	}
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
