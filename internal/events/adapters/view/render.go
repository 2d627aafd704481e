package view

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Class names the page script and stylesheet rely on.
const (
	ClassRow       = "event"
	ClassAddBtn    = "event_add-btn"
	ClassEditBtn   = "event_edit-btn"
	ClassSaveBtn   = "event_save-btn"
	ClassDeleteBtn = "event_delete-btn"
	ClassCancelBtn = "event_cancel-btn"
	ClassAddRowBtn = "eventlist_add-btn"

	// ClassDefaultBtn marks the inert button that absorbs implicit
	// submission (Enter in an input).
	ClassDefaultBtn = "eventlist_default-btn"
)

// RenderRow builds the tr for a row. The result depends only on the row.
func RenderRow(r Row) *html.Node {
	tr := element(atom.Tr,
		attr("class", ClassRow),
		attr("id", r.Key),
		attr("data-mode", r.Mode.String()),
	)

	switch r.Mode {
	case ModeDisplay:
		for _, f := range Fields {
			td := element(atom.Td)
			td.AppendChild(text(f.get(r.Event)))
			tr.AppendChild(td)
		}
		tr.AppendChild(actions(
			button(ClassEditBtn, "Edit", ActionValue(VerbEdit, r.Key), attr("edit-id", r.Key)),
			button(ClassDeleteBtn, "Delete", ActionValue(VerbDelete, r.Key), attr("remove-id", r.Key)),
		))

	case ModeEdit:
		appendInputs(tr, r, true)
		tr.AppendChild(actions(
			button(ClassSaveBtn, "Save", ActionValue(VerbSave, r.Key), attr("edit-id", r.Key)),
			button(ClassCancelBtn, "Cancel", ActionValue(VerbCancel, r.Key), attr("edit-id", r.Key)),
		))

	case ModeDraft:
		appendInputs(tr, r, false)
		tr.AppendChild(actions(
			button(ClassAddBtn, "Add", ActionValue(VerbAdd, r.Key)),
			button(ClassCancelBtn, "Cancel", ActionValue(VerbCancel, r.Key), attr("remove-id", r.Key)),
		))
	}

	return tr
}

// appendInputs adds one input cell per field. Edit rows always carry a value;
// draft rows only once something was typed.
func appendInputs(tr *html.Node, r Row, prefill bool) {
	values := r.Values()
	for _, f := range Fields {
		in := element(atom.Input,
			attr("type", f.InputType),
			attr("name", InputName(f.Name, r.Key)),
			attr("aria-label", f.Name),
		)
		if v := f.get(values); prefill || v != "" {
			in.Attr = append(in.Attr, attr("value", v))
		}
		td := element(atom.Td)
		td.AppendChild(in)
		tr.AppendChild(td)
	}
}

func actions(buttons ...*html.Node) *html.Node {
	td := element(atom.Td, attr("class", "event_actions"))
	for _, b := range buttons {
		td.AppendChild(b)
	}
	return td
}

func button(class, label, value string, extra ...html.Attribute) *html.Node {
	b := element(atom.Button,
		attr("type", "submit"),
		attr("class", class),
		attr("name", ActionField),
		attr("value", value),
	)
	b.Attr = append(b.Attr, extra...)
	b.AppendChild(text(label))
	return b
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func getAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, attr(key, val))
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	v, _ := getAttr(n, "class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

// find returns the first node under n (n included) accepted by match, in
// document order.
func find(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, match); found != nil {
			return found
		}
	}
	return nil
}

func ancestor(n *html.Node, a atom.Atom) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.DataAtom == a {
			return p
		}
	}
	return nil
}

func contains(root, n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == root {
			return true
		}
	}
	return false
}
