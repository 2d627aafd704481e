package view

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ActionPath is where the page form posts button clicks.
const ActionPath = "/actions"

const defaultFormID = "eventlist-form"

//go:embed page.html
var defaultSkeleton string

// Page is a parsed page skeleton with a located table body. Render is safe
// for concurrent use.
type Page struct {
	mu        sync.Mutex
	doc       *html.Node
	container *html.Node
}

// DefaultPage parses the built-in skeleton.
func DefaultPage() (*Page, error) {
	return NewPage(strings.NewReader(defaultSkeleton))
}

// LoadPage parses the skeleton at path, or the built-in one when path is
// empty.
func LoadPage(path string) (*Page, error) {
	if path == "" {
		return DefaultPage()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open page skeleton: %w", err)
	}
	defer f.Close()
	return NewPage(f)
}

// NewPage parses a skeleton. It must contain a .table element with a tbody
// and an .eventlist_add-btn trigger. When the table is not inside a form one
// is wrapped around it.
func NewPage(r io.Reader) (*Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse page skeleton: %w", err)
	}

	table := find(doc, func(n *html.Node) bool { return hasClass(n, "table") })
	if table == nil {
		return nil, ErrMissingContainer
	}
	container := find(table, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Tbody
	})
	trigger := find(doc, func(n *html.Node) bool { return hasClass(n, ClassAddRowBtn) })
	if container == nil || trigger == nil {
		return nil, ErrMissingContainer
	}

	// rows render from the table state only
	for c := container.FirstChild; c != nil; c = container.FirstChild {
		container.RemoveChild(c)
	}

	form := ancestor(container, atom.Form)
	if form == nil {
		form = element(atom.Form)
		table.Parent.InsertBefore(form, table)
		table.Parent.RemoveChild(table)
		form.AppendChild(table)
	}
	formID, ok := getAttr(form, "id")
	if !ok || formID == "" {
		formID = defaultFormID
		setAttr(form, "id", formID)
	}
	setAttr(form, "method", "post")
	setAttr(form, "action", ActionPath)

	setAttr(trigger, "type", "submit")
	setAttr(trigger, "name", ActionField)
	setAttr(trigger, "value", VerbAddRow)
	if !contains(form, trigger) {
		setAttr(trigger, "form", formID)
	}

	// Enter in a row input clicks the form's first submit button; make that
	// one a disabled no-op
	guard := element(atom.Button,
		attr("type", "submit"),
		attr("class", ClassDefaultBtn),
		attr("form", formID),
		attr("disabled", ""),
		attr("hidden", ""),
		attr("aria-hidden", "true"),
		attr("tabindex", "-1"),
	)
	if first := find(doc, func(n *html.Node) bool { return n == form || n == trigger }); first == form {
		form.InsertBefore(guard, form.FirstChild)
	} else {
		trigger.Parent.InsertBefore(guard, trigger)
	}

	return &Page{doc: doc, container: container}, nil
}

// Render writes the document with rows placed in the table body.
func (p *Page) Render(w io.Writer, rows []*html.Node) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, n := range rows {
		p.container.AppendChild(n)
	}
	defer func() {
		for c := p.container.FirstChild; c != nil; c = p.container.FirstChild {
			p.container.RemoveChild(c)
		}
	}()

	return html.Render(w, p.doc)
}
