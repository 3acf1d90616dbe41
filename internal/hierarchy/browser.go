package hierarchy

import "fmt"

// Browser tracks a current path and search query over a set of items. Its
// path is always well-formed.
type Browser struct {
	items []Item
	path  string
	query string
}

func NewBrowser(items []Item) *Browser {
	return &Browser{items: items, path: Root}
}

func (b *Browser) Path() string { return b.path }

func (b *Browser) SetItems(items []Item) { b.items = items }

func (b *Browser) Goto(p string) { b.path = Clean(p) }

func (b *Browser) Enter(it Item) error {
	if !it.IsFolder() {
		return fmt.Errorf("%q is not a folder", it.Name)
	}
	b.path = Clean(Enter(it))
	return nil
}

func (b *Browser) Back() { b.path = Back(b.path) }

func (b *Browser) Search(query string) { b.query = query }

func (b *Browser) List() []Item { return Listing(b.items, b.path, b.query) }

func (b *Browser) Breadcrumbs() []Crumb { return Breadcrumbs(b.path) }
