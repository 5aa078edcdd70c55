package view

// Fragment identifies a renderable region of a page. A page declares which
// fragments it carries; the synchronizer renders exactly those and nothing
// else.
type Fragment string

const (
	FragmentGrid       Fragment = "grid"
	FragmentDetail     Fragment = "detail"
	FragmentCartDrawer Fragment = "cart-drawer"
	FragmentCheckout   Fragment = "checkout"
	FragmentWishlist   Fragment = "wishlist"
)

// Page describes the active page: its fragments plus the parameters some of
// them render from. A checkout page has no grid; a detail page has a product
// id; a category page filters the grid.
type Page struct {
	Name      string
	Fragments []Fragment
	Category  string
	ProductID int64
}

func (p Page) has(f Fragment) bool {
	for _, pf := range p.Fragments {
		if pf == f {
			return true
		}
	}
	return false
}

// DrawerState models the cart drawer: closed initially, opened explicitly or
// by any add-to-cart, closed explicitly, by a click outside the drawer, or by
// page navigation.
type DrawerState int

const (
	DrawerClosed DrawerState = iota
	DrawerOpen
)

func (s DrawerState) String() string {
	if s == DrawerOpen {
		return "open"
	}
	return "closed"
}
