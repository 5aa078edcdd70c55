package view

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/happyshop/storefront/internal/cart"
	"github.com/happyshop/storefront/internal/catalog"
	"github.com/happyshop/storefront/internal/domain"
	"github.com/happyshop/storefront/internal/wishlist"
)

// Notifier receives transient user notifications (toasts).
type Notifier interface {
	Notify(message string)
}

// NopNotifier drops notifications.
type NopNotifier struct{}

func (NopNotifier) Notify(string) {}

// Synchronizer renders engine state into the fragments of the active page and
// keeps badge indicators in step after every mutation. Rendering is a pure
// function of current state: calling Render twice with unchanged state yields
// identical output, and fragments the page does not carry are skipped rather
// than erroring.
type Synchronizer struct {
	cart     *cart.Engine
	wishlist *wishlist.Engine
	catalog  *catalog.Cache
	notifier Notifier
	log      zerolog.Logger

	mu            sync.Mutex
	page          Page
	rendered      map[Fragment]string
	icons         map[int64]string
	cartBadge     string
	wishlistBadge string
	drawer        DrawerState
}

func NewSynchronizer(c *cart.Engine, w *wishlist.Engine, cat *catalog.Cache, n Notifier, log zerolog.Logger) *Synchronizer {
	if n == nil {
		n = NopNotifier{}
	}
	s := &Synchronizer{
		cart:     c,
		wishlist: w,
		catalog:  cat,
		notifier: n,
		log:      log,
		rendered: make(map[Fragment]string),
		icons:    make(map[int64]string),
		drawer:   DrawerClosed,
	}
	c.SetListener(s.cartChanged)
	w.SetListener(s.wishlistChanged)
	return s
}

// SetPage activates a page: the drawer closes (navigation), stale fragments
// are dropped, and everything the page carries is rendered.
func (s *Synchronizer) SetPage(page Page) {
	s.mu.Lock()
	s.page = page
	s.drawer = DrawerClosed
	s.rendered = make(map[Fragment]string)
	s.icons = make(map[int64]string)
	s.mu.Unlock()
	s.Render()
}

// Render re-renders every fragment present on the active page plus both
// badges. Safe to call repeatedly.
func (s *Synchronizer) Render() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.page.Fragments {
		s.renderLocked(f)
	}
	s.updateBadgesLocked()
}

// HTML returns the last rendered output for a fragment. The second return is
// false when the active page does not carry the fragment.
func (s *Synchronizer) HTML(f Fragment) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.page.has(f) {
		return "", false
	}
	return s.rendered[f], true
}

// IconHTML returns the wishlist icon fragment for one product, reflecting
// current membership.
func (s *Synchronizer) IconHTML(productID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if html, ok := s.icons[productID]; ok {
		return html
	}
	return s.renderIconLocked(productID)
}

func (s *Synchronizer) CartBadge() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartBadge
}

func (s *Synchronizer) WishlistBadge() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishlistBadge
}

func (s *Synchronizer) Drawer() DrawerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawer
}

// OpenDrawer renders the drawer and opens it, mirroring the explicit
// cart-button click.
func (s *Synchronizer) OpenDrawer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renderLocked(FragmentCartDrawer)
	s.drawer = DrawerOpen
}

// CloseDrawer handles both the explicit close action and a click outside the
// drawer content.
func (s *Synchronizer) CloseDrawer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawer = DrawerClosed
}

// cartChanged runs after every persisted cart mutation.
func (s *Synchronizer) cartChanged(e cart.Event) {
	s.mu.Lock()
	s.renderLocked(FragmentCartDrawer)
	s.renderLocked(FragmentCheckout)
	s.updateBadgesLocked()
	if e.OpenDrawer {
		s.drawer = DrawerOpen
	}
	s.mu.Unlock()

	if e.Toast != "" {
		s.notifier.Notify(e.Toast)
	}
}

// wishlistChanged runs after every persisted toggle. On the wishlist listing
// the membership itself changed what the listing contains, so the whole
// fragment re-renders; on other pages only the product's icon and the badges
// move.
func (s *Synchronizer) wishlistChanged(e wishlist.Event) {
	s.mu.Lock()
	if s.page.has(FragmentWishlist) {
		s.renderLocked(FragmentWishlist)
	} else {
		s.icons[e.ProductID] = s.renderIconLocked(e.ProductID)
	}
	s.updateBadgesLocked()
	s.mu.Unlock()

	if e.Toast != "" {
		s.notifier.Notify(e.Toast)
	}
}

func (s *Synchronizer) updateBadgesLocked() {
	s.cartBadge = strconv.Itoa(s.cart.Count())
	s.wishlistBadge = strconv.Itoa(s.wishlist.Count())
}

// renderLocked renders one fragment if the page carries it.
func (s *Synchronizer) renderLocked(f Fragment) {
	if !s.page.has(f) {
		return
	}

	var buf bytes.Buffer
	var err error
	switch f {
	case FragmentGrid:
		products := s.catalog.All()
		if s.page.Category != "" {
			products = s.catalog.ByCategory(s.page.Category)
		}
		err = gridTmpl.Execute(&buf, map[string]any{"Products": s.cards(products)})
	case FragmentDetail:
		p, ok := s.catalog.Get(s.page.ProductID)
		data := map[string]any{"Found": ok}
		if ok {
			data["Product"] = s.card(p)
		}
		err = detailTmpl.Execute(&buf, data)
	case FragmentCartDrawer:
		err = drawerTmpl.Execute(&buf, s.cartData())
	case FragmentCheckout:
		err = checkoutTmpl.Execute(&buf, s.cartData())
	case FragmentWishlist:
		var members []domain.Product
		for _, p := range s.catalog.All() {
			if s.wishlist.Contains(p.ID) {
				members = append(members, p)
			}
		}
		err = wishlistTmpl.Execute(&buf, map[string]any{"Products": s.cards(members)})
	default:
		return
	}
	if err != nil {
		s.log.Error().Err(err).Str("fragment", string(f)).Msg("fragment render failed")
		return
	}
	s.rendered[f] = buf.String()

	// card fragments embed icons; keep the per-product cache coherent
	if f == FragmentGrid || f == FragmentDetail || f == FragmentWishlist {
		for id := range s.icons {
			s.icons[id] = s.renderIconLocked(id)
		}
	}
}

func (s *Synchronizer) renderIconLocked(productID int64) string {
	var buf bytes.Buffer
	err := iconTmpl.Execute(&buf, map[string]any{
		"ProductID": productID,
		"Active":    s.wishlist.Contains(productID),
	})
	if err != nil {
		s.log.Error().Err(err).Msg("icon render failed")
		return ""
	}
	return buf.String()
}

type productCard struct {
	domain.Product
	InWishlist   bool
	Stars        template.HTML
	HeartIcon    template.HTML
	DisplayPrice string
}

func (s *Synchronizer) card(p domain.Product) productCard {
	in := s.wishlist.Contains(p.ID)
	heart := `<i class="far fa-heart"></i>`
	if in {
		heart = `<i class="fas fa-heart"></i>`
	}
	return productCard{
		Product:      p,
		InWishlist:   in,
		Stars:        StarRating(p.Rating),
		HeartIcon:    template.HTML(heart),
		DisplayPrice: fmt.Sprintf("$%.2f", p.Price),
	}
}

func (s *Synchronizer) cards(products []domain.Product) []productCard {
	out := make([]productCard, 0, len(products))
	for _, p := range products {
		out = append(out, s.card(p))
	}
	return out
}

type lineView struct {
	domain.CartLine
	DisplaySubtotal string
}

func (s *Synchronizer) cartData() map[string]any {
	lines := s.cart.Lines()
	views := make([]lineView, 0, len(lines))
	for _, l := range lines {
		views = append(views, lineView{CartLine: l, DisplaySubtotal: cart.FormatTotal(l.Subtotal())})
	}
	data := map[string]any{
		"Lines":        views,
		"DisplayTotal": cart.FormatTotal(s.cart.Total()),
	}
	if len(views) == 0 {
		data["Lines"] = nil
	}
	return data
}
