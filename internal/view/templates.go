package view

import (
	"html/template"
	"math"
	"strings"
)

var (
	gridTmpl = template.Must(template.New("grid").Parse(`{{if not .Products}}<p class="empty-state">No products found in this category.</p>{{else}}{{range .Products}}<div class="product-card" data-product-id="{{.ID}}">
<img src="{{.Image}}" alt="{{.Name}}">
<button class="add-to-wishlist{{if .InWishlist}} active{{end}}" data-product-id="{{.ID}}">{{.HeartIcon}}</button>
<span class="category">{{.Category}}</span>
<h3>{{.Name}}</h3>
<div class="rating">{{.Stars}} <span>({{.Rating}})</span></div>
<span class="price">{{.DisplayPrice}}</span>
<button class="add-to-cart-btn" data-product-id="{{.ID}}">Add</button>
</div>
{{end}}{{end}}`))

	detailTmpl = template.Must(template.New("detail").Parse(`{{if .Found}}<div class="product-detail" data-product-id="{{.Product.ID}}">
<img src="{{.Product.Image}}" alt="{{.Product.Name}}">
<span class="category">{{.Product.Category}}</span>
<h1>{{.Product.Name}}</h1>
<div class="rating">{{.Product.Stars}} <span>({{.Product.Rating}} Reviews)</span></div>
<h2 class="price">{{.Product.DisplayPrice}}</h2>
<p>{{.Product.Description}}</p>
<button class="add-to-cart-btn" data-product-id="{{.Product.ID}}">Add to Cart</button>
<button class="add-to-wishlist{{if .Product.InWishlist}} active{{end}}" data-product-id="{{.Product.ID}}">{{.Product.HeartIcon}}</button>
</div>{{else}}<p class="empty-state">Product not found.</p>{{end}}`))

	drawerTmpl = template.Must(template.New("drawer").Parse(`{{if not .Lines}}<p class="empty-state">Your cart is empty.</p><div class="cart-total-price">$0.00</div>{{else}}{{range .Lines}}<div class="cart-item" data-product-id="{{.ProductID}}">
<img src="{{.Image}}" alt="{{.Name}}">
<h4>{{.Name}}</h4>
<div class="cart-item-price">{{.DisplaySubtotal}}</div>
<button class="qty-btn" data-product-id="{{.ProductID}}" data-delta="-1">-</button>
<span class="qty">{{.Quantity}}</span>
<button class="qty-btn" data-product-id="{{.ProductID}}" data-delta="1">+</button>
<button class="remove-item" data-product-id="{{.ProductID}}">Remove</button>
</div>
{{end}}<div class="cart-total-price">{{.DisplayTotal}}</div>{{end}}`))

	checkoutTmpl = template.Must(template.New("checkout").Parse(`{{if not .Lines}}<p class="empty-state">Your cart is empty.</p>{{else}}{{range .Lines}}<div class="checkout-item" data-product-id="{{.ProductID}}">
<img src="{{.Image}}">
<h4>{{.Name}}</h4>
<small>Qty: {{.Quantity}}</small>
<span class="line-total">{{.DisplaySubtotal}}</span>
</div>
{{end}}<div id="checkout-total">{{.DisplayTotal}}</div>{{end}}`))

	wishlistTmpl = template.Must(template.New("wishlist").Parse(`{{if not .Products}}<p class="empty-state">Your wishlist is empty.</p>{{else}}{{range .Products}}<div class="product-card" data-product-id="{{.ID}}">
<img src="{{.Image}}" alt="{{.Name}}">
<button class="add-to-wishlist active" data-product-id="{{.ID}}"><i class="fas fa-trash"></i></button>
<h3>{{.Name}}</h3>
<span class="price">{{.DisplayPrice}}</span>
<button class="add-to-cart-btn" data-product-id="{{.ID}}">Add</button>
</div>
{{end}}{{end}}`))

	iconTmpl = template.Must(template.New("icon").Parse(`<button class="add-to-wishlist{{if .Active}} active{{end}}" data-product-id="{{.ProductID}}"><i class="{{if .Active}}fas{{else}}far{{end}} fa-heart"></i></button>`))
)

// StarRating renders a 0-5 rating as full, half and empty star icons.
func StarRating(rating float64) template.HTML {
	full := int(math.Floor(rating))
	half := math.Mod(rating, 1) >= 0.5
	empty := 5 - int(math.Ceil(rating))

	var b strings.Builder
	for i := 0; i < full; i++ {
		b.WriteString(`<i class="fas fa-star"></i>`)
	}
	if half {
		b.WriteString(`<i class="fas fa-star-half-alt"></i>`)
	}
	for i := 0; i < empty; i++ {
		b.WriteString(`<i class="far fa-star"></i>`)
	}
	return template.HTML(b.String())
}
