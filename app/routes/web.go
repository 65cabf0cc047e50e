// Package routes binds the storefront's pages to the router.
package routes

import (
	"net/http"

	"github.com/shashiranjanraj/storefront/app/controllers"
	"github.com/shashiranjanraj/storefront/app/middleware"
	"github.com/shashiranjanraj/storefront/pkg/router"
)

// LoginPath is where anonymous visitors of guarded pages are sent.
const LoginPath = "/login"

// Deps carries everything the web routes dispatch to.
type Deps struct {
	Auth  *controllers.AuthController
	Home  *controllers.HomeController
	Order *controllers.OrderController
	Admin *controllers.AdminController

	Identities *middleware.Identities

	// LoginLimiter throttles the login form posts. Nil disables throttling.
	LoginLimiter router.Middleware
}

// RegisterWeb mounts every storefront page on r.
func RegisterWeb(r *router.Router, d Deps) {
	h := d.Identities.Handle
	limit := d.LoginLimiter
	if limit == nil {
		limit = func(next http.Handler) http.Handler { return next }
	}

	auth := middleware.RequireAuthenticated(LoginPath)

	r.Get("/", "home", h(d.Home.Index))

	r.Get("/register", "register", h(d.Auth.ShowRegister))
	r.Post("/register", "register.store", h(d.Auth.Register))
	r.Get("/login", "login", h(d.Auth.ShowLogin))
	r.Post("/login", "login.attempt", h(d.Auth.Login), limit)
	r.Get("/logout", "logout", h(d.Auth.Logout))

	r.Post("/order", "order.store", h(d.Order.Store, auth))

	admin := r.Group("/admin")
	admin.Get("/login", "admin.login", h(d.Auth.ShowAdminLogin))
	admin.Post("/login", "admin.login.attempt", h(d.Auth.AdminLogin), limit)

	admin.Get("/orders", "admin.orders", h(d.Admin.Orders, auth, middleware.RequireAdmin))
	admin.Post("/orders/{id}", "admin.orders.update", h(d.Admin.UpdateOrder, auth, middleware.RequireAdmin))
	admin.Post("/orders/{id}/delete", "admin.orders.delete", h(d.Admin.DeleteOrder, auth, middleware.RequireAdmin))
	admin.Post("/products/create", "admin.products.store", h(d.Admin.CreateProduct, auth, middleware.RequireAdmin))
	admin.Post("/products/{id}/delete", "admin.products.delete", h(d.Admin.DeleteProduct, auth, middleware.RequireAdmin))
}
