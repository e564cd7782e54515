package transport

import (
	"net/http"

	"sushi-be/internal/category"
	"sushi-be/internal/logger"
	"sushi-be/internal/metrics"
	"sushi-be/internal/middleware"
	"sushi-be/internal/order"
	"sushi-be/internal/product"
	"sushi-be/internal/user"

	"github.com/go-chi/chi/v5"
)

type Services struct {
	Users      user.Service
	UserRepo   user.Repository
	Categories category.Service
	Products   product.Service
	Orders     order.Service
}

// NewRouter wires the full HTTP surface. Reads are public, mutations sit
// behind the admin gate, checkout accepts guests.
func NewRouter(svc Services) http.Handler {
	authH := &authHandler{users: svc.Users}
	catalogH := &catalogHandler{categories: svc.Categories, products: svc.Products}
	orderH := &orderHandler{orders: svc.Orders}

	admin := middleware.RequireAdmin(svc.UserRepo)

	r := chi.NewRouter()
	r.Use(logger.RequestIDMiddleware)
	r.Use(middleware.Recover)
	r.Use(metrics.Middleware)
	r.Use(middleware.Authenticate)
	r.Use(middleware.LoggingMiddleware)

	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authH.Register)
			r.Post("/login", authH.Login)
		})

		r.Route("/shop", func(r chi.Router) {
			r.Get("/menu", catalogH.Menu)
			r.Get("/product/{id}", catalogH.GetProduct)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", catalogH.ListProducts)
			r.Get("/categories", catalogH.ListCategories)

			r.Group(func(r chi.Router) {
				r.Use(admin)
				r.Post("/", catalogH.CreateProduct)
				r.Put("/{id}", catalogH.UpdateProduct)
				r.Patch("/{id}", catalogH.UpdateProduct)
				r.Delete("/{id}", catalogH.DeleteProduct)

				r.Post("/categories", catalogH.CreateCategory)
				r.Put("/categories/{id}", catalogH.UpdateCategory)
				r.Delete("/categories/{id}", catalogH.DeleteCategory)
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", orderH.Create)

			r.Group(func(r chi.Router) {
				r.Use(admin)
				r.Get("/", orderH.List)
				r.Get("/user/{userId}", orderH.ListForUser)
				r.Patch("/{id}/status", orderH.UpdateStatus)
			})
		})
	})

	return r
}
