package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/happyfood/happyfood-backend/api/controllers"
	"github.com/happyfood/happyfood-backend/api/middleware"
	"github.com/happyfood/happyfood-backend/internal/addresses"
	"github.com/happyfood/happyfood-backend/internal/auth"
	"github.com/happyfood/happyfood-backend/internal/cart"
	"github.com/happyfood/happyfood-backend/internal/catalog"
	checkoutsvc "github.com/happyfood/happyfood-backend/internal/checkout"
	"github.com/happyfood/happyfood-backend/internal/deliveries"
	"github.com/happyfood/happyfood-backend/internal/orders"
	"github.com/happyfood/happyfood-backend/internal/payments"
	"github.com/happyfood/happyfood-backend/internal/reviews"
	"github.com/happyfood/happyfood-backend/pkg/config"
	"github.com/happyfood/happyfood-backend/pkg/enums"
	"github.com/happyfood/happyfood-backend/pkg/logger"
	pkgredis "github.com/happyfood/happyfood-backend/pkg/redis"
)

// Services bundles everything the router needs wired in.
type Services struct {
	Auth       auth.Service
	Catalog    catalog.Service
	Addresses  addresses.Service
	Cart       cart.Service
	Checkout   checkoutsvc.Service
	Orders     orders.Service
	Payments   payments.Service
	Deliveries deliveries.Service
	Reviews    reviews.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	cache controllers.Pinger,
	idemStore pkgredis.IdempotencyStore,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, cache))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.Idempotency(idemStore, logg)).Post("/register", controllers.AuthRegister(svcs.Auth, logg))
			r.Post("/login", controllers.AuthLogin(svcs.Auth, logg))
		})

		// Public catalog browsing.
		r.Group(func(r chi.Router) {
			r.Get("/restaurants", controllers.RestaurantList(svcs.Catalog, logg))
			r.Get("/restaurants/{restaurantId}", controllers.RestaurantGet(svcs.Catalog, logg))
			r.Get("/restaurants/{restaurantId}/products", controllers.ProductListByRestaurant(svcs.Catalog, logg))
			r.Get("/restaurants/{restaurantId}/reviews", controllers.RestaurantReviewList(svcs.Reviews, logg))
			r.Get("/products/{productId}", controllers.ProductGet(svcs.Catalog, logg))
			r.Get("/products/{productId}/reviews", controllers.ProductReviewList(svcs.Reviews, logg))
			r.Get("/couriers/{courierId}/reviews", controllers.CourierReviewList(svcs.Reviews, logg))
			r.Get("/categories", controllers.CategoryList(svcs.Catalog, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Use(middleware.Idempotency(idemStore, logg))

			restaurantOnly := middleware.RequireRole(enums.RoleRestaurant.String(), logg)
			customerOnly := middleware.RequireRole(enums.RoleCustomer.String(), logg)

			r.Group(func(r chi.Router) {
				r.Use(restaurantOnly)
				r.Post("/restaurants", controllers.RestaurantCreate(svcs.Catalog, logg))
				r.Patch("/restaurants/{restaurantId}", controllers.RestaurantUpdate(svcs.Catalog, logg))
				r.Post("/products", controllers.ProductCreate(svcs.Catalog, logg))
				r.Patch("/products/{productId}", controllers.ProductUpdate(svcs.Catalog, logg))
				r.Delete("/products/{productId}", controllers.ProductDelete(svcs.Catalog, logg))
				r.Post("/products/{productId}/option-groups", controllers.OptionGroupCreate(svcs.Catalog, logg))
				r.Delete("/option-groups/{groupId}", controllers.OptionGroupDelete(svcs.Catalog, logg))
				r.Post("/option-groups/{groupId}/options", controllers.OptionCreate(svcs.Catalog, logg))
			})

			r.With(middleware.RequireRole(enums.RoleSupport.String(), logg)).
				Post("/categories", controllers.CategoryCreate(svcs.Catalog, logg))

			r.Route("/addresses", func(r chi.Router) {
				r.Post("/", controllers.AddressCreate(svcs.Addresses, logg))
				r.Get("/", controllers.AddressList(svcs.Addresses, logg))
				r.Delete("/{addressId}", controllers.AddressDelete(svcs.Addresses, logg))
			})

			r.Group(func(r chi.Router) {
				r.Use(customerOnly)
				r.Get("/restaurants/{restaurantId}/cart", controllers.CartGet(svcs.Cart, logg))
				r.Post("/cart/items", controllers.CartAddItem(svcs.Cart, logg))
				r.Patch("/cart/items/{itemId}", controllers.CartUpdateItem(svcs.Cart, logg))
				r.Delete("/cart/items/{itemId}", controllers.CartRemoveItem(svcs.Cart, logg))
				r.Post("/checkout", controllers.Checkout(svcs.Checkout, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.OrderListOwn(svcs.Orders, logg))
				r.Get("/{orderId}", controllers.OrderGet(svcs.Orders, logg))
				r.Post("/{orderId}/status", controllers.OrderSetStatus(svcs.Orders, logg))
				r.Post("/{orderId}/payment", controllers.PaymentCreate(svcs.Payments, logg))
				r.Get("/{orderId}/payment", controllers.PaymentGet(svcs.Payments, logg))
				r.Post("/{orderId}/delivery", controllers.DeliveryCreate(svcs.Deliveries, logg))
			})
			r.Get("/restaurants/{restaurantId}/orders", controllers.OrderListForRestaurant(svcs.Orders, logg))

			r.Route("/deliveries/{deliveryId}", func(r chi.Router) {
				r.Get("/", controllers.DeliveryGet(svcs.Deliveries, logg))
				r.Post("/status", controllers.DeliverySetStatus(svcs.Deliveries, logg))
				r.Post("/location", controllers.DeliveryAddPing(svcs.Deliveries, logg))
			})

			r.Post("/restaurants/{restaurantId}/reviews", controllers.RestaurantReviewCreate(svcs.Reviews, logg))
			r.Post("/couriers/{courierId}/reviews", controllers.CourierReviewCreate(svcs.Reviews, logg))
			r.Post("/products/{productId}/reviews", controllers.ProductReviewCreate(svcs.Reviews, logg))
		})
	})

	return r
}
