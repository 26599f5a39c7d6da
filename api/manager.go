package api

import (
	"solemate_server/api/cart"
	"solemate_server/api/catalog"
	"solemate_server/api/checkout"
	"solemate_server/api/health"
	"solemate_server/api/middleware"
	"solemate_server/database"
	"solemate_server/services"
	"solemate_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	mw             *middleware.Middleware
	catalogRoutes  *catalog.CatalogRoutesManager
	cartRoutes     *cart.CartRoutesManager
	checkoutRoutes *checkout.CheckoutRoutesManager
	healthRoutes   *health.HealthRoutesManager
}

func NewRouterManager(logger *gecho.Logger, db *database.DB, cfg *structs.Config, mw *middleware.Middleware) *routerManager {
	sm := services.NewServiceManager(logger, cfg, db)

	return &routerManager{
		mw:             mw,
		catalogRoutes:  catalog.NewCatalogRoutesManager(logger, sm.CatalogService),
		cartRoutes:     cart.NewCartRoutesManager(logger, sm.CartService),
		checkoutRoutes: checkout.NewCheckoutRoutesManager(logger, sm.OrderService, sm.NotifyService),
		healthRoutes:   health.NewHealthRoutesManager(sm.HealthService),
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.catalogRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)

	// Only cart and checkout requests carry a session; catalog and health
	// reads never mint the cookie.
	r.Group(func(r chi.Router) {
		r.Use(rm.mw.EnsureSession())
		rm.cartRoutes.RegisterRoutes(r)
		rm.checkoutRoutes.RegisterRoutes(r)
	})
}
