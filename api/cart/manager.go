package cart

import (
	"solemate_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type CartRoutesManager struct {
	logger      *gecho.Logger
	cartService *services.CartService
}

func NewCartRoutesManager(
	logger *gecho.Logger,
	cartService *services.CartService,
) *CartRoutesManager {
	return &CartRoutesManager{
		logger:      logger,
		cartService: cartService,
	}
}

func (crm *CartRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/cart", crm.FetchCart)
	r.Get("/cart/toggle", crm.FetchToggleStatus)
	r.Post("/cart/items", crm.SetCartLine)
	r.Delete("/cart/items", crm.RemoveCartLine)
}
