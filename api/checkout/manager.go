package checkout

import (
	"solemate_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type CheckoutRoutesManager struct {
	logger        *gecho.Logger
	orderService  *services.OrderService
	notifyService *services.NotifyService
}

func NewCheckoutRoutesManager(
	logger *gecho.Logger,
	orderService *services.OrderService,
	notifyService *services.NotifyService,
) *CheckoutRoutesManager {
	return &CheckoutRoutesManager{
		logger:        logger,
		orderService:  orderService,
		notifyService: notifyService,
	}
}

func (crm *CheckoutRoutesManager) RegisterRoutes(r chi.Router) {
	r.Post("/checkout", crm.SubmitOrder)
	r.Post("/contact", crm.SubmitContact)
}
