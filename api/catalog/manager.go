package catalog

import (
	"solemate_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type CatalogRoutesManager struct {
	logger         *gecho.Logger
	catalogService *services.CatalogService
}

func NewCatalogRoutesManager(
	logger *gecho.Logger,
	catalogService *services.CatalogService,
) *CatalogRoutesManager {
	return &CatalogRoutesManager{
		logger:         logger,
		catalogService: catalogService,
	}
}

func (crm *CatalogRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/shop", crm.FetchShopPage)
	r.Get("/products/{id}", crm.FetchProductDetail)
	r.Post("/products/variants/{id}/images", crm.AttachVariantImage)
}
