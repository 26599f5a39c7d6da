package services

import (
	"solemate_server/database"
	"solemate_server/structs"

	"github.com/MonkyMars/gecho"
)

type ServiceManager struct {
	CacheService   *CacheService
	HealthService  *HealthService
	CatalogService *CatalogService
	CartService    *CartService
	NotifyService  *NotifyService
	OrderService   *OrderService
}

func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB) *ServiceManager {
	cacheService := NewCacheService(logger, cfg)
	healthService := NewHealthService(logger, db)
	catalogService := NewCatalogService(logger, cfg, db, cacheService)
	cartService := NewCartService(logger, cfg, db, cacheService)
	notifyService := NewNotifyService(logger, cfg)
	orderService := NewOrderService(logger, cfg, db, cartService, notifyService)

	return &ServiceManager{
		CacheService:   cacheService,
		HealthService:  healthService,
		CatalogService: catalogService,
		CartService:    cartService,
		NotifyService:  notifyService,
		OrderService:   orderService,
	}
}
