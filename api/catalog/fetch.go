package catalog

import (
	"errors"
	"net/http"

	"solemate_server/handling"
	"solemate_server/lib"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// FetchShopPage handles GET /shop with filtering, sorting and pagination.
// An out-of-range page number never errors; it clamps to the nearest
// valid page.
func (crm *CatalogRoutesManager) FetchShopPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	opts, err := handling.ParseCatalogListOptions(r)
	if err != nil {
		crm.logger.Warn("Invalid query parameters", "error", err)
		gecho.BadRequest(w,
			gecho.WithMessage("error.invalidQueryParameters"),
			gecho.WithData(err.Error()),
			gecho.Send(),
		)
		return
	}

	crm.logger.Debug("Fetching shop page",
		gecho.Field("page", opts.Page),
		gecho.Field("sort", opts.Sort),
		gecho.Field("search", opts.Search),
	)

	result, err := crm.catalogService.ListProducts(ctx, opts)
	if err != nil {
		crm.logger.Error("Failed to fetch shop page", "error", err)
		gecho.InternalServerError(w,
			gecho.WithMessage("error.catalog.failedToFetch"),
			gecho.WithData(err.Error()),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"products":   result.Products,
			"pagination": result.Pagination,
			"filters":    result.Filters,
			"meta": map[string]any{
				"query_time_ms": result.QueryTime.Milliseconds(),
				"count":         len(result.Products),
			},
		}),
		gecho.Send(),
	)
}

// FetchProductDetail handles GET /products/{id} for the product page.
func (crm *CatalogRoutesManager) FetchProductDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil || id == uuid.Nil {
		crm.logger.Warn("Invalid product ID format", "id", idStr, "error", err)
		gecho.BadRequest(w,
			gecho.WithMessage("error.catalog.invalidProductId"),
			gecho.Send(),
		)
		return
	}

	product, err := crm.catalogService.GetProductDetail(ctx, id)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w,
				gecho.WithMessage("error.catalog.productNotFound"),
				gecho.Send(),
			)
			return
		}

		crm.logger.Error("Failed to fetch product detail", "id", id, "error", err)
		gecho.InternalServerError(w,
			gecho.WithMessage("error.catalog.failedToFetchOne"),
			gecho.WithData(err.Error()),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"product": product,
		}),
		gecho.Send(),
	)
}
