package cart

import (
	"net/http"

	"solemate_server/api/middleware"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// FetchCart handles GET /cart, returning the session's full cart snapshot
// with the subtotal recomputed from current prices.
func (crm *CartRoutesManager) FetchCart(w http.ResponseWriter, r *http.Request) {
	token := middleware.SessionToken(r)

	snapshot, err := crm.cartService.Snapshot(r.Context(), token)
	if err != nil {
		crm.logger.Error("Failed to fetch cart snapshot", "error", err)
		gecho.InternalServerError(w,
			gecho.WithMessage("error.cart.failedToFetch"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(snapshot),
		gecho.Send(),
	)
}

// FetchToggleStatus handles GET /cart/toggle. The product page uses it to
// decide whether to render an add or a remove button for a line.
func (crm *CartRoutesManager) FetchToggleStatus(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	productID, err := uuid.Parse(query.Get("product_id"))
	if err != nil || productID == uuid.Nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.cart.invalidProductId"),
			gecho.Send(),
		)
		return
	}

	variantID, err := parseOptionalUUID(query.Get("variant_id"))
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.cart.invalidVariantId"),
			gecho.Send(),
		)
		return
	}

	sizeID, err := parseOptionalUUID(query.Get("size_id"))
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.cart.invalidSizeId"),
			gecho.Send(),
		)
		return
	}

	token := middleware.SessionToken(r)
	view, err := crm.cartService.ToggleStatus(r.Context(), token, productID, variantID, sizeID)
	if err != nil {
		crm.logger.Error("Failed to fetch cart toggle status", "error", err)
		gecho.InternalServerError(w,
			gecho.WithMessage("error.cart.failedToFetch"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(view),
		gecho.Send(),
	)
}

func parseOptionalUUID(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
