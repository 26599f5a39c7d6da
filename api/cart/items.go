package cart

import (
	"net/http"

	"solemate_server/api/middleware"
	"solemate_server/lib"
	"solemate_server/structs"

	"github.com/MonkyMars/gecho"
)

// SetCartLine handles POST /cart/items. The payload quantity replaces the
// stored one; zero or negative removes the line.
func (crm *CartRoutesManager) SetCartLine(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.AddToCartRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.cart.invalidRequestBody"),
			gecho.WithData(err),
			gecho.Send(),
		)
		return
	}

	token := middleware.SessionToken(r)
	resp, err := crm.cartService.AddOrUpdate(r.Context(), token, body)
	if err != nil {
		crm.logger.Error("Failed to change cart line", "error", err)
		gecho.InternalServerError(w,
			gecho.WithMessage("error.cart.changeFailed"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(resp),
		gecho.Send(),
	)
}

// RemoveCartLine handles DELETE /cart/items. Removing a line that is not in
// the cart succeeds with removed=false.
func (crm *CartRoutesManager) RemoveCartLine(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.RemoveFromCartRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.cart.invalidRequestBody"),
			gecho.WithData(err),
			gecho.Send(),
		)
		return
	}

	if body.CartItemID == nil && body.ProductID == nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.cart.lineIdentityRequired"),
			gecho.Send(),
		)
		return
	}

	token := middleware.SessionToken(r)
	removed, err := crm.cartService.Remove(r.Context(), token, body)
	if err != nil {
		crm.logger.Error("Failed to remove cart line", "error", err)
		gecho.InternalServerError(w,
			gecho.WithMessage("error.cart.removeFailed"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"removed": removed,
		}),
		gecho.Send(),
	)
}
