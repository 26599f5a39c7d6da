package catalog

import (
	"errors"
	"net/http"

	"solemate_server/lib"
	"solemate_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// AttachVariantImage handles POST /products/variants/{id}/images. The
// per-variant image cap is a hard limit; hitting it returns a conflict.
func (crm *CatalogRoutesManager) AttachVariantImage(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	variantID, err := uuid.Parse(idStr)
	if err != nil || variantID == uuid.Nil {
		crm.logger.Warn("Invalid variant ID format", "id", idStr, "error", err)
		gecho.BadRequest(w,
			gecho.WithMessage("error.catalog.invalidVariantId"),
			gecho.Send(),
		)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.AttachVariantImageRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.catalog.invalidRequestBody"),
			gecho.WithData(err),
			gecho.Send(),
		)
		return
	}

	image, err := crm.catalogService.AttachVariantImage(r.Context(), variantID, body.URL, body.AltText, body.Position)
	if err != nil {
		if errors.Is(err, lib.ErrImageLimit) {
			gecho.Conflict(w,
				gecho.WithMessage("error.catalog.variantImageLimit"),
				gecho.Send(),
			)
			return
		}

		crm.logger.Error("Failed to attach variant image", "variant_id", variantID, "error", err)
		gecho.InternalServerError(w,
			gecho.WithMessage("error.catalog.imageAttachFailed"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"image": image,
		}),
		gecho.Send(),
	)
}
