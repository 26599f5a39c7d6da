package checkout

import (
	"context"
	"errors"
	"net/http"

	"solemate_server/api/middleware"
	"solemate_server/lib"
	"solemate_server/structs"

	"github.com/MonkyMars/gecho"
)

// SubmitOrder handles POST /checkout: it validates the form, commits the
// cart into an immutable order and returns the confirmation. The chat
// notification runs after the commit and never affects the response.
func (crm *CheckoutRoutesManager) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CheckoutRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.checkout.invalidRequestBody"),
			gecho.WithData(err),
			gecho.Send(),
		)
		return
	}

	token := middleware.SessionToken(r)
	confirmation, err := crm.orderService.Submit(r.Context(), token, body)
	if err != nil {
		var ve *lib.ValidationError
		if errors.As(err, &ve) {
			gecho.BadRequest(w,
				gecho.WithMessage("error.checkout.validationFailed"),
				gecho.WithData(ve),
				gecho.Send(),
			)
			return
		}

		crm.logger.Error("Checkout failed", "error", err)
		gecho.InternalServerError(w,
			gecho.WithMessage("error.checkout.failed"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.checkout.orderCreated"),
		gecho.WithData(confirmation),
		gecho.Send(),
	)
}

// SubmitContact handles POST /contact. The submission only feeds the chat
// notifier, so the response is a success as soon as the payload is valid.
func (crm *CheckoutRoutesManager) SubmitContact(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.ContactRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.contact.invalidRequestBody"),
			gecho.WithData(err),
			gecho.Send(),
		)
		return
	}

	go func() {
		sent, err := crm.notifyService.NotifyContact(context.Background(), body)
		if err != nil {
			crm.logger.Warn("Contact notification failed", gecho.Field("error", err))
		} else if !sent {
			crm.logger.Debug("Contact notification skipped, notifier not configured")
		}
	}()

	gecho.Success(w,
		gecho.WithMessage("success.contact.received"),
		gecho.Send(),
	)
}
