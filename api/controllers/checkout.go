package controllers

import (
	"net/http"

	"github.com/happyfood/happyfood-backend/api/responses"
	"github.com/happyfood/happyfood-backend/api/validators"
	"github.com/happyfood/happyfood-backend/internal/checkout"
	"github.com/happyfood/happyfood-backend/pkg/logger"
)

// Checkout converts the caller's cart into a numbered order.
func Checkout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := userIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var req checkout.Request
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		order, err := svc.Checkout(ctx, userID, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			logCtx := logg.WithFields(ctx, map[string]any{
				"order_id":     order.ID.String(),
				"order_number": order.FormattedNumber(),
			})
			logg.Info(logCtx, "checkout.completed")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
