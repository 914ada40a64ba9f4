package controllers

import (
	"net/http"

	"github.com/happyfood/happyfood-backend/api/responses"
	"github.com/happyfood/happyfood-backend/api/validators"
	"github.com/happyfood/happyfood-backend/internal/deliveries"
	"github.com/happyfood/happyfood-backend/pkg/logger"
)

func DeliveryCreate(svc deliveries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		actor, err := principalFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		orderID, err := validators.UUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var req deliveries.CreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		delivery, err := svc.Create(ctx, actor, orderID, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, delivery)
	}
}

func DeliveryGet(svc deliveries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		actor, err := principalFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		deliveryID, err := validators.UUIDParam(r, "deliveryId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		delivery, err := svc.Get(ctx, actor, deliveryID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, delivery)
	}
}

func DeliverySetStatus(svc deliveries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		actor, err := principalFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		deliveryID, err := validators.UUIDParam(r, "deliveryId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var req deliveries.SetStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		delivery, err := svc.SetStatus(ctx, actor, deliveryID, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, delivery)
	}
}

func DeliveryAddPing(svc deliveries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		actor, err := principalFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		deliveryID, err := validators.UUIDParam(r, "deliveryId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var req deliveries.PingRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		ping, err := svc.AddPing(ctx, actor, deliveryID, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, ping)
	}
}
