package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/happyfood/happyfood-backend/api/middleware"
	"github.com/happyfood/happyfood-backend/internal/orders"
	"github.com/happyfood/happyfood-backend/pkg/enums"
	pkgerrors "github.com/happyfood/happyfood-backend/pkg/errors"
)

// principalFrom rebuilds the authenticated actor placed in the context
// by the auth middleware.
func principalFrom(r *http.Request) (orders.Principal, error) {
	userID, err := uuid.Parse(middleware.UserIDFromContext(r.Context()))
	if err != nil {
		return orders.Principal{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	role, err := enums.ParseRole(middleware.RoleFromContext(r.Context()))
	if err != nil {
		return orders.Principal{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	return orders.Principal{UserID: userID, Role: role}, nil
}

func userIDFrom(r *http.Request) (uuid.UUID, error) {
	actor, err := principalFrom(r)
	if err != nil {
		return uuid.Nil, err
	}
	return actor.UserID, nil
}
