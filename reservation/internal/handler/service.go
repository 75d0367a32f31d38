package handler

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tripstack/travel-service/reservation/internal/model"
	"github.com/tripstack/travel-service/reservation/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type ReservationService interface {
	CreateReservation(ctx context.Context, req model.CreateReservationRequest) (model.ReservationResponse, error)
	GetReservation(ctx context.Context, reservationUid string) (model.ReservationResponse, error)
	UpdateReservation(ctx context.Context, reservationUid string, req model.UpdateReservationRequest) (model.ReservationResponse, error)
	DeleteReservation(ctx context.Context, reservationUid string) error
	FindPrice(ctx context.Context, hotelID int64, currency string) (decimal.Decimal, error)
}

var _ ReservationService = (*service.Service)(nil)
