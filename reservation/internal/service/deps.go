package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tripstack/travel-service/reservation/internal/blacklist"
	"github.com/tripstack/travel-service/reservation/internal/counter"
	"github.com/tripstack/travel-service/reservation/internal/currency"
	"github.com/tripstack/travel-service/reservation/internal/events"
	"github.com/tripstack/travel-service/reservation/internal/model"
	"github.com/tripstack/travel-service/reservation/internal/notify"
)

//go:generate go run github.com/golang/mock/mockgen -source=deps.go -destination=mocks/mock.go

type Repository interface {
	GetHotel(ctx context.Context, id int64) (model.Hotel, error)
	GetCustomer(ctx context.Context, id int64) (model.Customer, error)
	GetReservation(ctx context.Context, reservationUid string) (model.Reservation, error)
	CreateReservation(ctx context.Context, rsv model.Reservation) (model.Reservation, error)
	UpdateReservation(ctx context.Context, rsv model.Reservation) error
	DeleteReservation(ctx context.Context, reservationUid string) error
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type BlacklistChecker interface {
	Check(ctx context.Context, customerID int64) error
}

type CustomerCounter interface {
	Increase(ctx context.Context, dni string) error
	Decrease(ctx context.Context, dni string) error
}

type CurrencyConverter interface {
	GetQuotes(ctx context.Context, currency string) (map[string]decimal.Decimal, error)
}

type Notifier interface {
	Send(ctx context.Context, to, recipientName, templateName string) error
}

type EventProducer interface {
	Publish(ev events.ReservationEvent) error
}

var (
	_ BlacklistChecker  = (*blacklist.Checker)(nil)
	_ CustomerCounter   = (*counter.Counter)(nil)
	_ CurrencyConverter = (*currency.Client)(nil)
	_ Notifier          = (*notify.Mailer)(nil)
	_ EventProducer     = (*events.Producer)(nil)
)
