package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tripstack/travel-service/reservation/internal/errs"
	"github.com/tripstack/travel-service/reservation/internal/events"
	"github.com/tripstack/travel-service/reservation/internal/model"
)

type Config struct {
	Surcharge    decimal.Decimal `envconfig:"PRICE_SURCHARGE" default:"0.20"`
	BaseCurrency string          `envconfig:"BASE_CURRENCY" default:"USD"`
}

type Deps struct {
	Repo      Repository
	Blacklist BlacklistChecker
	Counter   CustomerCounter
	Converter CurrencyConverter
	Notifier  Notifier
	Events    EventProducer
}

type Service struct {
	log       *zap.Logger
	repo      Repository
	blacklist BlacklistChecker
	counter   CustomerCounter
	converter CurrencyConverter
	notifier  Notifier
	events    EventProducer
	cfg       Config
}

func NewService(deps Deps, cfg Config, log *zap.Logger) *Service {
	return &Service{
		log:       log,
		repo:      deps.Repo,
		blacklist: deps.Blacklist,
		counter:   deps.Counter,
		converter: deps.Converter,
		notifier:  deps.Notifier,
		events:    deps.Events,
		cfg:       cfg,
	}
}

// CreateReservation books a stay for the customer: blacklist check, hotel
// and customer lookups, then the insert inside one transaction. The counter
// bump, mail and the stats event go out after commit, best-effort.
func (s *Service) CreateReservation(ctx context.Context, req model.CreateReservationRequest) (model.ReservationResponse, error) {
	if err := s.blacklist.Check(ctx, req.CustomerID); err != nil {
		return model.ReservationResponse{}, err
	}

	var (
		created  model.Reservation
		hotel    model.Hotel
		customer model.Customer
	)
	err := s.repo.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		if hotel, err = s.repo.GetHotel(ctx, req.HotelID); err != nil {
			return err
		}
		if customer, err = s.repo.GetCustomer(ctx, req.CustomerID); err != nil {
			return err
		}
		now := time.Now()
		start := dateOf(now)
		rsv := model.Reservation{
			ReservationUid: uuid.NewString(),
			CustomerID:     customer.ID,
			HotelID:        hotel.ID,
			TotalDays:      req.TotalDays,
			CreatedAt:      now,
			DateStart:      start,
			DateEnd:        start.AddDate(0, 0, req.TotalDays),
			Price:          s.totalPrice(hotel.Price),
		}
		created, err = s.repo.CreateReservation(ctx, rsv)
		return err
	})
	if err != nil {
		return model.ReservationResponse{}, err
	}

	if err := s.counter.Increase(ctx, customer.Dni); err != nil {
		s.log.Error("counter increase", zap.String("dni", customer.Dni), zap.Error(err))
	}
	if req.Email != "" {
		if err := s.notifier.Send(ctx, req.Email, customer.FullName, "reservation"); err != nil {
			s.log.Error("reservation mail", zap.String("email", req.Email), zap.Error(err))
		}
	}
	s.publish(events.TypeCreated, created)

	return model.NewReservationResponse(created, hotel, customer), nil
}

func (s *Service) GetReservation(ctx context.Context, reservationUid string) (model.ReservationResponse, error) {
	rsv, err := s.repo.GetReservation(ctx, reservationUid)
	if err != nil {
		return model.ReservationResponse{}, err
	}
	hotel, err := s.repo.GetHotel(ctx, rsv.HotelID)
	if err != nil {
		return model.ReservationResponse{}, err
	}
	customer, err := s.repo.GetCustomer(ctx, rsv.CustomerID)
	if err != nil {
		return model.ReservationResponse{}, err
	}
	return model.NewReservationResponse(rsv, hotel, customer), nil
}

// UpdateReservation rebooks the stay onto the request's hotel: the stay
// window restarts today and the price is recomputed from the new hotel's
// base price. The owning customer and their counter are left untouched.
func (s *Service) UpdateReservation(ctx context.Context, reservationUid string, req model.UpdateReservationRequest) (model.ReservationResponse, error) {
	var (
		updated  model.Reservation
		hotel    model.Hotel
		customer model.Customer
	)
	err := s.repo.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		if hotel, err = s.repo.GetHotel(ctx, req.HotelID); err != nil {
			return err
		}
		rsv, err := s.repo.GetReservation(ctx, reservationUid)
		if err != nil {
			return err
		}
		now := time.Now()
		start := dateOf(now)
		rsv.HotelID = hotel.ID
		rsv.TotalDays = req.TotalDays
		rsv.CreatedAt = now
		rsv.DateStart = start
		rsv.DateEnd = start.AddDate(0, 0, req.TotalDays)
		rsv.Price = s.totalPrice(hotel.Price)
		if err := s.repo.UpdateReservation(ctx, rsv); err != nil {
			return err
		}
		updated = rsv
		customer, err = s.repo.GetCustomer(ctx, rsv.CustomerID)
		return err
	})
	if err != nil {
		return model.ReservationResponse{}, err
	}
	return model.NewReservationResponse(updated, hotel, customer), nil
}

// DeleteReservation removes the record and, once the delete has
// committed, releases one slot on the owning customer's
// active-reservation counter.
func (s *Service) DeleteReservation(ctx context.Context, reservationUid string) error {
	var (
		deleted  model.Reservation
		customer model.Customer
	)
	err := s.repo.WithinTx(ctx, func(ctx context.Context) error {
		rsv, err := s.repo.GetReservation(ctx, reservationUid)
		if err != nil {
			return err
		}
		if customer, err = s.repo.GetCustomer(ctx, rsv.CustomerID); err != nil {
			return err
		}
		if err := s.repo.DeleteReservation(ctx, rsv.ReservationUid); err != nil {
			return err
		}
		deleted = rsv
		return nil
	})
	if err != nil {
		return err
	}
	if err := s.counter.Decrease(ctx, customer.Dni); err != nil {
		s.log.Error("counter decrease", zap.String("dni", customer.Dni), zap.Error(err))
	}
	s.publish(events.TypeDeleted, deleted)
	return nil
}

// FindPrice quotes the surcharged nightly price of a hotel in the
// requested currency, given as an uppercase ISO code. The base currency
// is answered locally; anything else multiplies by the live quote under
// the base+target pair key.
func (s *Service) FindPrice(ctx context.Context, hotelID int64, currency string) (decimal.Decimal, error) {
	hotel, err := s.repo.GetHotel(ctx, hotelID)
	if err != nil {
		return decimal.Decimal{}, err
	}
	price := s.totalPrice(hotel.Price)

	if currency == s.cfg.BaseCurrency {
		return price, nil
	}

	quotes, err := s.converter.GetQuotes(ctx, currency)
	if err != nil {
		return decimal.Decimal{}, err
	}
	key := s.cfg.BaseCurrency + currency
	rate, ok := quotes[key]
	if !ok {
		return decimal.Decimal{}, errors.Wrap(errs.ErrQuoteMissing, key)
	}
	return price.Mul(rate), nil
}

func (s *Service) totalPrice(base decimal.Decimal) decimal.Decimal {
	return base.Add(base.Mul(s.cfg.Surcharge))
}

func (s *Service) publish(event string, rsv model.Reservation) {
	err := s.events.Publish(events.ReservationEvent{
		Event:          event,
		ReservationUid: rsv.ReservationUid,
		HotelID:        rsv.HotelID,
		CustomerID:     rsv.CustomerID,
		Price:          rsv.Price,
		At:             time.Now(),
	})
	if err != nil {
		s.log.Error("publish event", zap.String("event", event), zap.Error(err))
	}
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
