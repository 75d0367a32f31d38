package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Hotel struct {
	ID    int64           `json:"id" db:"id"`
	Name  string          `json:"name" db:"name"`
	City  string          `json:"city" db:"city"`
	Price decimal.Decimal `json:"price" db:"price"`
}

type Customer struct {
	ID       int64  `json:"id" db:"id"`
	Dni      string `json:"dni" db:"dni"`
	FullName string `json:"fullName" db:"full_name"`
}

type Reservation struct {
	ID             int64           `json:"-" db:"id"`
	ReservationUid string          `json:"reservationUid" db:"reservation_uid"`
	CustomerID     int64           `json:"customerId" db:"customer_id"`
	HotelID        int64           `json:"hotelId" db:"hotel_id"`
	TotalDays      int             `json:"totalDays" db:"total_days"`
	CreatedAt      time.Time       `json:"createdAt" db:"created_at"`
	DateStart      time.Time       `json:"dateStart" db:"date_start"`
	DateEnd        time.Time       `json:"dateEnd" db:"date_end"`
	Price          decimal.Decimal `json:"price" db:"price"`
}

type CreateReservationRequest struct {
	HotelID    int64  `json:"hotelId" validate:"required,gt=0"`
	CustomerID int64  `json:"customerId" validate:"required,gt=0"`
	TotalDays  int    `json:"totalDays" validate:"required,gte=1"`
	Email      string `json:"email" validate:"omitempty,email"`
}

type UpdateReservationRequest struct {
	HotelID   int64 `json:"hotelId" validate:"required,gt=0"`
	TotalDays int   `json:"totalDays" validate:"required,gte=1"`
}

type ReservationResponse struct {
	ReservationUid string          `json:"reservationUid"`
	Hotel          Hotel           `json:"hotel"`
	Customer       Customer        `json:"customer"`
	TotalDays      int             `json:"totalDays"`
	CreatedAt      time.Time       `json:"createdAt"`
	DateStart      time.Time       `json:"dateStart"`
	DateEnd        time.Time       `json:"dateEnd"`
	Price          decimal.Decimal `json:"price"`
}

func NewReservationResponse(rsv Reservation, hotel Hotel, customer Customer) ReservationResponse {
	return ReservationResponse{
		ReservationUid: rsv.ReservationUid,
		Hotel:          hotel,
		Customer:       customer,
		TotalDays:      rsv.TotalDays,
		CreatedAt:      rsv.CreatedAt,
		DateStart:      rsv.DateStart,
		DateEnd:        rsv.DateEnd,
		Price:          rsv.Price,
	}
}

type PriceResponse struct {
	HotelID  int64           `json:"hotelId"`
	Currency string          `json:"currency"`
	Price    decimal.Decimal `json:"price"`
}
