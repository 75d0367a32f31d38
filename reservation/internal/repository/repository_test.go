package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tripstack/travel-service/reservation/internal/errs"
	"github.com/tripstack/travel-service/reservation/internal/model"
)

func newRepo(t *testing.T) (*repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo, err := NewRepository(sqlx.NewDb(db, "sqlmock"), zap.NewExample())
	require.NoError(t, err)
	return repo, mock
}

func TestRepository_GetHotel(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`SELECT id, name, city, price FROM hotel WHERE id = $1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "city", "price"}).
			AddRow(int64(1), "Gran Via Palace", "Madrid", "100.00"))

	hotel, err := repo.GetHotel(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "Gran Via Palace", hotel.Name)
	require.True(t, hotel.Price.Equal(decimal.RequireFromString("100")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetHotel_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`SELECT id, name, city, price FROM hotel WHERE id = $1`).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "city", "price"}))

	_, err := repo.GetHotel(context.Background(), 9)
	require.True(t, errs.IsNotFound(err))
	require.EqualError(t, err, "hotel not found")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetCustomer_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`SELECT id, dni, full_name FROM customer WHERE id = $1`).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "dni", "full_name"}))

	_, err := repo.GetCustomer(context.Background(), 9)
	require.EqualError(t, err, "customer not found")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateReservation(t *testing.T) {
	repo, mock := newRepo(t)

	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	start := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	rsv := model.Reservation{
		ReservationUid: "f7cdc58f-2caf-4b15-9727-f89dcc629b27",
		CustomerID:     7,
		HotelID:        1,
		TotalDays:      3,
		CreatedAt:      now,
		DateStart:      start,
		DateEnd:        start.AddDate(0, 0, 3),
		Price:          decimal.RequireFromString("120"),
	}

	mock.ExpectQuery(`INSERT INTO reservation (reservation_uid,customer_id,hotel_id,total_days,created_at,date_start,date_end,price) VALUES ($1,$2,$3,$4,$5,$6,$7,$8) returning *`).
		WithArgs(rsv.ReservationUid, rsv.CustomerID, rsv.HotelID, rsv.TotalDays, rsv.CreatedAt, rsv.DateStart, rsv.DateEnd, rsv.Price).
		WillReturnRows(sqlmock.NewRows([]string{"id", "reservation_uid", "customer_id", "hotel_id", "total_days", "created_at", "date_start", "date_end", "price"}).
			AddRow(int64(42), rsv.ReservationUid, rsv.CustomerID, rsv.HotelID, rsv.TotalDays, rsv.CreatedAt, rsv.DateStart, rsv.DateEnd, "120.00"))

	created, err := repo.CreateReservation(context.Background(), rsv)
	require.NoError(t, err)
	require.Equal(t, int64(42), created.ID)
	require.True(t, created.Price.Equal(rsv.Price))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateReservation_FKViolation(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		wantErr    string
	}{
		{"missing hotel", "reservation_hotel_id_fkey", "hotel not found"},
		{"missing customer", "reservation_customer_id_fkey", "customer not found"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepo(t)

			rsv := model.Reservation{
				ReservationUid: "f7cdc58f-2caf-4b15-9727-f89dcc629b27",
				CustomerID:     7,
				HotelID:        1,
				TotalDays:      3,
				Price:          decimal.RequireFromString("120"),
			}
			mock.ExpectQuery(`INSERT INTO reservation (reservation_uid,customer_id,hotel_id,total_days,created_at,date_start,date_end,price) VALUES ($1,$2,$3,$4,$5,$6,$7,$8) returning *`).
				WithArgs(rsv.ReservationUid, rsv.CustomerID, rsv.HotelID, rsv.TotalDays, rsv.CreatedAt, rsv.DateStart, rsv.DateEnd, rsv.Price).
				WillReturnError(&pgconn.PgError{
					Code:           pgerrcode.ForeignKeyViolation,
					ConstraintName: tt.constraint,
				})

			_, err := repo.CreateReservation(context.Background(), rsv)
			require.True(t, errs.IsNotFound(err))
			require.EqualError(t, err, tt.wantErr)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_UpdateReservation_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	rsv := model.Reservation{
		ReservationUid: "83575e12-7ce0-48ee-9931-51919ff3c9ee",
		HotelID:        1,
		TotalDays:      4,
		Price:          decimal.RequireFromString("240"),
	}

	mock.ExpectExec(`UPDATE reservation SET hotel_id = $1, total_days = $2, created_at = $3, date_start = $4, date_end = $5, price = $6 WHERE reservation_uid = $7`).
		WithArgs(rsv.HotelID, rsv.TotalDays, rsv.CreatedAt, rsv.DateStart, rsv.DateEnd, rsv.Price, rsv.ReservationUid).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateReservation(context.Background(), rsv)
	require.EqualError(t, err, "reservation not found")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteReservation(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(`DELETE FROM reservation WHERE reservation_uid = $1`).
		WithArgs("f7cdc58f-2caf-4b15-9727-f89dcc629b27").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeleteReservation(context.Background(), "f7cdc58f-2caf-4b15-9727-f89dcc629b27"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteReservation_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(`DELETE FROM reservation WHERE reservation_uid = $1`).
		WithArgs("unknown").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteReservation(context.Background(), "unknown")
	require.EqualError(t, err, "reservation not found")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_WithinTx_Commit(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, name, city, price FROM hotel WHERE id = $1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "city", "price"}).
			AddRow(int64(1), "Gran Via Palace", "Madrid", "100.00"))
	mock.ExpectCommit()

	err := repo.WithinTx(context.Background(), func(ctx context.Context) error {
		_, err := repo.GetHotel(ctx, 1)
		return err
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_WithinTx_Rollback(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := repo.WithinTx(context.Background(), func(ctx context.Context) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}
