package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tripstack/travel-service/reservation/internal/errs"
	"github.com/tripstack/travel-service/reservation/internal/model"
)

type Repository interface {
	GetHotel(ctx context.Context, id int64) (model.Hotel, error)
	GetCustomer(ctx context.Context, id int64) (model.Customer, error)
	GetReservation(ctx context.Context, reservationUid string) (model.Reservation, error)
	CreateReservation(ctx context.Context, rsv model.Reservation) (model.Reservation, error)
	UpdateReservation(ctx context.Context, rsv model.Reservation) error
	DeleteReservation(ctx context.Context, reservationUid string) error
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	hotelTableName       = `hotel`
	customerTableName    = `customer`
	reservationTableName = `reservation`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type txKey struct{}

// WithinTx runs fn with a transaction bound to the context; every
// repository call made with that context lands on the same transaction.
// Rolled back when fn errors, committed otherwise.
func (r *repository) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return fn(ctx)
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			r.log.Error("tx rollback", zap.Error(rbErr))
		}
		return err
	}
	return tx.Commit()
}

type executor interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

func (r *repository) ext(ctx context.Context) executor {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return r.db
}

func (r *repository) GetHotel(ctx context.Context, id int64) (model.Hotel, error) {
	q, args, err := qb.Select("id", "name", "city", "price").
		From(hotelTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Hotel{}, err
	}
	var hotel model.Hotel
	if err := r.ext(ctx).GetContext(ctx, &hotel, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Hotel{}, errs.NotFound("hotel")
		}
		return model.Hotel{}, err
	}
	return hotel, nil
}

func (r *repository) GetCustomer(ctx context.Context, id int64) (model.Customer, error) {
	q, args, err := qb.Select("id", "dni", "full_name").
		From(customerTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Customer{}, err
	}
	var customer model.Customer
	if err := r.ext(ctx).GetContext(ctx, &customer, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Customer{}, errs.NotFound("customer")
		}
		return model.Customer{}, err
	}
	return customer, nil
}

func (r *repository) GetReservation(ctx context.Context, reservationUid string) (model.Reservation, error) {
	q, args, err := qb.Select("id", "reservation_uid", "customer_id", "hotel_id", "total_days", "created_at", "date_start", "date_end", "price").
		From(reservationTableName).
		Where(sq.Eq{"reservation_uid": reservationUid}).
		ToSql()
	if err != nil {
		return model.Reservation{}, err
	}
	var rsv model.Reservation
	if err := r.ext(ctx).GetContext(ctx, &rsv, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Reservation{}, errs.NotFound("reservation")
		}
		return model.Reservation{}, err
	}
	return rsv, nil
}

func (r *repository) CreateReservation(ctx context.Context, rsv model.Reservation) (model.Reservation, error) {
	q, args, err := qb.Insert(reservationTableName).
		Columns("reservation_uid", "customer_id", "hotel_id", "total_days", "created_at", "date_start", "date_end", "price").
		Values(rsv.ReservationUid, rsv.CustomerID, rsv.HotelID, rsv.TotalDays, rsv.CreatedAt, rsv.DateStart, rsv.DateEnd, rsv.Price).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Reservation{}, err
	}
	var created model.Reservation
	if err := r.ext(ctx).GetContext(ctx, &created, q, args...); err != nil {
		if entity, ok := fkEntity(err); ok {
			return model.Reservation{}, errs.NotFound(entity)
		}
		r.log.Error("CreateReservation", zap.String("q", q), zap.Any("args", args))
		return model.Reservation{}, err
	}
	return created, nil
}

func (r *repository) UpdateReservation(ctx context.Context, rsv model.Reservation) error {
	q, args, err := qb.Update(reservationTableName).
		Set("hotel_id", rsv.HotelID).
		Set("total_days", rsv.TotalDays).
		Set("created_at", rsv.CreatedAt).
		Set("date_start", rsv.DateStart).
		Set("date_end", rsv.DateEnd).
		Set("price", rsv.Price).
		Where(sq.Eq{"reservation_uid": rsv.ReservationUid}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.ext(ctx).ExecContext(ctx, q, args...)
	if err != nil {
		if entity, ok := fkEntity(err); ok {
			return errs.NotFound(entity)
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.NotFound("reservation")
	}
	return nil
}

func (r *repository) DeleteReservation(ctx context.Context, reservationUid string) error {
	q, args, err := qb.Delete(reservationTableName).
		Where(sq.Eq{"reservation_uid": reservationUid}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.ext(ctx).ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.NotFound("reservation")
	}
	return nil
}

// fkEntity maps a foreign key violation on reservation writes to the
// entity whose row was missing.
func fkEntity(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.ForeignKeyViolation {
		return "", false
	}
	switch pgErr.ConstraintName {
	case "reservation_hotel_id_fkey":
		return "hotel", true
	case "reservation_customer_id_fkey":
		return "customer", true
	}
	return "", false
}
