package blacklist

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tripstack/travel-service/reservation/internal/errs"
)

// SetKey holds the customer ids barred from creating reservations.
// The registry is shared with the support tooling that maintains it.
const SetKey = "blacklist:customers"

type Checker struct {
	cli *redis.Client
	log *zap.Logger
}

func NewChecker(cli *redis.Client, log *zap.Logger) *Checker {
	return &Checker{
		cli: cli,
		log: log.Named("blacklist"),
	}
}

func (c *Checker) Check(ctx context.Context, customerID int64) error {
	listed, err := c.cli.SIsMember(ctx, SetKey, customerID).Result()
	if err != nil {
		return errors.Wrap(err, "blacklist check")
	}
	if listed {
		c.log.Warn("blacklisted customer rejected", zap.Int64("customerId", customerID))
		return errs.ErrBlacklisted
	}
	return nil
}
