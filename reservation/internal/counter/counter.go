package counter

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// KeyPrefix + dni holds the customer's active-reservation tally.
const KeyPrefix = "reservations:active:"

type Counter struct {
	cli *redis.Client
	log *zap.Logger
}

func NewCounter(cli *redis.Client, log *zap.Logger) *Counter {
	return &Counter{
		cli: cli,
		log: log.Named("counter"),
	}
}

func (c *Counter) Increase(ctx context.Context, dni string) error {
	n, err := c.cli.Incr(ctx, KeyPrefix+dni).Result()
	if err != nil {
		return errors.Wrap(err, "counter increase")
	}
	c.log.Debug("counter increased", zap.String("dni", dni), zap.Int64("active", n))
	return nil
}

func (c *Counter) Decrease(ctx context.Context, dni string) error {
	n, err := c.cli.Decr(ctx, KeyPrefix+dni).Result()
	if err != nil {
		return errors.Wrap(err, "counter decrease")
	}
	c.log.Debug("counter decreased", zap.String("dni", dni), zap.Int64("active", n))
	return nil
}
