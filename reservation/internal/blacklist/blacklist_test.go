package blacklist_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tripstack/travel-service/reservation/internal/blacklist"
	"github.com/tripstack/travel-service/reservation/internal/errs"
)

func TestChecker_Check(t *testing.T) {
	t.Parallel()
	srv := miniredis.RunT(t)
	cli := redis.NewClient(&redis.Options{Addr: srv.Addr()})

	_, err := cli.SAdd(context.Background(), blacklist.SetKey, 13).Result()
	require.NoError(t, err)

	checker := blacklist.NewChecker(cli, zap.NewExample())

	require.NoError(t, checker.Check(context.Background(), 7))
	require.ErrorIs(t, checker.Check(context.Background(), 13), errs.ErrBlacklisted)
}
