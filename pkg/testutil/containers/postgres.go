//go:build integration

package containers

import (
	"context"
	"testing"

	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

// Postgres is a throwaway PostgreSQL instance.
type Postgres struct {
	Container *tcpostgres.PostgresContainer
	DSN       string
}

// StartPostgres boots postgres:16-alpine with an empty "cwa" database and
// tears it down when the test finishes.
func StartPostgres(t *testing.T) *Postgres {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("cwa"),
		tcpostgres.WithUsername("cwa"),
		tcpostgres.WithPassword("cwa"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("postgres connection string: %v", err)
	}
	return &Postgres{Container: container, DSN: dsn}
}
