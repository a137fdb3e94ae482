//go:build integration

package integration_tests

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"vagas-rmc/config"
	"vagas-rmc/internal/database"
	"vagas-rmc/internal/models"
	"vagas-rmc/internal/storage/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	testDB     *pgxpool.Pool
	testDBOnce sync.Once
	testDBErr  error
)

// getTestPool connects to TEST_DATABASE_URL or, when it is unset, starts a
// throwaway postgres container. Schema and reference data are applied once.
func getTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}

	testDBOnce.Do(func() {
		ctx := context.Background()
		dsn := os.Getenv("TEST_DATABASE_URL")
		if dsn == "" {
			dsn, testDBErr = startPostgres(ctx)
			if testDBErr != nil {
				return
			}
		}
		if testDBErr = database.Migrate(dsn); testDBErr != nil {
			return
		}
		if testDB, testDBErr = pgxpool.New(ctx, dsn); testDBErr != nil {
			return
		}
		testDBErr = database.Seed(ctx, testDB, config.SeedConfig{Enabled: true})
	})
	require.NoError(t, testDBErr, "Failed to prepare test database")
	return testDB
}

// The container lives for the whole test binary; the reaper removes it.
func startPostgres(ctx context.Context) (string, error) {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "vagas_rmc_test",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return "", fmt.Errorf("failed to get mapped port: %w", err)
	}
	return fmt.Sprintf("postgres://postgres:postgres@%s:%s/vagas_rmc_test?sslmode=disable", host, port.Port()), nil
}

// cleanupTables empties the given tables. Reference data is left alone.
func cleanupTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool, tables ...string) {
	t.Helper()
	_, err := pool.Exec(ctx, "TRUNCATE "+strings.Join(tables, ", ")+" CASCADE")
	require.NoError(t, err, "Failed to clean up tables %v", tables)
}

// seededCity returns a city from the reference seed.
func seededCity(t *testing.T, ctx context.Context, pool *pgxpool.Pool) models.City {
	t.Helper()
	cities, err := postgres.NewReferenceRepo(pool).ListCities(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, cities, "seed should load the RMC cities")
	return cities[0]
}

// seededArea returns a job area from the reference seed.
func seededArea(t *testing.T, ctx context.Context, pool *pgxpool.Pool) models.JobArea {
	t.Helper()
	areas, err := postgres.NewReferenceRepo(pool).ListAreas(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, areas, "seed should load the job areas")
	return areas[0]
}

func ptrString(s string) *string { return &s }
