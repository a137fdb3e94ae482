package database

import (
	"testing"

	"vagas-rmc/internal/textutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSeedData(t *testing.T) {
	data, err := LoadSeedData()
	require.NoError(t, err)

	assert.Len(t, data.Cities, 18)
	assert.Len(t, data.Areas, 15)
	assert.Len(t, data.Segments, 12)
	require.Len(t, data.Plans, 4)

	byType := map[string]SeedPlan{}
	for _, p := range data.Plans {
		byType[p.Type] = p
	}
	assert.Equal(t, 2, byType["FREE"].MaxActiveJobs)
	assert.Equal(t, 5, byType["BASIC"].MaxActiveJobs)
	assert.Equal(t, 15, byType["PROFESSIONAL"].MaxActiveJobs)
	assert.Equal(t, -1, byType["PREMIUM"].MaxActiveJobs)
	assert.False(t, byType["FREE"].CanHighlight)
	assert.True(t, byType["PROFESSIONAL"].CanSearchResume)
	assert.Nil(t, byType["FREE"].PriceYearly)
}

func TestSeedData_CitySlugsMatchNames(t *testing.T) {
	data, err := LoadSeedData()
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, c := range data.Cities {
		assert.Equal(t, textutil.Slugify(c.Name), c.Slug, c.Name)
		assert.False(t, seen[c.Slug], "duplicate slug %s", c.Slug)
		seen[c.Slug] = true
	}
}

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@h:5432/db?sslmode=disable", migrateURL("postgres://u:p@h:5432/db?sslmode=disable"))
	assert.Equal(t, "pgx5://h/db", migrateURL("postgresql://h/db"))
	assert.Equal(t, "pgx5://h/db", migrateURL("pgx5://h/db"))
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Contains(t, names, "0001_init.up.sql")
	assert.Contains(t, names, "0001_init.down.sql")
}
