package database

import (
	"context"
	_ "embed"
	"fmt"
	"log"

	"vagas-rmc/config"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

// SeedEntry is a name+slug reference row (city, job area or segment).
type SeedEntry struct {
	Name string `yaml:"name"`
	Slug string `yaml:"slug"`
}

// SeedPlan mirrors a row of the plans table.
type SeedPlan struct {
	Type            string   `yaml:"type"`
	Name            string   `yaml:"name"`
	MaxActiveJobs   int      `yaml:"max_active_jobs"`
	MaxJobDays      int      `yaml:"max_job_days"`
	CanHighlight    bool     `yaml:"can_highlight"`
	CanFeature      bool     `yaml:"can_feature"`
	CanSearchResume bool     `yaml:"can_search_resume"`
	PriceMonthly    float64  `yaml:"price_monthly"`
	PriceYearly     *float64 `yaml:"price_yearly"`
}

// SeedData is the reference data loaded at startup.
type SeedData struct {
	Cities   []SeedEntry `yaml:"cities"`
	Areas    []SeedEntry `yaml:"areas"`
	Segments []SeedEntry `yaml:"segments"`
	Plans    []SeedPlan  `yaml:"plans"`
}

// LoadSeedData parses the embedded seed file.
func LoadSeedData() (*SeedData, error) {
	var data SeedData
	if err := yaml.Unmarshal(seedYAML, &data); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	return &data, nil
}

// Seed upserts the reference data by slug (plans by type), so running it
// again only refreshes names and plan limits. When cfg names an admin
// account it is created once and never overwritten.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.SeedConfig) error {
	data, err := LoadSeedData()
	if err != nil {
		return err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for table, entries := range map[string][]SeedEntry{
		"cities":    data.Cities,
		"job_areas": data.Areas,
		"segments":  data.Segments,
	} {
		if err := upsertEntries(ctx, tx, table, entries); err != nil {
			return err
		}
	}

	for _, p := range data.Plans {
		_, err := tx.Exec(ctx, `
			INSERT INTO plans (type, name, max_active_jobs, max_job_days, can_highlight, can_feature, can_search_resume, price_monthly, price_yearly)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (type) DO UPDATE SET
				name = EXCLUDED.name,
				max_active_jobs = EXCLUDED.max_active_jobs,
				max_job_days = EXCLUDED.max_job_days,
				can_highlight = EXCLUDED.can_highlight,
				can_feature = EXCLUDED.can_feature,
				can_search_resume = EXCLUDED.can_search_resume,
				price_monthly = EXCLUDED.price_monthly,
				price_yearly = EXCLUDED.price_yearly`,
			p.Type, p.Name, p.MaxActiveJobs, p.MaxJobDays, p.CanHighlight, p.CanFeature, p.CanSearchResume, p.PriceMonthly, p.PriceYearly)
		if err != nil {
			return fmt.Errorf("failed to seed plan %s: %w", p.Type, err)
		}
	}

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO users (email, password_hash, role, is_active, consented_at, consent_version)
			VALUES ($1, $2, 'ADMIN', TRUE, NOW(), '1.0')
			ON CONFLICT (email) DO NOTHING`, cfg.AdminEmail, string(hash))
		if err != nil {
			return fmt.Errorf("failed to seed admin account: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	log.Printf("Seed applied: %d cities, %d areas, %d segments, %d plans",
		len(data.Cities), len(data.Areas), len(data.Segments), len(data.Plans))
	return nil
}

// upsertEntries writes name+slug rows. table is one of the fixed names above.
func upsertEntries(ctx context.Context, tx pgx.Tx, table string, entries []SeedEntry) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, slug) VALUES ($1, $2)
		ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name`, table)

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(query, e.Name, e.Slug)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to seed %s: %w", table, err)
	}
	return nil
}
