package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"bloom-market/internal/config"
	"bloom-market/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, a connection pool, and
// the full schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	logger := zerolog.Nop()
	pool, err := database.NewPool(ctx, config.DatabaseConfig{
		URL:             connStr,
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
	}, logger)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := database.Migrate(ctx, pool, logger); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// Two seeded shops with two products each. The ids are fixed so tests can
// reference them directly.
const (
	SeedShopKyiv = "665f1f77bcf86cd799439001"
	SeedShopLviv = "665f1f77bcf86cd799439002"

	SeedProductRoses   = "665f1f77bcf86cd799439011"
	SeedProductTulips  = "665f1f77bcf86cd799439012"
	SeedProductPeonies = "665f1f77bcf86cd799439013"
	SeedProductOrchid  = "665f1f77bcf86cd799439014"
)

// SeedCatalog inserts two shops and their products.
func SeedCatalog(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	shops := []struct {
		id, name, address string
	}{
		{SeedShopKyiv, "Kvity na Khreshchatyku", "Khreshchatyk St, 22, Kyiv"},
		{SeedShopLviv, "Lviv Flower Atelier", "Rynok Square, 14, Lviv"},
	}
	for _, s := range shops {
		_, err := pool.Exec(ctx,
			"INSERT INTO shops (id, name, address) VALUES ($1, $2, $3)",
			s.id, s.name, s.address,
		)
		if err != nil {
			t.Fatalf("failed to seed shop %s: %v", s.id, err)
		}
	}

	products := []struct {
		id, shopID, name string
		priceCents       int64
		isBouquet        bool
	}{
		{SeedProductRoses, SeedShopKyiv, "Red Rose Bouquet", 89900, true},
		{SeedProductTulips, SeedShopKyiv, "White Tulips", 45000, false},
		{SeedProductPeonies, SeedShopLviv, "Peony Mix", 120000, true},
		{SeedProductOrchid, SeedShopLviv, "Phalaenopsis Orchid", 65000, false},
	}
	for _, p := range products {
		_, err := pool.Exec(ctx,
			`INSERT INTO products (id, shop_id, name, price_cents, image_url, is_bouquet)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			p.id, p.shopID, p.name, p.priceCents, "https://cdn.example.com/"+p.id+".jpg", p.isBouquet,
		)
		if err != nil {
			t.Fatalf("failed to seed product %s: %v", p.id, err)
		}
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"order_items", "orders", "customers", "products", "shops"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
