// Command seed-db populates a development database with a demo user, the
// default product catalog and an API key bound to that user.
package main

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/smartiq/pim-go/db"
	"github.com/smartiq/pim-go/internal/storage/postgres"
)

type productJSON struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	Category string          `json:"category"`
}

func main() {
	var (
		databaseURL  string
		productsFile string
		login        string
		apiKey       string
		apiKeyPepper string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&productsFile, "products-file", "", "path to products JSON file (embedded catalog when empty)")
	flag.StringVar(&login, "login", "demo", "login of the user to seed")
	flag.StringVar(&apiKey, "api-key", "", "API key to seed (or PIM_SEED_API_KEY env)")
	flag.StringVar(&apiKeyPepper, "api-key-pepper", "", "HMAC pepper for API key hashing (or PIM_API_KEY_PEPPER env)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if apiKey == "" {
		apiKey = os.Getenv("PIM_SEED_API_KEY")
	}
	if apiKeyPepper == "" {
		apiKeyPepper = os.Getenv("PIM_API_KEY_PEPPER")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, productsFile, login, apiKey, apiKeyPepper); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, databaseURL, productsFile, login, apiKey, apiKeyPepper string) error {
	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "create pool")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	raw := db.SeedProducts
	if productsFile != "" {
		raw, err = os.ReadFile(productsFile)
		if err != nil {
			return errors.Wrap(err, "read products file")
		}
	}

	var products []productJSON
	if err := json.Unmarshal(raw, &products); err != nil {
		return errors.Wrap(err, "parse products")
	}

	var userID int64
	err = pool.QueryRow(ctx,
		`INSERT INTO users (login) VALUES ($1)
		 ON CONFLICT (login) DO UPDATE SET login = EXCLUDED.login
		 RETURNING id`, login,
	).Scan(&userID)
	if err != nil {
		return errors.Wrapf(err, "seed user %q", login)
	}
	slog.Info("seeded user", "login", login, "id", userID)

	categories := make(map[string]int64)
	for _, p := range products {
		catID, ok := categories[p.Category]
		if !ok {
			err := pool.QueryRow(ctx,
				`INSERT INTO category (name) VALUES ($1) RETURNING id`, p.Category,
			).Scan(&catID)
			if err != nil {
				return errors.Wrapf(err, "seed category %q", p.Category)
			}
			categories[p.Category] = catID
		}

		_, err := pool.Exec(ctx,
			`INSERT INTO product (name, price, stock, category_id) VALUES ($1, $2, $3, $4)`,
			p.Name, p.Price, p.Stock, catID)
		if err != nil {
			return errors.Wrapf(err, "seed product %q", p.Name)
		}
	}
	slog.Info("seeded catalog", "products", len(products), "categories", len(categories))

	if apiKey != "" {
		mac := hmac.New(sha256.New, []byte(apiKeyPepper))
		mac.Write([]byte(apiKey))
		hash := hex.EncodeToString(mac.Sum(nil))

		_, err := pool.Exec(ctx,
			`INSERT INTO api_keys (key_hash, user_login) VALUES ($1, $2)
			 ON CONFLICT (key_hash) DO NOTHING`, hash, login)
		if err != nil {
			return errors.Wrap(err, "seed api key")
		}
		slog.Info("seeded api key", "login", login)
	}

	return nil
}
