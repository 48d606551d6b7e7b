// Command catalog-ingest bulk-imports products from gzipped CSV exports
// (name,price,stock,category per line). Files are parsed concurrently; a
// bloom filter screens out product names already inserted so re-running an
// ingest over overlapping exports stays cheap.
package main

import (
	"bufio"
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	pgzip "github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/smartiq/pim-go/internal/storage/postgres"
)

const (
	bloomCapacity = 1_000_000
	bloomFPR      = 0.001
)

type productRow struct {
	name     string
	price    decimal.Decimal
	stock    int
	category string
}

func main() {
	var (
		dataDir     string
		databaseURL string
	)

	flag.StringVar(&dataDir, "data-dir", "data", "directory containing *.csv.gz product exports")
	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, dataDir, databaseURL); err != nil {
		slog.Error("ingest failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, dataDir, databaseURL string) error {
	files, err := filepath.Glob(filepath.Join(dataDir, "*.csv.gz"))
	if err != nil {
		return errors.Wrap(err, "list data files")
	}
	if len(files) == 0 {
		return errors.Errorf("no *.csv.gz files in %s", dataDir)
	}

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "create pool")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	return ingest(ctx, files, func(ctx context.Context, rows <-chan productRow) error {
		return insert(ctx, pool, rows)
	})
}

// ingest fans parsing out over the files and funnels rows into a single
// insert function, which keeps category creation serial. All goroutines
// share one errgroup context, so an insert failure cancels the parsers
// instead of leaving them blocked on a full channel nobody drains.
func ingest(ctx context.Context, files []string, insertFn func(context.Context, <-chan productRow) error) error {
	seen := bloom.NewWithEstimates(bloomCapacity, bloomFPR)
	var seenMu sync.Mutex

	rows := make(chan productRow, 1024)

	g, gctx := errgroup.WithContext(ctx)

	parsers, pctx := errgroup.WithContext(gctx)
	for _, file := range files {
		parsers.Go(func() error {
			return parseFile(pctx, file, seen, &seenMu, rows)
		})
	}
	g.Go(func() error {
		defer close(rows)
		if err := parsers.Wait(); err != nil {
			return errors.Wrap(err, "parse")
		}
		return nil
	})
	g.Go(func() error {
		return insertFn(gctx, rows)
	})

	return g.Wait()
}

func parseFile(ctx context.Context, path string, seen *bloom.BloomFilter, mu *sync.Mutex, out chan<- productRow) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	gz, err := pgzip.NewReader(f)
	if err != nil {
		return errors.Wrapf(err, "gunzip %s", path)
	}
	defer gz.Close()

	lines := 0
	scanner := bufio.NewScanner(gz)
	for scanner.Scan() {
		lines++
		row, err := parseLine(scanner.Text())
		if err != nil {
			slog.Warn("skipping malformed line", "file", path, "line", lines, "error", err)
			continue
		}

		mu.Lock()
		dup := seen.TestOrAddString(row.name)
		mu.Unlock()
		if dup {
			continue
		}

		select {
		case out <- row:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "scan %s", path)
	}

	slog.Info("parsed file", "file", path, "lines", lines)
	return nil
}

func parseLine(line string) (productRow, error) {
	parts := strings.Split(strings.TrimSpace(line), ",")
	if len(parts) != 4 {
		return productRow{}, errors.Errorf("want 4 fields, got %d", len(parts))
	}

	price, err := decimal.NewFromString(parts[1])
	if err != nil {
		return productRow{}, errors.Wrap(err, "price")
	}
	if price.IsNegative() {
		return productRow{}, errors.New("negative price")
	}

	stock, err := strconv.Atoi(parts[2])
	if err != nil {
		return productRow{}, errors.Wrap(err, "stock")
	}

	return productRow{
		name:     parts[0],
		price:    price,
		stock:    stock,
		category: parts[3],
	}, nil
}

func insert(ctx context.Context, pool *pgxpool.Pool, rows <-chan productRow) error {
	categories := make(map[string]int64)
	inserted := 0

	for row := range rows {
		catID, ok := categories[row.category]
		if !ok {
			err := pool.QueryRow(ctx,
				`INSERT INTO category (name) VALUES ($1) RETURNING id`, row.category,
			).Scan(&catID)
			if err != nil {
				return errors.Wrapf(err, "create category %q", row.category)
			}
			categories[row.category] = catID
		}

		_, err := pool.Exec(ctx,
			`INSERT INTO product (name, price, stock, category_id) VALUES ($1, $2, $3, $4)`,
			row.name, row.price, row.stock, catID)
		if err != nil {
			return errors.Wrapf(err, "insert product %q", row.name)
		}
		inserted++
	}

	slog.Info("ingest complete", "products", inserted, "categories", len(categories))
	return nil
}
