package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	domainErrors "github.com/boostlane/panel/internal/domain/errors"
	"github.com/boostlane/panel/internal/domain/model"
	"github.com/boostlane/panel/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage depends on; tests swap in
// a pgxmock pool through the same seam.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type catalogRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type walletRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Catalog() repository.CatalogRepository {
	return &catalogRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Wallets() repository.WalletRepository {
	return &walletRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            currency TEXT NOT NULL DEFAULT 'USD',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS services (
            id BIGINT PRIMARY KEY,
            name TEXT NOT NULL,
            category TEXT NOT NULL DEFAULT '',
            rate_per_thousand NUMERIC(20, 8) NOT NULL,
            native_currency TEXT NOT NULL,
            min_order INT NOT NULL,
            max_order INT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            batch_id TEXT NOT NULL,
            service_id BIGINT NOT NULL REFERENCES services(id),
            link TEXT NOT NULL,
            quantity INT NOT NULL,
            charge NUMERIC(20, 8) NOT NULL,
            currency TEXT NOT NULL,
            status TEXT NOT NULL,
            provider_order_id TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS wallets (
            user_id BIGINT PRIMARY KEY REFERENCES users(id),
            balance NUMERIC(20, 8) NOT NULL DEFAULT 0,
            spent NUMERIC(20, 8) NOT NULL DEFAULT 0,
            currency TEXT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS wallet_transactions (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            type TEXT NOT NULL,
            amount NUMERIC(20, 8) NOT NULL,
            currency TEXT NOT NULL,
            batch_id TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_batch ON orders(user_id, batch_id)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_wallet_tx_user ON wallet_transactions(user_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

func parseDecimal(raw string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse numeric %q: %w", raw, err)
	}
	return value, nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, login, passwordHash, currency string) (*model.User, error) {
	const query = `INSERT INTO users (login, password_hash, currency) VALUES ($1, $2, $3) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, login, passwordHash, currency).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Login = login
	u.PasswordHash = passwordHash
	u.Currency = currency
	return &u, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	const query = `SELECT id, login, password_hash, currency, created_at FROM users WHERE login=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, login).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Currency, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, login, password_hash, currency, created_at FROM users WHERE id=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Currency, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// --- CatalogRepository implementation ---

const serviceColumns = `id, name, category, rate_per_thousand::text, native_currency, min_order, max_order`

func scanService(row pgx.Rows) (model.ServiceDescriptor, error) {
	var svc model.ServiceDescriptor
	var rate string
	if err := row.Scan(&svc.ID, &svc.Name, &svc.Category, &rate, &svc.NativeCurrency, &svc.MinOrder, &svc.MaxOrder); err != nil {
		return model.ServiceDescriptor{}, err
	}
	parsed, err := parseDecimal(rate)
	if err != nil {
		return model.ServiceDescriptor{}, err
	}
	svc.RatePerThousand = parsed
	return svc, nil
}

func (r *catalogRepository) List(ctx context.Context) ([]model.ServiceDescriptor, error) {
	query := `SELECT ` + serviceColumns + ` FROM services ORDER BY category, id`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.ServiceDescriptor
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *catalogRepository) ResolveMany(ctx context.Context, ids []int64) (map[int64]model.ServiceDescriptor, error) {
	if len(ids) == 0 {
		return map[int64]model.ServiceDescriptor{}, nil
	}

	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = ANY($1)`
	rows, err := r.storage.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int64]model.ServiceDescriptor, len(ids))
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		result[svc.ID] = svc
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, user_id, batch_id, service_id, link, quantity, charge::text, currency, status, provider_order_id, created_at, updated_at`

func scanOrder(row pgx.Rows) (model.Order, error) {
	var o model.Order
	var charge string
	if err := row.Scan(&o.ID, &o.UserID, &o.BatchID, &o.ServiceID, &o.Link, &o.Quantity, &charge, &o.Currency, &o.Status, &o.ProviderOrderID, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return model.Order{}, err
	}
	parsed, err := parseDecimal(charge)
	if err != nil {
		return model.Order{}, err
	}
	o.Charge = parsed
	return o, nil
}

func (r *orderRepository) CreateBatch(ctx context.Context, userID int64, batchID string, orders []model.NewOrder, total decimal.Decimal, currency string) error {
	if len(orders) == 0 {
		return domainErrors.ErrEmptyBatch
	}

	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const balanceQuery = `SELECT balance::text FROM wallets WHERE user_id=$1 FOR UPDATE`
		var rawBalance string
		balance := decimal.Zero
		err := tx.QueryRow(ctx, balanceQuery, userID).Scan(&rawBalance)
		switch {
		case err == nil:
			if balance, err = parseDecimal(rawBalance); err != nil {
				return err
			}
		case errors.Is(err, pgx.ErrNoRows):
			// No wallet row yet: balance stays zero.
		default:
			return err
		}

		if balance.Round(2).LessThan(total) {
			return domainErrors.ErrInsufficientBalance
		}

		const debitQuery = `UPDATE wallets SET balance = balance - $2, spent = spent + $2 WHERE user_id=$1`
		if _, err := tx.Exec(ctx, debitQuery, userID, total.String()); err != nil {
			return err
		}

		const ledgerQuery = `INSERT INTO wallet_transactions (user_id, type, amount, currency, batch_id) VALUES ($1, $2, $3, $4, $5)`
		if _, err := tx.Exec(ctx, ledgerQuery, userID, model.TransactionCharge, total.String(), currency, batchID); err != nil {
			return err
		}

		const insertQuery = `INSERT INTO orders (user_id, batch_id, service_id, link, quantity, charge, currency, status)
                             VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
		for _, order := range orders {
			if _, err := tx.Exec(ctx, insertQuery, userID, batchID, order.ServiceID, order.Link, order.Quantity, order.Charge.String(), order.Currency, model.OrderStatusPending); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 ORDER BY created_at DESC`
	return r.queryOrders(ctx, query, userID)
}

func (r *orderRepository) ListByBatch(ctx context.Context, userID int64, batchID string) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 AND batch_id=$2 ORDER BY id`
	return r.queryOrders(ctx, query, userID, batchID)
}

func (r *orderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) SelectBatchForDispatch(ctx context.Context, limit int) ([]model.Order, error) {
	selectQuery := `SELECT ` + orderColumns + `
                    FROM orders
                    WHERE status = 'PENDING'
                    ORDER BY created_at
                    LIMIT $1
                    FOR UPDATE SKIP LOCKED`

	var orders []model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			o, err := scanOrder(rows)
			if err != nil {
				return err
			}
			orders = append(orders, o)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		for i := range orders {
			if _, err := tx.Exec(ctx, `UPDATE orders SET status='IN_PROGRESS', updated_at=NOW() WHERE id=$1`, orders[i].ID); err != nil {
				return err
			}
			orders[i].Status = model.OrderStatusInProgress
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus, providerOrderID *string) error {
	const query = `UPDATE orders SET status=$1, provider_order_id=COALESCE($2, provider_order_id), updated_at=NOW() WHERE id=$3`
	_, err := r.storage.pool.Exec(ctx, query, status, providerOrderID, orderID)
	return err
}

// --- WalletRepository implementation ---

func (r *walletRepository) Summary(ctx context.Context, userID int64) (*model.WalletSummary, error) {
	const query = `SELECT balance::text, spent::text, currency FROM wallets WHERE user_id=$1`
	var rawBalance, rawSpent string
	var summary model.WalletSummary
	err := r.storage.pool.QueryRow(ctx, query, userID).Scan(&rawBalance, &rawSpent, &summary.Currency)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if summary.Balance, err = parseDecimal(rawBalance); err != nil {
		return nil, err
	}
	if summary.Spent, err = parseDecimal(rawSpent); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *walletRepository) TopUp(ctx context.Context, userID int64, amount decimal.Decimal, currency string) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const upsertQuery = `INSERT INTO wallets (user_id, balance, spent, currency)
                             VALUES ($1, $2, 0, $3)
                             ON CONFLICT (user_id) DO UPDATE SET balance = wallets.balance + EXCLUDED.balance`
		if _, err := tx.Exec(ctx, upsertQuery, userID, amount.String(), currency); err != nil {
			return err
		}

		const ledgerQuery = `INSERT INTO wallet_transactions (user_id, type, amount, currency) VALUES ($1, $2, $3, $4)`
		if _, err := tx.Exec(ctx, ledgerQuery, userID, model.TransactionTopUp, amount.String(), currency); err != nil {
			return err
		}
		return nil
	})
}

func (r *walletRepository) Transactions(ctx context.Context, userID int64) ([]model.WalletTransaction, error) {
	const query = `SELECT id, user_id, type, amount::text, currency, batch_id, created_at
                   FROM wallet_transactions WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.WalletTransaction
	for rows.Next() {
		var w model.WalletTransaction
		var amount string
		if err := rows.Scan(&w.ID, &w.UserID, &w.Type, &amount, &w.Currency, &w.BatchID, &w.CreatedAt); err != nil {
			return nil, err
		}
		if w.Amount, err = parseDecimal(amount); err != nil {
			return nil, err
		}
		result = append(result, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
