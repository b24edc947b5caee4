package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/bersihin/bersihin/internal/domain/errors"
	"github.com/bersihin/bersihin/internal/domain/model"
	"github.com/bersihin/bersihin/internal/domain/repository"
)

// uniqueViolation is the PostgreSQL error code raised by unique
// constraint conflicts, used to detect order number races.
const uniqueViolation = "23505"

// sequenceRetries bounds the number of attempts to claim the next order
// number under concurrent bookings.
const sequenceRetries = 5

// pgxPool is the subset of pgxpool.Pool the storage uses; tests swap in
// a mock through newPgxPool.
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

type orderRepository struct {
	storage *Storage
}

type paymentRepository struct {
	storage *Storage
}

type cleanerRepository struct {
	storage *Storage
}

type catalogRepository struct {
	storage *Storage
}

type feedbackRepository struct {
	storage *Storage
}

type notificationRepository struct {
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
func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Payments() repository.PaymentRepository {
	return &paymentRepository{storage: s}
}

func (s *Storage) Cleaners() repository.CleanerRepository {
	return &cleanerRepository{storage: s}
}

func (s *Storage) Catalog() repository.CatalogRepository {
	return &catalogRepository{storage: s}
}

func (s *Storage) Feedback() repository.FeedbackRepository {
	return &feedbackRepository{storage: s}
}

func (s *Storage) Notifications() repository.NotificationRepository {
	return &notificationRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS packages (
            id UUID PRIMARY KEY,
            name TEXT NOT NULL,
            base_price BIGINT NOT NULL,
            active BOOLEAN NOT NULL DEFAULT TRUE
        )`,
		`CREATE TABLE IF NOT EXISTS extras (
            id UUID PRIMARY KEY,
            name TEXT NOT NULL,
            price BIGINT NOT NULL,
            active BOOLEAN NOT NULL DEFAULT TRUE
        )`,
		`CREATE TABLE IF NOT EXISTS cleaners (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            external_id TEXT UNIQUE NOT NULL,
            name TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            order_number BIGINT UNIQUE NOT NULL,
            customer_id UUID NOT NULL,
            worker_id UUID REFERENCES cleaners(id),
            package_id UUID NOT NULL REFERENCES packages(id),
            status TEXT NOT NULL,
            lat DOUBLE PRECISION NOT NULL,
            lng DOUBLE PRECISION NOT NULL,
            address TEXT NOT NULL,
            scheduled_at TIMESTAMPTZ NOT NULL,
            before_photos TEXT[] NOT NULL DEFAULT '{}',
            after_photos TEXT[] NOT NULL DEFAULT '{}',
            base_price BIGINT NOT NULL,
            distance_price BIGINT NOT NULL,
            extra_price BIGINT NOT NULL,
            surge DOUBLE PRECISION NOT NULL DEFAULT 1,
            total_price BIGINT NOT NULL,
            distance_meters BIGINT NOT NULL DEFAULT 0,
            eta_minutes INT NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_extras (
            order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
            extra_id UUID NOT NULL,
            name TEXT NOT NULL,
            price BIGINT NOT NULL,
            PRIMARY KEY (order_id, extra_id)
        )`,
		`CREATE TABLE IF NOT EXISTS payments (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            order_id UUID UNIQUE NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
            method TEXT NOT NULL,
            amount BIGINT NOT NULL,
            status TEXT NOT NULL,
            transaction_id TEXT UNIQUE,
            token TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            paid_at TIMESTAMPTZ
        )`,
		`CREATE TABLE IF NOT EXISTS tips (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            order_id UUID UNIQUE NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
            amount BIGINT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS ratings (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            order_id UUID UNIQUE NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
            stars INT NOT NULL,
            comment TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS notifications (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            user_id UUID NOT NULL,
            order_id UUID NOT NULL,
            title TEXT NOT NULL,
            message TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

const orderColumns = `id, order_number, customer_id, worker_id, package_id, status, lat, lng, address,
            scheduled_at, before_photos, after_photos, base_price, distance_price, extra_price, surge,
            total_price, distance_meters, eta_minutes, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.OrderNumber, &o.CustomerID, &o.WorkerID, &o.PackageID, &o.Status,
		&o.Lat, &o.Lng, &o.Address, &o.ScheduledAt, &o.BeforePhotos, &o.AfterPhotos,
		&o.BasePrice, &o.DistancePrice, &o.ExtraPrice, &o.Surge,
		&o.TotalPrice, &o.DistanceMeters, &o.ETAMinutes, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) CreateWithPayment(ctx context.Context, draft repository.OrderDraft) (*model.Order, error) {
	var order *model.Order
	var attemptErr error

	// The order number is claimed with a MAX()+1 subselect; the unique
	// constraint turns a concurrent claim into a retryable conflict.
	for attempt := 0; attempt < sequenceRetries; attempt++ {
		attemptErr = r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
			const insertOrder = `INSERT INTO orders
                (order_number, customer_id, worker_id, package_id, status, lat, lng, address, scheduled_at,
                 base_price, distance_price, extra_price, surge, total_price, distance_meters, eta_minutes)
                VALUES ((SELECT COALESCE(MAX(order_number), 0) + 1 FROM orders),
                        $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
                RETURNING ` + orderColumns

			var err error
			order, err = scanOrder(tx.QueryRow(ctx, insertOrder,
				draft.CustomerID, draft.WorkerID, draft.PackageID, model.OrderStatusPending,
				draft.Lat, draft.Lng, draft.Address, draft.ScheduledAt,
				draft.BasePrice, draft.DistancePrice, draft.ExtraPrice, draft.Surge,
				draft.TotalPrice, draft.DistanceMeters, draft.ETAMinutes))
			if err != nil {
				return err
			}

			for _, extra := range draft.Extras {
				const insertExtra = `INSERT INTO order_extras (order_id, extra_id, name, price) VALUES ($1, $2, $3, $4)`
				if _, err := tx.Exec(ctx, insertExtra, order.ID, extra.ID, extra.Name, extra.Price); err != nil {
					return err
				}
			}
			order.Extras = draft.Extras

			const insertPayment = `INSERT INTO payments (order_id, method, amount, status) VALUES ($1, $2, $3, $4)`
			if _, err := tx.Exec(ctx, insertPayment, order.ID, draft.PaymentMethod, draft.TotalPrice, model.PaymentStatusPending); err != nil {
				return err
			}
			return nil
		})
		if attemptErr == nil {
			return order, nil
		}

		var pgErr *pgconn.PgError
		if !errors.As(attemptErr, &pgErr) || pgErr.Code != uniqueViolation {
			return nil, attemptErr
		}
	}

	return nil, fmt.Errorf("claim order number: %w", attemptErr)
}

func (r *orderRepository) Get(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadExtras(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetByNumber(ctx context.Context, number int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_number=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, number))
	if err != nil {
		return nil, err
	}
	if err := r.loadExtras(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) loadExtras(ctx context.Context, order *model.Order) error {
	const query = `SELECT extra_id, name, price FROM order_extras WHERE order_id=$1 ORDER BY name`
	rows, err := r.storage.pool.Query(ctx, query, order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var e model.OrderExtra
		if err := rows.Scan(&e.ID, &e.Name, &e.Price); err != nil {
			return err
		}
		order.Extras = append(order.Extras, e)
	}
	return rows.Err()
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE customer_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, from, to model.OrderStatus) (bool, error) {
	const query = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2 AND status=$3`
	tag, err := r.storage.pool.Exec(ctx, query, to, orderID, from)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.Get(ctx, orderID); err != nil {
			return false, err
		}
		return false, nil
	}
	return true, nil
}

func (r *orderRepository) AssignWorker(ctx context.Context, orderID, workerID uuid.UUID) (bool, error) {
	const query = `UPDATE orders SET worker_id=$1, status=$2, updated_at=NOW() WHERE id=$3 AND status IN ($4, $5)`
	tag, err := r.storage.pool.Exec(ctx, query,
		workerID, model.OrderStatusInProgress, orderID, model.OrderStatusPending, model.OrderStatusProcessing)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.Get(ctx, orderID); err != nil {
			return false, err
		}
		return false, nil
	}
	return true, nil
}

func (r *orderRepository) SetAfterPhotos(ctx context.Context, orderID uuid.UUID, photos []string) error {
	const query = `UPDATE orders SET after_photos=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, photos, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) Complete(ctx context.Context, orderID uuid.UUID) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const updateOrder = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2 AND status=$3`
		tag, err := tx.Exec(ctx, updateOrder, model.OrderStatusCompleted, orderID, model.OrderStatusInProgress)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}

		// Cash payments stay PENDING until completion settles them.
		const settlePayment = `UPDATE payments SET status=$1, paid_at=NOW() WHERE order_id=$2 AND status=$3`
		if _, err := tx.Exec(ctx, settlePayment, model.PaymentStatusPaid, orderID, model.PaymentStatusPending); err != nil {
			return err
		}
		return nil
	})
}

func (r *orderRepository) Cancel(ctx context.Context, orderID uuid.UUID, notification repository.NotificationDraft) (bool, error) {
	cancelled := false
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const updateOrder = `UPDATE orders SET status=$1, updated_at=NOW()
                             WHERE id=$2 AND status IN ($3, $4)`
		tag, err := tx.Exec(ctx, updateOrder, model.OrderStatusCancelled, orderID,
			model.OrderStatusPending, model.OrderStatusProcessing)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return nil
		}

		const insertNotification = `INSERT INTO notifications (user_id, order_id, title, message) VALUES ($1, $2, $3, $4)`
		if _, err := tx.Exec(ctx, insertNotification, notification.UserID, notification.OrderID, notification.Title, notification.Message); err != nil {
			return err
		}
		cancelled = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return cancelled, nil
}

func (r *orderRepository) StaleUnpaid(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
              WHERE status=$1
                AND id IN (SELECT order_id FROM payments WHERE status=$2 AND method<>$3 AND created_at < $4)
              ORDER BY created_at
              LIMIT $5`
	rows, err := r.storage.pool.Query(ctx, query, model.OrderStatusPending, model.PaymentStatusPending,
		model.PaymentMethodCash, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) Delete(ctx context.Context, ids ...uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM orders WHERE id = ANY($1)`, ids)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}

		// Renumbering happens in two phases so the intermediate states
		// never collide with the unique constraint.
		if _, err := tx.Exec(ctx, `UPDATE orders SET order_number = -order_number`); err != nil {
			return err
		}
		const renumber = `UPDATE orders SET order_number = numbered.rn
                          FROM (SELECT id, ROW_NUMBER() OVER (ORDER BY created_at, id) AS rn FROM orders) AS numbered
                          WHERE orders.id = numbered.id`
		if _, err := tx.Exec(ctx, renumber); err != nil {
			return err
		}
		return nil
	}, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
}

// --- PaymentRepository implementation ---

const paymentColumns = `id, order_id, method, amount, status, transaction_id, token, created_at, paid_at`

func scanPayment(row rowScanner) (*model.Payment, error) {
	var p model.Payment
	err := row.Scan(&p.ID, &p.OrderID, &p.Method, &p.Amount, &p.Status, &p.TransactionID, &p.Token, &p.CreatedAt, &p.PaidAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepository) GetByOrder(ctx context.Context, orderID uuid.UUID) (*model.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE order_id=$1`
	return scanPayment(r.storage.pool.QueryRow(ctx, query, orderID))
}

func (r *paymentRepository) GetByTransactionID(ctx context.Context, transactionID string) (*model.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE transaction_id=$1`
	return scanPayment(r.storage.pool.QueryRow(ctx, query, transactionID))
}

func (r *paymentRepository) AttachToken(ctx context.Context, orderID uuid.UUID, token string) error {
	const query = `UPDATE payments SET token=$1 WHERE order_id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, token, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *paymentRepository) MarkPaid(ctx context.Context, paymentID uuid.UUID, transactionID string, notification repository.NotificationDraft) (bool, error) {
	settled := false
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var txID *string
		if transactionID != "" {
			txID = &transactionID
		}

		const settle = `UPDATE payments SET status=$1, transaction_id=COALESCE($2, transaction_id), paid_at=NOW()
                        WHERE id=$3 AND status=$4 RETURNING order_id`
		var orderID uuid.UUID
		err := tx.QueryRow(ctx, settle, model.PaymentStatusPaid, txID, paymentID, model.PaymentStatusPending).Scan(&orderID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return err
		}

		const advanceOrder = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2 AND status=$3`
		if _, err := tx.Exec(ctx, advanceOrder, model.OrderStatusProcessing, orderID, model.OrderStatusPending); err != nil {
			return err
		}

		const insertNotification = `INSERT INTO notifications (user_id, order_id, title, message) VALUES ($1, $2, $3, $4)`
		if _, err := tx.Exec(ctx, insertNotification, notification.UserID, notification.OrderID, notification.Title, notification.Message); err != nil {
			return err
		}
		settled = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return settled, nil
}

// --- CleanerRepository implementation ---

func (r *cleanerRepository) EnsureBookkeeping(ctx context.Context, externalID, name string) (uuid.UUID, error) {
	const query = `INSERT INTO cleaners (external_id, name) VALUES ($1, $2)
                   ON CONFLICT (external_id) DO UPDATE SET name = EXCLUDED.name
                   RETURNING id`
	var id uuid.UUID
	if err := r.storage.pool.QueryRow(ctx, query, externalID, name).Scan(&id); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *cleanerRepository) Get(ctx context.Context, id uuid.UUID) (*model.Cleaner, error) {
	const query = `SELECT id, external_id, name, created_at FROM cleaners WHERE id=$1`
	var c model.Cleaner
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.ExternalID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// --- CatalogRepository implementation ---

func (r *catalogRepository) PackageByID(ctx context.Context, id uuid.UUID) (*model.Package, error) {
	const query = `SELECT id, name, base_price, active FROM packages WHERE id=$1`
	var p model.Package
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.BasePrice, &p.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *catalogRepository) ExtrasByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Extra, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	const query = `SELECT id, name, price, active FROM extras WHERE id = ANY($1)`
	rows, err := r.storage.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Extra
	for rows.Next() {
		var e model.Extra
		if err := rows.Scan(&e.ID, &e.Name, &e.Price, &e.Active); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- FeedbackRepository implementation ---

func (r *feedbackRepository) CreateTip(ctx context.Context, orderID uuid.UUID, amount int64) (*model.Tip, error) {
	const query = `INSERT INTO tips (order_id, amount) VALUES ($1, $2) RETURNING id, created_at`
	var t model.Tip
	err := r.storage.pool.QueryRow(ctx, query, orderID, amount).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	t.OrderID = orderID
	t.Amount = amount
	return &t, nil
}

func (r *feedbackRepository) TipByOrder(ctx context.Context, orderID uuid.UUID) (*model.Tip, error) {
	const query = `SELECT id, order_id, amount, created_at FROM tips WHERE order_id=$1`
	var t model.Tip
	err := r.storage.pool.QueryRow(ctx, query, orderID).Scan(&t.ID, &t.OrderID, &t.Amount, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *feedbackRepository) CreateRating(ctx context.Context, orderID uuid.UUID, stars int, comment string) (*model.Rating, error) {
	const query = `INSERT INTO ratings (order_id, stars, comment) VALUES ($1, $2, $3) RETURNING id, created_at`
	var rating model.Rating
	err := r.storage.pool.QueryRow(ctx, query, orderID, stars, comment).Scan(&rating.ID, &rating.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	rating.OrderID = orderID
	rating.Stars = stars
	rating.Comment = comment
	return &rating, nil
}

// --- NotificationRepository implementation ---

func (r *notificationRepository) Create(ctx context.Context, draft repository.NotificationDraft) error {
	const query = `INSERT INTO notifications (user_id, order_id, title, message) VALUES ($1, $2, $3, $4)`
	_, err := r.storage.pool.Exec(ctx, query, draft.UserID, draft.OrderID, draft.Title, draft.Message)
	return err
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Notification, error) {
	const query = `SELECT id, user_id, order_id, title, message, created_at
                   FROM notifications WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.OrderID, &n.Title, &n.Message, &n.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error, opts ...pgx.TxOptions) (err error) {
	txOpts := pgx.TxOptions{}
	if len(opts) > 0 {
		txOpts = opts[0]
	}

	tx, err := s.pool.BeginTx(ctx, txOpts)
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

// Pool exposes the underlying connection pool for advanced use.
func (s *Storage) Pool() pgxPool {
	return s.pool
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
