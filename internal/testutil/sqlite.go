package testutil

import (
	"context"
	"time"

	"github.com/flexprice/billingcore/internal/domain/commitment"
	"github.com/flexprice/billingcore/internal/domain/customer"
	"github.com/flexprice/billingcore/internal/domain/fixedcharge"
	"github.com/flexprice/billingcore/internal/domain/plan"
	"github.com/flexprice/billingcore/internal/domain/subscription"
	"github.com/flexprice/billingcore/internal/logger"
	"github.com/flexprice/billingcore/internal/postgres"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// sqliteSchema mirrors the postgres migrations with types sqlite understands.
// Time columns are declared TIMESTAMP so the driver scans them into time.Time.
const sqliteSchema = `
CREATE TABLE organizations (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	timezone TEXT,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE customers (
	id TEXT PRIMARY KEY,
	tenant_id TEXT NOT NULL,
	external_id TEXT NOT NULL,
	name TEXT NOT NULL DEFAULT '',
	timezone TEXT,
	status TEXT NOT NULL DEFAULT 'published',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE plans (
	id TEXT PRIMARY KEY,
	tenant_id TEXT NOT NULL,
	name TEXT NOT NULL,
	"interval" TEXT NOT NULL,
	interval_count INTEGER NOT NULL DEFAULT 1,
	pay_in_advance BOOLEAN NOT NULL DEFAULT 0,
	currency TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'published',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE subscriptions (
	id TEXT PRIMARY KEY,
	tenant_id TEXT NOT NULL,
	customer_id TEXT NOT NULL,
	plan_id TEXT NOT NULL,
	subscription_status TEXT NOT NULL,
	billing_time TEXT NOT NULL DEFAULT 'calendar',
	started_at TIMESTAMP NOT NULL,
	terminated_at TIMESTAMP,
	status TEXT NOT NULL DEFAULT 'published',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE invoice_subscriptions (
	id TEXT PRIMARY KEY,
	tenant_id TEXT NOT NULL,
	invoice_id TEXT NOT NULL,
	subscription_id TEXT NOT NULL,
	from_datetime TIMESTAMP NOT NULL,
	to_datetime TIMESTAMP,
	timestamp TIMESTAMP NOT NULL,
	status TEXT NOT NULL DEFAULT 'published',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE commitments (
	id TEXT PRIMARY KEY,
	tenant_id TEXT NOT NULL,
	plan_id TEXT NOT NULL,
	commitment_type TEXT NOT NULL DEFAULT 'minimum_commitment',
	amount_cents INTEGER NOT NULL,
	currency TEXT NOT NULL,
	invoice_display_name TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'published',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE fixed_charges (
	id TEXT PRIMARY KEY,
	tenant_id TEXT NOT NULL,
	plan_id TEXT NOT NULL,
	code TEXT NOT NULL,
	prorated BOOLEAN NOT NULL DEFAULT 0,
	status TEXT NOT NULL DEFAULT 'published',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// NewSQLiteDB opens a private in-memory database carrying the billing schema.
// A single connection keeps every query and transaction on the same database.
func NewSQLiteDB(log *logger.Logger) (*postgres.DB, error) {
	db, err := sqlx.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, err
	}

	return postgres.NewDBFromSqlx(db, log), nil
}

// Seeder writes fixtures through plain inserts, times are stored in UTC
type Seeder struct {
	db *postgres.DB
}

func NewSeeder(db *postgres.DB) *Seeder {
	return &Seeder{db: db}
}

func (s *Seeder) exec(ctx context.Context, query string, args ...interface{}) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(query), args...)
	return err
}

func utcPtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func (s *Seeder) Organization(ctx context.Context, id, timezone string) error {
	var tz interface{}
	if timezone != "" {
		tz = timezone
	}
	return s.exec(ctx, `INSERT INTO organizations (id, name, timezone) VALUES (?, ?, ?)`, id, id, tz)
}

func (s *Seeder) Customer(ctx context.Context, c *customer.Customer) error {
	var tz interface{}
	if c.Timezone != "" {
		tz = c.Timezone
	}
	return s.exec(ctx, `INSERT INTO customers (id, tenant_id, external_id, name, timezone, status) VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.TenantID, c.ExternalID, c.Name, tz, string(c.Status))
}

func (s *Seeder) Plan(ctx context.Context, p *plan.Plan) error {
	return s.exec(ctx, `INSERT INTO plans (id, tenant_id, name, "interval", interval_count, pay_in_advance, currency, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.TenantID, p.Name, string(p.Interval), p.IntervalCount, p.PayInAdvance, p.Currency, string(p.Status))
}

func (s *Seeder) Subscription(ctx context.Context, sub *subscription.Subscription) error {
	return s.exec(ctx, `INSERT INTO subscriptions (id, tenant_id, customer_id, plan_id, subscription_status, billing_time, started_at, terminated_at, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.TenantID, sub.CustomerID, sub.PlanID, string(sub.Status), string(sub.BillingTime),
		sub.StartedAt.UTC(), utcPtr(sub.TerminatedAt), string(sub.BaseModel.Status))
}

func (s *Seeder) InvoiceSubscription(ctx context.Context, is *subscription.InvoiceSubscription) error {
	return s.exec(ctx, `INSERT INTO invoice_subscriptions (id, tenant_id, invoice_id, subscription_id, from_datetime, to_datetime, timestamp, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		is.ID, is.TenantID, is.InvoiceID, is.SubscriptionID, is.FromDatetime.UTC(), utcPtr(is.ToDatetime), is.Timestamp.UTC(), string(is.Status))
}

func (s *Seeder) Commitment(ctx context.Context, c *commitment.Commitment) error {
	return s.exec(ctx, `INSERT INTO commitments (id, tenant_id, plan_id, commitment_type, amount_cents, currency, invoice_display_name, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.TenantID, c.PlanID, string(c.Type), c.AmountCents, c.Currency, c.InvoiceDisplayName, string(c.Status))
}

func (s *Seeder) FixedCharge(ctx context.Context, fc *fixedcharge.FixedCharge) error {
	return s.exec(ctx, `INSERT INTO fixed_charges (id, tenant_id, plan_id, code, prorated, status) VALUES (?, ?, ?, ?, ?, ?)`,
		fc.ID, fc.TenantID, fc.PlanID, fc.Code, fc.Prorated, string(fc.Status))
}
