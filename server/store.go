package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	"github.com/zoe5466/Gudiee-sub001/pricing"
	"github.com/zoe5466/Gudiee-sub001/types"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned for duplicate emails and repeated payments.
	ErrConflict = errors.New("conflict")
	// ErrUnauthorized is returned for bad credentials or tokens.
	ErrUnauthorized = errors.New("unauthorized")
)

// Store persists users, sessions and orders on database/sql.
type Store struct {
	db     *sql.DB
	driver string
}

// OpenStore opens the database with one of the sqlite, sqlite3 or postgres
// drivers and creates the schema if needed.
func OpenStore(ctx context.Context, driver, dsn string) (*Store, error) {
	switch driver {
	case "sqlite", "sqlite3", "postgres":
	default:
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", driver, err)
	}
	if driver != "postgres" {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close() //nolint:errcheck
		return nil, fmt.Errorf("ping db: %w", err)
	}
	s := &Store{db: db, driver: driver}
	if err := s.ensureSchema(ctx); err != nil {
		db.Close() //nolint:errcheck
		return nil, err
	}
	return s, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// rebind rewrites ? placeholders to $n for postgres.
func rebind(driver, query string) string {
	if driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *Store) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.db.ExecContext(ctx, rebind(s.driver, query), args...)
}

func (s *Store) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return s.db.QueryRowContext(ctx, rebind(s.driver, query), args...)
}

var schema = []string{`
CREATE TABLE IF NOT EXISTS users (
    id            TEXT PRIMARY KEY,
    name          TEXT NOT NULL,
    email         TEXT NOT NULL UNIQUE,
    phone         TEXT NOT NULL DEFAULT '',
    role          TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    location      TEXT NOT NULL DEFAULT '',
    bio           TEXT NOT NULL DEFAULT '',
    languages     TEXT NOT NULL DEFAULT '[]',
    specialties   TEXT NOT NULL DEFAULT '[]',
    experience    INTEGER NOT NULL DEFAULT 0,
    id_number     TEXT NOT NULL DEFAULT '',
    kyc_status    TEXT NOT NULL DEFAULT '',
    created_at    TEXT NOT NULL
)`, `
CREATE TABLE IF NOT EXISTS sessions (
    token      TEXT PRIMARY KEY,
    user_id    TEXT NOT NULL REFERENCES users(id),
    created_at TEXT NOT NULL
)`, `
CREATE TABLE IF NOT EXISTS orders (
    id               TEXT PRIMARY KEY,
    service_id       TEXT NOT NULL,
    customer_id      TEXT NOT NULL DEFAULT '',
    date             TEXT NOT NULL,
    start_time       TEXT NOT NULL,
    participants     INTEGER NOT NULL,
    customer         TEXT NOT NULL,
    special_requests TEXT NOT NULL DEFAULT '',
    document         TEXT NOT NULL DEFAULT '',
    base_price       BIGINT NOT NULL,
    subtotal         BIGINT NOT NULL,
    service_fee      BIGINT NOT NULL,
    tax              BIGINT NOT NULL,
    total            BIGINT NOT NULL,
    status           TEXT NOT NULL,
    payment_method   TEXT NOT NULL DEFAULT '',
    payment_token    TEXT NOT NULL DEFAULT '',
    created_at       TEXT NOT NULL,
    paid_at          TEXT NOT NULL DEFAULT ''
)`}

func (s *Store) ensureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}

var nowUTC = func() time.Time { return time.Now().UTC() }

func formatTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate key")
}

// CreateUser stores a new account with a bcrypt hashed password and opens
// a session for it.
func (s *Store) CreateUser(ctx context.Context, req types.RegisterRequest) (*types.AuthResult, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	u := types.User{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     req.Phone,
		Role:      req.Role,
		CreatedAt: nowUTC(),
	}
	_, err = s.exec(ctx,
		`INSERT INTO users (id, name, email, phone, role, password_hash, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.Phone, u.Role, string(hash), formatTime(u.CreatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("inserting user: %w", err)
	}
	token, err := s.openSession(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	return &types.AuthResult{User: u, Token: token}, nil
}

// Authenticate checks an email and password and opens a session.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*types.AuthResult, error) {
	var id, hash string
	err := s.queryRow(ctx, `SELECT id, password_hash FROM users WHERE email = ?`,
		strings.ToLower(strings.TrimSpace(email))).Scan(&id, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, ErrUnauthorized
	}
	u, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	token, err := s.openSession(ctx, id)
	if err != nil {
		return nil, err
	}
	return &types.AuthResult{User: *u, Token: token}, nil
}

func (s *Store) openSession(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	if _, err := s.exec(ctx, `INSERT INTO sessions (token, user_id, created_at) VALUES (?, ?, ?)`,
		token, userID, formatTime(nowUTC())); err != nil {
		return "", fmt.Errorf("opening session: %w", err)
	}
	return token, nil
}

// UserIDForToken resolves a bearer token.
func (s *Store) UserIDForToken(ctx context.Context, token string) (string, error) {
	var id string
	err := s.queryRow(ctx, `SELECT user_id FROM sessions WHERE token = ?`, token).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrUnauthorized
	}
	if err != nil {
		return "", fmt.Errorf("looking up session: %w", err)
	}
	return id, nil
}

// GetUser loads a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*types.User, error) {
	var (
		u                     types.User
		langs, specs, created string
	)
	err := s.queryRow(ctx, `SELECT id, name, email, phone, role, location, bio, languages, specialties, experience, kyc_status, created_at
FROM users WHERE id = ?`, id).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.Location, &u.Bio,
		&langs, &specs, &u.Experience, &u.KYCStatus, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}
	_ = json.Unmarshal([]byte(langs), &u.Languages)
	_ = json.Unmarshal([]byte(specs), &u.Specialties)
	u.CreatedAt = parseTime(created)
	return &u, nil
}

// UpdateUser applies the non-empty fields of req. Submitting an ID number
// marks the account's identity verification as pending.
func (s *Store) UpdateUser(ctx context.Context, req types.UpdateUserRequest) (*types.User, error) {
	u, err := s.GetUser(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	setStr := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setStr(&u.Name, req.Name)
	setStr(&u.Phone, req.Phone)
	setStr(&u.Location, req.Location)
	setStr(&u.Bio, req.Bio)
	if req.Languages != nil {
		u.Languages = req.Languages
	}
	if req.Specialties != nil {
		u.Specialties = req.Specialties
	}
	if req.Experience > 0 {
		u.Experience = req.Experience
	}
	idNumber := ""
	if req.IDNumber != "" {
		idNumber = strings.ToUpper(req.IDNumber)
		u.KYCStatus = types.KYCPending
	}

	langs, _ := json.Marshal(u.Languages)
	specs, _ := json.Marshal(u.Specialties)
	_, err = s.exec(ctx, `UPDATE users SET name = ?, phone = ?, location = ?, bio = ?, languages = ?, specialties = ?,
experience = ?, kyc_status = ?, id_number = CASE WHEN ? = '' THEN id_number ELSE ? END WHERE id = ?`,
		u.Name, u.Phone, u.Location, u.Bio, string(langs), string(specs), u.Experience, u.KYCStatus,
		idNumber, idNumber, u.ID)
	if err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}
	return u, nil
}

// CreateOrder stores a pending order priced from the catalog price.
func (s *Store) CreateOrder(ctx context.Context, customerID string, req types.CreateOrderRequest, price int64) (*types.Order, error) {
	o := types.Order{
		ID:              uuid.NewString(),
		ServiceID:       req.ServiceID,
		CustomerID:      customerID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		Participants:    req.Participants,
		Customer:        req.Customer,
		SpecialRequests: req.SpecialRequests,
		Pricing:         pricing.Calculate(price, req.Participants),
		Status:          types.OrderPending,
		CreatedAt:       nowUTC(),
	}
	customer, err := json.Marshal(o.Customer)
	if err != nil {
		return nil, fmt.Errorf("encoding customer: %w", err)
	}
	p := o.Pricing
	_, err = s.exec(ctx, `INSERT INTO orders (id, service_id, customer_id, date, start_time, participants, customer,
special_requests, document, base_price, subtotal, service_fee, tax, total, status, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.ServiceID, o.CustomerID, o.Date, o.StartTime, o.Participants, string(customer),
		o.SpecialRequests, req.Document, p.BasePrice, p.Subtotal, p.ServiceFee, p.Tax, p.Total, o.Status,
		formatTime(o.CreatedAt))
	if err != nil {
		return nil, fmt.Errorf("inserting order: %w", err)
	}
	return &o, nil
}

// GetOrder loads an order by ID.
func (s *Store) GetOrder(ctx context.Context, id string) (*types.Order, error) {
	var (
		o                         types.Order
		customer, created, paidAt string
	)
	p := &o.Pricing
	err := s.queryRow(ctx, `SELECT id, service_id, customer_id, date, start_time, participants, customer, special_requests,
base_price, subtotal, service_fee, tax, total, status, payment_method, created_at, paid_at
FROM orders WHERE id = ?`, id).Scan(&o.ID, &o.ServiceID, &o.CustomerID, &o.Date, &o.StartTime, &o.Participants,
		&customer, &o.SpecialRequests, &p.BasePrice, &p.Subtotal, &p.ServiceFee, &p.Tax, &p.Total,
		&o.Status, &o.PaymentMethod, &created, &paidAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading order: %w", err)
	}
	p.Participants = o.Participants
	if err := json.Unmarshal([]byte(customer), &o.Customer); err != nil {
		return nil, fmt.Errorf("decoding customer: %w", err)
	}
	o.CreatedAt = parseTime(created)
	if paidAt != "" {
		t := parseTime(paidAt)
		o.PaidAt = &t
	}
	return &o, nil
}

// PayOrder marks a pending order as paid. Paying an order twice returns
// ErrConflict and leaves the first payment in place.
func (s *Store) PayOrder(ctx context.Context, id string, req types.PaymentRequest) (*types.Order, error) {
	res, err := s.exec(ctx, `UPDATE orders SET status = ?, payment_method = ?, payment_token = ?, paid_at = ?
WHERE id = ? AND status = ?`,
		types.OrderPaid, req.PaymentMethod, req.PaymentToken, formatTime(nowUTC()), id, types.OrderPending)
	if err != nil {
		return nil, fmt.Errorf("updating order: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("updating order: %w", err)
	}
	if n == 0 {
		if _, err := s.GetOrder(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrConflict
	}
	return s.GetOrder(ctx, id)
}
