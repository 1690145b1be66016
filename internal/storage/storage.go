package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Fluffbl4/FinH-bot/internal/model"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrCategoryNotFound = errors.New("category not found")
)

type Storage struct {
	pool *pgxpool.Pool
}

func NewStorage(ctx context.Context, postgresDsn string) (*Storage, error) {
	poolConfig, err := pgxpool.ParseConfig(postgresDsn)
	if err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("error connecting: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging pool: %w", err)
	}

	return &Storage{pool: pool}, nil
}

func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Acquire checks a connection out of the pool for the duration of one
// logical operation. The caller must Release the session on every exit path.
func (s *Storage) Acquire(ctx context.Context) (*Session, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("error acquiring connection: %w", err)
	}
	return &Session{conn: conn}, nil
}

// Session is a single checked-out connection. All queries run on it.
type Session struct {
	conn *pgxpool.Conn
}

func (s *Session) Release() {
	s.conn.Release()
}

func (s *Session) UserByTelegramID(ctx context.Context, telegramID int64) (model.User, error) {
	query := `SELECT user_id, telegram_id, COALESCE(username, ''), salary_day, reminder_time
	          FROM users WHERE telegram_id = $1`
	u := model.User{}
	err := s.conn.QueryRow(ctx, query, telegramID).
		Scan(&u.ID, &u.TelegramID, &u.Username, &u.SalaryDay, &u.ReminderTime)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

func (s *Session) CreateUser(ctx context.Context, telegramID int64, username string) (model.User, error) {
	query := `INSERT INTO users (telegram_id, username) VALUES ($1, $2) RETURNING user_id`
	u := model.User{TelegramID: telegramID, Username: username}
	err := s.conn.QueryRow(ctx, query, telegramID, username).Scan(&u.ID)
	return u, err
}

func (s *Session) AddIncome(ctx context.Context, income model.Income) error {
	query := `INSERT INTO incomes (user_id, amount, income_date, description) VALUES ($1, $2, $3, $4)`
	_, err := s.conn.Exec(ctx, query, income.UserID, income.Amount, income.Date, income.Description)
	return err
}

func (s *Session) CategoryByName(ctx context.Context, name string) (model.Category, error) {
	query := `SELECT category_id, name FROM categories WHERE name = $1`
	c := model.Category{}
	err := s.conn.QueryRow(ctx, query, name).Scan(&c.ID, &c.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Category{}, ErrCategoryNotFound
	}
	return c, err
}

func (s *Session) CreateCategory(ctx context.Context, name string) (model.Category, error) {
	query := `INSERT INTO categories (name) VALUES ($1) RETURNING category_id`
	c := model.Category{Name: name}
	err := s.conn.QueryRow(ctx, query, name).Scan(&c.ID)
	return c, err
}

func (s *Session) AddExpense(ctx context.Context, expense model.Expense) error {
	query := `INSERT INTO expenses (user_id, amount, expense_date, category_id, description)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := s.conn.Exec(ctx, query,
		expense.UserID, expense.Amount, expense.Date, expense.CategoryID, expense.Description)
	return err
}

func (s *Session) AddReminder(ctx context.Context, reminder model.Reminder) error {
	query := `INSERT INTO reminders (user_id, reminder_date, message, is_sent) VALUES ($1, $2, $3, $4)`
	_, err := s.conn.Exec(ctx, query, reminder.UserID, reminder.Date, reminder.Message, reminder.IsSent)
	return err
}

func (s *Session) SumExpensesSince(ctx context.Context, userID int64, since time.Time) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE user_id = $1 AND expense_date >= $2`
	var total decimal.Decimal
	err := s.conn.QueryRow(ctx, query, userID, since).Scan(&total)
	return total, err
}

// ExpensesByCategory returns one row per expense joined to its category,
// not a per-category aggregate.
func (s *Session) ExpensesByCategory(ctx context.Context, userID int64) ([]model.CategoryExpense, error) {
	query := `SELECT c.name, e.amount
	          FROM categories c
	          JOIN expenses e ON e.category_id = c.category_id
	          WHERE e.user_id = $1
	          ORDER BY e.expense_id`
	rows, err := s.conn.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.CategoryExpense
	for rows.Next() {
		var ce model.CategoryExpense
		if err := rows.Scan(&ce.CategoryName, &ce.Amount); err != nil {
			return nil, err
		}
		result = append(result, ce)
	}

	return result, rows.Err()
}
