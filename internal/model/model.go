package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           int64
	TelegramID   int64
	Username     string
	SalaryDay    *int
	ReminderTime *time.Time
}

type Income struct {
	ID          int64
	UserID      int64
	Amount      decimal.Decimal
	Date        time.Time
	Description *string
}

type Category struct {
	ID   int64
	Name string
}

type Expense struct {
	ID          int64
	UserID      int64
	Amount      decimal.Decimal
	Date        time.Time
	CategoryID  *int64
	Description *string
}

type Reminder struct {
	ID      int64
	UserID  int64
	Date    time.Time
	Message string
	IsSent  bool
}

// CategoryExpense is one row of the categories listing: a category name
// paired with the amount of a single expense in it.
type CategoryExpense struct {
	CategoryName string
	Amount       decimal.Decimal
}
