package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Fluffbl4/FinH-bot/internal/model"
	"github.com/Fluffbl4/FinH-bot/internal/storage"
)

const (
	helpText = "Привет! Я FinHelper, твой помощник в управлении финансами.\n\n" +
		"Доступные команды:\n" +
		"/add_income [сумма] [описание] - добавить доход\n" +
		"/add_expense [сумма] [категория] [описание] - добавить расход\n" +
		"/remind [дата] [сообщение] - установить напоминание\n" +
		"/summary [период] - получить итоговую сумму расходов\n" +
		"/categories - просмотреть расходы по категориям"

	replyUserNotFound  = "Пользователь не найден."
	replyIncomeUsage   = "Используйте эту команду для добавления: /add_income [сумма] [описание]"
	replyExpenseUsage  = "Используйте эту команду для добавления: /add_expense [сумма] [категория] [описание]"
	replyRemindUsage   = "Используйте эту команду: /remind [дата в формате ДД.ММ.ГГГГ] [сообщение]"
	replySummaryError  = "Произошла ошибка при расчете суммы расходов."
	replyReadError     = "Произошла ошибка при получении данных."
	replyWriteError    = "Произошла ошибка при сохранении данных."
	replyNoExpenseData = "Нет данных о расходах."

	defaultCategory    = "другое"
	defaultReminderMsg = "Не забудьте внести данные о финансах!"
	dateLayout         = "02.01.2006"
)

// Session is one scoped unit of storage access: acquired at handler entry,
// released before the handler returns.
type Session interface {
	UserByTelegramID(ctx context.Context, telegramID int64) (model.User, error)
	CreateUser(ctx context.Context, telegramID int64, username string) (model.User, error)
	AddIncome(ctx context.Context, income model.Income) error
	CategoryByName(ctx context.Context, name string) (model.Category, error)
	CreateCategory(ctx context.Context, name string) (model.Category, error)
	AddExpense(ctx context.Context, expense model.Expense) error
	AddReminder(ctx context.Context, reminder model.Reminder) error
	SumExpensesSince(ctx context.Context, userID int64, since time.Time) (decimal.Decimal, error)
	ExpensesByCategory(ctx context.Context, userID int64) ([]model.CategoryExpense, error)
	Release()
}

// Gateway hands out scoped sessions, one per handler invocation.
type Gateway func(ctx context.Context) (Session, error)

// Identity is the stable sender identification supplied by the transport.
type Identity struct {
	TelegramID int64
	Username   string
}

type Handler struct {
	sessions Gateway
	log      *logrus.Logger
	now      func() time.Time
}

func NewHandler(sessions Gateway, log *logrus.Logger) *Handler {
	return &Handler{sessions: sessions, log: log, now: time.Now}
}

// HandleStart registers the sender if unknown and replies with the help
// text. Repeated calls never create a second user.
func (h *Handler) HandleStart(ctx context.Context, sender Identity, args []string) string {
	session, err := h.sessions(ctx)
	if err != nil {
		h.log.WithError(err).Error("error acquiring session")
		return replyWriteError
	}
	defer session.Release()

	_, err = session.UserByTelegramID(ctx, sender.TelegramID)
	if errors.Is(err, storage.ErrUserNotFound) {
		if _, err = session.CreateUser(ctx, sender.TelegramID, sender.Username); err != nil {
			h.log.WithField("telegram_id", sender.TelegramID).WithError(err).Error("error creating user")
			return replyWriteError
		}
	} else if err != nil {
		h.log.WithField("telegram_id", sender.TelegramID).WithError(err).Error("error looking up user")
		return replyWriteError
	}

	return helpText
}

func (h *Handler) HandleAddIncome(ctx context.Context, sender Identity, args []string) string {
	amount, rest, err := parseAmount(args)
	if err != nil {
		return replyIncomeUsage
	}

	session, err := h.sessions(ctx)
	if err != nil {
		h.log.WithError(err).Error("error acquiring session")
		return replyWriteError
	}
	defer session.Release()

	user, err := session.UserByTelegramID(ctx, sender.TelegramID)
	if errors.Is(err, storage.ErrUserNotFound) {
		return replyUserNotFound
	}
	if err != nil {
		h.log.WithField("telegram_id", sender.TelegramID).WithError(err).Error("error looking up user")
		return replyWriteError
	}

	income := model.Income{
		UserID:      user.ID,
		Amount:      amount,
		Date:        h.today(),
		Description: description(rest),
	}
	if err := session.AddIncome(ctx, income); err != nil {
		h.log.WithField("telegram_id", sender.TelegramID).WithError(err).Error("error adding income")
		return replyWriteError
	}

	return fmt.Sprintf("Доход в размере %s успешно добавлен!", amount)
}

func (h *Handler) HandleAddExpense(ctx context.Context, sender Identity, args []string) string {
	amount, rest, err := parseAmount(args)
	if err != nil {
		return replyExpenseUsage
	}

	categoryName := defaultCategory
	if len(rest) > 0 {
		categoryName = rest[0]
		rest = rest[1:]
	}

	session, err := h.sessions(ctx)
	if err != nil {
		h.log.WithError(err).Error("error acquiring session")
		return replyWriteError
	}
	defer session.Release()

	user, err := session.UserByTelegramID(ctx, sender.TelegramID)
	if errors.Is(err, storage.ErrUserNotFound) {
		return replyUserNotFound
	}
	if err != nil {
		h.log.WithField("telegram_id", sender.TelegramID).WithError(err).Error("error looking up user")
		return replyWriteError
	}

	category, err := session.CategoryByName(ctx, categoryName)
	if errors.Is(err, storage.ErrCategoryNotFound) {
		category, err = session.CreateCategory(ctx, categoryName)
	}
	if err != nil {
		h.log.WithField("category", categoryName).WithError(err).Error("error resolving category")
		return replyWriteError
	}

	expense := model.Expense{
		UserID:      user.ID,
		Amount:      amount,
		Date:        h.today(),
		CategoryID:  &category.ID,
		Description: description(rest),
	}
	if err := session.AddExpense(ctx, expense); err != nil {
		h.log.WithField("telegram_id", sender.TelegramID).WithError(err).Error("error adding expense")
		return replyWriteError
	}

	return fmt.Sprintf("Расход в размере %s (категория: %s) успешно добавлен!", amount, categoryName)
}

func (h *Handler) HandleRemind(ctx context.Context, sender Identity, args []string) string {
	if len(args) == 0 {
		return replyRemindUsage
	}
	date, err := time.Parse(dateLayout, args[0])
	if err != nil {
		return replyRemindUsage
	}

	message := defaultReminderMsg
	if len(args) > 1 {
		message = strings.Join(args[1:], " ")
	}

	session, err := h.sessions(ctx)
	if err != nil {
		h.log.WithError(err).Error("error acquiring session")
		return replyWriteError
	}
	defer session.Release()

	user, err := session.UserByTelegramID(ctx, sender.TelegramID)
	if errors.Is(err, storage.ErrUserNotFound) {
		return replyUserNotFound
	}
	if err != nil {
		h.log.WithField("telegram_id", sender.TelegramID).WithError(err).Error("error looking up user")
		return replyWriteError
	}

	reminder := model.Reminder{
		UserID:  user.ID,
		Date:    date,
		Message: message,
	}
	if err := session.AddReminder(ctx, reminder); err != nil {
		h.log.WithField("telegram_id", sender.TelegramID).WithError(err).Error("error adding reminder")
		return replyWriteError
	}

	return fmt.Sprintf("Напоминание установлено на %s!", date.Format(dateLayout))
}

// HandleSummary sums the caller's expenses since the start of the window.
// Only the literal period "month" has a real window (the first day of the
// current month); any other value degenerates to a same-day window.
func (h *Handler) HandleSummary(ctx context.Context, sender Identity, args []string) string {
	period := "month"
	if len(args) > 0 {
		period = args[0]
	}

	session, err := h.sessions(ctx)
	if err != nil {
		h.log.WithError(err).Error("error acquiring session")
		return replySummaryError
	}
	defer session.Release()

	user, err := session.UserByTelegramID(ctx, sender.TelegramID)
	if errors.Is(err, storage.ErrUserNotFound) {
		return replyUserNotFound
	}
	if err != nil {
		h.log.WithField("telegram_id", sender.TelegramID).WithError(err).Error("error looking up user")
		return replySummaryError
	}

	start := h.today()
	if period == "month" {
		now := h.now()
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}

	total, err := session.SumExpensesSince(ctx, user.ID, start)
	if err != nil {
		h.log.WithField("telegram_id", sender.TelegramID).WithError(err).Error("error summing expenses")
		return replySummaryError
	}

	return fmt.Sprintf("Общая сумма расходов за %s: %s", period, total)
}

// HandleCategories lists the caller's expenses joined to their categories,
// one line per expense row.
func (h *Handler) HandleCategories(ctx context.Context, sender Identity, args []string) string {
	session, err := h.sessions(ctx)
	if err != nil {
		h.log.WithError(err).Error("error acquiring session")
		return replyReadError
	}
	defer session.Release()

	user, err := session.UserByTelegramID(ctx, sender.TelegramID)
	if errors.Is(err, storage.ErrUserNotFound) {
		return replyUserNotFound
	}
	if err != nil {
		h.log.WithField("telegram_id", sender.TelegramID).WithError(err).Error("error looking up user")
		return replyReadError
	}

	rows, err := session.ExpensesByCategory(ctx, user.ID)
	if err != nil {
		h.log.WithField("telegram_id", sender.TelegramID).WithError(err).Error("error listing expenses")
		return replyReadError
	}
	if len(rows) == 0 {
		return replyNoExpenseData
	}

	var response strings.Builder
	response.WriteString("Расходы по категориям:")
	for _, row := range rows {
		response.WriteString(fmt.Sprintf("\n%s: %s", row.CategoryName, row.Amount))
	}
	return response.String()
}

func (h *Handler) today() time.Time {
	now := h.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
