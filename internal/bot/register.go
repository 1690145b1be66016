package bot

import (
	"context"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

type handlerFunc func(ctx context.Context, sender Identity, args []string) string

// RegisterHandlers binds each command keyword to its handler. Commands
// without a binding are ignored by the transport: no catch-all is registered.
func RegisterHandlers(b *telebot.Bot, sessions Gateway, log *logrus.Logger) {
	h := NewHandler(sessions, log)

	bind := func(command string, handle handlerFunc) {
		b.Handle(command, func(c telebot.Context) error {
			sender := Identity{
				TelegramID: c.Sender().ID,
				Username:   c.Sender().Username,
			}
			reply := handle(context.Background(), sender, c.Args())
			if err := c.Send(reply); err != nil {
				log.WithField("telegram_id", sender.TelegramID).WithError(err).Error("error sending reply")
			}
			return nil
		})
	}

	bind("/start", h.HandleStart)
	bind("/add_income", h.HandleAddIncome)
	bind("/add_expense", h.HandleAddExpense)
	bind("/remind", h.HandleRemind)
	bind("/summary", h.HandleSummary)
	bind("/categories", h.HandleCategories)
}
