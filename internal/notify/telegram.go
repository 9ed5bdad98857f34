package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/MK7-m/qrcodesy/internal/config"
	"github.com/MK7-m/qrcodesy/internal/order"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// clientTimeout caps a single Bot API round trip.
const clientTimeout = 10 * time.Second

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram posts new orders to a staff chat.
type Telegram struct {
	api    sender
	chatID int64
}

func NewTelegram(cfg config.TelegramConfig) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPIWithClient(
		cfg.Token,
		tgbotapi.APIEndpoint,
		&http.Client{Timeout: clientTimeout},
	)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	logrus.WithField("bot", api.Self.UserName).Info("telegram notifier ready")

	return &Telegram{api: api, chatID: cfg.ChatID}, nil
}

func (t *Telegram) OrderPlaced(ctx context.Context, restaurantName string, o *order.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(t.chatID, FormatNewOrder(restaurantName, o))

	// Send takes no context; the caller stops waiting at the deadline and
	// the buffered channel lets the request finish on its own.
	done := make(chan error, 1)
	go func() {
		_, err := t.api.Send(msg)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send order %s: %w", o.OrderNumber, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("send order %s: %w", o.OrderNumber, ctx.Err())
	}
}
