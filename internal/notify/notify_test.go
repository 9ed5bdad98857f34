package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MK7-m/qrcodesy/internal/order"
	"github.com/MK7-m/qrcodesy/internal/pricing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ order.Notifier = (*Telegram)(nil)
var _ order.Notifier = Noop{}

type fakeSender struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, f.err
}

// blockingSender never answers until released.
type blockingSender struct {
	release chan struct{}
}

func (b *blockingSender) Send(tgbotapi.Chattable) (tgbotapi.Message, error) {
	<-b.release
	return tgbotapi.Message{}, nil
}

func sampleOrder() *order.Order {
	return &order.Order{
		ID:              "o-1",
		OrderNumber:     "ORD-0007",
		OrderType:       order.TypeDelivery,
		CustomerName:    "Sara",
		CustomerPhone:   "0500000000",
		CustomerAddress: "King Fahd Rd",
		Subtotal:        70,
		ExtraFees:       []pricing.CalculatedFee{{Label: "VAT", Amount: 10.5}},
		DeliveryFee:     10,
		Total:           90.5,
		Items: []order.Item{
			{DishName: "Kabsa", DishPrice: 25, Quantity: 2, Notes: "spicy"},
			{DishName: "Tea", DishPrice: 5, Quantity: 4},
		},
	}
}

func TestFormatNewOrder(t *testing.T) {
	text := FormatNewOrder("Al Baik", sampleOrder())

	assert.Contains(t, text, "New order ORD-0007 at Al Baik")
	assert.Contains(t, text, "Type: Delivery")
	assert.Contains(t, text, "Customer: Sara (0500000000)")
	assert.Contains(t, text, "Address: King Fahd Rd")
	assert.Contains(t, text, "2 x Kabsa  50.00")
	assert.Contains(t, text, "note: spicy")
	assert.Contains(t, text, "VAT: 10.50")
	assert.Contains(t, text, "Delivery: 10.00")
	assert.Contains(t, text, "Total: 90.50")
}

func TestFormatNewOrder_DineIn(t *testing.T) {
	o := &order.Order{OrderNumber: "ORD-0001", OrderType: order.TypeDineIn, Subtotal: 5, Total: 5}
	text := FormatNewOrder("Cafe", o)

	assert.Contains(t, text, "Type: Dine-in")
	assert.NotContains(t, text, "Customer:")
	assert.NotContains(t, text, "Delivery:")
}

func TestTelegram_OrderPlaced(t *testing.T) {
	fake := &fakeSender{}
	notifier := &Telegram{api: fake, chatID: 42}

	require.NoError(t, notifier.OrderPlaced(context.Background(), "Al Baik", sampleOrder()))
	require.Len(t, fake.sent, 1)
	assert.Equal(t, int64(42), fake.sent[0].ChatID)
	assert.Contains(t, fake.sent[0].Text, "ORD-0007")
}

func TestTelegram_SendError(t *testing.T) {
	notifier := &Telegram{api: &fakeSender{err: errors.New("blocked")}, chatID: 42}

	err := notifier.OrderPlaced(context.Background(), "Al Baik", sampleOrder())
	assert.ErrorContains(t, err, "ORD-0007")
}

func TestTelegram_CancelledContext(t *testing.T) {
	fake := &fakeSender{}
	notifier := &Telegram{api: fake, chatID: 42}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, notifier.OrderPlaced(ctx, "Al Baik", sampleOrder()), context.Canceled)
	assert.Empty(t, fake.sent)
}

func TestTelegram_HonoursDeadline(t *testing.T) {
	slow := &blockingSender{release: make(chan struct{})}
	defer close(slow.release)
	notifier := &Telegram{api: slow, chatID: 42}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := notifier.OrderPlaced(ctx, "Al Baik", sampleOrder())

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}
