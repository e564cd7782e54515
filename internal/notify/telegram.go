package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"sushi-be/internal/logger"

	"go.uber.org/zap"
)

const telegramBaseURL = "https://api.telegram.org"

// NewOrderInfo is the summary pushed to the staff chat after checkout.
type NewOrderInfo struct {
	OrderID       uint
	CustomerName  string
	Phone         string
	Address       string
	PaymentMethod string
	Comment       string
	TotalPrice    float64
	Items         []ItemLine
}

type ItemLine struct {
	Name     string
	Quantity int
}

// Notifier pushes new-order summaries to staff. Best effort only:
// implementations log failures and return nothing, order persistence
// must never depend on the push.
type Notifier interface {
	NotifyNewOrder(ctx context.Context, info NewOrderInfo)
}

// ----------------- Telegram -----------------

type telegramNotifier struct {
	botToken   string
	chatID     string
	baseURL    string
	httpClient *http.Client
}

// NewTelegramNotifier builds the staff notifier. With missing credentials
// it degrades to a no-op rather than failing startup.
func NewTelegramNotifier(botToken, chatID string) Notifier {
	if botToken == "" || chatID == "" {
		logger.L().Warn("telegram notifier not configured, order notifications disabled")
		return noopNotifier{}
	}

	return &telegramNotifier{
		botToken: botToken,
		chatID:   chatID,
		baseURL:  telegramBaseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func (t *telegramNotifier) NotifyNewOrder(ctx context.Context, info NewOrderInfo) {
	log := logger.FromCtx(ctx).With(
		zap.Uint("order_id", info.OrderID),
		zap.String("customer", info.CustomerName),
	)

	body := map[string]interface{}{
		"chat_id":    t.chatID,
		"text":       formatNewOrderMessage(info),
		"parse_mode": "HTML",
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		log.Error("failed to marshal telegram message", zap.Error(err))
		return
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		log.Error("failed to create telegram request", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		log.Error("telegram request failed", zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		log.Error("telegram returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", respBody),
		)
		return
	}

	log.Info("order notification sent")
}

func formatNewOrderMessage(info NewOrderInfo) string {
	var items strings.Builder
	for i, item := range info.Items {
		fmt.Fprintf(&items, "%d. %s x%d\n", i+1, item.Name, item.Quantity)
	}

	payment := "Наличными"
	if info.PaymentMethod == "CARD" {
		payment = "Картой"
	}

	comment := info.Comment
	if comment == "" {
		comment = "Без комментария"
	}

	return fmt.Sprintf(
		"🔥 <b>НОВЫЙ ЗАКАЗ #%d</b>\n👤 %s\n📞 %s\n📍 %s\n💳 %s\n💬 %s\n\n%s\n💰 <b>Сумма: %.2f ₴</b>",
		info.OrderID,
		info.CustomerName,
		info.Phone,
		info.Address,
		payment,
		comment,
		items.String(),
		info.TotalPrice,
	)
}

// ----------------- No-op -----------------

type noopNotifier struct{}

func (noopNotifier) NotifyNewOrder(context.Context, NewOrderInfo) {}
