package services

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"memberhub/internal/models"
)

// Notifier tells the superadmin about work waiting for them. Failures are logged, never returned.
type Notifier interface {
	AdminRequestCreated(ctx context.Context, req *models.AdminRequest)
}

// TelegramNotifier delivers in the background so a slow Bot API never holds up
// the request that triggered it.
type TelegramNotifier struct {
	token  string
	chatID int64

	once sync.Once
	bot  *tgbotapi.BotAPI
	err  error

	// send replaces the Bot API in tests.
	send     func(tgbotapi.Chattable) error
	inflight sync.WaitGroup
}

func NewTelegramNotifier(token string, chatID int64) *TelegramNotifier {
	return &TelegramNotifier{token: token, chatID: chatID}
}

func (n *TelegramNotifier) enabled() bool {
	return n != nil && n.token != "" && n.chatID != 0
}

// client is created on first use: NewBotAPI calls getMe, which we don't want at startup.
func (n *TelegramNotifier) client() (*tgbotapi.BotAPI, error) {
	n.once.Do(func() {
		httpClient := &http.Client{Timeout: 5 * time.Second}
		n.bot, n.err = tgbotapi.NewBotAPIWithClient(n.token, tgbotapi.APIEndpoint, httpClient)
	})
	return n.bot, n.err
}

func (n *TelegramNotifier) AdminRequestCreated(ctx context.Context, req *models.AdminRequest) {
	if !n.enabled() {
		slog.DebugContext(ctx, "[tg][skip] notifier not configured", "request_id", req.ID)
		return
	}
	msg := tgbotapi.NewMessage(n.chatID, adminRequestText(req))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	ctx = context.WithoutCancel(ctx)
	requestID := req.ID
	n.inflight.Add(1)
	go func() {
		defer n.inflight.Done()
		n.deliver(ctx, requestID, msg)
	}()
}

func (n *TelegramNotifier) deliver(ctx context.Context, requestID int64, msg tgbotapi.MessageConfig) {
	send := n.send
	if send == nil {
		bot, err := n.client()
		if err != nil {
			slog.ErrorContext(ctx, "[tg][init] failed", "err", err)
			return
		}
		send = func(c tgbotapi.Chattable) error {
			_, err := bot.Send(c)
			return err
		}
	}
	if err := send(msg); err != nil {
		slog.ErrorContext(ctx, "[tg][send] failed", "request_id", requestID, "err", err)
		return
	}
	slog.InfoContext(ctx, "[tg][send] ok", "request_id", requestID)
}

// Wait blocks until notifications already handed off have been delivered or failed.
func (n *TelegramNotifier) Wait() {
	if n == nil {
		return
	}
	n.inflight.Wait()
}

func adminRequestText(req *models.AdminRequest) string {
	org := req.OrganizationName
	if org == "" {
		org = fmt.Sprintf("#%d", req.OrganizationID)
	}
	return fmt.Sprintf(
		"<b>New admin request #%d</b>\n%s %s (<code>%s</code>)\nOrganization: %s\nEmail: %s",
		req.ID,
		html.EscapeString(req.FirstName),
		html.EscapeString(req.LastName),
		html.EscapeString(req.Username),
		html.EscapeString(org),
		html.EscapeString(req.Email),
	)
}
