// Package notifier delivers best-effort order notifications to a Telegram
// chat. Dispatch never blocks the caller and never reports an outcome to it;
// failures are only logged.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"beautyStore/entities"

	"go.uber.org/zap"
)

const DefaultAPIBase = "https://api.telegram.org"

type Notifier interface {
	// Dispatch schedules delivery of order and returns immediately.
	Dispatch(order entities.Order)
}

type Config struct {
	BotToken string
	ChatID   string
	APIBase  string
	Timeout  time.Duration
}

// New returns a Telegram notifier, or a Disabled one when the bot token or
// chat id is missing.
func New(cfg Config, client *http.Client, log *zap.Logger) Notifier {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("telegram")
	if cfg.BotToken == "" || cfg.ChatID == "" {
		log.Warn("telegram bot token or chat id not configured, notifications disabled")
		return Disabled{log: log}
	}
	return NewTelegram(cfg, client, log)
}

type Telegram struct {
	cfg    Config
	client *http.Client
	log    *zap.Logger
	wg     sync.WaitGroup
}

func NewTelegram(cfg Config, client *http.Client, log *zap.Logger) *Telegram {
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.APIBase == "" {
		cfg.APIBase = DefaultAPIBase
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Telegram{cfg: cfg, client: client, log: log}
}

func (t *Telegram) Dispatch(order entities.Order) {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), t.cfg.Timeout)
		defer cancel()
		if err := t.Send(ctx, order); err != nil {
			t.log.Error("failed to send order notification", zap.String("orderId", order.Id), zap.Error(err))
			return
		}
		t.log.Info("order notification sent", zap.String("orderId", order.Id))
	}()
}

// Wait blocks until every dispatched notification has finished.
func (t *Telegram) Wait() {
	t.wg.Wait()
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// Send performs one synchronous sendMessage call. Any non-2xx response is
// an error.
func (t *Telegram) Send(ctx context.Context, order entities.Order) error {
	body, err := json.Marshal(sendMessageRequest{
		ChatID:    t.cfg.ChatID,
		Text:      FormatOrderMessage(order),
		ParseMode: "HTML",
	})
	if err != nil {
		return err
	}
	url := strings.TrimRight(t.cfg.APIBase, "/") + "/bot" + t.cfg.BotToken + "/sendMessage"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("telegram: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}

// Disabled logs and drops every notification.
type Disabled struct {
	log *zap.Logger
}

func (d Disabled) Dispatch(order entities.Order) {
	if d.log != nil {
		d.log.Info("telegram notifications disabled, skipping", zap.String("orderId", order.Id))
	}
}
