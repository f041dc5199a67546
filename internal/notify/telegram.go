// Package notify sends the end-of-run summary to a Telegram chat.
package notify

import (
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"jobscrape/internal/scrape"
)

const EnvBotToken = "TELEGRAM_BOT_TOKEN"

var ErrDisabled = errors.New("telegram notify disabled")

// sender is the part of *tgbotapi.BotAPI used here.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Telegram struct {
	bot    sender
	chatID int64
}

// NewTelegram connects the bot. ErrDisabled means token or chat id is unset.
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	if token == "" || chatID == 0 {
		return nil, ErrDisabled
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &Telegram{bot: bot, chatID: chatID}, nil
}

func (t *Telegram) SendReport(rep scrape.Report) error {
	msg := tgbotapi.NewMessage(t.chatID, FormatReport(rep))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	_, err := t.bot.Send(msg)
	return err
}

// FormatReport renders rep as Telegram HTML.
func FormatReport(rep scrape.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>LinkedIn scrape finished</b>\n")
	fmt.Fprintf(&b, "Search: %s in %s\n", html.EscapeString(rep.Keyword), html.EscapeString(rep.Location))
	fmt.Fprintf(&b, "Saved: %d of %d cards over %d page(s)\n", rep.Saved, rep.Cards, rep.Pages)
	if rep.Duplicates > 0 {
		fmt.Fprintf(&b, "Duplicates: %d\n", rep.Duplicates)
	}
	if n := len(rep.Skipped); n > 0 {
		fmt.Fprintf(&b, "Skipped: %d\n", n)
	}
	stop := string(rep.Stop)
	if rep.StopDetail != "" {
		stop += " (" + rep.StopDetail + ")"
	}
	fmt.Fprintf(&b, "Stopped: %s\n", html.EscapeString(stop))
	if !rep.StartedAt.IsZero() && !rep.FinishedAt.IsZero() {
		fmt.Fprintf(&b, "Took: %s\n", rep.FinishedAt.Sub(rep.StartedAt).Round(time.Second))
	}
	fmt.Fprintf(&b, "<code>%s</code>", html.EscapeString(rep.RunID))
	return b.String()
}
