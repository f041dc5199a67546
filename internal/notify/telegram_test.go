package notify

import (
	"errors"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobscrape/internal/scrape"
)

type fakeBot struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, m)
	}
	return tgbotapi.Message{}, f.err
}

func sampleReport() scrape.Report {
	start := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	return scrape.Report{
		RunID:      "run-1",
		Keyword:    "R&D <Lead>",
		Location:   "India",
		Pages:      3,
		Cards:      40,
		Saved:      38,
		Duplicates: 1,
		Skipped:    []scrape.Skip{{Page: 1, Card: 2, Reason: "missing title"}, {Page: 2, Card: 5, Reason: "missing title"}},
		Stop:       scrape.StopNoNextPage,
		StartedAt:  start,
		FinishedAt: start.Add(95 * time.Second),
	}
}

func TestFormatReport(t *testing.T) {
	s := FormatReport(sampleReport())
	assert.Contains(t, s, "Search: R&amp;D &lt;Lead&gt; in India")
	assert.Contains(t, s, "Saved: 38 of 40 cards over 3 page(s)")
	assert.Contains(t, s, "Duplicates: 1")
	assert.Contains(t, s, "Skipped: 2")
	assert.Contains(t, s, "Stopped: no_next_page")
	assert.Contains(t, s, "Took: 1m35s")
}

func TestSendReport(t *testing.T) {
	bot := &fakeBot{}
	tg := &Telegram{bot: bot, chatID: 42}
	require.NoError(t, tg.SendReport(sampleReport()))
	require.Len(t, bot.sent, 1)
	assert.Equal(t, int64(42), bot.sent[0].ChatID)
	assert.Equal(t, tgbotapi.ModeHTML, bot.sent[0].ParseMode)

	bot.err = errors.New("network down")
	assert.Error(t, tg.SendReport(sampleReport()))
}

func TestNewTelegram_Disabled(t *testing.T) {
	_, err := NewTelegram("", 42)
	assert.ErrorIs(t, err, ErrDisabled)
	_, err = NewTelegram("token", 0)
	assert.ErrorIs(t, err, ErrDisabled)
}
