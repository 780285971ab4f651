package telegram

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"fleet-survey-bot/internal/auth"
	"fleet-survey-bot/internal/i18n"
	"fleet-survey-bot/internal/storage"
	"fleet-survey-bot/internal/survey"
)

// Bot is the transport adapter: it maps Telegram updates to walker events
// and renders the walker's prompts back as messages and keyboards.
type Bot struct {
	api           *tgbotapi.BotAPI
	s             sender
	r             requester
	walker        *survey.Walker
	store         *survey.Store
	sink          storage.Sink
	sinkReader    storage.Reader
	recorder      storage.Recorder
	adminSvc      *auth.Service
	parseMode     string
	defaultLocale i18n.Locale
	now           func() time.Time
}

func New(
	botToken string,
	walker *survey.Walker,
	store *survey.Store,
	sink storage.Sink,
	sinkReader storage.Reader,
	recorder storage.Recorder,
	adminSvc *auth.Service,
	parseMode string,
	defaultLocale string,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("init bot api: %w", err)
	}
	s := botAPISender{api: api}
	return &Bot{
		api:           api,
		s:             s,
		r:             s,
		walker:        walker,
		store:         store,
		sink:          sink,
		sinkReader:    sinkReader,
		recorder:      recorder,
		adminSvc:      adminSvc,
		parseMode:     parseMode,
		defaultLocale: i18n.Locale(defaultLocale),
		now:           time.Now,
	}, nil
}

// Start consumes updates via long polling until ctx is cancelled.
// Webhook deployments skip Start and feed ProcessUpdate instead.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		b.ProcessUpdate(ctx, update)
	}
	log.Info().Msg("bot stopped")
}

// ProcessUpdate dispatches one inbound update. Events for the same user are
// expected to arrive one at a time; different users may run concurrently.
func (b *Bot) ProcessUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	}
}

// RegisterWebhook points Telegram at baseURL/webhook and returns the full
// webhook URL.
func (b *Bot) RegisterWebhook(baseURL string) (string, error) {
	url := baseURL + "/webhook"
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return "", fmt.Errorf("build webhook config: %w", err)
	}
	if _, err := b.r.Request(wh); err != nil {
		return "", fmt.Errorf("set webhook: %w", err)
	}
	return url, nil
}

// ActiveSessions reports the number of surveys currently in progress.
func (b *Bot) ActiveSessions() int { return b.store.Len() }

// StoredResponses counts completed responses across the primary store and
// the local fallback.
func (b *Bot) StoredResponses(ctx context.Context) (int, error) {
	responses, err := b.loadResponses(ctx)
	if err != nil {
		return 0, err
	}
	return len(responses), nil
}

func (b *Bot) loadResponses(ctx context.Context) ([]storage.Response, error) {
	var out []storage.Response
	if b.sinkReader != nil {
		rows, err := b.sinkReader.LoadAll(ctx)
		if err != nil {
			log.Error().Err(err).Msg("failed to read primary store")
		} else {
			out = append(out, rows...)
		}
	}
	if b.recorder != nil {
		rows, err := b.recorder.LoadAll()
		if err != nil {
			return nil, fmt.Errorf("read fallback store: %w", err)
		}
		out = append(out, rows...)
	}
	return out, nil
}

func (b *Bot) locale(sess *survey.Session) i18n.Locale {
	if sess != nil && sess.Locale.Valid() {
		return sess.Locale
	}
	return b.defaultLocale
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = b.parseMode
	if _, err := b.s.Send(msg); err != nil {
		log.Error().Err(err).Msg("failed to send message")
	}
}

func (b *Bot) sendWithMarkup(chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = b.parseMode
	msg.ReplyMarkup = markup
	if _, err := b.s.Send(msg); err != nil {
		log.Error().Err(err).Msg("failed to send message")
	}
}

func (b *Bot) answerCallback(id, text string) {
	if _, err := b.r.Request(tgbotapi.NewCallback(id, text)); err != nil {
		log.Error().Err(err).Msg("failed to answer callback")
	}
}

func (b *Bot) nowUTC() time.Time { return b.now().UTC().Truncate(time.Second) }
