package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"fleet-survey-bot/internal/analytics"
	"fleet-survey-bot/internal/i18n"
	"fleet-survey-bot/internal/storage"
	"fleet-survey-bot/internal/survey"
)

// handleMessage обрабатывает входящее сообщение: команды, контакт, текст
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}
	if msg.Contact != nil {
		b.handleContact(ctx, msg)
		return
	}
	if msg.Text != "" {
		b.handleText(ctx, msg)
	}
}

// handleCommand
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.handleStart(msg)
	case "cancel":
		b.handleCancel(msg.Chat.ID, msg.From.ID)
	case "report":
		b.handleReportCommand(ctx, msg)
	case "stats":
		b.handleStatsCommand(ctx, msg)
	}
}

// handleStart сбрасывает сессию и предлагает выбрать язык
func (b *Bot) handleStart(msg *tgbotapi.Message) {
	log.Info().Int64("user_id", msg.From.ID).Str("username", msg.From.UserName).Msg("survey started")
	b.store.Start(msg.From.ID, "")
	b.sendWithMarkup(msg.Chat.ID, i18n.T(b.defaultLocale, "choose_language"), languageKeyboard())
}

func (b *Bot) handleCancel(chatID, userID int64) {
	sess := b.store.Get(userID)
	loc := b.locale(sess)
	b.store.Delete(userID)
	b.sendWithMarkup(chatID, i18n.T(loc, "cancelled"), tgbotapi.NewRemoveKeyboard(false))
}

// handleText применяет набранный текст к текущему вопросу
func (b *Bot) handleText(_ context.Context, msg *tgbotapi.Message) {
	sess := b.store.Get(msg.From.ID)
	if sess == nil {
		b.handleStart(msg)
		return
	}
	if b.walker.IsComplete(sess) {
		b.sendMessage(msg.Chat.ID, i18n.T(b.locale(sess), "already_done"))
		return
	}

	q, _ := b.walker.Current(sess)
	outcome := b.walker.ApplyText(sess, msg.Text)
	switch outcome.Kind {
	case survey.Advance:
		if q.Kind == survey.Phone {
			b.sendWithMarkup(msg.Chat.ID, i18n.T(b.locale(sess), "contact_thanks"), tgbotapi.NewRemoveKeyboard(false))
		}
		b.askNextQuestion(msg.Chat.ID, msg.From, sess)
	case survey.Reject:
		b.sendMessage(msg.Chat.ID, i18n.T(b.locale(sess), outcome.Reason))
	}
}

// handleContact применяет присланный контакт к вопросу о телефоне
func (b *Bot) handleContact(_ context.Context, msg *tgbotapi.Message) {
	sess := b.store.Get(msg.From.ID)
	if sess == nil {
		return
	}
	outcome := b.walker.ApplyContact(sess, msg.Contact.PhoneNumber)
	if outcome.Kind != survey.Advance {
		return
	}
	b.sendWithMarkup(msg.Chat.ID, i18n.T(b.locale(sess), "contact_thanks"), tgbotapi.NewRemoveKeyboard(false))
	b.askNextQuestion(msg.Chat.ID, msg.From, sess)
}

// handleCallback разбирает токен кнопки и применяет событие к сессии
func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.From == nil || cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID
	userID := cb.From.ID

	switch {
	case strings.HasPrefix(cb.Data, langPrefix):
		b.handleLanguage(chatID, userID, strings.TrimPrefix(cb.Data, langPrefix))
		b.answerCallback(cb.ID, "")
	case cb.Data == startSurveyCmd:
		sess := b.store.Reset(userID)
		b.sendMessage(chatID, i18n.T(b.locale(sess), "survey_intro"))
		b.askNextQuestion(chatID, cb.From, sess)
		b.answerCallback(cb.ID, "")
	case cb.Data == leaveContactCmd:
		sess := b.sessionOrNew(userID)
		b.walker.JumpTo(sess, "contact_name")
		b.sendMessage(chatID, i18n.T(b.locale(sess), "leave_contact"))
		b.answerCallback(cb.ID, "")
	case strings.HasPrefix(cb.Data, featPrefix):
		b.handleFeatureToggle(cb, strings.TrimPrefix(cb.Data, featPrefix))
	case cb.Data == featDoneCmd:
		b.handleFeatureDone(cb)
	case strings.HasPrefix(cb.Data, choicePrefix):
		b.handleChoice(cb, strings.TrimPrefix(cb.Data, choicePrefix))
	case cb.Data == cancelCmd:
		b.handleCancel(chatID, userID)
		b.answerCallback(cb.ID, "")
	default:
		b.answerCallback(cb.ID, "")
	}
}

// handleLanguage фиксирует язык и показывает главное меню
func (b *Bot) handleLanguage(chatID, userID int64, tag string) {
	loc := i18n.Locale(tag)
	if !loc.Valid() {
		loc = b.defaultLocale
	}
	sess := b.sessionOrNew(userID)
	sess.Locale = loc
	b.sendMessage(chatID, i18n.T(loc, "language_set"))
	b.sendWithMarkup(chatID, i18n.T(loc, "greeting"), mainMenuKeyboard(loc))
}

// handleFeatureToggle переключает отметку и перерисовывает клавиатуру
func (b *Bot) handleFeatureToggle(cb *tgbotapi.CallbackQuery, option string) {
	sess := b.store.Get(cb.From.ID)
	if sess == nil {
		b.answerCallback(cb.ID, "")
		return
	}
	outcome := b.walker.Toggle(sess, option)
	if outcome.Kind != survey.Updated {
		b.answerCallback(cb.ID, "")
		return
	}
	q, _ := b.walker.Current(sess)
	edit := tgbotapi.NewEditMessageReplyMarkup(
		cb.Message.Chat.ID, cb.Message.MessageID,
		featuresKeyboard(b.locale(sess), q.Options, sess.Selected),
	)
	if _, err := b.s.Send(edit); err != nil {
		log.Error().Err(err).Msg("failed to update feature marks")
	}
	b.answerCallback(cb.ID, i18n.T(b.locale(sess), "toggle_updated"))
}

// handleFeatureDone финализирует мультивыбор
func (b *Bot) handleFeatureDone(cb *tgbotapi.CallbackQuery) {
	sess := b.store.Get(cb.From.ID)
	if sess == nil {
		b.answerCallback(cb.ID, "")
		return
	}
	outcome := b.walker.FinalizeMultiselect(sess)
	if outcome.Kind != survey.Advance {
		b.answerCallback(cb.ID, "")
		return
	}
	b.sendMessage(cb.Message.Chat.ID, i18n.T(b.locale(sess), "multiselect_saved"))
	b.askNextQuestion(cb.Message.Chat.ID, cb.From, sess)
	b.answerCallback(cb.ID, "")
}

// handleChoice применяет выбор Да/Нет
func (b *Bot) handleChoice(cb *tgbotapi.CallbackQuery, value string) {
	sess := b.store.Get(cb.From.ID)
	if sess == nil {
		b.answerCallback(cb.ID, "")
		return
	}
	outcome := b.walker.ApplyChoice(sess, value)
	if outcome.Kind != survey.Advance {
		b.answerCallback(cb.ID, "")
		return
	}
	b.sendMessage(cb.Message.Chat.ID, fmt.Sprintf(i18n.T(b.locale(sess), "answer_is"), value))
	b.askNextQuestion(cb.Message.Chat.ID, cb.From, sess)
	b.answerCallback(cb.ID, "")
}

func (b *Bot) sessionOrNew(userID int64) *survey.Session {
	if sess := b.store.Get(userID); sess != nil {
		return sess
	}
	return b.store.Start(userID, "")
}

// askNextQuestion рендерит вопрос под курсором или завершает опрос
func (b *Bot) askNextQuestion(chatID int64, from *tgbotapi.User, sess *survey.Session) {
	if b.walker.IsComplete(sess) {
		b.finishSurvey(chatID, from, sess)
		return
	}
	q, _ := b.walker.Current(sess)
	loc := b.locale(sess)
	prompt := i18n.T(loc, q.Prompt)

	switch q.Kind {
	case survey.FreeText:
		b.sendMessage(chatID, prompt)
	case survey.SingleChoice:
		b.sendWithMarkup(chatID, prompt, choiceKeyboard(loc, q.Options))
	case survey.MultiSelect:
		b.sendWithMarkup(chatID, prompt, featuresKeyboard(loc, q.Options, sess.Selected))
	case survey.Phone:
		b.sendWithMarkup(chatID, prompt, requestContactKeyboard(loc))
	}
}

// finishSurvey собирает ответы, пишет их в хранилище и очищает сессию.
// Пользователь в любом случае получает подтверждение: отказ обоих хранилищ
// остаётся внутренней проблемой.
func (b *Bot) finishSurvey(chatID int64, from *tgbotapi.User, sess *survey.Session) {
	username := ""
	if from != nil && from.UserName != "" {
		username = "@" + from.UserName
	}
	resp := storage.NewResponse(b.nowUTC(), sess.UserID, username, sess.Answers)

	saved := false
	if b.sink != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := b.sink.Append(ctx, resp); err != nil {
			log.Error().Err(err).Int64("user_id", sess.UserID).Msg("primary store append failed")
		} else {
			saved = true
		}
		cancel()
	} else {
		log.Warn().Msg("primary store is not configured; skip append")
	}

	if !saved && b.recorder != nil {
		if err := b.recorder.Append(resp); err != nil {
			log.Error().Err(err).Int64("user_id", sess.UserID).Msg("fallback store append failed")
		} else {
			saved = true
		}
	}

	loc := b.locale(sess)
	b.store.Delete(sess.UserID)

	key := "saved_ok"
	if !saved {
		key = "saved_fallback"
	}
	b.sendWithMarkup(chatID, i18n.T(loc, key), tgbotapi.NewRemoveKeyboard(false))
	log.Info().Int64("user_id", sess.UserID).Bool("saved", saved).Msg("survey completed")
}

// handleReportCommand отправляет администратору сводку за сегодня
func (b *Bot) handleReportCommand(ctx context.Context, msg *tgbotapi.Message) {
	if b.adminSvc == nil || !b.adminSvc.IsAdmin(msg.From.ID) {
		b.sendMessage(msg.Chat.ID, "Команда доступна только администратору")
		return
	}
	responses, err := b.loadResponses(ctx)
	if err != nil {
		log.Error().Err(err).Msg("report generation failed")
		b.sendMessage(msg.Chat.ID, fmt.Sprintf("Ошибка генерации отчёта: %v", err))
		return
	}
	stats := analytics.AnalyzeDailyResponses(responses, b.nowUTC())
	b.sendMessage(msg.Chat.ID, stats.GenerateReportSummary())
}

// handleStatsCommand показывает администратору быстрые счётчики
func (b *Bot) handleStatsCommand(ctx context.Context, msg *tgbotapi.Message) {
	if b.adminSvc == nil || !b.adminSvc.IsAdmin(msg.From.ID) {
		b.sendMessage(msg.Chat.ID, "Команда доступна только администратору")
		return
	}
	stored, err := b.StoredResponses(ctx)
	if err != nil {
		b.sendMessage(msg.Chat.ID, fmt.Sprintf("Ошибка чтения хранилища: %v", err))
		return
	}
	b.sendMessage(msg.Chat.ID, fmt.Sprintf("Анкет сохранено: %d\nОпросов в процессе: %d", stored, b.ActiveSessions()))
}

// SendDailyReport считает статистику за сутки и рассылает её администраторам.
// Используется планировщиком.
func (b *Bot) SendDailyReport(ctx context.Context) error {
	if b.adminSvc == nil || len(b.adminSvc.List()) == 0 {
		return nil
	}
	responses, err := b.loadResponses(ctx)
	if err != nil {
		return fmt.Errorf("load responses: %w", err)
	}
	stats := analytics.AnalyzeDailyResponses(responses, b.nowUTC())
	summary := stats.GenerateReportSummary()
	for _, admin := range b.adminSvc.List() {
		b.sendMessage(admin.ID, summary)
	}
	return nil
}
