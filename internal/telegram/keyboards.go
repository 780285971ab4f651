package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"fleet-survey-bot/internal/i18n"
)

// Callback tokens. Prefixed tokens carry a payload after the colon.
const (
	langPrefix      = "lang:"
	startSurveyCmd  = "start_survey"
	leaveContactCmd = "leave_contact"
	featPrefix      = "feat:"
	featDoneCmd     = "feat_done"
	choicePrefix    = "choice:"
	cancelCmd       = "cancel"
)

func languageKeyboard() tgbotapi.InlineKeyboardMarkup {
	labels := map[i18n.Locale]string{
		i18n.RU: "Русский 🇷🇺",
		i18n.EN: "English 🇬🇧",
	}
	var row []tgbotapi.InlineKeyboardButton
	for _, loc := range i18n.Supported {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(labels[loc], langPrefix+string(loc)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

func mainMenuKeyboard(loc i18n.Locale) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(loc, "btn_start_survey"), startSurveyCmd),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(loc, "btn_leave_contact"), leaveContactCmd),
		),
	)
}

// featuresKeyboard renders one button per option with a checked/unchecked
// mark, plus Done and Cancel controls.
func featuresKeyboard(loc i18n.Locale, options, selected []string) tgbotapi.InlineKeyboardMarkup {
	picked := make(map[string]bool, len(selected))
	for _, s := range selected {
		picked[s] = true
	}
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, opt := range options {
		mark := "☐"
		if picked[opt] {
			mark = "✅"
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%s %s", mark, opt), featPrefix+opt),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(i18n.T(loc, "btn_done"), featDoneCmd),
	))
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(i18n.T(loc, "btn_cancel"), cancelCmd),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func choiceKeyboard(loc i18n.Locale, options []string) tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	for _, opt := range options {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(opt, choicePrefix+opt))
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		row,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(loc, "btn_cancel"), cancelCmd),
		),
	)
}

func requestContactKeyboard(loc i18n.Locale) tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButtonContact(i18n.T(loc, "btn_send_contact")),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}
