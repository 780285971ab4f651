// Package i18n holds the static localization table. It is pure data:
// a (locale, key) lookup with a fallback chain, no formatting logic.
package i18n

type Locale string

const (
	RU Locale = "ru"
	EN Locale = "en"
)

// Supported lists selectable locales in menu order.
var Supported = []Locale{RU, EN}

func (l Locale) Valid() bool {
	for _, s := range Supported {
		if s == l {
			return true
		}
	}
	return false
}

var messages = map[Locale]map[string]string{
	RU: {
		"choose_language": "Выберите язык / Choose a language:",
		"language_set":    "Язык установлен: русский 🇷🇺",
		"greeting": "Привет! Мы готовим платформу, которая помогает автопаркам получать клиентов напрямую.\n" +
			"Хотим учесть ваши пожелания — ответьте на пару вопросов 🙌",
		"btn_start_survey":  "📝 Пройти опрос (2 минуты)",
		"btn_leave_contact": "📞 Оставить контакт без опроса",
		"btn_done":          "Готово ✅",
		"btn_cancel":        "Отмена ↩️",
		"btn_send_contact":  "Отправить контакт",
		"survey_intro":      "Начнём! Можно остановиться в любой момент командой /cancel.",
		"cancelled":         "Окей, остановил опрос. Возвращайтесь, когда будет удобно.",
		"need_buttons":      "Нажмите, пожалуйста, кнопки под сообщением.",
		"need_choice":       "Пожалуйста, нажмите кнопку «Да» или «Нет».",
		"leave_contact":     "Оставьте, пожалуйста, контактное лицо (ФИО).",
		"contact_thanks":    "Спасибо! 👍",
		"multiselect_saved": "Принято ✅",
		"toggle_updated":    "Обновлено",
		"answer_is":         "Ответ: <b>%s</b>",
		"already_done":      "Мы уже закончили опрос. Нажмите /start, чтобы начать заново.",
		"saved_ok":          "Спасибо! Ваши ответы сохранены. Мы свяжемся с вами по итогам беты 🙌",
		"saved_fallback":    "Спасибо! Ответы получены. (Не смог записать в таблицу — сохраняю у себя. Мы всё равно свяжемся.)",

		"q_company":        "Как называется ваш автопарк/компания?",
		"q_city":           "В каком городе вы работаете?",
		"q_fleet_size":     "Сколько машин в автопарке (примерно)?",
		"q_lead_channels":  "Где сейчас берёте клиентов? (Instagram, Telegram, сайт, Avtoelon и т.п.)",
		"q_features":       "Какие функции для вас важны? Отметьте кнопками, затем нажмите «Готово».",
		"q_pilot_interest": "Готовы участвовать в пилоте? (Да/Нет)",
		"q_contact_name":   "Как связаться: контактное лицо (ФИО)?",
		"q_contact_phone":  "Оставьте номер телефона (или нажмите кнопку ниже «Отправить контакт»).",
	},
	EN: {
		"language_set": "Language set: English 🇬🇧",
		"greeting": "Hi! We are building a platform that helps taxi fleets get clients directly.\n" +
			"We'd love to hear from you — please answer a few questions 🙌",
		"btn_start_survey":  "📝 Take the survey (2 minutes)",
		"btn_leave_contact": "📞 Leave a contact without the survey",
		"btn_done":          "Done ✅",
		"btn_cancel":        "Cancel ↩️",
		"btn_send_contact":  "Share contact",
		"survey_intro":      "Let's start! You can stop at any moment with /cancel.",
		"cancelled":         "Okay, stopped the survey. Come back whenever it's convenient.",
		"need_buttons":      "Please use the buttons under the message.",
		"need_choice":       "Please press the «Да» or «Нет» button.",
		"leave_contact":     "Please leave a contact person (full name).",
		"contact_thanks":    "Thank you! 👍",
		"multiselect_saved": "Got it ✅",
		"toggle_updated":    "Updated",
		"answer_is":         "Answer: <b>%s</b>",
		"already_done":      "The survey is already finished. Press /start to start over.",
		"saved_ok":          "Thank you! Your answers are saved. We'll reach out with the beta results 🙌",
		"saved_fallback":    "Thank you! Answers received. (Couldn't write to the sheet — keeping a local copy. We'll reach out anyway.)",

		"q_company":        "What is your fleet/company called?",
		"q_city":           "Which city do you operate in?",
		"q_fleet_size":     "How many cars are in the fleet (roughly)?",
		"q_lead_channels":  "Where do you get clients now? (Instagram, Telegram, website, Avtoelon etc.)",
		"q_features":       "Which features matter to you? Mark them with the buttons, then press «Done».",
		"q_pilot_interest": "Ready to join the pilot? (Да/Нет)",
		"q_contact_name":   "Contact person (full name)?",
		"q_contact_phone":  "Leave a phone number (or press the «Share contact» button below).",
	},
}

// T resolves key for loc, falling back to Russian and finally to the key
// itself so a missing translation never produces an empty message.
func T(loc Locale, key string) string {
	if m, ok := messages[loc]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	if s, ok := messages[RU][key]; ok {
		return s
	}
	return key
}
