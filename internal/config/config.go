package config

import (
	"github.com/caarlos0/env/v6"
	"github.com/rs/zerolog/log"
)

type Config struct {
	TelegramBotToken string  `env:"TELEGRAM_BOT_TOKEN,required"`
	AdminUserIDs     []int64 `env:"ADMIN_IDS" envSeparator:","`

	// Google Sheets sink
	GoogleSheetID            string `env:"GOOGLE_SHEET_ID"`
	GoogleServiceAccountJSON string `env:"GOOGLE_SERVICE_ACCOUNT_JSON"` // raw JSON or base64

	// Webhook mode; long polling is used when BaseURL is empty
	BaseURL    string `env:"BASE_URL"`
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`

	// Storage
	ResponsesFilePath string `env:"RESPONSES_FILE_PATH" envDefault:"data/responses.csv"`
	AdminsFilePath    string `env:"ADMINS_FILE_PATH" envDefault:"data/admins.json"`

	// Formatting
	DefaultLocale    string `env:"DEFAULT_LOCALE" envDefault:"ru"`
	MessageParseMode string `env:"MESSAGE_PARSE_MODE" envDefault:"HTML"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to parse config")
	}
	return cfg
}
