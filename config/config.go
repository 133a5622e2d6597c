package config

import (
	"fmt"
	"time"

	"github.com/jinzhu/configor"
)

type Config struct {
	AppConfig     AppConfig     `env:"APPCONFIG"`
	DiscordConfig DiscordConfig `env:"DISCORDCONFIG"`
	DBConfig      DBConfig      `env:"DBCONFIG"`
	JournalConfig JournalConfig `env:"JOURNALCONFIG"`
	InsightConfig InsightConfig `env:"INSIGHTCONFIG"`
}

type AppConfig struct {
	APPName  string `default:"journalbot"`
	Version  string `default:"x.x.x" env:"VERSION"`
	Port     int    `default:"8080" env:"APP_PORT"`
	LogLevel string `default:"info" env:"LOG_LEVEL"`
}

type DiscordConfig struct {
	Token             string `required:"true" env:"DISCORD_BOT_TOKEN"`
	GuildID           string `required:"true" env:"GUILD_ID"`
	SharedChannelID   string `required:"true" env:"SHARED_CHANNEL_ID"`
	OperatorChannelID string `env:"OPERATOR_CHANNEL_ID"`
}

type DBConfig struct {
	Host     string `default:"localhost" env:"DBHOST"`
	DataBase string `default:"journalbot" env:"DBNAME"`
	User     string `default:"postgres" env:"DBUSERNAME"`
	Password string `required:"true" env:"DBPASSWORD" default:"mysecretpassword"`
	Port     uint   `default:"5432" env:"DBPORT"`
	SSLMode  string `default:"disable" env:"DBSSL"`
}

type JournalConfig struct {
	DailyWordRequirement int    `default:"500" env:"DAILY_WORD_REQUIREMENT"`
	Timezone             string `default:"America/New_York" env:"TIMEZONE"`
}

type InsightConfig struct {
	APIKey  string `env:"OPENAI_API_KEY"`
	Model   string `default:"gpt-4o-mini" env:"OPENAI_MODEL"`
	BaseURL string `env:"OPENAI_BASE_URL"`
}

// ErrConfigInvalid wraps startup configuration problems. Fatal: the bot must
// not come up with a broken threshold or timezone.
type ErrConfigInvalid struct {
	Reason string
}

func (e ErrConfigInvalid) Error() string {
	return fmt.Sprintf("invalid configuration: %s", e.Reason)
}

func LoadConfigOrPanic() Config {
	var config = Config{}
	configor.Load(&config, "config/config.dev.json")

	if err := config.Validate(); err != nil {
		panic(err)
	}

	return config
}

// Validate checks the options the access engine depends on.
func (c Config) Validate() error {
	if c.JournalConfig.DailyWordRequirement <= 0 {
		return ErrConfigInvalid{Reason: fmt.Sprintf("DAILY_WORD_REQUIREMENT must be positive, got %d", c.JournalConfig.DailyWordRequirement)}
	}
	if _, err := time.LoadLocation(c.JournalConfig.Timezone); err != nil {
		return ErrConfigInvalid{Reason: fmt.Sprintf("TIMEZONE %q is not a valid IANA zone: %v", c.JournalConfig.Timezone, err)}
	}
	return nil
}

// Location returns the configured boundary timezone. Validate must have
// passed before this is called.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.JournalConfig.Timezone)
	if err != nil {
		panic(err)
	}
	return loc
}
