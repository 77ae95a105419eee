package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/yourusername/carpet-retail-bot/internal/domain/constants"
)

// Config carries the settings of every bot subsystem.
type Config struct {
	Bot    BotConfig
	DB     DBConfig
	Sheets SheetsConfig
	Search SearchConfig
	HTTP   HTTPConfig
	Log    LogConfig
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if cfg.Search.RowsPerPage <= 0 {
		cfg.Search.RowsPerPage = constants.DefaultInlineRowsPerPage
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// LoadDB reads only the database settings, for tools that do not need
// the rest of the bot configuration.
func LoadDB() (*DBConfig, error) {
	_ = godotenv.Load()

	var db DBConfig
	if err := envconfig.Process("", &db); err != nil {
		return nil, fmt.Errorf("parsing db config: %w", err)
	}
	if err := db.ensureDSN(); err != nil {
		return nil, err
	}
	return &db, nil
}

type BotConfig struct {
	Token    string  `envconfig:"CARPETBOT_TOKEN" validate:"required"`
	AdminIDs []int64 `envconfig:"CARPETBOT_ADMIN_IDS"`
}

// IsAdmin reports whether the telegram id is on the admin list.
func (b BotConfig) IsAdmin(telegramID int64) bool {
	return slices.Contains(b.AdminIDs, telegramID)
}

type DBConfig struct {
	DSN string `envconfig:"CARPETBOT_DB_DSN" validate:"required"`

	Host     string `envconfig:"CARPETBOT_DB_HOST"`
	Port     int    `envconfig:"CARPETBOT_DB_PORT" default:"5432"`
	User     string `envconfig:"CARPETBOT_DB_USER"`
	Password string `envconfig:"CARPETBOT_DB_PASSWORD"`
	Name     string `envconfig:"CARPETBOT_DB_NAME"`
	SSLMode  string `envconfig:"CARPETBOT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CARPETBOT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CARPETBOT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CARPETBOT_DB_CONN_MAX_LIFETIME" default:"1h"`
}

type SheetsConfig struct {
	CredentialsFile string `envconfig:"CARPETBOT_SHEETS_CREDENTIALS_FILE" default:"credentials.json"`
	SpreadsheetID   string `envconfig:"CARPETBOT_SHEETS_SPREADSHEET_ID"`
	CarpetsTitle    string `envconfig:"CARPETBOT_SHEETS_CARPETS_TITLE" default:"Ковры"`
	SalesTitle      string `envconfig:"CARPETBOT_SHEETS_SALES_TITLE" default:"Продажи"`
}

type SearchConfig struct {
	// OnlyAvailable restricts search to carpets with stock on hand.
	OnlyAvailable bool `envconfig:"CARPETBOT_SEARCH_ONLY_AVAILABLE" default:"true"`
	RowsPerPage   int  `envconfig:"CARPETBOT_SEARCH_ROWS_PER_PAGE"`
}

type HTTPConfig struct {
	Addr string `envconfig:"CARPETBOT_HTTP_ADDR" default:":8080"`
}

type LogConfig struct {
	Level  string `envconfig:"CARPETBOT_LOG_LEVEL" default:"info"`
	Pretty bool   `envconfig:"CARPETBOT_LOG_PRETTY" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	for env, value := range map[string]string{
		"CARPETBOT_DB_HOST": db.Host,
		"CARPETBOT_DB_USER": db.User,
		"CARPETBOT_DB_NAME": db.Name,
	} {
		if value == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return fmt.Errorf("either CARPETBOT_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}
	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
