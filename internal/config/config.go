package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/durabrake/financial-dashboard/internal/domain"
)

const (
	ParseFailureAbort = "abort"
	ParseFailureSkip  = "skip"
)

type Config struct {
	App        App        `mapstructure:",squash"`
	Server     Server     `mapstructure:",squash"`
	Database   Database   `mapstructure:",squash"`
	Paths      Paths      `mapstructure:",squash"`
	Generation Generation `mapstructure:",squash"`
	Auth       Auth       `mapstructure:",squash"`
	Thresholds Thresholds `mapstructure:",squash"`
	Targets    Targets    `mapstructure:",squash"`
	Storage    Storage    `mapstructure:",squash"`
	SecretKey  string     `mapstructure:"secret_key" validate:"required"`
}

type App struct {
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=trace debug info warn warning error fatal panic"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port" validate:"required,numeric"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Paths struct {
	InputDir       string `mapstructure:"input_dir" validate:"required"`
	OutputDir      string `mapstructure:"output_dir" validate:"required"`
	FinancialsFile string `mapstructure:"financials_file" validate:"required"`
	ProductsFile   string `mapstructure:"products_file" validate:"required"`
	CustomersFile  string `mapstructure:"customers_file" validate:"required"`
	BacklogFile    string `mapstructure:"backlog_file" validate:"required"`
	NotesFile      string `mapstructure:"notes_file"`
}

type Generation struct {
	Period             string `mapstructure:"period" validate:"omitempty,len=5"`
	ParseFailurePolicy string `mapstructure:"parse_failure_policy" validate:"oneof=abort skip"`
	CronSchedule       string `mapstructure:"generation_cron"`
	Enabled            bool   `mapstructure:"generation_enabled"`
	RunLedgerEnabled   bool   `mapstructure:"run_ledger_enabled"`
}

type Auth struct {
	Username     string        `mapstructure:"dashboard_username" validate:"required"`
	Password     string        `mapstructure:"dashboard_password"`
	PasswordHash string        `mapstructure:"dashboard_password_hash"`
	SessionTTL   time.Duration `mapstructure:"session_ttl" validate:"gt=0"`
}

// Thresholds holds the green/yellow edges for every colored metric.
type Thresholds struct {
	DSOGreen           float64 `mapstructure:"threshold_dso_green"`
	DSOYellow          float64 `mapstructure:"threshold_dso_yellow"`
	DIOGreen           float64 `mapstructure:"threshold_dio_green"`
	DIOYellow          float64 `mapstructure:"threshold_dio_yellow"`
	DPOGreen           float64 `mapstructure:"threshold_dpo_green"`
	DPOYellow          float64 `mapstructure:"threshold_dpo_yellow"`
	CCCGreen           float64 `mapstructure:"threshold_ccc_green"`
	CCCYellow          float64 `mapstructure:"threshold_ccc_yellow"`
	NWCPctGreen        float64 `mapstructure:"threshold_nwc_pct_green"`
	NWCPctYellow       float64 `mapstructure:"threshold_nwc_pct_yellow"`
	BacklogAgeGreen    float64 `mapstructure:"threshold_backlog_avg_age_green"`
	BacklogAgeYellow   float64 `mapstructure:"threshold_backlog_avg_age_yellow"`
	OldOrdersPctGreen  float64 `mapstructure:"threshold_old_orders_pct_green"`
	OldOrdersPctYellow float64 `mapstructure:"threshold_old_orders_pct_yellow"`
}

// Metric keys accepted by Thresholds.For.
const (
	MetricDSO          = "dso"
	MetricDIO          = "dio"
	MetricDPO          = "dpo"
	MetricCCC          = "ccc"
	MetricNWCPct       = "nwc_pct"
	MetricBacklogAge   = "backlog_avg_age"
	MetricOldOrdersPct = "old_orders_pct"
)

func (t Thresholds) For(metric string) domain.Threshold {
	switch metric {
	case MetricDSO:
		return domain.Threshold{Green: t.DSOGreen, Yellow: t.DSOYellow}
	case MetricDIO:
		return domain.Threshold{Green: t.DIOGreen, Yellow: t.DIOYellow}
	case MetricDPO:
		return domain.Threshold{Green: t.DPOGreen, Yellow: t.DPOYellow, HigherIsBetter: true}
	case MetricCCC:
		return domain.Threshold{Green: t.CCCGreen, Yellow: t.CCCYellow}
	case MetricNWCPct:
		return domain.Threshold{Green: t.NWCPctGreen, Yellow: t.NWCPctYellow}
	case MetricBacklogAge:
		return domain.Threshold{Green: t.BacklogAgeGreen, Yellow: t.BacklogAgeYellow}
	case MetricOldOrdersPct:
		return domain.Threshold{Green: t.OldOrdersPctGreen, Yellow: t.OldOrdersPctYellow}
	}
	return domain.Threshold{}
}

// Targets are optional budget margins. Zero means no target.
type Targets struct {
	GrossMarginPct  float64 `mapstructure:"gross_margin_target"`
	EBITDAMarginPct float64 `mapstructure:"ebitda_margin_target"`
}

type Storage struct {
	Bucket   string `mapstructure:"s3_bucket"`
	Prefix   string `mapstructure:"s3_prefix"`
	Region   string `mapstructure:"s3_region"`
	Endpoint string `mapstructure:"s3_endpoint"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8501)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/kpi?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("INPUT_DIR", "inputs")
	viper.SetDefault("OUTPUT_DIR", "generated")
	viper.SetDefault("FINANCIALS_FILE", "financial_statements.xlsx")
	viper.SetDefault("PRODUCTS_FILE", "product_sales.xlsx")
	viper.SetDefault("CUSTOMERS_FILE", "customer_sales.xlsx")
	viper.SetDefault("BACKLOG_FILE", "backlog.xlsx")
	viper.SetDefault("NOTES_FILE", "notes.md")

	viper.SetDefault("PERIOD", "")
	viper.SetDefault("PARSE_FAILURE_POLICY", ParseFailureAbort)
	viper.SetDefault("GENERATION_CRON", "0 6 2 * *") // 06:00 on the 2nd, for the month just closed
	viper.SetDefault("GENERATION_ENABLED", false)
	viper.SetDefault("RUN_LEDGER_ENABLED", false)

	viper.SetDefault("DASHBOARD_USERNAME", "admin")
	viper.SetDefault("DASHBOARD_PASSWORD", "")
	viper.SetDefault("DASHBOARD_PASSWORD_HASH", "")
	viper.SetDefault("SESSION_TTL", "12h")
	viper.SetDefault("SECRET_KEY", "change_me")

	viper.SetDefault("THRESHOLD_DSO_GREEN", 30)
	viper.SetDefault("THRESHOLD_DSO_YELLOW", 45)
	viper.SetDefault("THRESHOLD_DIO_GREEN", 85)
	viper.SetDefault("THRESHOLD_DIO_YELLOW", 105)
	viper.SetDefault("THRESHOLD_DPO_GREEN", 30)
	viper.SetDefault("THRESHOLD_DPO_YELLOW", 20)
	viper.SetDefault("THRESHOLD_CCC_GREEN", 30)
	viper.SetDefault("THRESHOLD_CCC_YELLOW", 60)
	viper.SetDefault("THRESHOLD_NWC_PCT_GREEN", 15)
	viper.SetDefault("THRESHOLD_NWC_PCT_YELLOW", 25)
	viper.SetDefault("THRESHOLD_BACKLOG_AVG_AGE_GREEN", 45)
	viper.SetDefault("THRESHOLD_BACKLOG_AVG_AGE_YELLOW", 60)
	viper.SetDefault("THRESHOLD_OLD_ORDERS_PCT_GREEN", 10)
	viper.SetDefault("THRESHOLD_OLD_ORDERS_PCT_YELLOW", 20)

	viper.SetDefault("GROSS_MARGIN_TARGET", 0)
	viper.SetDefault("EBITDA_MARGIN_TARGET", 0)

	viper.SetDefault("S3_BUCKET", "")
	viper.SetDefault("S3_PREFIX", "kpi-archive")
	viper.SetDefault("S3_REGION", "us-east-1")
	viper.SetDefault("S3_ENDPOINT", "")

	viper.SetDefault("LOG_LEVEL", "info")
}

func NewConfig() (*Config, error) {
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("viper could not read .env, relying on process environment: ", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, errors.Wrap(err, "decoding configuration")
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks struct tags and the cross-field rules tags cannot express.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	if c.Generation.Period != "" {
		if _, err := domain.ParsePeriod(c.Generation.Period); err != nil {
			return errors.Wrap(err, "invalid configuration")
		}
	}

	return nil
}

// SkipInvalidRecords reports whether malformed line items are dropped instead
// of aborting the run.
func (c *Config) SkipInvalidRecords() bool {
	return c.Generation.ParseFailurePolicy == ParseFailureSkip
}

func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("could not resolve working directory: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Debug(".env loaded from ", location)
			return
		}
	}

	logrus.Debug("no .env file found, using process environment")
}
