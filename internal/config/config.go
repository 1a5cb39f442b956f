package config

import (
	"bytes"
	"fmt"
	"net"
	neturl "net/url"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 5000
	defaultEnv        = "development"

	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultDBHost     = "127.0.0.1"
	defaultMySQLPort  = 3306
	defaultPGPort     = 5432
	defaultDBUser     = "root"
	defaultDBName     = "cybaemtech"
	defaultDBCharset  = "utf8mb4"
	defaultDBLoc      = "Local"
	defaultSQLiteFile = "cybaemtech.db"
	defaultSSLMode    = "prefer"
)

// AppConfig holds runtime startup configuration loaded from YAML,
// .env and process environment. Environment wins over the file.
type AppConfig struct {
	Port           int                   `yaml:"port"`
	Env            string                `yaml:"env"` // "development" | "production"
	FrontendURL    string                `yaml:"frontend_url"`
	Database       DatabaseRuntimeConfig `yaml:"database"`
	Paths          RuntimePathsConfig    `yaml:"paths"`
	AllowedOrigins []string              `yaml:"allowed_origins"`
	JWTSecret      string                `yaml:"jwt_secret"`
	AdminEmail     string                `yaml:"admin_email"`
	SMTP           SMTPRuntimeConfig     `yaml:"smtp"`
}

type DatabaseRuntimeConfig struct {
	Driver    string `yaml:"driver"` // mysql | postgres | sqlite
	DSN       string `yaml:"dsn"`
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	User      string `yaml:"user"`
	Password  string `yaml:"password"`
	Name      string `yaml:"name"`
	Charset   string `yaml:"charset"`
	ParseTime bool   `yaml:"parse_time"`
	Loc       string `yaml:"loc"`
	SSLMode   string `yaml:"ssl_mode"`
	File      string `yaml:"file"` // sqlite database file
}

type SMTPRuntimeConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type RuntimePathsConfig struct {
	Static  string `yaml:"static"`  // generated blog HTML
	Uploads string `yaml:"uploads"` // resume uploads
	Web     string `yaml:"web"`     // frontend project root (vite.config.ts, .htaccess)
}

type rawAppConfig struct {
	Port               int               `yaml:"port"`
	Env                string            `yaml:"env"`
	NodeEnv            string            `yaml:"node_env"`
	FrontendURL        string            `yaml:"frontend_url"`
	FrontendURLLegacy  string            `yaml:"frontendurl"`
	Database           rawDatabaseConfig `yaml:"database"`
	DatabaseURL        string            `yaml:"database_url"`
	DBDriver           string            `yaml:"db_driver"`
	DBHost             string            `yaml:"db_host"`
	DBPort             int               `yaml:"db_port"`
	DBUser             string            `yaml:"db_user"`
	DBPassword         string            `yaml:"db_password"`
	DBName             string            `yaml:"db_name"`
	Paths              rawPathsConfig    `yaml:"paths"`
	StaticDir          string            `yaml:"static_dir"`
	UploadDir          string            `yaml:"upload_dir"`
	UploadsDir         string            `yaml:"uploads_dir"`
	WebDir             string            `yaml:"web_dir"`
	AllowedOrigins     []string          `yaml:"allowed_origins"`
	CORSAllowedOrigins []string          `yaml:"cors_allowed_origins"`
	JWTSecret          string            `yaml:"jwt_secret"`
	SessionSecret      string            `yaml:"session_secret"`
	AdminEmail         string            `yaml:"admin_email"`
	HREmail            string            `yaml:"hr_email"`
	SMTP               rawSMTPConfig     `yaml:"smtp"`
	SMTPHost           string            `yaml:"smtp_host"`
	SMTPPort           int               `yaml:"smtp_port"`
	SMTPUser           string            `yaml:"smtp_user"`
	SMTPPassword       string            `yaml:"smtp_password"`
	SMTPFrom           string            `yaml:"smtp_from"`
}

type rawDatabaseConfig struct {
	Driver    string `yaml:"driver"`
	DSN       string `yaml:"dsn"`
	URL       string `yaml:"url"`
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	User      string `yaml:"user"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	Name      string `yaml:"name"`
	DBName    string `yaml:"db_name"`
	Charset   string `yaml:"charset"`
	ParseTime *bool  `yaml:"parse_time"`
	Loc       string `yaml:"loc"`
	SSLMode   string `yaml:"ssl_mode"`
	File      string `yaml:"file"`
	Path      string `yaml:"path"`
}

type rawSMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Pass     string `yaml:"pass"`
	From     string `yaml:"from"`
}

type rawPathsConfig struct {
	Static  string `yaml:"static"`
	Uploads string `yaml:"uploads"`
	Web     string `yaml:"web"`
}

// Load reads the YAML config file when it exists, then applies .env and
// process environment overrides. A missing default config file is fine,
// the service can run on environment alone.
func Load(configPath string) (*AppConfig, error) {
	loadDotEnv()

	path := strings.TrimSpace(configPath)
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	cfg := defaultAppConfig()
	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		raw := rawAppConfig{}
		if err := decoder.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
		applyRawAppConfig(&cfg, raw)
	case os.IsNotExist(err) && !explicit:
		// fall through to environment-only configuration
	default:
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	applyEnvOverrides(&cfg)
	cfg.Env = normalizeEnv(cfg.Env)
	cfg.Database, err = resolveDatabaseConfig(cfg.Database, cfg.IsDev())
	if err != nil {
		return nil, err
	}
	cfg.AllowedOrigins = normalizeOrigins(cfg.AllowedOrigins)
	cfg.FrontendURL = strings.TrimRight(strings.TrimSpace(cfg.FrontendURL), "/")

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d, expected 1-65535", cfg.Port)
	}
	if cfg.Database.Driver != DriverSQLite && (cfg.Database.Port < 1 || cfg.Database.Port > 65535) {
		return nil, fmt.Errorf("invalid database.port %d, expected 1-65535", cfg.Database.Port)
	}

	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Database: DatabaseRuntimeConfig{
			Host:      defaultDBHost,
			User:      defaultDBUser,
			Name:      defaultDBName,
			Charset:   defaultDBCharset,
			ParseTime: true,
			Loc:       defaultDBLoc,
			SSLMode:   defaultSSLMode,
			File:      defaultSQLiteFile,
		},
	}
}

func applyRawAppConfig(cfg *AppConfig, raw rawAppConfig) {
	if raw.Port != 0 {
		cfg.Port = raw.Port
	}
	if v := strings.TrimSpace(raw.Env); v != "" {
		cfg.Env = v
	}
	if v := strings.TrimSpace(raw.NodeEnv); v != "" {
		cfg.Env = v
	}
	if v := strings.TrimSpace(raw.FrontendURL); v != "" {
		cfg.FrontendURL = v
	}
	if v := strings.TrimSpace(raw.FrontendURLLegacy); v != "" {
		cfg.FrontendURL = v
	}

	cfg.Database = applyRawDatabaseConfig(cfg.Database, raw)

	if v := strings.TrimSpace(raw.Paths.Static); v != "" {
		cfg.Paths.Static = v
	}
	if v := strings.TrimSpace(raw.StaticDir); v != "" {
		cfg.Paths.Static = v
	}
	if v := strings.TrimSpace(raw.Paths.Uploads); v != "" {
		cfg.Paths.Uploads = v
	}
	if v := strings.TrimSpace(raw.UploadDir); v != "" {
		cfg.Paths.Uploads = v
	}
	if v := strings.TrimSpace(raw.UploadsDir); v != "" {
		cfg.Paths.Uploads = v
	}
	if v := strings.TrimSpace(raw.Paths.Web); v != "" {
		cfg.Paths.Web = v
	}
	if v := strings.TrimSpace(raw.WebDir); v != "" {
		cfg.Paths.Web = v
	}

	switch {
	case raw.AllowedOrigins != nil:
		cfg.AllowedOrigins = normalizeOrigins(raw.AllowedOrigins)
	case raw.CORSAllowedOrigins != nil:
		cfg.AllowedOrigins = normalizeOrigins(raw.CORSAllowedOrigins)
	}

	if v := strings.TrimSpace(raw.JWTSecret); v != "" {
		cfg.JWTSecret = v
	}
	if v := strings.TrimSpace(raw.SessionSecret); v != "" {
		cfg.JWTSecret = v
	}
	if v := strings.TrimSpace(raw.AdminEmail); v != "" {
		cfg.AdminEmail = v
	}
	if v := strings.TrimSpace(raw.HREmail); v != "" {
		cfg.AdminEmail = v
	}

	smtp := cfg.SMTP
	if v := strings.TrimSpace(raw.SMTP.Host); v != "" {
		smtp.Host = v
	}
	if v := strings.TrimSpace(raw.SMTPHost); v != "" {
		smtp.Host = v
	}
	if raw.SMTP.Port != 0 {
		smtp.Port = raw.SMTP.Port
	}
	if raw.SMTPPort != 0 {
		smtp.Port = raw.SMTPPort
	}
	if v := strings.TrimSpace(raw.SMTP.User); v != "" {
		smtp.User = v
	}
	if v := strings.TrimSpace(raw.SMTP.Username); v != "" {
		smtp.User = v
	}
	if v := strings.TrimSpace(raw.SMTPUser); v != "" {
		smtp.User = v
	}
	if v := strings.TrimSpace(raw.SMTP.Password); v != "" {
		smtp.Password = v
	}
	if v := strings.TrimSpace(raw.SMTP.Pass); v != "" {
		smtp.Password = v
	}
	if v := strings.TrimSpace(raw.SMTPPassword); v != "" {
		smtp.Password = v
	}
	if v := strings.TrimSpace(raw.SMTP.From); v != "" {
		smtp.From = v
	}
	if v := strings.TrimSpace(raw.SMTPFrom); v != "" {
		smtp.From = v
	}
	cfg.SMTP = smtp
}

func applyRawDatabaseConfig(current DatabaseRuntimeConfig, raw rawAppConfig) DatabaseRuntimeConfig {
	cfg := current

	if v := strings.TrimSpace(raw.Database.Driver); v != "" {
		cfg.Driver = v
	}
	if v := strings.TrimSpace(raw.DBDriver); v != "" {
		cfg.Driver = v
	}
	if v := strings.TrimSpace(raw.Database.DSN); v != "" {
		cfg.DSN = v
	}
	if v := strings.TrimSpace(raw.Database.URL); v != "" {
		cfg.DSN = v
	}
	if v := strings.TrimSpace(raw.DatabaseURL); v != "" {
		cfg.DSN = v
	}
	if v := strings.TrimSpace(raw.Database.Host); v != "" {
		cfg.Host = v
	}
	if v := strings.TrimSpace(raw.DBHost); v != "" {
		cfg.Host = v
	}
	if raw.Database.Port != 0 {
		cfg.Port = raw.Database.Port
	}
	if raw.DBPort != 0 {
		cfg.Port = raw.DBPort
	}
	if v := strings.TrimSpace(raw.Database.User); v != "" {
		cfg.User = v
	}
	if v := strings.TrimSpace(raw.Database.Username); v != "" {
		cfg.User = v
	}
	if v := strings.TrimSpace(raw.DBUser); v != "" {
		cfg.User = v
	}
	if v := strings.TrimSpace(raw.Database.Password); v != "" {
		cfg.Password = v
	}
	if v := strings.TrimSpace(raw.DBPassword); v != "" {
		cfg.Password = v
	}
	if v := strings.TrimSpace(raw.Database.Name); v != "" {
		cfg.Name = v
	}
	if v := strings.TrimSpace(raw.Database.DBName); v != "" {
		cfg.Name = v
	}
	if v := strings.TrimSpace(raw.DBName); v != "" {
		cfg.Name = v
	}
	if v := strings.TrimSpace(raw.Database.Charset); v != "" {
		cfg.Charset = v
	}
	if raw.Database.ParseTime != nil {
		cfg.ParseTime = *raw.Database.ParseTime
	}
	if v := strings.TrimSpace(raw.Database.Loc); v != "" {
		cfg.Loc = v
	}
	if v := strings.TrimSpace(raw.Database.SSLMode); v != "" {
		cfg.SSLMode = v
	}
	if v := strings.TrimSpace(raw.Database.File); v != "" {
		cfg.File = v
	}
	if v := strings.TrimSpace(raw.Database.Path); v != "" {
		cfg.File = v
	}

	return cfg
}

// resolveDatabaseConfig settles the driver after file and environment have
// both been applied. Explicit driver wins, then the DSN scheme, then the
// presence of host/name settings implies MySQL. With nothing configured a
// development run falls back to a local SQLite file and production refuses
// to guess.
func resolveDatabaseConfig(cfg DatabaseRuntimeConfig, dev bool) (DatabaseRuntimeConfig, error) {
	cfg.Driver = strings.ToLower(strings.TrimSpace(cfg.Driver))
	switch cfg.Driver {
	case "postgresql", "pg":
		cfg.Driver = DriverPostgres
	case "sqlite3":
		cfg.Driver = DriverSQLite
	}

	if cfg.Driver == "" {
		switch {
		case strings.HasPrefix(cfg.DSN, "postgres://"), strings.HasPrefix(cfg.DSN, "postgresql://"):
			cfg.Driver = DriverPostgres
		case strings.HasPrefix(cfg.DSN, "mysql://"), cfg.DSN != "":
			cfg.Driver = DriverMySQL
		case cfg.Host != defaultDBHost || cfg.Name != defaultDBName || cfg.Password != "":
			cfg.Driver = DriverMySQL
		case dev:
			cfg.Driver = DriverSQLite
		default:
			return cfg, fmt.Errorf("no database configured, set database.driver, DATABASE_URL or the DB_* variables")
		}
	}

	if cfg.Port == 0 {
		switch cfg.Driver {
		case DriverPostgres:
			cfg.Port = defaultPGPort
		default:
			cfg.Port = defaultMySQLPort
		}
	}
	if cfg.Driver == DriverSQLite && strings.TrimSpace(cfg.File) == "" {
		cfg.File = defaultSQLiteFile
	}
	return cfg, nil
}

// DSNValue renders the connection string for the resolved driver.
func (c DatabaseRuntimeConfig) DSNValue() string {
	if v := strings.TrimSpace(c.DSN); v != "" {
		return strings.TrimPrefix(v, "mysql://")
	}

	switch c.Driver {
	case DriverSQLite:
		return c.File
	case DriverPostgres:
		parts := []string{
			"host=" + c.Host,
			"port=" + strconv.Itoa(c.Port),
			"user=" + c.User,
			"dbname=" + c.Name,
			"sslmode=" + c.SSLMode,
		}
		if c.Password != "" {
			parts = append(parts, "password="+c.Password)
		}
		return strings.Join(parts, " ")
	default:
		params := neturl.Values{}
		params.Set("charset", c.Charset)
		params.Set("parseTime", strconv.FormatBool(c.ParseTime))
		params.Set("loc", c.Loc)

		auth := c.User
		if c.Password != "" {
			auth += ":" + c.Password
		}
		return fmt.Sprintf("%s@tcp(%s)/%s?%s",
			auth, net.JoinHostPort(c.Host, strconv.Itoa(c.Port)), c.Name, params.Encode())
	}
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	seen := map[string]bool{}
	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" || seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		out = append(out, trimmed)
	}
	return out
}

func normalizeEnv(env string) string {
	trimmed := strings.ToLower(strings.TrimSpace(env))
	if trimmed == "" {
		return defaultEnv
	}
	return trimmed
}

func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(c.Env, defaultEnv)
}

// MailEnabled reports whether job application notifications can be sent.
func (c *AppConfig) MailEnabled() bool {
	return strings.TrimSpace(c.SMTP.Host) != ""
}

