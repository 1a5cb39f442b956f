package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// loadDotEnv merges .env into the process environment without clobbering
// variables already set by the host.
func loadDotEnv() {
	_ = godotenv.Load()
}

func envString(keys ...string) (string, bool) {
	for _, key := range keys {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v, true
		}
	}
	return "", false
}

func envInt(keys ...string) (int, bool) {
	v, ok := envString(keys...)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// applyEnvOverrides layers the process environment on top of whatever the
// config file provided. DB_* selects MySQL, the libpq PG* family selects
// PostgreSQL, DATABASE_URL decides by scheme.
func applyEnvOverrides(cfg *AppConfig) {
	if v, ok := envInt("PORT"); ok {
		cfg.Port = v
	}
	if v, ok := envString("APP_ENV", "NODE_ENV"); ok {
		cfg.Env = v
	}
	if v, ok := envString("FRONTEND_URL"); ok {
		cfg.FrontendURL = v
	}
	if v, ok := envString("JWT_SECRET", "SESSION_SECRET"); ok {
		cfg.JWTSecret = v
	}
	if v, ok := envString("ADMIN_EMAIL", "HR_EMAIL"); ok {
		cfg.AdminEmail = v
	}

	applyEnvDatabase(cfg)

	if v, ok := envString("SMTP_HOST"); ok {
		cfg.SMTP.Host = v
	}
	if v, ok := envInt("SMTP_PORT"); ok {
		cfg.SMTP.Port = v
	}
	if v, ok := envString("SMTP_USER"); ok {
		cfg.SMTP.User = v
	}
	if v, ok := envString("SMTP_PASS", "SMTP_PASSWORD"); ok {
		cfg.SMTP.Password = v
	}
	if v, ok := envString("SMTP_FROM"); ok {
		cfg.SMTP.From = v
	}

	if v, ok := envString("STATIC_DIR"); ok {
		cfg.Paths.Static = v
	}
	if v, ok := envString("UPLOAD_DIR"); ok {
		cfg.Paths.Uploads = v
	}
	if v, ok := envString("WEB_DIR"); ok {
		cfg.Paths.Web = v
	}

	cfg.AllowedOrigins = append(cfg.AllowedOrigins, replitOrigins()...)
}

func applyEnvDatabase(cfg *AppConfig) {
	if v, ok := envString("DATABASE_URL"); ok {
		cfg.Database.DSN = v
		cfg.Database.Driver = ""
		return
	}

	if host, ok := envString("DB_HOST"); ok {
		cfg.Database.Driver = DriverMySQL
		cfg.Database.Host = host
		if v, ok := envInt("DB_PORT"); ok {
			cfg.Database.Port = v
		}
		if v, ok := envString("DB_USER", "DB_USERNAME"); ok {
			cfg.Database.User = v
		}
		if v, ok := envString("DB_PASS", "DB_PASSWORD"); ok {
			cfg.Database.Password = v
		}
		if v, ok := envString("DB_NAME", "DB_DATABASE"); ok {
			cfg.Database.Name = v
		}
		return
	}

	if host, ok := envString("PGHOST"); ok {
		cfg.Database.Driver = DriverPostgres
		cfg.Database.Host = host
		if v, ok := envInt("PGPORT"); ok {
			cfg.Database.Port = v
		}
		if v, ok := envString("PGUSER"); ok {
			cfg.Database.User = v
		}
		if v, ok := envString("PGPASSWORD"); ok {
			cfg.Database.Password = v
		}
		if v, ok := envString("PGDATABASE"); ok {
			cfg.Database.Name = v
		}
		if v, ok := envString("PGSSLMODE"); ok {
			cfg.Database.SSLMode = v
		}
	}
}

// replitOrigins derives extra allowed origins from Replit-style hosting
// variables so a fresh deployment works without editing the config file.
func replitOrigins() []string {
	var out []string
	if domains, ok := envString("REPLIT_DOMAINS"); ok {
		for _, domain := range strings.Split(domains, ",") {
			domain = strings.TrimSpace(domain)
			if domain != "" {
				out = append(out, "https://"+domain)
			}
		}
	}
	if domain, ok := envString("REPLIT_DEV_DOMAIN"); ok {
		out = append(out, "https://"+domain)
	}
	return out
}
