package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveDatabaseDriver(t *testing.T) {
	cases := []struct {
		name string
		in   DatabaseRuntimeConfig
		dev  bool
		want string
	}{
		{"explicit mysql", DatabaseRuntimeConfig{Driver: "mysql"}, true, DriverMySQL},
		{"explicit postgres alias", DatabaseRuntimeConfig{Driver: "postgresql"}, true, DriverPostgres},
		{"pg alias", DatabaseRuntimeConfig{Driver: "pg"}, true, DriverPostgres},
		{"sqlite3 alias", DatabaseRuntimeConfig{Driver: "sqlite3"}, true, DriverSQLite},
		{"postgres dsn scheme", DatabaseRuntimeConfig{DSN: "postgres://u:p@h/db"}, true, DriverPostgres},
		{"postgresql dsn scheme", DatabaseRuntimeConfig{DSN: "postgresql://u:p@h/db"}, true, DriverPostgres},
		{"mysql dsn scheme", DatabaseRuntimeConfig{DSN: "mysql://u:p@tcp(h)/db"}, true, DriverMySQL},
		{"bare dsn means mysql", DatabaseRuntimeConfig{DSN: "u:p@tcp(h:3306)/db"}, true, DriverMySQL},
		{"db settings imply mysql", DatabaseRuntimeConfig{Host: "db.internal", Name: defaultDBName}, false, DriverMySQL},
		{"nothing set in dev", DatabaseRuntimeConfig{Host: defaultDBHost, Name: defaultDBName}, true, DriverSQLite},
	}
	for _, tc := range cases {
		got, err := resolveDatabaseConfig(tc.in, tc.dev)
		if err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
			continue
		}
		if got.Driver != tc.want {
			t.Errorf("%s: driver = %q, expected %q", tc.name, got.Driver, tc.want)
		}
	}
}

func TestResolveDatabaseRefusesToGuessInProduction(t *testing.T) {
	_, err := resolveDatabaseConfig(DatabaseRuntimeConfig{Host: defaultDBHost, Name: defaultDBName}, false)
	if err == nil {
		t.Fatal("expected an error when nothing is configured in production")
	}
}

func TestResolveDatabaseDefaults(t *testing.T) {
	pg, err := resolveDatabaseConfig(DatabaseRuntimeConfig{Driver: "postgres"}, false)
	if err != nil {
		t.Fatalf("resolve postgres: %v", err)
	}
	if pg.Port != defaultPGPort {
		t.Errorf("postgres port = %d, expected %d", pg.Port, defaultPGPort)
	}

	my, err := resolveDatabaseConfig(DatabaseRuntimeConfig{Driver: "mysql"}, false)
	if err != nil {
		t.Fatalf("resolve mysql: %v", err)
	}
	if my.Port != defaultMySQLPort {
		t.Errorf("mysql port = %d, expected %d", my.Port, defaultMySQLPort)
	}

	lite, err := resolveDatabaseConfig(DatabaseRuntimeConfig{Driver: "sqlite"}, true)
	if err != nil {
		t.Fatalf("resolve sqlite: %v", err)
	}
	if lite.File != defaultSQLiteFile {
		t.Errorf("sqlite file = %q, expected %q", lite.File, defaultSQLiteFile)
	}
}

func TestAnchoredDir(t *testing.T) {
	if got := anchoredDir("/var/www/static/", ""); got != "/var/www/static" {
		t.Errorf("absolute path = %q, expected cleaned /var/www/static", got)
	}

	got := anchoredDir("", "uploads")
	if !filepath.IsAbs(got) {
		t.Errorf("fallback dir %q should resolve to an absolute path", got)
	}
	if filepath.Base(got) != "uploads" {
		t.Errorf("fallback dir = %q, expected an uploads subdir", got)
	}
}

func TestDSNValueMySQL(t *testing.T) {
	cfg := DatabaseRuntimeConfig{
		Driver:    DriverMySQL,
		Host:      "127.0.0.1",
		Port:      3306,
		User:      "root",
		Password:  "secret",
		Name:      "cybaemtech",
		Charset:   "utf8mb4",
		ParseTime: true,
		Loc:       "Local",
	}
	dsn := cfg.DSNValue()
	if !strings.HasPrefix(dsn, "root:secret@tcp(127.0.0.1:3306)/cybaemtech?") {
		t.Errorf("mysql dsn = %q, wrong address block", dsn)
	}
	for _, param := range []string{"charset=utf8mb4", "parseTime=true", "loc=Local"} {
		if !strings.Contains(dsn, param) {
			t.Errorf("mysql dsn %q missing %s", dsn, param)
		}
	}
}

func TestDSNValuePostgres(t *testing.T) {
	cfg := DatabaseRuntimeConfig{
		Driver:  DriverPostgres,
		Host:    "db.internal",
		Port:    5432,
		User:    "site",
		Name:    "cybaemtech",
		SSLMode: "require",
	}
	dsn := cfg.DSNValue()
	for _, part := range []string{"host=db.internal", "port=5432", "user=site", "dbname=cybaemtech", "sslmode=require"} {
		if !strings.Contains(dsn, part) {
			t.Errorf("postgres dsn %q missing %s", dsn, part)
		}
	}
	if strings.Contains(dsn, "password=") {
		t.Errorf("postgres dsn %q should omit empty password", dsn)
	}
}

func TestDSNValueExplicitWins(t *testing.T) {
	cfg := DatabaseRuntimeConfig{Driver: DriverMySQL, DSN: "mysql://root@tcp(h:3306)/db"}
	if got := cfg.DSNValue(); got != "root@tcp(h:3306)/db" {
		t.Errorf("DSNValue = %q, expected scheme-stripped explicit DSN", got)
	}
}

func TestNormalizeEnv(t *testing.T) {
	cases := map[string]string{
		"":            "development",
		"Development": "development",
		"PRODUCTION":  "production",
		"  staging  ": "staging",
	}
	for in, want := range cases {
		if got := normalizeEnv(in); got != want {
			t.Errorf("normalizeEnv(%q) = %q, expected %q", in, got, want)
		}
	}
}
