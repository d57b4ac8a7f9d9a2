package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Driver: DriverMongo, URI: "mongodb://localhost:27017"},
		Query:    QueryConfig{DefaultLimit: 10, MaxLimit: 100},
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.Database = DatabaseConfig{Driver: DriverMemory}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("memory driver needs no uri: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingMongoURI(t *testing.T) {
	cfg := validConfig()
	cfg.Database.URI = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing mongo uri")
	}
	if !strings.Contains(err.Error(), "database.uri") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Driver = "postgres"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}

	expected := `database.driver must be "mongo" or "memory", got "postgres"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_DefaultLimitAboveMax(t *testing.T) {
	cfg := validConfig()
	cfg.Query = QueryConfig{DefaultLimit: 50, MaxLimit: 20}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when default_limit exceeds max_limit")
	}

	cfg.Query.MaxLimit = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("max_limit 0 disables clamping: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.Driver != DriverMongo {
		t.Errorf("expected Driver=mongo, got %q", cfg.Database.Driver)
	}
	if cfg.Database.Name != "campus" {
		t.Errorf("expected Name=campus, got %q", cfg.Database.Name)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Cache.CountTTL() != 30*time.Second {
		t.Errorf("expected CountTTL=30s, got %v", cfg.Cache.CountTTL())
	}
	if cfg.Query.DefaultLimit != 10 {
		t.Errorf("expected DefaultLimit=10, got %d", cfg.Query.DefaultLimit)
	}
	if cfg.Query.MaxLimit != 0 {
		t.Errorf("expected MaxLimit=0, got %d", cfg.Query.MaxLimit)
	}
	if cfg.Cache.Enabled() {
		t.Error("cache without addrs must be disabled")
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database: DatabaseConfig{Driver: DriverMemory, Name: "school", ReadinessTimeout: 15},
		Cache:    CacheConfig{Addrs: []string{"localhost:6379"}, CountTTLSec: 5},
		Query:    QueryConfig{DefaultLimit: 25, MaxLimit: 50},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Database.Driver != DriverMemory || cfg.Database.Name != "school" {
		t.Errorf("database overridden: %+v", cfg.Database)
	}
	if cfg.Cache.CountTTL() != 5*time.Second || !cfg.Cache.Enabled() {
		t.Errorf("cache overridden: %+v", cfg.Cache)
	}
	if cfg.Query.DefaultLimit != 25 || cfg.Query.MaxLimit != 50 {
		t.Errorf("query overridden: %+v", cfg.Query)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("CAMPUS_TEST_URI", "mongodb://db:27017")

	in := []byte("uri: ${CAMPUS_TEST_URI}\nname: ${CAMPUS_TEST_MISSING:-campus}\nempty: ${CAMPUS_TEST_MISSING}")
	got := string(expandEnvVars(in))

	want := "uri: mongodb://db:27017\nname: campus\nempty: "
	if got != want {
		t.Errorf("expandEnvVars =\n%q\nwant\n%q", got, want)
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv("CAMPUS_TEST_PORT", "9090")
	path := filepath.Join(t.TempDir(), "test.yaml")
	yml := `
http:
  port: ${CAMPUS_TEST_PORT}
database:
  driver: memory
  seed_file: config/seed.yaml
cache:
  addrs: ["localhost:6379"]
query:
  max_limit: 100
`
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.HTTP.Port)
	}
	if cfg.Database.Driver != DriverMemory || cfg.Database.SeedFile != "config/seed.yaml" {
		t.Errorf("database = %+v", cfg.Database)
	}
	if !cfg.Cache.Enabled() || cfg.Query.DefaultLimit != 10 || cfg.Query.MaxLimit != 100 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("http:\n  port: 0\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := LoadFile(path)
	if err == nil || !strings.Contains(err.Error(), "invalid config") {
		t.Fatalf("err = %v, want invalid config", err)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_Local(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("local config must load: %v", err)
	}
	if cfg.HTTP.Port == 0 {
		t.Error("expected a port")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if GetEnv() != "local" {
		t.Errorf("GetEnv() = %q, want local", GetEnv())
	}
	t.Setenv("ENV", "prod")
	if GetEnv() != "prod" {
		t.Errorf("GetEnv() = %q, want prod", GetEnv())
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = -1
	cfg.Database.URI = ""
	cfg.Cache.DB = -2

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"http.port", "database.uri", "cache.db"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestDurations(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	cfg.HTTP.Port = 8081

	if got := cfg.HTTP.Addr(); got != ":8081" {
		t.Errorf("Addr = %q", got)
	}
	if cfg.HTTP.ReadTimeout() != 10*time.Second || cfg.HTTP.WriteTimeout() != 10*time.Second {
		t.Errorf("http timeouts = %v/%v", cfg.HTTP.ReadTimeout(), cfg.HTTP.WriteTimeout())
	}
	if cfg.HTTP.ShutdownTimeout() != 10*time.Second || cfg.Database.Readiness() != 10*time.Second {
		t.Errorf("shutdown = %v, readiness = %v", cfg.HTTP.ShutdownTimeout(), cfg.Database.Readiness())
	}
}

func TestLoad_ConfigPathOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	yml := "http:\n  port: 7070\ndatabase:\n  driver: memory\ncache:\n  addrs: [\"c:6379\"]\n  db: 3\n"
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load("does-not-exist")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 7070 || cfg.Cache.DB != 3 {
		t.Errorf("cfg = %+v", cfg)
	}
}
