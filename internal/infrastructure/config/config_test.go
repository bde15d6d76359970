package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port: got %q", cfg.Port)
	}
	if cfg.Auth.BcryptCost != 12 {
		t.Errorf("BcryptCost: got %d", cfg.Auth.BcryptCost)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL: got %s", cfg.Auth.TokenTTL)
	}
	if cfg.Storage.Driver != StorageMongo || cfg.Storage.CounterBackend != CounterMongo {
		t.Errorf("storage defaults: got %+v", cfg.Storage)
	}
	if cfg.Mongo.Database != "university_records" {
		t.Errorf("Mongo.Database: got %q", cfg.Mongo.Database)
	}
	if !cfg.Redis.Enabled {
		t.Error("Redis should be enabled by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":                  "9000",
		"ENV":                   "production",
		"JWT_SECRET":            "s3cret",
		"JWT_TTL":               "90m",
		"BCRYPT_COST":           "10",
		"DEFAULT_USER_PASSWORD": "changeme123",
		"STORAGE_DRIVER":        "memory",
		"ID_COUNTER_BACKEND":    "redis",
		"REDIS_ADDR":            "cache:6379",
		"SEED_PATH":             "seed.yaml",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "9000" || cfg.Env != "production" {
		t.Errorf("server overrides not applied: %+v", cfg)
	}
	if cfg.Auth.JWTSecret != "s3cret" || cfg.Auth.TokenTTL != 90*time.Minute || cfg.Auth.BcryptCost != 10 {
		t.Errorf("auth overrides not applied: %+v", cfg.Auth)
	}
	if cfg.Auth.DefaultPassword != "changeme123" {
		t.Errorf("DefaultPassword: got %q", cfg.Auth.DefaultPassword)
	}
	if cfg.Storage.Driver != StorageMemory || cfg.Storage.CounterBackend != CounterRedis {
		t.Errorf("storage overrides not applied: %+v", cfg.Storage)
	}
	if cfg.Redis.Addr != "cache:6379" {
		t.Errorf("Redis.Addr: got %q", cfg.Redis.Addr)
	}
	if cfg.SeedPath != "seed.yaml" {
		t.Errorf("SeedPath: got %q", cfg.SeedPath)
	}
}

func TestLoad_Rejects(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown driver":            {"STORAGE_DRIVER": "postgres"},
		"mongo counter over memory": {"STORAGE_DRIVER": "memory", "ID_COUNTER_BACKEND": "mongo"},
		"redis counter disabled":    {"ID_COUNTER_BACKEND": "redis", "REDIS_ENABLED": "false"},
		"missing secret in prod":    {"ENV": "production"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := load(context.Background(), envconfig.MapLookuper(env))
			if err == nil || !strings.HasPrefix(err.Error(), "config:") {
				t.Fatalf("expected config error, got %v", err)
			}
		})
	}
}
