package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ServerConfig holds the process level settings
type ServerConfig struct {
	Port            string
	Prod            bool
	RedisURL        string
	RedisDB         int
	FlushRedis      bool
	MigratePostgres bool
	TLSCert         string
	TLSKey          string
	AllowedOrigins  []string
}

// EngineConfig tunes the quiz engine. ConfigFile, when set, points to a YAML
// file read by LoadEngineFile.
type EngineConfig struct {
	NPCAccuracy         float64
	NPCMinDelay         time.Duration
	NPCMaxDelay         time.Duration
	PersistTimeout      time.Duration
	OutboxWorkers       int
	OutboxQueueSize     int
	SocketRatePerSecond float64
	SocketBurst         int
	ConfigFile          string
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func envInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func envFloat(key string, def float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func ReadServerConfig() (ServerConfig, error) {
	cfg := ServerConfig{
		Port:     envString("PORT", "8080"),
		RedisURL: envString("REDIS_URL", "localhost:6379"),
		TLSCert:  os.Getenv("TLS_CERT_FILE"),
		TLSKey:   os.Getenv("TLS_KEY_FILE"),
	}
	var err error
	if cfg.Prod, err = envBool("PROD", false); err != nil {
		return cfg, err
	}
	if cfg.RedisDB, err = envInt("REDIS_DB", 0); err != nil {
		return cfg, err
	}
	if cfg.FlushRedis, err = envBool("FLUSH_REDIS", false); err != nil {
		return cfg, err
	}
	if cfg.MigratePostgres, err = envBool("MIGRATE_POSTGRES", false); err != nil {
		return cfg, err
	}
	for _, origin := range strings.Split(envString("ALLOWED_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}
	return cfg, nil
}

func ReadEngineConfig() (EngineConfig, error) {
	cfg := EngineConfig{ConfigFile: os.Getenv("ENGINE_CONFIG_FILE")}
	var err error
	if cfg.NPCAccuracy, err = envFloat("NPC_ACCURACY", 0.70); err != nil {
		return cfg, err
	}
	if cfg.NPCAccuracy < 0 || cfg.NPCAccuracy > 1 {
		return cfg, fmt.Errorf("invalid NPC_ACCURACY: %v is outside [0,1]", cfg.NPCAccuracy)
	}

	minMs, err := envInt("NPC_MIN_DELAY_MS", 1000)
	if err != nil {
		return cfg, err
	}
	maxMs, err := envInt("NPC_MAX_DELAY_MS", 4000)
	if err != nil {
		return cfg, err
	}
	if minMs < 0 || maxMs <= minMs {
		return cfg, fmt.Errorf("invalid npc delay window [%d,%d)", minMs, maxMs)
	}
	cfg.NPCMinDelay = time.Duration(minMs) * time.Millisecond
	cfg.NPCMaxDelay = time.Duration(maxMs) * time.Millisecond

	timeoutSeconds, err := envInt("PERSIST_TIMEOUT_SECONDS", 5)
	if err != nil {
		return cfg, err
	}
	cfg.PersistTimeout = time.Duration(timeoutSeconds) * time.Second

	if cfg.OutboxWorkers, err = envInt("OUTBOX_WORKERS", 8); err != nil {
		return cfg, err
	}
	if cfg.OutboxQueueSize, err = envInt("OUTBOX_QUEUE_SIZE", 1024); err != nil {
		return cfg, err
	}
	if cfg.SocketRatePerSecond, err = envFloat("SOCKET_RATE_PER_SECOND", 10); err != nil {
		return cfg, err
	}
	if cfg.SocketBurst, err = envInt("SOCKET_BURST", 20); err != nil {
		return cfg, err
	}
	return cfg, nil
}
