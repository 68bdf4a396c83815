package config

import (
	"fmt"

	commonconfig "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/config"
)

// ServerConfig: HTTP 서버 설정 (포트 등) alias
type ServerConfig = commonconfig.ServerConfig

// ServerTuningConfig: 서버 튜닝 설정 (Timeouts, Limits 등) alias
type ServerTuningConfig = commonconfig.ServerTuningConfig

// RedisConfig: Redis/Valkey 저장소 연결 설정 alias
type RedisConfig = commonconfig.RedisConfig

// LogConfig: 로깅 설정 alias
type LogConfig = commonconfig.LogConfig

// PostgresConfig: 과거 평점 행렬을 보관하는 PostgreSQL 설정
type PostgresConfig struct {
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string
}

// CatalogConfig: 카탈로그 CSV 데이터셋 설정
type CatalogConfig struct {
	DataDir string // games.csv / genres.csv / publishers.csv 위치
}

// EngineConfig: 추천 계산 상한 설정
type EngineConfig struct {
	TopCandidates int // 겹침 수 기준으로 유지할 후보 사용자 수
	TopSimilar    int // 유사도 기준으로 유지할 사용자 수
}

// Config: 전체 애플리케이션 설정 구조체
type Config struct {
	Server       ServerConfig
	ServerTuning ServerTuningConfig
	Redis        RedisConfig
	Postgres     PostgresConfig
	Catalog      CatalogConfig
	Engine       EngineConfig
	Log          LogConfig
	Telemetry    commonconfig.TelemetryConfig // OpenTelemetry 분산 추적
}

// LoadFromEnv: 환경 변수로부터 전체 애플리케이션 설정을 로드합니다.
func LoadFromEnv() (*Config, error) {
	server, err := commonconfig.ReadServerConfigFromEnv(40510)
	if err != nil {
		return nil, fmt.Errorf("read server config failed: %w", err)
	}

	serverTuning, err := commonconfig.ReadServerTuningConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("read server tuning config failed: %w", err)
	}

	redisCfg, err := commonconfig.ReadRedisConfigFromEnv(
		[]string{"STORE_HOST", "REDIS_HOST"},
		[]string{"STORE_PORT", "REDIS_PORT"},
		[]string{"STORE_PASSWORD", "REDIS_PASSWORD"},
		"localhost",
		6379,
	)
	if err != nil {
		return nil, fmt.Errorf("read redis config failed: %w", err)
	}

	postgres, err := readPostgresConfig()
	if err != nil {
		return nil, err
	}

	engine, err := readEngineConfig()
	if err != nil {
		return nil, err
	}

	logCfg, err := commonconfig.ReadLogConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("read log config failed: %w", err)
	}

	telemetry, err := commonconfig.ReadTelemetryConfigFromEnv("game-recommender")
	if err != nil {
		return nil, fmt.Errorf("read telemetry config failed: %w", err)
	}

	return &Config{
		Server:       server,
		ServerTuning: serverTuning,
		Redis:        redisCfg,
		Postgres:     postgres,
		Catalog: CatalogConfig{
			DataDir: commonconfig.StringFromEnv("CATALOG_DATA_DIR", DefaultCatalogDataDir),
		},
		Engine:    engine,
		Log:       logCfg,
		Telemetry: telemetry,
	}, nil
}

func readPostgresConfig() (PostgresConfig, error) {
	port, err := commonconfig.IntFromEnv("DB_PORT", 5432)
	if err != nil {
		return PostgresConfig{}, fmt.Errorf("read DB_PORT failed: %w", err)
	}

	return PostgresConfig{
		Host:     commonconfig.StringFromEnv("DB_HOST", "localhost"),
		Port:     port,
		Name:     commonconfig.StringFromEnv("DB_NAME", "recommender"),
		User:     commonconfig.StringFromEnv("DB_USER", "recommender_app"),
		Password: commonconfig.StringFromEnv("DB_PASSWORD", ""),
		SSLMode:  commonconfig.StringFromEnv("DB_SSLMODE", "disable"),
	}, nil
}

func readEngineConfig() (EngineConfig, error) {
	topCandidates, err := commonconfig.IntFromEnv("ENGINE_TOP_CANDIDATES", DefaultTopCandidates)
	if err != nil {
		return EngineConfig{}, fmt.Errorf("read ENGINE_TOP_CANDIDATES failed: %w", err)
	}
	if topCandidates <= 0 {
		return EngineConfig{}, fmt.Errorf("invalid ENGINE_TOP_CANDIDATES: %d", topCandidates)
	}

	topSimilar, err := commonconfig.IntFromEnv("ENGINE_TOP_SIMILAR", DefaultTopSimilar)
	if err != nil {
		return EngineConfig{}, fmt.Errorf("read ENGINE_TOP_SIMILAR failed: %w", err)
	}
	if topSimilar <= 0 {
		return EngineConfig{}, fmt.Errorf("invalid ENGINE_TOP_SIMILAR: %d", topSimilar)
	}

	return EngineConfig{
		TopCandidates: topCandidates,
		TopSimilar:    topSimilar,
	}, nil
}
