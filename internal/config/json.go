package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for JSON files, with
// durations accepted as strings ("30s") or nanosecond numbers.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey string   `json:"token_sign_key"`
		TokenIssuer  string   `json:"token_issuer"`
		TokenTTL     Duration `json:"token_ttl"`
		LogLevel     string   `json:"log_level"`
		Argon2       struct {
			Time      uint32 `json:"time"`
			MemoryKiB uint32 `json:"memory_kib"`
			Threads   uint8  `json:"threads"`
		} `json:"argon2"`
		AvatarMaxBytes   int64  `json:"avatar_max_bytes"`
		TasksMaxPageSize uint64 `json:"tasks_max_page_size"`
	} `json:"app"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db"`
		Cache struct {
			RedisAddress  string   `json:"redis_address"`
			RedisPassword string   `json:"redis_password"`
			RedisDB       int      `json:"redis_db"`
			TTL           Duration `json:"ttl"`
		} `json:"cache"`
	} `json:"storage"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server"`

	Adapter struct {
		Mail struct {
			BaseURL string   `json:"base_url"`
			APIKey  string   `json:"api_key"`
			Sender  string   `json:"sender"`
			Timeout Duration `json:"timeout"`
		} `json:"mail"`
	} `json:"adapter"`

	Workers struct {
		NotificationWorkers   int `json:"notification_workers"`
		NotificationQueueSize int `json:"notification_queue_size"`
	} `json:"workers"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey: jsonCfg.App.TokenSignKey,
			TokenIssuer:  jsonCfg.App.TokenIssuer,
			TokenTTL:     time.Duration(jsonCfg.App.TokenTTL),
			LogLevel:     jsonCfg.App.LogLevel,
			Argon2: Argon2{
				Time:      jsonCfg.App.Argon2.Time,
				MemoryKiB: jsonCfg.App.Argon2.MemoryKiB,
				Threads:   jsonCfg.App.Argon2.Threads,
			},
			AvatarMaxBytes:   jsonCfg.App.AvatarMaxBytes,
			TasksMaxPageSize: jsonCfg.App.TasksMaxPageSize,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Cache: Cache{
				RedisAddress:  jsonCfg.Storage.Cache.RedisAddress,
				RedisPassword: jsonCfg.Storage.Cache.RedisPassword,
				RedisDB:       jsonCfg.Storage.Cache.RedisDB,
				TTL:           time.Duration(jsonCfg.Storage.Cache.TTL),
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Adapter: Adapter{
			Mail: Mail{
				BaseURL: jsonCfg.Adapter.Mail.BaseURL,
				APIKey:  jsonCfg.Adapter.Mail.APIKey,
				Sender:  jsonCfg.Adapter.Mail.Sender,
				Timeout: time.Duration(jsonCfg.Adapter.Mail.Timeout),
			},
		},
		Workers: Workers{
			NotificationWorkers:   jsonCfg.Workers.NotificationWorkers,
			NotificationQueueSize: jsonCfg.Workers.NotificationQueueSize,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON
// unmarshaling from strings like "1h", "30s" as well as plain numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case nil:
		return nil
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
