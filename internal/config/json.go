// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the layout accepted from
// a JSON configuration file.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey           string   `json:"token_sign_key"`
		TokenIssuer            string   `json:"token_issuer"`
		TokenDuration          Duration `json:"token_duration"`
		BcryptCost             int      `json:"bcrypt_cost"`
		DisableLegacyPasswords bool     `json:"disable_legacy_passwords"`
		AllowFreeStatus        bool     `json:"allow_free_status"`
		FeedbackFormURL        string   `json:"feedback_form_url"`
		LogLevel               string   `json:"log_level"`
		Version                string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Driver       string `json:"driver"`
			DSN          string `json:"dsn"`
			MaxOpenConns int    `json:"max_open_conns"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress       string   `json:"http_address"`
		GRPCAddress       string   `json:"grpc_address"`
		RequestTimeout    Duration `json:"request_timeout"`
		LoginRateLimit    int      `json:"login_rate_limit"`
		LoginRateWindow   Duration `json:"login_rate_window"`
		TrustProxyHeaders bool     `json:"trust_proxy_headers"`
	} `json:"server,omitempty"`

	Adapter struct {
		QR struct {
			BaseURL        string   `json:"base_url"`
			Size           int      `json:"size"`
			RequestTimeout Duration `json:"request_timeout"`
		} `json:"qr,omitempty"`
		Redis struct {
			Address  string `json:"address"`
			Password string `json:"password"`
			DB       int    `json:"db"`
		} `json:"redis,omitempty"`
		Broker struct {
			URL   string `json:"url"`
			Queue string `json:"queue"`
		} `json:"broker,omitempty"`
	} `json:"adapter,omitempty"`

	Workers struct {
		MetricsSchedule string `json:"metrics_schedule"`
	} `json:"workers,omitempty"`
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
			TokenSignKey:           jsonCfg.App.TokenSignKey,
			TokenIssuer:            jsonCfg.App.TokenIssuer,
			TokenDuration:          time.Duration(jsonCfg.App.TokenDuration),
			BcryptCost:             jsonCfg.App.BcryptCost,
			DisableLegacyPasswords: jsonCfg.App.DisableLegacyPasswords,
			AllowFreeStatus:        jsonCfg.App.AllowFreeStatus,
			FeedbackFormURL:        jsonCfg.App.FeedbackFormURL,
			LogLevel:               jsonCfg.App.LogLevel,
			Version:                jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				Driver:       jsonCfg.Storage.DB.Driver,
				DSN:          jsonCfg.Storage.DB.DSN,
				MaxOpenConns: jsonCfg.Storage.DB.MaxOpenConns,
			},
		},
		Server: Server{
			HTTPAddress:       jsonCfg.Server.HTTPAddress,
			GRPCAddress:       jsonCfg.Server.GRPCAddress,
			RequestTimeout:    time.Duration(jsonCfg.Server.RequestTimeout),
			LoginRateLimit:    jsonCfg.Server.LoginRateLimit,
			LoginRateWindow:   time.Duration(jsonCfg.Server.LoginRateWindow),
			TrustProxyHeaders: jsonCfg.Server.TrustProxyHeaders,
		},
		Adapter: Adapter{
			QR: QR{
				BaseURL:        jsonCfg.Adapter.QR.BaseURL,
				Size:           jsonCfg.Adapter.QR.Size,
				RequestTimeout: time.Duration(jsonCfg.Adapter.QR.RequestTimeout),
			},
			Redis: Redis{
				Address:  jsonCfg.Adapter.Redis.Address,
				Password: jsonCfg.Adapter.Redis.Password,
				DB:       jsonCfg.Adapter.Redis.DB,
			},
			Broker: Broker{
				URL:   jsonCfg.Adapter.Broker.URL,
				Queue: jsonCfg.Adapter.Broker.Queue,
			},
		},
		Workers: Workers{
			MetricsSchedule: jsonCfg.Workers.MetricsSchedule,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
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
