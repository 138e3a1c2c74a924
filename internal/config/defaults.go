// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

// Defaults returns the values used for every setting no source provided.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:     "go-repair-desk",
			TokenDuration:   24 * time.Hour,
			BcryptCost:      10,
			FeedbackFormURL: "https://docs.google.com/forms/d/e/1FAIpQLSdhZcExx6LSIXxk0ub55mSu-WIh23WYdGG9HY5EZhLDo7P8eA/viewform?usp=sf_link",
			LogLevel:        "debug",
			Version:         "dev",
		},
		Storage: Storage{
			DB: DB{
				Driver: DriverPostgres,
			},
		},
		Server: Server{
			HTTPAddress:     "localhost:8080",
			RequestTimeout:  30 * time.Second,
			LoginRateLimit:  10,
			LoginRateWindow: time.Minute,
		},
		Adapter: Adapter{
			QR: QR{
				BaseURL:        "https://api.qrserver.com/v1/create-qr-code/",
				Size:           200,
				RequestTimeout: 5 * time.Second,
			},
			Broker: Broker{
				Queue: "repair.requests",
			},
		},
		Workers: Workers{
			MetricsSchedule: "@every 1m",
		},
	}
}
