// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides configuration loading, merging, and validation
// facilities for the repair desk server.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables (a .env file is loaded into the environment by
//     the server entry point)
//  2. Command-line flags
//  3. JSON config file
//
// Settings left unset by every source are taken from [Defaults].
// The main entry point is [GetStructuredConfig].
package config
