// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskVault Authors

package config

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN (SQLite file path)
//	-c/-config json file path with configs
//	-strategy conflict strategy ("last_write_wins" or "manual")
//	-sync-interval background sync interval (e.g., "5m", "30s")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-log-file daemon log file path
func parseFlags() (*StructuredConfig, error) {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var conflictStrategy string
	var syncInterval time.Duration
	var requestTimeout time.Duration
	var logFile string

	flag.Var(&serverAddress, "a", "Sync server address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN (SQLite file path)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&conflictStrategy, "strategy", "", "Conflict strategy: last_write_wins or manual")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Background sync interval (e.g., 5m, 30s)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&logFile, "log-file", "", "Daemon log file path")

	if err := flag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			ConflictStrategy: conflictStrategy,
			LogFile:          logFile,
		},
		Adapter: Adapter{
			ServerAddress:  serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Workers: Workers{
			SyncInterval: syncInterval,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, requires a non-empty host, and returns an
// error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host == "" {
		return errors.New("host must not be empty")
	}

	a.Host = host
	a.Port = port
	return nil
}
