/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package provider provides functionality for managing database connections and clients.
package provider

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/asgardeo/cloudinit/internal/system/config"
	"github.com/asgardeo/cloudinit/internal/system/database/client"
	"github.com/asgardeo/cloudinit/internal/system/database/model"
	"github.com/asgardeo/cloudinit/internal/system/log"
)

const loggerComponentName = "DBProvider"

// dbConfig represents the local database configuration.
type dbConfig struct {
	dsn        string
	driverName string
	filePath   string
}

// DBProviderInterface defines the interface for getting database clients.
type DBProviderInterface interface {
	GetDBClient() (client.DBClientInterface, error)
	Close() error
}

// DBProvider is the implementation of DBProviderInterface. The client is created on first use
// and shared until the provider is closed.
type DBProvider struct {
	agentHome  string
	dataSource config.DataSource
	dbClient   client.DBClientInterface
	mutex      sync.RWMutex
}

// NewDBProvider creates a provider for the data source. Relative SQLite paths are resolved
// against the agent home directory.
func NewDBProvider(agentHome string, dataSource config.DataSource) *DBProvider {
	return &DBProvider{
		agentHome:  agentHome,
		dataSource: dataSource,
	}
}

// GetDBClient returns the database client, connecting to the database if required.
func (d *DBProvider) GetDBClient() (client.DBClientInterface, error) {
	d.mutex.RLock()
	if d.dbClient != nil {
		dbClient := d.dbClient
		d.mutex.RUnlock()
		return dbClient, nil
	}
	d.mutex.RUnlock()

	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.dbClient != nil {
		return d.dbClient, nil
	}

	dbClient, err := d.initializeClient()
	if err != nil {
		return nil, err
	}
	d.dbClient = dbClient
	return dbClient, nil
}

// Close closes the database client if one was created.
func (d *DBProvider) Close() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.dbClient == nil {
		return nil
	}
	err := d.dbClient.Close()
	d.dbClient = nil
	if err != nil {
		return fmt.Errorf("failed to close database client: %w", err)
	}
	return nil
}

// initializeClient opens and verifies the database connection.
func (d *DBProvider) initializeClient() (client.DBClientInterface, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbConfig, err := d.getDBConfig()
	if err != nil {
		return nil, err
	}
	if dbConfig.driverName == model.DBTypeSQLite {
		if err := os.MkdirAll(filepath.Dir(dbConfig.filePath), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	logger.Debug("Connecting to database", log.String("type", d.dataSource.Type),
		log.String("name", d.dataSource.Name), log.String("username", log.MaskString(d.dataSource.Username)))

	db, err := sql.Open(dbConfig.driverName, dbConfig.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if d.dataSource.MaxOpenConns > 0 {
		db.SetMaxOpenConns(d.dataSource.MaxOpenConns)
	}
	if d.dataSource.MaxIdleConns > 0 {
		db.SetMaxIdleConns(d.dataSource.MaxIdleConns)
	}
	if d.dataSource.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(d.dataSource.ConnMaxLifetime) * time.Second)
	}

	if err := db.Ping(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to ping database: %w (close error: %w)", err, closeErr)
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return client.NewDBClient(db, dbConfig.driverName), nil
}

// getDBConfig returns the database configuration based on the data source.
func (d *DBProvider) getDBConfig() (dbConfig, error) {
	var cfg dbConfig

	switch d.dataSource.Type {
	case model.DBTypePostgres:
		cfg.driverName = model.DBTypePostgres
		cfg.dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			d.dataSource.Hostname, d.dataSource.Port, d.dataSource.Username, d.dataSource.Password,
			d.dataSource.Name, d.dataSource.SSLMode)
	case model.DBTypeSQLite:
		if d.dataSource.Path == "" {
			return cfg, fmt.Errorf("sqlite data source path is not configured")
		}
		cfg.driverName = model.DBTypeSQLite
		dbPath := d.dataSource.Path
		if !filepath.IsAbs(dbPath) {
			dbPath = filepath.Join(d.agentHome, dbPath)
		}
		options := d.dataSource.Options
		if options != "" && options[0] != '?' {
			options = "?" + options
		}
		cfg.filePath = dbPath
		cfg.dsn = dbPath + options
	default:
		return cfg, fmt.Errorf("unsupported database type: %s", d.dataSource.Type)
	}

	return cfg, nil
}
