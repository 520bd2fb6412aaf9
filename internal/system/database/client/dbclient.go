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

// Package client provides database client implementations for executing queries and managing transactions.
package client

import (
	"strings"

	"github.com/asgardeo/cloudinit/internal/system/database/model"
	"github.com/asgardeo/cloudinit/internal/system/log"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const loggerComponentName = "DBClient"

// DBClientInterface defines the interface for database operations.
type DBClientInterface interface {
	// Query executes a sql query that returns rows, typically a SELECT, and returns the result as a slice of maps.
	Query(query model.DBQuery, args ...interface{}) ([]map[string]interface{}, error)
	// Execute executes a sql query without returning data in any rows, and returns number of rows affected.
	Execute(query model.DBQuery, args ...interface{}) (int64, error)
	// BeginTx starts a new database transaction.
	BeginTx() (TxInterface, error)
	// Close closes the database connection.
	Close() error
}

// DBClient is the implementation of DBClientInterface.
type DBClient struct {
	db     model.DBInterface
	dbType string
}

// NewDBClient creates a client over the connection. dbType selects the query variant to run.
func NewDBClient(db model.DBInterface, dbType string) DBClientInterface {
	return &DBClient{
		db:     db,
		dbType: dbType,
	}
}

// Query executes a sql query that returns rows, typically a SELECT, and returns the result as a slice of maps.
func (client *DBClient) Query(query model.DBQuery, args ...interface{}) ([]map[string]interface{}, error) {
	return queryRows(client.db, client.dbType, query, args...)
}

// Execute executes a sql query without returning data in any rows, and returns number of rows affected.
func (client *DBClient) Execute(query model.DBQuery, args ...interface{}) (int64, error) {
	return executeStatement(client.db, client.dbType, query, args...)
}

// BeginTx starts a new database transaction.
func (client *DBClient) BeginTx() (TxInterface, error) {
	tx, err := client.db.Begin()
	if err != nil {
		return nil, err
	}
	return &dbTx{tx: tx, dbType: client.dbType}, nil
}

// Close closes the database connection.
func (client *DBClient) Close() error {
	return client.db.Close()
}

// queryRows runs the query variant for dbType and maps each row by lower cased column name.
func queryRows(runner model.StatementRunner, dbType string, query model.DBQuery,
	args ...interface{}) ([]map[string]interface{}, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))
	logger.Debug("Executing query", log.String("queryID", query.GetID()), log.String("dbType", dbType))

	rows, err := runner.Query(query.GetQuery(dbType), args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			logger.Error("Error closing rows", log.Error(closeErr))
		}
	}()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(columns))
	for i, col := range columns {
		keys[i] = strings.ToLower(col)
	}

	var results []map[string]interface{}
	for rows.Next() {
		values := make([]interface{}, len(keys))
		targets := make([]interface{}, len(keys))
		for i := range values {
			targets[i] = &values[i]
		}
		if err := rows.Scan(targets...); err != nil {
			return nil, err
		}

		result := make(map[string]interface{}, len(keys))
		for i, key := range keys {
			result[key] = values[i]
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// executeStatement runs the statement variant for dbType and returns the number of affected rows.
func executeStatement(runner model.StatementRunner, dbType string, query model.DBQuery,
	args ...interface{}) (int64, error) {
	log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
		Debug("Executing statement", log.String("queryID", query.GetID()), log.String("dbType", dbType))

	res, err := runner.Exec(query.GetQuery(dbType), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
