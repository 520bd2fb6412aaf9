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

package client

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/asgardeo/cloudinit/internal/system/database/model"
)

// TxInterface defines the operations available inside a database transaction.
type TxInterface interface {
	Query(query model.DBQuery, args ...interface{}) ([]map[string]interface{}, error)
	Execute(query model.DBQuery, args ...interface{}) (int64, error)
	Commit() error
	Rollback() error
}

// dbTx runs queries on a *sql.Tx using the query variant of the client's database type.
type dbTx struct {
	tx     *sql.Tx
	dbType string
}

func (t *dbTx) Query(query model.DBQuery, args ...interface{}) ([]map[string]interface{}, error) {
	return queryRows(t.tx, t.dbType, query, args...)
}

func (t *dbTx) Execute(query model.DBQuery, args ...interface{}) (int64, error) {
	return executeStatement(t.tx, t.dbType, query, args...)
}

func (t *dbTx) Commit() error {
	return t.tx.Commit()
}

func (t *dbTx) Rollback() error {
	return t.tx.Rollback()
}

// RunInTx runs fn inside a transaction on the client. The transaction is committed when fn
// succeeds and rolled back otherwise.
func RunInTx(dbClient DBClientInterface, fn func(tx TxInterface) error) error {
	tx, err := dbClient.BeginTx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("failed to roll back transaction: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
