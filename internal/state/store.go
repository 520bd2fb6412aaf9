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

// Package state persists the outcome of user data executions.
package state

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/asgardeo/cloudinit/internal/system/database/client"
	"github.com/asgardeo/cloudinit/internal/system/database/provider"
	"github.com/asgardeo/cloudinit/internal/system/log"
	"github.com/asgardeo/cloudinit/internal/userdata/model"
)

const loggerComponentName = "ExecutionStore"

// ExecutionStoreInterface defines the interface for persisting user data executions.
type ExecutionStoreInterface interface {
	RecordExecution(instanceID string, result model.ExecutionResult) (*ExecutionRecord, error)
	GetLastExecution(instanceID string) (*ExecutionRecord, error)
}

// executionStore is the database backed implementation of ExecutionStoreInterface.
type executionStore struct {
	dbProvider provider.DBProviderInterface
	now        func() time.Time
}

// NewExecutionStore creates an execution store using the given database provider.
func NewExecutionStore(dbProvider provider.DBProviderInterface) ExecutionStoreInterface {
	return &executionStore{
		dbProvider: dbProvider,
		now:        time.Now,
	}
}

// RecordExecution stores the result of an execution under a new run id.
func (s *executionStore) RecordExecution(instanceID string, result model.ExecutionResult) (
	*ExecutionRecord, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := s.dbProvider.GetDBClient()
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	record := &ExecutionRecord{
		RunID:      uuid.New().String(),
		InstanceID: instanceID,
		Status:     result.Status,
		Reboot:     result.Reboot,
		CreatedAt:  s.now().UTC(),
	}

	err = client.RunInTx(dbClient, func(tx client.TxInterface) error {
		if _, err := tx.Execute(QueryCreateExecutionTable); err != nil {
			return fmt.Errorf("failed to create execution table: %w", err)
		}
		_, err := tx.Execute(QueryInsertExecution, record.RunID, record.InstanceID,
			record.Status.String(), record.Reboot, record.CreatedAt.UnixNano())
		return err
	})
	if err != nil {
		logger.Error("Failed to record execution", log.Error(err))
		return nil, fmt.Errorf("failed to record execution: %w", err)
	}

	logger.Debug("Recorded execution", log.String(log.LoggerKeyRunID, record.RunID),
		log.String("instanceId", instanceID))
	return record, nil
}

// GetLastExecution returns the latest execution recorded for the instance, or nil if none exists.
func (s *executionStore) GetLastExecution(instanceID string) (*ExecutionRecord, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := s.dbProvider.GetDBClient()
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}
	if _, err := dbClient.Execute(QueryCreateExecutionTable); err != nil {
		return nil, fmt.Errorf("failed to create execution table: %w", err)
	}

	results, err := dbClient.Query(QueryGetLastExecution, instanceID)
	if err != nil {
		logger.Error("Failed to execute query", log.Error(err))
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		logger.Debug("No execution recorded", log.String("instanceId", instanceID))
		return nil, nil
	}

	return buildExecutionRecordFromResultRow(results[0])
}

// buildExecutionRecordFromResultRow constructs an execution record from a result row.
func buildExecutionRecordFromResultRow(row map[string]interface{}) (*ExecutionRecord, error) {
	runID, err := getString(row, "run_id")
	if err != nil {
		return nil, err
	}
	instanceID, err := getString(row, "instance_id")
	if err != nil {
		return nil, err
	}
	statusName, err := getString(row, "status")
	if err != nil {
		return nil, err
	}
	status, err := parseExecutionStatus(statusName)
	if err != nil {
		return nil, err
	}
	reboot, err := getBool(row, "reboot")
	if err != nil {
		return nil, err
	}
	createdAt, ok := row["created_at"].(int64)
	if !ok {
		return nil, fmt.Errorf("failed to parse created_at as int64")
	}

	return &ExecutionRecord{
		RunID:      runID,
		InstanceID: instanceID,
		Status:     status,
		Reboot:     reboot,
		CreatedAt:  time.Unix(0, createdAt).UTC(),
	}, nil
}

func getString(row map[string]interface{}, column string) (string, error) {
	switch value := row[column].(type) {
	case string:
		return value, nil
	case []byte:
		return string(value), nil
	default:
		return "", fmt.Errorf("failed to parse %s as string", column)
	}
}

// getBool reads a boolean column. SQLite returns booleans as integers.
func getBool(row map[string]interface{}, column string) (bool, error) {
	switch value := row[column].(type) {
	case bool:
		return value, nil
	case int64:
		return value != 0, nil
	default:
		return false, fmt.Errorf("failed to parse %s as bool", column)
	}
}

func parseExecutionStatus(name string) (model.ExecutionStatus, error) {
	switch name {
	case model.ExecutionStatusDone.String():
		return model.ExecutionStatusDone, nil
	case model.ExecutionStatusExecuteOnNextBoot.String():
		return model.ExecutionStatusExecuteOnNextBoot, nil
	default:
		return 0, fmt.Errorf("unknown execution status: %s", name)
	}
}
