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

package provider

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/cloudinit/internal/system/config"
	"github.com/asgardeo/cloudinit/internal/system/database/model"
)

type DBProviderTestSuite struct {
	suite.Suite
}

func TestDBProviderSuite(t *testing.T) {
	suite.Run(t, new(DBProviderTestSuite))
}

func (suite *DBProviderTestSuite) TestGetDBConfig() {
	testCases := []struct {
		name       string
		agentHome  string
		dataSource config.DataSource
		expected   dbConfig
	}{
		{
			name: "Postgres",
			dataSource: config.DataSource{
				Type: "postgres", Hostname: "localhost", Port: 5432, Name: "agent",
				Username: "agent", Password: "secret", SSLMode: "disable",
			},
			expected: dbConfig{
				driverName: "postgres",
				dsn:        "host=localhost port=5432 user=agent password=secret dbname=agent sslmode=disable",
			},
		},
		{
			name:       "SQLiteRelativePath",
			agentHome:  "/opt/agent",
			dataSource: config.DataSource{Type: "sqlite", Path: "data/state.db"},
			expected: dbConfig{
				driverName: "sqlite",
				dsn:        "/opt/agent/data/state.db",
				filePath:   "/opt/agent/data/state.db",
			},
		},
		{
			name:       "SQLiteAbsolutePathWithOptions",
			agentHome:  "/opt/agent",
			dataSource: config.DataSource{Type: "sqlite", Path: "/var/lib/agent/state.db", Options: "_pragma=busy_timeout(5000)"},
			expected: dbConfig{
				driverName: "sqlite",
				dsn:        "/var/lib/agent/state.db?_pragma=busy_timeout(5000)",
				filePath:   "/var/lib/agent/state.db",
			},
		},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			provider := NewDBProvider(tc.agentHome, tc.dataSource)

			cfg, err := provider.getDBConfig()

			assert.NoError(t, err)
			assert.Equal(t, tc.expected, cfg)
		})
	}
}

func (suite *DBProviderTestSuite) TestGetDBConfigErrors() {
	testCases := []config.DataSource{
		{Type: "mysql"},
		{Type: "sqlite"},
	}

	for _, dataSource := range testCases {
		_, err := NewDBProvider("/opt/agent", dataSource).getDBConfig()
		assert.Error(suite.T(), err)
	}
}

func (suite *DBProviderTestSuite) TestGetDBClientSQLite() {
	home := suite.T().TempDir()
	provider := NewDBProvider(home, config.DataSource{Type: "sqlite", Path: "data/state.db"})
	defer func() {
		assert.NoError(suite.T(), provider.Close())
	}()

	dbClient, err := provider.GetDBClient()
	assert.NoError(suite.T(), err)
	assert.FileExists(suite.T(), filepath.Join(home, "data", "state.db"))

	_, err = dbClient.Execute(model.DBQuery{ID: "create", Query: "CREATE TABLE T (ID INTEGER, NAME TEXT)"})
	assert.NoError(suite.T(), err)
	_, err = dbClient.Execute(model.DBQuery{ID: "insert", Query: "INSERT INTO T (ID, NAME) VALUES ($1, $2)"}, 1, "one")
	assert.NoError(suite.T(), err)

	results, err := dbClient.Query(model.DBQuery{ID: "select", Query: "SELECT ID, NAME FROM T"})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), []map[string]interface{}{{"id": int64(1), "name": "one"}}, results)

	again, err := provider.GetDBClient()
	assert.NoError(suite.T(), err)
	assert.Same(suite.T(), dbClient, again)
}

func (suite *DBProviderTestSuite) TestCloseWithoutClient() {
	provider := NewDBProvider("/opt/agent", config.DataSource{Type: "sqlite", Path: "state.db"})

	assert.NoError(suite.T(), provider.Close())
}
