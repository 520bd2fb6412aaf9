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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

const testResourceDir = "../../../tests/resources"

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) getFilePath(filename string) string {
	return filepath.Join(testResourceDir, filename)
}

func (suite *ConfigTestSuite) TestLoadConfigValid() {
	config, err := LoadConfig(suite.getFilePath("agent.yaml"))

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), config)

	// Verify log config
	assert.Equal(suite.T(), "debug", config.Log.Level)
	assert.Equal(suite.T(), "/var/log/agent/agent.log", config.Log.File)
	assert.Equal(suite.T(), 20, config.Log.MaxSizeMB)
	assert.Equal(suite.T(), 5, config.Log.MaxBackups)
	assert.Equal(suite.T(), 14, config.Log.MaxAgeDays)

	// Verify metadata config
	assert.Equal(suite.T(), "configdrive", config.Metadata.Type)
	assert.Equal(suite.T(), "openstack", config.Metadata.Namespace)
	assert.Equal(suite.T(), "http://169.254.169.254", config.Metadata.HTTP.BaseURL)
	assert.Equal(suite.T(), 5, config.Metadata.HTTP.Timeout)
	assert.Equal(suite.T(), "/mnt/config", config.Metadata.ConfigDrive.Path)

	// Verify user data config
	assert.Equal(suite.T(), []string{"text/x-shellscript", "text/part-handler"}, config.UserData.Plugins)

	// Verify script config
	assert.Equal(suite.T(), "/var/lib/agent/scripts", config.Script.WorkDir)
	assert.Equal(suite.T(), "/bin/bash", config.Script.ShellPath)
	assert.Equal(suite.T(), DefaultPowerShellPath, config.Script.PowerShellPath)
	assert.Equal(suite.T(), DefaultCmdPath, config.Script.CmdPath)
	assert.Equal(suite.T(), DefaultPythonPath, config.Script.PythonPath)

	// Verify state config
	assert.True(suite.T(), config.State.Enabled)
	assert.Equal(suite.T(), "sqlite", config.State.DataSource.Type)
	assert.Equal(suite.T(), "data/state.db", config.State.DataSource.Path)
	assert.Equal(suite.T(), "_pragma=busy_timeout(5000)", config.State.DataSource.Options)
	assert.Equal(suite.T(), 1, config.State.DataSource.MaxOpenConns)

	// Verify metrics config
	assert.Equal(suite.T(), "/var/lib/node_exporter/textfile/userdata.prom", config.Metrics.TextFile)
}

func (suite *ConfigTestSuite) TestLoadConfigFileNotFound() {
	config, err := LoadConfig(suite.getFilePath("non_existent_config.yaml"))

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), config)
	assert.True(suite.T(), os.IsNotExist(err))
}

func (suite *ConfigTestSuite) TestLoadConfigInvalidYAML() {
	config, err := LoadConfig(suite.getFilePath("invalid_agent.yaml"))

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), config)
}

func (suite *ConfigTestSuite) TestLoadConfigEnvironmentOverrides() {
	suite.T().Setenv("AGENT_LOG_LEVEL", "warn")
	suite.T().Setenv("AGENT_METADATA_TYPE", "http")
	suite.T().Setenv("AGENT_METADATA_HTTP_BASE_URL", "http://metadata.local")
	suite.T().Setenv("AGENT_USERDATA_PLUGINS", "text/x-shellscript")
	suite.T().Setenv("AGENT_STATE_ENABLED", "false")
	suite.T().Setenv("AGENT_STATE_DB_PATH", "override.db")

	config, err := LoadConfig(suite.getFilePath("agent.yaml"))

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "warn", config.Log.Level)
	assert.Equal(suite.T(), "http", config.Metadata.Type)
	assert.Equal(suite.T(), "http://metadata.local", config.Metadata.HTTP.BaseURL)
	assert.Equal(suite.T(), []string{"text/x-shellscript"}, config.UserData.Plugins)
	assert.False(suite.T(), config.State.Enabled)
	assert.Equal(suite.T(), "override.db", config.State.DataSource.Path)

	// Values without an override keep the file value.
	assert.Equal(suite.T(), "/mnt/config", config.Metadata.ConfigDrive.Path)
}

func (suite *ConfigTestSuite) TestDefaultConfig() {
	config, err := DefaultConfig()

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "info", config.Log.Level)
	assert.Equal(suite.T(), DefaultMetadataType, config.Metadata.Type)
	assert.Equal(suite.T(), DefaultMetadataNamespace, config.Metadata.Namespace)
	assert.Equal(suite.T(), DefaultMetadataBaseURL, config.Metadata.HTTP.BaseURL)
	assert.Equal(suite.T(), DefaultMetadataTimeout, config.Metadata.HTTP.Timeout)
	assert.Equal(suite.T(), os.TempDir(), config.Script.WorkDir)
	assert.Equal(suite.T(), DefaultShellPath, config.Script.ShellPath)
	assert.False(suite.T(), config.State.Enabled)
	assert.Equal(suite.T(), DefaultStateDataSourceType, config.State.DataSource.Type)
	assert.Equal(suite.T(), DefaultStateDataSourcePath, config.State.DataSource.Path)
	assert.Empty(suite.T(), config.Metrics.TextFile)
}

func (suite *ConfigTestSuite) TestApplyEnvironmentInvalidValue() {
	suite.T().Setenv("AGENT_METADATA_HTTP_TIMEOUT", "not-a-number")

	config, err := DefaultConfig()

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), config)
}
