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

const (
	// EnvironmentPrefix is the prefix of the environment variables that override configuration values.
	EnvironmentPrefix = "AGENT_"

	// DefaultConfigFile is the configuration file path relative to the agent home directory.
	DefaultConfigFile = "conf/agent.yaml"

	// DefaultMetadataType is the metadata source used when none is configured.
	DefaultMetadataType = "http"
	// DefaultMetadataNamespace is the metadata namespace user data is read from.
	DefaultMetadataNamespace = "openstack"
	// DefaultMetadataBaseURL is the link-local address of the metadata service.
	DefaultMetadataBaseURL = "http://169.254.169.254"
	// DefaultMetadataTimeout is the metadata request timeout in seconds.
	DefaultMetadataTimeout = 10

	// DefaultShellPath is the interpreter used for shebang user data scripts.
	DefaultShellPath = "/bin/sh"
	// DefaultPowerShellPath is the interpreter used for PowerShell user data scripts.
	DefaultPowerShellPath = "powershell.exe"
	// DefaultCmdPath is the interpreter used for batch user data scripts.
	DefaultCmdPath = "cmd.exe"
	// DefaultPythonPath is the interpreter used for python user data scripts.
	DefaultPythonPath = "python"

	// DefaultStateDataSourceType is the database type of the execution state store.
	DefaultStateDataSourceType = "sqlite"
	// DefaultStateDataSourcePath is the sqlite database path relative to the agent home directory.
	DefaultStateDataSourcePath = "data/state.db"
)
