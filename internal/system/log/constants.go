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

package log

const (
	// LogLevelEnvironmentVariable is the environment variable read when the logger is not explicitly initialized.
	LogLevelEnvironmentVariable = "AGENT_LOG_LEVEL"
	// DefaultLogLevel is the level used when none is configured.
	DefaultLogLevel = "info"

	// DefaultMaxSizeMB is the default size of a log file before rotation.
	DefaultMaxSizeMB = 50
	// DefaultMaxBackups is the default number of rotated log files to keep.
	DefaultMaxBackups = 3
	// DefaultMaxAgeDays is the default number of days to keep rotated log files.
	DefaultMaxAgeDays = 7
)

const (
	// LoggerKeyComponentName is the key used to identify the component name in the logger.
	LoggerKeyComponentName = "component"
	// LoggerKeyRunID is the key used to identify the execution run in the logger.
	LoggerKeyRunID = "runId"
	// LoggerKeyContentType is the key used to identify the content type of a user data part.
	LoggerKeyContentType = "contentType"
	// LoggerKeyFilename is the key used to identify the filename of a user data part.
	LoggerKeyFilename = "filename"
)
