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

// Package constants defines the constants used by the user data plugin.
package constants

const (
	// MultipartHeaderPrefix is the leading text that marks a user data payload as a multipart message.
	MultipartHeaderPrefix = "Content-Type: multipart"

	// PartHandlerContentType is the content type of parts that register dynamic part handlers.
	PartHandlerContentType = "text/part-handler"

	// ShellScriptContentType is the content type of shell script parts.
	ShellScriptContentType = "text/x-shellscript"
)

// Phase tags passed to dynamic part handlers around the processing of a part.
const (
	PartHandlerPhaseBegin = "__begin__"
	PartHandlerPhaseEnd   = "__end__"
)

// Return codes understood by the user data plugin. Codes in the inclusive range
// [ReturnCodeMin, ReturnCodeMax] carry two flags, anything else means no action.
const (
	ReturnCodeMin = 1001
	ReturnCodeMax = 1003

	// ReturnCodeRebootFlag is set when the machine must reboot.
	ReturnCodeRebootFlag = 1
	// ReturnCodeNextBootFlag is set when the plugin must run again on the next boot.
	ReturnCodeNextBootFlag = 2
)
