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

package userdata

import (
	"github.com/asgardeo/cloudinit/internal/userdata/constants"
	"github.com/asgardeo/cloudinit/internal/userdata/model"
)

// GetExecutionResult translates a handler or script return code into an execution result.
// Codes outside the recognized range carry no action.
func GetExecutionResult(code int) model.ExecutionResult {
	result := model.DoneResult()
	if code < constants.ReturnCodeMin || code > constants.ReturnCodeMax {
		return result
	}

	result.Reboot = code&constants.ReturnCodeRebootFlag != 0
	if code&constants.ReturnCodeNextBootFlag != 0 {
		result.Status = model.ExecutionStatusExecuteOnNextBoot
	}
	return result
}
