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

package state

import (
	"time"

	"github.com/asgardeo/cloudinit/internal/userdata/model"
)

// ExecutionRecord is the persisted outcome of a single user data execution.
type ExecutionRecord struct {
	RunID      string
	InstanceID string
	Status     model.ExecutionStatus
	Reboot     bool
	CreatedAt  time.Time
}

// IsCompleted reports whether the record marks the user data as fully processed, in which
// case it must not be executed again for the same instance. A pending reboot does not matter
// here, only EXECUTE_ON_NEXT_BOOT leaves work for a later boot.
func (r *ExecutionRecord) IsCompleted() bool {
	return r.Status == model.ExecutionStatusDone
}
