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
	"github.com/asgardeo/cloudinit/internal/system/database/model"
)

var (
	// QueryCreateExecutionTable is the query to create the execution table if it does not exist.
	QueryCreateExecutionTable = model.DBQuery{
		ID: "ASQ-USERDATA_STATE-01",
		Query: "CREATE TABLE IF NOT EXISTS USERDATA_EXECUTION (" +
			"RUN_ID VARCHAR(36) PRIMARY KEY, " +
			"INSTANCE_ID VARCHAR(255) NOT NULL, " +
			"STATUS VARCHAR(32) NOT NULL, " +
			"REBOOT BOOLEAN NOT NULL, " +
			"CREATED_AT BIGINT NOT NULL)",
	}
	// QueryInsertExecution is the query to record an execution.
	QueryInsertExecution = model.DBQuery{
		ID: "ASQ-USERDATA_STATE-02",
		Query: "INSERT INTO USERDATA_EXECUTION (RUN_ID, INSTANCE_ID, STATUS, REBOOT, CREATED_AT) " +
			"VALUES ($1, $2, $3, $4, $5)",
	}
	// QueryGetLastExecution is the query to get the latest execution of an instance.
	QueryGetLastExecution = model.DBQuery{
		ID: "ASQ-USERDATA_STATE-03",
		Query: "SELECT RUN_ID, INSTANCE_ID, STATUS, REBOOT, CREATED_AT FROM USERDATA_EXECUTION " +
			"WHERE INSTANCE_ID = $1 ORDER BY CREATED_AT DESC LIMIT 1",
	}
)
