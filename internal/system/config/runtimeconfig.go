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

import "sync"

// AgentRuntime holds the runtime configuration of the agent.
type AgentRuntime struct {
	AgentHome string `yaml:"agent_home"`
	Config    Config `yaml:"config"`
}

var (
	runtimeConfig *AgentRuntime
	once          sync.Once
)

// InitializeAgentRuntime initializes the AgentRuntime configuration.
func InitializeAgentRuntime(agentHome string, config *Config) error {
	once.Do(func() {
		runtimeConfig = &AgentRuntime{
			AgentHome: agentHome,
			Config:    *config,
		}
	})

	return nil
}

// GetAgentRuntime returns the AgentRuntime configuration.
func GetAgentRuntime() *AgentRuntime {
	if runtimeConfig == nil {
		panic("AgentRuntime is not initialized")
	}
	return runtimeConfig
}

// ResetAgentRuntime resets the AgentRuntime.
// This should only be used in tests to reset the singleton state.
func ResetAgentRuntime() {
	runtimeConfig = nil
	once = sync.Once{}
}
