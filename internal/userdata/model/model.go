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

// Package model defines the data structures used while processing user data.
package model

// ExecutionStatus is the outcome of a user data execution.
type ExecutionStatus int

const (
	// ExecutionStatusDone means the user data has been fully processed.
	ExecutionStatusDone ExecutionStatus = 1
	// ExecutionStatusExecuteOnNextBoot means processing must resume on the next boot.
	ExecutionStatusExecuteOnNextBoot ExecutionStatus = 2
)

// String returns the name of the execution status.
func (s ExecutionStatus) String() string {
	switch s {
	case ExecutionStatusDone:
		return "DONE"
	case ExecutionStatusExecuteOnNextBoot:
		return "EXECUTE_ON_NEXT_BOOT"
	default:
		return "UNKNOWN"
	}
}

// ExecutionResult is the combined execution and reboot decision.
type ExecutionResult struct {
	Status ExecutionStatus
	Reboot bool
}

// DoneResult returns the result used when nothing asks for a reboot or a rerun.
func DoneResult() ExecutionResult {
	return ExecutionResult{Status: ExecutionStatusDone, Reboot: false}
}

// Part is a single part of a multipart user data payload.
type Part struct {
	ContentType string
	Filename    string
	Payload     []byte
}

// PartCallback is a dynamic part handler. It is called with an always empty data argument,
// the phase tag, and the filename and payload of the part being processed.
type PartCallback func(data string, phase string, filename string, payload []byte) error

// HandlerResultType identifies the kind of value carried by a HandlerResult.
type HandlerResultType int

const (
	// HandlerResultTypeReturnCode is the result of a handler processing a normal part.
	HandlerResultTypeReturnCode HandlerResultType = iota
	// HandlerResultTypeRegistrations is the result of a handler processing a part handler part.
	HandlerResultTypeRegistrations
)

// HandlerResult is the value returned by a user data handler. It carries either an
// integer return code or a set of dynamic part handler registrations.
type HandlerResult struct {
	resultType    HandlerResultType
	returnCode    int
	registrations map[string]PartCallback
}

// NewReturnCodeResult creates a handler result carrying a return code.
func NewReturnCodeResult(code int) HandlerResult {
	return HandlerResult{
		resultType: HandlerResultTypeReturnCode,
		returnCode: code,
	}
}

// NewRegistrationsResult creates a handler result carrying part handler registrations.
func NewRegistrationsResult(registrations map[string]PartCallback) HandlerResult {
	return HandlerResult{
		resultType:    HandlerResultTypeRegistrations,
		registrations: registrations,
	}
}

// Type returns the kind of the handler result.
func (r HandlerResult) Type() HandlerResultType {
	return r.resultType
}

// ReturnCode returns the return code and whether the result carries one.
func (r HandlerResult) ReturnCode() (int, bool) {
	if r.resultType != HandlerResultTypeReturnCode {
		return 0, false
	}
	return r.returnCode, true
}

// Registrations returns the registrations and whether the result carries them.
func (r HandlerResult) Registrations() (map[string]PartCallback, bool) {
	if r.resultType != HandlerResultTypeRegistrations {
		return nil, false
	}
	return r.registrations, true
}

// HandlerTable maps content types to dynamic part handlers registered while walking a payload.
type HandlerTable map[string]PartCallback

// Merge adds the given registrations to the table. Existing entries for the same content type are replaced.
func (t HandlerTable) Merge(registrations map[string]PartCallback) {
	for contentType, callback := range registrations {
		t[contentType] = callback
	}
}

// Get returns the dynamic part handler registered for the content type, or nil.
func (t HandlerTable) Get(contentType string) PartCallback {
	return t[contentType]
}
