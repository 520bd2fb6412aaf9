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

// Package parthandler provides the user data handler for part handler parts.
//
// A part handler part is a YAML document naming the content types it handles and the
// command to run for them:
//
//	content_types:
//	  - text/x-custom
//	command: /opt/handlers/custom
//	args: ["--verbose"]
//
// For every later part of a listed content type the command is run twice, once with the
// begin phase and once with the end phase. The phase and the part filename are appended to
// the arguments and the part payload is written to the standard input of the command.
package parthandler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	yaml "gopkg.in/yaml.v3"

	"github.com/asgardeo/cloudinit/internal/system/log"
	"github.com/asgardeo/cloudinit/internal/userdata/model"
	"github.com/asgardeo/cloudinit/internal/userdata/plugins"
)

const loggerComponentName = "PartHandler"

// ErrInvalidPartHandler is returned when a part handler part cannot be used.
var ErrInvalidPartHandler = errors.New("invalid part handler definition")

// definition is the document carried by a part handler part.
type definition struct {
	ContentTypes []string `yaml:"content_types"`
	Command      string   `yaml:"command"`
	Args         []string `yaml:"args"`
}

type commandRunner func(ctx context.Context, name string, args []string, stdin []byte) error

// partHandler turns part handler parts into dynamic part handler registrations.
type partHandler struct {
	run commandRunner
}

// NewFactory returns a factory creating part handler handlers.
func NewFactory() plugins.HandlerFactory {
	return func() (plugins.HandlerInterface, error) {
		return &partHandler{run: runCommand}, nil
	}
}

// Process parses the part handler definition and returns a callback for each listed content type.
func (h *partHandler) Process(ctx context.Context, part *model.Part) (model.HandlerResult, error) {
	var def definition
	if err := yaml.Unmarshal(part.Payload, &def); err != nil {
		return model.HandlerResult{}, fmt.Errorf("%w: %s: %w", ErrInvalidPartHandler, part.Filename, err)
	}
	if def.Command == "" {
		return model.HandlerResult{}, fmt.Errorf("%w: %s: command is required", ErrInvalidPartHandler, part.Filename)
	}
	if len(def.ContentTypes) == 0 {
		return model.HandlerResult{}, fmt.Errorf("%w: %s: no content types", ErrInvalidPartHandler, part.Filename)
	}

	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))
	logger.Debug("Registering part handler", log.String(log.LoggerKeyFilename, part.Filename),
		log.String("command", def.Command), log.Any("contentTypes", def.ContentTypes))

	callback := h.newCallback(ctx, def)
	registrations := make(map[string]model.PartCallback, len(def.ContentTypes))
	for _, contentType := range def.ContentTypes {
		registrations[contentType] = callback
	}
	return model.NewRegistrationsResult(registrations), nil
}

// newCallback builds the dynamic part handler running the command of the definition.
func (h *partHandler) newCallback(ctx context.Context, def definition) model.PartCallback {
	return func(_ string, phase string, filename string, payload []byte) error {
		args := make([]string, 0, len(def.Args)+2)
		args = append(args, def.Args...)
		args = append(args, phase, filename)
		return h.run(ctx, def.Command, args, payload)
	}
}

func runCommand(ctx context.Context, name string, args []string, stdin []byte) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = bytes.NewReader(stdin)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("part handler command %s failed: %w: %s", name, err, bytes.TrimSpace(output))
	}
	return nil
}
