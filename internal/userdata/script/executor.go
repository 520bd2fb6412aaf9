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

// Package script executes user data scripts.
package script

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"

	"github.com/asgardeo/cloudinit/internal/system/config"
	"github.com/asgardeo/cloudinit/internal/system/log"
)

const loggerComponentName = "ScriptExecutor"

// ExecutorInterface defines the interface for executing a user data script.
type ExecutorInterface interface {
	// ExecuteScript runs the script and returns its exit code.
	ExecuteScript(ctx context.Context, script []byte) (int, error)
}

// scriptType describes how a script of a given format is run.
type scriptType struct {
	name      string
	pattern   *regexp.Regexp
	extension string
	command   func(e *Executor, path string) (string, []string)
}

var scriptTypes = []scriptType{
	{
		name:      "cmd",
		pattern:   regexp.MustCompile(`(?i)^rem cmd\s`),
		extension: ".cmd",
		command: func(e *Executor, path string) (string, []string) {
			return e.cmdPath, []string{"/C", path}
		},
	},
	{
		name:      "python",
		pattern:   regexp.MustCompile(`(?i)^#!/usr/bin/env\spython\s`),
		extension: ".py",
		command: func(e *Executor, path string) (string, []string) {
			return e.pythonPath, []string{path}
		},
	},
	{
		name:      "shell",
		pattern:   regexp.MustCompile(`^#!`),
		extension: ".sh",
		command: func(e *Executor, path string) (string, []string) {
			return e.shellPath, []string{path}
		},
	},
	{
		name:      "powershell",
		pattern:   regexp.MustCompile(`(?i)^#(ps1|ps1_sysnative|ps1_x86)\s`),
		extension: ".ps1",
		command: func(e *Executor, path string) (string, []string) {
			return e.powerShellPath, []string{"-ExecutionPolicy", "RemoteSigned", "-NonInteractive", "-File", path}
		},
	},
}

// Executor runs user data scripts by writing them to a temporary file and invoking the
// interpreter matching the first line of the script.
type Executor struct {
	workDir        string
	shellPath      string
	powerShellPath string
	cmdPath        string
	pythonPath     string

	commandContext func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewExecutor creates a script executor from the script configuration.
func NewExecutor(cfg config.ScriptConfig) *Executor {
	return &Executor{
		workDir:        cfg.WorkDir,
		shellPath:      cfg.ShellPath,
		powerShellPath: cfg.PowerShellPath,
		cmdPath:        cfg.CmdPath,
		pythonPath:     cfg.PythonPath,
		commandContext: exec.CommandContext,
	}
}

// ExecuteScript runs the script and returns its exit code. Scripts of an unsupported
// format are not run and yield 0. An error is returned only when the script could not be run.
func (e *Executor) ExecuteScript(ctx context.Context, script []byte) (int, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	sType, ok := detectScriptType(script)
	if !ok {
		logger.Warn("Unsupported user data format")
		return 0, nil
	}

	path, err := e.writeScript(script, sType.extension)
	if err != nil {
		return 0, err
	}
	defer func() {
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			logger.Warn("Failed to remove user data script", log.String("path", path), log.Error(rmErr))
		}
	}()

	name, args := sType.command(e, path)
	cmd := e.commandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Info("Executing user data script", log.String("type", sType.name), log.String("interpreter", name))
	err = cmd.Run()

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return 0, fmt.Errorf("failed to execute user data script: %w", err)
		}
		exitCode = exitErr.ExitCode()
	}

	logger.Info("User data script ended", log.Int("exitCode", exitCode))
	logger.Debug("User data script output", log.String("stdout", stdout.String()),
		log.String("stderr", stderr.String()))
	return exitCode, nil
}

// writeScript writes the script to a new file in the work directory.
func (e *Executor) writeScript(script []byte, extension string) (string, error) {
	file, err := os.CreateTemp(e.workDir, "userdata-*"+extension)
	if err != nil {
		return "", fmt.Errorf("failed to create user data script file: %w", err)
	}

	path := file.Name()
	_, writeErr := file.Write(script)
	closeErr := file.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write user data script file: %w", err)
	}
	if err := os.Chmod(path, 0o700); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to set user data script permissions: %w", err)
	}
	return path, nil
}

// detectScriptType returns the script type matching the beginning of the script.
func detectScriptType(script []byte) (scriptType, bool) {
	for _, sType := range scriptTypes {
		if sType.pattern.Match(script) {
			return sType, true
		}
	}
	return scriptType{}, false
}
