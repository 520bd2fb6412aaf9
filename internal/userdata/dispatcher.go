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
	"context"
	"fmt"

	"github.com/asgardeo/cloudinit/internal/system/log"
	"github.com/asgardeo/cloudinit/internal/system/metrics"
	"github.com/asgardeo/cloudinit/internal/userdata/constants"
	"github.com/asgardeo/cloudinit/internal/userdata/model"
	"github.com/asgardeo/cloudinit/internal/userdata/plugins"
)

// partDispatcher hands the parts of a single multipart payload to their handlers. It owns the
// dynamic part handler table of the execution.
type partDispatcher struct {
	registry     *plugins.Registry
	handlerTable model.HandlerTable
	metrics      *metrics.Collector
	logger       *log.Logger
}

func newPartDispatcher(registry *plugins.Registry, collector *metrics.Collector, logger *log.Logger) *partDispatcher {
	return &partDispatcher{
		registry:     registry,
		handlerTable: make(model.HandlerTable),
		metrics:      collector,
		logger:       logger,
	}
}

// dispatch processes a part and returns its execution result. Handler faults are logged and
// yield the done result so that the remaining parts are still processed.
func (d *partDispatcher) dispatch(ctx context.Context, part *model.Part) model.ExecutionResult {
	handler, ok := d.registry.GetHandler(part.ContentType)
	if !ok {
		d.logger.Info("Unknown user data content type", log.String(log.LoggerKeyContentType, part.ContentType))
		d.metrics.ObservePart(part.ContentType, metrics.PartOutcomeNoHandler)
		return model.DoneResult()
	}

	result := model.DoneResult()
	outcome := metrics.PartOutcomeHandled
	var err error
	if part.ContentType == constants.PartHandlerContentType {
		outcome = metrics.PartOutcomeRegistered
		err = guard(func() error {
			return d.registerPartHandlers(ctx, handler, part)
		})
	} else {
		err = guard(func() error {
			var processErr error
			result, processErr = d.processPart(ctx, handler, part)
			return processErr
		})
	}

	if err != nil {
		d.logger.Error("Exception during multipart part handling",
			log.String(log.LoggerKeyContentType, part.ContentType),
			log.String(log.LoggerKeyFilename, part.Filename), log.Error(err))
		d.metrics.ObservePart(part.ContentType, metrics.PartOutcomeFault)
		return model.DoneResult()
	}

	d.metrics.ObservePart(part.ContentType, outcome)
	return result
}

// registerPartHandlers merges the registrations returned for a part handler part into the handler table.
func (d *partDispatcher) registerPartHandlers(ctx context.Context, handler plugins.HandlerInterface,
	part *model.Part) error {
	handlerResult, err := handler.Process(ctx, part)
	if err != nil {
		return err
	}
	registrations, ok := handlerResult.Registrations()
	if !ok {
		return fmt.Errorf("%w: expected part handler registrations", constants.ErrUnexpectedHandlerResult)
	}

	d.handlerTable.Merge(registrations)
	if d.logger.IsDebugEnabled() {
		for contentType := range registrations {
			d.logger.Debug("Registered part handler", log.String(log.LoggerKeyContentType, contentType),
				log.String(log.LoggerKeyFilename, part.Filename))
		}
	}
	return nil
}

// processPart runs the handler of a normal part, bracketed by the begin and end phases of the
// dynamic part handler registered for its content type. The end phase is not run when the
// begin phase or the handler fails.
func (d *partDispatcher) processPart(ctx context.Context, handler plugins.HandlerInterface,
	part *model.Part) (model.ExecutionResult, error) {
	callback := d.handlerTable.Get(part.ContentType)
	if callback != nil {
		if err := callback("", constants.PartHandlerPhaseBegin, part.Filename, part.Payload); err != nil {
			return model.DoneResult(), err
		}
	}

	handlerResult, err := handler.Process(ctx, part)
	if err != nil {
		return model.DoneResult(), err
	}

	if callback != nil {
		if err := callback("", constants.PartHandlerPhaseEnd, part.Filename, part.Payload); err != nil {
			return model.DoneResult(), err
		}
	}

	code, ok := handlerResult.ReturnCode()
	if !ok {
		return model.DoneResult(), fmt.Errorf("%w: expected a return code", constants.ErrUnexpectedHandlerResult)
	}
	return GetExecutionResult(code), nil
}

// guard runs fn and converts a panic into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", constants.ErrHandlerPanic, r)
		}
	}()
	return fn()
}
