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

// Package metrics provides the prometheus collectors of the agent.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Part outcomes recorded by the collector.
const (
	PartOutcomeHandled    = "handled"
	PartOutcomeNoHandler  = "no_handler"
	PartOutcomeFault      = "fault"
	PartOutcomeRegistered = "registered"
)

// Collector holds the agent metrics on its own registry. A nil collector records nothing.
type Collector struct {
	registry          *prometheus.Registry
	partsProcessed    *prometheus.CounterVec
	executions        *prometheus.CounterVec
	executionDuration prometheus.Histogram
}

// NewCollector creates a collector with all metrics registered.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		partsProcessed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "userdata_parts_processed_total",
				Help: "user data parts processed by content type and outcome.",
			},
			[]string{"content_type", "outcome"},
		),
		executions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "userdata_executions_total",
				Help: "user data executions by status and reboot decision.",
			},
			[]string{"status", "reboot"},
		),
		executionDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "userdata_execution_duration_seconds",
				Help:    "user data execution time.",
				Buckets: []float64{0.5, 1, 5, 10, 30, 60, 300},
			},
		),
	}

	c.registry.MustRegister(
		c.partsProcessed,
		c.executions,
		c.executionDuration,
	)
	return c
}

// ObservePart records the outcome of processing a single part.
func (c *Collector) ObservePart(contentType, outcome string) {
	if c == nil {
		return
	}
	c.partsProcessed.WithLabelValues(contentType, outcome).Inc()
}

// ObserveExecution records a completed execution.
func (c *Collector) ObserveExecution(status string, reboot bool, duration time.Duration) {
	if c == nil {
		return
	}
	c.executions.WithLabelValues(status, strconv.FormatBool(reboot)).Inc()
	c.executionDuration.Observe(duration.Seconds())
}

// Gatherer returns the registry holding the collector metrics.
func (c *Collector) Gatherer() prometheus.Gatherer {
	return c.registry
}

// WriteToTextfile writes the metrics in the text exposition format for the node exporter textfile collector.
func (c *Collector) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
