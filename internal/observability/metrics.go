// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tasknest Contributors

package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// signupsTotal and loginsTotal are package-level counters so services can
// record outcomes without holding a reference to the Server instance.
var (
	signupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tasknest_signups_total",
			Help: "Total number of signup attempts by outcome",
		},
		[]string{"outcome"},
	)

	loginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tasknest_logins_total",
			Help: "Total number of login attempts by outcome",
		},
		[]string{"outcome"},
	)
)

// RecordSignup increments the signup counter for the given outcome
// ("success", "conflict", "error").
func RecordSignup(outcome string) {
	signupsTotal.WithLabelValues(outcome).Inc()
}

// RecordLogin increments the login counter for the given outcome
// ("success", "not_found", "unauthenticated", "error").
func RecordLogin(outcome string) {
	loginsTotal.WithLabelValues(outcome).Inc()
}

// Metrics contains custom Prometheus metrics for Tasknest.
type Metrics struct {
	RequestsTotal  *prometheus.CounterVec
	TodoOperations *prometheus.CounterVec
}

// NewMetrics creates and registers custom Tasknest metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tasknest_requests_total",
				Help: "Total number of requests by operation and status",
			},
			[]string{"operation", "status"},
		),
		TodoOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tasknest_todo_operations_total",
				Help: "Total number of todo mutations by operation",
			},
			[]string{"operation"},
		),
	}

	reg.MustRegister(m.RequestsTotal)
	reg.MustRegister(m.TodoOperations)
	reg.MustRegister(signupsTotal)
	reg.MustRegister(loginsTotal)

	return m
}
