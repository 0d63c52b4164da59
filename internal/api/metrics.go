package api

import (
	"sync/atomic"
	"time"
)

// Metrics tracks request statistics using atomic operations for thread-safety
type Metrics struct {
	RequestsTotal atomic.Int64
	ClientErrors  atomic.Int64
	ServerErrors  atomic.Int64
	AuthFailures  atomic.Int64
	InFlight      atomic.Int32
	StartTime     time.Time
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime: time.Now(),
	}
}

// observe records a finished request by its status code
func (m *Metrics) observe(status int) {
	m.RequestsTotal.Add(1)
	switch {
	case status >= 500:
		m.ServerErrors.Add(1)
	case status >= 400:
		m.ClientErrors.Add(1)
	}
}

// IncAuthFailures increments the rejected-credentials counter
func (m *Metrics) IncAuthFailures() {
	m.AuthFailures.Add(1)
}

// MetricsSnapshot represents a point-in-time snapshot of metrics
type MetricsSnapshot struct {
	RequestsTotal int64     `json:"requests_total"`
	ClientErrors  int64     `json:"client_errors"`
	ServerErrors  int64     `json:"server_errors"`
	AuthFailures  int64     `json:"auth_failures"`
	InFlight      int32     `json:"in_flight"`
	StartTime     time.Time `json:"start_time"`
	Uptime        string    `json:"uptime"`
}

// GetSnapshot returns a snapshot of current metrics
func (m *Metrics) GetSnapshot() MetricsSnapshot {
	return MetricsSnapshot{
		RequestsTotal: m.RequestsTotal.Load(),
		ClientErrors:  m.ClientErrors.Load(),
		ServerErrors:  m.ServerErrors.Load(),
		AuthFailures:  m.AuthFailures.Load(),
		InFlight:      m.InFlight.Load(),
		StartTime:     m.StartTime,
		Uptime:        time.Since(m.StartTime).Round(time.Second).String(),
	}
}
