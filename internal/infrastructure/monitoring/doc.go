/*
Package monitoring provides Prometheus metrics collection.

# Overview

This package tracks the terminal service's HTTP traffic, command
executions, natural language translations, sessions, and WebSocket
connections. All metrics carry the terminal_ prefix.

# Metrics

  - terminal_http_requests_total / terminal_http_request_duration_seconds
  - terminal_commands_total{command,status}
  - terminal_command_duration_seconds{command}
  - terminal_translations_total{matched}
  - terminal_sessions_active / terminal_sessions_created_total
  - terminal_ws_connections / terminal_ws_messages_total
  - terminal_uptime_seconds

# Usage

	// Create metrics collector
	metrics := monitoring.NewMetrics()

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Record engine activity
	metrics.RecordCommand("ls", "success", duration)
	metrics.RecordTranslation(true)
	metrics.SetSessionsActive(3)

# Metrics Endpoint

Expose metrics via the standard Prometheus endpoint:

	import "github.com/prometheus/client_golang/prometheus/promhttp"
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
*/
package monitoring
