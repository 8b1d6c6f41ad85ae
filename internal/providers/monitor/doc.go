// Package monitor implements the system monitoring commands.
//
// Commands:
//   - ps, top: process listings and a load snapshot
//   - free, df, uptime: memory, disk, and boot-time reporting
//   - kill, killall: signal delivery by PID or by process name
//   - jobs, who, whoami, uname: shell and host identity
//
// Readings come from gopsutil, so the provider reports on the host the
// server runs on. Tables are rendered with two-space column padding to
// keep output stable across terminals.
package monitor
