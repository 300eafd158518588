// Package sim provides the core discrete-event simulation engine for disk-head scheduling.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - request.go: Request lifecycle (unreleased → ready → completed, or real-time → missed)
//   - device.go: the head-movement model, one track per tick
//   - policy.go: the six selection policies and their tie-break rules
//   - simulator.go: the unit-time loop, two-tier preemption and waiting-time bookkeeping
//
// # Architecture
//
// The sim package owns the state machine; everything around it lives in
// sub-packages:
//   - sim/trace/: (time, track) samples and their sinks
//   - sim/workload/: deterministic synthetic request generation
//   - sim/experiment/: runs policy combinations and reports on them
//
// # Tiers
//
// A run has a best-effort tier (FCFS, SSTF, SCAN or C-SCAN) and optionally a
// real-time tier (EDF or FD-SCAN) sharing one device. Once the real-time
// policy selects a request, the head seeks to it before any best-effort
// request is considered.
package sim
