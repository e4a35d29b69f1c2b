/*
Package workers provides utilities for determining scan worker pool sizes
in containerized environments.

When running in a container, the number of available CPUs may be limited by
cgroup constraints. Go 1.19+ sets GOMAXPROCS from the container CPU limit,
while runtime.NumCPU() still returns the host machine's CPU count, so the
helpers here size pools from GOMAXPROCS.

Scan work is dominated by lookup-service and image requests, so the pool is
sized for I/O-bound work (2 workers per available CPU) and always capped:
the worker bound is the only backpressure protecting the rate-limited
lookup service from an unbounded fan-out.

	numWorkers := workers.ForIO(8) // 2 per CPU, max 8

Operators can override the calculation with the SCAN_WORKERS environment
variable:

	env:
	- name: SCAN_WORKERS
	  value: "4"

All functions are safe for concurrent use.
*/
package workers
