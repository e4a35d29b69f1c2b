// Package memory configures Go's runtime memory limit for containerized
// deployments.
//
// Go auto-detects GOMAXPROCS from cgroup CPU limits but never reads the
// container memory limit, so a catalog decoding full-size artwork can be
// OOM-killed under a tight limit. [ConfigureFromEnv] derives GOMEMLIMIT
// from the limit Kubernetes passes via the Downward API:
//
//   - GOMEMLIMIT: standard Go variable, takes precedence when set
//   - MEMORY_LIMIT: container memory limit in bytes
//   - MEMORY_RATIO: share of MEMORY_LIMIT for the Go heap (default 0.80,
//     leaving headroom for image decode buffers and SQLite)
//
// Call it first thing in main, before significant allocations.
package memory
