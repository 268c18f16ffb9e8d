// Package daemonctl orchestrates the compile daemon lifecycle: resolving a
// java runtime, launching the daemon JVM detached, and waiting for it to
// come up or shut down.
package daemonctl
