// Command kiln is the CLI client for the kilnd compile daemon. It dispatches
// compile requests over the chunk protocol, streams remote output to the
// terminal, and manages the daemon lifecycle.
package main
