// Package history stores completed invocation records in a local SQLite
// database so recent daemon activity can be reviewed from the CLI.
package history
