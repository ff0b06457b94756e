// Package migrations holds the schema migrations.
//
// Each migration registers itself from init(), so importing this package
// for side effects (as cmd/lumina does) is enough to make every migration
// visible to the runner.
package migrations
