// Package cmd implements the command-line interface for shmlock. It is a
// thin consumer of the lock library's public contract, useful for shell
// scripting and for recovering from leaked segments.
//
// The package is organized into several subpackages:
//
//   - run: Run an arbitrary command while holding a named lock
//   - status: Inspect whether a lock is held and by which token
//   - clean: Force-remove a segment leaked by a crashed process
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See shmlock -help for a list of all commands.
package cmd
