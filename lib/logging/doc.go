// Package logging provides the leveled logging facade used by the lock
// library. The library itself logs at debug level only (acquire attempts,
// contention, release); the resource tracker logs leaks at warning level.
//
// Every component accepts an optional ILogger. Passing nil disables logging
// entirely via a nop implementation, so callers never need to guard log
// statements.
package logging
