// Package compose invokes the docker compose plugin as a child process
// and introspects the project's compose file.
//
// Batch operations (up, down, build, pull) capture combined output for
// error reporting; streaming operations (logs -f, exec) wire the child
// process directly to the terminal so interrupts and TTY interaction
// behave as if docker compose had been invoked by hand.
package compose
