// Package docker wraps the Docker Engine SDK client for the parts of
// mailgram that talk to the daemon directly: the status command's
// container listing and the clean command's resource pruning. Lifecycle
// operations that compose coordinates (up, down, build) go through the
// compose package instead.
package docker
