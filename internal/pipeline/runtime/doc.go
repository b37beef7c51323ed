// Package runtime acquires the base Node.js binary an executable is assembled
// from.
//
// Builds for the host platform reuse the host's own node binary. Builds for
// any other platform resolve a Node.js version from the distribution index,
// then download and extract the official binary into a per-user cache laid
// out as <cache>/<platform>/<version>/<binary>. Entries are never evicted and
// are considered valid as long as the binary file exists.
package runtime
