// Package provision makes schema files reachable from the project's link
// directory (by default <PROJECT_DIR>/protobuf) through symbolic links.
//
// Link creation is idempotent: an occupied link path is reported as
// AlreadyExists, not as an error, and links are never removed. Every other
// filesystem failure is reported as Failed and stops Provision, leaving the
// decision to abort the build to the caller.
package provision
