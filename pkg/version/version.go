// Package version holds the tool version stamped into release tags.
package version

// Version is the current release tag.
const Version = "v0.3.0"
