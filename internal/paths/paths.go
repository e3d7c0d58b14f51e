// Package paths maps descriptor locations in the source tree to output
// locations and breadcrumb segment lists. All functions are pure string
// rewrites; they never touch the filesystem.
package paths

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DescriptorExt is the file extension of page descriptor documents.
const DescriptorExt = ".edn"

// OutputExt is the extension every rendered page is written with.
const OutputExt = ".html"

// Output rewrites a descriptor path under sourceRoot to its rendered
// counterpart under distRoot, swapping the descriptor extension for .html.
// A path outside sourceRoot is a programmer error, not a runtime condition.
func Output(inputPath, sourceRoot, distRoot string) (string, error) {
	rel, err := filepath.Rel(sourceRoot, inputPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("input path %q is not under source root %q", inputPath, sourceRoot)
	}
	rel = strings.TrimSuffix(rel, DescriptorExt) + OutputExt
	return filepath.Join(distRoot, rel), nil
}

// Segments derives the breadcrumb segment list for a descriptor path: the
// source-root prefix and descriptor extension are stripped, a trailing
// "index" marker is removed, underscores become spaces, and the remainder is
// split on the path separator. A section index keeps a trailing empty
// segment so link-depth arithmetic still counts its directory.
//
// ok is false for the site root page (empty first segment); callers must
// then suppress the breadcrumb block entirely rather than treat it as a
// zero-segment trail.
func Segments(inputPath, sourceRoot string) (segments []string, ok bool) {
	rel, err := filepath.Rel(sourceRoot, inputPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return nil, false
	}
	rel = filepath.ToSlash(strings.TrimSuffix(rel, DescriptorExt))
	switch {
	case rel == "index":
		rel = ""
	case strings.HasSuffix(rel, "/index"):
		// Keep the trailing slash: a section index contributes an empty
		// final segment so link depth still counts its directory.
		rel = strings.TrimSuffix(rel, "index")
	}
	rel = strings.ReplaceAll(rel, "_", " ")
	segments = strings.Split(rel, "/")
	if segments[0] == "" {
		return nil, false
	}
	return segments, true
}
