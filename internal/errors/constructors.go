package errors

// Convenience constructors for the build error taxonomy.

// ConfigLoadFailure reports an unreadable or invalid configuration document.
// Fatal: nothing is safely buildable without the configuration.
func ConfigLoadFailure(path string, cause error) *SiteError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration unreadable").
		WithContext("path", path)
}

// MalformedDescriptor reports an unreadable or invalid descriptor or
// configuration document. Fatal: nothing can be built from bad input.
func MalformedDescriptor(path string, cause error) *SiteError {
	return Wrap(cause, CategoryDescriptor, SeverityFatal, "malformed descriptor").
		WithContext("path", path)
}

// MissingContentSource reports a content file referenced by a descriptor that
// does not exist. Fatal for the page, not for the build.
func MissingContentSource(page, contentPath string, cause error) *SiteError {
	return Wrap(cause, CategoryContent, SeverityError, "content source missing").
		WithContext("page", page).
		WithContext("content", contentPath)
}

// MissingRequiredFile reports a `requires` entry that could not be copied.
// Reported only; the page itself still succeeds.
func MissingRequiredFile(page, required string, cause error) *SiteError {
	return Wrap(cause, CategoryFileSystem, SeverityWarning, "required side-file missing").
		WithContext("page", page).
		WithContext("require", required)
}

// OutputWriteFailure reports a filesystem error writing a rendered page.
// Fatal: the output tree can no longer be trusted.
func OutputWriteFailure(path string, cause error) *SiteError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "output write failed").
		WithContext("path", path)
}

// TemplateLoadFailure reports that the master template could not be read.
// Fatal before any output is produced.
func TemplateLoadFailure(path string, cause error) *SiteError {
	return Wrap(cause, CategoryTemplate, SeverityFatal, "master template unreadable").
		WithContext("path", path)
}

// PageFailed wraps a per-page pipeline error with the page it belongs to.
func PageFailed(page string, cause error) *SiteError {
	return Wrap(cause, CategoryPipeline, SeverityError, "page build failed").
		WithContext("page", page)
}
