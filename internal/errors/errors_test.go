package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestSiteError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *SiteError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(CategoryConfig, SeverityFatal, "configuration invalid"),
			expected: "config (fatal): configuration invalid",
		},
		{
			name:     "error with cause",
			err:      Wrap(fmt.Errorf("file not found"), CategoryConfig, SeverityFatal, "failed to load config"),
			expected: "config (fatal): failed to load config: file not found",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := test.err.Error()
			if result != test.expected {
				t.Errorf("Error() = %q, want %q", result, test.expected)
			}
		})
	}
}

func TestSiteError_WithContext(t *testing.T) {
	err := MissingRequiredFile("blog/post.edn", "img/a.png", fmt.Errorf("no such file"))

	if err.Context == nil {
		t.Fatal("Context should not be nil")
	}
	if err.Context["page"] != "blog/post.edn" {
		t.Errorf("Context[page] = %v, want blog/post.edn", err.Context["page"])
	}
	if err.Context["require"] != "img/a.png" {
		t.Errorf("Context[require] = %v, want img/a.png", err.Context["require"])
	}
}

func TestIsCategory(t *testing.T) {
	descErr := MalformedDescriptor("pages/index.edn", fmt.Errorf("bad edn"))
	standardErr := fmt.Errorf("standard error")

	if !IsCategory(descErr, CategoryDescriptor) {
		t.Error("expected descriptor category")
	}
	if IsCategory(descErr, CategoryContent) {
		t.Error("did not expect content category")
	}
	if IsCategory(standardErr, CategoryInternal) {
		t.Error("plain errors have no category")
	}
}

func TestSeverityClassification(t *testing.T) {
	if !IsFatal(OutputWriteFailure("/dist/x.html", fmt.Errorf("disk full"))) {
		t.Error("output write failures must be fatal")
	}
	if IsFatal(MissingContentSource("p.edn", "body.md", fmt.Errorf("gone"))) {
		t.Error("missing content is page-level, not build-fatal")
	}
	if IsFatal(stdErrors.New("plain")) {
		t.Error("plain errors are not fatal")
	}
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Wrap(cause, CategoryFileSystem, SeverityFatal, "wrapped")
	if !stdErrors.Is(err, cause) {
		t.Error("Unwrap chain should reach the cause")
	}
}
