// Package site orchestrates a whole build: it walks the descriptor tree,
// runs every page through the transformation pipeline on a worker pool, and
// emits the results into a freshly wiped output tree.
package site

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/axvr/axvr.uk/internal/config"
	"github.com/axvr/axvr.uk/internal/descriptor"
	"github.com/axvr/axvr.uk/internal/emit"
	siteerrors "github.com/axvr/axvr.uk/internal/errors"
	"github.com/axvr/axvr.uk/internal/logfields"
	"github.com/axvr/axvr.uk/internal/page"
	"github.com/axvr/axvr.uk/internal/paths"
)

// Report summarises one build run.
type Report struct {
	BuildID  string
	Pages    int
	Failed   int
	Duration time.Duration
	Failures []error // per-page errors, collected rather than first-fail
	Warnings []error // side-file copy problems
}

// Builder runs builds for one configuration.
type Builder struct {
	cfg *config.Config
}

// NewBuilder creates a Builder for the given configuration.
func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{cfg: cfg}
}

// task pairs a descriptor with its source location.
type task struct {
	input   string
	relPath string
	desc    *descriptor.Descriptor
}

// Build performs one complete build pass. Configuration, template, and
// descriptor-parse problems abort before anything is written; per-page
// pipeline failures are collected so every broken page is reported in one
// run. The returned Report is valid even when err is non-nil.
func (b *Builder) Build(ctx context.Context) (*Report, error) {
	report := &Report{BuildID: uuid.NewString()}
	start := time.Now()
	defer func() { report.Duration = time.Since(start) }()

	slog.Info("Starting site build",
		logfields.BuildID(report.BuildID),
		logfields.Path(b.cfg.Source))

	template, err := os.ReadFile(b.cfg.Template)
	if err != nil {
		return report, siteerrors.TemplateLoadFailure(b.cfg.Template, err)
	}

	// All descriptors are parsed up front: a malformed document aborts the
	// build before any output is touched.
	pages, err := b.loadDescriptors()
	if err != nil {
		return report, err
	}
	report.Pages = len(pages)

	// The output wipe is a hard barrier: it must complete before any page
	// write begins.
	if err := emit.WipeDir(b.cfg.Output); err != nil {
		return report, siteerrors.OutputWriteFailure(b.cfg.Output, err)
	}

	pipeline := page.New(string(template))
	results, fatal := b.runPages(ctx, pipeline, pages)

	for _, res := range results {
		report.Warnings = append(report.Warnings, res.warnings...)
		if res.err != nil {
			report.Failed++
			report.Failures = append(report.Failures, res.err)
			slog.Error("Page failed", logfields.Page(res.relPath), logfields.Error(res.err))
		}
	}

	slog.Info("Build finished",
		logfields.BuildID(report.BuildID),
		logfields.Count(report.Pages),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))

	switch {
	case fatal != nil:
		return report, fatal
	case ctx.Err() != nil:
		return report, ctx.Err()
	case report.Failed > 0:
		return report, fmt.Errorf("%d of %d pages failed", report.Failed, report.Pages)
	}
	return report, nil
}

// loadDescriptors walks the source tree and parses every descriptor in a
// stable order.
func (b *Builder) loadDescriptors() ([]task, error) {
	var inputs []string
	err := filepath.WalkDir(b.cfg.Source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), paths.DescriptorExt) {
			inputs = append(inputs, path)
		}
		return nil
	})
	if err != nil {
		return nil, siteerrors.New(siteerrors.CategoryFileSystem, siteerrors.SeverityFatal,
			"source tree walk failed").WithContext("path", b.cfg.Source).WithContext("cause", err.Error())
	}
	sort.Strings(inputs)

	tasks := make([]task, 0, len(inputs))
	for _, input := range inputs {
		rel, err := filepath.Rel(b.cfg.Source, input)
		if err != nil {
			rel = input
		}
		desc, err := descriptor.Load(input)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task{input: input, relPath: filepath.ToSlash(rel), desc: desc})
	}
	return tasks, nil
}

type pageResult struct {
	relPath  string
	err      error
	warnings []error
}

// runPages builds every page on a bounded worker pool. Pages are independent
// (no stage reads another page's record), so no ordering is guaranteed
// between them; stage order within one page stays strictly sequential. A
// fatal error (an output write failure) cancels the remaining work.
func (b *Builder) runPages(ctx context.Context, pipeline *page.Pipeline, pages []task) ([]pageResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := b.cfg.Workers
	if workers > len(pages) {
		workers = len(pages)
	}
	if workers < 1 {
		workers = 1
	}

	tasks := make(chan task)
	results := make([]pageResult, 0, len(pages))
	var fatal error
	var wg sync.WaitGroup
	var mu sync.Mutex

	worker := func() {
		defer wg.Done()
		for tk := range tasks {
			select {
			case <-ctx.Done():
				return
			default:
			}
			res := b.buildPage(pipeline, tk)
			mu.Lock()
			results = append(results, res)
			if res.err != nil && siteerrors.IsFatal(res.err) && fatal == nil {
				fatal = res.err
				cancel()
			}
			mu.Unlock()
		}
	}

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go worker()
	}
	for _, tk := range pages {
		select {
		case <-ctx.Done():
		case tasks <- tk:
		}
	}
	close(tasks)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	return results, fatal
}

// buildPage runs one parsed descriptor through the pipeline and emission.
// The page's output file is written only after its entire pipeline succeeds.
func (b *Builder) buildPage(pipeline *page.Pipeline, tk task) pageResult {
	outputPath, err := paths.Output(tk.input, b.cfg.Source, b.cfg.Output)
	if err != nil {
		return pageResult{relPath: tk.relPath, err: siteerrors.PageFailed(tk.relPath, err)}
	}

	rec := page.Record{
		Desc:       tk.desc,
		Site:       b.cfg.Site,
		SiteName:   b.cfg.SiteName(),
		InputPath:  tk.input,
		RelPath:    tk.relPath,
		SourceRoot: b.cfg.Source,
		OutputPath: outputPath,
	}

	rec, err = pipeline.Run(rec)
	if err != nil {
		return pageResult{relPath: tk.relPath, err: siteerrors.PageFailed(tk.relPath, err)}
	}

	warnings, err := emit.Emit(rec)
	if err != nil {
		return pageResult{relPath: tk.relPath, err: err, warnings: warnings}
	}
	slog.Debug("Page built", logfields.Page(tk.relPath))
	return pageResult{relPath: tk.relPath, warnings: warnings}
}
