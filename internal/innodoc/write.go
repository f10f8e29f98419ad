package innodoc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/innodoc/innoconv-mintmod/internal/logging"
	"github.com/innodoc/innoconv-mintmod/internal/pandoc"
)

// Worker pool sizing.
const (
	minWorkers = 1

	// maxWorkers caps concurrent pandoc subprocesses.
	maxWorkers = 8

	cpuDivisor = 2
)

// ResolveWorkers determines the section writer concurrency. An explicit
// value takes priority, otherwise it is derived from GOMAXPROCS.
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return workers
	}
	n := runtime.GOMAXPROCS(0) / cpuDivisor
	if n < minWorkers {
		return minWorkers
	}
	if n > maxWorkers {
		return maxWorkers
	}
	return n
}

// Content formats for section files.
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

func contentExt(format string) string {
	if format == FormatMarkdown {
		return "md"
	}
	return "json"
}

// Writer writes the section tree to the innodoc directory layout. Each
// section becomes a directory containing a content file; the first top-level
// section writes into the base directory itself.
type Writer struct {
	runner  pandoc.Runner
	logger  logging.Logger
	format  string
	workers int
}

// NewWriter creates a Writer. runner is only used for markdown output;
// format must be FormatJSON or FormatMarkdown.
func NewWriter(runner pandoc.Runner, logger logging.Logger, format string, workers int) *Writer {
	if logger == nil {
		logger = logging.Nop
	}
	return &Writer{
		runner:  runner,
		logger:  logger,
		format:  format,
		workers: ResolveWorkers(workers),
	}
}

type writeJob struct {
	dir     string
	section *Section
	content []any
}

// WriteSections writes all section content files. Content is detached from
// the sections so a subsequent toc serialization contains only the tree.
func (w *Writer) WriteSections(ctx context.Context, sections []*Section, baseDir string) error {
	var jobs []writeJob
	for i, s := range sections {
		dir := baseDir
		if i > 0 {
			dir = filepath.Join(baseDir, s.ID)
		}
		var err error
		jobs, err = w.collect(jobs, s, dir, 1)
		if err != nil {
			return err
		}
	}
	return w.run(ctx, jobs)
}

// collect creates section directories up front and detaches content; the
// actual file writes run concurrently afterwards.
func (w *Writer) collect(jobs []writeJob, s *Section, dir string, depth int) ([]writeJob, error) {
	if depth > maxLevels {
		return jobs, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating section directory: %w", err)
	}

	content := s.Content
	s.Content = nil
	jobs = append(jobs, writeJob{dir: dir, section: s, content: content})

	for _, child := range s.Children {
		var err error
		jobs, err = w.collect(jobs, child, filepath.Join(dir, child.ID), depth+1)
		if err != nil {
			return nil, err
		}
	}
	return jobs, nil
}

func (w *Writer) run(ctx context.Context, jobs []writeJob) error {
	sem := make(chan struct{}, w.workers)
	errs := make([]error, len(jobs))
	var wg sync.WaitGroup

	for i, job := range jobs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, job writeJob) {
			defer wg.Done()
			defer func() { <-sem }()
			errs[i] = w.write(ctx, job)
		}(i, job)
	}
	wg.Wait()

	return errors.Join(errs...)
}

func (w *Writer) write(ctx context.Context, job writeJob) error {
	path := filepath.Join(job.dir, "content."+contentExt(w.format))

	var data []byte
	switch w.format {
	case FormatMarkdown:
		out, err := w.markdown(ctx, job)
		if err != nil {
			return err
		}
		data = out
	default:
		content := job.content
		if content == nil {
			content = []any{}
		}
		out, err := json.Marshal(content)
		if err != nil {
			return fmt.Errorf("encoding section %s: %w", job.section.ID, err)
		}
		data = out
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing section %s: %w", job.section.ID, err)
	}
	w.logger.Log(logging.LevelInfo, fmt.Sprintf("Wrote section %s.", job.section.ID))
	return nil
}

// markdown renders section content through pandoc, with the section title
// and type carried in a YAML metadata block.
func (w *Writer) markdown(ctx context.Context, job writeJob) ([]byte, error) {
	meta := map[string]any{
		"title": map[string]any{"t": "MetaInlines", "c": job.section.Title},
	}
	if job.section.Type != "" {
		meta["type"] = map[string]any{
			"t": "MetaInlines",
			"c": []any{map[string]any{"t": "Str", "c": job.section.Type}},
		}
	}
	content := job.content
	if content == nil {
		content = []any{}
	}
	doc := map[string]any{
		"pandoc-api-version": []int{1, 22},
		"meta":               meta,
		"blocks":             content,
	}
	input, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding section %s: %w", job.section.ID, err)
	}

	out, err := pandoc.Convert(ctx, w.runner, job.dir, input,
		"json", "markdown+yaml_metadata_block",
		"--markdown-headings=atx", "--wrap=preserve", "--columns=999", "--standalone")
	if err != nil {
		return nil, fmt.Errorf("rendering section %s: %w", job.section.ID, err)
	}
	return out, nil
}

// WriteTOC serializes the section tree (without content) to a toc.json.
func WriteTOC(path string, sections []*Section) error {
	data, err := json.Marshal(sections)
	if err != nil {
		return fmt.Errorf("encoding toc: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing toc: %w", err)
	}
	return nil
}
