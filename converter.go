package innoconv

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/innodoc/innoconv-mintmod/internal/ast"
	"github.com/innodoc/innoconv-mintmod/internal/innodoc"
	"github.com/innodoc/innoconv-mintmod/internal/logging"
	"github.com/innodoc/innoconv-mintmod/internal/mintmod"
	"github.com/innodoc/innoconv-mintmod/internal/pandoc"
	"github.com/innodoc/innoconv-mintmod/internal/preview"
)

// Job describes a single conversion.
type Job struct {
	// Source is a content directory (containing <lang>/index.tex) or a
	// single file.
	Source string

	// OutputDirBase is the output base directory.
	OutputDirBase string

	Lang         string
	InputFormat  string
	OutputFormat string

	// Debug highlights unknown commands in the output and writes HTML
	// previews for split markdown output.
	Debug bool

	// IgnoreExercises suppresses logs for unknown exercise commands.
	IgnoreExercises bool

	// RemoveExercises drops all exercise commands and environments. It
	// implies IgnoreExercises.
	RemoveExercises bool

	// NoSplit disables section splitting and writes a single output file
	// instead.
	NoSplit bool
}

// Result holds the conversion outcome.
type Result struct {
	// OutputPath is the written file, or the output directory when
	// sections were split.
	OutputPath string
}

// Converter runs mintmod conversions. It is safe for sequential reuse; a
// single Convert call parallelizes section writing internally.
type Converter struct {
	runner  pandoc.Runner
	logger  logging.Logger
	workers int
}

// New creates a Converter with default configuration.
func New(opts ...Option) *Converter {
	c := &Converter{
		runner: &pandoc.ExecRunner{},
		logger: logging.Nop,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert runs the full pipeline for one job.
func (c *Converter) Convert(ctx context.Context, job Job) (*Result, error) {
	job = withDefaults(job)
	if err := c.validate(&job); err != nil {
		return nil, err
	}

	// markdown with splitting goes through json; sections are rendered to
	// markdown individually
	splitMarkdown := false
	outputFormat := job.OutputFormat
	if !job.NoSplit && outputFormat == OutputFormatMarkdown {
		splitMarkdown = true
		outputFormat = OutputFormatJSON
	}

	paths, err := resolvePaths(job, outputFormat)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(paths.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	doc, err := c.parse(ctx, job, paths)
	if err != nil {
		return nil, err
	}

	filter := mintmod.NewPandocFilter(mintmod.Options{
		Lang:            job.Lang,
		Debug:           job.Debug,
		IgnoreExercises: job.IgnoreExercises,
		RemoveExercises: job.RemoveExercises,
		SourceDir:       paths.sourceDir,
	}, c.runner, c.logger)
	if err := filter.Apply(ctx, doc); err != nil {
		return nil, fmt.Errorf("filtering document: %w", err)
	}

	if job.NoSplit {
		return c.writeSingle(ctx, doc, paths, outputFormat)
	}
	return c.writeSplit(ctx, doc, job, paths, splitMarkdown)
}

func withDefaults(job Job) Job {
	if job.OutputDirBase == "" {
		job.OutputDirBase = DefaultOutputDirBase
	}
	if job.Lang == "" {
		job.Lang = DefaultLang
	}
	if job.InputFormat == "" {
		job.InputFormat = DefaultInputFormat
	}
	if job.OutputFormat == "" {
		job.OutputFormat = DefaultOutputFormat
	}
	return job
}

func (c *Converter) validate(job *Job) error {
	if job.InputFormat != InputFormatLaTeX && job.InputFormat != InputFormatMarkdown {
		return fmt.Errorf("%w: %q", ErrInvalidInputFormat, job.InputFormat)
	}
	if _, ok := outputExt[job.OutputFormat]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidOutputFormat, job.OutputFormat)
	}
	if !languageCodes[job.Lang] {
		return fmt.Errorf("%w: %q", ErrInvalidLanguage, job.Lang)
	}
	if job.RemoveExercises && !job.IgnoreExercises {
		c.logger.Log(logging.LevelWarning, "Setting RemoveExercises implies IgnoreExercises.")
		job.IgnoreExercises = true
	}
	if !job.NoSplit &&
		job.OutputFormat != OutputFormatJSON && job.OutputFormat != OutputFormatMarkdown {
		return fmt.Errorf("%w, got %q", ErrOutputFormatSplit, job.OutputFormat)
	}
	return nil
}

type jobPaths struct {
	sourceDir  string
	sourceFile string
	outputDir  string
	outputFile string
}

func resolvePaths(job Job, outputFormat string) (jobPaths, error) {
	info, err := os.Stat(job.Source)
	if err != nil {
		return jobPaths{}, fmt.Errorf("%w: %q", ErrSourceNotFound, job.Source)
	}

	ext := outputExt[outputFormat]
	var paths jobPaths
	if info.IsDir() {
		paths.sourceDir = filepath.Join(job.Source, job.Lang)
		paths.sourceFile = "index.tex"
		paths.outputDir = filepath.Join(job.OutputDirBase, job.Lang)
		paths.outputFile = "index." + ext
	} else {
		abs, err := filepath.Abs(job.Source)
		if err != nil {
			return jobPaths{}, err
		}
		paths.sourceDir = filepath.Dir(abs)
		paths.sourceFile = filepath.Base(abs)
		paths.outputDir = job.OutputDirBase
		base := strings.TrimSuffix(paths.sourceFile, filepath.Ext(paths.sourceFile))
		paths.outputFile = base + "." + ext
	}

	// split output always lives in a per-language directory
	if !job.NoSplit && filepath.Base(paths.outputDir) != job.Lang {
		paths.outputDir = filepath.Join(paths.outputDir, job.Lang)
	}
	return paths, nil
}

// parse runs pandoc over the source document and decodes the AST.
func (c *Converter) parse(ctx context.Context, job Job, paths jobPaths) (*ast.Doc, error) {
	out, err := pandoc.Convert(ctx, c.runner, paths.sourceDir, nil,
		job.InputFormat, "json", "--standalone", paths.sourceFile)
	if err != nil {
		return nil, fmt.Errorf("parsing source: %w", err)
	}
	doc, err := ast.DecodeDoc(out)
	if err != nil {
		return nil, err
	}
	doc.Meta["lang"] = ast.MetaString(job.Lang)
	return doc, nil
}

// writeSingle renders the filtered document into one output file.
func (c *Converter) writeSingle(ctx context.Context, doc *ast.Doc, paths jobPaths, outputFormat string) (*Result, error) {
	encoded, err := doc.EncodeJSON()
	if err != nil {
		return nil, err
	}

	data := encoded
	if outputFormat != OutputFormatJSON {
		data, err = pandoc.Convert(ctx, c.runner, paths.sourceDir, encoded,
			"json", outputFormat, "--standalone")
		if err != nil {
			return nil, fmt.Errorf("rendering output: %w", err)
		}
	}

	outPath := filepath.Join(paths.outputDir, paths.outputFile)
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("writing output: %w", err)
	}
	c.logger.Log(logging.LevelInfo, fmt.Sprintf("Build finished: %s", outPath))
	return &Result{OutputPath: outPath}, nil
}

// writeSplit splits the document into sections and writes the innodoc
// directory layout.
func (c *Converter) writeSplit(ctx context.Context, doc *ast.Doc, job Job, paths jobPaths, markdown bool) (*Result, error) {
	blocks, err := genericBlocks(doc)
	if err != nil {
		return nil, err
	}

	sections, _ := innodoc.ExtractSectionTree(blocks)
	c.logger.Log(logging.LevelInfo, "Extracted table of contents.")

	sectionMap := innodoc.SectionIDMap(sections)
	idMap := innodoc.ElementIDMap(sections, c.logger)
	innodoc.RewriteLinks(sections, sectionMap, idMap, c.logger)
	c.logger.Log(logging.LevelInfo, "Post-processed links.")

	format := innodoc.FormatJSON
	if markdown {
		format = innodoc.FormatMarkdown
	}
	writer := innodoc.NewWriter(c.runner, c.logger, format, c.workers)
	if err := writer.WriteSections(ctx, sections, paths.outputDir); err != nil {
		return nil, err
	}

	if markdown {
		title := doc.Meta.String("title")
		if title == "" {
			title = "UNKNOWN COURSE"
		}
		manifestPath := filepath.Join(paths.outputDir, "..", "manifest.yml")
		if err := innodoc.UpdateManifest(manifestPath, job.Lang, title); err != nil {
			return nil, err
		}
	} else {
		tocPath := filepath.Join(paths.outputDir, "toc.json")
		if err := innodoc.WriteTOC(tocPath, sections); err != nil {
			return nil, err
		}
		c.logger.Log(logging.LevelInfo, fmt.Sprintf("Wrote: %s", tocPath))
	}

	if job.Debug {
		c.logTOC(sections)
		if markdown {
			if err := c.writePreviews(ctx, paths.outputDir); err != nil {
				return nil, err
			}
		}
	}

	c.logger.Log(logging.LevelInfo, fmt.Sprintf("Build finished: %s", paths.outputDir))
	return &Result{OutputPath: paths.outputDir}, nil
}

// genericBlocks re-encodes the typed AST into its generic JSON form for the
// section postprocessing, which only inspects identifiers and link targets.
func genericBlocks(doc *ast.Doc) ([]any, error) {
	encoded, err := doc.EncodeJSON()
	if err != nil {
		return nil, err
	}
	var generic struct {
		Blocks []any `json:"blocks"`
	}
	if err := json.Unmarshal(encoded, &generic); err != nil {
		return nil, fmt.Errorf("re-encoding document: %w", err)
	}
	return generic.Blocks, nil
}

func (c *Converter) logTOC(sections []*innodoc.Section) {
	c.logger.Log(logging.LevelInfo, "TOC TREE:")
	var logSection func(s *innodoc.Section, depth int)
	logSection = func(s *innodoc.Section, depth int) {
		title := innodoc.ConcatenateStrings(s.Title)
		indent := strings.Repeat(" ", depth)
		c.logger.Log(logging.LevelInfo, fmt.Sprintf("%s%s (%s)", indent, title, s.ID))
		for _, child := range s.Children {
			logSection(child, depth+1)
		}
	}
	for _, s := range sections {
		logSection(s, 1)
	}
}

// writePreviews renders every written content.md into a preview.html next
// to it for visual inspection.
func (c *Converter) writePreviews(ctx context.Context, outputDir string) error {
	renderer := preview.NewRenderer()
	return filepath.WalkDir(outputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || d.Name() != "content.md" {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(outputDir, filepath.Dir(path))
		if err != nil {
			rel = filepath.Dir(path)
		}
		html, err := renderer.Render(ctx, rel, string(content))
		if err != nil {
			return err
		}
		previewPath := filepath.Join(filepath.Dir(path), "preview.html")
		return os.WriteFile(previewPath, []byte(html), 0o644)
	})
}
