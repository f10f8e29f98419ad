// Package innoconv converts mintmod LaTeX course content into innodoc
// output using pandoc.
//
// # Quick Start
//
// Create a converter and run it on a content directory:
//
//	conv := innoconv.New(
//	    innoconv.WithLogger(logger),
//	)
//	result, err := conv.Convert(ctx, innoconv.Job{
//	    Source:        "/path/to/course",
//	    OutputDirBase: "innoconv_output",
//	    Lang:          "de",
//	})
//
// # Conversion Pipeline
//
// The conversion runs in these stages:
//
//  1. pandoc parses the LaTeX source (raw_tex enabled) into its JSON AST.
//  2. The mintmod filter rewrites all mintmod commands and environments
//     into generic pandoc elements, recursively re-parsing nested LaTeX
//     fragments through pandoc.
//  3. With section splitting enabled (the default), the document is split
//     into a section tree at headers, cross references are rewritten to
//     section URLs, and per-section content files plus a toc.json or
//     manifest.yml are written.
//  4. Without splitting, pandoc renders the filtered document into the
//     requested output format.
//
// # Requirements
//
// A pandoc executable must be available in PATH.
package innoconv
