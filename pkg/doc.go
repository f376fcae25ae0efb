// Package pkg provides the core libraries for parcoords chart rendering.
//
// # Overview
//
// Parcoords renders multi-dimensional datasets as parallel-coordinates
// charts: one vertical axis per column, one polyline per record. The pkg
// directory is organized into these areas:
//
//  1. [dataset] - Loading and decoding (file, HTTP, MongoDB sources)
//  2. [schema] - Column type inference (numeric vs nominal)
//  3. [scale] - Per-axis value-to-pixel mapping and tick generation
//  4. [chart] - Layout, color rule, view model, SVG rendering
//  5. [pipeline] - Orchestration (load → infer → build → render) with caching
//  6. [cache], [config], [debounce], [errors], [httputil] - Infrastructure
//
// # Architecture
//
// The typical data flow through parcoords:
//
//	JSON records (file / HTTP / MongoDB)
//	         ↓
//	    [dataset] package (ordered decode, value tagging)
//	         ↓
//	    [schema] package (type inference per column)
//	         ↓
//	    [chart] package (layout + scales + polylines)
//	         ↓
//	    SVG/PDF/PNG output
//
// # Quick Start
//
// Render a dataset through the pipeline:
//
//	registry := map[string]pipeline.Entry{
//	    "students": {Source: dataset.FileSource{Path: "students.json"}},
//	}
//	runner := pipeline.NewRunner(registry, nil, nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{DatasetID: "students"})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("students.svg", result.Artifacts["svg"], 0o644)
package pkg
