// Package pkg provides the core libraries for knowledge-circuit visualization.
//
// # Overview
//
// Circuitvis turns knowledge-circuit graph files into interactive element
// layouts and static renderings. The pkg directory is organized around the
// three pipeline stages plus supporting infrastructure:
//
//  1. [circuit] - Edge-list parsing and node classification
//  2. [layout] - Positioned element computation for the viewer widget
//  3. [render/dot] - Static Graphviz rendering (DOT, SVG, PNG)
//
// The [pipeline] package ties the stages together behind a cached Runner
// shared by the CLI and the HTTP server. Supporting packages: [catalog]
// (on-disk case discovery), [upload] (ephemeral uploaded circuits), [cache]
// (file, Redis, and null backends), [io] (edge and element JSON exchange),
// [errors] (coded errors), [observability] and [metrics] (hooks and
// Prometheus collectors), and [buildinfo] (version stamping).
//
// [circuit]: github.com/HaomingX/KnowledgeCircuitVis/pkg/circuit
// [layout]: github.com/HaomingX/KnowledgeCircuitVis/pkg/layout
// [render/dot]: github.com/HaomingX/KnowledgeCircuitVis/pkg/render/dot
// [pipeline]: github.com/HaomingX/KnowledgeCircuitVis/pkg/pipeline
// [catalog]: github.com/HaomingX/KnowledgeCircuitVis/pkg/catalog
// [upload]: github.com/HaomingX/KnowledgeCircuitVis/pkg/upload
// [cache]: github.com/HaomingX/KnowledgeCircuitVis/pkg/cache
// [io]: github.com/HaomingX/KnowledgeCircuitVis/pkg/io
// [errors]: github.com/HaomingX/KnowledgeCircuitVis/pkg/errors
// [observability]: github.com/HaomingX/KnowledgeCircuitVis/pkg/observability
// [metrics]: github.com/HaomingX/KnowledgeCircuitVis/pkg/metrics
// [buildinfo]: github.com/HaomingX/KnowledgeCircuitVis/pkg/buildinfo
package pkg
