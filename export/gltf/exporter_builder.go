package gltf

import (
	"github.com/Carmen-Shannon/fbx-go/mesh"
)

// ExporterBuilderOption is a functional option for configuring an Exporter
// via NewExporter.
type ExporterBuilderOption func(*exporter)

// WithWorkers is an option builder that sets the worker count for the
// parallel geometry conversion phase.
//
// Parameters:
//   - n: the number of workers, values below 1 are clamped to 1
//
// Returns:
//   - ExporterBuilderOption: a function that applies the worker count to an
//     exporter
func WithWorkers(n int) ExporterBuilderOption {
	return func(e *exporter) {
		e.workers = max(n, 1)
	}
}

// WithTriangulator is an option builder that replaces the default fan
// triangulator used when splitting polygons.
//
// Parameters:
//   - t: the triangulator to use
//
// Returns:
//   - ExporterBuilderOption: a function that applies the triangulator to an
//     exporter
func WithTriangulator(t mesh.Triangulator) ExporterBuilderOption {
	return func(e *exporter) {
		e.triangulator = t
	}
}

// WithSimplification is an option builder that enables mesh decimation.
// Decimation rebuilds mesh topology, so simplified meshes collapse to a
// single primitive with recomputed flat normals and no texture coordinates.
//
// Parameters:
//   - ratio: the fraction of triangles to keep, in (0, 1); values outside
//     that range disable decimation
//
// Returns:
//   - ExporterBuilderOption: a function that applies the ratio to an
//     exporter
func WithSimplification(ratio float64) ExporterBuilderOption {
	return func(e *exporter) {
		e.simplifyRatio = ratio
	}
}

// WithTextureEmbedding is an option builder that toggles embedding of
// texture content into the output asset.
//
// Parameters:
//   - enabled: whether embedded video content becomes glTF images
//
// Returns:
//   - ExporterBuilderOption: a function that applies the toggle to an
//     exporter
func WithTextureEmbedding(enabled bool) ExporterBuilderOption {
	return func(e *exporter) {
		e.embedTextures = enabled
	}
}
