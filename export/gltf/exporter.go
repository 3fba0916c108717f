// Package gltf converts a loaded document into a glTF 2.0 asset: the model
// hierarchy becomes the node tree, mesh geometry becomes buffer-backed
// primitives, and materials with embedded textures carry over to PBR
// materials.
package gltf

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	qgltf "github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Carmen-Shannon/fbx-go/dom"
	"github.com/Carmen-Shannon/fbx-go/mesh"
)

// Exporter converts documents into glTF assets.
type Exporter interface {
	// ExportDocument converts the document into an in-memory glTF document.
	//
	// Parameters:
	//   - doc: the loaded source document
	//
	// Returns:
	//   - *gltf.Document: the converted asset
	//   - error: the first conversion failure
	ExportDocument(doc *dom.Document) (*qgltf.Document, error)

	// ExportFile converts the document and writes it as .gltf JSON with an
	// embedded binary buffer.
	ExportFile(doc *dom.Document, path string) error

	// ExportBinary converts the document and writes it as a .glb container.
	ExportBinary(doc *dom.Document, path string) error
}

type exporter struct {
	workers       int
	triangulator  mesh.Triangulator
	simplifyRatio float64
	embedTextures bool
}

// Ensure exporter implements Exporter interface.
var _ Exporter = &exporter{}

// NewExporter creates an Exporter with the given options. By default meshes
// fan-triangulate, textures embed, no simplification runs, and the parallel
// conversion phase uses NumCPU-1 workers.
//
// Parameters:
//   - options: functional options to further configure the exporter
//
// Returns:
//   - Exporter: the configured exporter
func NewExporter(options ...ExporterBuilderOption) Exporter {
	e := &exporter{
		workers:       max(runtime.NumCPU()-1, 1),
		embedTextures: true,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *exporter) ExportFile(doc *dom.Document, path string) error {
	out, err := e.ExportDocument(doc)
	if err != nil {
		return err
	}
	return qgltf.Save(out, path)
}

func (e *exporter) ExportBinary(doc *dom.Document, path string) error {
	out, err := e.ExportDocument(doc)
	if err != nil {
		return err
	}
	return qgltf.SaveBinary(out, path)
}

func (e *exporter) ExportDocument(doc *dom.Document) (*qgltf.Document, error) {
	out := qgltf.NewDocument()

	geometries := collectMeshGeometries(doc)

	// Phase 1: parallel CPU conversion — each geometry decodes and
	// triangulates independently. Accessor writing stays serial because the
	// output document is shared.
	results := make([]*meshData, len(geometries))
	errs := make([]error, len(geometries))
	pool := worker.NewDynamicWorkerPool(e.workers, 256, 1*time.Second)
	var wg sync.WaitGroup
	for i, g := range geometries {
		wg.Add(1)
		idx := i
		geom := g
		pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				md, err := e.convertGeometry(geom)
				results[idx] = md
				errs[idx] = err
				return nil, nil
			},
		})
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("convert geometry %d: %w", geometries[i].ID(), err)
		}
	}

	// Phase 2: serial assembly.
	meshIndexByGeometry := make(map[dom.ObjectID]int)
	materialIndexCache := make(map[dom.ObjectID]int)
	for i, g := range geometries {
		md := results[i]
		if md == nil {
			continue
		}
		meshIndex, err := e.writeMesh(out, g, md, materialIndexCache)
		if err != nil {
			return nil, err
		}
		meshIndexByGeometry[g.ID()] = meshIndex
	}

	e.writeNodes(out, doc, meshIndexByGeometry)
	return out, nil
}

// collectMeshGeometries returns every mesh-subclass geometry of the document
// in declaration order.
func collectMeshGeometries(doc *dom.Document) []dom.Geometry {
	var out []dom.Geometry
	for _, obj := range doc.Objects() {
		g, ok := dom.Classify(obj).(dom.Geometry)
		if !ok || !g.IsMesh() {
			continue
		}
		out = append(out, g)
	}
	return out
}

// writeMesh writes one converted mesh into the output document, resolving
// material slots against the geometry's first attached model.
func (e *exporter) writeMesh(
	out *qgltf.Document,
	g dom.Geometry,
	md *meshData,
	materialIndexCache map[dom.ObjectID]int,
) (int, error) {
	positionAccessor := modeler.WritePosition(out, md.positions)
	var normalAccessor, uvAccessor int
	if md.normals != nil {
		normalAccessor = modeler.WriteNormal(out, md.normals)
	}
	if md.uvs != nil {
		uvAccessor = modeler.WriteTextureCoord(out, md.uvs)
	}

	// Material slots address the owning model's materials in connection
	// order.
	var slotMaterials []dom.Material
	if models := g.Models(); len(models) > 0 {
		slotMaterials = models[0].Materials()
	}

	gm := &qgltf.Mesh{Name: md.name}
	for _, prim := range md.prims {
		p := &qgltf.Primitive{
			Attributes: map[string]int{qgltf.POSITION: positionAccessor},
			Indices:    qgltf.Index(modeler.WriteIndices(out, prim.indices)),
		}
		if md.normals != nil {
			p.Attributes[qgltf.NORMAL] = normalAccessor
		}
		if md.uvs != nil {
			p.Attributes[qgltf.TEXCOORD_0] = uvAccessor
		}
		if prim.slot >= 0 && int(prim.slot) < len(slotMaterials) {
			mi, err := e.writeMaterial(out, slotMaterials[prim.slot], materialIndexCache)
			if err != nil {
				return 0, err
			}
			p.Material = qgltf.Index(mi)
		}
		gm.Primitives = append(gm.Primitives, p)
	}

	out.Meshes = append(out.Meshes, gm)
	return len(out.Meshes) - 1, nil
}

// writeNodes rebuilds the model hierarchy as glTF nodes and registers the
// roots in the default scene.
func (e *exporter) writeNodes(out *qgltf.Document, doc *dom.Document, meshIndexByGeometry map[dom.ObjectID]int) {
	nodeIndexByModel := make(map[dom.ObjectID]int)
	var models []dom.Model
	for _, obj := range doc.Objects() {
		m, ok := dom.Classify(obj).(dom.Model)
		if !ok {
			continue
		}
		models = append(models, m)
		node := &qgltf.Node{Name: m.Name()}
		if lt, ok, err := m.LocalTranslation(); ok && err == nil {
			node.Translation = [3]float64{lt.X, lt.Y, lt.Z}
		}
		for _, g := range m.Geometries() {
			if meshIndex, ok := meshIndexByGeometry[g.ID()]; ok {
				node.Mesh = qgltf.Index(meshIndex)
				break
			}
		}
		nodeIndexByModel[m.ID()] = len(out.Nodes)
		out.Nodes = append(out.Nodes, node)
	}

	for _, m := range models {
		idx := nodeIndexByModel[m.ID()]
		for _, child := range m.ChildModels() {
			if childIdx, ok := nodeIndexByModel[child.ID()]; ok {
				out.Nodes[idx].Children = append(out.Nodes[idx].Children, childIdx)
			}
		}
	}

	for _, m := range models {
		if _, ok := m.ParentModel(); ok {
			continue
		}
		out.Scenes[0].Nodes = append(out.Scenes[0].Nodes, nodeIndexByModel[m.ID()])
	}
}
