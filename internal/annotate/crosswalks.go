package annotate

import (
	"github.com/cosmosviz/sensor/internal/render"
	"github.com/cosmosviz/sensor/internal/roadnet"
	"github.com/cosmosviz/sensor/pkg/core"
)

// AnnotateCrosswalks splits the map's flat crosswalk point sequence into
// closed polygons and draws each as a persistent fan-triangulated mesh.
// Returns the number of polygons drawn.
func (a *Annotator) AnnotateCrosswalks(points []core.Vector3) int {
	polygons := roadnet.SplitCrosswalkZones(points)

	var totalArea float64
	for _, p := range polygons {
		a.draw.DrawMesh(p.Vertices, p.FanTriangles(), a.cfg.CrosswalksColor, true, render.DepthWorld)
		totalArea += p.Area()
	}

	if len(polygons) > 0 {
		a.log.Debug("annotated crosswalk zones", "count", len(polygons), "totalArea", totalArea)
	}
	return len(polygons)
}

// AnnotateStencils draws every road stencil (arrows, text markings) as a
// persistent two-triangle quad. Returns the number of stencils drawn.
func (a *Annotator) AnnotateStencils(stencils []core.Stencil) int {
	for _, s := range stencils {
		verts := roadnet.StencilQuad(s)
		indices := make([]int32, len(roadnet.StencilQuadIndices))
		copy(indices, roadnet.StencilQuadIndices)
		a.draw.DrawMesh(verts, indices, a.cfg.RoadMarkingsColor, true, render.DepthWorld)
	}
	return len(stencils)
}
