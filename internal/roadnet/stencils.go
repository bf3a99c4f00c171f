package roadnet

import "github.com/cosmosviz/sensor/pkg/core"

// StencilQuadIndices triangulate a stencil quad into two triangles.
var StencilQuadIndices = []int32{0, 1, 2, 0, 2, 3}

// StencilQuad builds the four world-space corners of a road stencil: a
// rectangle of the stencil's length and width, axis aligned in stencil local
// space, rotated and translated by its transform.
func StencilQuad(s core.Stencil) []core.Vector3 {
	halfL := s.Length * MapScale / 2
	halfW := s.Width * MapScale / 2

	return []core.Vector3{
		s.Transform.Apply(core.Vector3{X: -halfL, Y: -halfW}),
		s.Transform.Apply(core.Vector3{X: halfL, Y: -halfW}),
		s.Transform.Apply(core.Vector3{X: halfL, Y: halfW}),
		s.Transform.Apply(core.Vector3{X: -halfL, Y: halfW}),
	}
}
