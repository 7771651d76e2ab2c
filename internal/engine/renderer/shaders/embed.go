// Package shaders embeds the GLSL sources used by the renderer.
package shaders

import _ "embed"

//go:embed mesh.vert
var MeshVertex string

//go:embed mesh.frag
var MeshFragment string

//go:embed line.vert
var LineVertex string

//go:embed line.frag
var LineFragment string
