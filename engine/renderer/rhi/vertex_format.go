package rhi

import (
	"unsafe"

	"github.com/spaghettifunk/phoenix/engine/core"
)

// AttributeKind is the semantic of a vertex attribute. It doubles as the
// shader input location.
type AttributeKind uint8

const (
	AttributePosition AttributeKind = iota
	AttributeNormal
	AttributeColor
	AttributeBitangent
	AttributeTexCoord
	AttributeKindCount
)

func (k AttributeKind) String() string {
	switch k {
	case AttributePosition:
		return "position"
	case AttributeNormal:
		return "normal"
	case AttributeColor:
		return "color"
	case AttributeBitangent:
		return "bitangent"
	case AttributeTexCoord:
		return "texcoord"
	}
	return "unknown"
}

// ElementType is the scalar type of one attribute component.
type ElementType uint8

const (
	ElementFloat32 ElementType = iota
	ElementInt32
	ElementUint32
	ElementInt16
	ElementUint16
	ElementInt8
	ElementUint8
)

// Size is the byte size of one component.
func (t ElementType) Size() uint32 {
	switch t {
	case ElementFloat32, ElementInt32, ElementUint32:
		return 4
	case ElementInt16, ElementUint16:
		return 2
	default:
		return 1
	}
}

// AttributeDecl describes how one attribute is laid out.
type AttributeDecl struct {
	Kind       AttributeKind
	Type       ElementType
	Components uint8
	// Normalized maps integer data to [0,1] or [-1,1] when read by the shader.
	Normalized bool
}

// AttributeData is a non-owning view over CPU side vertex data. Stride is the
// byte distance between two consecutive elements, Count the number of elements.
type AttributeData struct {
	Stride uint32
	Count  uint32
	Data   []byte
}

// Size is the number of bytes the view covers.
func (d AttributeData) Size() int {
	return int(d.Stride) * int(d.Count)
}

type VertexAttribute struct {
	Decl AttributeDecl
	Data AttributeData
}

// VertexBufferFormat collects at most one attribute per AttributeKind.
type VertexBufferFormat struct {
	attributes [AttributeKindCount]VertexAttribute
	size       int
}

// Add stores an attribute. Adding a kind that is already present overwrites
// its slot instead of appending a second one. Unknown kinds are dropped.
func (f *VertexBufferFormat) Add(decl AttributeDecl, data AttributeData) {
	if decl.Kind >= AttributeKindCount {
		core.Assert(false, "vertex attribute kind %d out of range", decl.Kind)
		core.LogError("vertex attribute kind %d out of range, attribute dropped", decl.Kind)
		return
	}
	for i := 0; i < f.size; i++ {
		if f.attributes[i].Decl.Kind == decl.Kind {
			f.attributes[i] = VertexAttribute{Decl: decl, Data: data}
			return
		}
	}
	f.attributes[f.size] = VertexAttribute{Decl: decl, Data: data}
	f.size++
}

// AddFloats is a shortcut for tightly packed float32 attributes. The format
// keeps a view over values, so the slice must outlive the CreateVertexBuffer call.
func (f *VertexBufferFormat) AddFloats(kind AttributeKind, components uint8, values []float32) {
	var view []byte
	if len(values) > 0 {
		view = unsafe.Slice((*byte)(unsafe.Pointer(&values[0])), len(values)*4)
	}
	stride := uint32(components) * 4
	count := uint32(0)
	if components > 0 {
		count = uint32(len(values)) / uint32(components)
	}
	f.Add(
		AttributeDecl{Kind: kind, Type: ElementFloat32, Components: components},
		AttributeData{Stride: stride, Count: count, Data: view},
	)
}

// Size is the number of populated attributes.
func (f *VertexBufferFormat) Size() int {
	return f.size
}

// Attribute returns the i-th populated attribute in insertion order.
func (f *VertexBufferFormat) Attribute(i int) VertexAttribute {
	return f.attributes[i]
}

// Find returns the attribute for a kind, if present.
func (f *VertexBufferFormat) Find(kind AttributeKind) (VertexAttribute, bool) {
	for i := 0; i < f.size; i++ {
		if f.attributes[i].Decl.Kind == kind {
			return f.attributes[i], true
		}
	}
	return VertexAttribute{}, false
}

// VertexCount is the element count shared by every attribute, or the smallest
// one when the attributes disagree.
func (f *VertexBufferFormat) VertexCount() uint32 {
	if f.size == 0 {
		return 0
	}
	count := f.attributes[0].Data.Count
	for i := 1; i < f.size; i++ {
		if c := f.attributes[i].Data.Count; c < count {
			count = c
		}
	}
	return count
}
