package rhi

// UniformType is the declared type of a logical uniform.
type UniformType uint8

const (
	UniformFloat UniformType = iota
	UniformVec2
	UniformVec3
	UniformVec4
	UniformInt
	UniformMat3
	UniformMat4
	UniformSampler2D
	UniformSamplerCube
	// UniformBlock names a uniform block backed by a constant buffer.
	UniformBlock
)

func (t UniformType) String() string {
	switch t {
	case UniformFloat:
		return "float"
	case UniformVec2:
		return "vec2"
	case UniformVec3:
		return "vec3"
	case UniformVec4:
		return "vec4"
	case UniformInt:
		return "int"
	case UniformMat3:
		return "mat3"
	case UniformMat4:
		return "mat4"
	case UniformSampler2D:
		return "sampler2D"
	case UniformSamplerCube:
		return "samplerCube"
	case UniformBlock:
		return "block"
	}
	return "unknown"
}

// IsSampler reports whether the uniform is bound through BindTexture.
func (t UniformType) IsSampler() bool {
	return t == UniformSampler2D || t == UniformSamplerCube
}

// Components is the number of scalars one element of the type holds.
func (t UniformType) Components() int {
	switch t {
	case UniformFloat, UniformInt, UniformSampler2D, UniformSamplerCube:
		return 1
	case UniformVec2:
		return 2
	case UniformVec3:
		return 3
	case UniformVec4:
		return 4
	case UniformMat3:
		return 9
	case UniformMat4:
		return 16
	}
	return 0
}
