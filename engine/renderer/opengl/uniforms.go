package opengl

import (
	"github.com/spaghettifunk/phoenix/engine/core"
)

// activeUniform is what the driver reported for one active uniform or uniform
// block of a linked program.
type activeUniform struct {
	name     string
	program  uint32
	location int32
	size     int32
	typ      Enum
	// blocks only
	block      bool
	blockIndex uint32
	blockSize  int32
}

// uniformKey combines the name hash with the program id so every program gets
// its own key space in a single map.
func uniformKey(nameHash uint64, program uint32) uint64 {
	return core.HashCombine(nameHash, program)
}

// existingUniforms maps (uniform name, program) to the active uniform the
// driver reported at link time. Entries sharing a key are chained and told
// apart by their full name, so a hash collision is logged but never resolves
// to the wrong uniform.
type existingUniforms struct {
	entries map[uint64][]activeUniform
}

func newExistingUniforms() *existingUniforms {
	return &existingUniforms{entries: make(map[uint64][]activeUniform)}
}

// register stores u and returns its key.
func (e *existingUniforms) register(u activeUniform) uint64 {
	key := uniformKey(core.HashString(u.name), u.program)
	chain := e.entries[key]
	for i := range chain {
		if chain[i].program == u.program && chain[i].name == u.name {
			chain[i] = u
			return key
		}
	}
	if len(chain) > 0 {
		core.LogWarn("uniform key collision: %q (program %d) and %q (program %d) share key %#x",
			u.name, u.program, chain[0].name, chain[0].program, key)
	}
	e.entries[key] = append(chain, u)
	return key
}

// find looks up an active uniform by its precomputed name hash.
func (e *existingUniforms) find(name string, nameHash uint64, program uint32) (*activeUniform, bool) {
	chain := e.entries[uniformKey(nameHash, program)]
	for i := range chain {
		if chain[i].program == program && chain[i].name == name {
			return &chain[i], true
		}
	}
	return nil, false
}

// removeProgram drops every entry of program. keys are the keys returned by
// register for that program.
func (e *existingUniforms) removeProgram(program uint32, keys []uint64) {
	for _, key := range keys {
		chain := e.entries[key]
		kept := chain[:0]
		for _, u := range chain {
			if u.program != program {
				kept = append(kept, u)
			}
		}
		if len(kept) == 0 {
			delete(e.entries, key)
			continue
		}
		e.entries[key] = kept
	}
}

func (e *existingUniforms) len() int {
	n := 0
	for _, chain := range e.entries {
		n += len(chain)
	}
	return n
}
