package project

import (
	"hash/fnv"

	"github.com/utkarsh5026/projsim/triangular"
)

// taskStream maps a task ID to its stream number. Keying streams by ID rather than by position
// keeps a task's samples stable when tasks are reordered, added or removed.
func taskStream(id string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(id))
	return h.Sum64()
}

func taskSource(seed uint64, id string) triangular.Source {
	return triangular.NewSource(seed, taskStream(id))
}
