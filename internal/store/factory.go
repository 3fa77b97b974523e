package store

import "fmt"

// Kind names one of the four backend implementations, selected once at
// startup — never per-request.
type Kind string

const (
	KindHashMap  Kind = "hashmap"
	KindVec      Kind = "vec"
	KindHybrid   Kind = "hybrid"
	KindFullHash Kind = "fullhash"
)

// Build constructs the backend named by kind from entries, mirroring
// the teacher's memtable.FactoryFromConfig switch over a config string.
func Build(kind Kind, entries []Entry) (Store, error) {
	switch kind {
	case "", KindHashMap:
		return NewHashMapStore(entries), nil
	case KindVec:
		return NewVecStore(entries), nil
	case KindHybrid:
		return NewHybridStore(entries), nil
	case KindFullHash:
		return NewFullHashStore(entries), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %q", kind)
	}
}
