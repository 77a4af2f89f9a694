// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// fingerprint hashes an input vector. Settle uses it to skip nodes whose
// inputs have not changed since their previous evaluation.
//
func fingerprint(phase Phase, inputs []Value) uint64 {
	var buf [14]byte
	d := xxhash.New()
	buf[0] = byte(phase)
	_, _ = d.Write(buf[:1])
	for _, v := range inputs {
		binary.LittleEndian.PutUint32(buf[0:], v.bits)
		binary.LittleEndian.PutUint32(buf[4:], v.hiz)
		binary.LittleEndian.PutUint32(buf[8:], v.unk)
		buf[12] = v.width
		buf[13] = 0
		if v.burned {
			buf[13] = 1
		}
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

// guard tracks input fingerprints for one settle loop.
//
type guard struct {
	seen map[NodeID]uint64
}

func newGuard() *guard {
	return &guard{seen: make(map[NodeID]uint64)}
}

// changed records the fingerprint of n's inputs and reports whether it differs
// from the one recorded at n's previous evaluation. The first call for a node
// always reports a change.
func (g *guard) changed(n NodeID, h uint64) bool {
	prev, ok := g.seen[n]
	g.seen[n] = h
	return !ok || prev != h
}
