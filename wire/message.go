// Copyright 2026 The midlc Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package wire

// Message is a node in the tree-structured message container: an explicit
// byte block (possibly empty) plus an ordered, possibly-empty
// list of child messages. A struct's own scalar/array/sequence/optional
// content lives flat in Bytes; only str, msg, and optional-of-(str|msg)
// fields create an actual child Message, one submsg slot each.
type Message struct {
	Bytes   []byte
	Submsgs []*Message
}

// NewMessage allocates a single Message sized exactly for nBytes bytes and
// nSubmsgs submessage slots. This is the "single allocation" step of
// serialize: every byte and slot a struct's encoding will ever touch is
// carved out up front, and Write only ever fills it in.
func NewMessage(nBytes, nSubmsgs int) *Message {
	return &Message{
		Bytes:   make([]byte, nBytes),
		Submsgs: make([]*Message, nSubmsgs),
	}
}

// Count returns the total number of nodes in the tree rooted at m.
func Count(root *Message) int {
	if root == nil {
		return 0
	}
	n := 0
	queue := []*Message{root}
	for len(queue) > 0 {
		m := queue[0]
		queue = queue[1:]
		n++
		queue = append(queue, m.Submsgs...)
	}
	return n
}

// Layout entry bit layout: bits [0,30) are the node's byte
// count, bit 30 marks that the node has at least one submsg, bit 31 marks
// that the node has a right sibling in its parent's child list.
const (
	lenMask       uint32 = 1<<30 - 1
	hasSubmsgsBit uint32 = 1 << 30
	hasSiblingBit uint32 = 1 << 31
)

// Serialize produces the breadth-first layout vector and the contiguous
// list of non-empty byte blocks for the tree rooted at root.
// An external transport is expected to carry both.
func Serialize(root *Message) (layout []uint32, blocks [][]byte, err error) {
	if root == nil {
		return nil, nil, ErrEmptyLayout
	}

	type queued struct {
		msg        *Message
		hasSibling bool
	}

	order := make([]queued, 0, 8)
	queue := []queued{{root, false}}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		order = append(order, n)

		children := n.msg.Submsgs
		for i, c := range children {
			queue = append(queue, queued{c, i < len(children)-1})
		}
	}

	layout = make([]uint32, len(order))
	for i, n := range order {
		l := len(n.msg.Bytes)
		if uint32(l) > lenMask {
			return nil, nil, ErrBlockTooLarge
		}
		entry := uint32(l)
		if len(n.msg.Submsgs) > 0 {
			entry |= hasSubmsgsBit
		}
		if n.hasSibling {
			entry |= hasSiblingBit
		}
		layout[i] = entry

		if l > 0 {
			blocks = append(blocks, n.msg.Bytes)
		}
	}

	return layout, blocks, nil
}

// DeserializeLayout is the inverse of Serialize: it reallocates a full tree
// of N = len(layout) nodes following the layout's bits, associating blocks
// to nodes in the same breadth-first order Serialize produced them in.
func DeserializeLayout(layout []uint32, blocks [][]byte) (*Message, error) {
	n := len(layout)
	if n == 0 {
		return nil, ErrEmptyLayout
	}
	if layout[n-1]&(hasSubmsgsBit|hasSiblingBit) != 0 {
		return nil, ErrTruncatedLayout
	}

	nodes := make([]*Message, n)
	blockIdx := 0
	for i, entry := range layout {
		l := int(entry & lenMask)
		m := &Message{}
		if l > 0 {
			if blockIdx >= len(blocks) {
				return nil, ErrBlockCountMismatch
			}
			b := blocks[blockIdx]
			if len(b) != l {
				return nil, ErrBlockCountMismatch
			}
			m.Bytes = b
			blockIdx++
		}
		nodes[i] = m
	}

	next := 1
	queue := []int{0}
	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]
		if layout[parent]&hasSubmsgsBit == 0 {
			continue
		}
		for {
			if next >= n {
				return nil, ErrTruncatedLayout
			}
			nodes[parent].Submsgs = append(nodes[parent].Submsgs, nodes[next])
			hasSibling := layout[next]&hasSiblingBit != 0
			queue = append(queue, next)
			next++
			if !hasSibling {
				break
			}
		}
	}

	if next != n {
		return nil, ErrTrailingLayout
	}
	if blockIdx != len(blocks) {
		return nil, ErrBlockCountMismatch
	}
	return nodes[0], nil
}
