// Copyright 2024 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package org

// A Cursor describes a node encountered during [Walk].
type Cursor struct {
	doc    *Document
	node   NodeID
	parent NodeID
	depth  int
}

// ID returns the handle of the current node.
func (c *Cursor) ID() NodeID {
	return c.node
}

// Node returns the current node.
func (c *Cursor) Node() *Node {
	return c.doc.Node(c.node)
}

// Parent returns the handle of the parent of the current node
// as reached by the walk,
// or [NoNode] for the node the walk started at.
func (c *Cursor) Parent() NodeID {
	return c.parent
}

// Depth returns the number of ancestors between the current node
// and the node the walk started at.
func (c *Cursor) Depth() int {
	return c.depth
}

// WalkOptions is the set of parameters to [Walk].
type WalkOptions struct {
	// If Pre is not nil, it is called for each node before the node's children are traversed (pre-order).
	// If Pre returns false, no children are traversed, and Post is not called for that node.
	Pre func(c *Cursor) bool
	// If Post is not nil, it is called for each node after the node's children are traversed (post-order).
	// If Post returns false, traversal is terminated and Walk returns immediately.
	Post func(c *Cursor) bool

	// If Children is not nil, it will be used instead of [Document.Children].
	Children func(d *Document, id NodeID) []NodeID
}

// Walk traverses the tree rooted at id,
// calling [WalkOptions.Pre] and [WalkOptions.Post].
func Walk(d *Document, id NodeID, opts *WalkOptions) {
	type walkFrame struct {
		node   NodeID
		parent NodeID
		depth  int
		post   bool
	}

	children := (*Document).Children
	if opts.Children != nil {
		children = opts.Children
	}

	stack := []walkFrame{{node: id, parent: NoNode}}
	cursor := &Cursor{doc: d}
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cursor.node = curr.node
		cursor.parent = curr.parent
		cursor.depth = curr.depth
		if curr.post {
			if opts.Post != nil && !opts.Post(cursor) {
				break
			}
			continue
		}

		if opts.Pre != nil && !opts.Pre(cursor) {
			continue
		}
		curr.post = true
		stack = append(stack, curr)
		kids := children(d, curr.node)
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, walkFrame{
				node:   kids[i],
				parent: curr.node,
				depth:  curr.depth + 1,
			})
		}
	}
}
