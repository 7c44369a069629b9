// SPDX-License-Identifier: MPL-2.0

package fwadmin

type (
	// clientNode is a --listClients entry: a ClientRecord with nested children.
	clientNode struct {
		ClientRecord
		Children []*clientNode `json:"children"`
	}

	// filesetNode is a --listFilesets entry: a Fileset with nested children.
	filesetNode struct {
		Fileset
		Children []*filesetNode `json:"children"`
	}
)

// flatten walks a forest depth-first, parent before children, and returns one
// record per node. detach must return the node's children and clear them on the
// node, so no node still references its subtree once its record is built.
func flatten[N any, R any](roots []*N, detach func(*N) []*N, record func(*N) R) []R {
	var out []R
	stack := make([]*N, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, roots[i])
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == nil {
			continue
		}
		children := detach(n)
		out = append(out, record(n))
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return out
}

func flattenClients(roots []*clientNode) []ClientRecord {
	return flatten(roots,
		func(n *clientNode) []*clientNode {
			c := n.Children
			n.Children = nil
			return c
		},
		func(n *clientNode) ClientRecord { return n.ClientRecord },
	)
}

func flattenFilesets(roots []*filesetNode) []Fileset {
	return flatten(roots,
		func(n *filesetNode) []*filesetNode {
			c := n.Children
			n.Children = nil
			return c
		},
		func(n *filesetNode) Fileset { return n.Fileset },
	)
}
