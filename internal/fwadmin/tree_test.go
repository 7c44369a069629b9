// SPDX-License-Identifier: MPL-2.0

package fwadmin

import (
	"encoding/json"
	"slices"
	"testing"
)

func TestFlattenClients_VisitsEveryNodeOnce(t *testing.T) {
	t.Parallel()

	var roots []*clientNode
	if err := json.Unmarshal([]byte(clientTreeJSON), &roots); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	keep := collectClientNodes(roots)

	got := flattenClients(roots)
	if len(got) != len(keep) {
		t.Fatalf("flattened %d records, tree has %d nodes", len(got), len(keep))
	}

	seen := map[ID]int{}
	for _, c := range got {
		seen[c.ID]++
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("node %s visited %d times", id, n)
		}
	}

	for _, n := range keep {
		if n.Children != nil {
			t.Errorf("node %s still references its children after flattening", n.ID)
		}
	}
}

func TestFlatten_ParentBeforeChildren(t *testing.T) {
	t.Parallel()

	// Deep chain plus siblings: 1 -> (2 -> (3 -> 4), 5), 6
	leaf := &filesetNode{Fileset: Fileset{ID: "4", ParentID: "3"}}
	n3 := &filesetNode{Fileset: Fileset{ID: "3", ParentID: "2"}, Children: []*filesetNode{leaf}}
	n2 := &filesetNode{Fileset: Fileset{ID: "2", ParentID: "1"}, Children: []*filesetNode{n3}}
	n5 := &filesetNode{Fileset: Fileset{ID: "5", ParentID: "1"}}
	n1 := &filesetNode{Fileset: Fileset{ID: "1"}, Children: []*filesetNode{n2, n5}}
	n6 := &filesetNode{Fileset: Fileset{ID: "6"}}

	got := flattenFilesets([]*filesetNode{n1, n6})
	var ids []ID
	pos := map[ID]int{}
	for i, f := range got {
		ids = append(ids, f.ID)
		pos[f.ID] = i
	}
	if want := []ID{"1", "2", "3", "4", "5", "6"}; !slices.Equal(ids, want) {
		t.Fatalf("order = %v, want %v", ids, want)
	}
	for _, f := range got {
		if f.ParentID == "" {
			continue
		}
		if pos[f.ParentID] >= pos[f.ID] {
			t.Errorf("parent %s listed after child %s", f.ParentID, f.ID)
		}
	}
}

func TestFlatten_EmptyAndNil(t *testing.T) {
	t.Parallel()

	if got := flattenClients(nil); len(got) != 0 {
		t.Errorf("flattenClients(nil) = %v", got)
	}
	got := flattenClients([]*clientNode{nil, {ClientRecord: ClientRecord{ID: "1"}}})
	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("flattenClients with nil root = %v", got)
	}
}

func collectClientNodes(roots []*clientNode) []*clientNode {
	var out []*clientNode
	var walk func([]*clientNode)
	walk = func(ns []*clientNode) {
		for _, n := range ns {
			out = append(out, n)
			walk(n.Children)
		}
	}
	walk(roots)
	return out
}
