package hierarchy

import (
	"context"
	"testing"

	"docstash/internal/domain/models"
)

func folderNames(nodes []*models.FolderNode) []string {
	names := make([]string, 0, len(nodes))
	for _, n := range nodes {
		names = append(names, n.Name)
	}
	return names
}

func TestGetOwnerTree(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	work := env.mustCreateFolder(t, ownerA, "Work", nil)
	env.mustCreateFolder(t, ownerA, "Personal", nil)
	reports := env.mustCreateFolder(t, ownerA, "Reports", &work.ID)
	q3 := env.mustCreateFolder(t, ownerA, "Q3", &reports.ID)

	env.mustCreateDocument(t, ownerA, "todo", nil)
	env.mustCreateDocument(t, ownerA, "summary", &reports.ID)
	env.mustCreateDocument(t, ownerA, "numbers", &q3.ID)

	tree, err := env.tree.GetOwnerTree(ctx, ownerA)
	if err != nil {
		t.Fatalf("get tree: %v", err)
	}

	// Roots in creation order
	got := folderNames(tree.Folders)
	want := []string{"Work", "Personal"}
	if len(got) != len(want) {
		t.Fatalf("roots = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("roots = %v, want %v", got, want)
		}
	}

	// Unfiled documents sit beside the roots
	if len(tree.Documents) != 1 || tree.Documents[0].Title != "todo" {
		t.Errorf("unfiled documents = %v, want just todo", tree.Documents)
	}

	// Work > Reports > Q3 nesting
	workNode := tree.Folders[0]
	if len(workNode.Folders) != 1 || workNode.Folders[0].Name != "Reports" {
		t.Fatalf("Work children = %v", folderNames(workNode.Folders))
	}
	reportsNode := workNode.Folders[0]
	if len(reportsNode.Documents) != 1 || reportsNode.Documents[0].Title != "summary" {
		t.Errorf("Reports documents = %v", reportsNode.Documents)
	}
	if len(reportsNode.Folders) != 1 || reportsNode.Folders[0].Name != "Q3" {
		t.Fatalf("Reports children = %v", folderNames(reportsNode.Folders))
	}
	q3Node := reportsNode.Folders[0]
	if len(q3Node.Documents) != 1 || q3Node.Documents[0].Title != "numbers" {
		t.Errorf("Q3 documents = %v", q3Node.Documents)
	}

	personalNode := tree.Folders[1]
	if len(personalNode.Folders) != 0 || len(personalNode.Documents) != 0 {
		t.Errorf("Personal is not empty: %d folders, %d documents",
			len(personalNode.Folders), len(personalNode.Documents))
	}
}

func TestGetOwnerTreeEmpty(t *testing.T) {
	env := newTestEnv(t)

	tree, err := env.tree.GetOwnerTree(context.Background(), ownerA)
	if err != nil {
		t.Fatalf("get tree: %v", err)
	}
	if tree.Folders == nil || tree.Documents == nil {
		t.Error("empty tree has nil slices")
	}
	if len(tree.Folders) != 0 || len(tree.Documents) != 0 {
		t.Errorf("empty tree has %d folders, %d documents", len(tree.Folders), len(tree.Documents))
	}
}

func TestGetOwnerTreeIsolation(t *testing.T) {
	env := newTestEnv(t)

	env.mustCreateFolder(t, ownerA, "Mine", nil)
	env.mustCreateFolder(t, ownerB, "Theirs", nil)
	env.mustCreateDocument(t, ownerB, "their doc", nil)

	tree, err := env.tree.GetOwnerTree(context.Background(), ownerA)
	if err != nil {
		t.Fatalf("get tree: %v", err)
	}
	if len(tree.Folders) != 1 || tree.Folders[0].Name != "Mine" {
		t.Errorf("roots = %v, want just Mine", folderNames(tree.Folders))
	}
	if len(tree.Documents) != 0 {
		t.Errorf("unfiled documents = %v, want none", tree.Documents)
	}
}

func TestGetOwnerTreeCorruptedCycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.mustCreateFolder(t, ownerA, "Healthy", nil)

	// Plant a two-folder parent cycle directly in the store. Neither
	// folder is a root, so the pair is unreachable from the root set; the
	// projection must terminate and still render the healthy branch.
	a := env.mustCreateFolder(t, ownerA, "CycleA", nil)
	b := env.mustCreateFolder(t, ownerA, "CycleB", &a.ID)
	env.folderRepo.folders[a.ID].ParentID = &b.ID

	tree, err := env.tree.GetOwnerTree(ctx, ownerA)
	if err != nil {
		t.Fatalf("get tree: %v", err)
	}

	got := folderNames(tree.Folders)
	if len(got) != 1 || got[0] != "Healthy" {
		t.Errorf("roots = %v, want just Healthy", got)
	}
}
