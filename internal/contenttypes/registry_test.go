package contenttypes

import "testing"

func TestRegistry(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("load registry: %v", err)
	}

	if got := r.Default(); got != "markdown" {
		t.Errorf("default = %q, want markdown", got)
	}

	for _, id := range []string{"markdown", "plain", "html", "json"} {
		if !r.IsAllowed(id) {
			t.Errorf("%q not allowed", id)
		}
	}
	for _, id := range []string{"", "docx", "MARKDOWN"} {
		if r.IsAllowed(id) {
			t.Errorf("%q allowed, want rejected", id)
		}
	}

	list := r.List()
	if len(list) == 0 {
		t.Fatal("empty type list")
	}
	if list[0].ID != "markdown" {
		t.Errorf("first listed type = %q, want markdown (YAML order)", list[0].ID)
	}
}
