package family

import "testing"

func TestSelectRootEarliestBirth(t *testing.T) {
	members := []Member{
		{ID: "c", BirthDate: "1920-01-01", FatherID: "a"},
		{ID: "a", BirthDate: "1895-06-02"},
		{ID: "b", BirthDate: "1890-03-01"},
	}
	root := SelectRoot(members)
	if root == nil || root.ID != "b" {
		t.Fatalf("root = %v, want b", root)
	}
}

func TestSelectRootTieKeepsListOrder(t *testing.T) {
	members := []Member{
		{ID: "first", BirthDate: "1900"},
		{ID: "second", BirthDate: "1900"},
	}
	if root := SelectRoot(members); root.ID != "first" {
		t.Errorf("root = %s, want first (list order on equal dates)", root.ID)
	}
}

func TestSelectRootNoDatesFallsBackToListOrder(t *testing.T) {
	members := []Member{
		{ID: "x", FatherID: "ghost"},
		{ID: "y"},
		{ID: "z"},
	}
	if root := SelectRoot(members); root.ID != "y" {
		t.Errorf("root = %s, want y (first candidate)", root.ID)
	}
}

func TestSelectRootNoCandidates(t *testing.T) {
	members := []Member{
		{ID: "a", FatherID: "b"},
		{ID: "b", FatherID: "a"},
	}
	if root := SelectRoot(members); root != nil {
		t.Errorf("root = %v, want nil (multi-tree fallback)", root)
	}
}

func TestSelectRootEmpty(t *testing.T) {
	if root := SelectRoot(nil); root != nil {
		t.Errorf("root = %v, want nil", root)
	}
}

func TestSelectRootUnparsableDateTreatedAsUnknown(t *testing.T) {
	members := []Member{
		{ID: "a", BirthDate: "unknown"},
		{ID: "b", BirthDate: "1901"},
	}
	if root := SelectRoot(members); root.ID != "b" {
		t.Errorf("root = %s, want b (only parsable date)", root.ID)
	}
}
