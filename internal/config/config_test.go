package config

import (
	"reflect"
	"testing"
)

func TestNew_ContainsPersistent(t *testing.T) {
	cfg := New()

	if !cfg.HasGroup(PersistentGroup) {
		t.Fatal("new configuration must contain the persistent group")
	}
	if cfg.GroupCount() != 1 {
		t.Errorf("GroupCount() = %d, want 1", cfg.GroupCount())
	}
	if cfg.TotalItems() != 0 {
		t.Errorf("TotalItems() = %d, want 0", cfg.TotalItems())
	}
}

func TestConfiguration_AddItem(t *testing.T) {
	cfg := New()

	cfg.AddItem("work", Item{Type: TypeAlias, Key: "ll", Value: "ls -la"})

	if !cfg.HasGroup("work") {
		t.Fatal("AddItem should lazily create the group")
	}
	if !cfg.HasItem("work", TypeAlias, "ll") {
		t.Fatal("item not found after AddItem")
	}
	got, _ := cfg.Value("work", TypeAlias, "ll")
	if got != "ls -la" {
		t.Errorf("Value = %q, want %q", got, "ls -la")
	}
}

func TestConfiguration_AddItem_Overwrites(t *testing.T) {
	cfg := New()

	cfg.AddItem("work", Item{Type: TypeEnvVar, Key: "EDITOR", Value: "vim"})
	cfg.AddItem("work", Item{Type: TypeEnvVar, Key: "EDITOR", Value: "nvim"})

	got, _ := cfg.Value("work", TypeEnvVar, "EDITOR")
	if got != "nvim" {
		t.Errorf("Value = %q, want overwritten %q", got, "nvim")
	}
	if len(cfg.Items("work", TypeEnvVar)) != 1 {
		t.Error("overwrite should not add a second item")
	}
}

func TestConfiguration_RemoveItem(t *testing.T) {
	cfg := New()
	cfg.AddItem("work", Item{Type: TypeAlias, Key: "gs", Value: "git status"})

	if !cfg.RemoveItem("work", TypeAlias, "gs") {
		t.Fatal("RemoveItem should report true for an existing item")
	}
	if cfg.HasItem("work", TypeAlias, "gs") {
		t.Error("item still present after removal")
	}
	if !cfg.HasGroup("work") {
		t.Error("removing the last item must keep the group")
	}

	if cfg.RemoveItem("work", TypeAlias, "gs") {
		t.Error("RemoveItem should report false for a missing item")
	}
	if cfg.RemoveItem("nope", TypeAlias, "gs") {
		t.Error("RemoveItem should report false for a missing group")
	}
}

func TestConfiguration_GroupOrdering(t *testing.T) {
	cfg := New()
	cfg.EnsureGroup("zeta")
	cfg.EnsureGroup("alpha")
	cfg.EnsureGroup("mid")

	want := []string{PersistentGroup, "alpha", "mid", "zeta"}
	if got := cfg.GroupNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("GroupNames() = %v, want %v", got, want)
	}

	regular := cfg.RegularGroups()
	if len(regular) != 3 {
		t.Fatalf("RegularGroups() returned %d groups, want 3", len(regular))
	}
	if regular[0].Name != "alpha" || regular[2].Name != "zeta" {
		t.Errorf("RegularGroups() not sorted: %v", regular)
	}
}

func TestConfiguration_RemoveGroup(t *testing.T) {
	cfg := New()
	cfg.EnsureGroup("work")

	if !cfg.RemoveGroup("work") {
		t.Fatal("RemoveGroup should report true for an existing group")
	}
	if cfg.HasGroup("work") {
		t.Error("group still present after removal")
	}
	if cfg.RemoveGroup("work") {
		t.Error("RemoveGroup should report false for a missing group")
	}
}

func TestConfiguration_RenameGroup(t *testing.T) {
	cfg := New()
	cfg.AddItem("old", Item{Type: TypeAlias, Key: "ll", Value: "ls -la"})

	if !cfg.RenameGroup("old", "new") {
		t.Fatal("RenameGroup failed")
	}
	if cfg.HasGroup("old") {
		t.Error("old name still present after rename")
	}
	g, ok := cfg.Group("new")
	if !ok {
		t.Fatal("new name missing after rename")
	}
	if g.Name != "new" {
		t.Errorf("group Name = %q, want %q", g.Name, "new")
	}
	if !cfg.HasItem("new", TypeAlias, "ll") {
		t.Error("items lost during rename")
	}

	if cfg.RenameGroup("missing", "other") {
		t.Error("RenameGroup should report false for a missing group")
	}
	cfg.EnsureGroup("taken")
	if cfg.RenameGroup("new", "taken") {
		t.Error("RenameGroup should report false when the target name is taken")
	}
}

func TestConfiguration_FindItems(t *testing.T) {
	cfg := New()
	cfg.AddItem(PersistentGroup, Item{Type: TypeAlias, Key: "gs", Value: "git status"})
	cfg.AddItem("work", Item{Type: TypeAlias, Key: "gst", Value: "git stash"})
	cfg.AddItem("work", Item{Type: TypeEnvVar, Key: "GOPATH", Value: "/go"})
	cfg.AddItem("home", Item{Type: TypeAlias, Key: "media", Value: "mpv"})

	t.Run("substring across groups", func(t *testing.T) {
		matches := cfg.FindItems(TypeAlias, "", "gs")
		if len(matches) != 2 {
			t.Fatalf("got %d matches, want 2: %v", len(matches), matches)
		}
		// Groups() order puts persistent first.
		if matches[0].Group != PersistentGroup || matches[0].Item.Key != "gs" {
			t.Errorf("first match = %+v, want persistent/gs", matches[0])
		}
		if matches[1].Group != "work" || matches[1].Item.Key != "gst" {
			t.Errorf("second match = %+v, want work/gst", matches[1])
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		matches := cfg.FindItems(TypeEnvVar, "", "gopath")
		if len(matches) != 1 || matches[0].Item.Key != "GOPATH" {
			t.Errorf("got %v, want GOPATH match", matches)
		}
	})

	t.Run("filtered by group", func(t *testing.T) {
		matches := cfg.FindItems("", "work", "")
		if len(matches) != 2 {
			t.Fatalf("got %d matches, want 2: %v", len(matches), matches)
		}
		// Type rendering order: aliases before env vars.
		if matches[0].Item.Type != TypeAlias || matches[1].Item.Type != TypeEnvVar {
			t.Errorf("matches not in type order: %v", matches)
		}
	})

	t.Run("no matches", func(t *testing.T) {
		if matches := cfg.FindItems(TypeFunction, "", "anything"); len(matches) != 0 {
			t.Errorf("got %v, want none", matches)
		}
	})
}

func TestGroup_Items_Sorted(t *testing.T) {
	g := NewGroup("test")
	g.Aliases["zz"] = "last"
	g.Aliases["aa"] = "first"
	g.Aliases["mm"] = "middle"

	items := g.Items(TypeAlias)
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	for i, want := range []string{"aa", "mm", "zz"} {
		if items[i].Key != want {
			t.Errorf("items[%d].Key = %q, want %q", i, items[i].Key, want)
		}
	}
}

func TestGroup_AllItems_TypeOrder(t *testing.T) {
	g := NewGroup("test")
	g.Functions["fn"] = "echo fn"
	g.EnvVars["EV"] = "1"
	g.Aliases["al"] = "ls"

	items := g.AllItems()
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	wantTypes := []ItemType{TypeAlias, TypeEnvVar, TypeFunction}
	for i, want := range wantTypes {
		if items[i].Type != want {
			t.Errorf("items[%d].Type = %q, want %q", i, items[i].Type, want)
		}
	}
}

func TestParseItemType(t *testing.T) {
	tests := []struct {
		in      string
		want    ItemType
		wantErr bool
	}{
		{"alias", TypeAlias, false},
		{"aliases", TypeAlias, false},
		{"env", TypeEnvVar, false},
		{"env_var", TypeEnvVar, false},
		{"env_vars", TypeEnvVar, false},
		{"function", TypeFunction, false},
		{"functions", TypeFunction, false},
		{"bogus", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseItemType(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseItemType(%q) succeeded, want error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseItemType(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseItemType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestItemType_Section(t *testing.T) {
	if TypeAlias.Section() != "aliases" {
		t.Errorf("alias section = %q", TypeAlias.Section())
	}
	if TypeEnvVar.Section() != "env_vars" {
		t.Errorf("env section = %q", TypeEnvVar.Section())
	}
	if TypeFunction.Section() != "functions" {
		t.Errorf("function section = %q", TypeFunction.Section())
	}
	if ItemType("bogus").Section() != "" {
		t.Error("unknown type should have empty section")
	}
	if ItemType("bogus").Valid() {
		t.Error("unknown type should not be valid")
	}
}
