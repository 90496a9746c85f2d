package spec

import "testing"

func TestSpecCommand(t *testing.T) {
	s := Spec{Commands: []CommandSpec{{Name: "get"}, {Name: "mcp server"}}}
	if c, ok := s.Command("mcp server"); !ok || c.Name != "mcp server" {
		t.Fatalf("Command(mcp server)=%+v,%v", c, ok)
	}
	if _, ok := s.Command("mcp"); ok {
		t.Fatal("partial command path should not match")
	}
}
