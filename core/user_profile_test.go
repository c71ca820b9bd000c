package core

import (
	"reflect"
	"testing"
)

func TestUserProfile_AddSearch_RollingHistory(t *testing.T) {
	p := NewUserProfile("alice", "1234")

	for _, title := range []string{"A", "B", "C", "D", "E"} {
		p.AddSearch(title)
	}
	if len(p.Searches) != MaxSearchHistory {
		t.Fatalf("history length = %d, want %d", len(p.Searches), MaxSearchHistory)
	}

	// 第 6 次检索淘汰最旧的 A
	p.AddSearch("F")
	want := []string{"B", "C", "D", "E", "F"}
	if !reflect.DeepEqual(p.Searches, want) {
		t.Errorf("history = %v, want %v", p.Searches, want)
	}
}

func TestUserProfile_LastSearch(t *testing.T) {
	p := NewUserProfile("alice", "1234")

	if _, ok := p.LastSearch(); ok {
		t.Error("empty history should report ok=false")
	}

	p.AddSearch("A")
	p.AddSearch("B")
	if got, ok := p.LastSearch(); !ok || got != "B" {
		t.Errorf("LastSearch = (%q, %v), want (B, true)", got, ok)
	}
}

func TestUserProfile_DuplicateSearches(t *testing.T) {
	// 重复检索同一条目不去重：历史是检索流水，不是集合
	p := NewUserProfile("alice", "1234")
	p.AddSearch("A")
	p.AddSearch("A")
	if len(p.Searches) != 2 {
		t.Errorf("history = %v, want two entries", p.Searches)
	}
}
