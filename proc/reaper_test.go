package proc

import (
	"slices"
	"testing"
)

func TestReapSiblingsNoMatches(t *testing.T) {
	fake := newFakeInspector()

	Reaper{Ins: fake}.ReapSiblings("reaper", "pressure-vessel", nil)

	if events := fake.recorded(); len(events) != 0 {
		t.Errorf("expected no action without matches, got %v", events)
	}
}

func TestReapSiblingsKillsEscapedChildren(t *testing.T) {
	fake := newFakeInspector()
	fake.byName["reaper"] = []int{500}
	fake.parents[500] = 400
	fake.cmdlines[400] = "/usr/lib/pressure-vessel/bin/pv-adverb --subreaper"
	fake.descendants[500] = []int{501, 502}

	Reaper{Ins: fake}.ReapSiblings("reaper", "pressure-vessel", nil)

	events := fake.recorded()
	want := []string{"kill:501", "kill:502"}
	if !slices.Equal(events, want) {
		t.Errorf("expected forceful kills %v, got %v", want, events)
	}
}

func TestReapSiblingsIgnoresUnmarkedParents(t *testing.T) {
	fake := newFakeInspector()
	fake.byName["reaper"] = []int{500}
	fake.parents[500] = 400
	fake.cmdlines[400] = "/usr/bin/systemd --user"
	fake.descendants[500] = []int{501}

	Reaper{Ins: fake}.ReapSiblings("reaper", "pressure-vessel", nil)

	if events := fake.recorded(); len(events) != 0 {
		t.Errorf("expected no kills for unmarked parent, got %v", events)
	}
}

func TestReapSiblingsSkipsSessionTree(t *testing.T) {
	fake := newFakeInspector()
	fake.byName["reaper"] = []int{500}
	fake.parents[500] = 400
	fake.cmdlines[400] = "pressure-vessel-wrap --launcher"
	fake.descendants[500] = []int{501}

	Reaper{Ins: fake}.ReapSiblings("reaper", "pressure-vessel", []int{400})

	if events := fake.recorded(); len(events) != 0 {
		t.Errorf("expected no kills when parent belongs to the session tree, got %v", events)
	}
}

func TestReapSiblingsSkipsFailedLookups(t *testing.T) {
	fake := newFakeInspector()
	// 500 has no parent entry, 600 resolves fully.
	fake.byName["reaper"] = []int{500, 600}
	fake.parents[600] = 450
	fake.cmdlines[450] = "pressure-vessel-wrap"
	fake.descendants[600] = []int{601}

	Reaper{Ins: fake}.ReapSiblings("reaper", "pressure-vessel", nil)

	events := fake.recorded()
	want := []string{"kill:601"}
	if !slices.Equal(events, want) {
		t.Errorf("expected lookup failure to skip only that candidate, got %v", events)
	}
}
