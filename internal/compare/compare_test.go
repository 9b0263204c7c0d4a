package compare

import (
	"reflect"
	"testing"

	"playlist-archiver/internal/archive"
)

func set(videos ...archive.Video) *archive.VideoSet {
	s := &archive.VideoSet{}
	for _, v := range videos {
		s.Add(v)
	}
	return s
}

func ids(videos []archive.Video) []string {
	out := make([]string, 0, len(videos))
	for _, v := range videos {
		out = append(out, v.ID)
	}
	return out
}

func vid(id, channel string) archive.Video {
	return archive.NewVideo(id, "title "+id, channel)
}

func TestVideosDisjointSets(t *testing.T) {
	old := set(vid("a1", "C"), vid("c1", "C"), vid("a2", "C"), vid("c2", archive.UnknownChannel))
	curr := set(vid("b1", "C"), vid("c2", archive.UnknownChannel), vid("c1", "Renamed"), vid("b2", "C"))

	got := Videos(old, curr)
	if want := []string{"a1", "a2"}; !reflect.DeepEqual(ids(got.Removed), want) {
		t.Fatalf("removed got %v want %v", ids(got.Removed), want)
	}
	if want := []string{"b1", "b2"}; !reflect.DeepEqual(ids(got.Added), want) {
		t.Fatalf("added got %v want %v", ids(got.Added), want)
	}
	if len(got.Changed) != 0 {
		t.Fatalf("changed should be empty, got %+v", got.Changed)
	}
}

func TestVideosAvailabilityFlip(t *testing.T) {
	old := set(vid("x", "ChanA"), vid("y", archive.UnknownChannel), vid("z", "ChanZ"))
	curr := set(vid("z", "ChanZ"), vid("y", "ChanY"), vid("x", archive.UnknownChannel))

	got := Videos(old, curr)
	if len(got.Added) != 0 || len(got.Removed) != 0 {
		t.Fatalf("flips must not be added/removed: %+v", got)
	}
	if len(got.Changed) != 2 {
		t.Fatalf("expected 2 changes, got %d", len(got.Changed))
	}
	// old order: x then y
	first, second := got.Changed[0], got.Changed[1]
	if first.Old.ID != "x" || first.Old.IsUnavailable() || !first.New.IsUnavailable() {
		t.Fatalf("first change got %+v", first)
	}
	if second.Old.ID != "y" || !second.Old.IsUnavailable() || second.New.IsUnavailable() {
		t.Fatalf("second change got %+v", second)
	}
}

func TestVideosIdentical(t *testing.T) {
	build := func() *archive.VideoSet {
		return set(vid("a", "C"), vid("b", archive.UnknownChannel), vid("c", "D"))
	}
	x := build()
	for name, got := range map[string]Result{
		"same_value": Videos(x, x),
		"copies":     Videos(build(), build()),
	} {
		t.Run(name, func(t *testing.T) {
			if !got.Empty() {
				t.Fatalf("expected no changes, got %+v", got)
			}
		})
	}
}

func TestVideosEmptySides(t *testing.T) {
	full := set(vid("a", "C"), vid("b", "C"))
	empty := set()

	t.Run("empty_old", func(t *testing.T) {
		got := Videos(empty, full)
		if !reflect.DeepEqual(ids(got.Added), []string{"a", "b"}) || len(got.Removed) != 0 || len(got.Changed) != 0 {
			t.Fatalf("got %+v", got)
		}
	})
	t.Run("empty_new", func(t *testing.T) {
		got := Videos(full, empty)
		if !reflect.DeepEqual(ids(got.Removed), []string{"a", "b"}) || len(got.Added) != 0 || len(got.Changed) != 0 {
			t.Fatalf("got %+v", got)
		}
	})
	t.Run("both_empty", func(t *testing.T) {
		if got := Videos(empty, empty); !got.Empty() {
			t.Fatalf("got %+v", got)
		}
	})
}

func TestVideosSymmetricChangedSet(t *testing.T) {
	a := set(vid("p", "C"), vid("q", archive.UnknownChannel), vid("r", "C"), vid("s", "C"))
	b := set(vid("s", archive.UnknownChannel), vid("q", "C"), vid("r", "C"), vid("t", "C"))

	ab := Videos(a, b)
	ba := Videos(b, a)

	changedIDs := func(r Result) map[string]Change {
		m := make(map[string]Change)
		for _, c := range r.Changed {
			m[c.Old.ID] = c
		}
		return m
	}
	mab, mba := changedIDs(ab), changedIDs(ba)
	if len(mab) != 2 || len(mab) != len(mba) {
		t.Fatalf("changed sets differ: %v vs %v", mab, mba)
	}
	for id, c := range mab {
		r, ok := mba[id]
		if !ok {
			t.Fatalf("id %s missing from reverse diff", id)
		}
		if c.Old.IsUnavailable() != r.New.IsUnavailable() || c.New.IsUnavailable() != r.Old.IsUnavailable() {
			t.Fatalf("pair order not reversed for %s", id)
		}
	}
	if !reflect.DeepEqual(ids(ab.Added), ids(ba.Removed)) || !reflect.DeepEqual(ids(ab.Removed), ids(ba.Added)) {
		t.Fatalf("added/removed should swap: %+v / %+v", ab, ba)
	}
}

func TestVideosDoesNotMutateInputs(t *testing.T) {
	old := set(vid("a", "C"), vid("b", "C"))
	curr := set(vid("b", "C"), vid("c", "C"))
	_ = Videos(old, curr)
	if !reflect.DeepEqual(old.Keys(), []string{"a", "b"}) || !reflect.DeepEqual(curr.Keys(), []string{"b", "c"}) {
		t.Fatalf("inputs modified: %v %v", old.Keys(), curr.Keys())
	}
}

func TestArchivesMutualOnlyInOldOrder(t *testing.T) {
	old := &archive.Archive{Time: "2023-01-15 Sun 14:30:00"}
	curr := &archive.Archive{Time: "2023-02-01 Wed 09:00:00"}
	for _, id := range []string{"P3", "OnlyOld", "P1"} {
		p := archive.NewPlaylist(id)
		p.AddVideo(vid("v1", "C"))
		old.AddPlaylist(p)
	}
	for _, id := range []string{"P1", "OnlyNew", "P3"} {
		p := archive.NewPlaylist(id)
		p.AddVideo(vid("v2", "C"))
		curr.AddPlaylist(p)
	}

	diffs := Archives(old, curr)
	if len(diffs) != 2 || diffs[0].ID != "P3" || diffs[1].ID != "P1" {
		t.Fatalf("expected P3, P1 in old order, got %+v", diffs)
	}
	if diffs[1].Link != "https://www.youtube.com/playlist?list=P1" {
		t.Fatalf("link got %q", diffs[1].Link)
	}
	a, r, c := Totals(diffs)
	if a != 2 || r != 2 || c != 0 {
		t.Fatalf("totals got %d/%d/%d", a, r, c)
	}
}

func TestArchivesNoMutualPlaylists(t *testing.T) {
	old := &archive.Archive{}
	old.AddPlaylist(archive.NewPlaylist("A"))
	curr := &archive.Archive{}
	curr.AddPlaylist(archive.NewPlaylist("B"))
	if diffs := Archives(old, curr); len(diffs) != 0 {
		t.Fatalf("expected no diffs, got %+v", diffs)
	}
}

func TestScenarioAddRemove(t *testing.T) {
	old := set(archive.NewVideo("v1", "Song A", "ChanA"))
	curr := set(archive.NewVideo("v2", "Song B", "ChanB"))
	got := Videos(old, curr)
	if !reflect.DeepEqual(ids(got.Added), []string{"v2"}) || !reflect.DeepEqual(ids(got.Removed), []string{"v1"}) || len(got.Changed) != 0 {
		t.Fatalf("got %+v", got)
	}
}

func TestScenarioPrivatised(t *testing.T) {
	old := set(archive.NewVideo("v1", "Song A", "ChanA"))
	curr := set(archive.NewVideo("v1", "Song A", archive.UnknownChannel))
	got := Videos(old, curr)
	if len(got.Changed) != 1 || got.Changed[0].Old.Channel != "ChanA" || got.Changed[0].New.Channel != archive.UnknownChannel {
		t.Fatalf("got %+v", got)
	}
}
