package application

import (
	"strconv"
	"strings"
	"sync"
	"testing"

	"counter-state/state/counters/domain"
)

// seqIDs gera ids previsíveis: c1, c2, ...
func seqIDs() IDFunc {
	n := 0
	return func() domain.CounterID {
		n++
		return "c" + strconv.Itoa(n)
	}
}

func newTestStore(opts ...StoreOption) *Store {
	return NewStore(append([]StoreOption{WithIDFunc(seqIDs())}, opts...)...)
}

func TestStore_InitialState(t *testing.T) {
	s := NewStore()
	st := s.Snapshot()

	if len(st.Counters) != 0 {
		t.Fatalf("expected empty counters, got %d", len(st.Counters))
	}
	if st.Prefs != domain.DefaultPrefs() {
		t.Fatalf("expected default prefs, got %+v", st.Prefs)
	}
	if !s.CanAdd() {
		t.Fatalf("expected CanAdd=true")
	}
	if s.TotalSum() != 0 {
		t.Fatalf("expected total 0, got %d", s.TotalSum())
	}
}

func TestStore_AddTrimsAndRejectsInvalidNames(t *testing.T) {
	s := newTestStore()

	s.Add("")
	s.Add("   ")
	s.Add("This name is way too long for the counter limit")
	if n := len(s.Snapshot().Counters); n != 0 {
		t.Fatalf("expected invalid adds to be no-op, got %d counters", n)
	}

	s.Add("  Trimmed  ")
	st := s.Snapshot()
	if len(st.Counters) != 1 {
		t.Fatalf("expected 1 counter, got %d", len(st.Counters))
	}
	c := st.Counters[0]
	if c.Name != "Trimmed" || c.Value != 0 || c.ID == "" {
		t.Fatalf("unexpected counter %+v", c)
	}
}

func TestStore_AddRespectsMaxCounters(t *testing.T) {
	s := NewStore()
	for i := 1; i <= 25; i++ {
		s.Add("Counter " + strconv.Itoa(i))
		if n := len(s.Snapshot().Counters); n > domain.MaxCounters {
			t.Fatalf("expected at most %d counters, got %d", domain.MaxCounters, n)
		}
	}

	st := s.Snapshot()
	if len(st.Counters) != domain.MaxCounters {
		t.Fatalf("expected %d counters, got %d", domain.MaxCounters, len(st.Counters))
	}
	if s.CanAdd() {
		t.Fatalf("expected CanAdd=false at the limit")
	}
	if last := st.Counters[len(st.Counters)-1].Name; last != "Counter 20" {
		t.Fatalf("expected 21st+ adds to be dropped, last is %q", last)
	}

	seen := map[string]bool{}
	for _, c := range st.Counters {
		if seen[c.ID] {
			t.Fatalf("duplicate id %q", c.ID)
		}
		seen[c.ID] = true
	}
}

func TestStore_AddSkipsCollidingIDs(t *testing.T) {
	ids := []string{"a", "a", "b"}
	s := NewStore(WithIDFunc(func() domain.CounterID {
		id := ids[0]
		ids = ids[1:]
		return id
	}))

	s.Add("One")
	s.Add("Two")

	st := s.Snapshot()
	if st.Counters[0].ID != "a" || st.Counters[1].ID != "b" {
		t.Fatalf("expected ids a,b, got %q,%q", st.Counters[0].ID, st.Counters[1].ID)
	}
}

func TestStore_IncrementDecrementStayInBounds(t *testing.T) {
	s := newTestStore()
	s.Add("Test Counter")
	id := s.Snapshot().Counters[0].ID

	for range 25 {
		s.Increment(id)
	}
	if c, _ := s.Counter(id); c.Value != domain.MaxValue {
		t.Fatalf("expected %d after 25 increments, got %d", domain.MaxValue, c.Value)
	}

	for range 25 {
		s.Decrement(id)
	}
	if c, _ := s.Counter(id); c.Value != domain.MinValue {
		t.Fatalf("expected %d after 25 decrements, got %d", domain.MinValue, c.Value)
	}

	for range 5 {
		s.Decrement(id)
	}
	if c, _ := s.Counter(id); c.Value != 0 {
		t.Fatalf("expected 0, got %d", c.Value)
	}
}

func TestStore_UnknownIDsAreNoOps(t *testing.T) {
	s := newTestStore()
	s.Add("Counter 1")
	s.Add("Counter 2")
	before := s.Snapshot()

	s.Increment("invalid-id")
	s.Decrement("invalid-id")
	s.Rename("invalid-id", "New Name")
	s.Remove("invalid-id")

	after := s.Snapshot()
	if len(after.Counters) != len(before.Counters) {
		t.Fatalf("expected %d counters, got %d", len(before.Counters), len(after.Counters))
	}
	for i := range before.Counters {
		if after.Counters[i] != before.Counters[i] {
			t.Fatalf("expected %+v, got %+v", before.Counters[i], after.Counters[i])
		}
	}
}

func TestStore_Rename(t *testing.T) {
	s := newTestStore()
	s.Add("Original Name")
	id := s.Snapshot().Counters[0].ID

	s.Rename(id, "")
	s.Rename(id, "   ")
	s.Rename(id, "This name is way too long for the counter limit")
	if c, _ := s.Counter(id); c.Name != "Original Name" {
		t.Fatalf("expected original name kept, got %q", c.Name)
	}

	s.Rename(id, "  New Name  ")
	if c, _ := s.Counter(id); c.Name != "New Name" {
		t.Fatalf("expected New Name, got %q", c.Name)
	}
}

func TestStore_RemoveKeepsOrder(t *testing.T) {
	s := newTestStore()
	s.Add("Counter 1")
	s.Add("Counter 2")
	s.Add("Counter 3")
	held := s.Snapshot()

	s.Remove(held.Counters[1].ID)

	st := s.Snapshot()
	if len(st.Counters) != 2 || st.Counters[0].Name != "Counter 1" || st.Counters[1].Name != "Counter 3" {
		t.Fatalf("unexpected counters after remove: %+v", st.Counters)
	}
	// snapshot anterior não muda
	if len(held.Counters) != 3 || held.Counters[1].Name != "Counter 2" {
		t.Fatalf("expected earlier snapshot untouched, got %+v", held.Counters)
	}
}

func TestStore_TotalSum(t *testing.T) {
	s := newTestStore()
	s.Add("A")
	s.Add("B")
	st := s.Snapshot()
	s.Increment(st.Counters[0].ID)
	s.Increment(st.Counters[1].ID)
	s.Increment(st.Counters[1].ID)

	if got := s.TotalSum(); got != 3 {
		t.Fatalf("expected total 3, got %d", got)
	}
}

func TestStore_HydrateMergesPrefs(t *testing.T) {
	s := newTestStore()
	s.SetSearch("abc")

	by := domain.SortByValue
	s.Hydrate(domain.HydratePayload{Prefs: &domain.PrefsPatch{SortBy: &by}})

	p := s.Prefs()
	if p.SortBy != domain.SortByValue {
		t.Fatalf("expected sortBy=value, got %q", p.SortBy)
	}
	if p.Search != "abc" || p.SortDir != domain.SortAsc || p.FilterMode != domain.FilterNone {
		t.Fatalf("expected other prefs preserved, got %+v", p)
	}
}

func TestStore_HydrateReplacesCounters(t *testing.T) {
	s := newTestStore()
	s.Add("Old")

	in := []domain.Counter{{ID: "1", Name: "Hydrated Counter", Value: 5}}
	s.Hydrate(domain.HydratePayload{Counters: &in})

	st := s.Snapshot()
	if len(st.Counters) != 1 || st.Counters[0] != in[0] {
		t.Fatalf("expected %+v, got %+v", in, st.Counters)
	}

	// sem counters no payload, a lista fica
	s.Hydrate(domain.HydratePayload{})
	if len(s.Snapshot().Counters) != 1 {
		t.Fatalf("expected counters untouched by empty hydrate")
	}
}

func TestStore_HydrateSanitizesCorruptCounters(t *testing.T) {
	s := newTestStore()

	in := []domain.Counter{
		{ID: "a", Name: "  Alpha ", Value: 99},
		{ID: "b", Name: "   ", Value: 1},
		{ID: "a", Name: "Dup", Value: 1},
		{ID: "", Name: "NoID", Value: -4},
	}
	for i := range 30 {
		in = append(in, domain.Counter{ID: "x" + strconv.Itoa(i), Name: "X", Value: 1})
	}
	s.Hydrate(domain.HydratePayload{Counters: &in})

	st := s.Snapshot()
	if len(st.Counters) != domain.MaxCounters {
		t.Fatalf("expected %d counters, got %d", domain.MaxCounters, len(st.Counters))
	}
	if c := st.Counters[0]; c.ID != "a" || c.Name != "Alpha" || c.Value != domain.MaxValue {
		t.Fatalf("unexpected first counter %+v", c)
	}
	if c := st.Counters[1]; c.Name != "NoID" || c.ID == "" || c.Value != 0 {
		t.Fatalf("unexpected second counter %+v", c)
	}
}

func TestStore_HydrateDoesNotAliasInput(t *testing.T) {
	s := newTestStore()
	in := []domain.Counter{{ID: "1", Name: "A", Value: 1}}
	s.Hydrate(domain.HydratePayload{Counters: &in})

	in[0].Value = 7
	if c, _ := s.Counter("1"); c.Value != 1 {
		t.Fatalf("expected store isolated from caller slice, got %d", c.Value)
	}
}

func TestStore_PrefActions(t *testing.T) {
	s := newTestStore()

	s.SetSort(domain.SortByValue, domain.SortDesc)
	p := s.Prefs()
	if p.SortBy != domain.SortByValue || p.SortDir != domain.SortDesc {
		t.Fatalf("unexpected sort prefs %+v", p)
	}
	if p.SortingEnabled {
		t.Fatalf("expected sortingEnabled untouched in SortAlways mode")
	}

	s.SetFilter(domain.FilterGreater, nil)
	p = s.Prefs()
	if p.FilterMode != domain.FilterGreater || p.FilterX == nil || *p.FilterX != 0 {
		t.Fatalf("expected gt with x=0, got %+v", p)
	}

	x := 4
	s.SetFilter(domain.FilterLess, &x)
	if p = s.Prefs(); p.FilterMode != domain.FilterLess || *p.FilterX != 4 {
		t.Fatalf("expected lt 4, got %+v", p)
	}

	s.SetFilter(domain.FilterNone, &x)
	if p = s.Prefs(); p.FilterMode != domain.FilterNone || p.FilterX != nil {
		t.Fatalf("expected none with null x, got %+v", p)
	}

	s.SetFilter(domain.FilterMode("between"), &x)
	if p = s.Prefs(); p.FilterMode != domain.FilterNone {
		t.Fatalf("expected unknown mode ignored, got %+v", p)
	}

	s.SetSearch("bet")
	s.SetFilter(domain.FilterGreater, &x)
	s.ClearFilters()
	p = s.Prefs()
	if p.FilterMode != domain.FilterNone || p.FilterX != nil || p.Search != "" {
		t.Fatalf("expected cleared filters, got %+v", p)
	}
	if p.SortBy != domain.SortByValue {
		t.Fatalf("expected sort kept after clear, got %q", p.SortBy)
	}
}

func TestStore_SubscribersSeeEveryCommand(t *testing.T) {
	s := newTestStore()

	var got []domain.Mutation
	var lastLen int
	unsubscribe := s.Subscribe(func(m domain.Mutation, st domain.RootState) {
		got = append(got, m)
		lastLen = len(st.Counters)
	})

	s.Add("A")
	s.Add("")
	s.SetSort(domain.SortByName, domain.SortDesc)

	if len(got) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(got))
	}
	if got[0].Type != domain.CmdAdd || got[0].Payload != "A" {
		t.Fatalf("unexpected first mutation %+v", got[0])
	}
	if got[2].Type != domain.CmdSetPrefs {
		t.Fatalf("expected actions to emit setPrefs, got %q", got[2].Type)
	}
	if lastLen != 1 {
		t.Fatalf("expected snapshot with 1 counter, got %d", lastLen)
	}

	unsubscribe()
	unsubscribe()
	s.Add("B")
	if len(got) != 3 {
		t.Fatalf("expected no notification after unsubscribe, got %d", len(got))
	}
}

func TestStore_SubscriberCanReadStore(t *testing.T) {
	s := newTestStore()

	var total int
	s.Subscribe(func(domain.Mutation, domain.RootState) {
		// lock já foi liberado
		total = s.TotalSum()
	})
	s.Add("A")
	s.Increment(s.Snapshot().Counters[0].ID)

	if total != 1 {
		t.Fatalf("expected total 1 seen by subscriber, got %d", total)
	}
}

func TestStore_SubscriberSnapshotIsIsolated(t *testing.T) {
	s := newTestStore()
	s.Subscribe(func(_ domain.Mutation, st domain.RootState) {
		for i := range st.Counters {
			st.Counters[i].Value = 20
		}
	})
	s.Add("A")

	if c := s.Snapshot().Counters[0]; c.Value != 0 {
		t.Fatalf("expected store untouched by subscriber, got %d", c.Value)
	}
}

func TestStore_ConcurrentWritersNotifyInCommitOrder(t *testing.T) {
	s := newTestStore()
	s.Add("A")
	id := s.Snapshot().Counters[0].ID

	var seen []int
	s.Subscribe(func(_ domain.Mutation, st domain.RootState) {
		seen = append(seen, st.Counters[0].Value)
	})

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 5 {
				s.Increment(id)
			}
		}()
	}
	wg.Wait()

	if len(seen) != 20 {
		t.Fatalf("expected 20 notifications, got %d", len(seen))
	}
	for i, v := range seen {
		if v != i+1 {
			t.Fatalf("expected notification %d to see value %d, got %d (seen=%v)", i, i+1, v, seen)
		}
	}
}

func TestStore_SeedFromStorageKeepsInvariants(t *testing.T) {
	s := newTestStore()

	seed := make([]domain.Counter, 0, 25)
	for i := range 25 {
		name := "   "
		if i%2 == 0 {
			name = " n" + strconv.Itoa(i) + " "
		}
		seed = append(seed, domain.Counter{ID: "dup", Name: name, Value: 99})
	}
	for i := range 25 {
		seed = append(seed, domain.Counter{ID: "id" + strconv.Itoa(i), Name: strings.Repeat("x", 3), Value: 99})
	}
	mode := domain.FilterNone
	s.Hydrate(domain.HydratePayload{
		Counters: &seed,
		Prefs:    &domain.PrefsPatch{FilterMode: &mode, FilterX: domain.IntValue(3)},
	})

	st := s.Snapshot()
	if len(st.Counters) != domain.MaxCounters {
		t.Fatalf("expected %d counters, got %d", domain.MaxCounters, len(st.Counters))
	}
	ids := map[domain.CounterID]bool{}
	for _, c := range st.Counters {
		if ids[c.ID] {
			t.Fatalf("expected unique ids, %q repeated", c.ID)
		}
		ids[c.ID] = true
		if _, ok := domain.NormalizeName(c.Name); !ok || c.Name != strings.TrimSpace(c.Name) {
			t.Fatalf("expected valid trimmed name, got %q", c.Name)
		}
		if c.Value != domain.MaxValue {
			t.Fatalf("expected value clamped to %d, got %d", domain.MaxValue, c.Value)
		}
	}
	if st.Counters[0].Name != "n0" || st.Counters[1].ID != "id0" {
		t.Fatalf("expected first duplicate kept then the rest, got %+v", st.Counters[:2])
	}
	if st.Prefs.FilterX != nil {
		t.Fatalf("expected filterX=nil with mode none, got %d", *st.Prefs.FilterX)
	}
	if s.CanAdd() {
		t.Fatalf("expected CanAdd=false at %d counters", domain.MaxCounters)
	}
}
