package application

import (
	"cmp"
	"slices"
	"strings"

	"counter-state/state/counters/domain"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Consultas derivadas. Nada é cacheado: cada chamada recalcula a partir de
// uma cópia do estado atual.

func (s *Store) Snapshot() domain.RootState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *Store) Prefs() domain.Prefs {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Prefs.Clone()
}

func (s *Store) Counter(id domain.CounterID) (domain.Counter, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.state.Counters, id); i >= 0 {
		return s.state.Counters[i], true
	}
	return domain.Counter{}, false
}

func (s *Store) TotalSum() int {
	return TotalSum(s.Snapshot())
}

func (s *Store) CanAdd() bool {
	return CanAdd(s.Snapshot())
}

func (s *Store) ViewList() []domain.Counter {
	return ViewList(s.Snapshot(), s.sortMode, s.lang)
}

func TotalSum(st domain.RootState) int {
	total := 0
	for _, c := range st.Counters {
		total += c.Value
	}
	return total
}

func CanAdd(st domain.RootState) bool {
	return len(st.Counters) < domain.MaxCounters
}

// ViewList aplica, nesta ordem: busca (substring sem diferenciar maiúsculas),
// filtro gt/lt e ordenação estável. Trabalha numa cópia; a ordem canônica da
// lista nunca muda.
func ViewList(st domain.RootState, mode SortMode, lang language.Tag) []domain.Counter {
	p := st.Prefs
	out := slices.Clone(st.Counters)
	if out == nil {
		out = []domain.Counter{}
	}

	if q := strings.TrimSpace(p.Search); q != "" {
		fold := cases.Fold()
		q = fold.String(q)
		out = slices.DeleteFunc(out, func(c domain.Counter) bool {
			return !strings.Contains(fold.String(c.Name), q)
		})
	}

	if p.FilterMode != domain.FilterNone && p.FilterX != nil {
		x := *p.FilterX
		out = slices.DeleteFunc(out, func(c domain.Counter) bool {
			switch p.FilterMode {
			case domain.FilterGreater:
				return c.Value <= x
			case domain.FilterLess:
				return c.Value >= x
			}
			return false
		})
	}

	if mode == SortWhenEnabled && !p.SortingEnabled {
		return out
	}

	var byName *collate.Collator
	if p.SortBy == domain.SortByName {
		byName = collate.New(lang, collate.IgnoreCase, collate.IgnoreDiacritics)
	}
	slices.SortStableFunc(out, func(a, b domain.Counter) int {
		var c int
		if byName != nil {
			c = byName.CompareString(a.Name, b.Name)
		} else {
			c = cmp.Compare(a.Value, b.Value)
		}
		if p.SortDir == domain.SortDesc {
			return -c
		}
		return c
	})
	return out
}
