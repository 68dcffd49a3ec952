package application

import "counter-state/state/counters/domain"

// Ações de preferência: todas viram uma mutação setPrefs.

func (s *Store) SetSort(by domain.SortBy, dir domain.SortDir) {
	patch := domain.PrefsPatch{SortBy: &by, SortDir: &dir}
	if s.sortMode == SortWhenEnabled {
		enabled := true
		patch.SortingEnabled = &enabled
	}
	s.SetPrefs(patch)
}

// SetFilter troca o modo de filtro. Com modo none o limiar vira null; com
// gt/lt e x nil o limiar vira 0. Modo desconhecido não altera nada.
func (s *Store) SetFilter(mode domain.FilterMode, x *int) {
	if !mode.Valid() {
		s.SetPrefs(domain.PrefsPatch{})
		return
	}
	patch := domain.PrefsPatch{FilterMode: &mode, FilterX: domain.Null()}
	if mode != domain.FilterNone {
		v := 0
		if x != nil {
			v = *x
		}
		patch.FilterX = domain.IntValue(v)
	}
	s.SetPrefs(patch)
}

// ClearFilters limpa filtro e busca de uma vez.
func (s *Store) ClearFilters() {
	mode := domain.FilterNone
	search := ""
	s.SetPrefs(domain.PrefsPatch{FilterMode: &mode, FilterX: domain.Null(), Search: &search})
}

func (s *Store) SetSearch(q string) {
	s.SetPrefs(domain.PrefsPatch{Search: &q})
}
