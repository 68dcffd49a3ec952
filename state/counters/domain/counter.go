package domain

import (
	"strings"
	"unicode/utf8"
)

// Limites do domínio. A lista é pequena por definição.
const (
	MaxCounters   = 20
	MinValue      = 0
	MaxValue      = 20
	MaxNameLength = 20
)

type CounterID = string

// Counter é um contador nomeado com valor limitado a [MinValue, MaxValue].
type Counter struct {
	ID    CounterID `json:"id"`
	Name  string    `json:"name"`
	Value int       `json:"value"`
}

// RootState é a unidade de persistência: lista de contadores (ordem de
// inserção) + preferências de visualização.
type RootState struct {
	Counters []Counter `json:"counters"`
	Prefs    Prefs     `json:"prefs"`
}

// Clone devolve uma cópia profunda (a lista e o ponteiro FilterX não são
// compartilhados com o original).
func (s RootState) Clone() RootState {
	out := RootState{Prefs: s.Prefs.Clone()}
	out.Counters = make([]Counter, len(s.Counters))
	copy(out.Counters, s.Counters)
	return out
}

// NormalizeName aplica trim e valida o nome. Retorna ok=false quando o nome
// fica vazio ou passa de MaxNameLength caracteres (runes, não bytes).
func NormalizeName(name string) (string, bool) {
	clean := strings.TrimSpace(name)
	if clean == "" || utf8.RuneCountInString(clean) > MaxNameLength {
		return "", false
	}
	return clean, true
}

// ClampValue prende v em [MinValue, MaxValue].
func ClampValue(v int) int {
	return max(MinValue, min(MaxValue, v))
}
