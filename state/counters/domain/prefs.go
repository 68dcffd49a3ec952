package domain

import (
	"bytes"
	"encoding/json"
)

type SortBy string

const (
	SortByName  SortBy = "name"
	SortByValue SortBy = "value"
)

func (s SortBy) Valid() bool { return s == SortByName || s == SortByValue }

type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

func (d SortDir) Valid() bool { return d == SortAsc || d == SortDesc }

type FilterMode string

const (
	FilterGreater FilterMode = "gt"
	FilterLess    FilterMode = "lt"
	FilterNone    FilterMode = "none"
)

func (m FilterMode) Valid() bool {
	return m == FilterGreater || m == FilterLess || m == FilterNone
}

// Prefs é a configuração de visualização escolhida pelo usuário.
//
// SortingEnabled só é consultado quando o store roda em modo SortWhenEnabled.
type Prefs struct {
	SortBy         SortBy     `json:"sortBy"`
	SortDir        SortDir    `json:"sortDir"`
	FilterMode     FilterMode `json:"filterMode"`
	FilterX        *int       `json:"filterX"`
	Search         string     `json:"search"`
	SortingEnabled bool       `json:"sortingEnabled,omitempty"`
}

func DefaultPrefs() Prefs {
	return Prefs{
		SortBy:     SortByName,
		SortDir:    SortAsc,
		FilterMode: FilterNone,
		FilterX:    nil,
		Search:     "",
	}
}

func (p Prefs) Clone() Prefs {
	out := p
	if p.FilterX != nil {
		x := *p.FilterX
		out.FilterX = &x
	}
	return out
}

// Patch devolve um PrefsPatch com todos os campos preenchidos.
func (p Prefs) Patch() PrefsPatch {
	c := p.Clone()
	return PrefsPatch{
		SortBy:         &c.SortBy,
		SortDir:        &c.SortDir,
		FilterMode:     &c.FilterMode,
		FilterX:        NullableInt{Set: true, Value: c.FilterX},
		Search:         &c.Search,
		SortingEnabled: &c.SortingEnabled,
	}
}

// PrefsPatch é um subconjunto de Prefs: campos nil (ou FilterX.Set=false)
// não são alterados no merge. Campos desconhecidos no JSON são ignorados.
type PrefsPatch struct {
	SortBy         *SortBy     `json:"sortBy,omitempty"`
	SortDir        *SortDir    `json:"sortDir,omitempty"`
	FilterMode     *FilterMode `json:"filterMode,omitempty"`
	FilterX        NullableInt `json:"filterX"`
	Search         *string     `json:"search,omitempty"`
	SortingEnabled *bool       `json:"sortingEnabled,omitempty"`
}

// Apply faz o merge raso do patch sobre p. Valores de enum inválidos são
// ignorados campo a campo; FilterX é zerado quando o modo final é none.
func (p Prefs) Apply(patch PrefsPatch) Prefs {
	out := p.Clone()
	if patch.SortBy != nil && patch.SortBy.Valid() {
		out.SortBy = *patch.SortBy
	}
	if patch.SortDir != nil && patch.SortDir.Valid() {
		out.SortDir = *patch.SortDir
	}
	if patch.FilterMode != nil && patch.FilterMode.Valid() {
		out.FilterMode = *patch.FilterMode
	}
	if patch.FilterX.Set {
		out.FilterX = nil
		if patch.FilterX.Value != nil {
			x := *patch.FilterX.Value
			out.FilterX = &x
		}
	}
	if patch.Search != nil {
		out.Search = *patch.Search
	}
	if patch.SortingEnabled != nil {
		out.SortingEnabled = *patch.SortingEnabled
	}
	if out.FilterMode == FilterNone {
		out.FilterX = nil
	}
	return out
}

// NullableInt distingue "ausente" (Set=false) de "null" (Set=true, Value=nil)
// em JSON, como o filterX (number | null).
type NullableInt struct {
	Set   bool
	Value *int
}

// IntValue cria um NullableInt definido com o valor v.
func IntValue(v int) NullableInt { return NullableInt{Set: true, Value: &v} }

// Null cria um NullableInt definido como null.
func Null() NullableInt { return NullableInt{Set: true} }

func (n *NullableInt) UnmarshalJSON(data []byte) error {
	n.Set = true
	n.Value = nil
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

func (n NullableInt) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

// HydratePayload é um RootState parcial: Counters nil não mexe na lista,
// Prefs nil não mexe nas preferências.
type HydratePayload struct {
	Counters *[]Counter  `json:"counters,omitempty"`
	Prefs    *PrefsPatch `json:"prefs,omitempty"`
}
