package application

import (
	"encoding/json"
	"errors"
	"fmt"

	"counter-state/state/counters/domain"
)

// ErrUnknownCommand é erro de programação do chamador: o nome não existe.
var ErrUnknownCommand = errors.New("counters: unknown command")

// Dispatch executa um comando ou ação pelo nome. Payload de tipo errado é
// tratado como entrada inválida (no-op, sem notificação) e não gera erro.
func (s *Store) Dispatch(name string, payload any) error {
	switch name {
	case domain.CmdAdd:
		if v, ok := payload.(string); ok {
			s.Add(v)
		}
	case domain.CmdRemove:
		if v, ok := payload.(string); ok {
			s.Remove(v)
		}
	case domain.CmdIncrement:
		if v, ok := payload.(string); ok {
			s.Increment(v)
		}
	case domain.CmdDecrement:
		if v, ok := payload.(string); ok {
			s.Decrement(v)
		}
	case domain.CmdRename:
		if v, ok := payload.(domain.RenamePayload); ok {
			s.Rename(v.ID, v.Name)
		}
	case domain.CmdSetPrefs:
		if v, ok := payload.(domain.PrefsPatch); ok {
			s.SetPrefs(v)
		}
	case domain.CmdHydrate:
		if v, ok := payload.(domain.HydratePayload); ok {
			s.Hydrate(v)
		}
	case domain.ActSetSort:
		if v, ok := payload.(domain.SortPayload); ok {
			s.SetSort(v.By, v.Dir)
		}
	case domain.ActSetFilter:
		if v, ok := payload.(domain.FilterPayload); ok {
			s.SetFilter(v.Mode, v.X)
		}
	case domain.ActClearFilters:
		s.ClearFilters()
	case domain.ActSetSearch:
		if v, ok := payload.(string); ok {
			s.SetSearch(v)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	return nil
}

// DispatchJSON decodifica raw no tipo de payload do comando e chama Dispatch.
// JSON inválido é no-op, como qualquer outro payload malformado.
func (s *Store) DispatchJSON(name string, raw []byte) error {
	var (
		payload any
		ok      bool
	)
	switch name {
	case domain.CmdAdd, domain.CmdRemove, domain.CmdIncrement, domain.CmdDecrement, domain.ActSetSearch:
		payload, ok = decode[string](raw)
	case domain.CmdRename:
		payload, ok = decode[domain.RenamePayload](raw)
	case domain.CmdSetPrefs:
		payload, ok = decode[domain.PrefsPatch](raw)
	case domain.CmdHydrate:
		payload, ok = decode[domain.HydratePayload](raw)
	case domain.ActSetSort:
		payload, ok = decode[domain.SortPayload](raw)
	case domain.ActSetFilter:
		payload, ok = decode[domain.FilterPayload](raw)
	case domain.ActClearFilters:
		payload, ok = nil, true
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	if !ok {
		return nil
	}
	return s.Dispatch(name, payload)
}

func decode[T any](raw []byte) (T, bool) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false
	}
	return v, true
}
