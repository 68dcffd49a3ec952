package application

import (
	"slices"
	"sync"

	"counter-state/state/counters/domain"

	"github.com/google/uuid"
	"golang.org/x/text/language"
)

// SortMode define quando ViewList ordena.
type SortMode int

const (
	// SortAlways ordena sempre pelas prefs atuais.
	SortAlways SortMode = iota
	// SortWhenEnabled só ordena depois que Prefs.SortingEnabled vira true
	// (SetSort liga o flag).
	SortWhenEnabled
)

type IDFunc func() domain.CounterID

// Store é o dono do RootState canônico.
//
// Todos os comandos são permissivos: entrada inválida (nome vazio ou longo,
// id inexistente, lista cheia, enum desconhecido) deixa o estado como está e
// não retorna erro. Não troque por retornos de erro.
//
// Depois de cada comando (válido ou não) os assinantes são chamados de forma
// síncrona, com uma cópia do estado resultante. Com vários escritores as
// notificações saem na mesma ordem dos commits. Assinantes podem ler o Store
// (Snapshot, ViewList...) mas não podem executar comandos.
type Store struct {
	// notifyMu serializa comando + notificação; mu protege só o estado.
	notifyMu sync.Mutex
	mu       sync.Mutex
	state    domain.RootState

	subs    []subscription
	nextSub int

	newID    IDFunc
	sortMode SortMode
	lang     language.Tag
}

type subscription struct {
	id int
	fn domain.Subscriber
}

type StoreOption func(*Store)

func WithIDFunc(fn IDFunc) StoreOption {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func WithSortMode(m SortMode) StoreOption {
	return func(s *Store) { s.sortMode = m }
}

// WithLanguage define o idioma usado na collation da ordenação por nome.
func WithLanguage(tag language.Tag) StoreOption {
	return func(s *Store) { s.lang = tag }
}

func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		state:    domain.RootState{Counters: []domain.Counter{}, Prefs: domain.DefaultPrefs()},
		newID:    uuid.NewString,
		sortMode: SortAlways,
		lang:     language.Und,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registra fn e retorna a função que cancela a inscrição.
func (s *Store) Subscribe(fn domain.Subscriber) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.subs = slices.DeleteFunc(s.subs, func(sub subscription) bool { return sub.id == id })
		})
	}
}

// commit aplica fn sob o lock e depois notifica os assinantes.
func (s *Store) commit(typ string, payload any, fn func(st *domain.RootState)) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if fn != nil {
		fn(&s.state)
	}
	snap := s.state.Clone()
	subs := slices.Clone(s.subs)
	s.mu.Unlock()

	m := domain.Mutation{Type: typ, Payload: payload}
	for _, sub := range subs {
		sub.fn(m, snap.Clone())
	}
}

func (s *Store) Add(name string) {
	s.commit(domain.CmdAdd, name, func(st *domain.RootState) {
		clean, ok := domain.NormalizeName(name)
		if !ok || len(st.Counters) >= domain.MaxCounters {
			return
		}
		id, ok := s.uniqueID(st.Counters)
		if !ok {
			return
		}
		st.Counters = append(st.Counters, domain.Counter{ID: id, Name: clean, Value: domain.MinValue})
	})
}

func (s *Store) Remove(id domain.CounterID) {
	s.commit(domain.CmdRemove, id, func(st *domain.RootState) {
		if indexOf(st.Counters, id) < 0 {
			return
		}
		st.Counters = slices.DeleteFunc(slices.Clone(st.Counters), func(c domain.Counter) bool { return c.ID == id })
	})
}

func (s *Store) Increment(id domain.CounterID) {
	s.commit(domain.CmdIncrement, id, func(st *domain.RootState) {
		if i := indexOf(st.Counters, id); i >= 0 {
			st.Counters[i].Value = min(domain.MaxValue, st.Counters[i].Value+1)
		}
	})
}

func (s *Store) Decrement(id domain.CounterID) {
	s.commit(domain.CmdDecrement, id, func(st *domain.RootState) {
		if i := indexOf(st.Counters, id); i >= 0 {
			st.Counters[i].Value = max(domain.MinValue, st.Counters[i].Value-1)
		}
	})
}

func (s *Store) Rename(id domain.CounterID, name string) {
	p := domain.RenamePayload{ID: id, Name: name}
	s.commit(domain.CmdRename, p, func(st *domain.RootState) {
		i := indexOf(st.Counters, id)
		if i < 0 {
			return
		}
		clean, ok := domain.NormalizeName(name)
		if !ok {
			return
		}
		st.Counters[i].Name = clean
	})
}

// SetPrefs faz merge raso do patch nas prefs atuais.
func (s *Store) SetPrefs(patch domain.PrefsPatch) {
	s.commit(domain.CmdSetPrefs, patch, func(st *domain.RootState) {
		st.Prefs = st.Prefs.Apply(patch)
	})
}

// Hydrate substitui a lista inteira (se presente) e faz merge das prefs (se
// presentes). A lista recebida passa por sanitize para manter os invariantes
// mesmo com dados persistidos corrompidos.
func (s *Store) Hydrate(p domain.HydratePayload) {
	s.commit(domain.CmdHydrate, p, func(st *domain.RootState) {
		if p.Counters != nil {
			st.Counters = s.sanitize(*p.Counters)
		}
		if p.Prefs != nil {
			st.Prefs = st.Prefs.Apply(*p.Prefs)
		}
	})
}

func (s *Store) sanitize(in []domain.Counter) []domain.Counter {
	out := make([]domain.Counter, 0, min(len(in), domain.MaxCounters))
	seen := make(map[domain.CounterID]struct{}, len(in))
	for _, c := range in {
		if len(out) == domain.MaxCounters {
			break
		}
		name, ok := domain.NormalizeName(c.Name)
		if !ok {
			continue
		}
		if c.ID == "" {
			id, ok := s.uniqueID(out)
			if !ok {
				continue
			}
			c.ID = id
		}
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, domain.Counter{ID: c.ID, Name: name, Value: domain.ClampValue(c.Value)})
	}
	return out
}

// uniqueID tenta algumas vezes gerar um id que não esteja na lista.
func (s *Store) uniqueID(list []domain.Counter) (domain.CounterID, bool) {
	for range 8 {
		id := s.newID()
		if id != "" && indexOf(list, id) < 0 {
			return id, true
		}
	}
	return "", false
}

func indexOf(list []domain.Counter, id domain.CounterID) int {
	return slices.IndexFunc(list, func(c domain.Counter) bool { return c.ID == id })
}
