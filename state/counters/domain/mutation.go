package domain

// Nomes dos comandos aceitos pelo store.
const (
	CmdAdd       = "add"
	CmdRemove    = "remove"
	CmdIncrement = "increment"
	CmdDecrement = "decrement"
	CmdRename    = "rename"
	CmdSetPrefs  = "setPrefs"
	CmdHydrate   = "hydrate"

	// Ações compostas (emitem uma mutação setPrefs).
	ActSetSort      = "setSort"
	ActSetFilter    = "setFilter"
	ActClearFilters = "clearFilters"
	ActSetSearch    = "setSearch"
)

// Mutation descreve um comando já aplicado: nome + payload recebido.
//
// O payload é o valor tipado do comando (string para add/remove/..., RenamePayload,
// PrefsPatch, HydratePayload). Comandos inválidos também geram Mutation, com o
// estado inalterado.
type Mutation struct {
	Type    string
	Payload any
}

// Subscriber é chamado de forma síncrona depois de cada comando, com uma
// cópia do estado resultante.
type Subscriber func(m Mutation, state RootState)

type RenamePayload struct {
	ID   CounterID `json:"id"`
	Name string    `json:"name"`
}

type SortPayload struct {
	By  SortBy  `json:"by"`
	Dir SortDir `json:"dir"`
}

type FilterPayload struct {
	Mode FilterMode `json:"mode"`
	X    *int       `json:"x,omitempty"`
}
