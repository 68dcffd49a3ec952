// utilitário pequeno para formatar a lista na saída do CLI.
//    uma linha por contador + linha de total

package counters

import (
	"strconv"
	"strings"

	"counter-state/state/counters/domain"
)

func formatInt(v int) string { return strconv.Itoa(v) }

// FormatView devolve uma linha por contador ("nome  valor  id") e uma linha
// final com o total e a capacidade restante.
func FormatView(list []domain.Counter, total, size int) string {
	width := 0
	for _, c := range list {
		width = max(width, len([]rune(c.Name)))
	}

	var b strings.Builder
	for _, c := range list {
		b.WriteString(c.Name)
		b.WriteString(strings.Repeat(" ", width-len([]rune(c.Name))+2))
		v := formatInt(c.Value)
		b.WriteString(strings.Repeat(" ", 2-min(2, len(v))))
		b.WriteString(v)
		b.WriteString("  ")
		b.WriteString(c.ID)
		b.WriteByte('\n')
	}
	b.WriteString("total=")
	b.WriteString(formatInt(total))
	b.WriteString(" counters=")
	b.WriteString(formatInt(size))
	b.WriteByte('/')
	b.WriteString(formatInt(domain.MaxCounters))
	b.WriteByte('\n')
	return b.String()
}

// View formata a visão atual do tracker.
func (t *Tracker) View() string {
	return FormatView(t.Store.ViewList(), t.Store.TotalSum(), len(t.Store.Snapshot().Counters))
}
