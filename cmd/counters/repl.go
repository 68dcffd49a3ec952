package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"counter-state/state/counters"
	"counter-state/state/counters/domain"
)

const helpText = `commands:
  add <name>             create a counter (max 20, name 1..20 chars)
  rm <id>                remove a counter
  inc <id> | dec <id>    change a value within [0,20]
  rename <id> <name>     rename a counter
  sort <name|value> <asc|desc>
  filter <gt|lt|none> [x]
  search <text>          empty text clears the search
  clear                  clear filter and search
  list                   show the current view
  raw <command> <json>   dispatch any command by name with a JSON payload
  help | quit
`

var errQuit = errors.New("quit")

// execLine interpreta uma linha e escreve o resultado em out. Comandos
// inválidos para o domínio não geram erro (o store ignora); só verbos
// desconhecidos e uso errado geram.
func execLine(t *counters.Tracker, line string, out io.Writer) error {
	verb, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)
	s := t.Store

	switch strings.ToLower(verb) {
	case "":
		return nil
	case "add":
		s.Add(rest)
	case "rm", "remove":
		s.Remove(rest)
	case "inc", "increment":
		s.Increment(rest)
	case "dec", "decrement":
		s.Decrement(rest)
	case "rename":
		id, name, ok := strings.Cut(rest, " ")
		if !ok {
			return errors.New("usage: rename <id> <name>")
		}
		s.Rename(id, name)
	case "sort":
		by, dir, _ := strings.Cut(rest, " ")
		if dir == "" {
			dir = string(domain.SortAsc)
		}
		s.SetSort(domain.SortBy(by), domain.SortDir(strings.TrimSpace(dir)))
	case "filter":
		mode, xs, _ := strings.Cut(rest, " ")
		var x *int
		if xs = strings.TrimSpace(xs); xs != "" {
			v, err := strconv.Atoi(xs)
			if err != nil {
				return fmt.Errorf("filter threshold: %w", err)
			}
			x = &v
		}
		s.SetFilter(domain.FilterMode(mode), x)
	case "search":
		s.SetSearch(rest)
	case "clear":
		s.ClearFilters()
	case "list", "ls":
	case "raw":
		name, payload, _ := strings.Cut(rest, " ")
		if err := s.DispatchJSON(name, []byte(strings.TrimSpace(payload))); err != nil {
			return err
		}
	case "help":
		_, err := io.WriteString(out, helpText)
		return err
	case "quit", "exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q (try help)", verb)
	}

	_, err := io.WriteString(out, t.View())
	return err
}

// repl lê linhas de in até EOF, quit ou ctx cancelado.
func repl(ctx context.Context, t *counters.Tracker, in io.Reader, out, errOut io.Writer) error {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		if err := execLine(t, sc.Text(), out); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
	}
	return sc.Err()
}
