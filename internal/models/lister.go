package models

import (
	"context"
	"fmt"
	"io"
	"os"

	"codeberg.org/snonux/anuvad/internal/engine"
	"codeberg.org/snonux/anuvad/internal/lang"
)

// Route describes how a translation direction would be served.
type Route struct {
	Pair   lang.Pair
	Direct bool
	// Via holds the two leg models when the direction is chained
	Via []string
	// Err is set when neither a direct model nor a complete chain resolves
	Err error
}

// Lister probes a backend for the opus-mt models behind each direction
type Lister struct {
	engine engine.Engine
	out    io.Writer
}

// NewLister creates a new model lister writing to out (stdout when nil)
func NewLister(eng engine.Engine, out io.Writer) *Lister {
	if out == nil {
		out = os.Stdout
	}
	return &Lister{
		engine: eng,
		out:    out,
	}
}

// Routes resolves every supported direction. Only tokenizers are loaded,
// which is enough to tell whether a model identifier exists.
func (l *Lister) Routes(ctx context.Context) ([]Route, error) {
	if err := l.engine.IsAvailable(); err != nil {
		return nil, err
	}

	exists := make(map[string]error)
	probe := func(name string) error {
		if err, ok := exists[name]; ok {
			return err
		}
		_, err := l.engine.LoadTokenizer(ctx, name)
		exists[name] = err
		return err
	}

	var routes []Route
	for _, pair := range lang.SupportedPairs() {
		route := Route{Pair: pair}

		err := probe(engine.ModelName(pair.Source, pair.Target))
		switch {
		case err == nil:
			route.Direct = true
		case !engine.IsNotFound(err) || pair.InvolvesPivot():
			route.Err = err
		default:
			first := engine.ModelName(pair.Source, lang.Pivot)
			second := engine.ModelName(lang.Pivot, pair.Target)
			if err := probe(first); err != nil {
				route.Err = err
			} else if err := probe(second); err != nil {
				route.Err = err
			} else {
				route.Via = []string{first, second}
			}
		}

		routes = append(routes, route)
	}

	return routes, nil
}

// ListAvailableModels prints how each direction resolves on the backend
func (l *Lister) ListAvailableModels(ctx context.Context) error {
	routes, err := l.Routes(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(l.out, "Translation directions (backend: %s):\n\n", l.engine.Name())
	for _, r := range routes {
		switch {
		case r.Err != nil:
			fmt.Fprintf(l.out, "  %-18s unavailable (%v)\n", r.Pair.Label(), r.Err)
		case r.Direct:
			fmt.Fprintf(l.out, "  %-18s direct (%s)\n", r.Pair.Label(), engine.ModelName(r.Pair.Source, r.Pair.Target))
		default:
			fmt.Fprintf(l.out, "  %-18s chained via %s + %s\n", r.Pair.Label(), r.Via[0], r.Via[1])
		}
	}

	return nil
}
