package scenario

import (
	"fmt"

	"github.com/injectkit/injectkit/component"
	"github.com/injectkit/injectkit/expand"
	"github.com/injectkit/injectkit/typeid"
)

const pluginsAnnotation = "plugins"

func buildPluginsGraph() *component.Builder {
	b := component.New()
	component.Multibind[string](b, pluginsAnnotation, func() (any, error) { return "auth", nil })
	component.Multibind[string](b, pluginsAnnotation, func() (any, error) { return "metrics", nil })
	component.Multibind[string](b, pluginsAnnotation, func() (any, error) { return "tracing", nil })
	component.MultibindingVectorCreator[string](b, pluginsAnnotation, func(elements []any) any {
		out := make([]string, len(elements))
		for i, e := range elements {
			out[i] = e.(string)
		}
		return out
	})
	return b
}

// Plugins builds a multibinding graph, expands it, and materializes the
// assembled plugin-name vector directly from the normalized storage's
// MultibindingSet.
func Plugins() ([]string, error) {
	b := buildPluginsGraph()

	store, derr := expand.Run(b.Compile(), expand.Options{})
	if derr != nil {
		return nil, derr
	}

	pluginsID := typeid.Of[string](pluginsAnnotation)
	list, ok := store.Multibindings()[pluginsID]
	if !ok {
		return nil, fmt.Errorf("no plugins bound")
	}

	elements := make([]any, len(list.Items))
	for i, item := range list.Items {
		v, err := item.Create()
		if err != nil {
			return nil, fmt.Errorf("materialize plugin %d: %w", i, err)
		}
		elements[i] = v
	}

	return list.VectorCreator(elements).([]string), nil
}
