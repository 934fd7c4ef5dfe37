// Package scenario holds the small service graphs cmd/injectdemo runs,
// kept out of main so they can be exercised from tests too.
package scenario

import (
	"fmt"

	E "github.com/IBM/fp-go/v2/either"

	"github.com/injectkit/injectkit/component"
	"github.com/injectkit/injectkit/di"
	DIE "github.com/injectkit/injectkit/di/erasure"
	"github.com/injectkit/injectkit/expand"
	"github.com/injectkit/injectkit/typeid"
)

// Config is a plain constructed-instance binding.
type Config struct{ Greeting string }

// Logger is the interface Greeter depends on; consoleLogger is its sole
// implementation and a candidate for the binding compressor to fold away.
type Logger interface{ Log(msg string) }

type consoleLogger struct{}

func (consoleLogger) Log(msg string) { fmt.Println("[log]", msg) }

// Greeter depends on both a constructed Config and a compressed Logger,
// exercising both binding kinds in one object graph.
type Greeter struct {
	cfg *Config
	log Logger
}

func (g *Greeter) Greet(name string) string {
	g.log.Log("greeting " + name)
	return fmt.Sprintf("%s, %s!", g.cfg.Greeting, name)
}

func buildGreeterGraph(greeting string) (*component.Builder, typeid.TypeId) {
	b := component.New()
	cfgID := component.BindConstructed[Config](b, "", &Config{Greeting: greeting})

	loggerImplID := component.Provide[consoleLogger](b, "", nil, func(deps []any) (any, error) {
		return consoleLogger{}, nil
	}, 0, 0)
	component.Compress[Logger, consoleLogger](b, "", "")
	loggerIfaceID := component.Provide[Logger](
		b, "", []typeid.TypeId{loggerImplID},
		func(deps []any) (any, error) { return deps[0], nil },
		0, 0,
	)

	greeterID := component.Provide[Greeter](
		b, "", []typeid.TypeId{cfgID, loggerIfaceID},
		func(deps []any) (any, error) {
			return &Greeter{cfg: deps[0].(*Config), log: deps[1].(Logger)}, nil
		},
		0, 0,
	)

	return b, greeterID
}

// Greet builds the greeter graph, expands it, resolves the greeter through
// di's type-safe Resolve/InjectionToken facade, and returns its greeting
// for name.
func Greet(name string) (string, error) {
	b, greeterID := buildGreeterGraph("Hello")

	store, derr := expand.Run(b.Compile(), expand.Options{})
	if derr != nil {
		return "", derr
	}

	inj := DIE.MakeInjector(di.ProvidersFromStorage(store))
	token := di.TokenFor[*Greeter](greeterID)
	res := di.Resolve(token)(inj)()
	greeter, err := E.UnwrapError(res)
	if err != nil {
		return "", fmt.Errorf("resolve greeter: %w", err)
	}

	return greeter.Greet(name), nil
}
