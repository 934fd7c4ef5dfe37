package di

import (
	"fmt"
	"strconv"
	"sync"

	F "github.com/IBM/fp-go/v2/function"
	IOR "github.com/IBM/fp-go/v2/ioresult"
	O "github.com/IBM/fp-go/v2/option"

	"github.com/injectkit/injectkit/binding"
	DIE "github.com/injectkit/injectkit/di/erasure"
	"github.com/injectkit/injectkit/dierr"
	"github.com/injectkit/injectkit/storage"
	"github.com/injectkit/injectkit/typeid"
)

// storageDependency adapts a [typeid.TypeId] to [DIE.Dependency] so that
// normalized storage bindings can be resolved through the erased injector
// the same way hand-built Providers are. Every binding coming out of
// storage is a plain, eagerly resolved value, so its Flag is always
// IDENTITY; the Option/IOEither/IOOption views InjectionToken exposes are
// layered on top by token.go, not by storage itself.
type storageDependency struct {
	id typeid.TypeId
}

func (d storageDependency) Id() string {
	return strconv.FormatUint(d.id.ID(), 36)
}

func (d storageDependency) Flag() int {
	return DIE.IDENTITY
}

func (d storageDependency) String() string {
	return d.id.String()
}

// DependencyFor builds the [DIE.Dependency] view of id that
// [ProvidersFromStorage]'s providers are keyed under, so callers outside
// this package can look a TypeId up through an [DIE.InjectableFactory]
// without reaching into package-private wiring.
func DependencyFor(id typeid.TypeId) DIE.Dependency {
	return storageDependency{id}
}

// ProvidersFromStorage flattens a normalized [storage.Storage] into the
// flat []DIE.Provider slice [DIE.MakeInjector] expects, closing over each
// binding's already-resolved TypeId dependencies instead of requiring
// callers to hand-assemble providers themselves. Every provider built
// from the same call shares one cycleGuard, so a dependency chain that
// loops back on itself is caught across providers, not just within one.
func ProvidersFromStorage(s *storage.Storage) []DIE.Provider {
	bindings := s.All()
	guard := newCycleGuard()
	providers := make([]DIE.Provider, 0, len(bindings))
	for id, b := range bindings {
		providers = append(providers, storageProvider{id: id, binding: b, guard: guard})
	}
	return providers
}

// cycleGuard detects a dependency self-loop at first lookup time with a
// visiting map[typeid.TypeId]bool, the same in-progress-set technique expand
// uses (keyed there by lazy-component identity) to detect installation
// loops. It exists because [DIE.MakeInjector]'s own
// resolution memoization (di/erasure/injector.go) stores a dependency's
// in-flight result before computing it; a cycle would otherwise re-enter
// that not-yet-populated memo slot and deadlock instead of surfacing
// dierr.KindSelfLoop. The guard is consulted before recursing into a
// dependency, never inside the erasure injector itself, since that
// package is kept verbatim.
type cycleGuard struct {
	mu       sync.Mutex
	visiting map[typeid.TypeId]bool
	path     []string
}

func newCycleGuard() *cycleGuard {
	return &cycleGuard{visiting: make(map[typeid.TypeId]bool)}
}

// enter marks id as being resolved on the current synchronous call chain
// and returns a func that removes it again once that chain unwinds.
func (g *cycleGuard) enter(id typeid.TypeId) func() {
	g.mu.Lock()
	g.visiting[id] = true
	g.path = append(g.path, id.String())
	g.mu.Unlock()

	return func() {
		g.mu.Lock()
		delete(g.visiting, id)
		if n := len(g.path); n > 0 {
			g.path = g.path[:n-1]
		}
		g.mu.Unlock()
	}
}

// selfLoop reports whether id is already being resolved higher up the
// current chain, building the structured error expand's own cyclePath
// diagnostic uses: the path from id's first occurrence back to itself.
func (g *cycleGuard) selfLoop(id typeid.TypeId) *dierr.Error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.visiting[id] {
		return nil
	}

	name := id.String()
	start := 0
	for i, n := range g.path {
		if n == name {
			start = i
			break
		}
	}
	path := append(append([]string(nil), g.path[start:]...), name)
	return dierr.NewSelfLoop(id, path)
}

type storageProvider struct {
	id      typeid.TypeId
	binding binding.BaseBinding
	guard   *cycleGuard
}

func (p storageProvider) Provides() DIE.Dependency {
	return storageDependency{p.id}
}

func (p storageProvider) String() string {
	return fmt.Sprintf("Provider for [%s]", p.id)
}

func (p storageProvider) Factory() DIE.ProviderFactory {
	if p.binding.Constructed {
		value := p.binding.Value
		return func(_ DIE.InjectableFactory) DIE.IOResult[any] {
			return IOR.Of(value)
		}
	}

	deps := make([]DIE.Dependency, len(p.binding.Deps))
	for i, d := range p.binding.Deps {
		deps[i] = storageDependency{d}
	}
	create := p.binding.Create
	guard := p.guard
	id := p.id

	return func(inj DIE.InjectableFactory) DIE.IOResult[any] {
		leave := guard.enter(id)
		defer leave()

		resolveDep := func(d DIE.Dependency) DIE.IOResult[any] {
			if sd, ok := d.(storageDependency); ok {
				if err := guard.selfLoop(sd.id); err != nil {
					return IOR.Left[any](err)
				}
			}
			return inj(d)
		}
		return F.Pipe2(
			deps,
			IOR.TraverseArray(resolveDep),
			IOR.Chain(func(args []any) DIE.IOResult[any] {
				return IOR.TryCatchError(func() (any, error) {
					return create(args)
				})
			}),
		)
	}
}

// RunMainFromStorage runs the main application from a normalized
// [storage.Storage] instead of a hand-assembled []DIE.Provider slice.
var RunMainFromStorage = F.Flow2(
	ProvidersFromStorage,
	RunMain,
)

// TokenFor builds the [InjectionToken] view of a TypeId already bound in
// a [storage.Storage], so it can be resolved with [Resolve] against an
// injector built by [ProvidersFromStorage] instead of only through the
// untyped [DependencyFor]/[DIE.Dependency] pair. Its Id is id's own
// registry handle rather than one freshly minted by genID, since it must
// match the Id an [ProvidersFromStorage]-built Provider is keyed under.
func TokenFor[T any](id typeid.TypeId) InjectionToken[T] {
	tokenID := strconv.FormatUint(id.ID(), 36)
	providerFactory := O.None[DIE.ProviderFactory]()
	toIdentity := toType[T]()
	name := id.String()
	return &injectionToken[T]{
		token[T]{makeTokenBase(name, tokenID, DIE.IDENTITY, providerFactory), toIdentity},
		makeToken(fmt.Sprintf("Option[%s]", name), tokenID, DIE.OPTION, toOptionType(toIdentity), providerFactory),
		makeToken(fmt.Sprintf("IOEither[%s]", name), tokenID, DIE.IOEITHER, toIOEitherType(toIdentity), providerFactory),
		makeToken(fmt.Sprintf("IOOption[%s]", name), tokenID, DIE.IOOPTION, toIOOptionType(toIdentity), providerFactory),
	}
}
