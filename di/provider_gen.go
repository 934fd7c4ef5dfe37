package di

import (
	A "github.com/IBM/fp-go/v2/array"
	E "github.com/IBM/fp-go/v2/either"
	T "github.com/IBM/fp-go/v2/tuple"

	DIE "github.com/injectkit/injectkit/di/erasure"
)

// eraseProviderFactory1 adapts a strongly-typed one-argument constructor to
// the untyped calling convention a [DIE.ProviderFactory] uses.
func eraseProviderFactory1[T1, R any](
	d1 Dependency[T1],
	f func(T1) IOResult[R],
) func(params ...any) IOResult[any] {
	ft := eraseTuple(T.Tupled1(f))
	t1 := lookupAt[T1](0, d1)
	return func(params ...any) IOResult[any] {
		return ft(E.SequenceT1(
			t1(params),
		))
	}
}

// eraseProviderFactory2 is eraseProviderFactory1's two-dependency sibling.
func eraseProviderFactory2[T1, T2, R any](
	d1 Dependency[T1],
	d2 Dependency[T2],
	f func(T1, T2) IOResult[R],
) func(params ...any) IOResult[any] {
	ft := eraseTuple(T.Tupled2(f))
	t1 := lookupAt[T1](0, d1)
	t2 := lookupAt[T2](1, d2)
	return func(params ...any) IOResult[any] {
		return ft(E.SequenceT2(
			t1(params),
			t2(params),
		))
	}
}

// eraseProviderFactory3 is eraseProviderFactory1's three-dependency sibling.
func eraseProviderFactory3[T1, T2, T3, R any](
	d1 Dependency[T1],
	d2 Dependency[T2],
	d3 Dependency[T3],
	f func(T1, T2, T3) IOResult[R],
) func(params ...any) IOResult[any] {
	ft := eraseTuple(T.Tupled3(f))
	t1 := lookupAt[T1](0, d1)
	t2 := lookupAt[T2](1, d2)
	t3 := lookupAt[T3](2, d3)
	return func(params ...any) IOResult[any] {
		return ft(E.SequenceT3(
			t1(params),
			t2(params),
			t3(params),
		))
	}
}

// MakeProviderFactory1 creates a [DIE.ProviderFactory] from a function with
// one dependency.
func MakeProviderFactory1[T1, R any](
	d1 Dependency[T1],
	f func(T1) IOResult[R],
) DIE.ProviderFactory {
	return DIE.MakeProviderFactory(
		A.From[DIE.Dependency](d1),
		eraseProviderFactory1(d1, f),
	)
}

// MakeProviderFactory2 is MakeProviderFactory1's two-dependency sibling.
func MakeProviderFactory2[T1, T2, R any](
	d1 Dependency[T1],
	d2 Dependency[T2],
	f func(T1, T2) IOResult[R],
) DIE.ProviderFactory {
	return DIE.MakeProviderFactory(
		A.From[DIE.Dependency](d1, d2),
		eraseProviderFactory2(d1, d2, f),
	)
}

// MakeProviderFactory3 is MakeProviderFactory1's three-dependency sibling.
func MakeProviderFactory3[T1, T2, T3, R any](
	d1 Dependency[T1],
	d2 Dependency[T2],
	d3 Dependency[T3],
	f func(T1, T2, T3) IOResult[R],
) DIE.ProviderFactory {
	return DIE.MakeProviderFactory(
		A.From[DIE.Dependency](d1, d2, d3),
		eraseProviderFactory3(d1, d2, d3, f),
	)
}

// MakeProvider1 creates a [DIE.Provider] for an [InjectionToken] from a
// function with one dependency.
func MakeProvider1[T1, R any](
	token InjectionToken[R],
	d1 Dependency[T1],
	f func(T1) IOResult[R],
) DIE.Provider {
	return DIE.MakeProvider(
		token,
		MakeProviderFactory1(d1, f),
	)
}

// MakeProvider2 is MakeProvider1's two-dependency sibling.
func MakeProvider2[T1, T2, R any](
	token InjectionToken[R],
	d1 Dependency[T1],
	d2 Dependency[T2],
	f func(T1, T2) IOResult[R],
) DIE.Provider {
	return DIE.MakeProvider(
		token,
		MakeProviderFactory2(d1, d2, f),
	)
}

// MakeProvider3 is MakeProvider1's three-dependency sibling.
func MakeProvider3[T1, T2, T3, R any](
	token InjectionToken[R],
	d1 Dependency[T1],
	d2 Dependency[T2],
	d3 Dependency[T3],
	f func(T1, T2, T3) IOResult[R],
) DIE.Provider {
	return DIE.MakeProvider(
		token,
		MakeProviderFactory3(d1, d2, d3, f),
	)
}

// MakeTokenWithDefault1 creates an [InjectionToken] with a default
// implementation depending on one other token.
func MakeTokenWithDefault1[T1, R any](
	name string,
	d1 Dependency[T1],
	f func(T1) IOResult[R],
) InjectionToken[R] {
	return MakeTokenWithDefault[R](name, MakeProviderFactory1(d1, f))
}

// MakeTokenWithDefault2 is MakeTokenWithDefault1's two-dependency sibling.
func MakeTokenWithDefault2[T1, T2, R any](
	name string,
	d1 Dependency[T1],
	d2 Dependency[T2],
	f func(T1, T2) IOResult[R],
) InjectionToken[R] {
	return MakeTokenWithDefault[R](name, MakeProviderFactory2(d1, d2, f))
}

// MakeTokenWithDefault3 is MakeTokenWithDefault1's three-dependency sibling.
func MakeTokenWithDefault3[T1, T2, T3, R any](
	name string,
	d1 Dependency[T1],
	d2 Dependency[T2],
	d3 Dependency[T3],
	f func(T1, T2, T3) IOResult[R],
) InjectionToken[R] {
	return MakeTokenWithDefault[R](name, MakeProviderFactory3(d1, d2, d3, f))
}
