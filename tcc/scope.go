package tcc

import "go.uber.org/zap"

// Scope groups several compilations under a single guard acquisition.
// Contexts spawned from it are owned by the scope and closed when the scope
// ends.
type Scope struct {
	guard    *Guard
	contexts []*Context
}

// Scoped acquires the guard, runs fn, closes every spawned context, and
// releases the guard on every exit path. Relocated images produced inside
// must be closed before fn returns; a leaked image keeps the guard pinned
// and surfaces as the returned error.
func Scoped(fn func(*Scope) error) error {
	g, err := Acquire()
	if err != nil {
		return err
	}

	s := &Scope{guard: g}
	ferr := fn(s)

	for _, c := range s.contexts {
		if cerr := c.Close(); cerr != nil {
			Logger().Warn("scope context close failed", zap.Error(cerr))
		}
	}
	rerr := s.guard.Release()

	if ferr != nil {
		return ferr
	}
	return rerr
}

// Spawn creates a context owned by the scope.
func (s *Scope) Spawn() (*Context, error) {
	ctx, err := NewContext(s.guard)
	if err != nil {
		return nil, err
	}
	s.contexts = append(s.contexts, ctx)
	return ctx, nil
}
