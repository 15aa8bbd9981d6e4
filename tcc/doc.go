// Package tcc provides safe, ownership-checked access to the embedded C
// compiler.
//
// A compilation session starts by acquiring the process-wide Guard (the
// native compiler keeps global state that is unsafe to share between
// concurrent sessions). Under one guard any number of Contexts can be
// created, configured, and compiled in sequence:
//
//	err := tcc.Scoped(func(s *tcc.Scope) error {
//		ctx, err := s.Spawn()
//		if err != nil {
//			return err
//		}
//		ctx.SetErrorFunc(func(msg string) { log.Println(msg) })
//		if err := ctx.CompileString(src); err != nil {
//			return err
//		}
//		img, err := ctx.Relocate()
//		if err != nil {
//			return err
//		}
//		defer img.Close()
//		add, _ := img.Symbol("add")
//		fmt.Println(tcc.CallInt2(add, 1, 1))
//		return nil
//	})
//
// A Context moves through configure -> compile -> relocate or emit. Compiler
// diagnostics are delivered only through the callback registered with
// SetErrorFunc; failed operations return errors from the taxonomy in the
// errors package with no message text of their own.
//
// Symbol addresses resolved from a Relocated image point into a buffer that
// is freed by Relocated.Close; they must not be used afterwards.
package tcc
