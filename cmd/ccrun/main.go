package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/tcc-runtime/tcc"
	"github.com/wippyai/tcc-runtime/vfs"
)

type stringList []string

func (l *stringList) String() string {
	return strings.Join(*l, ",")
}

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func main() {
	var (
		srcFile     = flag.String("src", "", "C source file to compile")
		runSym      = flag.String("run", "", "Symbol to invoke after in-memory compilation (int(void) convention)")
		outFile     = flag.String("out", "", "Output file for exe/dll/obj kinds")
		kindName    = flag.String("kind", "memory", "Output kind: memory|exe|dll|obj|preprocess")
		configFile  = flag.String("config", "", "TOML build profile")
		interactive = flag.Bool("i", false, "Interactive snippet console")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)
	var includes, sysIncludes, libPaths, defines stringList
	flag.Var(&includes, "I", "Include search path (repeatable)")
	flag.Var(&sysIncludes, "isystem", "System include search path (repeatable)")
	flag.Var(&libPaths, "L", "Library search path (repeatable)")
	flag.Var(&defines, "D", "Preprocessor define NAME[=VALUE] (repeatable)")
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		tcc.SetLogger(logger)
		vfs.SetLogger(logger)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *srcFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: ccrun -src <file.c> [-kind memory] [-run symbol]")
		fmt.Fprintln(os.Stderr, "       ccrun -src <file.c> -kind exe -out <file>")
		fmt.Fprintln(os.Stderr, "       ccrun -i  (interactive mode)")
		os.Exit(1)
	}

	profile, err := buildProfile(*configFile, includes, sysIncludes, libPaths, defines)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(profile, *srcFile, *kindName, *outFile, *runSym); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(profile Profile, srcFile, kindName, outFile, runSym string) error {
	kind, err := tcc.ParseOutputKind(kindName)
	if err != nil {
		return err
	}
	if profile.Output != "" && kindName == "memory" {
		if kind, err = tcc.ParseOutputKind(profile.Output); err != nil {
			return err
		}
	}

	return tcc.Scoped(func(s *tcc.Scope) error {
		ctx, err := s.Spawn()
		if err != nil {
			return err
		}

		if err := ctx.SetErrorFunc(func(msg string) {
			fmt.Fprintln(os.Stderr, msg)
		}); err != nil {
			return err
		}
		if err := ctx.SetOutputKind(kind); err != nil {
			return err
		}
		if err := profile.apply(ctx); err != nil {
			return err
		}

		if err := ctx.AddFile(srcFile); err != nil {
			return err
		}

		if kind != tcc.Memory {
			if outFile == "" {
				return fmt.Errorf("-out is required for kind %s", kind)
			}
			if err := ctx.OutputFile(outFile); err != nil {
				return err
			}
			fmt.Printf("wrote %s (%s)\n", outFile, kind)
			return nil
		}

		img, err := ctx.Relocate()
		if err != nil {
			return err
		}
		defer img.Close()

		if runSym == "" {
			fmt.Printf("compiled to memory (%d byte image)\n", img.Size())
			return nil
		}
		sym, ok := img.Symbol(runSym)
		if !ok {
			return fmt.Errorf("symbol %q not found in relocated image", runSym)
		}
		fmt.Printf("%s() = %d\n", runSym, tcc.CallInt0(sym))
		return nil
	})
}
