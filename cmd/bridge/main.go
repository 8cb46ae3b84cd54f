package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/runtime-bridge/config"
	"github.com/wippyai/runtime-bridge/engine"
	"github.com/wippyai/runtime-bridge/runtime"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to bridge TOML config")
		funcName    = flag.String("func", "", "Foreign function to call")
		argsStr     = flag.String("args", "", "Comma-separated argument literals (10, 2.5, 'text', true, none, [1, 2])")
		list        = flag.Bool("list", false, "List playground functions and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if cfg.Debug {
		if l, err := zap.NewDevelopment(); err == nil {
			engine.SetLogger(l)
		}
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *list {
		for _, f := range playgroundFuncs {
			fmt.Println(formatSignature(f))
		}
		return
	}

	if *funcName == "" {
		fmt.Fprintln(os.Stderr, "Usage: bridge -func <name> [-args literals] [-config file.toml]")
		fmt.Fprintln(os.Stderr, "       bridge -list")
		fmt.Fprintln(os.Stderr, "       bridge -i  (interactive mode)")
		os.Exit(1)
	}

	if err := run(cfg, *funcName, *argsStr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Options, funcName, argsStr string) error {
	ctx := context.Background()

	eng := newPlayground()
	sess, err := runtime.New(ctx, eng, runtime.WithMarshalOptions(cfg.Marshal()))
	if err != nil {
		return err
	}
	defer sess.Close(ctx)

	args, err := parseArgs(argsStr)
	if err != nil {
		return err
	}

	// show both sides of the boundary: the foreign form of each argument
	// and the host form of the result
	for i, a := range args {
		fv, err := sess.Marshaller().ToForeign(a)
		if err != nil {
			return err
		}
		fmt.Printf("arg[%d] -> %s\n", i, fv)
	}

	result, err := sess.Call(ctx, funcName, args...)
	if err != nil {
		return err
	}
	fmt.Printf("%s = %v\n", funcName, result)
	return nil
}
