// Command ti parses the literal language and reports the structural type of
// every top-level expression. With no arguments it parses a built-in demo
// program; `ti run <file>` parses a file, and `ti repl` starts an
// interactive loop.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	infer "github.com/Takashiidobe/type-inference"
)

const (
	appName     = "ti"
	historyFile = ".ti_history"
	promptMain  = "==> "
)

var banner = fmt.Sprintf("type-inference %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", infer.Version)

func red(s string) string  { return "\x1b[31m" + s + "\x1b[0m" }
func blue(s string) string { return "\x1b[94m" + s + "\x1b[0m" }

// demoProgram is the fixed input parsed when no command is given.
const demoProgram = `let config: map[i64|str|bool, i64|str|bool] = {10: false, "debug": true};
let xs = [[1], 2, 3];
let name: str = "type-inference";
{ "key": 2, [1]: 3 };
`

func main() {
	if len(os.Args) < 2 {
		os.Exit(runSource(demoProgram))
	}

	switch cmd := os.Args[1]; cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl())
	case "version":
		fmt.Println(infer.Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`type-inference %s

Usage:
  %s                Parse the built-in demo program and print each expression.
  %s run <file>     Parse a file.
  %s repl           Start the REPL.
  %s version        Print the version.

`, infer.Version, appName, appName, appName, appName)
}

func cmdRun(args []string) int {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run <file>\n", appName)
		return 2
	}
	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, args[0], err)
		return 1
	}
	return runSource(string(src))
}

// runSource parses src and prints each top-level expression with its type
// list. Parse failures render as caret snippets.
func runSource(src string) int {
	exprs, err := infer.Parse(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, infer.WrapErrorWithSource(err, src).Error())
		return 1
	}
	for _, e := range exprs {
		fmt.Printf("%s :: %s\n", e, infer.FormatTypes(infer.TypesOf(e)))
	}
	return 0
}

func cmdRepl() (ret int) {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		code, err := ln.Prompt(promptMain)
		if err == liner.ErrPromptAborted { // Ctrl+C cancels the line
			continue
		}
		if err != nil { // Ctrl+D exits
			fmt.Println()
			return 0
		}

		if strings.HasPrefix(strings.TrimSpace(code), ":") {
			switch strings.TrimSpace(strings.ToLower(code)) {
			case ":quit":
				return 0
			default:
				fmt.Printf("unknown command. Type :quit to exit.\n")
			}
			continue
		}

		if strings.TrimSpace(code) == "" {
			continue
		}

		exprs, perr := infer.Parse(code)
		if perr != nil {
			fmt.Fprintln(os.Stderr, red(infer.WrapErrorWithSource(perr, code).Error()))
			continue
		}
		for _, e := range exprs {
			fmt.Printf("%s :: %s\n", blue(e.String()), infer.FormatTypes(infer.TypesOf(e)))
		}
		ln.AppendHistory(code)
	}
}
