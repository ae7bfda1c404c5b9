package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"trio/internal/trio"
)

const banner = `trio v0.2.0 — one runtime, three dialects
Dialects: pi (postfix), rho (infix+tabs), tau (futures)
Commands: :quit, :help, :pi, :rho, :tau, :save, :load, :gen
Use ` + "`command`" + ` to run host shell commands
`

const helpText = `Dialects:
  :pi   postfix/RPN          3 4 +
  :rho  infix with tabs      3 + 4 * 5
  :tau  futures              f = async 5 + 5 ; await f

Commands:
  :save <file>        write the session variables to a snapshot
  :load <file>        restore variables from a snapshot
  :gen <mode> <file>  emit proxy|agent stubs for a source file
  :help               this text
  :quit               exit

Common:
  colors              color(255,0,0), blend(a,b), scale(c,2), mix(a,b,0.5)
  arrays and maps     [1,2,3]   [{"x",100},{"y",200}]   arr[0]
  continuations       continue <v>, resume, break
  shell               ` + "`ls`, `echo hello`" + `
`

func red(s string) string { return "\x1b[31m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "run":
			os.Exit(cmdRun(os.Args[2:]))
		case "gen":
			os.Exit(cmdGen(os.Args[2:]))
		case "repl":
			os.Exit(cmdRepl())
		case "-h", "--help", "help":
			usage()
			return
		default:
			usage()
			os.Exit(2)
		}
	}
	os.Exit(cmdRepl())
}

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  trio                      - Start the REPL")
	fmt.Println("  trio run <file>           - Run a script (.pi/.rho/.tau)")
	fmt.Println("  trio gen <mode> <file>    - Generate proxy|agent stubs")
}

func loadConfig() *trio.Config {
	cfg, err := trio.LoadConfig(trio.FindConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		return trio.DefaultConfig()
	}
	return cfg
}

func cmdRun(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: trio run <file>")
		return 2
	}
	path := args[0]
	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		return 1
	}

	dialect := "rho"
	switch filepath.Ext(path) {
	case ".pi":
		dialect = "pi"
	case ".tau":
		dialect = "tau"
	}

	session := trio.NewSession(dialect)
	result, err := session.EvalSource(string(content))
	if err != nil {
		fmt.Fprintln(os.Stderr, trio.FormatError(err))
		return 1
	}
	fmt.Println(trio.Format(result))
	return 0
}

func cmdGen(args []string) int {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: trio gen <proxy|agent> <file>")
		return 2
	}
	cfg := loadConfig()
	header, impl, err := trio.Generate(args[1], trio.GenMode(args[0]), cfg.GenDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("wrote %s\n", header)
	fmt.Printf("wrote %s\n", impl)
	return 0
}

func cmdRepl() int {
	cfg := loadConfig()
	fmt.Print(banner)

	session := trio.NewSession(cfg.Dialect)
	fmt.Printf("Current dialect: %s\n\n", session.Dialect)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, cfg.HistoryFile)

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
		input, ok := readInput(ln, cfg.Prompt, session.Dialect)
		if !ok {
			fmt.Println()
			return 0
		}
		trimmed := strings.TrimSpace(input)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(input, "\n", " "))

		if strings.HasPrefix(trimmed, ":") {
			if quit := replCommand(session, cfg, trimmed); quit {
				return 0
			}
			continue
		}

		// Backtick spans splice shell output into the line before parsing.
		if strings.ContainsRune(input, '`') && session.Dialect != "rho" {
			out, err := session.SpliceBackticks(input)
			if err != nil {
				fmt.Fprintln(os.Stderr, red(trio.FormatError(err)))
				continue
			}
			fmt.Println(out)
			continue
		}

		result, err := session.EvalSource(input)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(trio.FormatError(err)))
			continue
		}
		fmt.Println(trio.Format(result))
	}
}

// readInput reads one logical unit. In the indented dialects a for/while
// header keeps reading body lines until a blank line.
func readInput(ln *liner.State, prompt, dialect string) (string, bool) {
	line, err := ln.Prompt(prompt)
	if err != nil {
		return "", false
	}
	trimmed := strings.TrimSpace(line)
	if dialect == "pi" || (!strings.HasPrefix(trimmed, "for ") && !strings.HasPrefix(trimmed, "while ")) {
		return line, true
	}

	lines := []string{line}
	for {
		more, err := ln.Prompt("... ")
		if err != nil || strings.TrimSpace(more) == "" {
			break
		}
		lines = append(lines, more)
	}
	return strings.Join(lines, "\n"), true
}

// replCommand handles a :command; returns true when the REPL should exit.
func replCommand(session *trio.Session, cfg *trio.Config, input string) bool {
	fields := strings.Fields(input)
	switch fields[0] {
	case ":quit", ":q":
		fmt.Println("Goodbye!")
		return true
	case ":help", ":h":
		fmt.Print(helpText)
	case ":pi", ":rho", ":tau":
		name := strings.TrimPrefix(fields[0], ":")
		_ = session.SetDialect(name)
		fmt.Printf("Switched to %s\n", name)
	case ":save":
		if len(fields) != 2 {
			fmt.Println("Usage: :save <file>")
			break
		}
		if err := trio.SaveSession(fields[1], session.Env); err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			break
		}
		fmt.Printf("saved session to %s\n", fields[1])
	case ":load":
		if len(fields) != 2 {
			fmt.Println("Usage: :load <file>")
			break
		}
		if err := trio.LoadSession(fields[1], session.Env); err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			break
		}
		fmt.Printf("loaded session from %s\n", fields[1])
	case ":gen":
		if len(fields) != 3 {
			fmt.Println("Usage: :gen <proxy|agent> <file>")
			break
		}
		header, impl, err := trio.Generate(fields[2], trio.GenMode(fields[1]), cfg.GenDir)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			break
		}
		fmt.Printf("wrote %s\nwrote %s\n", header, impl)
	default:
		fmt.Printf("Unknown command: %s\n", fields[0])
	}
	return false
}
