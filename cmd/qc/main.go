package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/johns/query-chain/internal/category"
	"github.com/johns/query-chain/internal/chain"
	"github.com/johns/query-chain/internal/check"
	"github.com/johns/query-chain/internal/config"
	"github.com/johns/query-chain/internal/help"
	"github.com/johns/query-chain/internal/llm"
	"github.com/johns/query-chain/internal/render"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	// `qc <command> --help` is the same as `qc help <command>`
	if len(os.Args) > 2 && (os.Args[2] == "--help" || os.Args[2] == "-h") {
		commandHelp(os.Args[1])
		return
	}

	switch os.Args[1] {
	case "run":
		runQuery(os.Args[2:])

	case "categories":
		for _, c := range category.All() {
			fmt.Println(c)
		}

	case "check":
		cfg, err := config.Load()
		if err != nil {
			fatal("load config: %v", err)
		}
		report := check.Run(cfg)
		fmt.Print(report.Format())
		if report.HasFailures() {
			os.Exit(1)
		}

	case "init":
		path, created, err := config.WriteDefault()
		if err != nil {
			fatal("init: %v", err)
		}
		if created {
			fmt.Printf("wrote %s\n", config.CompressHome(path))
		} else {
			fmt.Printf("config already exists: %s\n", config.CompressHome(path))
		}

	case "version":
		fmt.Printf("qc v%s (query-chain)\n", help.Version)

	case "help", "--help", "-h":
		if len(os.Args) > 2 {
			commandHelp(os.Args[2])
			return
		}
		usage()

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

// runQuery handles `qc run`: flag parsing, provider construction, the chain
// itself, and outcome rendering.
func runQuery(args []string) {
	cfg, err := config.Load()
	if err != nil {
		fatal("load config: %v", err)
	}

	var (
		jsonOut bool
		words   []string
	)
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--provider":
			i++
			if i >= len(args) {
				fatal("--provider needs a value")
			}
			cfg.Provider.Name = args[i]
		case "--model":
			i++
			if i >= len(args) {
				fatal("--model needs a value")
			}
			cfg.Provider.Model = args[i]
		case "--timeout":
			i++
			if i >= len(args) {
				fatal("--timeout needs a value")
			}
			secs, err := strconv.Atoi(args[i])
			if err != nil || secs <= 0 {
				fatal("--timeout: want seconds > 0, got %q", args[i])
			}
			cfg.Provider.TimeoutSeconds = secs
		case "--json":
			jsonOut = true
		default:
			if strings.HasPrefix(args[i], "--") {
				fatal("unknown flag: %s", args[i])
			}
			words = append(words, args[i])
		}
	}

	if len(words) == 0 {
		fatal("usage: %s", help.CmdRun.Usage)
	}

	client, err := llm.New(cfg.Provider)
	if err != nil {
		fatal("%v", err)
	}

	runner := chain.NewRunner(client, cfg.Provider.Timeout())
	outcome, err := runner.Run(context.Background(), strings.Join(words, " "))
	if err != nil {
		fatal("%v", err)
	}

	if jsonOut {
		out, err := render.OutcomeJSON(outcome)
		if err != nil {
			fatal("encode outcome: %v", err)
		}
		fmt.Print(out)
		return
	}
	fmt.Print(render.Outcome(outcome))
}

func commandHelp(name string) {
	// "help" itself is advertised in the usage table but is not a Subcommand.
	if name == "help" || name == "--help" || name == "-h" {
		usage()
		return
	}
	for _, cmd := range help.Subcommands {
		if cmd.Name == name {
			fmt.Print(help.FormatTerminal(cmd))
			return
		}
	}
	fmt.Fprintf(os.Stderr, "unknown command: %s\n", name)
	usage()
	os.Exit(1)
}

func usage() {
	fmt.Fprint(os.Stderr, help.FormatUsage(help.TopLevel, help.Subcommands))
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "qc: "+format+"\n", args...)
	os.Exit(1)
}
