package help

import "strings"

// Version is the qc release version, set at build time via -ldflags.
// Defaults to "dev" when built without version injection (e.g. `go run`).
var Version = "dev"

// Flag describes a command-line flag.
type Flag struct {
	Name string // e.g. "--json" or "--model <name>"
	Desc string
}

// Arg describes a positional argument.
type Arg struct {
	Name     string // e.g. "query"
	Desc     string
	Optional bool
}

// Command describes a qc subcommand (or the top-level binary when Name is "").
type Command struct {
	Name        string   // "run", "check", etc; "" for top-level
	Synopsis    string   // one-line description (lowercase, for --help header)
	Brief       string   // short description for usage table (capitalized)
	Usage       string   // full usage line, e.g. "qc run [--json] <query>"
	TableUsage  string   // shortened usage for the top-level table (if different from Usage)
	Args        []Arg
	Flags       []Flag
	Description string   // multi-line prose (stored verbatim)
	Examples    []string // one per line, without leading 2-space indent
	SeeAlso     []string // man page cross-refs, e.g. "qc(1)"
}

// tableUsage returns TableUsage if set, otherwise Usage.
func (c Command) tableUsage() string {
	if c.TableUsage != "" {
		return c.TableUsage
	}
	return c.Usage
}

// ManName returns the man page name: "qc" for top-level, "qc-<name>" for subs.
func (c Command) ManName() string {
	if c.Name == "" {
		return "qc"
	}
	return "qc-" + strings.ReplaceAll(c.Name, " ", "-")
}

// TopLevel is the top-level qc command (used by FormatUsage).
var TopLevel = Command{
	Name:     "",
	Synopsis: "customer query triage via chained prompts",
}

var CmdRun = Command{
	Name:       "run",
	Synopsis:   "triage a customer query through the prompt chain",
	Brief:      "Triage a query through the 5-stage chain",
	Usage:      "qc run [--provider <name>] [--model <name>] [--timeout <seconds>] [--json] <query>",
	TableUsage: "qc run [flags] <query>",
	Args: []Arg{
		{Name: "query", Desc: "Customer query text (quote multi-word queries)"},
	},
	Flags: []Flag{
		{Name: "--provider <name>", Desc: "Override the configured provider (gemini, openai, or ollama)"},
		{Name: "--model <name>", Desc: "Override the configured model"},
		{Name: "--timeout <seconds>", Desc: "Override the per-stage timeout"},
		{Name: "--json", Desc: "Print the outcome as JSON"},
	},
	Description: `Runs the query through five sequential stages: intent
interpretation, category shortlisting, final category selection,
detail extraction, and response drafting. Each stage prompt carries
the customer query plus every earlier stage's completion.

If the stage 3 completion does not name a supported category, the
run continues as Uncategorized and the outcome is flagged. Any
provider error aborts the chain with the failing stage named.`,
	Examples: []string{
		`qc run "I was charged twice"              Triage with the configured provider`,
		`qc run --provider ollama "Reset my PIN"   Use a local model via ollama`,
		`qc run --json "Card declined abroad"      Print the outcome as JSON`,
	},
	SeeAlso: []string{"qc(1)", "qc-categories(1)", "qc-check(1)"},
}

var CmdCategories = Command{
	Name:     "categories",
	Synopsis: "list the supported triage categories",
	Brief:    "List the supported triage categories",
	Usage:    "qc categories",
	Description: `Prints the categories offered to the model in stage 2 and matched
against in stage 3, one per line. Uncategorized is the fallback
when no match is found; it is never offered to the model.`,
	SeeAlso: []string{"qc(1)", "qc-run(1)"},
}

var CmdCheck = Command{
	Name:     "check",
	Synopsis: "validate config and provider setup",
	Brief:    "Validate config and provider setup",
	Usage:    "qc check",
	Description: `Runs diagnostic checks and prints a pass/warn/FAIL report:
  - Config file location
  - Provider name (gemini, openai, or ollama)
  - Model is set
  - API key environment variable (not required for ollama)
  - Base URL parses when set
  - Per-stage timeout

No requests are sent to the provider. Exit code 0 if all checks
pass or warn, 1 if any check fails.`,
	SeeAlso: []string{"qc(1)", "qc-init(1)"},
}

var CmdInit = Command{
	Name:     "init",
	Synopsis: "write a default config file",
	Brief:    "Write a default config file",
	Usage:    "qc init",
	Description: `Writes a commented default config to ~/.config/query-chain/config.toml
(respecting $XDG_CONFIG_HOME). Existing config files are left
untouched.`,
	SeeAlso: []string{"qc(1)", "qc-check(1)"},
}

var CmdVersion = Command{
	Name:     "version",
	Synopsis: "print version",
	Brief:    "Print version",
	Usage:    "qc version",
	SeeAlso:  []string{"qc(1)"},
}

// Subcommands is the ordered list of all subcommands.
var Subcommands = []Command{
	CmdRun,
	CmdCategories,
	CmdCheck,
	CmdInit,
	CmdVersion,
}
