package main

import (
	"fmt"
	"os"

	"github.com/dnephin/pflag"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/parlance-lang/parlance/source/database"
	"github.com/parlance-lang/parlance/source/hub"
	"github.com/parlance-lang/parlance/source/repl"
	"github.com/parlance-lang/parlance/source/settings"
	"github.com/parlance-lang/parlance/source/text"
)

type options struct {
	config    string
	logLevel  string
	noHistory bool
	version   bool
	help      bool
	args      []string // The script and its arguments, if any.
}

func setupFlags(name string) (*pflag.FlagSet, *options) {
	opts := &options{}
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.SetInterspersed(false) // Everything after the script's name belongs to the script.
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, text.HELP)
		flags.PrintDefaults()
	}
	flags.StringVar(&opts.config, "config", "", "the configuration file")
	flags.StringVar(&opts.logLevel, "log-level", "", "trace, debug, info, warn or error")
	flags.BoolVar(&opts.noHistory, "no-history", false, "don't load or save the REPL's history")
	flags.BoolVar(&opts.version, "version", false, "show the version and exit")
	flags.BoolVarP(&opts.help, "help", "h", false, "show this help and exit")
	return flags, opts
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags, opts := setupFlags("parlance")
	if e := flags.Parse(args); e != nil {
		return 2
	}
	opts.args = flags.Args()
	if opts.help {
		flags.Usage()
		return 0
	}
	if opts.version {
		fmt.Println("parlance version " + text.VERSION)
		return 0
	}
	config, e := settings.LoadConfig(opts.config)
	if e != nil {
		fmt.Fprintln(os.Stderr, "parlance: "+e.Error())
		return 1
	}
	if opts.logLevel != "" {
		config.LogLevel = opts.logLevel
	}
	level, e := config.Level()
	if e != nil {
		fmt.Fprintln(os.Stderr, "parlance: "+e.Error())
		return 1
	}
	setupLogging(level)

	if len(opts.args) > 0 {
		if e := hub.RunScript(opts.args[0], opts.args[1:], os.Stdout); e != nil {
			fmt.Fprint(os.Stderr, hub.DescribeErr(e, text.TerminalWidth()))
			return 1
		}
		return 0
	}

	history := database.NewInMemory()
	if !opts.noHistory {
		history = database.OpenOrMemory(config.History)
	}
	defer history.Close()
	fmt.Print(text.Logo())
	hb := hub.New(os.Stdout, config, history)
	if e := repl.Start(hb, repl.NewLineReader(hb)); e != nil {
		log.Error().Err(e).Msg("reading input")
		return 1
	}
	return 0
}

// Human-readable logs for a person at a terminal, JSON for anything else.
func setupLogging(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
	if isatty.IsTerminal(os.Stderr.Fd()) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		return
	}
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}
