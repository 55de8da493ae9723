package main

import (
	"fmt"
	"os"

	"github.com/picoshell-dev/picoshell/alloc"
	"github.com/picoshell-dev/picoshell/console"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "picoshell [script]",
	Short: "Interactive shell for the picoshell string runtime",
	Long: `picoshell drives the mutable string objects of the picoshell runtime
through their operator table. Run it without arguments for an interactive
session, or pass a script file of shell commands.`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		processGlobalFlags()

		var allocator alloc.Allocator
		var pool *alloc.Pool
		if budget := viper.GetInt("pool"); budget > 0 {
			pool = alloc.NewPool(budget)
			allocator = pool
		} else {
			allocator = alloc.NewHeap()
		}

		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(zerolog.Disabled)
		var diag console.Console = console.NewWriter(os.Stderr)
		if viper.GetBool("verbose") {
			logger = logger.Level(zerolog.DebugLevel).With().Timestamp().Logger()
			diag = console.NewLogger(logger)
		}

		shell := NewShell(allocator, pool, diag, logger, os.Stdout)

		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			return shell.RunScript(f)
		}
		if isTerminalIO() {
			return shell.RunInteractive(os.Stdin)
		}
		return shell.RunScript(os.Stdin)
	},
}

func init() {
	rootCmd.Flags().Int("pool", 0, "Byte budget for string storage (0 = unbounded)")
	rootCmd.Flags().Bool("verbose", false, "Log runtime events")
	rootCmd.Flags().Bool("no-color", false, "Disable colored output")
	viper.BindPFlags(rootCmd.Flags())
	viper.SetEnvPrefix("picoshell")
	viper.AutomaticEnv()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fatal(err)
	}
}

func fatal(msg interface{}) {
	var s string
	switch msg := msg.(type) {
	case string:
		s = msg
	case error:
		s = msg.Error()
	default:
		s = fmt.Sprintf("%v", msg)
	}
	fmt.Fprintf(os.Stderr, "%s\n", red(s))
	os.Exit(1)
}
