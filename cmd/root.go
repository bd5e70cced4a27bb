package cmd

import (
	"io/ioutil"
	"log"
	"os"

	"github.com/josephlewis42/rash/core/config"
	"github.com/josephlewis42/rash/core/logger"
	"github.com/josephlewis42/rash/core/shell"
	"github.com/josephlewis42/rash/core/ttylog"
	"github.com/josephlewis42/rash/core/vos"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// EnvDebug enables operator logging on stderr when set to a non-empty value.
const EnvDebug = "RASH_DEBUG"

// exitCode is set by the root command and used as the process status.
var exitCode int

// rootCmd represents the shell itself. Flag parsing is disabled so the
// arguments follow sh(1) conventions rather than cobra's.
var rootCmd = &cobra.Command{
	Use:   "rash [-c command [name] | -s | -i | script] [argument...]",
	Short: "the rash you actually want",
	Long: `A minimal command interpreter.

Lines are read from standard input, a script file or a -c argument, split on
spaces and run as programs. The shell exits with the status of the last one.`,
	DisableFlagParsing: true,
	SilenceErrors:      true,
	SilenceUsage:       true,
	RunE: func(cmd *cobra.Command, args []string) error {
		argv := append([]string{os.Args[0]}, args...)
		exitCode = runShell(argv, vos.NewVIOAdapter(os.Stdin, cmd.OutOrStdout(), cmd.ErrOrStderr()))
		return nil
	},
}

func runShell(argv []string, vio vos.VIO) int {
	operatorLog := log.New(ioutil.Discard, "", 0)
	if os.Getenv(EnvDebug) != "" {
		operatorLog = log.New(vio.Stderr(), shell.Name+": ", 0)
	}

	fsys := afero.NewOsFs()
	cfg, err := config.LoadFromEnv()
	if err != nil {
		// A bad config shouldn't stop the shell from starting.
		log.New(vio.Stderr(), shell.Name+": ", 0).Printf("ignoring config: %v", err)
		cfg = config.Default()
	}

	if cfg.Transcript != "" {
		castFd, err := cfg.OpenTranscript(fsys)
		if err != nil {
			operatorLog.Printf("couldn't open transcript: %v", err)
		} else {
			defer castFd.Close()
			sink := ttylog.NewAsciicastLogSink(castFd, ttylog.AsciicastHeader{
				Title: shell.Name + " session",
				Shell: argv[0],
				Term:  os.Getenv("TERM"),
			})
			vio = ttylog.NewRecorder(vio, sink, operatorLog)
		}
	}

	opts := []shell.Option{
		shell.WithIO(vio),
		shell.WithConfig(cfg),
		shell.WithLogger(operatorLog),
	}

	if cfg.EventLog != "" {
		logFd, err := cfg.OpenEventLog(fsys)
		if err != nil {
			operatorLog.Printf("couldn't open event log: %v", err)
		} else {
			defer logFd.Close()
			opts = append(opts, shell.WithEventLogger(logger.NewJsonLinesLogRecorder(logFd)))
		}
	}

	return shell.Main(argv, opts...)
}

// Execute runs the shell and exits the process with its status.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
	os.Exit(exitCode)
}
