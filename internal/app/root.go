// internal/app/root.go
package app

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"offtarget/internal/cmdutil"
	"offtarget/internal/config"
	"offtarget/internal/dataset"
	"offtarget/internal/encode"
	"offtarget/internal/version"
)

// newRootCmd builds a fresh command tree so repeated Run calls share no
// flag state.
func newRootCmd(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:   "offtarget",
		Short: "Validate and encode sgRNA off-target datasets for model training",
		Long: `Validate sgRNA off-target activity tables and derive model features:
one-hot encodings of the genome/sgRNA pair (OR, stacked and 7-channel
mismatch matrices), GC content and the PAM motif. Also fetches sequence
embeddings from a remote encoder and scores saved model predictions.`,
		Version:       version.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.setup(cmd)
		},
	}
	root.SetVersionTemplate("offtarget version {{.Version}}\n")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageErr(err) })

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default ./"+config.DefaultFile+" if present)")
	pf.String("log-level", "info", "log level: debug | info | warn | error")
	pf.BoolP("quiet", "q", false, "only log errors [false]")

	root.AddCommand(
		newValidateCmd(e),
		newEnrichCmd(e),
		newEncodeCmd(e),
		newEmbedCmd(e),
		newMetricsCmd(e),
		newVersionCmd(e),
	)
	return root
}

// setup resolves configuration for the executing command and builds the logger.
func (e *env) setup(cmd *cobra.Command) error {
	file, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cmd.Flags(), file)
	if err != nil {
		return usageErr(err)
	}
	if err := config.Validate(&cfg); err != nil {
		return usageErr(err)
	}
	log, err := cmdutil.NewLogger(e.stderr, cfg.LogLevel, cfg.Quiet)
	if err != nil {
		return usageErr(err)
	}
	e.cfg, e.log = cfg, log
	if cfg.File != "" {
		log.Debug("config loaded", "file", cfg.File)
	}
	return nil
}

func newVersionCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			_, err := fmt.Fprintf(e.stdout, "offtarget version %s\n", version.Version)
			return runtimeErr(err)
		},
	}
}

func addInputFlags(fs *pflag.FlagSet) {
	fs.StringP("input", "i", "-", "dataset file (csv, tsv or jsonl; .gz ok) or '-' for stdin")
	fs.String("input-format", "", "input format: "+dataset.FormatCSV+" | "+dataset.FormatTSV+" | "+dataset.FormatJSONL+" (default from extension)")
}

func addOutputFlags(fs *pflag.FlagSet, def, usage string) {
	fs.StringP("output", "o", def, usage)
	fs.Bool("no-header", false, "suppress header line [false]")
}

func addFeatureFlags(fs *pflag.FlagSet) {
	fs.String("pam-location", encode.DefaultPAM.Location.String(), "PAM marked in the F channel: first | last | none")
	fs.Int("pam-length", encode.DefaultPAM.Length, "PAM length in nt [3]")
}
