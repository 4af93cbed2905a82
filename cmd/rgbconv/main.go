package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/jsvensson/rgbconv/internal/config"
	"github.com/jsvensson/rgbconv/internal/engine"
	"github.com/jsvensson/rgbconv/internal/format"
	"github.com/jsvensson/rgbconv/internal/palette"
	"github.com/jsvensson/rgbconv/internal/verify"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

var (
	flagConfig  string
	flagAlt     bool
	flagPalette string
	flagApp     []string
	flagCheck   bool
	flagStep    int
	flagWorkers int
	version     = "dev" // Injected at build time via ldflags

	v        = viper.New()
	settings config.Settings
)

var rootCmd = &cobra.Command{
	Use:               "rgbconv",
	Short:             "Convert colors between RGB, HSL and HSV",
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

var convertCmd = &cobra.Command{
	Use:   "convert <from> <to> <a> <b> <c>",
	Short: "Convert one color between models",
	Long: `Convert one color between the rgb, hsl and hsv models.

RGB channels are integers in [0, 255]. HSL and HSV components, hue included,
are in [0, 1]. Conversions between hsl and hsv go through rgb.`,
	Example: `  rgbconv convert rgb hsl 255 127 80
  rgbconv convert hsl rgb 0.5 1 0.2 --alt`,
	Args: cobra.ExactArgs(5),
	RunE: runConvert,
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check round trips and invariants over the RGB cube",
	Args:  cobra.NoArgs,
	RunE:  runVerify,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render templates from a palette file",
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

var fmtCmd = &cobra.Command{
	Use:   "fmt [files...]",
	Short: "Format palette files",
	Long:  "Format one or more palette files in-place. Prints the name of each file that was modified.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	config.SetDefaults(v)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagConfig, "config", "", "config file (default is ./rgbconv.yaml)")
	flags.IntP(config.KeyVerbose, "v", 0, "log verbosity (-4 to 5)")
	flags.Int(config.KeyPrecision, 4, "decimals printed for hsl and hsv components")
	flags.Bool(config.KeyStrict, false, "reject out-of-range input instead of clamping")
	bindFlag(config.KeyVerbose, flags.Lookup(config.KeyVerbose))
	bindFlag(config.KeyPrecision, flags.Lookup(config.KeyPrecision))
	bindFlag(config.KeyStrict, flags.Lookup(config.KeyStrict))

	convertCmd.Flags().BoolVar(&flagAlt, "alt", false, "use the chroma-based HSL formula for hsl input")

	verifyCmd.Flags().IntVar(&flagStep, "step", 1, "stride through each RGB channel")
	verifyCmd.Flags().IntVar(&flagWorkers, "workers", 0, "parallel workers (default GOMAXPROCS)")

	generateCmd.Flags().StringVar(&flagPalette, "palette", "palette.hcl", "path to palette HCL file")
	generateCmd.Flags().String("out", "out", "output directory")
	generateCmd.Flags().String("templates", "templates", "templates directory")
	generateCmd.Flags().StringArrayVar(&flagApp, "app", nil, "generate only for specific apps (can be repeated)")
	bindFlag(config.KeyOutput, generateCmd.Flags().Lookup("out"))
	bindFlag(config.KeyTemplates, generateCmd.Flags().Lookup("templates"))

	fmtCmd.Flags().BoolVarP(&flagCheck, "check", "c", false, "check if files are formatted (do not write changes)")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(versionCmd)
}

func bindFlag(key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("failed to bind flag: %v", err))
	}
}

func initConfig(cmd *cobra.Command, args []string) error {
	if err := config.ReadInConfig(v, flagConfig); err != nil {
		return err
	}
	s, err := config.Load(v)
	if err != nil {
		return err
	}
	settings = s

	commonlog.Configure(settings.Verbose, nil)
	if used := v.ConfigFileUsed(); used != "" {
		commonlog.GetLogger("rgbconv").Infof("using config file %s", used)
	}
	return nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	out, err := convert(args[0], args[1], args[2:], flagAlt, settings.Strict, settings.Precision)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func runVerify(cmd *cobra.Command, args []string) error {
	rep, err := verify.Run(cmd.Context(), verify.Options{Step: flagStep, Workers: flagWorkers})
	if err != nil {
		return fmt.Errorf("verifying: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%d samples\n", rep.Samples)
	for _, res := range rep.Results {
		fmt.Fprintf(w, "%-15s checked %-9d failures %-6d max deviation %d\n",
			res.Property, res.Checked, res.Failures, res.MaxDeviation)
	}
	if !rep.OK() {
		return fmt.Errorf("verification failed: %s", rep.First)
	}
	fmt.Fprintln(w, "OK")
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	p, err := palette.Load(flagPalette)
	if err != nil {
		return fmt.Errorf("loading palette: %w", err)
	}

	e := &engine.Engine{
		TemplatesDir: settings.Templates,
		OutputDir:    settings.Output,
		Apps:         flagApp,
	}

	if err := e.Run(p); err != nil {
		return fmt.Errorf("generating: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated %d colors into %s\n", len(p.Entries), settings.Output)
	return nil
}

var errNeedsFormatting = errors.New("some files are not formatted")

func runFmt(cmd *cobra.Command, args []string) error {
	hasErrors := false
	needsFormatting := false

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error reading %s: %v\n", path, err)
			hasErrors = true
			continue
		}

		content := string(data)
		formatted, err := format.Format(content)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error formatting %s: %v\n", path, err)
			hasErrors = true
			continue
		}

		if formatted == content {
			continue
		}

		fmt.Fprintln(cmd.OutOrStdout(), path)
		needsFormatting = true

		if !flagCheck {
			if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error writing %s: %v\n", path, err)
				hasErrors = true
			}
		}
	}

	if hasErrors {
		return fmt.Errorf("formatting failed")
	}
	if flagCheck && needsFormatting {
		return errNeedsFormatting
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
