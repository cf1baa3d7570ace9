package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"featurize/pkg"
	"featurize/pkg/config"
)

type encoderFlags struct {
	configFile   string
	target       string
	features     []string
	numSplits    int
	alpha        float64
	rndSeed      int64
	dropOriginal bool
}

func (f *encoderFlags) register(flags *pflag.FlagSet) {
	defaults := config.Default()
	flags.StringVarP(&f.configFile, "config", "c", "", "YAML pipeline configuration (optional)")
	flags.StringVarP(&f.target, "target-column", "t", defaults.Target, "target column")
	flags.StringSliceVarP(&f.features, "features", "f", nil, "list of categorical columns to target encode")
	flags.IntVarP(&f.numSplits, "n-splits", "n", defaults.NumSplits, "number of folds for out-of-fold encoding")
	flags.Float64VarP(&f.alpha, "alpha", "a", defaults.Alpha, "smoothing strength")
	flags.Int64VarP(&f.rndSeed, "random-seed", "x", defaults.RndSeed, "random seed")
	flags.BoolVarP(&f.dropOriginal, "drop-original", "", defaults.DropOriginal, "drop the encoded categorical columns")
}

// load reads the configuration file, if any, and overrides it with the flags
// set on the command line.
func (f *encoderFlags) load(flags *pflag.FlagSet) (config.Config, error) {
	c := config.Default()
	if f.configFile != "" {
		var err error
		if c, err = config.Load(f.configFile); err != nil {
			return c, err
		}
	}
	if flags.Changed("target-column") {
		c.Target = f.target
	}
	if flags.Changed("features") {
		c.Features = f.features
	}
	if flags.Changed("n-splits") {
		c.NumSplits = f.numSplits
	}
	if flags.Changed("alpha") {
		c.Alpha = f.alpha
	}
	if flags.Changed("random-seed") {
		c.RndSeed = f.rndSeed
	}
	if flags.Changed("drop-original") {
		c.DropOriginal = f.dropOriginal
	}
	return c, c.Validate()
}

func ProcessCommand() *cobra.Command {
	var p pkg.FileParameters
	var ef encoderFlags

	var cmd = &cobra.Command{
		Use:   "process -i trainFile -o outputFile [--test-file testFile --test-output testOutputFile] [--model-file modelFile]",
		Short: "Cleans and encodes the training data and optionally the test data with the encoders fitted on it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := ef.load(cmd.Flags())
			if err != nil {
				return err
			}
			return pkg.ProcessFiles(p, c)
		},
	}

	cmd.Flags().StringVarP(&p.TrainFile, "train-file", "i", "", "name of train file")
	cmd.Flags().StringVarP(&p.TestFile, "test-file", "", "", "name of test file (optional)")
	cmd.Flags().StringVarP(&p.OutputFile, "output-file", "o", "", "name of the file to save the processed training data to")
	cmd.Flags().StringVarP(&p.TestOutputFile, "test-output", "", "", "name of the file to save the processed test data to")
	cmd.Flags().StringVarP(&p.ModelFile, "model-file", "m", "", "name of the file to save the fitted encoders to (optional)")
	ef.register(cmd.Flags())

	_ = cmd.MarkFlagRequired("train-file")
	_ = cmd.MarkFlagRequired("output-file")

	return cmd
}

func EncodeCommand() *cobra.Command {
	var inputFile string
	var outputFile string
	var ef encoderFlags

	var cmd = &cobra.Command{
		Use:   "encode -i inputFile -o outputFile [-f features]",
		Short: "Adds out-of-fold target encodings to the input data without cleaning it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := ef.load(cmd.Flags())
			if err != nil {
				return err
			}
			return pkg.EncodeFiles(inputFile, outputFile, c)
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "name of data input file")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "name of output file")
	ef.register(cmd.Flags())

	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func ApplyCommand() *cobra.Command {
	var modelFile string
	var inputFile string
	var outputFile string

	var cmd = &cobra.Command{
		Use:   "apply -m modelFile -i inputFile -o outputFile",
		Short: "Cleans and encodes the input data with previously fitted encoders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return pkg.ApplyFiles(modelFile, inputFile, outputFile)
		},
	}

	cmd.Flags().StringVarP(&modelFile, "model", "m", "", "name of the saved encoders")
	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "name of data input file")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "name of output file")

	_ = cmd.MarkFlagRequired("model")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func CleanCommand() *cobra.Command {
	var inputFile string
	var outputFile string

	var cmd = &cobra.Command{
		Use:   "clean -i inputFile -o outputFile",
		Short: "Applies the house price cleaning rules to the input data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return pkg.CleanFiles(inputFile, outputFile)
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "name of data input file")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "name of output file")

	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

var logLevel string
var logFormat string

func main() {

	Main := &cobra.Command{Use: "featurize", PersistentPreRun: setupLogging, SilenceUsage: true}

	Main.PersistentFlags().StringVarP(&logLevel, "log-level", "", "info", "Logging level: info error or debug")
	Main.PersistentFlags().StringVarP(&logFormat, "log-format", "", "pretty", "Logging format: pretty or json")

	Main.AddCommand(ProcessCommand())
	Main.AddCommand(EncodeCommand())
	Main.AddCommand(ApplyCommand())
	Main.AddCommand(CleanCommand())

	if err := Main.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func setupLogging(cmd *cobra.Command, args []string) {

	switch logLevel {
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	default:
		panic("Invalid logging level specified")
	}

	switch logFormat {
	case "pretty":
		setupPrettyLogging()
	case "json":
	default:
		panic("Invalid log format specified")

	}

}

func setupPrettyLogging() {
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	writer.FormatFieldValue = func(i interface{}) string {
		switch v := i.(type) {
		case json.Number:
			val, _ := v.Float64()
			return fmt.Sprintf("%.3f", val)
		default:
			return fmt.Sprintf("%s", i)
		}

	}
	log.Logger = log.Output(writer)

}
