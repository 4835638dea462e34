package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/RyanBlaney/sonido-unmix/logging"
	"github.com/RyanBlaney/sonido-unmix/transform"
)

const envPrefix = "SONIDO_UNMIX"

var (
	configFile string
	verbose    bool
	nFFT       int
	nHop       int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sonido-unmix",
	Short: "Spectrogram analysis frontend for source separation",
	Long: `Time-frequency transform tooling for source separation pipelines.

The analyze command converts a WAV file into a magnitude spectrogram summary
the way the separation frontend sees it; the roundtrip command verifies the
perfect-reconstruction contract of the forward/inverse transform pair on a
real file.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default is $HOME/.config/sonido-unmix/sonido-unmix.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose output")
	rootCmd.PersistentFlags().IntVar(&nFFT, "n-fft", transform.DefaultNFFT,
		"transform FFT size")
	rootCmd.PersistentFlags().IntVar(&nHop, "n-hop", transform.DefaultNHop,
		"hop size between frames")
}

// initializeConfig layers the config file and environment over flag defaults
func initializeConfig(cmd *cobra.Command) error {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home + "/.config/sonido-unmix")
		}
		v.SetConfigName("sonido-unmix")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; a broken one is not
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configFile != "" {
			return err
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	bindFlags(cmd, v)

	if verbose {
		logging.SetLevel(logging.DebugLevel)
	}

	return nil
}

// bindFlags overrides unset flags with matching viper values
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if !f.Changed && v.IsSet(f.Name) {
			_ = cmd.Flags().Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})
}
