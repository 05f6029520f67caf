package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tagespoet/tagespoet/internal/logger"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables debug logging and technical error output.
	verbose bool
	// jsonOutput switches read commands to JSON.
	jsonOutput bool
	// version is the application version.
	version = "0.3.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tagespoet",
	Short: "tagespoet writes a daily poem from the news",
	Long: `tagespoet composes a short rhymed poem in a fixed German meter from the
keywords of the day's news articles and stores it for publication.

Run "tagespoet compose" once per period, e.g. from cron.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVersion(version)
		logger.SetCommand(cmd.CommandPath())
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		PrintError(userMessage(err), err)
		os.Exit(exitCode(err))
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.tagespoet/.tagespoet.yaml or $HOME/.tagespoet.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print JSON instead of text")

	bindPersistentFlags()
}

// bindPersistentFlags binds the global flags to Viper. It is repeated after
// every viper.Reset.
func bindPersistentFlags() {
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

// GetVersion returns the application version.
func GetVersion() string {
	return version
}
