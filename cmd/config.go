package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/tagespoet/tagespoet/internal/config"
	"github.com/tagespoet/tagespoet/internal/logger"
	"github.com/tagespoet/tagespoet/types"
)

const (
	configName = ".tagespoet"
	envPrefix  = "TAGESPOET"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

// validate is a single instance of Validate, it caches struct info
var validate = validator.New()

// validateAppConfig performs validation on the AppConfig struct.
func validateAppConfig(cfg *types.AppConfig) error {
	return validate.Struct(cfg)
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig() {
	// It's okay if .env doesn't exist.
	_ = godotenv.Load()

	bindPersistentFlags()
	viper.SetEnvPrefix(envPrefix)                          // e.g., TAGESPOET_VERBOSE
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // TAGESPOET_DATA_DIR
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Project-local data dir first, then the user's global locations.
		if info, err := os.Stat(config.DataDirName); err == nil && info.IsDir() {
			viper.AddConfigPath(config.DataDirName)
		}
		if dir, err := config.GetGlobalDataDir(); err == nil {
			viper.AddConfigPath(dir)
		}
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(configName)
	}

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	} else {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if viper.GetBool("verbose") {
				fmt.Fprintln(os.Stderr, "No config file found. Using defaults and environment variables.")
			}
		} else {
			// Found but unreadable, or --config points nowhere.
			fmt.Fprintln(os.Stderr, "Error reading config file:", viper.ConfigFileUsed(), "-", err)
		}
	}

	viper.SetDefault("data.dir", config.GetDataDir())
	viper.SetDefault("data.database", config.DatabaseName)
	viper.SetDefault("articles.extension", ".html")
	viper.SetDefault("log.format", logger.FormatText)

	GlobalAppConfig = types.AppConfig{}
	if err := viper.Unmarshal(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error unmarshaling config: %s\n", err)
		os.Exit(1)
	}

	if err := validateAppConfig(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration validation error: %s\n", err)
		os.Exit(1)
	}

	logger.New(os.Stderr, GlobalAppConfig.Verbose, GlobalAppConfig.Log.Format)
	logger.SetBasePath(GlobalAppConfig.Data.Dir)
}

// GetConfig returns a pointer to the global types.AppConfig instance.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}
