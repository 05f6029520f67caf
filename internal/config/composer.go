package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"github.com/tagespoet/tagespoet/internal/composer"
)

// LoadComposerConfig loads the meter, rhyme scheme and search limits from
// Viper with defaults, and validates the result.
func LoadComposerConfig() (composer.Config, error) {
	meterLines := getStringSliceWithDefault("composer.meter", DefaultMeter)
	meter := make([][]int, 0, len(meterLines))
	for i, line := range meterLines {
		pattern, err := composer.ParsePattern(line)
		if err != nil {
			return composer.Config{}, fmt.Errorf("composer.meter[%d]: %w", i, err)
		}
		meter = append(meter, pattern)
	}

	cfg := composer.Config{
		Meter:       meter,
		RhymeScheme: getIntSliceWithDefault("composer.rhymeScheme", DefaultRhymeScheme),
		Limits: composer.Limits{
			InitialKeywords: getIntWithDefault("composer.keywords.initial", DefaultInitialKeywords),
			KeywordStep:     getIntWithDefault("composer.keywords.step", DefaultKeywordStep),
			MaxKeywords:     getIntWithDefault("composer.keywords.max", DefaultMaxKeywords),
			LineRetryFactor: getIntWithDefault("composer.lineRetryFactor", DefaultLineRetryFactor),
			LineResetLimit:  getIntWithDefault("composer.lineResetLimit", DefaultLineResetLimit),
			TimeBudget:      getDurationWithDefault("composer.timeBudget", DefaultTimeBudget),
			MaxPoemResets:   getIntWithDefault("composer.maxPoemResets", DefaultMaxPoemResets),
		},
		Seed:          uint64(getIntWithDefault("composer.seed", 0)),
		PublishOffset: getDurationWithDefault("composer.publishOffset", DefaultPublishOffset),
	}
	if err := cfg.Validate(); err != nil {
		return composer.Config{}, err
	}
	return cfg, nil
}

// Helper functions for Viper with defaults

func getIntWithDefault(key string, defaultVal int) int {
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	return defaultVal
}

func getDurationWithDefault(key string, defaultVal time.Duration) time.Duration {
	if viper.IsSet(key) {
		return viper.GetDuration(key)
	}
	return defaultVal
}

func getStringSliceWithDefault(key string, defaultVal []string) []string {
	if viper.IsSet(key) {
		return viper.GetStringSlice(key)
	}
	return append([]string(nil), defaultVal...)
}

func getIntSliceWithDefault(key string, defaultVal []int) []int {
	if viper.IsSet(key) {
		return viper.GetIntSlice(key)
	}
	return append([]int(nil), defaultVal...)
}
