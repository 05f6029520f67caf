package types

// AppConfig represents the complete application configuration. Composer
// settings (meter, rhyme scheme, limits) are loaded separately by
// internal/config.LoadComposerConfig.
type AppConfig struct {
	Verbose  bool           `mapstructure:"verbose"`
	Config   string         `mapstructure:"config"`
	Data     DataConfig     `mapstructure:"data" validate:"required"`
	Lexicon  LexiconConfig  `mapstructure:"lexicon"`
	Articles ArticlesConfig `mapstructure:"articles"`
	Keywords KeywordsConfig `mapstructure:"keywords"`
	Log      LogConfig      `mapstructure:"log"`
}

// DataConfig holds data storage configuration
type DataConfig struct {
	Dir      string `mapstructure:"dir" validate:"required"`
	Database string `mapstructure:"database" validate:"required"`
}

// LexiconConfig locates the annotated word lexicon
type LexiconConfig struct {
	Dir string `mapstructure:"dir"`
}

// ArticlesConfig locates saved news articles used for keyword extraction
type ArticlesConfig struct {
	Dir string `mapstructure:"dir"`
	// Extension of article files to read, e.g. ".html"
	Extension string `mapstructure:"extension" validate:"required,startswith=."`
}

// KeywordsConfig overrides keyword extraction with a fixed, ranked list
type KeywordsConfig struct {
	Static []string `mapstructure:"static" validate:"dive,required"`
}

// LogConfig controls the slog handler
type LogConfig struct {
	Format string `mapstructure:"format" validate:"omitempty,oneof=text json"`
}
