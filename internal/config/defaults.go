// Package config provides centralized configuration defaults and loaders for
// tagespoet. All default values should be defined here to ensure a single
// source of truth.
package config

import "time"

// DefaultMeter is a six-line dactylic stanza; 1 is a stressed and 0 an
// unstressed syllable. Lines 3 and 6 end on a stressed syllable.
var DefaultMeter = []string{
	"10010010010",
	"10010010010",
	"1001001001",
	"10010010010",
	"10010010010",
	"1001001001",
}

// DefaultRhymeScheme pairs lines 1+2, 3+6 and 4+5.
var DefaultRhymeScheme = []int{1, 1, 2, 3, 3, 2}

// Keyword escalation defaults
const (
	// DefaultInitialKeywords is the keyword count of the first candidate pool
	DefaultInitialKeywords = 20

	// DefaultKeywordStep is added to the keyword count on every escalation
	DefaultKeywordStep = 5

	// DefaultMaxKeywords is the keyword ceiling; escalating past it ends the run
	DefaultMaxKeywords = 35
)

// Search defaults
const (
	// DefaultLineRetryFactor × pool size rejected draws exhaust a line attempt
	DefaultLineRetryFactor = 3

	// DefaultLineResetLimit line exhaustions reset the whole poem
	DefaultLineResetLimit = 100

	// DefaultTimeBudget is the wall-clock budget per pool size
	DefaultTimeBudget = 60 * time.Second

	// DefaultMaxPoemResets disables the poem reset ceiling
	DefaultMaxPoemResets = 0
)

// DefaultPublishOffset moves a poem generated in the early morning onto the
// day it is published for.
const DefaultPublishOffset = 6 * time.Hour

// Directory names below the data directory
const (
	DataDirName     = ".tagespoet"
	LexiconDirName  = "lexicon"
	ArticlesDirName = "articles"
	DatabaseName    = "tagespoet.db"
)
