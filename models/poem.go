package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// RunStatus is the outcome of one compose run.
type RunStatus string

const (
	RunOK   RunStatus = "ok"
	RunFail RunStatus = "fail"
)

// Poem is a finished poem. It is immutable once assembled and is the only
// artifact handed to the poem store.
type Poem struct {
	ID           string     `json:"id" validate:"required,uuid4"`
	Lines        [][]string `json:"lines" validate:"required,min=1,dive,min=1,dive,required"`
	Keywords     []string   `json:"keywords" validate:"dive,required"`
	KeywordCount int        `json:"keywordCount" validate:"min=1"`
	GeneratedAt  time.Time  `json:"generatedAt" validate:"required"`
	PublishAt    time.Time  `json:"publishAt" validate:"required"`
}

// Text returns the poem as plain text, one line per row.
func (p *Poem) Text() string {
	rows := make([]string, len(p.Lines))
	for i, line := range p.Lines {
		rows[i] = strings.Join(line, " ")
	}
	return strings.Join(rows, "\n")
}

// RunRecord is the log entry of one compose run.
type RunRecord struct {
	ID           string        `json:"id" validate:"required,uuid4"`
	StartedAt    time.Time     `json:"startedAt" validate:"required"`
	Status       RunStatus     `json:"status" validate:"required,oneof=ok fail"`
	KeywordCount int           `json:"keywordCount" validate:"min=0"`
	Elapsed      time.Duration `json:"elapsed" validate:"min=0"`
	PoemID       string        `json:"poemId,omitempty" validate:"omitempty,uuid4"`
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct performs validation on any struct that has validation tags.
func ValidateStruct(s interface{}) error {
	if validate == nil {
		validate = validator.New()
	}
	err := validate.Struct(s)
	if err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		var errorMessages []string
		for _, e := range validationErrors {
			errorMessages = append(errorMessages, fmt.Sprintf("Validation failed on field '%s': rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
		}
		return fmt.Errorf("%s", strings.Join(errorMessages, "; "))
	}
	return nil
}
