package rules

import (
	"fmt"
	"regexp"

	"github.com/Nytra/EnumerableToolkit/block"
	"github.com/Nytra/EnumerableToolkit/errors"
	"github.com/Nytra/EnumerableToolkit/pipeline"
	"github.com/Nytra/EnumerableToolkit/validation"
)

// Mode selects how often a rule inserts.
type Mode string

const (
	// ModeEvery inserts after every matching line.
	ModeEvery Mode = "every"
	// ModeFirst inserts after the first matching line only.
	ModeFirst Mode = "first"
)

// Rule describes one insertion.
type Rule struct {
	Name string `mapstructure:"name" validate:"required"`
	Mode Mode   `mapstructure:"mode" validate:"required,oneof=every first"`
	// Every matches each Every-th line (the Every-th, 2*Every-th, ...).
	Every int `mapstructure:"every" validate:"gte=0"`
	// Index matches the line at this zero-based position.
	Index *int `mapstructure:"index" validate:"omitempty,gte=0"`
	// Pattern matches lines containing a match of this regular expression.
	Pattern string `mapstructure:"pattern" validate:"omitempty,regexp"`
	// Insert holds the lines to insert.
	Insert []string `mapstructure:"insert"`
}

// Validate checks the rule's fields and that at least one condition is set.
func (r Rule) Validate() error {
	v := validation.New().
		Merge(validation.Validate(r)).
		Custom(r.Every > 0 || r.Index != nil || r.Pattern != "", "conditions",
			"at least one of every, index or pattern is required")
	if appErr := v.Validate(); appErr != nil {
		return appErr.WithDetail("rule", r.Name)
	}
	return nil
}

// Matcher is the Predicate of a rule.
type Matcher struct {
	every   int
	index   *int
	pattern *regexp.Regexp
}

// NewMatcher compiles the conditions of r.
func NewMatcher(r Rule) (*Matcher, error) {
	m := &Matcher{every: r.Every}
	if r.Index != nil {
		idx := *r.Index
		m.index = &idx
	}
	if r.Pattern != "" {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, errors.InvalidInput("pattern", err.Error()).WithCause(err)
		}
		m.pattern = re
	}
	return m, nil
}

// InsertAfter reports whether line at index satisfies every condition.
func (m *Matcher) InsertAfter(line string, index int) (bool, error) {
	if m.every > 0 && (index+1)%m.every != 0 {
		return false, nil
	}
	if m.index != nil && index != *m.index {
		return false, nil
	}
	if m.pattern != nil && !m.pattern.MatchString(line) {
		return false, nil
	}
	return true, nil
}

// Build validates r and returns its block, named after the rule.
func Build(r Rule) (block.Block[string], error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	m, err := NewMatcher(r)
	if err != nil {
		return nil, err
	}

	insert := pipeline.FromSlice(r.Insert)
	var blk block.Block[string]
	switch r.Mode {
	case ModeFirst:
		blk, err = block.NewInsertAfterFirstItemBlock[string](m, insert)
	default:
		blk, err = block.NewInsertAfterEveryItemBlock[string](m, insert)
	}
	if err != nil {
		return nil, err
	}
	return block.Named(blk, r.Name), nil
}

// BuildAll builds the blocks of rules in order. The first invalid rule
// fails the whole set.
func BuildAll(rules []Rule) ([]block.Block[string], error) {
	blocks := make([]block.Block[string], 0, len(rules))
	for i, r := range rules {
		blk, err := Build(r)
		if err != nil {
			if appErr, ok := errors.AsAppError(err); ok {
				return nil, appErr.WithDetail("position", i)
			}
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		blocks = append(blocks, blk)
	}
	return blocks, nil
}
