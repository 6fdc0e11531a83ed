// Package types provides type definitions for the structured data exchanged by the résumé roaster.
package types

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Count is a non-fractional metric. Models often emit whole numbers as
// floats (3.0), so those decode too; 2.5 does not.
type Count int

// UnmarshalJSON accepts JSON integers and integral floats.
func (c *Count) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("count must be a number: %w", err)
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return fmt.Errorf("count must be a whole number, got %v", f)
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return fmt.Errorf("count out of range: %v", f)
	}
	*c = Count(f)
	return nil
}

// ResumeMetrics is the fourteen-field roast produced by the model for one résumé.
// Percentages are 0-100; rates and counts are non-negative.
type ResumeMetrics struct {
	BuzzwordBingo    Count   `json:"buzzwordBingo" validate:"gte=0"`
	FluffFactor      float64 `json:"fluffFactor" validate:"gte=0,lte=100"`
	PassivePatty     Count   `json:"passivePatty" validate:"gte=0"`
	SuperlativeSlam  Count   `json:"superlativeSlam" validate:"gte=0"`
	JargonJolt       float64 `json:"jargonJolt" validate:"gte=0"`
	NumberCruncher   Count   `json:"numberCruncher" validate:"gte=0"`
	VerbVibes        float64 `json:"verbVibes" validate:"gte=0,lte=100"`
	SentenceSauna    float64 `json:"sentenceSauna" validate:"gte=0,lte=100"`
	HyperboleHunter  Count   `json:"hyperboleHunter" validate:"gte=0"`
	PunctuationParty float64 `json:"punctuationParty" validate:"gte=0"`
	RoastCharacter   string  `json:"roastCharacter" validate:"notblank"`
	RoastScore       Count   `json:"roastScore" validate:"gte=0,lte=100"`
	TopBuzzword      string  `json:"topBuzzword"`
	Name             string  `json:"name"`
}

var metricsValidator = newMetricsValidator()

func newMetricsValidator() *validator.Validate {
	v := validator.New()
	// Report JSON field names so errors match what the model sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// RangeViolation describes one metric outside its allowed range.
type RangeViolation struct {
	Field string
	Rule  string
	Value interface{}
}

// RangeError lists every out-of-range metric.
type RangeError struct {
	Violations []RangeViolation
}

func (e *RangeError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = fmt.Sprintf("%s=%v fails %s", v.Field, v.Value, v.Rule)
	}
	return "metrics out of range: " + strings.Join(parts, "; ")
}

// Validate checks every metric is within its documented range.
func (m *ResumeMetrics) Validate() error {
	err := metricsValidator.Struct(m)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	rangeErr := &RangeError{Violations: make([]RangeViolation, 0, len(validationErrors))}
	for _, fe := range validationErrors {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		rangeErr.Violations = append(rangeErr.Violations, RangeViolation{
			Field: fe.Field(),
			Rule:  rule,
			Value: fe.Value(),
		})
	}
	return rangeErr
}
