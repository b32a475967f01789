package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name  string `json:"equipment_name" validate:"required"`
	Notes string `json:"notes,omitempty" validate:"max=5"`
	Plain string `validate:"required"`
}

func TestValidate_UsesJSONNames(t *testing.T) {
	errs := Validate(&sample{Notes: "too long"})

	assert.Equal(t, map[string]string{
		"equipment_name": "required",
		"notes":          "max",
		"Plain":          "required",
	}, errs)
}

func TestValidate_Valid(t *testing.T) {
	assert.Nil(t, Validate(&sample{Name: "Drill", Plain: "x"}))
}
