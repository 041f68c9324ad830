package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registration struct {
	Email string `json:"email" validate:"required,email,max=255"`
	Name  string `json:"name" validate:"required,min=2,max=100,personname,nohtml"`
	Phone string `json:"phoneNumber" validate:"omitempty,phone"`
}

func TestStruct_Valid(t *testing.T) {
	fields, err := Struct(registration{Email: "ann@example.com", Name: "Ann-Marie O'Neil", Phone: "+14155550100"})
	require.NoError(t, err)
	assert.Nil(t, fields)
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	fields, err := Struct(registration{Email: "not-an-email", Name: "A", Phone: "0123"})
	require.NoError(t, err)
	assert.Equal(t, "must be a valid email address", fields["email"])
	assert.Equal(t, "must be at least 2 characters", fields["name"])
	assert.Equal(t, "must be a valid phone number", fields["phoneNumber"])
}

func TestStruct_NonStructInput(t *testing.T) {
	fields, err := Struct(42)
	assert.Error(t, err)
	assert.Nil(t, fields)
}

func TestIsPersonName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "simple", in: "Alice", want: true},
		{name: "unicode letters", in: "Zoë Ångström", want: true},
		{name: "hyphen and apostrophe", in: "Jean-Luc O'Hara", want: true},
		{name: "digits", in: "R2D2", want: false},
		{name: "too many words", in: "a b c d e f g h i j k", want: false},
		{name: "too many specials", in: "a-'-b", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isPersonName(tt.in))
		})
	}
}

func TestIsTaskTitle(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "plain", in: "Write docs", want: true},
		{name: "punctuation", in: "Fix bug #42, then ship!", want: true},
		{name: "symbols are rejected", in: "Pay $100", want: false},
		{name: "mostly punctuation", in: "!!!a", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isTaskTitle(tt.in))
		})
	}
}

func TestIsFreeText(t *testing.T) {
	assert.True(t, isFreeText(""))
	assert.True(t, isFreeText("Call Bob at 5 p.m."))
	assert.False(t, isFreeText("#$%^&*ab"))
}

func TestHasNoHTML(t *testing.T) {
	assert.True(t, hasNoHTML("1 < 2"))
	assert.False(t, hasNoHTML("<script>alert(1)</script>"))
}
