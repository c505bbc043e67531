package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Company string `json:"company" validate:"required"`
}

type form struct {
	Email   string  `json:"email" validate:"omitempty,email"`
	Website string  `json:"website" validate:"omitempty,url"`
	Entries []entry `json:"entries" validate:"dive"`
}

func TestStructReportsNestedJSONPaths(t *testing.T) {
	err := Struct(New(), form{
		Email:   "nope",
		Website: "not a url",
		Entries: []entry{{Company: "Acme"}, {}},
	})

	var verr *Error
	require.True(t, errors.As(err, &verr))
	got := map[string]string{}
	for _, issue := range verr.Issues {
		got[issue.Field] = issue.Issue
	}
	assert.Equal(t, map[string]string{
		"email":              "email",
		"website":            "url",
		"entries[1].company": "required",
	}, got)
	assert.Contains(t, verr.Error(), "entries[1].company: company is required")
}

func TestStructAcceptsValidInput(t *testing.T) {
	assert.NoError(t, Struct(New(), form{Email: "a@b.co", Website: "https://a.b"}))
}

func TestConvertPassesOtherErrorsThrough(t *testing.T) {
	boom := errors.New("boom")
	assert.Same(t, boom, Convert(boom))
}

func TestMaxBytesCountsEncodedLength(t *testing.T) {
	type secret struct {
		Value string `json:"value" validate:"maxbytes=4"`
	}
	assert.NoError(t, Struct(New(), secret{Value: "abcd"}))
	assert.NoError(t, Struct(New(), secret{Value: "éé"}))

	err := Struct(New(), secret{Value: "ééé"})
	var verr *Error
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Issues, 1)
	assert.Equal(t, "maxbytes", verr.Issues[0].Issue)
	assert.Equal(t, "must be at most 4 bytes", verr.Issues[0].Message)
}
