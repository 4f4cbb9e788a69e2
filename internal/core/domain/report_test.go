package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_MarshalValidations(t *testing.T) {
	r := NewValidationReport("run-1", nil, true, false)

	data, err := json.Marshal(r)
	require.NoError(t, err)

	assert.JSONEq(t, `{"runId":"run-1","validations":[],"diff":true,"includesHTML":false}`, string(data))
}

func TestReport_MarshalSyntax(t *testing.T) {
	r := NewSyntaxReport("", SyntaxFailure{Block: 2, Context: "ctx", BareMessage: "Missing semicolon"})

	data, err := json.Marshal(r)
	require.NoError(t, err)

	assert.JSONEq(t, `{"syntax":{"block":2,"context":"ctx","bareMessage":"Missing semicolon"}}`, string(data))
}

func TestReport_RoundTripKeepsShape(t *testing.T) {
	in := NewValidationReport("run", []Validation{
		{Block: 0, Rule: "replace-void", Level: LevelWarning, Message: "m1", Autofixed: true},
		{Block: 1, Rule: "no-duplicate", Level: LevelError, Message: "m2"},
	}, true, true)

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out Report
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in.Validations, out.Validations)
	assert.True(t, out.Diff)
	assert.True(t, out.IncludesHTML)
	assert.False(t, out.IsSyntax())
	assert.Equal(t, "m1\n\nm2", out.Messages())
	assert.Len(t, out.Unresolved(), 1)
}

func TestReport_NeitherShapeIsContractViolation(t *testing.T) {
	var r Report
	err := json.Unmarshal([]byte(`{"diff":false}`), &r)
	assert.True(t, errors.Is(err, ErrInvalidReport))

	_, err = json.Marshal(Report{})
	assert.Error(t, err)
}

func TestReport_EmptyValidationsStillValid(t *testing.T) {
	var r Report
	require.NoError(t, json.Unmarshal([]byte(`{"validations":[]}`), &r))
	assert.NotNil(t, r.Validations)
	assert.Empty(t, r.Messages())
}

func TestErrors_Is(t *testing.T) {
	fetchErr := &FetchError{URL: "https://example.org", StatusCode: 404}
	assert.ErrorIs(t, fetchErr, ErrFetchFailed)
	assert.Contains(t, fetchErr.Error(), "status 404")

	relocErr := &RelocationError{Document: "dom", Block: 3, Target: "interface Foo {};"}
	assert.ErrorIs(t, relocErr, ErrRelocationFailed)
	assert.Contains(t, relocErr.Error(), "dom[3]")

	cause := errors.New("no match")
	relocErr.Err = cause
	assert.ErrorIs(t, relocErr, ErrRelocationFailed)
	assert.ErrorIs(t, relocErr, cause)
	assert.Contains(t, relocErr.Error(), "no match")
}

func TestUnresolved(t *testing.T) {
	vs := []Validation{
		{Block: 0, Rule: "replace-void", Message: "a", Autofixed: true},
		{Block: 1, Rule: "no-duplicate", Message: "b"},
		{Block: 2, Rule: "no-duplicate", Message: "c"},
	}
	r := NewValidationReport("run", vs, true, false)

	unresolved := r.Unresolved()
	require.Len(t, unresolved, 2)
	assert.Equal(t, 1, unresolved[0].Block)
	assert.Equal(t, "b\n\nc", JoinMessages(unresolved))
	assert.Equal(t, "a\n\nb\n\nc", r.Messages())
	assert.Empty(t, Unresolved(vs[:1]))
}

func TestSpecSource_FetchURL(t *testing.T) {
	withGitHub := SpecSource{
		ShortName: "dom",
		URL:       "https://dom.spec.whatwg.org/",
		GitHub:    &GitHubInfo{Owner: "whatwg", Repo: "dom", Path: "dom.bs"},
	}
	assert.Equal(t, "https://raw.githubusercontent.com/whatwg/dom/HEAD/dom.bs", withGitHub.FetchURL())
	assert.Equal(t, RepoRef{Owner: "whatwg", Name: "dom"}, withGitHub.GitHub.Ref())
	assert.Equal(t, "whatwg/dom", withGitHub.GitHub.RepoKey())

	plain := SpecSource{ShortName: "x", URL: "https://example.org/x/"}
	assert.Equal(t, "https://example.org/x/", plain.FetchURL())
}

func TestExtraction_Helpers(t *testing.T) {
	e := Extraction{Blocks: []Block{
		{Index: 0, Text: "a"},
		{Index: 1, Text: "b", RichMarkup: true},
	}}
	assert.Equal(t, []string{"a", "b"}, e.Text())
	assert.True(t, e.IncludesHTML())
	assert.Equal(t, "dom[1]", e.Blocks[1].Tag("dom").String())
}
