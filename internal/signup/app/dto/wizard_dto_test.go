package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signupflow/internal/signup/app/dto"
	"signupflow/internal/signup/app/wizard"
	"signupflow/internal/signup/domain/entities"
)

func TestFromStateHidesPasswords(t *testing.T) {
	s := wizard.Start()
	s.Snapshot.Email = "a@b.c"
	s.Snapshot.Password = "secret1"
	s.Snapshot.ConfirmPassword = "secret1"

	resp := dto.FromState(s)
	assert.True(t, resp.Form.PasswordSet)
	assert.Equal(t, "credentials", resp.Step)
	assert.True(t, resp.Editable)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret1")
	assert.Contains(t, string(raw), `"selected_tags":[]`)
}

func TestFromStateFailure(t *testing.T) {
	s := wizard.Start()
	s.Step = entities.StepTags
	s.Selection = entities.NewSelectedTagSet("t2", "t1", "t3")
	s.Attached = entities.NewSelectedTagSet("t1", "t3")
	s.AccountID = "u1"
	s.LastError = &entities.Failure{
		Kind:      entities.FailurePartial,
		AccountID: "u1",
		Succeeded: []string{"t1", "t3"},
		Failed:    []string{"t2"},
		TagErrors: map[string]string{"t2": "tag not found"},
	}

	resp := dto.FromState(s)
	assert.Equal(t, []string{"t1", "t2", "t3"}, resp.SelectedTags)
	assert.Equal(t, []string{"t1", "t3"}, resp.AttachedTags)
	require.NotNil(t, resp.LastError)
	assert.Equal(t, "partial_failure", resp.LastError.Kind)
	assert.Equal(t, "tag not found", resp.LastError.TagErrors["t2"])
	assert.False(t, resp.Editable)
}
