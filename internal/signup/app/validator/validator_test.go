package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"signupflow/internal/signup/app/validator"
	"signupflow/internal/signup/domain/entities"
)

var noTags = entities.NewSelectedTagSet()

func TestCredentials(t *testing.T) {
	tests := []struct {
		name     string
		snapshot entities.FormSnapshot
		want     entities.ValidationOutcome
	}{
		{
			name:     "valid",
			snapshot: entities.FormSnapshot{Email: "a@b.com", Password: "secret1", ConfirmPassword: "secret1"},
			want:     entities.ValidationOutcome{},
		},
		{
			name:     "all empty reported together",
			snapshot: entities.FormSnapshot{},
			want: entities.ValidationOutcome{
				entities.FieldEmail:           validator.MsgRequired,
				entities.FieldPassword:        validator.MsgRequired,
				entities.FieldConfirmPassword: validator.MsgRequired,
			},
		},
		{
			name:     "bad email and short password",
			snapshot: entities.FormSnapshot{Email: "ab.com", Password: "12345", ConfirmPassword: "12345"},
			want: entities.ValidationOutcome{
				entities.FieldEmail:    validator.MsgInvalidEmail,
				entities.FieldPassword: validator.MsgPasswordTooShort,
			},
		},
		{
			name:     "mismatch",
			snapshot: entities.FormSnapshot{Email: "a@b.com", Password: "secret1", ConfirmPassword: "secret2"},
			want:     entities.ValidationOutcome{entities.FieldConfirmPassword: validator.MsgPasswordMismatch},
		},
		{
			name:     "multibyte password counts runes",
			snapshot: entities.FormSnapshot{Email: "a@b.com", Password: "пароль", ConfirmPassword: "пароль"},
			want:     entities.ValidationOutcome{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validator.Validate(entities.StepCredentials, tt.snapshot, noTags)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want) == 0, got.Valid())
		})
	}
}

func TestPersonal(t *testing.T) {
	valid := entities.FormSnapshot{FirstName: "Ada", LastName: "Lovelace", Gender: "female", DateOfBirth: "1990-01-01"}
	assert.True(t, validator.Validate(entities.StepPersonal, valid, noTags).Valid())

	blank := entities.FormSnapshot{FirstName: "  ", DateOfBirth: ""}
	got := validator.Validate(entities.StepPersonal, blank, noTags)
	assert.Equal(t, []string{
		entities.FieldDateOfBirth, entities.FieldFirstName, entities.FieldGender, entities.FieldLastName,
	}, got.Fields())

	for _, date := range []string{"1990-02-30", "01/01/1990", "1990-1-1", "yesterday"} {
		bad := valid
		bad.DateOfBirth = date
		got := validator.Validate(entities.StepPersonal, bad, noTags)
		assert.Equal(t, validator.MsgInvalidDate, got[entities.FieldDateOfBirth], date)
	}
}

func TestTags(t *testing.T) {
	two := entities.NewSelectedTagSet("t1", "t2")
	got := validator.Validate(entities.StepTags, entities.FormSnapshot{}, two)
	assert.Equal(t, entities.ValidationOutcome{entities.FieldTags: validator.MsgSelectMoreTags}, got)

	three := two.Add("t3")
	assert.True(t, validator.Validate(entities.StepTags, entities.FormSnapshot{}, three).Valid())
}

func TestInvalidEmailAlwaysReported(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		email := rapid.StringMatching(`[a-z. ]{0,12}`).Draw(t, "email")
		snap := entities.FormSnapshot{Email: email, Password: "secret1", ConfirmPassword: "secret1"}

		got := validator.Validate(entities.StepCredentials, snap, noTags)
		if got[entities.FieldEmail] == "" {
			t.Fatalf("email %q without @ was accepted", email)
		}
	})
}

func TestPasswordMismatchAlwaysReported(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		password := rapid.String().Draw(t, "password")
		confirm := rapid.String().Filter(func(s string) bool { return s != password }).Draw(t, "confirm")
		snap := entities.FormSnapshot{Email: "a@b.com", Password: password, ConfirmPassword: confirm}

		got := validator.Validate(entities.StepCredentials, snap, noTags)
		if got[entities.FieldConfirmPassword] == "" {
			t.Fatalf("mismatch %q/%q was accepted", password, confirm)
		}
	})
}

func TestDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		snap := entities.FormSnapshot{
			Email:       rapid.String().Draw(t, "email"),
			Password:    rapid.String().Draw(t, "password"),
			FirstName:   rapid.String().Draw(t, "first"),
			DateOfBirth: rapid.String().Draw(t, "dob"),
		}
		step := entities.Step(rapid.IntRange(0, 2).Draw(t, "step"))
		sel := entities.NewSelectedTagSet(rapid.SliceOf(rapid.String()).Draw(t, "tags")...)

		a := validator.Validate(step, snap, sel)
		b := validator.Validate(step, snap, sel)
		if len(a) != len(b) {
			t.Fatalf("non-deterministic outcome: %v vs %v", a, b)
		}
		for k, v := range a {
			if b[k] != v {
				t.Fatalf("non-deterministic outcome for %s", k)
			}
		}
	})
}
