package wizard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"signupflow/internal/signup/app/wizard"
	"signupflow/internal/signup/domain/entities"
)

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) List(ctx context.Context) ([]entities.TagCatalogEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.TagCatalogEntry), args.Error(1)
}

type mockSubmitter struct {
	mock.Mock
}

func (m *mockSubmitter) Submit(ctx context.Context, snapshot entities.FormSnapshot, selection entities.SelectedTagSet) entities.SubmissionResult {
	return m.Called(ctx, snapshot, selection.IDs()).Get(0).(entities.SubmissionResult)
}

func (m *mockSubmitter) Resume(ctx context.Context, accountID string, selection entities.SelectedTagSet) entities.SubmissionResult {
	return m.Called(ctx, accountID, selection.IDs()).Get(0).(entities.SubmissionResult)
}

func personalFilled(t *testing.T) entities.WizardState {
	t.Helper()
	s, _, err := wizard.Next(credentials(t))
	require.NoError(t, err)
	return set(t, s,
		entities.FieldFirstName, "Ada",
		entities.FieldLastName, "Lovelace",
		entities.FieldGender, "female",
		entities.FieldDateOfBirth, "1990-01-01",
	)
}

func advance(ctx context.Context, t *testing.T, c *wizard.Controller, s entities.WizardState) entities.WizardState {
	t.Helper()
	next, effect, err := wizard.Next(s)
	require.NoError(t, err)
	return c.Run(ctx, next, effect)
}

func TestControllerFetchesCatalogOncePerEntry(t *testing.T) {
	ctx := context.Background()
	cat := new(mockCatalog)
	cat.On("List", ctx).Return(catalog, nil).Twice()

	c := wizard.NewController(cat, new(mockSubmitter))

	s := advance(ctx, t, c, personalFilled(t))
	assert.Equal(t, entities.StepTags, s.Step)
	assert.Equal(t, catalog, s.Catalog)
	cat.AssertNumberOfCalls(t, "List", 1)

	s = toggle(t, s, "t1")
	s, err := wizard.Back(s)
	require.NoError(t, err)
	advance(ctx, t, c, s)
	cat.AssertNumberOfCalls(t, "List", 2)
}

func TestControllerCatalogFailure(t *testing.T) {
	ctx := context.Background()
	cat := new(mockCatalog)
	cat.On("List", ctx).Return(nil, errors.New("unavailable"))

	s := advance(ctx, t, wizard.NewController(cat, new(mockSubmitter)), personalFilled(t))

	assert.Equal(t, entities.StepTags, s.Step)
	assert.Empty(t, s.Catalog)
	assert.Equal(t, entities.FailureCatalogFetch, s.LastError.Kind)
}

func TestControllerSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("two tags trigger no calls", func(t *testing.T) {
		sub := new(mockSubmitter)
		c := wizard.NewController(new(mockCatalog), sub)

		s := advance(ctx, t, c, toggle(t, onTags(t), "t1", "t2"))
		assert.Equal(t, entities.StepTags, s.Step)
		sub.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("success reaches done", func(t *testing.T) {
		sub := new(mockSubmitter)
		ready := toggle(t, onTags(t), "t1", "t2", "t3")
		sub.On("Submit", ctx, ready.Snapshot, []string{"t1", "t2", "t3"}).Return(entities.SubmissionResult{
			Status:    entities.SubmissionSuccess,
			AccountID: "u1",
			Succeeded: []string{"t1", "t2", "t3"},
		})

		s := advance(ctx, t, wizard.NewController(new(mockCatalog), sub), ready)
		assert.Equal(t, entities.StepDone, s.Step)
		sub.AssertExpectations(t)
	})

	t.Run("resubmit after partial failure resumes the same account", func(t *testing.T) {
		sub := new(mockSubmitter)
		ready := toggle(t, onTags(t), "t1", "t2", "t3")

		sub.On("Submit", ctx, ready.Snapshot, []string{"t1", "t2", "t3"}).Return(entities.SubmissionResult{
			Status:    entities.SubmissionPartialFailure,
			AccountID: "u1",
			Succeeded: []string{"t1", "t3"},
			Failed:    []string{"t2"},
		}).Once()
		sub.On("Resume", ctx, "u1", []string{"t2"}).Return(entities.SubmissionResult{
			Status:    entities.SubmissionSuccess,
			AccountID: "u1",
			Succeeded: []string{"t2"},
		}).Once()

		c := wizard.NewController(new(mockCatalog), sub)

		s := advance(ctx, t, c, ready)
		require.Equal(t, entities.StepTags, s.Step)
		assert.Equal(t, entities.FailurePartial, s.LastError.Kind)

		s = advance(ctx, t, c, s)
		assert.Equal(t, entities.StepDone, s.Step)
		assert.Equal(t, []string{"t1", "t2", "t3"}, s.Attached.IDs())
		sub.AssertExpectations(t)
	})

	t.Run("no effect leaves state unchanged", func(t *testing.T) {
		s := submitting(t)
		sub := new(mockSubmitter)
		got := wizard.NewController(new(mockCatalog), sub).Run(ctx, s, wizard.EffectNone)
		assert.Equal(t, s, got)
		sub.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
	})
}
