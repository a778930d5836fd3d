package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	adapters "signupflow/internal/signup/adapters/sessions"
	"signupflow/internal/signup/app/services"
	"signupflow/internal/signup/app/submission"
	"signupflow/internal/signup/app/wizard"
	"signupflow/internal/signup/domain/entities"
	"signupflow/internal/signup/ports/sessions"
)

type mockAccounts struct {
	mock.Mock
}

func (m *mockAccounts) Create(ctx context.Context, fields entities.AccountFields) (string, error) {
	args := m.Called(ctx, fields)
	return args.String(0), args.Error(1)
}

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

type mockAssigner struct {
	mock.Mock
}

func (m *mockAssigner) Assign(ctx context.Context, accountID, tagID string) error {
	return m.Called(ctx, accountID, tagID).Error(0)
}

var catalog = []entities.TagCatalogEntry{
	{ID: "t1", Name: "go"},
	{ID: "t2", Name: "rust"},
	{ID: "t3", Name: "zig"},
	{ID: "t4", Name: "ocaml"},
}

type fixture struct {
	svc      *services.SessionService
	accounts *mockAccounts
	catalog  *mockCatalog
	assigner *mockAssigner
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		accounts: new(mockAccounts),
		catalog:  new(mockCatalog),
		assigner: new(mockAssigner),
	}
	f.catalog.On("List", mock.Anything).Return(catalog, nil)

	orchestrator := submission.NewOrchestrator(f.accounts, f.assigner)
	controller := wizard.NewController(f.catalog, orchestrator)
	f.svc = services.NewSessionService(adapters.NewMemoryStore(time.Minute, time.Minute), controller,
		services.WithSubmissionTimeout(5*time.Second))
	return f
}

func (f *fixture) onTags(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	id, _, err := f.svc.Start(ctx)
	require.NoError(t, err)

	_, err = f.svc.UpdateFields(ctx, id, map[string]string{
		entities.FieldEmail:           "a@b.c",
		entities.FieldPassword:        "secret1",
		entities.FieldConfirmPassword: "secret1",
	})
	require.NoError(t, err)
	state, err := f.svc.Next(ctx, id)
	require.NoError(t, err)
	require.Equal(t, entities.StepPersonal, state.Step)

	_, err = f.svc.UpdateFields(ctx, id, map[string]string{
		entities.FieldFirstName:   "Ada",
		entities.FieldLastName:    "Lovelace",
		entities.FieldGender:      "female",
		entities.FieldDateOfBirth: "1990-01-01",
	})
	require.NoError(t, err)
	state, err = f.svc.Next(ctx, id)
	require.NoError(t, err)
	require.Equal(t, entities.StepTags, state.Step)
	require.Equal(t, catalog, state.Catalog)

	for _, tag := range []string{"t1", "t2", "t3"} {
		_, err = f.svc.ToggleTag(ctx, id, tag)
		require.NoError(t, err)
	}
	return id
}

func (f *fixture) wait(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, f.svc.Wait(ctx))
}

func TestSessionServiceHappyPath(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id := f.onTags(t)

	f.accounts.On("Create", mock.Anything, mock.Anything).Return("u1", nil).Once()
	f.assigner.On("Assign", mock.Anything, "u1", mock.Anything).Return(nil)

	state, err := f.svc.Next(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entities.StepSubmitting, state.Step)

	f.wait(t)

	state, err = f.svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entities.StepDone, state.Step)
	assert.Equal(t, "u1", state.AccountID)
	assert.Nil(t, state.LastError)
	assert.Empty(t, state.Snapshot.Password)
	assert.Empty(t, state.Snapshot.ConfirmPassword)
	assert.Equal(t, "a@b.c", state.Snapshot.Email)
	f.assigner.AssertNumberOfCalls(t, "Assign", 3)

	_, err = f.svc.Next(ctx, id)
	require.ErrorIs(t, err, wizard.ErrWizardFinished)
}

func TestSessionServiceDoneRejectsFieldEdits(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id := f.onTags(t)

	f.accounts.On("Create", mock.Anything, mock.Anything).Return("u1", nil).Once()
	f.assigner.On("Assign", mock.Anything, "u1", mock.Anything).Return(nil)

	_, err := f.svc.Next(ctx, id)
	require.NoError(t, err)
	f.wait(t)

	_, err = f.svc.UpdateFields(ctx, id, map[string]string{
		entities.FieldPassword: "hunter22",
		entities.FieldEmail:    "x@y.z",
	})
	require.ErrorIs(t, err, wizard.ErrWizardFinished)

	state, err := f.svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entities.StepDone, state.Step)
	assert.Empty(t, state.Snapshot.Password)
	assert.Equal(t, "a@b.c", state.Snapshot.Email)
}

func TestSessionServiceValidationKeepsStep(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	id, _, err := f.svc.Start(ctx)
	require.NoError(t, err)
	_, err = f.svc.UpdateFields(ctx, id, map[string]string{entities.FieldEmail: "nope"})
	require.NoError(t, err)

	state, err := f.svc.Next(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entities.StepCredentials, state.Step)
	require.NotNil(t, state.LastError)
	assert.Equal(t, entities.FailureValidation, state.LastError.Kind)
	assert.Contains(t, state.LastError.Fields, entities.FieldEmail)
	f.catalog.AssertNotCalled(t, "List", mock.Anything)
}

func TestSessionServiceUnknownField(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	id, _, err := f.svc.Start(ctx)
	require.NoError(t, err)

	_, err = f.svc.UpdateFields(ctx, id, map[string]string{
		entities.FieldEmail: "a@b.c",
		"nickname":          "ada",
	})
	require.ErrorIs(t, err, entities.ErrUnknownField)

	state, err := f.svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, state.Snapshot.Email)
}

func TestSessionServiceRejectsChangesWhileSubmitting(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id := f.onTags(t)

	release := make(chan struct{})
	f.accounts.On("Create", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { <-release }).
		Return("u1", nil)
	f.assigner.On("Assign", mock.Anything, "u1", mock.Anything).Return(nil)

	_, err := f.svc.Next(ctx, id)
	require.NoError(t, err)

	state, err := f.svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entities.StepSubmitting, state.Step)

	_, err = f.svc.Next(ctx, id)
	require.ErrorIs(t, err, wizard.ErrSubmissionInProgress)
	_, err = f.svc.Back(ctx, id)
	require.ErrorIs(t, err, wizard.ErrSubmissionInProgress)
	_, err = f.svc.ToggleTag(ctx, id, "t4")
	require.ErrorIs(t, err, wizard.ErrSubmissionInProgress)
	_, err = f.svc.UpdateFields(ctx, id, map[string]string{entities.FieldFirstName: "Grace"})
	require.ErrorIs(t, err, wizard.ErrSubmissionInProgress)

	close(release)
	f.wait(t)

	state, err = f.svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entities.StepDone, state.Step)
	assert.Equal(t, "Ada", state.Snapshot.FirstName)
}

func TestSessionServiceAccountCreationFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id := f.onTags(t)

	f.accounts.On("Create", mock.Anything, mock.Anything).Return("", errors.New("email already registered"))

	_, err := f.svc.Next(ctx, id)
	require.NoError(t, err)
	f.wait(t)

	state, err := f.svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entities.StepTags, state.Step)
	require.NotNil(t, state.LastError)
	assert.Equal(t, entities.FailureAccountCreation, state.LastError.Kind)
	assert.Equal(t, "email already registered", state.LastError.Reason)
	assert.Equal(t, "secret1", state.Snapshot.Password)
	f.assigner.AssertNotCalled(t, "Assign", mock.Anything, mock.Anything, mock.Anything)
}

func TestSessionServiceResumeAfterPartialFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id := f.onTags(t)

	f.accounts.On("Create", mock.Anything, mock.Anything).Return("u1", nil).Once()
	f.assigner.On("Assign", mock.Anything, "u1", "t1").Return(nil).Once()
	f.assigner.On("Assign", mock.Anything, "u1", "t2").Return(errors.New("tag not found")).Once()
	f.assigner.On("Assign", mock.Anything, "u1", "t3").Return(nil).Once()

	_, err := f.svc.Next(ctx, id)
	require.NoError(t, err)
	f.wait(t)

	state, err := f.svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entities.StepTags, state.Step)
	require.NotNil(t, state.LastError)
	assert.Equal(t, entities.FailurePartial, state.LastError.Kind)
	assert.Equal(t, []string{"t2"}, state.LastError.Failed)
	assert.Equal(t, "tag not found", state.LastError.TagErrors["t2"])
	assert.Equal(t, catalog, state.Catalog)

	f.assigner.On("Assign", mock.Anything, "u1", "t2").Return(nil).Once()

	_, err = f.svc.Next(ctx, id)
	require.NoError(t, err)
	f.wait(t)

	state, err = f.svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entities.StepDone, state.Step)
	f.accounts.AssertNumberOfCalls(t, "Create", 1)
	f.assigner.AssertNumberOfCalls(t, "Assign", 4)
	f.catalog.AssertNumberOfCalls(t, "List", 1)
}

func TestSessionServiceLocksFormAfterAccountCreated(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id := f.onTags(t)

	f.accounts.On("Create", mock.Anything, mock.Anything).Return("u1", nil).Once()
	f.assigner.On("Assign", mock.Anything, "u1", "t2").Return(errors.New("tag not found")).Once()
	f.assigner.On("Assign", mock.Anything, "u1", mock.Anything).Return(nil)

	_, err := f.svc.Next(ctx, id)
	require.NoError(t, err)
	f.wait(t)

	state, err := f.svc.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, entities.FailurePartial, state.LastError.Kind)

	state, err = f.svc.Back(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entities.StepPersonal, state.Step)

	_, err = f.svc.UpdateFields(ctx, id, map[string]string{entities.FieldFirstName: "Grace"})
	require.ErrorIs(t, err, wizard.ErrAccountCreated)

	state, err = f.svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ada", state.Snapshot.FirstName)
	assert.Equal(t, "u1", state.AccountID)
}

func TestSessionServiceDeleteDuringSubmission(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id := f.onTags(t)

	release := make(chan struct{})
	f.accounts.On("Create", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { <-release }).
		Return("u1", nil)
	f.assigner.On("Assign", mock.Anything, "u1", mock.Anything).Return(nil)

	_, err := f.svc.Next(ctx, id)
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, id))
	close(release)
	f.wait(t)

	_, err = f.svc.Get(ctx, id)
	require.ErrorIs(t, err, sessions.ErrSessionNotFound)
	assert.Zero(t, f.svc.LockCount())
}

func TestSessionServiceSubmissionOutlivesRequest(t *testing.T) {
	f := newFixture(t)
	id := f.onTags(t)

	f.accounts.On("Create", mock.Anything, mock.Anything).Return("u1", nil)
	f.assigner.On("Assign", mock.Anything, "u1", mock.Anything).Return(nil)

	reqCtx, cancel := context.WithCancel(context.Background())
	_, err := f.svc.Next(reqCtx, id)
	require.NoError(t, err)
	cancel()

	f.wait(t)

	state, err := f.svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, entities.StepDone, state.Step)
}

func TestSessionServiceUnknownSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Get(ctx, "missing")
	require.ErrorIs(t, err, sessions.ErrSessionNotFound)
	_, err = f.svc.Next(ctx, "missing")
	require.ErrorIs(t, err, sessions.ErrSessionNotFound)
	_, err = f.svc.ToggleTag(ctx, "missing", "t1")
	require.ErrorIs(t, err, sessions.ErrSessionNotFound)
	require.ErrorIs(t, f.svc.Delete(ctx, "missing"), sessions.ErrSessionNotFound)
}

func TestSessionServiceReleasesExpiredLocks(t *testing.T) {
	ctx := context.Background()
	store := adapters.NewMemoryStore(100*time.Millisecond, 10*time.Millisecond)
	controller := wizard.NewController(new(mockCatalog), submission.NewOrchestrator(new(mockAccounts), new(mockAssigner)))
	svc := services.NewSessionService(store, controller)

	for range 200 {
		id, _, err := svc.Start(ctx)
		require.NoError(t, err)
		_, err = svc.UpdateFields(ctx, id, map[string]string{entities.FieldEmail: "a@b.c"})
		require.NoError(t, err)
	}
	require.Positive(t, svc.LockCount())

	require.Eventually(t, func() bool {
		return store.Count() == 0 && svc.LockCount() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSessionServiceUnknownSessionKeepsNoLock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for _, id := range []string{"missing-1", "missing-2"} {
		_, err := f.svc.UpdateFields(ctx, id, map[string]string{entities.FieldEmail: "a@b.c"})
		require.ErrorIs(t, err, sessions.ErrSessionNotFound)
		_, err = f.svc.Next(ctx, id)
		require.ErrorIs(t, err, sessions.ErrSessionNotFound)
	}
	assert.Zero(t, f.svc.LockCount())
}
