package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"signupflow/internal/accounts/app"
	"signupflow/internal/accounts/domain/entities"
)

const (
	accountID = "5b1f3c7e-7c1d-4d5e-9a43-0d8f7f5d2a11"
	tagID     = "0c0b5a4e-2f0a-4c55-8d7d-2ad5d1a7b9e0"
)

func TestListTags(t *testing.T) {
	ctx := context.Background()

	t.Run("Лимит по умолчанию", func(t *testing.T) {
		tags := new(mockTagRepository)
		tags.On("List", ctx, 0, entities.DefaultTagLimit).
			Return(&entities.TagPage{Tags: []*entities.Tag{{ID: tagID, Name: "art"}}, Count: 1}, nil)

		uc := app.NewTagUseCase(tags, new(mockAccountTagRepository))
		page, err := uc.ListTags(ctx, 0, 0)

		require.NoError(t, err)
		assert.Equal(t, 1, page.Count)
		tags.AssertExpectations(t)
	})

	t.Run("Некорректная пагинация", func(t *testing.T) {
		tags := new(mockTagRepository)
		uc := app.NewTagUseCase(tags, new(mockAccountTagRepository))

		for _, c := range [][2]int{{-1, 10}, {0, -5}, {0, entities.MaxTagLimit + 1}} {
			_, err := uc.ListTags(ctx, c[0], c[1])
			require.ErrorIs(t, err, entities.ErrInvalidPage)
		}
		tags.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCreateTag(t *testing.T) {
	ctx := context.Background()
	tags := new(mockTagRepository)
	tags.On("Create", ctx, "music").Return(&entities.Tag{ID: tagID, Name: "music"}, nil)

	uc := app.NewTagUseCase(tags, new(mockAccountTagRepository))

	tag, err := uc.CreateTag(ctx, "  music ")
	require.NoError(t, err)
	assert.Equal(t, "music", tag.Name)

	_, err = uc.CreateTag(ctx, "   ")
	require.ErrorIs(t, err, entities.ErrEmptyTagName)
}

func TestAssignAndUnassignTag(t *testing.T) {
	ctx := context.Background()

	t.Run("Привязка", func(t *testing.T) {
		links := new(mockAccountTagRepository)
		links.On("Assign", ctx, accountID, tagID).Return(nil)

		uc := app.NewTagUseCase(new(mockTagRepository), links)
		require.NoError(t, uc.AssignTag(ctx, accountID, tagID))
		links.AssertExpectations(t)
	})

	t.Run("Тег не существует", func(t *testing.T) {
		links := new(mockAccountTagRepository)
		links.On("Assign", ctx, accountID, tagID).Return(entities.ErrTagNotFound)

		uc := app.NewTagUseCase(new(mockTagRepository), links)
		require.ErrorIs(t, uc.AssignTag(ctx, accountID, tagID), entities.ErrTagNotFound)
	})

	t.Run("Некорректные идентификаторы", func(t *testing.T) {
		links := new(mockAccountTagRepository)
		uc := app.NewTagUseCase(new(mockTagRepository), links)

		require.ErrorIs(t, uc.AssignTag(ctx, "x", tagID), entities.ErrAccountNotFound)
		require.ErrorIs(t, uc.AssignTag(ctx, accountID, "y"), entities.ErrTagNotFound)
		require.ErrorIs(t, uc.UnassignTag(ctx, accountID, "y"), entities.ErrTagNotFound)
		links.AssertNotCalled(t, "Assign", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Отвязка", func(t *testing.T) {
		links := new(mockAccountTagRepository)
		links.On("Unassign", ctx, accountID, tagID).Return(nil)

		uc := app.NewTagUseCase(new(mockTagRepository), links)
		require.NoError(t, uc.UnassignTag(ctx, accountID, tagID))
	})

	t.Run("Список тегов пользователя", func(t *testing.T) {
		links := new(mockAccountTagRepository)
		links.On("ListByAccount", ctx, accountID).Return([]*entities.Tag{{ID: tagID}}, nil)

		uc := app.NewTagUseCase(new(mockTagRepository), links)
		got, err := uc.ListAccountTags(ctx, accountID)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}

func TestGetUpdateDeleteTag(t *testing.T) {
	ctx := context.Background()

	t.Run("Получение тега", func(t *testing.T) {
		tags := new(mockTagRepository)
		tags.On("FindByID", ctx, tagID).Return(&entities.Tag{ID: tagID, Name: "art"}, nil)

		uc := app.NewTagUseCase(tags, new(mockAccountTagRepository))
		tag, err := uc.GetTag(ctx, tagID)

		require.NoError(t, err)
		assert.Equal(t, "art", tag.Name)
	})

	t.Run("Переименование", func(t *testing.T) {
		tags := new(mockTagRepository)
		tags.On("Update", ctx, tagID, "painting").Return(&entities.Tag{ID: tagID, Name: "painting"}, nil)

		uc := app.NewTagUseCase(tags, new(mockAccountTagRepository))
		tag, err := uc.UpdateTag(ctx, tagID, " painting ")

		require.NoError(t, err)
		assert.Equal(t, "painting", tag.Name)
		tags.AssertExpectations(t)
	})

	t.Run("Пустое имя", func(t *testing.T) {
		tags := new(mockTagRepository)
		uc := app.NewTagUseCase(tags, new(mockAccountTagRepository))

		_, err := uc.UpdateTag(ctx, tagID, "  ")
		require.ErrorIs(t, err, entities.ErrEmptyTagName)
		tags.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Удаление", func(t *testing.T) {
		tags := new(mockTagRepository)
		tags.On("Delete", ctx, tagID).Return(nil)

		uc := app.NewTagUseCase(tags, new(mockAccountTagRepository))
		require.NoError(t, uc.DeleteTag(ctx, tagID))
		tags.AssertExpectations(t)
	})

	t.Run("Удаление отсутствующего тега", func(t *testing.T) {
		tags := new(mockTagRepository)
		tags.On("Delete", ctx, tagID).Return(entities.ErrTagNotFound)

		uc := app.NewTagUseCase(tags, new(mockAccountTagRepository))
		require.ErrorIs(t, uc.DeleteTag(ctx, tagID), entities.ErrTagNotFound)
	})

	t.Run("Некорректный идентификатор", func(t *testing.T) {
		tags := new(mockTagRepository)
		uc := app.NewTagUseCase(tags, new(mockAccountTagRepository))

		_, err := uc.GetTag(ctx, "x")
		require.ErrorIs(t, err, entities.ErrTagNotFound)
		_, err = uc.UpdateTag(ctx, "x", "art")
		require.ErrorIs(t, err, entities.ErrTagNotFound)
		require.ErrorIs(t, uc.DeleteTag(ctx, "x"), entities.ErrTagNotFound)
		assert.Empty(t, tags.Calls)
	})
}
