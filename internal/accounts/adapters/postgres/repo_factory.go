package postgres

import (
	"signupflow/internal/accounts/ports/repositories"
)

// RepositoryFactory создает все репозитории сервиса учетных записей.
type RepositoryFactory struct {
	accountRepo    repositories.AccountRepository
	tagRepo        repositories.TagRepository
	accountTagRepo repositories.AccountTagRepository
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{
		accountRepo:    NewAccountRepository(pool),
		tagRepo:        NewTagRepository(pool),
		accountTagRepo: NewAccountTagRepository(pool),
	}
}

// AccountRepository возвращает репозиторий учетных записей.
func (f *RepositoryFactory) AccountRepository() repositories.AccountRepository {
	return f.accountRepo
}

// TagRepository возвращает репозиторий каталога тегов.
func (f *RepositoryFactory) TagRepository() repositories.TagRepository {
	return f.tagRepo
}

// AccountTagRepository возвращает репозиторий связей пользователь-тег.
func (f *RepositoryFactory) AccountTagRepository() repositories.AccountTagRepository {
	return f.accountTagRepo
}
