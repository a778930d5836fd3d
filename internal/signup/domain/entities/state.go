package entities

// FailureKind - вид ошибки, сохраненной в состоянии мастера.
type FailureKind string

// Виды ошибок.
const (
	FailureValidation      FailureKind = "validation"
	FailureAccountCreation FailureKind = "account_creation"
	FailurePartial         FailureKind = "partial_failure"
	FailureCatalogFetch    FailureKind = "catalog_fetch"
)

// Failure - последняя ошибка, показываемая пользователю.
type Failure struct {
	Kind      FailureKind
	Fields    ValidationOutcome
	Reason    string
	AccountID string
	Succeeded []string
	Failed    []string
	TagErrors map[string]string
}

// WizardState - состояние мастера регистрации.
type WizardState struct {
	Step      Step
	Snapshot  FormSnapshot
	Selection SelectedTagSet
	Catalog   []TagCatalogEntry

	// AccountID заполняется после частичного сбоя: повторная отправка
	// не создает учетную запись заново.
	AccountID string
	// Attached - теги, уже назначенные AccountID.
	Attached SelectedTagSet

	LastError *Failure
}

// CatalogContains проверяет наличие тега в загруженном каталоге.
func (s WizardState) CatalogContains(id string) bool {
	for _, e := range s.Catalog {
		if e.ID == id {
			return true
		}
	}
	return false
}
