package entities

import (
	"maps"
	"slices"
)

// ValidationOutcome - ошибки полей, найденные при проверке шага.
// Пустой результат означает, что шаг прошел проверку.
type ValidationOutcome map[string]string

// Valid сообщает об отсутствии ошибок.
func (v ValidationOutcome) Valid() bool {
	return len(v) == 0
}

// Fields возвращает имена полей с ошибками в алфавитном порядке.
func (v ValidationOutcome) Fields() []string {
	return slices.Sorted(maps.Keys(v))
}
