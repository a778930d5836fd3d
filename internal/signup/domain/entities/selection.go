package entities

import (
	"maps"
	"slices"
)

// TagCatalogEntry - элемент каталога тегов.
type TagCatalogEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MinSelectedTags - минимальное количество тегов для отправки.
const MinSelectedTags = 3

// SelectedTagSet - неизменяемое множество выбранных тегов.
// Все операции возвращают новое множество, исходное не меняется.
type SelectedTagSet struct {
	ids map[string]struct{}
}

// NewSelectedTagSet создает множество из идентификаторов.
func NewSelectedTagSet(ids ...string) SelectedTagSet {
	s := SelectedTagSet{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

func (s SelectedTagSet) clone() SelectedTagSet {
	out := SelectedTagSet{ids: make(map[string]struct{}, len(s.ids)+1)}
	maps.Copy(out.ids, s.ids)
	return out
}

// Toggle удаляет тег, если он выбран, иначе добавляет.
func (s SelectedTagSet) Toggle(id string) SelectedTagSet {
	if s.Contains(id) {
		return s.Remove(id)
	}
	return s.Add(id)
}

// Add добавляет тег. Повторное добавление ничего не меняет.
func (s SelectedTagSet) Add(id string) SelectedTagSet {
	out := s.clone()
	out.ids[id] = struct{}{}
	return out
}

// Remove удаляет тег. Удаление отсутствующего ничего не меняет.
func (s SelectedTagSet) Remove(id string) SelectedTagSet {
	out := s.clone()
	delete(out.ids, id)
	return out
}

// Contains проверяет, выбран ли тег.
func (s SelectedTagSet) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len возвращает мощность множества.
func (s SelectedTagSet) Len() int {
	return len(s.ids)
}

// IDs возвращает отсортированные идентификаторы.
func (s SelectedTagSet) IDs() []string {
	return slices.Sorted(maps.Keys(s.ids))
}

// Without возвращает теги, которых нет в other.
func (s SelectedTagSet) Without(other SelectedTagSet) SelectedTagSet {
	out := NewSelectedTagSet()
	for id := range s.ids {
		if !other.Contains(id) {
			out.ids[id] = struct{}{}
		}
	}
	return out
}

// Union объединяет множества.
func (s SelectedTagSet) Union(other SelectedTagSet) SelectedTagSet {
	out := s.clone()
	maps.Copy(out.ids, other.ids)
	return out
}

// Equal сравнивает множества по составу.
func (s SelectedTagSet) Equal(other SelectedTagSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for id := range s.ids {
		if !other.Contains(id) {
			return false
		}
	}
	return true
}
