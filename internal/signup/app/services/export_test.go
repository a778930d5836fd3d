package services

// LockCount возвращает число удерживаемых мьютексов сессий.
func (s *SessionService) LockCount() int {
	n := 0
	s.locks.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
