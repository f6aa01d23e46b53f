package services

// SetPasswordCompare swaps the hash comparison so tests can observe it.
func (s *AuthService) SetPasswordCompare(compare func(hash, password []byte) error) {
	s.compare = compare
}
