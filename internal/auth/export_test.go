package auth

import "time"

// SetClock swaps the time source for tests.
func (s *TokenService) SetClock(now func() time.Time) { s.now = now }
