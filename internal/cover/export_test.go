package cover

// WaitIdle blocks until in-flight generations complete. Exposed for tests.
func (s *Selection) WaitIdle() {
	s.waitIdle()
}
