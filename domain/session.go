package domain

// Session is the authenticated-user state owned by the auth store. Only this
// projection survives a process restart; loading and error fields never do.
//
// Invariant: IsAuthenticated == (User != nil).
type Session struct {
	User            *User `json:"user"`
	IsAuthenticated bool  `json:"isAuthenticated"`
	RememberMe      bool  `json:"rememberMe"`
}

func (s *Session) Valid() bool {
	if s == nil {
		return false
	}
	return s.IsAuthenticated == (s.User != nil)
}
