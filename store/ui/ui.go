// Package ui holds transient interface state: sidebar visibility, named
// modal flags and loading indicators. Only the sidebar setting persists;
// modals and loading flags always start closed.
package ui

import "sync"

// Known modal names. OpenModal accepts arbitrary names; these are the ones
// the dashboard ships with and the set CloseAllModals clears.
const (
	ModalAddTask       = "addTask"
	ModalEditTask      = "editTask"
	ModalDeleteConfirm = "deleteConfirm"
	ModalUserProfile   = "userProfile"
)

// Persister is the serialize boundary for the sidebar snapshot.
type Persister interface {
	SaveSidebar(open bool) error
	LoadSidebar() (open, found bool, err error)
}

type Store struct {
	persist Persister

	mu          sync.Mutex
	sidebarOpen bool
	modals      map[string]bool
	loading     map[string]bool
}

func New(persist Persister) *Store {
	return &Store{
		persist:     persist,
		sidebarOpen: true,
		modals:      defaultModals(),
		loading:     map[string]bool{},
	}
}

func defaultModals() map[string]bool {
	return map[string]bool{
		ModalAddTask:       false,
		ModalEditTask:      false,
		ModalDeleteConfirm: false,
		ModalUserProfile:   false,
	}
}

// Restore hydrates the sidebar setting from the persisted snapshot.
func (s *Store) Restore() error {
	if s.persist == nil {
		return nil
	}
	open, found, err := s.persist.LoadSidebar()
	if err != nil {
		return err
	}
	if found {
		s.mu.Lock()
		s.sidebarOpen = open
		s.mu.Unlock()
	}
	return nil
}

func (s *Store) ToggleSidebar() {
	s.mu.Lock()
	s.sidebarOpen = !s.sidebarOpen
	open := s.sidebarOpen
	s.mu.Unlock()
	s.saveSidebar(open)
}

func (s *Store) SetSidebarOpen(open bool) {
	s.mu.Lock()
	s.sidebarOpen = open
	s.mu.Unlock()
	s.saveSidebar(open)
}

func (s *Store) SidebarOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sidebarOpen
}

func (s *Store) OpenModal(name string) {
	s.mu.Lock()
	s.modals[name] = true
	s.mu.Unlock()
}

func (s *Store) CloseModal(name string) {
	s.mu.Lock()
	s.modals[name] = false
	s.mu.Unlock()
}

// CloseAllModals clears every known flag in one atomic update.
func (s *Store) CloseAllModals() {
	s.mu.Lock()
	for name := range s.modals {
		s.modals[name] = false
	}
	s.mu.Unlock()
}

func (s *Store) ModalOpen(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modals[name]
}

func (s *Store) SetLoading(name string, active bool) {
	s.mu.Lock()
	s.loading[name] = active
	s.mu.Unlock()
}

func (s *Store) IsLoading(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading[name]
}

// Reset returns transient state to its defaults; the persisted sidebar
// setting is left alone. Idempotent.
func (s *Store) Reset() {
	s.mu.Lock()
	s.modals = defaultModals()
	s.loading = map[string]bool{}
	s.mu.Unlock()
}

func (s *Store) saveSidebar(open bool) {
	if s.persist == nil {
		return
	}
	// Snapshot writes are best-effort; the in-memory flag is authoritative.
	_ = s.persist.SaveSidebar(open)
}
