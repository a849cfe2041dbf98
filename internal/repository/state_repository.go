package repository

import (
	"sync"
	"time"

	"github.com/noah-isme/academy-crm/internal/models"
)

// Snapshot is a consistent copy of every collection at one instant.
type Snapshot struct {
	Students  []models.Student
	Groups    []models.Group
	Persons   []models.ResponsiblePerson
	Payments  []models.Payment
	Contracts []models.Contract
}

// StateRepository is the process-wide application state: the session token and the
// collections derived from it. Server-sourced collections are only ever replaced whole;
// client-cache collections only grow at the front.
type StateRepository struct {
	mu         sync.RWMutex
	token      string
	syncing    int
	lastSynced time.Time

	students  []models.Student
	groups    []models.Group
	persons   []models.ResponsiblePerson
	payments  []models.Payment
	contracts []models.Contract
}

// NewStateRepository returns an empty, logged-out state seeded with the given payments.
func NewStateRepository(seedPayments []models.Payment) *StateRepository {
	return &StateRepository{payments: append([]models.Payment(nil), seedPayments...)}
}

// Token returns the current session token or "".
func (r *StateRepository) Token() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.token
}

// SetToken starts a session.
func (r *StateRepository) SetToken(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.token = token
}

// Clear ends the session and drops everything that depends on it. Payments are kept:
// the seed ledger and locally recorded lines outlive a single login.
func (r *StateRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearLocked()
}

// ClearIfToken ends the session only if token is still the current one.
func (r *StateRepository) ClearIfToken(token string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.token == "" || r.token != token {
		return false
	}
	r.clearLocked()
	return true
}

func (r *StateRepository) clearLocked() {
	r.token = ""
	r.lastSynced = time.Time{}
	r.students = nil
	r.groups = nil
	r.persons = nil
	r.contracts = nil
}

// BeginSync marks a read cycle as in flight; the returned func ends it.
func (r *StateRepository) BeginSync() func() {
	r.mu.Lock()
	r.syncing++
	r.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			r.syncing--
			r.mu.Unlock()
		})
	}
}

// Loading reports whether a read cycle is in flight.
func (r *StateRepository) Loading() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.syncing > 0
}

// LastSynced returns when the last full cycle committed, or the zero time.
func (r *StateRepository) LastSynced() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastSynced
}

// CommitSync replaces the three server-sourced collections at once, provided the session
// that started the cycle is still current.
func (r *StateRepository) CommitSync(token string, groups []models.Group, students []models.Student, persons []models.ResponsiblePerson, at time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.token == "" || r.token != token {
		return false
	}
	r.groups = append([]models.Group(nil), groups...)
	r.students = append([]models.Student(nil), students...)
	r.persons = append([]models.ResponsiblePerson(nil), persons...)
	r.lastSynced = at
	return true
}

// ReplaceStudents swaps in a refetched student list under the same token guard.
func (r *StateRepository) ReplaceStudents(token string, students []models.Student) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.token == "" || r.token != token {
		return false
	}
	r.students = append([]models.Student(nil), students...)
	return true
}

// UpdateStudentGroup points a student at a group. It reports false if the student is unknown.
func (r *StateRepository) UpdateStudentGroup(studentID, groupID int64) (models.Student, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.students {
		if r.students[i].ID != studentID {
			continue
		}
		gid := groupID
		r.students[i].GroupID = &gid
		return r.students[i], true
	}
	return models.Student{}, false
}

// PrependPayments puts new payment lines in front of the ledger.
func (r *StateRepository) PrependPayments(payments ...models.Payment) {
	if len(payments) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments = append(append([]models.Payment(nil), payments...), r.payments...)
}

// PrependPaymentsFunc builds new payment lines from the current students and ledger and
// prepends them in the same critical section, so concurrent runs cannot double-bill.
func (r *StateRepository) PrependPaymentsFunc(build func(students []models.Student, payments []models.Payment) []models.Payment) []models.Payment {
	r.mu.Lock()
	defer r.mu.Unlock()
	created := build(append([]models.Student(nil), r.students...), append([]models.Payment(nil), r.payments...))
	if len(created) > 0 {
		r.payments = append(append([]models.Payment(nil), created...), r.payments...)
	}
	return created
}

// PrependContract puts a new contract in front of the list.
func (r *StateRepository) PrependContract(contract models.Contract) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contracts = append([]models.Contract{contract}, r.contracts...)
}

// Students returns a copy of the student list.
func (r *StateRepository) Students() []models.Student {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Student(nil), r.students...)
}

// Snapshot copies every collection under one read lock.
func (r *StateRepository) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Snapshot{
		Students:  append([]models.Student(nil), r.students...),
		Groups:    append([]models.Group(nil), r.groups...),
		Persons:   append([]models.ResponsiblePerson(nil), r.persons...),
		Payments:  append([]models.Payment(nil), r.payments...),
		Contracts: append([]models.Contract(nil), r.contracts...),
	}
}
