package inmemdb

import (
	"context"
	"sync"

	"github.com/trezcool/unisphere/core"
	"github.com/trezcool/unisphere/core/community"
	"github.com/trezcool/unisphere/core/course"
	"github.com/trezcool/unisphere/core/finance"
	"github.com/trezcool/unisphere/core/notification"
	"github.com/trezcool/unisphere/core/schedule"
	"github.com/trezcool/unisphere/core/user"
	"github.com/trezcool/unisphere/core/wellness"
)

type (
	tables struct {
		users         map[int]user.User
		courses       map[int]course.Course
		hydration     map[int]wellness.HydrationEntry
		moods         map[int]wellness.MoodEntry
		studySessions map[int]wellness.StudySession
		finances      map[int]finance.FinancialEntry
		notifications map[int]notification.Notification
		timetable     map[int]schedule.TimetableEntry
		tests         map[int]schedule.Test
		appointments  map[int]schedule.Appointment
		posts         map[int]community.Post
		comments      map[int]community.Comment
		messages      map[int]community.DirectMessage
	}

	// DB is a process-local store implementing every repository. Rows are held by value.
	DB struct {
		mu   sync.RWMutex
		txMu sync.Mutex
		t    tables
		pk   int
	}
)

func Open() *DB {
	return &DB{t: newTables()}
}

// Reset empties every table.
func (db *DB) Reset() {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.t = newTables()
}

func (db *DB) nextPK() int {
	db.pk++
	return db.pk
}

func newTables() tables {
	return tables{
		users:         make(map[int]user.User),
		courses:       make(map[int]course.Course),
		hydration:     make(map[int]wellness.HydrationEntry),
		moods:         make(map[int]wellness.MoodEntry),
		studySessions: make(map[int]wellness.StudySession),
		finances:      make(map[int]finance.FinancialEntry),
		notifications: make(map[int]notification.Notification),
		timetable:     make(map[int]schedule.TimetableEntry),
		tests:         make(map[int]schedule.Test),
		appointments:  make(map[int]schedule.Appointment),
		posts:         make(map[int]community.Post),
		comments:      make(map[int]community.Comment),
		messages:      make(map[int]community.DirectMessage),
	}
}

// deleteOwnedBy removes every row referencing userID, mirroring ON DELETE CASCADE.
func (t tables) deleteOwnedBy(userID int) {
	for id, r := range t.courses {
		if r.UserID == userID {
			delete(t.courses, id)
		}
	}
	for id, r := range t.hydration {
		if r.UserID == userID {
			delete(t.hydration, id)
		}
	}
	for id, r := range t.moods {
		if r.UserID == userID {
			delete(t.moods, id)
		}
	}
	for id, r := range t.studySessions {
		if r.UserID == userID {
			delete(t.studySessions, id)
		}
	}
	for id, r := range t.finances {
		if r.UserID == userID {
			delete(t.finances, id)
		}
	}
	for id, r := range t.notifications {
		if r.UserID == userID {
			delete(t.notifications, id)
		}
	}
	for id, r := range t.timetable {
		if r.UserID == userID {
			delete(t.timetable, id)
		}
	}
	for id, r := range t.tests {
		if r.UserID == userID {
			delete(t.tests, id)
		}
	}
	for id, r := range t.appointments {
		if r.UserID == userID {
			delete(t.appointments, id)
		}
	}
	for id, r := range t.posts {
		if r.UserID == userID {
			delete(t.posts, id)
			for cid, c := range t.comments {
				if c.PostID == id {
					delete(t.comments, cid)
				}
			}
		}
	}
	for id, r := range t.comments {
		if r.UserID == userID {
			delete(t.comments, id)
		}
	}
	for id, r := range t.messages {
		if r.SenderID == userID || r.ReceiverID == userID {
			delete(t.messages, id)
		}
	}
}

// txExec is the executor handed to a transaction body. Writes made through it record how to revert themselves.
// It carries no SQL connection.
type txExec struct {
	core.DBExecutor
	undo []func()
}

// journal records undo against the transaction owning exec, if any. Callers hold db.mu.
func journal(exec []core.DBExecutor, undo func()) {
	if len(exec) == 0 {
		return
	}
	if tx, ok := exec[0].(*txExec); ok {
		tx.undo = append(tx.undo, undo)
	}
}

// Transactor serializes transactions. A failed transaction reverts only the writes made through its executor.
type Transactor struct {
	db *DB
}

var _ core.Transactor = (*Transactor)(nil)

func NewTransactor(db *DB) *Transactor {
	return &Transactor{db: db}
}

func (tx *Transactor) WithinTx(ctx context.Context, fn func(exec core.DBExecutor) error) error {
	tx.db.txMu.Lock()
	defer tx.db.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	exec := new(txExec)
	if err := fn(exec); err != nil {
		tx.db.mu.Lock()
		for i := len(exec.undo) - 1; i >= 0; i-- {
			exec.undo[i]()
		}
		tx.db.mu.Unlock()
		return err
	}
	return nil
}
