// Package testutil provides in-memory stand-ins for the Postgres repositories
// with the same error and counter behaviour.
package testutil

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"neetprep-backend/internal/models"
	"neetprep-backend/internal/repository"
)

var ErrInjected = errors.New("injected storage failure")

// DB holds every table. Set FailReads or FailWrites to simulate an
// unavailable database.
type DB struct {
	mu     sync.Mutex
	nextID int64
	now    func() time.Time

	subjects  []models.SubjectRecord
	chapters  []models.ChapterRecord
	questions []models.QuestionRecord
	files     []models.FileRecord
	folders   []models.FolderRecord
	messages  []models.MessageRecord

	FailReads  bool
	FailWrites bool
}

func NewDB() *DB {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	db := &DB{}
	// Strictly increasing timestamps keep ordering deterministic.
	db.now = func() time.Time { return base.Add(time.Duration(db.nextID) * time.Second) }
	return db
}

func (db *DB) id() int64 {
	db.nextID++
	return db.nextID
}

func (db *DB) read() error {
	if db.FailReads {
		return ErrInjected
	}
	return nil
}

func (db *DB) write() error {
	if db.FailWrites {
		return ErrInjected
	}
	return nil
}

func (db *DB) SetFailures(reads, writes bool) {
	db.mu.Lock()
	db.FailReads, db.FailWrites = reads, writes
	db.mu.Unlock()
}

func (db *DB) Subjects() *Subjects   { return &Subjects{db: db} }
func (db *DB) Chapters() *Chapters   { return &Chapters{db: db} }
func (db *DB) Questions() *Questions { return &Questions{db: db} }
func (db *DB) Files() *Files         { return &Files{db: db} }
func (db *DB) Folders() *Folders     { return &Folders{db: db} }
func (db *DB) Messages() *Messages   { return &Messages{db: db} }

func (db *DB) Ping(context.Context) error { return db.read() }

type Subjects struct{ db *DB }

func (s *Subjects) List(context.Context) ([]models.SubjectRecord, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.read(); err != nil {
		return nil, err
	}
	return append([]models.SubjectRecord{}, s.db.subjects...), nil
}

func (s *Subjects) Create(_ context.Context, rec *models.SubjectRecord) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.write(); err != nil {
		return err
	}
	rec.ID = s.db.id()
	rec.CreatedAt = s.db.now()
	s.db.subjects = append(s.db.subjects, *rec)
	return nil
}

func (s *Subjects) Delete(_ context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.write(); err != nil {
		return err
	}
	for i, rec := range s.db.subjects {
		if rec.ID == id {
			s.db.subjects = append(s.db.subjects[:i], s.db.subjects[i+1:]...)
			var owned []int64
			for _, c := range s.db.chapters {
				if c.SubjectID == id {
					owned = append(owned, c.ID)
				}
			}
			for _, chapterID := range owned {
				s.db.deleteChapter(chapterID)
			}
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *Subjects) InsertDefaultsIfEmpty(_ context.Context, defaults []models.CreateSubjectRequest) (int, error) {
	s.db.mu.Lock()
	if err := s.db.write(); err != nil {
		s.db.mu.Unlock()
		return 0, err
	}
	if len(s.db.subjects) > 0 {
		s.db.mu.Unlock()
		return 0, nil
	}
	for _, d := range defaults {
		s.db.subjects = append(s.db.subjects, models.SubjectRecord{ID: s.db.id(), Name: d.Name, Color: d.Color, CreatedAt: s.db.now()})
	}
	s.db.mu.Unlock()
	return len(defaults), nil
}

type Chapters struct{ db *DB }

func (c *Chapters) List(context.Context) ([]models.ChapterRecord, error) {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()
	if err := c.db.read(); err != nil {
		return nil, err
	}
	return append([]models.ChapterRecord{}, c.db.chapters...), nil
}

func (c *Chapters) ListBySubject(_ context.Context, subjectID int64) ([]models.ChapterRecord, error) {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()
	if err := c.db.read(); err != nil {
		return nil, err
	}
	out := []models.ChapterRecord{}
	for _, rec := range c.db.chapters {
		if rec.SubjectID == subjectID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (c *Chapters) GetByID(_ context.Context, id int64) (*models.ChapterRecord, error) {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()
	if err := c.db.read(); err != nil {
		return nil, err
	}
	if i := c.db.chapterIndex(id); i >= 0 {
		rec := c.db.chapters[i]
		return &rec, nil
	}
	return nil, repository.ErrNotFound
}

func (c *Chapters) Create(_ context.Context, rec *models.ChapterRecord) error {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()
	if err := c.db.write(); err != nil {
		return err
	}
	for _, existing := range c.db.chapters {
		if existing.Title == rec.Title {
			return repository.ErrDuplicate
		}
	}
	found := false
	for _, s := range c.db.subjects {
		if s.ID == rec.SubjectID {
			found = true
			break
		}
	}
	if !found {
		return repository.ErrInvalidReference
	}
	rec.ID = c.db.id()
	rec.TotalQuestions = 0
	rec.CreatedAt = c.db.now()
	c.db.chapters = append(c.db.chapters, *rec)
	return nil
}

func (c *Chapters) Delete(_ context.Context, id int64) error {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()
	if err := c.db.write(); err != nil {
		return err
	}
	if !c.db.deleteChapter(id) {
		return repository.ErrNotFound
	}
	return nil
}

func (db *DB) chapterIndex(id int64) int {
	for i, rec := range db.chapters {
		if rec.ID == id {
			return i
		}
	}
	return -1
}

// deleteChapter removes the chapter and its questions. Caller holds mu.
func (db *DB) deleteChapter(id int64) bool {
	i := db.chapterIndex(id)
	if i < 0 {
		return false
	}
	db.chapters = append(db.chapters[:i], db.chapters[i+1:]...)
	kept := db.questions[:0]
	for _, q := range db.questions {
		if q.ChapterID != id {
			kept = append(kept, q)
		}
	}
	db.questions = kept
	return true
}

func (db *DB) recount(chapterID int64) {
	n := 0
	for _, q := range db.questions {
		if q.ChapterID == chapterID {
			n++
		}
	}
	if i := db.chapterIndex(chapterID); i >= 0 {
		db.chapters[i].TotalQuestions = n
	}
}

type Questions struct{ db *DB }

func (q *Questions) ListByChapter(_ context.Context, chapterID int64) ([]models.QuestionRecord, error) {
	q.db.mu.Lock()
	defer q.db.mu.Unlock()
	if err := q.db.read(); err != nil {
		return nil, err
	}
	out := []models.QuestionRecord{}
	for _, rec := range q.db.questions {
		if rec.ChapterID == chapterID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (q *Questions) CreateBulk(_ context.Context, chapterID int64, recs []models.QuestionRecord) ([]models.QuestionRecord, error) {
	q.db.mu.Lock()
	defer q.db.mu.Unlock()
	if err := q.db.write(); err != nil {
		return nil, err
	}
	if q.db.chapterIndex(chapterID) < 0 {
		return nil, repository.ErrNotFound
	}
	created := make([]models.QuestionRecord, 0, len(recs))
	for _, rec := range recs {
		rec.ID = q.db.id()
		rec.ChapterID = chapterID
		rec.CreatedAt = q.db.now()
		created = append(created, rec)
	}
	q.db.questions = append(q.db.questions, created...)
	q.db.recount(chapterID)
	return created, nil
}

func (q *Questions) Delete(_ context.Context, id int64) error {
	q.db.mu.Lock()
	defer q.db.mu.Unlock()
	if err := q.db.write(); err != nil {
		return err
	}
	for i, rec := range q.db.questions {
		if rec.ID == id {
			q.db.questions = append(q.db.questions[:i], q.db.questions[i+1:]...)
			q.db.recount(rec.ChapterID)
			return nil
		}
	}
	return repository.ErrNotFound
}

type Files struct{ db *DB }

func (f *Files) List(context.Context) ([]models.FileRecord, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if err := f.db.read(); err != nil {
		return nil, err
	}
	out := append([]models.FileRecord{}, f.db.files...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *Files) Create(_ context.Context, rec *models.FileRecord) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if err := f.db.write(); err != nil {
		return err
	}
	rec.ID = f.db.id()
	rec.CreatedAt = f.db.now()
	f.db.files = append(f.db.files, *rec)
	return nil
}

func (f *Files) Delete(_ context.Context, id int64) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if err := f.db.write(); err != nil {
		return err
	}
	for i, rec := range f.db.files {
		if rec.ID == id {
			f.db.files = append(f.db.files[:i], f.db.files[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type Folders struct{ db *DB }

func (f *Folders) List(context.Context) ([]models.FolderRecord, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if err := f.db.read(); err != nil {
		return nil, err
	}
	out := append([]models.FolderRecord{}, f.db.folders...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *Folders) Create(_ context.Context, rec *models.FolderRecord) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if err := f.db.write(); err != nil {
		return err
	}
	rec.ID = f.db.id()
	rec.CreatedAt = f.db.now()
	f.db.folders = append(f.db.folders, *rec)
	return nil
}

func (f *Folders) Delete(_ context.Context, id int64) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if err := f.db.write(); err != nil {
		return err
	}
	for i, rec := range f.db.folders {
		if rec.ID == id {
			f.db.folders = append(f.db.folders[:i], f.db.folders[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type Messages struct{ db *DB }

func (m *Messages) List(context.Context) ([]models.MessageRecord, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if err := m.db.read(); err != nil {
		return nil, err
	}
	return append([]models.MessageRecord{}, m.db.messages...), nil
}

func (m *Messages) Create(_ context.Context, rec *models.MessageRecord) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if err := m.db.write(); err != nil {
		return err
	}
	rec.ID = m.db.id()
	rec.Timestamp = m.db.now()
	m.db.messages = append(m.db.messages, *rec)
	return nil
}

func (m *Messages) DeleteAll(context.Context) (int64, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if err := m.db.write(); err != nil {
		return 0, err
	}
	n := int64(len(m.db.messages))
	m.db.messages = nil
	return n, nil
}
