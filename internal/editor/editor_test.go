package editor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/validation"
)

type fakeBackend struct {
	mu      sync.Mutex
	creates int
	updates []int
	fail    error
	// gate, when set, blocks each call until it is closed.
	gate    chan struct{}
	entered chan struct{}
	nextID  int64
	version int
}

func (b *fakeBackend) wait() {
	if b.entered != nil {
		b.entered <- struct{}{}
	}
	if b.gate != nil {
		<-b.gate
	}
}

func (b *fakeBackend) Create(ctx context.Context, doc resumes.Document) (resumes.Resume, error) {
	b.wait()
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fail != nil {
		return resumes.Resume{}, b.fail
	}
	b.creates++
	b.nextID++
	b.version = 1
	return resumes.Resume{ID: b.nextID, UserID: 1, Document: doc.Normalize(), Version: b.version}, nil
}

func (b *fakeBackend) Update(ctx context.Context, id int64, doc resumes.Document, version int) (resumes.Resume, error) {
	b.wait()
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fail != nil {
		return resumes.Resume{}, b.fail
	}
	b.updates = append(b.updates, version)
	b.version++
	return resumes.Resume{ID: id, UserID: 1, Document: doc.Normalize(), Version: b.version}, nil
}

func validDoc() Document {
	doc := NewDocument()
	doc.PersonalInfo = resumes.PersonalInfo{FullName: "Ada", Email: "ada@example.com"}
	return doc
}

func TestSaveCreatesThenUpdates(t *testing.T) {
	backend := &fakeBackend{}
	ed := New(backend, validDoc())
	ctx := context.Background()

	ed.Dispatch(TitleChanged{Title: "First"})
	require.True(t, ed.Dirty())

	saved, err := ed.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)
	assert.False(t, ed.Dirty())
	assert.Equal(t, 1, backend.creates)

	ed.Dispatch(TitleChanged{Title: "Second"})
	saved, err = ed.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Second", saved.Title)
	assert.Equal(t, 1, backend.creates, "existing document must be updated, not re-created")
	assert.Equal(t, []int{1}, backend.updates, "update carries the version it was based on")
	assert.Equal(t, 2, ed.Document().Version)
}

func TestSaveFailureKeepsStateDirty(t *testing.T) {
	backend := &fakeBackend{fail: errors.New("server unavailable")}
	ed := New(backend, validDoc())
	ed.Dispatch(SkillAdded{Skill: "Go"})
	before := ed.Document()

	_, err := ed.Save(context.Background())
	require.Error(t, err)
	assert.True(t, ed.Dirty())
	assert.Equal(t, before, ed.Document())
}

func TestSaveRejectsInvalidDocument(t *testing.T) {
	backend := &fakeBackend{}
	ed := New(backend, NewDocument())
	ed.Dispatch(ExperienceAppended{})

	_, err := ed.Save(context.Background())
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Issues)
	assert.Equal(t, 0, backend.creates)
	assert.True(t, ed.Dirty())
}

func TestEditsDuringSaveAreKept(t *testing.T) {
	backend := &fakeBackend{gate: make(chan struct{}), entered: make(chan struct{}, 1)}
	ed := New(backend, validDoc())
	ed.Dispatch(TitleChanged{Title: "Saved"})

	done := make(chan error, 1)
	go func() {
		_, err := ed.Save(context.Background())
		done <- err
	}()

	<-backend.entered
	ed.Dispatch(TitleChanged{Title: "Typed during save"})
	close(backend.gate)
	require.NoError(t, <-done)

	doc := ed.Document()
	assert.Equal(t, "Typed during save", doc.Title)
	assert.Equal(t, int64(1), doc.ID, "server id is adopted")
	assert.True(t, ed.Dirty(), "later edits still need saving")
}

func TestConcurrentSavesCreateOnce(t *testing.T) {
	backend := &fakeBackend{}
	ed := New(backend, validDoc())
	ed.Dispatch(TitleChanged{Title: "Once"})

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = ed.SaveIfDirty(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, backend.creates)
}

func TestSaveIfDirtySkipsCleanDocument(t *testing.T) {
	backend := &fakeBackend{}
	ed := New(backend, validDoc())

	saved, err := ed.SaveIfDirty(context.Background())
	require.NoError(t, err)
	assert.False(t, saved)
	assert.Equal(t, 0, backend.creates)
}

func TestAutoSaveFlushesDirtyEdits(t *testing.T) {
	backend := &fakeBackend{}
	ed := New(backend, validDoc())
	ed.Dispatch(TitleChanged{Title: "Auto"})

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		AutoSave(ctx, ed, 5*time.Millisecond, func(err error) { t.Errorf("autosave: %v", err) })
		close(stopped)
	}()

	require.Eventually(t, func() bool { return !ed.Dirty() }, time.Second, 5*time.Millisecond)
	cancel()
	<-stopped
	assert.Equal(t, int64(1), ed.Document().ID)
}
