package taskpad

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// TestTaskpadJourney walks a full session: add, toggle, filter, remove, reload.
func TestTaskpadJourney(t *testing.T) {
	slot := NewMemorySlot()
	store := newTestStore(WithPersister(NewStorage(slot, nil)))

	// Step 1: starts empty
	assert.Equal(t, 0, store.Len())
	assert.Empty(t, store.Visible(FilterAll))

	// Step 2: add two tasks
	buy, ok := store.Add("Buy milk")
	require.True(t, ok)
	walk, ok := store.Add("Walk dog")
	require.True(t, ok)

	assert.Equal(t, "t1", buy.ID)
	assert.Equal(t, "t2", walk.ID)
	assert.False(t, buy.Completed)
	assert.Equal(t, []string{"Buy milk", "Walk dog"}, texts(store.Tasks()))

	// Step 3: complete the first
	assert.True(t, store.Toggle(buy.ID))

	active := store.Visible(FilterActive)
	require.Len(t, active, 1)
	assert.Equal(t, "Walk dog", active[0].Text)

	completed := store.Visible(FilterCompleted)
	require.Len(t, completed, 1)
	assert.Equal(t, "Buy milk", completed[0].Text)

	// Step 4: remove it
	assert.True(t, store.Remove(buy.ID))
	assert.Equal(t, []string{"Walk dog"}, texts(store.Tasks()))
	assert.Empty(t, store.Visible(FilterCompleted))

	// Step 5: a new session over the same slot sees the same collection
	reopened := NewStore(WithPersister(NewStorage(slot, nil)))
	assert.Equal(t, store.Tasks(), reopened.Tasks())
}

func TestSingleTaskLifecycle(t *testing.T) {
	store := newTestStore()

	task, ok := store.Add("Buy milk")
	require.True(t, ok)
	require.Len(t, store.Tasks(), 1)
	assert.Equal(t, "Buy milk", store.Tasks()[0].Text)
	assert.False(t, store.Tasks()[0].Completed)

	store.Toggle(task.ID)
	assert.True(t, store.Tasks()[0].Completed)
	assert.Empty(t, store.Visible(FilterActive))

	completed := store.Visible(FilterCompleted)
	require.Len(t, completed, 1)
	assert.Equal(t, task.ID, completed[0].ID)

	store.Remove(task.ID)
	assert.Empty(t, store.Tasks())
}

func TestAddTrimsText(t *testing.T) {
	store := newTestStore()

	task, ok := store.Add("  Water plants \n")
	require.True(t, ok)
	assert.Equal(t, "Water plants", task.Text)

	got, found := store.Get(task.ID)
	require.True(t, found)
	assert.Equal(t, task, got)
}

func TestAddEmptyTextIsNoOp(t *testing.T) {
	persister := &recordingPersister{}
	store := newTestStore(WithPersister(persister))

	for _, text := range []string{"", "   ", "\t\n"} {
		_, ok := store.Add(text)
		assert.False(t, ok, "text %q", text)
	}

	assert.Equal(t, 0, store.Len())
	assert.Equal(t, 0, persister.saveCount(), "no-op adds must not write")
}

func TestAddWithPriority(t *testing.T) {
	store := newTestStore()

	high, _ := store.Add("Pay rent", WithPriority(PriorityHigh))
	plain, _ := store.Add("Read book", WithPriority(Priority("urgent")))

	assert.Equal(t, PriorityHigh, high.Priority)
	assert.Equal(t, PriorityNone, plain.Priority, "invalid priorities are ignored")
}

func TestAddStampsCreationTime(t *testing.T) {
	clock := tickingClock()
	store := NewStore(WithClock(clock))

	first, _ := store.Add("First")
	second, _ := store.Add("Second")

	assert.Less(t, first.CreatedAt, second.CreatedAt)
	assert.Equal(t, first.CreatedAt, first.Created().UnixMilli())
}

func TestToggleTwiceRestoresTask(t *testing.T) {
	store := newTestStore()
	task, _ := store.Add("Call mom")
	before := store.Tasks()

	assert.True(t, store.Toggle(task.ID))
	got, _ := store.Get(task.ID)
	assert.True(t, got.Completed)

	assert.True(t, store.Toggle(task.ID))
	assert.Equal(t, before, store.Tasks())
}

func TestToggleLeavesOtherTasksAlone(t *testing.T) {
	store := newTestStore()
	a, _ := store.Add("A")
	b, _ := store.Add("B")
	c, _ := store.Add("C")

	store.Toggle(b.ID)

	tasks := store.Tasks()
	require.Len(t, tasks, 3)
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, ids(tasks))
	assert.False(t, tasks[0].Completed)
	assert.True(t, tasks[1].Completed)
	assert.False(t, tasks[2].Completed)
	assert.Equal(t, "B", tasks[1].Text)
}

func TestUnknownIDsAreNoOps(t *testing.T) {
	persister := &recordingPersister{}
	store := newTestStore(WithPersister(persister))
	store.Add("Only task")
	before := store.Tasks()
	saves := persister.saveCount()

	assert.False(t, store.Toggle("missing"))
	assert.False(t, store.Remove("missing"))
	assert.NoError(t, store.Process(ToggleTask{TaskID: "missing"}))
	assert.NoError(t, store.Process(RemoveTask{TaskID: ""}))

	assert.Equal(t, before, store.Tasks())
	assert.Equal(t, saves, persister.saveCount())
}

func TestRemoveKeepsOrder(t *testing.T) {
	store := newTestStore()
	store.Add("A")
	b, _ := store.Add("B")
	store.Add("C")

	assert.True(t, store.Remove(b.ID))
	assert.Equal(t, []string{"A", "C"}, texts(store.Tasks()))

	_, found := store.Get(b.ID)
	assert.False(t, found)
}

func TestProcessIntents(t *testing.T) {
	store := newTestStore()

	require.NoError(t, store.Process(AddTask{Text: "Value intent"}))
	require.NoError(t, store.Process(&AddTask{Text: "Pointer intent", Priority: PriorityLow}))
	require.Equal(t, 2, store.Len())

	tasks := store.Tasks()
	assert.Equal(t, PriorityLow, tasks[1].Priority)

	require.NoError(t, store.Process(&ToggleTask{TaskID: tasks[0].ID}))
	got, _ := store.Get(tasks[0].ID)
	assert.True(t, got.Completed)

	require.NoError(t, store.Process(&RemoveTask{TaskID: tasks[1].ID}))
	assert.Equal(t, 1, store.Len())
}

type renameTask struct{}

func (renameTask) Type() string { return "rename_task" }

func TestProcessUnknownIntent(t *testing.T) {
	store := newTestStore()

	err := store.Process(renameTask{})
	assert.ErrorIs(t, err, ErrUnknownIntent)
	assert.Equal(t, 0, store.Len())
}

// TestCountTracksMutations checks the collection size against a running
// tally over a random mix of operations.
func TestCountTracksMutations(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	store := newTestStore()
	want := 0

	for i := 0; i < 500; i++ {
		tasks := store.Tasks()
		switch op := rng.Intn(4); {
		case op == 0 || len(tasks) == 0:
			if rng.Intn(5) == 0 {
				store.Add("   ")
			} else {
				store.Add("task")
				want++
			}
		case op == 1:
			store.Toggle(tasks[rng.Intn(len(tasks))].ID)
		case op == 2:
			if store.Remove(tasks[rng.Intn(len(tasks))].ID) {
				want--
			}
		default:
			store.Remove("nope")
		}

		require.Equal(t, want, store.Len(), "after step %d", i)
		assert.Equal(t, store.Len(),
			len(store.Visible(FilterActive))+len(store.Visible(FilterCompleted)))
	}
}

func TestEveryMutationWritesThrough(t *testing.T) {
	persister := &recordingPersister{}
	store := newTestStore(WithPersister(persister))

	task, _ := store.Add("Write through")
	assert.Equal(t, 1, persister.saveCount())
	assert.Equal(t, store.Tasks(), persister.lastSave())

	store.Toggle(task.ID)
	assert.Equal(t, 2, persister.saveCount())
	assert.True(t, persister.lastSave()[0].Completed)

	store.Remove(task.ID)
	assert.Equal(t, 3, persister.saveCount())
	assert.Empty(t, persister.lastSave())
}

func TestStoreLoadsInitialCollection(t *testing.T) {
	persister := &recordingPersister{initial: []Task{
		{ID: "a", Text: "Existing", CreatedAt: 1},
		{ID: "b", Text: "Done already", Completed: true, CreatedAt: 2},
	}}
	store := NewStore(WithPersister(persister))

	assert.Equal(t, 2, store.Len())
	assert.Equal(t, 0, persister.saveCount(), "loading must not write")
	assert.Len(t, store.Visible(FilterCompleted), 1)
}

func TestSaveFailureKeepsMemoryAndRetries(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	slot := NewMemorySlot()
	slot.Quota = 100
	store := newTestStore(
		WithLogger(zap.New(core)),
		WithPersister(NewStorage(slot, zap.New(core))),
	)

	store.Add("short")
	data, err := slot.Read()
	require.NoError(t, err)
	require.NotNil(t, data)

	store.Add("this text is long enough to push the snapshot over the quota")
	assert.Equal(t, 2, store.Len(), "memory stays authoritative")
	assert.Equal(t, 1, logs.FilterMessage("Failed to save tasks").Len())

	stale, _ := slot.Read()
	assert.Equal(t, data, stale, "slot still holds the last good snapshot")

	// Next mutation writes the whole collection again
	slot.Quota = 0
	store.Toggle("t1")

	reopened := NewStore(WithPersister(NewStorage(slot, nil)))
	assert.Equal(t, store.Tasks(), reopened.Tasks())
}

func TestReloadSkippedAfterFailedSave(t *testing.T) {
	slot := NewMemorySlot()
	slot.Quota = 100
	store := newTestStore(WithPersister(NewStorage(slot, nil)))

	store.Add("short")
	store.Add("this text is long enough to push the snapshot over the quota")

	// The slot still holds one task; reloading would drop the second
	assert.False(t, store.Reload())
	assert.Equal(t, 2, store.Len())

	// Once a write lands the slot is current again
	slot.Quota = 0
	store.Toggle("t1")
	assert.True(t, store.Reload())
	assert.Equal(t, []string{"short", "this text is long enough to push the snapshot over the quota"}, texts(store.Tasks()))
}

func TestReloadSkippedAfterFailedDebouncedFlush(t *testing.T) {
	slot := NewMemorySlot()
	slot.Quota = 100
	saver := NewDebouncedSaver(NewStorage(slot, nil), time.Hour)
	store := newTestStore(WithPersister(saver))

	store.Add("this text is long enough to push the snapshot over the quota")
	saver.Flush()

	assert.True(t, saver.Pending())
	assert.False(t, store.Reload())
	assert.Equal(t, 1, store.Len())
}

func TestProcessNilIntents(t *testing.T) {
	store := newTestStore()
	store.Add("Keep me")

	var add *AddTask
	var toggle *ToggleTask
	var remove *RemoveTask

	for _, intent := range []Intent{nil, add, toggle, remove} {
		assert.ErrorIs(t, store.Process(intent), ErrUnknownIntent)
	}

	require.Equal(t, 1, store.Len())
	assert.False(t, store.Tasks()[0].Completed)
}

func TestFreshIDSkipsCollisions(t *testing.T) {
	queue := []string{"same", "same", "same", "other"}
	gen := func() string {
		id := queue[0]
		queue = queue[1:]
		return id
	}
	store := NewStore(WithIDGenerator(gen))

	first, _ := store.Add("One")
	second, _ := store.Add("Two")

	assert.Equal(t, "same", first.ID)
	assert.Equal(t, "other", second.ID)
}

func TestDefaultIDsAreUnique(t *testing.T) {
	store := NewStore()
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		task, _ := store.Add("task")
		assert.False(t, seen[task.ID], "duplicate id %s", task.ID)
		seen[task.ID] = true
	}
}

func TestTasksReturnsCopy(t *testing.T) {
	store := newTestStore()
	store.Add("Original")

	tasks := store.Tasks()
	tasks[0].Text = "Changed"

	assert.Equal(t, "Original", store.Tasks()[0].Text)
}

func TestReload(t *testing.T) {
	slot := NewMemorySlot()
	store := newTestStore(WithPersister(NewStorage(slot, nil)))
	store.Add("Mine")

	other := NewStore(WithPersister(NewStorage(slot, nil)))
	other.Add("Theirs")

	assert.True(t, store.Reload())
	assert.Equal(t, []string{"Mine", "Theirs"}, texts(store.Tasks()))
}

func texts(tasks []Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Text
	}
	return out
}

func ids(tasks []Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}
