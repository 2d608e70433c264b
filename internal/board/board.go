package board

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jackdzi/informs/internal/metrics"
	"github.com/jackdzi/informs/internal/models"
	"github.com/jackdzi/informs/internal/view"
	"github.com/jackdzi/informs/pkg/config"
	appErrors "github.com/jackdzi/informs/pkg/errors"
)

// upstream is the slice of the scheduling API the engine talks to.
type upstream interface {
	DetailedSchedules(ctx context.Context, versionID int) ([]models.Assignment, error)
	Conflicts(ctx context.Context, versionID int) ([]models.Conflict, error)
	AnalyticsSnapshot(ctx context.Context, versionID int) (*models.Analytics, error)
	StudentSchedule(ctx context.Context, studentID, versionID int) ([]models.Assignment, error)
	Reschedule(ctx context.Context, assignmentID int, w models.ScheduleWrite) error
	BulkSave(ctx context.Context, writes []models.ScheduleWrite) error
	Versions(ctx context.Context) ([]models.ScheduleVersion, error)
	CreateVersion(ctx context.Context, name string) (*models.ScheduleVersion, error)
	DuplicateVersion(ctx context.Context, id int, name string) (*models.ScheduleVersion, error)
	DeleteVersion(ctx context.Context, id int) error
}

// refData serves the version-independent collections, possibly from cache.
type refData interface {
	Timeslots(ctx context.Context) ([]models.TimeSlot, error)
	Students(ctx context.Context) ([]models.StudentInfo, error)
}

// Board is the schedule board synchronization engine. It owns the entity
// store, the drag lifecycle, the optimistic-update protocol against the
// upstream, and the active-version context.
//
// Every store write happens under mu, from exactly two places: the
// coordinator's optimistic patch/rollback and the fetch appliers. Upstream
// round-trips run outside the lock; their continuations re-check the epoch
// counter before touching the store, which is how responses belonging to a
// no-longer-active version get discarded.
type Board struct {
	remote  upstream
	refdata refData
	bus     *Bus
	logger  *zap.Logger
	metrics *metrics.Metrics
	cfg     config.BoardConfig

	mu     sync.Mutex
	store  *Store
	drag   *DragController
	loaded bool
	closed bool

	// epoch increments on every version switch; in-flight continuations
	// compare against it and drop their store effects when it moved.
	epoch uint64

	status    models.SaveStatus
	statusGen uint64

	refresh *refreshQueue
	dragSub int
}

// Snapshot is the display-ready view of the whole board.
type Snapshot struct {
	Loaded          bool                     `json:"loaded"`
	ActiveVersionID int                      `json:"active_version_id"`
	Versions        []models.ScheduleVersion `json:"versions"`
	Assignments     []models.Assignment      `json:"assignments"`
	Timeslots       []models.TimeSlot        `json:"timeslots"`
	Weeks           [][]string               `json:"weeks"`
	TimeRanges      []string                 `json:"time_ranges"`
	ConflictGroups  []view.ConflictGroup     `json:"conflict_groups"`
	ConflictSlotIDs map[int]bool             `json:"conflict_slot_ids"`
	Analytics       *view.AnalyticsView      `json:"analytics"`
	SaveStatus      models.SaveStatus        `json:"save_status"`
	DraggingID      *int                     `json:"dragging_id"`
}

// New assembles an engine. Call Load before serving and Close on teardown.
func New(remote upstream, ref refData, bus *Bus, cfg config.BoardConfig, logger *zap.Logger, m *metrics.Metrics) *Board {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &Board{
		remote:  remote,
		refdata: ref,
		bus:     bus,
		logger:  logger,
		metrics: m,
		cfg:     cfg,
		store:   NewStore(),
		drag:    NewDragController(),
		status:  models.SaveIdle,
	}

	b.refresh = newRefreshQueue(b.runRefresh, refreshQueueConfig{
		Workers:    cfg.RefreshWorkers,
		BufferSize: cfg.RefreshBufferSize,
		MaxRetries: cfg.RefreshRetries,
		RetryDelay: cfg.RefreshRetryDelay,
		Logger:     logger,
	})
	b.refresh.start(context.Background())

	if bus != nil {
		b.dragSub = bus.Subscribe(TopicDragEnded, b.onDragEnded)
	}
	return b
}

// Close releases the bus subscription and stops the refresh workers.
func (b *Board) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.mu.Unlock()

	if b.bus != nil {
		b.bus.Unsubscribe(TopicDragEnded, b.dragSub)
	}
	b.refresh.stop()
}

// Load performs the initial full fetch: version list, reference data, then
// the version-scoped collections of the active version.
func (b *Board) Load(ctx context.Context) error {
	versions, err := b.remote.Versions(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "load version list")
	}
	if len(versions) == 0 {
		return appErrors.Clone(appErrors.ErrUpstream, "upstream returned no schedule versions")
	}
	activeID := versions[0].ID
	for _, v := range versions {
		if v.Active {
			activeID = v.ID
			break
		}
	}

	timeslots, err := b.refdata.Timeslots(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "load timeslots")
	}
	students, err := b.refdata.Students(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "load students")
	}

	b.mu.Lock()
	b.store.ReplaceVersions(versions)
	b.store.ReplaceTimeslots(timeslots)
	b.store.ReplaceStudents(students)
	b.store.SetActiveVersion(activeID)
	b.loaded = true
	epoch := b.epoch
	b.mu.Unlock()

	return b.loadVersionScoped(ctx, activeID, epoch)
}

// loadVersionScoped fetches assignments, conflicts and analytics for one
// version and applies all three atomically, unless the epoch moved while
// the fetches were in flight. A fetch failure applies nothing, so the board
// degrades to last known good instead of blanking.
func (b *Board) loadVersionScoped(ctx context.Context, versionID int, epoch uint64) error {
	assignments, err := b.remote.DetailedSchedules(ctx, versionID)
	if err != nil {
		b.logger.Warn("assignments fetch failed", zap.Int("version_id", versionID), zap.Error(err))
		return err
	}
	conflicts, err := b.remote.Conflicts(ctx, versionID)
	if err != nil {
		b.logger.Warn("conflicts fetch failed", zap.Int("version_id", versionID), zap.Error(err))
		return err
	}
	analytics, err := b.remote.AnalyticsSnapshot(ctx, versionID)
	if err != nil {
		b.logger.Warn("analytics fetch failed", zap.Int("version_id", versionID), zap.Error(err))
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if epoch != b.epoch {
		b.logger.Info("discarding stale version fetch",
			zap.Int("version_id", versionID),
			zap.Uint64("fetch_epoch", epoch),
			zap.Uint64("current_epoch", b.epoch))
		return nil
	}
	b.store.ReplaceAssignments(assignments)
	b.store.ReplaceConflicts(conflicts)
	b.store.ReplaceAnalytics(analytics)
	return nil
}

// Snapshot returns the display-ready state of the board.
func (b *Board) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	snap := Snapshot{
		Loaded:          b.loaded,
		ActiveVersionID: b.store.ActiveVersion(),
		Versions:        b.store.Versions(),
		Assignments:     b.store.Assignments(),
		Timeslots:       b.store.Timeslots(),
		SaveStatus:      b.status,
	}
	snap.Weeks = view.Weeks(snap.Timeslots)
	snap.TimeRanges = view.TimeRanges(snap.Timeslots)

	conflicts := b.store.Conflicts()
	snap.ConflictGroups = view.GroupConflicts(conflicts)
	snap.ConflictSlotIDs = view.ConflictSlotIDs(conflicts)

	if analytics := b.store.Analytics(); analytics != nil {
		av := view.BuildAnalyticsView(*analytics)
		snap.Analytics = &av
	}
	if id, ok := b.drag.DraggingID(); ok {
		snap.DraggingID = &id
	}
	return snap
}

// BeginDrag starts a drag gesture from the given assignment. Unscheduled
// entries are not draggable; for those the call is a silent no-op.
func (b *Board) BeginDrag(assignmentID int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.loaded {
		return appErrors.ErrNotLoaded
	}

	a, ok := b.store.Assignment(assignmentID)
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
	}
	if b.drag.Begin(a) {
		b.metrics.RecordDragStarted()
	}
	return nil
}

// EndDrag publishes the global drag-ended signal. It fires on pointer
// release anywhere, so the in-flight marker can never get stuck.
func (b *Board) EndDrag() {
	if b.bus != nil {
		b.bus.Publish(TopicDragEnded)
		return
	}
	b.onDragEnded()
}

func (b *Board) onDragEnded() {
	b.mu.Lock()
	b.drag.Cancel()
	b.mu.Unlock()
}

// Drop resolves a calendar cell and, when it maps to a real timeslot that
// differs from the source's, kicks off the optimistic reschedule. Both
// resolution failures are silent no-ops, not errors: dropping onto the same
// cell is an explicit idempotence guarantee.
func (b *Board) Drop(date, timeRange string) error {
	start, end, ok := view.SplitTimeRange(timeRange)

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.loaded {
		return appErrors.ErrNotLoaded
	}

	src, dragging := b.drag.Current()
	b.drag.Cancel()
	if !dragging {
		b.metrics.RecordDrop("no_drag")
		return nil
	}
	if !ok {
		b.metrics.RecordDrop("unresolved")
		return nil
	}

	target, found := b.store.ResolveCell(date, start, end)
	if !found {
		b.metrics.RecordDrop("unresolved")
		return nil
	}
	if src.Timeslot != nil && src.Timeslot.ID == target.ID {
		b.metrics.RecordDrop("same_cell")
		return nil
	}

	b.metrics.RecordDrop("rescheduled")
	b.rescheduleLocked(src.ID, target)
	return nil
}

// rescheduleLocked applies the optimistic patch and dispatches the
// confirming write. Caller holds b.mu.
//
// The rollback snapshot is the assignment's state at the moment this
// operation is issued. When two reschedules of the same assignment overlap,
// the second snapshots the first's already-applied result, so its failure
// rolls back one step, not the whole drag session.
func (b *Board) rescheduleLocked(assignmentID int, target models.TimeSlot) {
	a, ok := b.store.Assignment(assignmentID)
	if !ok || !a.Scheduled() || a.Timeslot.ID == target.ID {
		return
	}

	prev := a.Timeslot
	patched := target
	b.store.PatchTimeslot(assignmentID, &patched)

	opID := uuid.NewString()
	epoch := b.epoch
	write := models.ScheduleWrite{
		ExamID:     a.Exam.ID,
		RoomID:     a.Room.ID,
		TimeslotID: target.ID,
	}
	b.setStatusLocked(models.SaveSaving, 0)

	b.logger.Info("optimistic reschedule applied",
		zap.String("op_id", opID),
		zap.Int("assignment_id", assignmentID),
		zap.Int("from_timeslot", prev.ID),
		zap.Int("to_timeslot", target.ID))

	go b.settleReschedule(opID, epoch, assignmentID, prev, write)
}

// settleReschedule performs the confirming write and reconciles its
// outcome against the store.
func (b *Board) settleReschedule(opID string, epoch uint64, assignmentID int, prev *models.TimeSlot, write models.ScheduleWrite) {
	err := b.remote.Reschedule(context.Background(), assignmentID, write)

	b.mu.Lock()
	defer b.mu.Unlock()

	stale := epoch != b.epoch || b.closed
	if err != nil {
		if stale {
			// The dataset this write belonged to is gone; only the
			// transient status feedback may surface.
			b.metrics.RecordReschedule(metrics.OutcomeStale)
		} else {
			b.store.PatchTimeslot(assignmentID, prev)
			b.metrics.RecordReschedule(metrics.OutcomeRolledBack)
			b.logger.Warn("reschedule rejected, rolled back",
				zap.String("op_id", opID),
				zap.Int("assignment_id", assignmentID),
				zap.Error(err))
		}
		b.setStatusLocked(models.SaveError, b.cfg.ErrorStatusTTL)
		return
	}

	if stale {
		b.metrics.RecordReschedule(metrics.OutcomeStale)
	} else {
		b.metrics.RecordReschedule(metrics.OutcomeConfirmed)
		// Conflicts, analytics and capacity are upstream-owned
		// derivations; the optimistic state cannot stand in for them.
		b.enqueueRefreshLocked(epoch)
	}
	b.setStatusLocked(models.SaveSaved, b.cfg.SavedStatusTTL)
}

// BulkSave commits every fully scheduled assignment on the board in one
// upstream write. Entries missing exam, room or timeslot are skipped. The
// payload reflects the store at call time, optimistic patches included.
// When a drag settles concurrently the last write wins.
func (b *Board) BulkSave(ctx context.Context) error {
	b.mu.Lock()
	if !b.loaded {
		b.mu.Unlock()
		return appErrors.ErrNotLoaded
	}
	var writes []models.ScheduleWrite
	for _, a := range b.store.Assignments() {
		if !a.Scheduled() {
			continue
		}
		writes = append(writes, models.ScheduleWrite{
			ExamID:     a.Exam.ID,
			RoomID:     a.Room.ID,
			TimeslotID: a.Timeslot.ID,
		})
	}
	epoch := b.epoch
	b.setStatusLocked(models.SaveSaving, 0)
	b.mu.Unlock()

	err := b.remote.BulkSave(ctx, writes)

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.setStatusLocked(models.SaveError, b.cfg.ErrorStatusTTL)
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "bulk save failed")
	}
	b.setStatusLocked(models.SaveSaved, b.cfg.SavedStatusTTL)
	if epoch == b.epoch {
		b.enqueueRefreshLocked(epoch)
	}
	return nil
}

// Refresh re-fetches the version-scoped collections synchronously.
func (b *Board) Refresh(ctx context.Context) error {
	b.mu.Lock()
	if !b.loaded {
		b.mu.Unlock()
		return appErrors.ErrNotLoaded
	}
	versionID := b.store.ActiveVersion()
	epoch := b.epoch
	b.mu.Unlock()

	return b.loadVersionScoped(ctx, versionID, epoch)
}

// SwitchVersion makes another schedule version current. Version-scoped
// collections are torn down synchronously before the replacement fetch, so
// no reader can observe version A's assignments labeled as version B's.
func (b *Board) SwitchVersion(ctx context.Context, versionID int) error {
	b.mu.Lock()
	if !b.loaded {
		b.mu.Unlock()
		return appErrors.ErrNotLoaded
	}
	found := false
	for _, v := range b.store.Versions() {
		if v.ID == versionID {
			found = true
			break
		}
	}
	if !found {
		b.mu.Unlock()
		return appErrors.Clone(appErrors.ErrNotFound, "schedule version not found")
	}
	if versionID == b.store.ActiveVersion() {
		b.mu.Unlock()
		return nil
	}

	b.epoch++
	epoch := b.epoch
	b.store.SetActiveVersion(versionID)
	b.store.ClearVersionScoped()
	b.drag.Cancel()
	b.mu.Unlock()

	b.logger.Info("switched schedule version", zap.Int("version_id", versionID))
	return b.loadVersionScoped(ctx, versionID, epoch)
}

// RefreshVersions re-fetches the version list. When the active version has
// disappeared from it (deleted elsewhere), the board falls back to the
// first available version.
func (b *Board) RefreshVersions(ctx context.Context) error {
	versions, err := b.remote.Versions(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "refresh version list")
	}

	b.mu.Lock()
	b.store.ReplaceVersions(versions)
	active := b.store.ActiveVersion()
	fallback := 0
	needSwitch := false
	if len(versions) > 0 {
		present := false
		for _, v := range versions {
			if v.ID == active {
				present = true
				break
			}
		}
		if !present {
			fallback = versions[0].ID
			needSwitch = true
		}
	}
	b.mu.Unlock()

	if needSwitch {
		return b.SwitchVersion(ctx, fallback)
	}
	return nil
}

// CreateVersion creates an empty named version and refreshes the list.
func (b *Board) CreateVersion(ctx context.Context, name string) (*models.ScheduleVersion, error) {
	v, err := b.remote.CreateVersion(ctx, name)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "create version")
	}
	if err := b.RefreshVersions(ctx); err != nil {
		return nil, err
	}
	return v, nil
}

// DuplicateVersion copies an existing version and refreshes the list.
func (b *Board) DuplicateVersion(ctx context.Context, id int, name string) (*models.ScheduleVersion, error) {
	v, err := b.remote.DuplicateVersion(ctx, id, name)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "duplicate version")
	}
	if err := b.RefreshVersions(ctx); err != nil {
		return nil, err
	}
	return v, nil
}

// DeleteVersion removes a version. Deleting the last remaining version is
// rejected locally, mirroring the upstream rule. Deleting the active
// version falls back to the first remaining one via RefreshVersions.
func (b *Board) DeleteVersion(ctx context.Context, id int) error {
	b.mu.Lock()
	remaining := len(b.store.Versions())
	b.mu.Unlock()
	if remaining <= 1 {
		return appErrors.ErrLastVersion
	}

	if err := b.remote.DeleteVersion(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "delete version")
	}
	return b.RefreshVersions(ctx)
}

// Students returns the roster, optionally filtered by a substring of the
// student id or email.
func (b *Board) Students(search string) []models.StudentInfo {
	b.mu.Lock()
	students := b.store.Students()
	b.mu.Unlock()

	if search == "" {
		return students
	}
	needle := strings.ToLower(search)
	var out []models.StudentInfo
	for _, s := range students {
		if strings.Contains(strconv.Itoa(s.ID), needle) ||
			strings.Contains(strings.ToLower(s.Email), needle) {
			out = append(out, s)
		}
	}
	return out
}

// StudentSchedule fetches one student's personal assignments for the active
// version, alongside that student's conflicts from the store.
func (b *Board) StudentSchedule(ctx context.Context, studentID int) ([]models.Assignment, []models.Conflict, error) {
	b.mu.Lock()
	if !b.loaded {
		b.mu.Unlock()
		return nil, nil, appErrors.ErrNotLoaded
	}
	versionID := b.store.ActiveVersion()
	conflicts := view.ConflictsForStudent(b.store.Conflicts(), studentID)
	b.mu.Unlock()

	schedules, err := b.remote.StudentSchedule(ctx, studentID, versionID)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "fetch student schedule")
	}
	return schedules, conflicts, nil
}

func (b *Board) enqueueRefreshLocked(epoch uint64) {
	b.refresh.enqueue(refreshJob{ID: uuid.NewString(), Epoch: epoch})
}

func (b *Board) runRefresh(ctx context.Context, job refreshJob) error {
	b.mu.Lock()
	if job.Epoch != b.epoch {
		b.mu.Unlock()
		b.metrics.RecordRefresh("stale")
		return nil
	}
	versionID := b.store.ActiveVersion()
	b.mu.Unlock()

	if err := b.loadVersionScoped(ctx, versionID, job.Epoch); err != nil {
		b.metrics.RecordRefresh("error")
		return err
	}
	b.metrics.RecordRefresh("ok")
	return nil
}

// setStatusLocked transitions the save-status indicator, optionally
// scheduling its decay back to idle. The generation counter keeps a decay
// timer from clobbering a status set by a later operation.
func (b *Board) setStatusLocked(status models.SaveStatus, ttl time.Duration) {
	b.statusGen++
	gen := b.statusGen
	b.status = status
	if ttl <= 0 {
		return
	}
	time.AfterFunc(ttl, func() {
		b.mu.Lock()
		if b.statusGen == gen {
			b.status = models.SaveIdle
		}
		b.mu.Unlock()
	})
}

// SaveStatus reports the current transient indicator.
func (b *Board) SaveStatus() models.SaveStatus {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status
}
