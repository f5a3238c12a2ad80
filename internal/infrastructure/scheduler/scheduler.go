package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/garments-erp/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// JobStatus represents the status of a job run
type JobStatus string

const (
	JobStatusRunning JobStatus = "RUNNING"
	JobStatusSuccess JobStatus = "SUCCESS"
	JobStatusFailed  JobStatus = "FAILED"
	JobStatusSkipped JobStatus = "SKIPPED"
)

// JobFunc is the work of a scheduled job
type JobFunc func(ctx context.Context) error

// Run records one execution of a job
type Run struct {
	ID          uuid.UUID
	JobName     string
	Status      JobStatus
	Error       string
	StartedAt   time.Time
	CompletedAt *time.Time
}

// Duration returns how long the run took, or zero while it is still running
func (r Run) Duration() time.Duration {
	if r.CompletedAt == nil {
		return 0
	}
	return r.CompletedAt.Sub(r.StartedAt)
}

type job struct {
	name    string
	spec    string
	fn      JobFunc
	entryID cron.EntryID
	running sync.Mutex
}

const historySize = 20

// Scheduler runs named jobs on cron schedules. Overlapping runs of the same job are skipped.
type Scheduler struct {
	cron    *cron.Cron
	cfg     config.SchedulerConfig
	logger  *zap.Logger
	baseCtx context.Context
	cancel  context.CancelFunc

	mu      sync.RWMutex
	jobs    map[string]*job
	history map[string][]Run
	running bool
	slots   chan struct{}
	wg      sync.WaitGroup
}

// New creates a scheduler; nothing runs until Start
func New(cfg config.SchedulerConfig, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 5 * time.Minute
	}
	if cfg.MaxConcurrentJobs <= 0 {
		cfg.MaxConcurrentJobs = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:    cron.New(cron.WithLogger(cronLogger{logger.Sugar()}), cron.WithChain(cron.Recover(cronLogger{logger.Sugar()}))),
		cfg:     cfg,
		logger:  logger.Named("scheduler"),
		baseCtx: ctx,
		cancel:  cancel,
		jobs:    make(map[string]*job),
		history: make(map[string][]Run),
		slots:   make(chan struct{}, cfg.MaxConcurrentJobs),
	}
}

// Register schedules fn under name with a standard five-field cron spec
func (s *Scheduler) Register(name, spec string, fn JobFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateJob, name)
	}
	j := &job{name: name, spec: spec, fn: fn}
	id, err := s.cron.AddFunc(spec, func() { s.execute(j) })
	if err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidSchedule, spec, err)
	}
	j.entryID = id
	s.jobs[name] = j
	s.logger.Info("job registered", zap.String("job", name), zap.String("schedule", spec))
	return nil
}

// Start begins firing jobs; it is a no-op when the scheduler is disabled
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cfg.Enabled || s.running {
		return
	}
	s.running = true
	s.cron.Start()
	s.logger.Info("scheduler started", zap.Int("jobs", len(s.jobs)))
}

// Stop halts the cron loop and waits for in-flight runs or ctx expiry
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	wasRunning := s.running
	s.running = false
	s.mu.Unlock()

	if wasRunning {
		<-s.cron.Stop().Done()
	}
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		s.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Trigger runs a job immediately and waits for it
func (s *Scheduler) Trigger(ctx context.Context, name string) (Run, error) {
	s.mu.RLock()
	j, ok := s.jobs[name]
	s.mu.RUnlock()
	if !ok {
		return Run{}, fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}
	return s.run(ctx, j), nil
}

// History returns the most recent runs of a job, newest last
func (s *Scheduler) History(name string) []Run {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Run(nil), s.history[name]...)
}

// NextRun returns when a job fires next
func (s *Scheduler) NextRun(name string) (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.jobs[name]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}
	return s.cron.Entry(j.entryID).Next, nil
}

func (s *Scheduler) execute(j *job) {
	s.run(s.baseCtx, j)
}

func (s *Scheduler) run(ctx context.Context, j *job) Run {
	r := Run{ID: uuid.New(), JobName: j.name, Status: JobStatusRunning, StartedAt: time.Now()}

	if !j.running.TryLock() {
		r.Status = JobStatusSkipped
		s.logger.Warn("previous run still in progress, skipping", zap.String("job", j.name))
		s.record(r)
		return r
	}
	defer j.running.Unlock()

	s.slots <- struct{}{}
	defer func() { <-s.slots }()
	s.wg.Add(1)
	defer s.wg.Done()

	runCtx, cancel := context.WithTimeout(ctx, s.cfg.JobTimeout)
	defer cancel()

	err := j.fn(runCtx)
	now := time.Now()
	r.CompletedAt = &now
	if err != nil {
		r.Status = JobStatusFailed
		r.Error = err.Error()
		s.logger.Error("job failed", zap.String("job", j.name), zap.String("run_id", r.ID.String()),
			zap.Duration("duration", r.Duration()), zap.Error(err))
	} else {
		r.Status = JobStatusSuccess
		s.logger.Info("job completed", zap.String("job", j.name), zap.String("run_id", r.ID.String()),
			zap.Duration("duration", r.Duration()))
	}
	s.record(r)
	return r
}

func (s *Scheduler) record(r Run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := append(s.history[r.JobName], r)
	if len(h) > historySize {
		h = h[len(h)-historySize:]
	}
	s.history[r.JobName] = h
}

// cronLogger routes robfig/cron logs to zap
type cronLogger struct {
	l *zap.SugaredLogger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debugw(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Errorw(msg, append(keysAndValues, "error", err)...)
}
