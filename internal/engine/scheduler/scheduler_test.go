package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/regen/internal/core/domain"
	"go.trai.ch/regen/internal/core/ports"
	"go.trai.ch/regen/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type schedulerMocks struct {
	runner   *mocks.MockBuildRunner
	recorder *mocks.MockRecorder
	logger   *mocks.MockLogger
}

func newTestScheduler(t *testing.T, opts Options) (*Scheduler, *schedulerMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := &schedulerMocks{
		runner:   mocks.NewMockBuildRunner(ctrl),
		recorder: mocks.NewMockRecorder(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
	}
	m.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	m.recorder.EXPECT().SetPendingRoutes(gomock.Any()).AnyTimes()

	if opts.Debounce == 0 {
		opts.Debounce = 100 * time.Millisecond
	}
	return New(m.runner, nil, nil, opts, m.logger, m.recorder), m
}

func TestSchedulerDebounce(t *testing.T) {
	t.Run("burst coalesces into one build with the union of routes", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			s, m := newTestScheduler(t, Options{})
			m.runner.EXPECT().Run(gomock.Any(), []string{"/", "/about"}).Return(nil).Times(1)
			m.recorder.EXPECT().BuildFinished(ports.OutcomeSuccess, gomock.Any()).Times(1)

			ctx := context.Background()
			s.Enqueue(ctx, []string{"/"})
			time.Sleep(50 * time.Millisecond)
			s.Enqueue(ctx, []string{"/about"})
			time.Sleep(50 * time.Millisecond)
			s.Enqueue(ctx, []string{"/"})

			time.Sleep(200 * time.Millisecond)
			synctest.Wait()
			assert.Equal(t, StateIdle, s.State())
		})
	})

	t.Run("same route twice queues once", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			s, m := newTestScheduler(t, Options{})
			m.runner.EXPECT().Run(gomock.Any(), []string{"/about"}).Return(nil).Times(1)
			m.recorder.EXPECT().BuildFinished(ports.OutcomeSuccess, gomock.Any()).Times(1)

			ctx := context.Background()
			s.Enqueue(ctx, []string{"/about"})
			s.Enqueue(ctx, []string{"/about"})

			time.Sleep(200 * time.Millisecond)
			synctest.Wait()
			assert.Equal(t, StateIdle, s.State())
		})
	})

	t.Run("every event within the window resets the timer", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			s, m := newTestScheduler(t, Options{})
			m.runner.EXPECT().Run(gomock.Any(), []string{"/"}).Return(nil).Times(1)
			m.recorder.EXPECT().BuildFinished(ports.OutcomeSuccess, gomock.Any()).Times(1)

			ctx := context.Background()
			for i := 0; i < 4; i++ {
				s.Enqueue(ctx, []string{"/"})
				time.Sleep(80 * time.Millisecond)
				// still inside the 100ms window, nothing built yet
				assert.Equal(t, StateDebouncing, s.State())
			}

			time.Sleep(200 * time.Millisecond)
			synctest.Wait()
			assert.Equal(t, StateIdle, s.State())
		})
	})
}

func TestSchedulerSerialization(t *testing.T) {
	t.Run("routes arriving mid-build queue and drain afterwards", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			s, m := newTestScheduler(t, Options{})
			ctx := context.Background()

			first := m.runner.EXPECT().
				Run(gomock.Any(), []string{"/"}).
				DoAndReturn(func(context.Context, []string) error {
					time.Sleep(time.Second)
					return nil
				}).Times(1)
			m.runner.EXPECT().Run(gomock.Any(), []string{"/about"}).Return(nil).Times(1).After(first)
			m.recorder.EXPECT().BuildFinished(ports.OutcomeSuccess, gomock.Any()).Times(2)

			s.Enqueue(ctx, []string{"/"})
			time.Sleep(150 * time.Millisecond)
			assert.Equal(t, StateBuilding, s.State())

			// arrives while the first build is in flight
			s.Enqueue(ctx, []string{"/about"})
			assert.Equal(t, StateBuilding, s.State())

			time.Sleep(2 * time.Second)
			synctest.Wait()
			assert.Equal(t, StateIdle, s.State())
		})
	})

	t.Run("failed build drains the rest of the queue", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			s, m := newTestScheduler(t, Options{})
			ctx := context.Background()
			m.logger.EXPECT().Error(gomock.Any()).Times(1)

			first := m.runner.EXPECT().
				Run(gomock.Any(), []string{"/"}).
				DoAndReturn(func(context.Context, []string) error {
					time.Sleep(time.Second)
					return domain.ErrBuildFailed
				}).Times(1)
			m.runner.EXPECT().Run(gomock.Any(), []string{"/about"}).Return(nil).Times(1).After(first)
			m.recorder.EXPECT().BuildFinished(ports.OutcomeFailure, gomock.Any()).Times(1)
			m.recorder.EXPECT().BuildFinished(ports.OutcomeSuccess, gomock.Any()).Times(1)

			s.Enqueue(ctx, []string{"/"})
			time.Sleep(150 * time.Millisecond)
			s.Enqueue(ctx, []string{"/about"})

			time.Sleep(2 * time.Second)
			synctest.Wait()
			assert.Equal(t, StateIdle, s.State())
		})
	})

	t.Run("timeout is recorded as its own outcome", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			s, m := newTestScheduler(t, Options{})
			ctx := context.Background()
			m.logger.EXPECT().Error(gomock.Any()).Times(1)

			m.runner.EXPECT().Run(gomock.Any(), []string{"/"}).Return(domain.ErrBuildTimeout).Times(1)
			m.recorder.EXPECT().BuildFinished(ports.OutcomeTimeout, gomock.Any()).Times(1)

			s.Enqueue(ctx, []string{"/"})
			time.Sleep(200 * time.Millisecond)
			synctest.Wait()
			assert.Equal(t, StateIdle, s.State())
		})
	})
}

func TestSchedulerManifestPrecondition(t *testing.T) {
	t.Run("missing manifest triggers a one-off full build", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			manifest := filepath.Join(t.TempDir(), "manifest.json")
			s, m := newTestScheduler(t, Options{ManifestPath: manifest})
			ctx := context.Background()

			full := m.runner.EXPECT().
				RunFull(gomock.Any()).
				DoAndReturn(func(context.Context) error {
					return os.WriteFile(manifest, []byte("{}"), 0o644)
				}).Times(1)
			m.runner.EXPECT().Run(gomock.Any(), []string{"/"}).Return(nil).Times(1).After(full)
			m.recorder.EXPECT().BuildFinished(ports.OutcomeSuccess, gomock.Any()).Times(1)

			s.Enqueue(ctx, []string{"/"})
			time.Sleep(200 * time.Millisecond)
			synctest.Wait()
		})
	})

	t.Run("existing manifest skips the precondition", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			manifest := filepath.Join(t.TempDir(), "manifest.json")
			require.NoError(t, os.WriteFile(manifest, []byte("{}"), 0o644))

			s, m := newTestScheduler(t, Options{ManifestPath: manifest})
			m.runner.EXPECT().Run(gomock.Any(), []string{"/"}).Return(nil).Times(1)
			m.recorder.EXPECT().BuildFinished(ports.OutcomeSuccess, gomock.Any()).Times(1)

			s.Enqueue(context.Background(), []string{"/"})
			time.Sleep(200 * time.Millisecond)
			synctest.Wait()
		})
	})

	t.Run("failed precondition drops the batch", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			manifest := filepath.Join(t.TempDir(), "manifest.json")
			s, m := newTestScheduler(t, Options{ManifestPath: manifest})
			m.logger.EXPECT().Error(gomock.Any()).Times(1)

			m.runner.EXPECT().RunFull(gomock.Any()).Return(domain.ErrBuildFailed).Times(1)
			m.recorder.EXPECT().BuildFinished(ports.OutcomeFailure, gomock.Any()).Times(1)

			s.Enqueue(context.Background(), []string{"/"})
			time.Sleep(200 * time.Millisecond)
			synctest.Wait()
			assert.Equal(t, StateIdle, s.State())
		})
	})
}

func TestSchedulerFlush(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s, m := newTestScheduler(t, Options{Debounce: time.Hour})
		m.runner.EXPECT().Run(gomock.Any(), []string{"/"}).Return(nil).Times(1)
		m.recorder.EXPECT().BuildFinished(ports.OutcomeSuccess, gomock.Any()).Times(1)

		ctx := context.Background()
		s.Enqueue(ctx, []string{"/"})
		s.Flush(ctx)

		assert.Equal(t, StateIdle, s.State())
	})
}

func TestSchedulerFlushAfterShutdown(t *testing.T) {
	t.Run("routes enqueued just before cancellation still build", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			s, m := newTestScheduler(t, Options{})
			m.runner.EXPECT().Run(gomock.Any(), []string{"/about"}).Return(nil).Times(1)
			m.recorder.EXPECT().BuildFinished(ports.OutcomeSuccess, gomock.Any()).Times(1)

			ctx, cancel := context.WithCancel(context.Background())
			s.Enqueue(ctx, []string{"/about"})
			cancel()

			s.Flush(context.WithoutCancel(ctx))
			assert.Equal(t, StateIdle, s.State())
		})
	})

	t.Run("a batch left behind by a cancelled drain flushes too", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			s, m := newTestScheduler(t, Options{})
			m.runner.EXPECT().Run(gomock.Any(), []string{"/about"}).Return(nil).Times(1)
			m.recorder.EXPECT().BuildFinished(ports.OutcomeSuccess, gomock.Any()).Times(1)

			ctx, cancel := context.WithCancel(context.Background())
			s.Enqueue(ctx, []string{"/about"})
			cancel()
			// the armed window fires against the dead context and bails
			time.Sleep(200 * time.Millisecond)
			synctest.Wait()

			s.Flush(context.WithoutCancel(ctx))
			assert.Equal(t, StateIdle, s.State())
		})
	})
}

func TestSchedulerStaleTimerFire(t *testing.T) {
	t.Run("a window stopped after firing cannot start the build early", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			s, m := newTestScheduler(t, Options{})
			m.runner.EXPECT().Run(gomock.Any(), []string{"/"}).Return(nil).Times(1)
			m.recorder.EXPECT().BuildFinished(ports.OutcomeSuccess, gomock.Any()).Times(1)

			ctx := context.Background()
			s.Enqueue(ctx, []string{"/"})
			time.Sleep(50 * time.Millisecond)
			s.Enqueue(ctx, []string{"/"})

			// a callback carrying the first window's generation is stale
			s.fire(ctx, 1)
			assert.Equal(t, StateDebouncing, s.State())

			time.Sleep(200 * time.Millisecond)
			synctest.Wait()
			assert.Equal(t, StateIdle, s.State())
		})
	})
}
