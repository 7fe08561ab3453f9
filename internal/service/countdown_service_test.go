package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andy/countdown/internal/domain"
)

// mock implementations
type mockEventRepo struct {
	events []*domain.Event
	err    error
}

func (m *mockEventRepo) Create(ctx context.Context, event *domain.Event) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

func (m *mockEventRepo) List(ctx context.Context, sessionID *string, limit int) ([]*domain.Event, error) {
	return m.events, nil
}

func (m *mockEventRepo) DeleteAll(ctx context.Context) (int64, error) {
	n := int64(len(m.events))
	m.events = nil
	return n, nil
}

func (m *mockEventRepo) kinds() []domain.EventKind {
	var out []domain.EventKind
	for _, e := range m.events {
		out = append(out, e.Kind)
	}
	return out
}

func newTestService(opts domain.ClockOptions) (CountdownService, *mockEventRepo) {
	repo := &mockEventRepo{}
	svc := NewCountdownService(domain.NewClock(opts), domain.NewEditBuffer(opts.Default), repo, nil)
	return svc, repo
}

func TestStartTickStop(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(domain.ClockOptions{Default: 500})

	require.Equal(t, int64(300), svc.Display().Remaining)
	require.False(t, svc.Armed())

	svc.Start(ctx)
	for i := 0; i < 5; i++ {
		assert.True(t, svc.Tick(ctx))
		assert.True(t, svc.Display().Running)
	}
	assert.Equal(t, int64(295), svc.Display().Remaining)

	svc.Stop(ctx)
	assert.False(t, svc.Armed())
	assert.False(t, svc.Tick(ctx), "tick after stop must have no effect")
	assert.Equal(t, int64(295), svc.Display().Remaining)

	assert.Equal(t, []domain.EventKind{domain.EventStarted, domain.EventStopped}, repo.kinds())
}

func TestStartStopIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(domain.ClockOptions{Default: 500})

	svc.Start(ctx)
	svc.Start(ctx)
	svc.Stop(ctx)
	svc.Stop(ctx)

	assert.Equal(t, []domain.EventKind{domain.EventStarted, domain.EventStopped}, repo.kinds())
}

func TestToggle(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(domain.ClockOptions{Default: 500})

	assert.True(t, svc.Toggle(ctx))
	assert.Equal(t, domain.ClockStateRunning, svc.State())
	assert.False(t, svc.Toggle(ctx))
	assert.Equal(t, domain.ClockStateStopped, svc.State())
}

func TestToggleConcurrent(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(domain.ClockOptions{Default: 500})

	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.Toggle(ctx)
		}()
	}
	wg.Wait()

	assert.Equal(t, domain.ClockStateStopped, svc.State())

	var started, stopped int
	for _, k := range repo.kinds() {
		switch k {
		case domain.EventStarted:
			started++
		case domain.EventStopped:
			stopped++
		}
	}
	assert.Equal(t, n/2, started)
	assert.Equal(t, n/2, stopped)
}

func TestEditFlow(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(domain.ClockOptions{Default: 500})

	svc.Start(ctx)
	svc.BeginEdit(ctx)

	d := svc.Display()
	assert.Equal(t, domain.FromBuffer, d.Source)
	assert.False(t, d.Running, "editing stops the clock")
	assert.Equal(t, domain.EditText("000500"), d.Buffer)
	assert.Equal(t, "00h05m00s", d.Text())

	require.NoError(t, svc.TypeDigit(ctx, '1'))
	assert.Equal(t, domain.EditText("005001"), svc.Display().Buffer)

	assert.True(t, svc.CommitEdit(ctx))
	d = svc.Display()
	assert.Equal(t, domain.FromClock, d.Source)
	assert.Equal(t, int64(3001), d.Remaining)
	assert.False(t, d.Running)
	assert.Equal(t, 0.0, d.Progress)

	assert.False(t, svc.CommitEdit(ctx), "second commit is ignored")

	assert.Equal(t, []domain.EventKind{
		domain.EventStarted,
		domain.EventStopped,
		domain.EventEditBegun,
		domain.EventEditCommitted,
	}, repo.kinds())
	last := repo.events[len(repo.events)-1]
	require.NotNil(t, last.Packed)
	assert.Equal(t, domain.PackedTime(5001), *last.Packed)
}

func TestZeroRemainingIsNotEditing(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(domain.ClockOptions{Default: 0})

	d := svc.Display()
	assert.Equal(t, domain.FromClock, d.Source)
	assert.Equal(t, int64(0), d.Remaining)

	svc.BeginEdit(ctx)
	require.NoError(t, svc.SetDigits(ctx, ""))
	assert.Equal(t, domain.FromBuffer, svc.Display().Source)
	assert.Equal(t, domain.EditText("000000"), svc.Display().Buffer)
}

func TestTickIgnoredWhileEditing(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(domain.ClockOptions{Default: 500})

	svc.Start(ctx)
	svc.BeginEdit(ctx)
	assert.False(t, svc.Armed())
	assert.False(t, svc.Tick(ctx))
	assert.Equal(t, domain.EditText("000500"), svc.Display().Buffer)
}

func TestEditInputValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(domain.ClockOptions{Default: 500})

	assert.ErrorIs(t, svc.SetDigits(ctx, "12"), ErrNotEditing)
	assert.ErrorIs(t, svc.TypeDigit(ctx, '1'), ErrNotEditing)
	assert.ErrorIs(t, svc.Backspace(ctx), ErrNotEditing)

	svc.BeginEdit(ctx)
	assert.ErrorIs(t, svc.SetDigits(ctx, "12a"), domain.ErrInvalidDigits)
	assert.ErrorIs(t, svc.TypeDigit(ctx, 'x'), domain.ErrInvalidDigits)

	require.NoError(t, svc.SetDigits(ctx, "12345678"))
	assert.Equal(t, domain.EditText("345678"), svc.Display().Buffer)
	require.NoError(t, svc.Backspace(ctx))
	assert.Equal(t, domain.EditText("034567"), svc.Display().Buffer)
}

func TestStartWhileEditingCommitsFirst(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(domain.ClockOptions{Default: 500})

	svc.BeginEdit(ctx)
	require.NoError(t, svc.SetDigits(ctx, "90"))
	svc.Start(ctx)

	d := svc.Display()
	assert.Equal(t, domain.FromClock, d.Source)
	assert.True(t, d.Running)
	assert.Equal(t, int64(90), d.Remaining, "seconds field over 59 is taken literally")
}

func TestResetFromAnyState(t *testing.T) {
	ctx := context.Background()

	setups := map[string]func(svc CountdownService){
		"running": func(svc CountdownService) {
			svc.Start(ctx)
			svc.Tick(ctx)
		},
		"editing": func(svc CountdownService) {
			svc.BeginEdit(ctx)
			_ = svc.SetDigits(ctx, "123456")
		},
		"committed": func(svc CountdownService) {
			svc.BeginEdit(ctx)
			_ = svc.SetDigits(ctx, "1")
			svc.CommitEdit(ctx)
		},
	}

	for name, setup := range setups {
		t.Run(name, func(t *testing.T) {
			svc, _ := newTestService(domain.ClockOptions{Default: 500})
			before := svc.SessionID()
			setup(svc)
			svc.Reset(ctx)

			d := svc.Display()
			assert.Equal(t, int64(300), d.Remaining)
			assert.Equal(t, domain.EditText("000500"), d.Buffer)
			assert.False(t, d.Running)
			assert.Equal(t, domain.FromClock, d.Source)
			assert.NotEqual(t, before, svc.SessionID())
		})
	}
}

func TestExpiredRecordedOnce(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(domain.ClockOptions{Default: 2})

	svc.Start(ctx)
	for i := 0; i < 4; i++ {
		svc.Tick(ctx)
	}

	d := svc.Display()
	assert.Equal(t, int64(-2), d.Remaining)
	assert.True(t, d.Overdue())
	assert.Equal(t, 1.0, d.Progress)

	var expired int
	for _, k := range repo.kinds() {
		if k == domain.EventExpired {
			expired++
		}
	}
	assert.Equal(t, 1, expired)
}

func TestStopAtZero(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(domain.ClockOptions{Default: 2, StopAtZero: true})

	svc.Start(ctx)
	svc.Tick(ctx)
	svc.Tick(ctx)
	svc.Tick(ctx)

	d := svc.Display()
	assert.Equal(t, int64(0), d.Remaining)
	assert.False(t, d.Running)
	assert.False(t, svc.Armed())
	assert.Contains(t, repo.kinds(), domain.EventExpired)
}

func TestStopAtZeroFromZeroRecordsExpiry(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(domain.ClockOptions{Default: 500, StopAtZero: true})

	svc.BeginEdit(ctx)
	require.NoError(t, svc.SetDigits(ctx, "0"))
	svc.Start(ctx)
	require.True(t, svc.Armed())

	assert.False(t, svc.Tick(ctx), "nothing left to count down")
	assert.False(t, svc.Armed())
	assert.Equal(t, int64(0), svc.Display().Remaining)

	kinds := repo.kinds()
	require.NotEmpty(t, kinds)
	assert.Equal(t, domain.EventExpired, kinds[len(kinds)-1])
	assert.Equal(t, svc.SessionID(), repo.events[len(repo.events)-1].SessionID)
}

func TestJournalFailureDoesNotBlock(t *testing.T) {
	ctx := context.Background()
	repo := &mockEventRepo{err: errors.New("disk full")}
	svc := NewCountdownService(domain.NewClock(domain.ClockOptions{Default: 500}), domain.NewEditBuffer(500), repo, nil)

	svc.Start(ctx)
	assert.True(t, svc.Tick(ctx))
	assert.Equal(t, int64(299), svc.Display().Remaining)
}
