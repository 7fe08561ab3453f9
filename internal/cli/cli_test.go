package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andy/countdown/internal/config"
	"github.com/andy/countdown/internal/domain"
	"github.com/andy/countdown/internal/service"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestConvertCommands(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{"to seconds", []string{"convert", "to-seconds", "000500"}, "300", false},
		{"to seconds literal field", []string{"convert", "to-seconds", "90"}, "90", false},
		{"to seconds rejects letters", []string{"convert", "to-seconds", "5m"}, "", true},
		{"from seconds packed", []string{"convert", "from-seconds", "3600", "--formatted=false", "--padded=true"}, "10000", false},
		{"from seconds formatted", []string{"convert", "from-seconds", "3661", "--formatted=true", "--padded=false"}, "1h1m1s", false},
		{"from seconds formatted short", []string{"convert", "from-seconds", "59", "--formatted=true", "--padded=false"}, "59s", false},
		{"pad", []string{"convert", "pad", "500", "--labels=false"}, "000500", false},
		{"pad overflow", []string{"convert", "pad", "12345678", "--labels=false"}, "345678", false},
		{"pad labels", []string{"convert", "pad", "5001", "--labels=true"}, "00h50m01s", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, strings.TrimSpace(out))
		})
	}
}

func newRunService(def domain.PackedTime) service.CountdownService {
	return service.NewCountdownService(
		domain.NewClock(domain.ClockOptions{Default: def}),
		domain.NewEditBuffer(def),
		nil,
		nil,
	)
}

func TestRunCountdownEndsAtZero(t *testing.T) {
	ctx := context.Background()
	svc := newRunService(3)
	svc.Start(ctx)

	ticks := make(chan time.Time, 3)
	for i := 0; i < 3; i++ {
		ticks <- time.Time{}
	}

	var out bytes.Buffer
	require.NoError(t, runCountdown(ctx, svc, &out, ticks, false))

	assert.Contains(t, out.String(), "time is up")
	assert.Equal(t, int64(0), svc.Display().Remaining)
	assert.False(t, svc.Armed())
}

func TestRunCountdownAtZeroEndsWithoutTicking(t *testing.T) {
	ctx := context.Background()
	svc := newRunService(0)
	svc.Start(ctx)

	ticks := make(chan time.Time, 1)
	ticks <- time.Time{}

	var out bytes.Buffer
	require.NoError(t, runCountdown(ctx, svc, &out, ticks, false))

	assert.Contains(t, out.String(), "time is up")
	assert.NotContains(t, out.String(), "-1s")
	assert.Equal(t, int64(0), svc.Display().Remaining)
	assert.False(t, svc.Armed())
	assert.Len(t, ticks, 1, "no tick consumed")
}

func TestRunCountdownOvertimeUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	svc := newRunService(1)
	svc.Start(ctx)

	ticks := make(chan time.Time)
	errc := make(chan error, 1)
	var out bytes.Buffer
	go func() { errc <- runCountdown(ctx, svc, &out, ticks, true) }()

	ticks <- time.Time{}
	ticks <- time.Time{}
	ticks <- time.Time{}
	cancel()

	require.NoError(t, <-errc)
	assert.Equal(t, int64(-2), svc.Display().Remaining)
	assert.False(t, svc.Armed())
	assert.Contains(t, out.String(), "stopped with -2s left")
}

func TestLoadDigits(t *testing.T) {
	ctx := context.Background()
	svc := newRunService(500)

	require.NoError(t, loadDigits(ctx, svc, "13000"))
	assert.Equal(t, int64(5400), svc.Display().Remaining)

	err := loadDigits(ctx, svc, "1h")
	assert.ErrorIs(t, err, domain.ErrInvalidDigits)
	assert.Equal(t, domain.FromClock, svc.Display().Source)
	assert.Equal(t, int64(300), svc.Display().Remaining)
}

func TestConfigFormResultApply(t *testing.T) {
	cfg := config.DefaultConfig()
	r := newConfigFormResult(cfg)
	assert.Equal(t, "000500", r.Default)
	assert.Equal(t, "1s", r.TickInterval)
	assert.True(t, r.Autostart)

	r.Default = "001000"
	r.TickInterval = "500ms"
	r.StopAtZero = true
	r.Autostart = false
	r.LogLevel = "debug"
	require.NoError(t, r.apply(cfg))
	assert.Equal(t, domain.PackedTime(1000), cfg.Timer.Default)
	assert.Equal(t, 500*time.Millisecond, cfg.Timer.TickInterval)
	assert.True(t, cfg.Timer.StopAtZero)
	assert.False(t, cfg.Timer.Autostart)
	assert.Equal(t, "debug", cfg.Log.Level)

	r.Default = "abc"
	assert.ErrorIs(t, r.apply(cfg), domain.ErrInvalidDigits)
}
