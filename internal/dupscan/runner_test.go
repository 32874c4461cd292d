package dupscan

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/PratikDhanave/sponsorship-service/internal/content"
	"github.com/PratikDhanave/sponsorship-service/internal/models"
)

// fakeFetcher returns a canned batch and records the page size it was asked for.
type fakeFetcher struct {
	Batch     content.Batch
	Err       error
	Calls     int
	LastLimit int
}

func (f *fakeFetcher) FetchPersons(_ context.Context, pageSize int) (content.Batch, error) {
	f.Calls++
	f.LastLimit = pageSize
	return f.Batch, f.Err
}

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func TestNewRunner_Validation(t *testing.T) {
	_, err := NewRunner(nil, 10, nil)
	require.Error(t, err)

	_, err = NewRunner(&fakeFetcher{}, 0, nil)
	require.Error(t, err)
}

func TestRun_FetchErrorIsTerminal(t *testing.T) {
	fetchErr := &content.FetchError{URL: "http://cms/api/children", Err: errors.New("connection refused")}
	f := &fakeFetcher{Err: fetchErr}
	log, logs := observedLogger()

	r, err := NewRunner(f, 25, log)
	require.NoError(t, err)

	_, err = r.Run(context.Background())
	var fe *content.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 1, f.Calls)
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestRun_NoCollection(t *testing.T) {
	f := &fakeFetcher{Batch: content.Batch{Present: false, Requested: 25, Total: -1}}
	log, logs := observedLogger()

	r, err := NewRunner(f, 25, log)
	require.NoError(t, err)

	report, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.Total)
	assert.Empty(t, report.Groups)
	assert.Equal(t, 1, logs.FilterMessage("no record collection in response").Len())
}

func TestRun_WarnsWhenBatchFillsPage(t *testing.T) {
	f := &fakeFetcher{Batch: content.Batch{
		Present:   true,
		Requested: 2,
		Total:     -1,
		Records: []models.PersonRecord{
			{ID: "1", FirstName: "a", LastName: "b"},
			{ID: "2", FirstName: "A", LastName: "B"},
		},
	}}
	log, logs := observedLogger()

	r, err := NewRunner(f, 2, log)
	require.NoError(t, err)

	report, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, f.LastLimit)
	assert.True(t, report.Truncated)
	assert.Len(t, report.Groups, 1)
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestRun_NoWarningForShortBatch(t *testing.T) {
	f := &fakeFetcher{Batch: content.Batch{
		Present:   true,
		Requested: 10,
		Total:     1,
		Records:   []models.PersonRecord{{ID: "1", FirstName: "a"}},
	}}
	log, logs := observedLogger()

	r, err := NewRunner(f, 10, log)
	require.NoError(t, err)

	report, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, report.Truncated)
	assert.Zero(t, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}
