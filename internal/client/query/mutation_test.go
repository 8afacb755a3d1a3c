package query

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/forensicvideo/console/internal/client/api"
	"github.com/forensicvideo/console/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutation_SuccessInvalidatesDeclaredPrefixes(t *testing.T) {
	var fetches atomic.Int32
	cache := NewCache()
	q := New(cache, "videos/recent/5", func(ctx context.Context) (int, error) {
		return int(fetches.Add(1)), nil
	}, Once[int]())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := q.Run(ctx)
	drain(t, ch)

	m := NewMutation(cache, func(ctx context.Context, name string) (string, error) {
		return name, nil
	}, "videos")

	got, err := m.Do(context.Background(), "clip.mp4")
	require.NoError(t, err)
	assert.Equal(t, "clip.mp4", got)

	// The mounted listing refetches without user action.
	assert.Equal(t, 2, drain(t, ch).Data)
}

func TestMutation_FailureLeavesCacheUntouched(t *testing.T) {
	var fetches atomic.Int32
	cache := NewCache()
	q := New(cache, "videos/recent/5", func(ctx context.Context) (int, error) {
		return int(fetches.Add(1)), nil
	}, Once[int]())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := q.Run(ctx)
	drain(t, ch)

	boom := errors.New("rejected")
	m := NewMutation(cache, func(ctx context.Context, name string) (string, error) {
		return "", boom
	}, "videos")

	_, err := m.Do(context.Background(), "clip.mp4")
	assert.ErrorIs(t, err, boom)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), fetches.Load())
}

// uploadGateway overrides only the upload call; everything else panics on use.
type uploadGateway struct {
	api.Gateway
	upload func(ctx context.Context, filename string, data io.Reader, size int64, onProgress func(pct int)) (*models.VideoSummary, error)
}

func (g *uploadGateway) UploadVideo(ctx context.Context, filename string, data io.Reader, size int64, onProgress func(pct int)) (*models.VideoSummary, error) {
	return g.upload(ctx, filename, data, size, onProgress)
}

func TestUpload_SuccessInvalidatesVideosAndResetsProgress(t *testing.T) {
	var fetches atomic.Int32
	cache := NewCache()
	q := New(cache, "videos/page/1/20", func(ctx context.Context) (int, error) {
		return int(fetches.Add(1)), nil
	}, Once[int]())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := q.Run(ctx)
	drain(t, ch)

	var seen []int
	gw := &uploadGateway{upload: func(ctx context.Context, filename string, data io.Reader, size int64, onProgress func(pct int)) (*models.VideoSummary, error) {
		onProgress(40)
		onProgress(100)
		return &models.VideoSummary{Filename: filename}, nil
	}}
	u := NewUpload(cache, gw, func(pct int) { seen = append(seen, pct) })

	video, err := u.Do(context.Background(), UploadRequest{Filename: "clip.mp4"})
	require.NoError(t, err)
	assert.Equal(t, "clip.mp4", video.Filename)

	assert.Equal(t, []int{40, 100, 0}, seen)
	assert.Equal(t, 0, u.Progress())
	assert.Equal(t, 2, drain(t, ch).Data)
}

func TestUpload_FailureResetsProgressWithoutInvalidating(t *testing.T) {
	var fetches atomic.Int32
	cache := NewCache()
	q := New(cache, "videos/page/1/20", func(ctx context.Context) (int, error) {
		return int(fetches.Add(1)), nil
	}, Once[int]())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := q.Run(ctx)
	drain(t, ch)

	boom := errors.New("413 payload too large")
	gw := &uploadGateway{upload: func(ctx context.Context, filename string, data io.Reader, size int64, onProgress func(pct int)) (*models.VideoSummary, error) {
		onProgress(80)
		return nil, boom
	}}
	u := NewUpload(cache, gw, nil)

	_, err := u.Do(context.Background(), UploadRequest{Filename: "clip.mp4"})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, u.Progress())

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), fetches.Load())
}
