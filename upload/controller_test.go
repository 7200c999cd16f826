package upload

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rgonek/contentdesk/apiclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	mu       sync.Mutex
	calls    []string
	failures map[string]error
	delays   map[string]time.Duration

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func (f *fakeUploader) Upload(ctx context.Context, name, contentType string, body io.Reader) (string, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		current := f.maxInFlight.Load()
		if n <= current || f.maxInFlight.CompareAndSwap(current, n) {
			break
		}
	}

	f.mu.Lock()
	f.calls = append(f.calls, name)
	delay := f.delays[name]
	failure := f.failures[name]
	f.mu.Unlock()

	if _, err := io.ReadAll(body); err != nil {
		return "", err
	}
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if failure != nil {
		return "", failure
	}
	return "https://media.example.com/uploads/" + name, nil
}

func (f *fakeUploader) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func images(names ...string) []File {
	files := make([]File, 0, len(names))
	for _, name := range names {
		files = append(files, BytesFile(name, []byte("data-"+name)))
	}
	return files
}

func TestAcceptFilesContinuesAfterFailure(t *testing.T) {
	uploader := &fakeUploader{failures: map[string]error{
		"b.png": &apiclient.APIError{StatusCode: 200, Message: "file too large"},
	}}
	controller := NewController(uploader)

	var gallery []string
	report, err := controller.AcceptFiles(context.Background(), images("a.png", "b.png", "c.png", "d.png"), GalleryPolicy(0), GallerySlot(&gallery))
	require.NoError(t, err)

	assert.Equal(t, []string{"a.png", "b.png", "c.png", "d.png"}, uploader.Calls())
	require.Len(t, report.Tasks, 4)
	for _, task := range report.Tasks {
		assert.True(t, task.Status.Terminal(), task.File.Name)
	}

	want := []string{
		"https://media.example.com/uploads/a.png",
		"https://media.example.com/uploads/c.png",
		"https://media.example.com/uploads/d.png",
	}
	assert.Equal(t, want, gallery)
	assert.Equal(t, want, report.URLs)

	require.Equal(t, 1, report.FailedCount())
	failure := report.Failures[0]
	assert.Equal(t, "b.png", failure.Name)
	assert.Equal(t, 1, failure.Index)
	assert.Equal(t, "file too large", failure.Message)
	assert.Equal(t, StatusFailed, report.Tasks[1].Status)
	assert.Empty(t, report.Tasks[1].URL)
}

func TestAcceptFilesGenericFailureMessage(t *testing.T) {
	uploader := &fakeUploader{failures: map[string]error{
		"a.png": errors.New("connection refused"),
		"b.png": apiclient.ErrMalformedResponse,
	}}

	var field string
	report, err := NewController(uploader).AcceptFiles(context.Background(), images("a.png", "b.png"), GalleryPolicy(0), GallerySlot(new([]string)))
	require.NoError(t, err)
	assert.Empty(t, field)
	require.Equal(t, 2, report.FailedCount())
	assert.Equal(t, DefaultFailureMessage, report.Failures[0].Message)
	assert.Equal(t, DefaultFailureMessage, report.Failures[1].Message)
	assert.ErrorIs(t, report.Failures[1].Err, apiclient.ErrMalformedResponse)

	custom := NewController(uploader, WithFailureMessage("upload failed"))
	report, err = custom.AcceptFiles(context.Background(), images("a.png"), SinglePolicy(), FieldSlot(&field))
	require.NoError(t, err)
	assert.Equal(t, "upload failed", report.Failures[0].Message)
	assert.Empty(t, field)
}

func TestAcceptFilesCapacity(t *testing.T) {
	uploader := &fakeUploader{}
	gallery := []string{"https://x/1.png", "https://x/2.png"}

	report, err := NewController(uploader).AcceptFiles(context.Background(), images("a.png", "b.png", "c.png"), GalleryPolicy(3), GallerySlot(&gallery))
	require.NoError(t, err)

	assert.Equal(t, []string{"a.png"}, uploader.Calls())
	assert.Len(t, report.Tasks, 1)
	assert.Len(t, gallery, 3)
	assert.True(t, report.CapacityExceeded())
	assert.Zero(t, report.FailedCount())
	require.Equal(t, 2, report.RejectedCount())
	for i, rejection := range report.Rejections {
		assert.Equal(t, RejectCapacity, rejection.Reason)
		assert.Equal(t, i+1, rejection.Index)
	}
}

func TestAcceptFilesFullGalleryMakesNoCalls(t *testing.T) {
	uploader := &fakeUploader{}
	gallery := []string{"1", "2", "3"}

	report, err := NewController(uploader).AcceptFiles(context.Background(), images("a.png"), GalleryPolicy(3), GallerySlot(&gallery))
	require.NoError(t, err)
	assert.Empty(t, uploader.Calls())
	assert.Empty(t, report.Tasks)
	assert.True(t, report.CapacityExceeded())
}

func TestAcceptFilesPreservesOrderUnderDelays(t *testing.T) {
	uploader := &fakeUploader{delays: map[string]time.Duration{
		"first.png":  30 * time.Millisecond,
		"second.png": time.Millisecond,
	}}

	var gallery []string
	report, err := NewController(uploader).AcceptFiles(context.Background(), images("first.png", "second.png"), GalleryPolicy(10), GallerySlot(&gallery))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://media.example.com/uploads/first.png",
		"https://media.example.com/uploads/second.png",
	}, gallery)
	assert.Equal(t, gallery, report.URLs)
	assert.Equal(t, int32(1), uploader.maxInFlight.Load())
}

func TestAcceptFilesOverwrite(t *testing.T) {
	uploader := &fakeUploader{}
	field := "https://x/old.png"

	var puts int
	slot := FieldSlot(&field)
	counting := SlotFunc(func(url string) error {
		puts++
		return slot.Put(url)
	})

	report, err := NewController(uploader).AcceptFiles(context.Background(), images("new.png", "other.png"), SinglePolicy(), counting)
	require.NoError(t, err)

	assert.Equal(t, 1, puts)
	assert.Equal(t, "https://media.example.com/uploads/new.png", field)
	require.Equal(t, 1, report.RejectedCount())
	assert.Equal(t, RejectTooMany, report.Rejections[0].Reason)
	assert.False(t, report.CapacityExceeded())
}

func TestAcceptFilesRejectsType(t *testing.T) {
	uploader := &fakeUploader{}
	files := []File{
		BytesFile("notes.txt", []byte("hello")),
		BytesFile("photo.jpg", []byte("jpg")),
	}

	var gallery []string
	report, err := NewController(uploader).AcceptFiles(context.Background(), files, GalleryPolicy(5), GallerySlot(&gallery))
	require.NoError(t, err)

	assert.Equal(t, []string{"photo.jpg"}, uploader.Calls())
	require.Equal(t, 1, report.RejectedCount())
	assert.Equal(t, RejectType, report.Rejections[0].Reason)
	assert.Equal(t, "notes.txt: file type not accepted", report.Rejections[0].String())
}

func TestAcceptFilesSlotErrorFailsTask(t *testing.T) {
	uploader := &fakeUploader{}
	slot := SlotFunc(func(string) error { return errors.New("document closed") })

	report, err := NewController(uploader).AcceptFiles(context.Background(), images("a.png"), InlinePolicy(), slot)
	require.NoError(t, err)
	require.Equal(t, 1, report.FailedCount())
	assert.Empty(t, report.URLs)
	assert.Contains(t, report.Failures[0].Err.Error(), "document closed")
}

func TestAcceptFilesObserver(t *testing.T) {
	var seen []Status
	controller := NewController(&fakeUploader{failures: map[string]error{"b.png": errors.New("boom")}},
		WithObserver(func(task Task) {
			seen = append(seen, task.Status)
		}))

	_, err := controller.AcceptFiles(context.Background(), images("a.png", "b.png"), GalleryPolicy(0), GallerySlot(new([]string)))
	require.NoError(t, err)

	assert.Equal(t, []Status{
		StatusPending, StatusPending,
		StatusUploading, StatusSucceeded,
		StatusUploading, StatusFailed,
	}, seen)
}

type blockingUploader struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingUploader) Upload(ctx context.Context, name, contentType string, body io.Reader) (string, error) {
	close(b.started)
	<-b.release
	return "https://x/" + name, nil
}

func TestAcceptFilesBusy(t *testing.T) {
	uploader := &blockingUploader{started: make(chan struct{}), release: make(chan struct{})}
	controller := NewController(uploader)

	done := make(chan error, 1)
	go func() {
		_, err := controller.AcceptFiles(context.Background(), images("a.png"), SinglePolicy(), FieldSlot(new(string)))
		done <- err
	}()

	<-uploader.started
	assert.True(t, controller.Busy())
	_, err := controller.AcceptFiles(context.Background(), images("b.png"), SinglePolicy(), FieldSlot(new(string)))
	assert.ErrorIs(t, err, ErrBusy)

	close(uploader.release)
	require.NoError(t, <-done)
	assert.False(t, controller.Busy())
}

func TestAcceptFilesInvalidInput(t *testing.T) {
	controller := NewController(&fakeUploader{})

	_, err := controller.AcceptFiles(context.Background(), images("a.png"), Policy{Mode: "replace"}, FieldSlot(new(string)))
	assert.Error(t, err)

	_, err = controller.AcceptFiles(context.Background(), images("a.png"), SinglePolicy(), nil)
	assert.Error(t, err)

	_, err = controller.AcceptFiles(context.Background(), images("a.png"), Policy{Accept: []string{"image/["}}, FieldSlot(new(string)))
	assert.Error(t, err)
}

func TestAcceptFilesCancelledContext(t *testing.T) {
	uploader := &fakeUploader{delays: map[string]time.Duration{"a.png": time.Second, "b.png": time.Second}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := NewController(uploader).AcceptFiles(ctx, images("a.png", "b.png"), GalleryPolicy(0), GallerySlot(new([]string)))
	require.NoError(t, err)
	assert.Equal(t, 2, report.FailedCount())
	assert.ErrorIs(t, report.Failures[0].Err, context.Canceled)
}
