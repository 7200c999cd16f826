// Package upload moves local files to the media store one at a time and folds
// the resulting URLs into a draft.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/rgonek/contentdesk/apiclient"
	"github.com/rs/zerolog"
)

var uploadLogger zerolog.Logger

// SetLogger sets the logger used by every controller.
func SetLogger(l zerolog.Logger) {
	uploadLogger = l
}

// DefaultFailureMessage is reported for failures the server did not describe.
const DefaultFailureMessage = "فشل رفع الصورة"

// ErrBusy is returned when a batch is submitted while another is running.
var ErrBusy = errors.New("upload already in progress")

// Uploader transfers one file and returns its absolute URL.
type Uploader interface {
	Upload(ctx context.Context, name, contentType string, body io.Reader) (string, error)
}

// Observer is called with a snapshot of a task on every state change.
type Observer func(Task)

// Option configures a Controller.
type Option func(*Controller)

// WithObserver registers a progress callback.
func WithObserver(observer Observer) Option {
	return func(c *Controller) {
		c.observer = observer
	}
}

// WithFailureMessage replaces DefaultFailureMessage.
func WithFailureMessage(message string) Option {
	return func(c *Controller) {
		c.failureMessage = message
	}
}

// Controller runs upload batches. It accepts one batch at a time.
type Controller struct {
	uploader       Uploader
	observer       Observer
	failureMessage string

	mu   sync.Mutex
	busy bool
}

// NewController creates a controller that transfers files through uploader.
func NewController(uploader Uploader, opts ...Option) *Controller {
	c := &Controller{
		uploader:       uploader,
		failureMessage: DefaultFailureMessage,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Busy reports whether a batch is running.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// AcceptFiles filters files by policy, uploads the accepted ones in order and
// puts each resulting URL into slot. Per-file failures are part of the report;
// the returned error is only set when the batch could not start.
func (c *Controller) AcceptFiles(ctx context.Context, files []File, policy Policy, slot Slot) (Report, error) {
	if slot == nil {
		return Report{}, errors.New("upload slot is required")
	}
	policy = policy.applyDefaults()
	if err := policy.Validate(); err != nil {
		return Report{}, err
	}

	if !c.acquire() {
		return Report{}, ErrBusy
	}
	defer c.release()

	report := Report{BatchID: uuid.NewString()}
	log := uploadLogger.With().Str("batch", report.BatchID).Logger()

	q := &queue{}
	accepted, rejections := c.admit(files, policy, slot.Len())
	report.Rejections = rejections
	for _, r := range rejections {
		log.Warn().
			Str("file", r.File.Name).
			Str("reason", string(r.Reason)).
			Msg("File rejected")
	}
	for _, idx := range accepted {
		t := newTask(files[idx], idx)
		q.push(t)
		c.notify(t)
	}

	for {
		t, ok := q.next()
		if !ok {
			break
		}
		c.run(ctx, log, t, slot)

		report.Tasks = append(report.Tasks, *t)
		if t.Status == StatusSucceeded {
			report.URLs = append(report.URLs, t.URL)
			continue
		}
		report.Failures = append(report.Failures, Failure{
			TaskID:  t.ID,
			Index:   t.Index,
			Name:    t.File.Name,
			Message: t.Message,
			Err:     t.Err,
		})
	}

	log.Info().
		Int("succeeded", report.SucceededCount()).
		Int("failed", report.FailedCount()).
		Int("rejected", report.RejectedCount()).
		Msg("Upload batch finished")
	return report, nil
}

// admit returns the indexes of files that become tasks and the rejections
// for the rest, without touching the network.
func (c *Controller) admit(files []File, policy Policy, current int) ([]int, []Rejection) {
	var accepted []int
	var rejections []Rejection

	room := policy.capacity(current)
	for i, f := range files {
		switch {
		case !policy.Accepts(f):
			rejections = append(rejections, Rejection{File: f, Index: i, Reason: RejectType})
		case policy.MaxFiles > 0 && len(accepted) >= policy.MaxFiles:
			rejections = append(rejections, Rejection{File: f, Index: i, Reason: RejectTooMany})
		case room >= 0 && len(accepted) >= room:
			rejections = append(rejections, Rejection{File: f, Index: i, Reason: RejectCapacity})
		default:
			accepted = append(accepted, i)
		}
	}

	return accepted, rejections
}

// run drives one task to a terminal state.
func (c *Controller) run(ctx context.Context, log zerolog.Logger, t *Task, slot Slot) {
	if err := t.start(); err != nil {
		log.Error().Err(err).Str("task", t.ID).Msg("Task could not start")
		return
	}
	c.notify(t)

	url, err := c.transfer(ctx, t.File)
	if err == nil {
		if putErr := slot.Put(url); putErr != nil {
			err = fmt.Errorf("failed to store url: %w", putErr)
		}
	}

	if err != nil {
		_ = t.fail(apiclient.Message(err, c.failureMessage), err)
		log.Warn().Err(err).Str("task", t.ID).Str("file", t.File.Name).Msg("Upload failed")
	} else {
		_ = t.succeed(url)
		log.Debug().Str("task", t.ID).Str("url", url).Msg("Upload succeeded")
	}
	c.notify(t)
}

func (c *Controller) transfer(ctx context.Context, f File) (string, error) {
	if f.Open == nil {
		return "", fmt.Errorf("file %s has no content", f.Name)
	}
	body, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", f.Name, err)
	}
	defer body.Close()

	return c.uploader.Upload(ctx, f.Name, f.ContentType, body)
}

func (c *Controller) notify(t *Task) {
	if c.observer != nil {
		c.observer(*t)
	}
}

func (c *Controller) acquire() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return false
	}
	c.busy = true
	return true
}

func (c *Controller) release() {
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
}
