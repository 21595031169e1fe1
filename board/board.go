// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package board

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/ideaboard/debounce"
	"github.com/danielhkuo/ideaboard/detail"
	"github.com/danielhkuo/ideaboard/models"
	"github.com/danielhkuo/ideaboard/reconcile"
	"github.com/danielhkuo/ideaboard/render"
	"github.com/danielhkuo/ideaboard/store"
)

// API is the subset of the ideas API the board calls
type API interface {
	ListIdeas(ctx context.Context, f models.Filter) ([]models.Idea, error)
	CreateIdea(ctx context.Context, idea models.NewIdea) (*models.Idea, error)
	Vote(ctx context.Context, id models.ID, vt models.VoteType) (*models.Idea, error)
	Report(ctx context.Context, id models.ID, description string) (*models.Report, error)
	EditIdea(ctx context.Context, id models.ID, edit models.IdeaEdit) (*models.EditResponse, error)
	DeleteIdea(ctx context.Context, id models.ID) error
	DeleteReport(ctx context.Context, id models.ID) error
	ApproveRequest(ctx context.Context, id models.ID) error
	RejectRequest(ctx context.Context, id models.ID) error
	RequestDeveloperAccess(ctx context.Context, reason string) (*models.DeveloperRequest, error)
	Chat(ctx context.Context, message string) (string, error)
}

type Options struct {
	UserID       models.ID
	TruncateAt   int
	DefaultImage string
	Debounce     time.Duration
	Logger       *slog.Logger
	Now          func() time.Time
}

type handler func(b *Board, a Action, done func(Outcome))

// Board owns the idea list, the detail view and the rendered view. All of
// that state is touched only by the goroutine running Run; every other
// goroutine talks to it through Dispatch.
type Board struct {
	api      API
	log      *slog.Logger
	store    *store.Store
	renderer *render.Renderer
	detail   *detail.Controller
	votes    *reconcile.Reconciler
	reload   *debounce.Debouncer
	bindings map[Kind]handler

	events  chan func()
	stopped chan struct{}
	runCtx  context.Context

	filter models.Filter
	chat   []render.ChatLine
	notice string
	errMsg string

	view        atomic.Pointer[render.View]
	listenersMu sync.Mutex
	listeners   []func(render.View)
	inflight    sync.WaitGroup
}

func New(api API, opts Options) *Board {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = debounce.DefaultWait
	}

	r := render.New(opts.UserID)
	if opts.TruncateAt > 0 {
		r.TruncateAt = opts.TruncateAt
	}
	if opts.DefaultImage != "" {
		r.DefaultImage = opts.DefaultImage
	}
	if opts.Now != nil {
		r.Now = opts.Now
	}

	b := &Board{
		api:      api,
		log:      opts.Logger,
		store:    store.New(),
		renderer: r,
		events:   make(chan func(), 64),
		stopped:  make(chan struct{}),
		runCtx:   context.Background(),
		filter:   models.Filter{}.Normalize(),
	}
	b.detail = detail.New(r)
	b.votes = reconcile.New(api, b.store, b.detail)
	b.reload = debounce.New(opts.Debounce, func() {
		b.post(func() { b.refetch("", b.settleQuietly) })
	})

	b.bindings = map[Kind]handler{
		KindLoad:          (*Board).handleLoad,
		KindFilter:        (*Board).handleFilter,
		KindVote:          (*Board).handleVote,
		KindSubmit:        (*Board).handleSubmit,
		KindOpen:          (*Board).handleOpen,
		KindClose:         (*Board).handleClose,
		KindEdit:          (*Board).handleEdit,
		KindDelete:        (*Board).handleDelete,
		KindReport:        (*Board).handleReport,
		KindMine:          (*Board).handleMine,
		KindDeleteReport:  (*Board).handleDeleteReport,
		KindApprove:       (*Board).handleApprove,
		KindReject:        (*Board).handleReject,
		KindRequestAccess: (*Board).handleRequestAccess,
		KindApplyFilter:   (*Board).handleApplyFilter,
		KindChat:          (*Board).handleChat,
	}

	b.rerender()
	return b
}

// Run processes events until ctx is done. It must be called exactly once.
func (b *Board) Run(ctx context.Context) error {
	b.runCtx = ctx
	defer close(b.stopped)
	defer b.reload.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-b.events:
			ev()
		}
	}
}

// Dispatch queues a on the event loop. The returned channel receives one
// Outcome once the action, including any network round trip, has settled.
func (b *Board) Dispatch(a Action) <-chan Outcome {
	out := make(chan Outcome, 1)
	ok := b.post(func() {
		h, found := b.bindings[a.Kind]
		if !found {
			out <- b.settle(Outcome{Err: fmt.Errorf("%w: %d", ErrUnknownAction, int(a.Kind))})
			return
		}
		h(b, a, func(o Outcome) { out <- b.settle(o) })
	})
	if !ok {
		out <- Outcome{Err: ErrStopped}
	}
	return out
}

// Do dispatches a and waits for its outcome. The returned error is the
// outcome's error, or the reason waiting stopped.
func (b *Board) Do(ctx context.Context, a Action) (Outcome, error) {
	select {
	case o := <-b.Dispatch(a):
		return o, o.Err
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	case <-b.stopped:
		return Outcome{}, ErrStopped
	}
}

// View returns the most recently rendered view. Safe from any goroutine.
func (b *Board) View() render.View {
	return *b.view.Load()
}

// Subscribe registers fn to receive every rendered view. fn runs on the
// event loop and must not block.
func (b *Board) Subscribe(fn func(render.View)) {
	b.listenersMu.Lock()
	defer b.listenersMu.Unlock()
	b.listeners = append(b.listeners, fn)
}

// Wait blocks until no network request started by the board is running
func (b *Board) Wait() {
	b.inflight.Wait()
}

func (b *Board) post(ev func()) bool {
	select {
	case <-b.stopped:
		return false
	default:
	}
	select {
	case b.events <- ev:
		return true
	case <-b.stopped:
		return false
	}
}

// async runs call off the loop and hands its error back to then on the
// loop. Results land in the order they arrive.
func (b *Board) async(op string, call func(ctx context.Context) error, then func(err error)) {
	opID := uuid.NewString()
	ctx := b.runCtx
	b.inflight.Add(1)

	go func() {
		defer b.inflight.Done()

		start := time.Now()
		err := call(ctx)
		if err != nil {
			b.log.Warn("request failed",
				"op", op,
				"op_id", opID,
				"error", err,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		} else {
			b.log.Debug("request completed",
				"op", op,
				"op_id", opID,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		}

		if !b.post(func() { then(err) }) {
			b.log.Debug("dropping response after shutdown", "op", op, "op_id", opID)
		}
	}()
}

// settle records the user-facing notice or error and renders.
func (b *Board) settle(o Outcome) Outcome {
	if o.Err != nil {
		b.errMsg = o.Err.Error()
		b.notice = ""
	} else {
		b.errMsg = ""
		b.notice = o.Notice
	}
	o.View = b.rerender()
	return o
}

func (b *Board) settleQuietly(o Outcome) {
	b.settle(o)
}

func (b *Board) rerender() render.View {
	v := render.View{
		UserID: b.renderer.UserID,
		Filter: b.filter,
		Grid:   b.renderer.Grid(b.store.Ideas()),
		Chat:   slices.Clone(b.chat),
		Notice: b.notice,
		Error:  b.errMsg,
	}
	if dv, open := b.detail.View(); open {
		v.Detail = &dv
	}
	b.view.Store(&v)

	b.listenersMu.Lock()
	listeners := b.listeners
	b.listenersMu.Unlock()
	for _, fn := range listeners {
		fn(v)
	}
	return v
}

// refetch replaces the whole list with a fresh server copy and keeps an
// open detail view in step with it.
func (b *Board) refetch(notice string, done func(Outcome)) {
	filter := b.filter
	var ideas []models.Idea

	b.async("list", func(ctx context.Context) error {
		var err error
		ideas, err = b.api.ListIdeas(ctx, filter)
		return err
	}, func(err error) {
		if err != nil {
			done(Outcome{Err: err})
			return
		}
		b.store.Load(ideas)
		if id, open := b.detail.Current(); open {
			if idea, ok := b.store.Get(id); ok {
				b.detail.Refresh(idea)
			}
		}
		done(Outcome{Notice: notice})
	})
}
