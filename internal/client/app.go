package client

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/MKhiriev/go-net-storage/internal/config"
	"github.com/MKhiriev/go-net-storage/internal/dispatcher"
	"github.com/MKhiriev/go-net-storage/internal/logger"
	"github.com/MKhiriev/go-net-storage/internal/session"
	"github.com/MKhiriev/go-net-storage/internal/storage"
	"github.com/MKhiriev/go-net-storage/internal/workers"
	"github.com/MKhiriev/go-net-storage/models"
)

// App is the interactive client: it connects, enters a match, loads the
// player's profile and runs the command console until the user quits.
type App struct {
	cfg        *config.ClientConfig
	session    *session.Session
	dispatcher *dispatcher.Dispatcher
	refetch    *workers.RefetchJob
	workers    *workers.Workers

	in  io.Reader
	out io.Writer

	logger *logger.Logger
}

// NewApp wires the dispatcher and the refetch job around sess. Console input
// is read from in and output written to out.
func NewApp(cfg *config.ClientConfig, sess *session.Session, in io.Reader, out io.Writer, logger *logger.Logger) (*App, error) {
	disp := dispatcher.New(logger)
	if err := disp.Attach(sess); err != nil {
		return nil, fmt.Errorf("attach dispatcher: %w", err)
	}

	refetch := workers.NewRefetchJob(cfg.Workers.RefetchInterval, logger)

	return &App{
		cfg:        cfg,
		session:    sess,
		dispatcher: disp,
		refetch:    refetch,
		workers:    workers.New(refetch),
		in:         in,
		out:        &lockedWriter{w: out},
		logger:     logger.WithComponent("app"),
	}, nil
}

// Run implements [Client].
func (a *App) Run(ctx context.Context) error {
	ctx = a.logger.WithContext(ctx)

	auth := models.AuthData{Username: a.cfg.Client.Username, Password: a.cfg.Client.Password}
	if err := a.session.Connect(ctx, auth); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer func() {
		if err := a.session.Disconnect(); err != nil {
			a.logger.Warn().Err(err).Msg("disconnect failed")
		}
	}()

	account, _ := a.session.Account()
	a.printf("signed in as %s (%s)\n", account.Username, account.UserID)

	match, err := a.enterMatch(ctx)
	if err != nil {
		return err
	}
	a.printf("in match %s, share this id with other players\n", match.ID())

	leftCancel := a.session.OnLeftMatch(func(m *session.Match) {
		a.printf("\nleft match %s\n", m.ID())
	})
	defer leftCancel()

	own, err := a.track(ctx, account.UserID, "your profile")
	if err != nil {
		return err
	}

	a.workers.Start(ctx)
	defer a.workers.Stop()

	c := &console{
		out:     a.out,
		own:     own,
		players: match.Players,
		watch: func(ctx context.Context, userID string) (*storage.Record[Profile], error) {
			return a.track(ctx, userID, userID)
		},
		watched: make(map[string]*storage.Record[Profile]),
	}
	runErr := c.run(ctx, a.in)

	if err = a.session.LeaveMatch(context.WithoutCancel(ctx)); err != nil {
		a.logger.Warn().Err(err).Msg("leave match failed")
	}

	return runErr
}

func (a *App) enterMatch(ctx context.Context) (*session.Match, error) {
	if a.cfg.Client.MatchID != "" {
		match, err := a.session.JoinMatch(ctx, a.cfg.Client.MatchID)
		if err != nil {
			return nil, fmt.Errorf("join match %s: %w", a.cfg.Client.MatchID, err)
		}
		return match, nil
	}

	match, err := a.session.CreateMatch(ctx)
	if err != nil {
		return nil, fmt.Errorf("create match: %w", err)
	}

	return match, nil
}

// track fetches the profile of userID and keeps it up to date through match
// broadcasts and the refetch job for the rest of the run.
func (a *App) track(ctx context.Context, userID, label string) (*storage.Record[Profile], error) {
	addr := models.StorageAddress{
		Collection: a.cfg.Client.Collection,
		Key:        ProfileKey,
		UserID:     userID,
	}

	rec, err := storage.Fetch[Profile](ctx, a.session, addr, true)
	if err != nil {
		return nil, fmt.Errorf("fetch profile of %s: %w", userID, err)
	}

	rec.Register(a.dispatcher)
	a.refetch.Add(rec)
	rec.OnSynced(func() {
		data, version := rec.Snapshot()
		a.printf("\n%s updated: %s\n> ", label, formatProfile(data, version))
	})

	return rec, nil
}

func (a *App) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}

// lockedWriter serialises writes from the console and from sync callbacks.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
