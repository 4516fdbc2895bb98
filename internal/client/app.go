// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/milleriumage/oi-friendly-voice/internal/collection"
	"github.com/milleriumage/oi-friendly-voice/internal/config"
	"github.com/milleriumage/oi-friendly-voice/internal/logger"
	"github.com/milleriumage/oi-friendly-voice/internal/service"
	"github.com/milleriumage/oi-friendly-voice/internal/workers"
	"github.com/milleriumage/oi-friendly-voice/models"
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	infoColor = color.New(color.FgCyan)
)

// UploadRequest names a local file to register in the caller's library.
type UploadRequest struct {
	Path        string
	Title       string
	Description string
	PosterPath  string
	Duration    int
}

type App struct {
	services *service.ClientServices
	out      io.Writer

	// reconcileEvery is how often watched follow counters are reloaded.
	reconcileEvery time.Duration
	// trialOptions is used by RunTrial; zero fields take the defaults.
	trialOptions service.TrialOptions

	identityOnce sync.Once
	identity     models.Identity

	logger *logger.Logger
}

// NewApp builds the client over services. Command output goes to out.
func NewApp(services *service.ClientServices, out io.Writer, syncCfg config.Sync, logger *logger.Logger) (*App, error) {
	if services == nil {
		return nil, errNoServices
	}
	if out == nil {
		out = os.Stdout
	}

	return &App{
		services:       services,
		out:            out,
		reconcileEvery: syncCfg.PollInterval,
		logger:         logger.Component("client"),
	}, nil
}

// caller resolves the acting identity once per process.
func (a *App) caller(ctx context.Context) models.Identity {
	a.identityOnce.Do(func() {
		a.identity = a.services.Authenticate(ctx)
	})
	return a.identity
}

func (a *App) WhoAmI(ctx context.Context) error {
	id := a.caller(ctx)
	if id.IsAuthenticated() {
		infoColor.Fprintf(a.out, "account %s\n", id.ID)
		return nil
	}

	profile := a.services.Guests.LoadOrCreate(ctx)
	infoColor.Fprintf(a.out, "guest %s (%s)\n", id.ID, profile.PublicName())
	return nil
}

// Balance prints the balance. A failed read still prints the last known
// value, flagged as possibly stale.
func (a *App) Balance(ctx context.Context) error {
	balance, err := a.services.Ledger.Balance(ctx, a.caller(ctx))
	if err != nil {
		a.logger.Warn().Err(err).Msg("balance read failed")
		warnColor.Fprintf(a.out, "credits: %d (last known, %v)\n", balance, err)
		return nil
	}

	okColor.Fprintf(a.out, "credits: %d\n", balance)
	return nil
}

func (a *App) AddCredits(ctx context.Context, amount int) error {
	if amount <= 0 {
		return errNotPositive
	}

	balance, err := a.services.Ledger.Add(ctx, a.caller(ctx), amount)
	if err != nil {
		return fmt.Errorf("add credits: %w", err)
	}

	okColor.Fprintf(a.out, "added %d, credits: %d\n", amount, balance)
	return nil
}

func (a *App) Spend(ctx context.Context, amount int, reason string) error {
	if amount <= 0 {
		return errNotPositive
	}

	balance, err := a.services.Ledger.Subtract(ctx, a.caller(ctx), amount, reason)
	if err != nil {
		return fmt.Errorf("spend credits: %w", err)
	}

	okColor.Fprintf(a.out, "spent %d, credits: %d\n", amount, balance)
	return nil
}

func (a *App) ToggleFollow(ctx context.Context, creatorID string) error {
	following, err := a.services.Follow.Toggle(ctx, a.caller(ctx), creatorID)
	if err != nil {
		return fmt.Errorf("toggle follow: %w", err)
	}

	counts := a.services.Follow.Counts(creatorID)
	if following {
		okColor.Fprintf(a.out, "following %s (%d followers)\n", creatorID, counts.Followers)
	} else {
		okColor.Fprintf(a.out, "unfollowed %s (%d followers)\n", creatorID, counts.Followers)
	}
	return nil
}

func (a *App) ToggleLike(ctx context.Context, mediaID string) error {
	liked, err := a.services.Likes.Toggle(ctx, a.caller(ctx), mediaID)
	if err != nil {
		return fmt.Errorf("toggle like: %w", err)
	}

	verb := "unliked"
	if liked {
		verb = "liked"
	}
	okColor.Fprintf(a.out, "%s %s (%d likes)\n", verb, mediaID, a.services.Likes.Count(mediaID))
	return nil
}

func (a *App) SetGuestName(ctx context.Context, name string) error {
	if !a.caller(ctx).IsGuest() {
		return errGuestOnly
	}

	profile, err := a.services.Guests.Update(ctx, models.GuestProfileUpdate{DisplayName: &name})
	if err != nil {
		return fmt.Errorf("set guest name: %w", err)
	}

	okColor.Fprintf(a.out, "display name: %s\n", profile.DisplayName)
	return nil
}

// Upload registers the file at req.Path. Only its metadata is sent; the
// bytes go to the storage service under the returned path.
func (a *App) Upload(ctx context.Context, req UploadRequest) error {
	id := a.caller(ctx)
	if !id.IsAuthenticated() {
		return errAccountOnly
	}

	info, err := os.Stat(req.Path)
	if err != nil {
		return fmt.Errorf("upload: %w", err)
	}
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(req.Path)))
	if contentType == "" {
		return fmt.Errorf("upload %s: %w", req.Path, errUnknownFileType)
	}

	item, err := a.services.Media.Upload(ctx, id, models.MediaUpload{
		FileName:    filepath.Base(req.Path),
		ContentType: contentType,
		Size:        info.Size(),
		Title:       req.Title,
		Description: req.Description,
		PosterPath:  req.PosterPath,
		Duration:    req.Duration,
	})
	if err != nil {
		return fmt.Errorf("upload: %w", err)
	}

	okColor.Fprintf(a.out, "uploaded %s -> %s\n", item.ID, a.services.Media.PublicURL(item.Content.Path()))
	return nil
}

func (a *App) SetMain(ctx context.Context, mediaID string) error {
	a.caller(ctx)

	changed, err := a.services.Media.SetAsMain(ctx, mediaID)
	if err != nil {
		return fmt.Errorf("set main media: %w", err)
	}

	okColor.Fprintf(a.out, "main media: %s (%d items updated)\n", mediaID, len(changed))
	return nil
}

func (a *App) WatchMedia(ctx context.Context, ownerID string) error {
	a.caller(ctx)

	engine, err := a.services.Media.Watch(ctx, ownerID, service.WatchOptions[models.MediaItem]{
		OnChange: func(s collection.Snapshot[models.MediaItem]) {
			a.printSnapshotHeader("media", s.State, len(s.Items), s.Err)
			for _, it := range s.Items {
				mark := " "
				if it.IsMain {
					mark = "*"
				}
				fmt.Fprintf(a.out, " %s %s %-5s %s\n", mark, it.ID, it.Content.Type(), a.services.Media.PublicURL(it.Content.Path()))
			}
		},
	})
	if err != nil {
		return fmt.Errorf("watch media: %w", err)
	}
	defer engine.Stop()

	return a.wait(ctx, engine.Done())
}

// WatchFollowers prints the creator's followers as they change and reloads
// the follow counters on the sync poll interval.
func (a *App) WatchFollowers(ctx context.Context, creatorID string) error {
	a.caller(ctx)

	watch, err := a.services.Follow.Watch(ctx, creatorID, service.WatchOptions[models.Follower]{
		OnChange: func(s collection.Snapshot[models.Follower]) {
			a.printSnapshotHeader("followers", s.State, len(s.Items), s.Err)
			for _, f := range s.Items {
				fmt.Fprintf(a.out, "   %s %s\n", f.FollowerID, f.DisplayName)
			}
		},
	})
	if err != nil {
		return fmt.Errorf("watch followers: %w", err)
	}
	defer watch.Stop()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	reconcile := workers.NewPeriodic("follow-counts", a.reconcileEvery, func(ctx context.Context) error {
		counts, err := a.services.Follow.ReloadCounts(ctx, creatorID)
		if err != nil {
			return err
		}
		infoColor.Fprintf(a.out, "%s: %d followers, %d following\n", creatorID, counts.Followers, counts.Following)
		return nil
	}, a.logger, workers.WithImmediateRun())

	done := make(chan struct{})
	go func() {
		defer close(done)
		workers.New(reconcile).Run(runCtx)
	}()

	err = a.wait(ctx, watch.Followers.Done())
	cancel()
	<-done
	return err
}

// RunTrial counts down the guest trial, printing every debit, until the
// trial expires or ctx is cancelled.
func (a *App) RunTrial(ctx context.Context) error {
	id := a.caller(ctx)

	opts := a.trialOptions
	opts.OnDebit = func(balance int, err error) {
		if err != nil {
			warnColor.Fprintf(a.out, "trial debit failed: %v\n", err)
			return
		}
		infoColor.Fprintf(a.out, "trial debit, credits: %d\n", balance)
	}

	timer, err := service.NewTrialTimer(id, a.services.Ledger, opts, a.logger)
	if err != nil {
		if errors.Is(err, service.ErrTrialRequiresGuest) {
			return errGuestOnly
		}
		return err
	}

	infoColor.Fprintf(a.out, "trial started, %s remaining\n", timer.FormatRemaining())
	timer.Start(ctx)
	defer timer.Stop()

	select {
	case <-timer.Expired():
		warnColor.Fprintln(a.out, "trial expired")
	case <-ctx.Done():
		infoColor.Fprintf(a.out, "trial paused, %s remaining\n", timer.FormatRemaining())
	}
	return nil
}

func (a *App) printSnapshotHeader(what string, state collection.State, n int, err error) {
	if err != nil {
		warnColor.Fprintf(a.out, "%s [%s] %d items, last fetch failed: %v\n", what, state, n, err)
		return
	}
	infoColor.Fprintf(a.out, "%s [%s] %d items\n", what, state, n)
}

// wait blocks until ctx is cancelled or the engine is disposed.
func (a *App) wait(ctx context.Context, disposed <-chan struct{}) error {
	select {
	case <-ctx.Done():
		return nil
	case <-disposed:
		return nil
	}
}
