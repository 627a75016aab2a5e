package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/riskibarqy/slowpitch-league/internal/domain/league"
	"github.com/riskibarqy/slowpitch-league/internal/domain/stats"
	"github.com/riskibarqy/slowpitch-league/internal/engine"
	"github.com/riskibarqy/slowpitch-league/internal/infrastructure/localstore"
)

func (c *cli) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	session, err := c.client.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	if err := c.sessions.Save(localstore.Session{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		Principal: session.User,
	}); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "signed in as %s\n", principalLabel(session.User))
	return nil
}

func (c *cli) logout() error {
	if err := c.sessions.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "signed out")
	return nil
}

func (c *cli) status(ctx context.Context) error {
	if err := c.open(ctx, false); err != nil {
		return err
	}
	renderStatus(c.out, c.engine.State(), c.engine.Principal(), c.engine.Pending())
	return nil
}

func (c *cli) sync(ctx context.Context) error {
	if err := c.open(ctx, true); err != nil {
		return err
	}
	report, err := c.syncer.Run(ctx)
	if err != nil {
		return err
	}
	renderSync(c.out, report)
	return c.commit(ctx)
}

func (c *cli) upload(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	night, err := stats.ParseNight(args[0])
	if err != nil {
		return err
	}
	f, err := os.Open(args[1])
	if err != nil {
		return fmt.Errorf("open stats export: %w", err)
	}
	defer f.Close()

	if err := c.open(ctx, true); err != nil {
		return err
	}
	report, err := c.engine.Upload(ctx, night, f, filepath.Base(args[1]))
	if err != nil {
		return err
	}
	renderUpload(c.out, c.engine.State(), report)
	return c.commit(ctx)
}

func (c *cli) process(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	night, err := stats.ParseNight(args[0])
	if err != nil {
		return err
	}
	if err := c.open(ctx, true); err != nil {
		return err
	}
	count, err := c.engine.ProcessWithoutUpload(ctx, night)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s processed without stats for %d team(s)\n", night, count)
	return c.commit(ctx)
}

func (c *cli) swap(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return errUsage
	}
	night, err := stats.ParseNight(args[0])
	if err != nil {
		return err
	}
	if err := c.open(ctx, true); err != nil {
		return err
	}

	s, idx, err := c.boundTeam()
	if err != nil {
		return err
	}
	roster := rosterCandidates(s, s.Teams[idx])
	outKey, err := resolveKey(roster, args[1])
	if err != nil {
		return err
	}
	inKey, err := resolveKey(roster, args[2])
	if err != nil {
		return err
	}

	changed, err := c.engine.Swap(ctx, s.Teams[idx].ID, night, outKey, inKey)
	if err != nil {
		return err
	}
	nights := make([]string, 0, len(changed))
	for _, n := range changed {
		nights = append(nights, string(n))
	}
	fmt.Fprintf(c.out, "%s in for %s on %s\n", displayName(s, inKey), displayName(s, outKey), strings.Join(nights, "+"))
	return c.commit(ctx)
}

func (c *cli) addDrop(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	if err := c.open(ctx, true); err != nil {
		return err
	}

	s, idx, err := c.boundTeam()
	if err != nil {
		return err
	}
	dropKey, err := resolveKey(rosterCandidates(s, s.Teams[idx]), args[0])
	if err != nil {
		return err
	}
	addKey, err := resolveKey(poolCandidates(s), args[1])
	if err != nil {
		return err
	}

	if err := c.engine.AddDrop(ctx, s.Teams[idx].ID, dropKey, addKey); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "dropped %s, added %s\n", displayName(s, dropKey), displayName(s, addKey))
	return c.commit(ctx)
}

func (c *cli) draft(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	sub := strings.ToLower(strings.TrimSpace(args[0]))
	if sub == "save" {
		if err := c.open(ctx, true); err != nil {
			return err
		}
		picks, err := c.engine.SaveDraft(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "draft queued with %d picks\n", picks)
		return c.commit(ctx)
	}

	if len(args) != 3 {
		return errUsage
	}
	switch sub {
	case "add", "bench", "remove":
	default:
		return errUsage
	}

	if err := c.open(ctx, true); err != nil {
		return err
	}
	s := c.engine.State()
	teamID, err := resolveTeam(s, args[1])
	if err != nil {
		return err
	}
	cands := poolCandidates(s)
	if sub == "remove" {
		idx, _ := s.TeamIndex(teamID)
		cands = rosterCandidates(s, s.Teams[idx])
	}
	key, err := resolveKey(cands, args[2])
	if err != nil {
		return err
	}

	switch sub {
	case "add":
		err = c.engine.AddActive(teamID, key)
	case "bench":
		err = c.engine.SetBench(teamID, key)
	default:
		err = c.engine.RemoveDrafted(teamID, key)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "draft %s: %s\n", sub, displayName(s, key))
	return c.commit(ctx)
}

func (c *cli) finalize(ctx context.Context) error {
	if err := c.open(ctx, true); err != nil {
		return err
	}
	before := c.engine.State()
	result, err := c.engine.FinalizeWeek(ctx)
	if err != nil {
		return err
	}
	renderWeek(c.out, before, result)
	return c.commit(ctx)
}

func (c *cli) reset(ctx context.Context, args []string) error {
	if len(args) != 1 || args[0] != "--confirm" {
		return fmt.Errorf("reset clears the local season: run `league reset --confirm`")
	}
	if err := c.open(ctx, true); err != nil {
		return err
	}
	if err := c.engine.ResetSeason(ctx); err != nil {
		return err
	}
	c.syncer.Reset()
	fmt.Fprintln(c.out, "local season cleared, run league sync to hydrate from the server")
	return c.commit(ctx)
}

func (c *cli) standings(ctx context.Context) error {
	if err := c.open(ctx, false); err != nil {
		return err
	}
	renderStandings(c.out, c.engine.State())
	return nil
}

func (c *cli) players(ctx context.Context, args []string) error {
	if err := c.open(ctx, false); err != nil {
		return err
	}
	s := c.engine.State()
	renderPlayers(c.out, s, rankPool(s.Pool, strings.Join(args, " ")))
	return nil
}

func (c *cli) outbox(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	if err := c.open(ctx, true); err != nil {
		return err
	}

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "flush":
		report, err := c.dispatcher.Flush(ctx)
		if err != nil {
			return err
		}
		c.printFlush(report)
	case "retry":
		fmt.Fprintf(c.out, "%d failed command(s) queued again\n", c.engine.RetryFailed())
	case "discard":
		for _, cmd := range c.engine.DiscardFailed() {
			fmt.Fprintf(c.out, "discarded %s: %s\n", cmd.String(), cmd.LastError)
		}
	default:
		return errUsage
	}
	return c.engine.Save(ctx)
}

func (c *cli) watch(ctx context.Context) error {
	if err := c.open(ctx, true); err != nil {
		return err
	}
	watcher, err := engine.NewWatcher(c.engine, c.syncer, c.dispatcher, c.logger)
	if err != nil {
		return err
	}
	if err := watcher.Start(ctx, c.cfg.SyncCron, c.cfg.FlushInterval); err != nil {
		return err
	}
	c.logger.Info("watching league", "sync_cron", c.cfg.SyncCron, "flush_interval", c.cfg.FlushInterval)

	<-ctx.Done()
	if err := watcher.Stop(); err != nil {
		c.logger.Warn("stop watcher", "error", err)
	}
	return c.engine.Save(context.Background())
}

func (c *cli) boundTeam() (league.State, int, error) {
	s := c.engine.State()
	idx := engine.BoundTeam(c.engine.Principal(), s.Teams)
	if idx < 0 {
		return s, -1, fmt.Errorf("%s does not manage a team", principalLabel(c.engine.Principal()))
	}
	return s, idx, nil
}
