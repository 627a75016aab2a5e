package outbox

import (
	"time"

	"github.com/riskibarqy/slowpitch-league/internal/domain/stats"
)

// Queue is an ordered command log. The zero value is ready to use.
type Queue struct {
	commands []Command
}

func NewQueue(commands []Command) *Queue {
	q := &Queue{}
	for _, cmd := range commands {
		q.commands = append(q.commands, cmd.Clone())
	}
	return q
}

// Enqueue appends cmd. A pending command with the same key is replaced in
// place so the newest payload keeps the original position.
func (q *Queue) Enqueue(cmd Command) {
	if cmd.Status == "" {
		cmd.Status = StatusPending
	}
	key := cmd.Key()
	for i := range q.commands {
		if q.commands[i].Key() == key {
			q.commands[i] = cmd
			return
		}
	}
	q.commands = append(q.commands, cmd)
}

// Lanes returns due pending commands grouped by lane, in enqueue order.
// A lane stops at its first command that is not due or has failed.
func (q *Queue) Lanes(now time.Time) [][]Command {
	order := make([]string, 0)
	lanes := make(map[string][]Command)
	blocked := make(map[string]bool)

	for _, cmd := range q.commands {
		lane := cmd.Lane()
		if blocked[lane] {
			continue
		}
		if cmd.Status != StatusPending || cmd.NextAttemptAt.After(now) {
			blocked[lane] = true
			continue
		}
		if _, ok := lanes[lane]; !ok {
			order = append(order, lane)
		}
		lanes[lane] = append(lanes[lane], cmd.Clone())
	}

	out := make([][]Command, 0, len(order))
	for _, lane := range order {
		out = append(out, lanes[lane])
	}
	return out
}

// Complete drops a delivered command.
func (q *Queue) Complete(id string) {
	for i := range q.commands {
		if q.commands[i].ID == id {
			q.commands = append(q.commands[:i], q.commands[i+1:]...)
			return
		}
	}
}

// Fail records a failed attempt. With terminal set the command stops retrying.
func (q *Queue) Fail(id string, err error, nextAttemptAt time.Time, terminal bool) (Command, bool) {
	for i := range q.commands {
		if q.commands[i].ID != id {
			continue
		}
		cmd := &q.commands[i]
		cmd.Attempts++
		if err != nil {
			cmd.LastError = err.Error()
		}
		cmd.NextAttemptAt = nextAttemptAt
		if terminal {
			cmd.Status = StatusFailed
		}
		return cmd.Clone(), true
	}
	return Command{}, false
}

// Retry puts failed commands back in the pending state.
func (q *Queue) Retry() int {
	n := 0
	for i := range q.commands {
		if q.commands[i].Status == StatusFailed {
			q.commands[i].Status = StatusPending
			q.commands[i].Attempts = 0
			q.commands[i].NextAttemptAt = time.Time{}
			n++
		}
	}
	return n
}

// Discard removes failed commands and returns them.
func (q *Queue) Discard() []Command {
	kept := q.commands[:0]
	var dropped []Command
	for _, cmd := range q.commands {
		if cmd.Status == StatusFailed {
			dropped = append(dropped, cmd)
			continue
		}
		kept = append(kept, cmd)
	}
	q.commands = kept
	return dropped
}

// HasPending reports whether a pending or failed command with key is queued.
func (q *Queue) HasPending(key string) bool {
	for _, cmd := range q.commands {
		if cmd.Key() == key {
			return true
		}
	}
	return false
}

func (q *Queue) Failed() []Command {
	var out []Command
	for _, cmd := range q.commands {
		if cmd.Status == StatusFailed {
			out = append(out, cmd.Clone())
		}
	}
	return out
}

func (q *Queue) Len() int {
	return len(q.commands)
}

// Commands returns a copy of the log.
func (q *Queue) Commands() []Command {
	out := make([]Command, 0, len(q.commands))
	for _, cmd := range q.commands {
		out = append(out, cmd.Clone())
	}
	return out
}

// LineupKey is the coalescing key of a lineup save for the given slot.
func LineupKey(seasonID string, week int, teamID string, night stats.Night) string {
	return Command{Kind: KindSaveLineup, SeasonID: seasonID, Week: week, TeamID: teamID, Night: night}.Key()
}
