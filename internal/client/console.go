package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-net-storage/internal/storage"
	"github.com/MKhiriev/go-net-storage/models"
)

var errQuit = errors.New("quit")

// console executes line commands against the local profile record.
type console struct {
	out io.Writer
	own *storage.Record[Profile]

	// players lists the accounts in the current match.
	players func(ctx context.Context) ([]models.Account, error)
	// watch starts tracking the profile of another player.
	watch func(ctx context.Context, userID string) (*storage.Record[Profile], error)

	watched map[string]*storage.Record[Profile]
}

const helpText = `commands:
  show                 print your profile and the profiles you watch
  nick <name>          set your nickname
  score <n>            set your score
  status <text>        set your status
  write                store your profile and share it with the match
  refetch              re-read your profile from the server
  players              list the players in the match
  watch <user id>      follow another player's profile
  help                 print this help
  quit                 leave the match and exit`

// run reads commands from in until EOF, quit or ctx cancellation.
func (c *console) run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	c.printf("%s\n> ", helpText)
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			err := c.exec(ctx, line)
			if errors.Is(err, errQuit) {
				return nil
			}
			if err != nil {
				c.printf("error: %v\n", err)
			}
			c.printf("> ")
		}
	}
}

func (c *console) exec(ctx context.Context, line string) error {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "":
		return nil
	case "help":
		c.printf("%s\n", helpText)
	case "quit", "exit":
		return errQuit
	case "show":
		c.show()
	case "nick":
		if arg == "" {
			return errors.New("usage: nick <name>")
		}
		c.own.Update(func(p *Profile) { p.Nickname = arg })
	case "score":
		score, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("usage: score <n>: %w", err)
		}
		c.own.Update(func(p *Profile) { p.Score = score })
	case "status":
		c.own.Update(func(p *Profile) { p.Status = arg })
	case "write":
		if err := c.own.Write(ctx); err != nil {
			return err
		}
		c.printf("stored version %s\n", c.own.Version())
	case "refetch":
		if err := c.own.Refetch(ctx); err != nil {
			return err
		}
		c.show()
	case "players":
		return c.listPlayers(ctx)
	case "watch":
		return c.watchPlayer(ctx, arg)
	default:
		return fmt.Errorf("unknown command %q, type help", cmd)
	}

	return nil
}

func (c *console) show() {
	data, version := c.own.Snapshot()
	c.printf("you: %s\n", formatProfile(data, version))
	for userID, rec := range c.watched {
		data, version := rec.Snapshot()
		c.printf("%s: %s\n", userID, formatProfile(data, version))
	}
}

func (c *console) listPlayers(ctx context.Context) error {
	players, err := c.players(ctx)
	if err != nil {
		return err
	}
	for _, p := range players {
		c.printf("%s\t%s\t%s\n", p.UserID, p.Username, p.DisplayName)
	}

	return nil
}

func (c *console) watchPlayer(ctx context.Context, userID string) error {
	if userID == "" {
		return errors.New("usage: watch <user id>")
	}
	if _, ok := c.watched[userID]; ok {
		return nil
	}

	rec, err := c.watch(ctx, userID)
	if err != nil {
		return err
	}
	c.watched[userID] = rec
	data, version := rec.Snapshot()
	c.printf("%s: %s\n", userID, formatProfile(data, version))

	return nil
}

func (c *console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}

func formatProfile(p Profile, version string) string {
	if version == "" {
		version = "-"
	}
	return fmt.Sprintf("nickname=%q score=%d status=%q version=%s", p.Nickname, p.Score, p.Status, version)
}
