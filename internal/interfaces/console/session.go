package console

import (
	"bufio"
	"context"
	"fmt"
	"io"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/ladder-league/internal/platform/logging"
	"github.com/riskibarqy/ladder-league/internal/usecase"
)

// LeagueService is the league surface the console drives.
type LeagueService interface {
	AddPlayer(ctx context.Context, name string) error
	RecordWin(ctx context.Context, winner, loser string) error
	Winner(ctx context.Context) (string, error)
	Render(ctx context.Context) string
	Save(ctx context.Context, path string) error
	Load(ctx context.Context, path string) error
}

// Reply is the console's answer to one line. Text is empty for commands that
// only change state.
type Reply struct {
	Text string
	Quit bool
}

type Session struct {
	service LeagueService
	logger  *logging.Logger
}

func NewSession(service LeagueService, logger *logging.Logger) *Session {
	if logger == nil {
		logger = logging.Default()
	}
	return &Session{service: service, logger: logger}
}

// Handle executes one console line. Invalid input, unknown players, malformed
// saves and unreachable storage come back as reply text; any other failure is
// returned as an error.
func (s *Session) Handle(ctx context.Context, line string) (Reply, error) {
	cmd := Parse(line)
	reply, err := s.execute(ctx, cmd)
	if err == nil {
		return reply, nil
	}
	if !usecase.IsRecoverable(err) {
		return Reply{}, crerr.Wrapf(err, "handle %s", cmd.Kind)
	}

	s.logger.DebugContext(ctx, "command rejected", "command", cmd.Kind.String(), "error", err)
	return Reply{Text: userMessage(err)}, nil
}

func (s *Session) execute(ctx context.Context, cmd Command) (Reply, error) {
	switch cmd.Kind {
	case KindAddPlayer:
		return Reply{}, s.service.AddPlayer(ctx, cmd.Name)
	case KindRecordWin:
		return Reply{}, s.service.RecordWin(ctx, cmd.Winner, cmd.Loser)
	case KindPrint:
		return Reply{Text: s.service.Render(ctx)}, nil
	case KindWinner:
		winner, err := s.service.Winner(ctx)
		return Reply{Text: winner}, err
	case KindSave:
		if cmd.Path == "" {
			return Reply{}, errPathRequired
		}
		return Reply{}, s.service.Save(ctx, cmd.Path)
	case KindLoad:
		if cmd.Path == "" {
			return Reply{}, errPathRequired
		}
		return Reply{}, s.service.Load(ctx, cmd.Path)
	case KindQuit:
		return Reply{Quit: true}, nil
	default:
		return Reply{Text: fmt.Sprintf(`Unknown command "%s"`, cmd.Raw)}, nil
	}
}

var errPathRequired = crerr.WithHint(
	crerr.Mark(crerr.New("file path is required"), usecase.ErrInvalidInput),
	"A file path is required",
)

func userMessage(err error) string {
	if hint := crerr.FlattenHints(err); hint != "" {
		return hint
	}
	return err.Error()
}

// maxLineBytes bounds a single command line.
const maxLineBytes = 1 << 20

// Run reads commands from in until quit, end of input or cancellation, writing
// each non-empty reply to out on its own line. Cancellation is observed while
// waiting for input; the reader goroutine then exits on its next line or EOF.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	done := make(chan struct{})
	defer close(done)

	lines, readErr := readLines(in, done)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("read commands: %w", err)
				}
				return nil
			}

			reply, err := s.Handle(ctx, line)
			if err != nil {
				return err
			}
			if reply.Text != "" {
				if _, err := fmt.Fprintln(out, reply.Text); err != nil {
					return fmt.Errorf("write reply: %w", err)
				}
			}
			if reply.Quit {
				return nil
			}
		}
	}
}

// readLines scans in on its own goroutine. lines is closed at end of input,
// after which readErr yields the scan error, if any.
func readLines(in io.Reader, done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineBytes)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		readErr <- scanner.Err()
	}()

	return lines, readErr
}
