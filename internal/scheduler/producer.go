package scheduler

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/zap/zapcore"

	domain "github.com/oshokin/alarm-scheduler/internal/domain/alarm"
	"github.com/oshokin/alarm-scheduler/internal/logger"
)

var (
	// errMissingMessage is reported for request lines without message text.
	errMissingMessage = errors.New("missing message text")
	// errBadSeconds is reported when the line does not start with an integer.
	errBadSeconds = errors.New("seconds must be an integer")
)

// RunProducer reads request lines from in until the source is exhausted,
// inserting one alarm per valid line into the registry. A malformed line
// produces exactly one diagnostic and no state change; a blank line is
// skipped silently. The prompt, when non-empty, is written to out before
// each read. Lines are read without a length limit: an oversized message
// is truncated on insert, never rejected.
//
// It returns nil on end of input and a read error otherwise. The caller
// decides what end of input means for the rest of the system; the loops
// of the other roles are not touched here.
func (c *Coordinator) RunProducer(ctx context.Context, in io.Reader, out io.Writer, prompt string) error {
	ctx = logger.WithName(ctx, "producer")

	reader := bufio.NewReader(in)

	for {
		if prompt != "" && out != nil {
			_, _ = io.WriteString(out, prompt)
		}

		line, err := reader.ReadString('\n')

		if trimmed := strings.TrimSpace(line); trimmed != "" {
			if !c.ingest(ctx, trimmed) {
				return nil
			}
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}

			return fmt.Errorf("read requests: %w", err)
		}
	}
}

// ingest parses one request line and inserts the resulting alarm into the
// registry. The accepted notification fires under the lock, so it always
// precedes the dispatch notification for the same record. It reports
// false once the coordinator has been stopped.
func (c *Coordinator) ingest(ctx context.Context, line string) bool {
	seconds, message, err := parseRequest(line)
	if err != nil {
		c.notifier.Rejected(ctx, line, err)
		c.stats.Rejected.Inc()

		return true
	}

	a := domain.New(c.now(), seconds, message)

	c.mu.Lock()

	if c.stopped {
		c.mu.Unlock()

		return false
	}

	c.pending.Insert(a)

	c.notifier.Accepted(ctx, a)
	c.stats.Accepted.Inc()

	// Snapshot for the debug dump while still under the lock.
	var pending []*domain.Alarm
	if logger.Level() <= zapcore.DebugLevel {
		pending = c.pending.Snapshot()
	}

	c.mu.Unlock()

	if pending != nil {
		logger.DebugKV(ctx, "Pending registry", "alarms", formatPending(pending))
	}

	return true
}

// parseRequest splits a request line into the requested seconds and the
// message text. The message may contain spaces and is required; the
// seconds may be zero or negative.
func parseRequest(line string) (int, string, error) {
	separator := strings.IndexFunc(line, unicode.IsSpace)
	if separator < 0 {
		return 0, "", errMissingMessage
	}

	seconds, err := strconv.Atoi(line[:separator])
	if err != nil {
		return 0, "", errBadSeconds
	}

	message := strings.TrimSpace(line[separator:])

	return seconds, message, nil
}

// formatPending renders the registry for the debug dump.
func formatPending(alarms []*domain.Alarm) []string {
	result := make([]string, 0, len(alarms))
	for _, a := range alarms {
		result = append(result, fmt.Sprintf("%d[%q]", a.ExpiresAt.Unix(), a.Message))
	}

	return result
}
