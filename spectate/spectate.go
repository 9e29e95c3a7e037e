// Package spectate streams a running match to SSH clients as text frames.
package spectate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gliderlabs/ssh"
	"github.com/rs/zerolog"

	"chessBattle/match"
)

const (
	IdleTimeout = 5 * time.Minute
	// historyLines is how much of the transcript a frame shows.
	historyLines = 8
	clearScreen  = "\x1b[H\x1b[2J"
)

type Server struct {
	ssh   *ssh.Server
	match *match.Match
	log   zerolog.Logger
}

// New prepares a server on addr. Without a host key file an ephemeral key is
// generated at start.
func New(addr, hostKeyFile string, m *match.Match, logger zerolog.Logger) (*Server, error) {
	s := &Server{match: m, log: logger}
	s.ssh = &ssh.Server{
		Addr:        addr,
		IdleTimeout: IdleTimeout,
		Handler:     s.handle,
	}
	if hostKeyFile != "" {
		if err := s.ssh.SetOption(ssh.HostKeyFile(hostKeyFile)); err != nil {
			return nil, fmt.Errorf("ssh host key: %w", err)
		}
	}
	return s, nil
}

// Start serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() { errc <- s.ssh.ListenAndServe() }()
	s.log.Info().Str("addr", s.ssh.Addr).Msg("ssh listening")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		if err := s.ssh.Close(); err != nil {
			return err
		}
		if err := <-errc; err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handle(sess ssh.Session) {
	log := s.log.With().Str("user", sess.User()).Str("remote", sess.RemoteAddr().String()).Logger()
	log.Info().Msg("spectator joined")
	defer log.Info().Msg("spectator left")

	views, cancel := s.match.Subscribe()
	defer cancel()
	for {
		select {
		case <-sess.Context().Done():
			return
		case v, ok := <-views:
			if !ok {
				return
			}
			if err := writeFrame(sess, v); err != nil {
				log.Debug().Err(err).Msg("write frame")
				return
			}
			if v.State == match.Halted {
				_ = sess.Exit(0)
				return
			}
		}
	}
}

// writeFrame redraws the whole screen for v.
func writeFrame(w io.Writer, v match.View) error {
	var b strings.Builder
	b.WriteString(clearScreen)
	fmt.Fprintf(&b, "AI vs AI Chess Battle - %s\r\n\r\n", v.Name)
	b.WriteString(strings.ReplaceAll(v.Diagram, "\n", "\r\n"))
	b.WriteString("\r\n")

	lines := v.Transcript
	if len(lines) > historyLines {
		lines = lines[len(lines)-historyLines:]
	}
	if len(lines) == 0 {
		b.WriteString("Waiting for moves...\r\n")
	}
	for _, line := range lines {
		b.WriteString(line + "\r\n")
	}
	b.WriteString("\r\n" + v.Status() + "\r\n")

	_, err := io.WriteString(w, b.String())
	return err
}
