package media

import (
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestSource(width, height int) *FileSource {
	s := &FileSource{
		frameWidth:  width,
		frameHeight: height,
		frameReady:  make(chan struct{}, 1),
		done:        make(chan error, 1),
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

func waitDone(t *testing.T, s *FileSource) error {
	t.Helper()
	select {
	case err := <-s.done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("decode goroutine did not exit")
		return nil
	}
}

func TestCloseUnblocksPendingRead(t *testing.T) {
	s := newTestSource(4, 4)
	pr, _ := io.Pipe()
	s.pipe = pr

	go s.readFrames(pr)

	// the reader is blocked mid-frame; Close must cancel the pipe and
	// the goroutine must report a clean exit
	s.Close()
	require.NoError(t, waitDone(t, s))
}

func TestCloseUnblocksPausedReader(t *testing.T) {
	s := newTestSource(4, 4)
	pr, _ := io.Pipe()
	s.pipe = pr
	s.paused = true

	go s.readFrames(pr)

	s.Close()
	require.NoError(t, waitDone(t, s))
}

func TestReadFramesDeliversAndSignals(t *testing.T) {
	s := newTestSource(2, 2)
	pr, pw := io.Pipe()
	s.pipe = pr

	go s.readFrames(pr)

	frame := make([]byte, 2*2*4)
	for i := range frame {
		frame[i] = byte(i)
	}
	_, err := pw.Write(frame)
	require.NoError(t, err)

	select {
	case <-s.FrameReady():
	case <-time.After(2 * time.Second):
		t.Fatal("no frame-ready signal")
	}

	s.mu.Lock()
	require.Equal(t, frame, s.pending)
	require.True(t, s.started)
	s.mu.Unlock()

	// a clean end of stream reports success
	pw.Close()
	require.NoError(t, waitDone(t, s))
}
