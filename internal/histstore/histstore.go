// Package histstore persists calculator history as an append-only event log.
//
// The store runs a background loop which owns the log file. The app sends
// requests through AddEntry/Clear and applies the resulting events, which
// arrive on the Events channel after they have been written.
package histstore

import (
	"container/list"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/neuroliptica/logger"
	"github.com/spf13/afero"
)

// FileName is the name of the log file in the data directory.
const FileName = "history.json"

var StoreLogger = logger.MakeLogger("history").BindToDefault()

type ID string

// Entry is a completed calculation.
type Entry struct {
	Expression string
	Result     string
	Time       time.Time
}

// String renders the entry the way the history list shows it.
func (e Entry) String() string {
	return e.Expression + " = " + e.Result
}

// entryID derives an ID from the entry content and its position in the log.
func entryID(seq uint64, e Entry) ID {
	var num [8]byte
	h := xxhash.New()
	binary.BigEndian.PutUint64(num[:], seq)
	h.Write(num[:])
	binary.BigEndian.PutUint64(num[:], uint64(e.Time.UnixNano()))
	h.Write(num[:])
	h.WriteString(e.Expression)
	h.WriteString("\x00")
	h.WriteString(e.Result)
	return ID(hex.EncodeToString(h.Sum(nil)))
}

// Option configures a Store.
type Option func(*Store)

// WithFs sets the filesystem holding the log. The default is the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(s *Store) { s.fs = fs }
}

// WithClock sets the time source for entry timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

type Store struct {
	dataDir  string
	fs       afero.Fs
	now      func() time.Time
	dataFile afero.File
	reader   *json.Decoder
	writer   *json.Encoder
	seq      uint64

	eventsOut  chan Event
	eventQueue list.List

	eventsIn chan Event
	flushCh  chan struct{}
	quitCh   chan struct{}
	wg       sync.WaitGroup
}

// NewStore starts a store for the log in datadir. The existing log is replayed
// into the Events channel.
func NewStore(datadir string, options ...Option) *Store {
	s := &Store{
		dataDir:   datadir,
		fs:        afero.NewOsFs(),
		now:       time.Now,
		eventsOut: make(chan Event),
		eventsIn:  make(chan Event, 256),
		flushCh:   make(chan struct{}, 1),
		quitCh:    make(chan struct{}),
	}
	for _, option := range options {
		option(s)
	}
	s.wg.Add(1)
	go s.mainLoop()
	return s
}

// Close closes the store and waits for entries to be persisted. Events not yet
// received are dropped and the Events channel is closed.
func (s *Store) Close() {
	close(s.quitCh)
	s.wg.Wait()
}

// Events returns the event channel.
// The app reads this channel and applies the events to its history view.
// The channel is closed when the store is closed.
func (s *Store) Events() <-chan Event {
	return s.eventsOut
}

// AddEntry tells the store to record a calculation. The entry time is set if
// it is zero.
func (s *Store) AddEntry(e Entry) {
	if e.Time.IsZero() {
		e.Time = s.now()
	}
	s.enqueueInputEvent(&EntryAdded{Entry: e})
}

// Record adds an entry for expression and its result text.
func (s *Store) Record(expression, result string) {
	s.AddEntry(Entry{Expression: expression, Result: result})
}

// Clear tells the store to erase the history.
func (s *Store) Clear() {
	s.enqueueInputEvent(&HistoryCleared{})
}

// Persist tells the store to flush data to disk.
func (s *Store) Persist() {
	select {
	case s.flushCh <- struct{}{}:
	default:
	}
}

// enqueueInputEvent delivers an event from the app to mainLoop.
func (s *Store) enqueueInputEvent(ev Event) {
	select {
	case s.eventsIn <- ev:
	case <-s.quitCh:
	}
}

func (s *Store) mainLoop() {
	defer s.wg.Done()
	defer close(s.eventsOut)

	// Initial replay.
	err := s.initFile()
	if err != nil {
		s.enqueueOutputEvent(&IOError{Err: err})
	}

	// Handle events.
	for {
		sendEvChan, sendEv := s.queuedOutputEvent()
		select {
		case sendEvChan <- sendEv:
			s.popOutputEvent()

		case ev := <-s.eventsIn:
			s.handleInputEvent(ev)

		case <-s.flushCh:
			if s.dataFile != nil {
				err := s.dataFile.Sync()
				StoreLogger.Logf("data file flushed (err: %v)", err)
				if err != nil {
					s.enqueueOutputEvent(&IOError{Err: err})
				}
			}

		case <-s.quitCh:
			s.drainInput()
			if s.dataFile != nil {
				err := s.dataFile.Close()
				StoreLogger.Logf("data file closed (err: %v)", err)
			}
			return
		}
	}
}

func (s *Store) handleInputEvent(ev Event) {
	if add, ok := ev.(*EntryAdded); ok {
		add.ID = entryID(s.seq, add.Entry)
	}
	if err := s.writeEvent(ev); err != nil {
		s.enqueueOutputEvent(&IOError{Err: err})
		return
	}
	if _, ok := ev.(*EntryAdded); ok {
		s.seq++
	}
	s.enqueueOutputEvent(ev)
}

// drainInput writes requests that were sent before Close.
func (s *Store) drainInput() {
	for {
		select {
		case ev := <-s.eventsIn:
			s.handleInputEvent(ev)
		default:
			return
		}
	}
}

func (s *Store) enqueueOutputEvent(ev Event) {
	s.eventQueue.PushBack(ev)
}

func (s *Store) queuedOutputEvent() (chan Event, Event) {
	first := s.eventQueue.Front()
	if first == nil {
		return nil, nil
	}
	return s.eventsOut, first.Value.(Event)
}

func (s *Store) popOutputEvent() {
	s.eventQueue.Remove(s.eventQueue.Front())
}

func (s *Store) writeEvent(ev Event) error {
	if err := s.initFile(); err != nil {
		return err
	}
	return writeEvent(s.writer, ev)
}

func (s *Store) initFile() error {
	if s.dataFile != nil {
		return nil // already exists
	}

	if err := s.fs.MkdirAll(s.dataDir, 0700); err != nil {
		return err
	}
	filename := filepath.Join(s.dataDir, FileName)
	f, err := s.fs.OpenFile(filename, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return err
	}
	StoreLogger.Logf("data file opened: %s", filename)
	s.dataFile = f
	s.reader = json.NewDecoder(f)
	end, damaged := s.replay()
	s.writer = json.NewEncoder(f)
	// New events go after the last complete record.
	if damaged {
		StoreLogger.Logf("truncating damaged log at offset %d", end)
		if err := f.Truncate(end); err != nil {
			return err
		}
	}
	_, err = f.Seek(0, io.SeekEnd)
	return err
}

// replay loads the log and sends the entries that survive the last clear.
// It returns the offset just past the last valid record, and whether
// anything unreadable follows it.
func (s *Store) replay() (end int64, damaged bool) {
	var (
		entries []*EntryAdded
		count   int
	)
	for {
		ev, err := readEvent(s.reader)
		if err == io.EOF {
			break
		}
		if err != nil {
			StoreLogger.Logf("decode error: %v", err)
			damaged = true
			break
		}
		end = s.reader.InputOffset()
		count++
		switch ev := ev.(type) {
		case *EntryAdded:
			ev.ID = entryID(s.seq, ev.Entry)
			ev.Replay = true
			s.seq++
			entries = append(entries, ev)
		case *HistoryCleared:
			entries = entries[:0]
		}
	}
	for _, ev := range entries {
		s.enqueueOutputEvent(ev)
	}
	StoreLogger.Logf("replay done: %d events, %d entries", count, len(entries))
	return end, damaged
}

// ReadAll returns the entries of the log in datadir without starting a store.
// Like replay, it stops at the first damaged record.
func ReadAll(fs afero.Fs, datadir string) ([]Entry, error) {
	f, err := fs.Open(filepath.Join(datadir, FileName))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []Entry
	dec := json.NewDecoder(f)
	for {
		ev, err := readEvent(dec)
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			StoreLogger.Logf("decode error: %v", err)
			return entries, nil
		}
		switch ev := ev.(type) {
		case *EntryAdded:
			entries = append(entries, ev.Entry)
		case *HistoryCleared:
			entries = entries[:0]
		}
	}
}
