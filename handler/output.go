package handler

import (
	"io"
	"sync"
	"time"

	"github.com/philipp01105/nlog/v2/core"
	"github.com/philipp01105/nlog/v2/formatter"
)

// queueConfig holds the async settings shared by the writer-backed handlers
type queueConfig struct {
	async          bool
	bufferSize     int
	overflowPolicy map[core.Level]OverflowPolicy
	blockTimeout   time.Duration
	drainTimeout   time.Duration
}

func (c *queueConfig) setDefaults() {
	if c.bufferSize <= 0 {
		c.bufferSize = 1000
	}
	if c.overflowPolicy == nil {
		c.overflowPolicy = DefaultLevelPolicy()
	}
	if c.blockTimeout == 0 {
		c.blockTimeout = 100 * time.Millisecond
	}
	if c.drainTimeout == 0 {
		c.drainTimeout = 5 * time.Second
	}
}

// output formats entries onto a writer, either inline or from a
// background goroutine fed by a bounded queue.
type output struct {
	writer          io.Writer
	formatter       formatter.Formatter
	writerFormatter formatter.WriterFormatter
	cfg             queueConfig
	mu              sync.Mutex
	stats           *Stats
	queue           chan *core.Entry
	closed          chan struct{}
	closeOnce       sync.Once
	wg              sync.WaitGroup
}

func newOutput(w io.Writer, f formatter.Formatter, cfg queueConfig) *output {
	if f == nil {
		f = formatter.NewTextFormatter(formatter.Config{})
	}
	cfg.setDefaults()

	o := &output{
		writer:    w,
		formatter: f,
		cfg:       cfg,
		stats:     NewStats(),
		closed:    make(chan struct{}),
	}
	// Cache WriterFormatter for the direct write path
	o.writerFormatter, _ = f.(formatter.WriterFormatter)

	if cfg.async {
		o.queue = make(chan *core.Entry, cfg.bufferSize)
		o.wg.Add(1)
		go o.process()
	}
	return o
}

func (o *output) isClosed() bool {
	select {
	case <-o.closed:
		return true
	default:
		return false
	}
}

func (o *output) handle(entry *core.Entry) error {
	if !o.cfg.async || o.isClosed() {
		return o.write(entry)
	}

	policy, ok := o.cfg.overflowPolicy[entry.Level]
	if !ok {
		policy = DropNewest
	}

	select {
	case o.queue <- entry:
		return nil
	default:
	}

	switch policy {
	case Block:
		timer := time.NewTimer(o.cfg.blockTimeout)
		defer timer.Stop()
		select {
		case o.queue <- entry:
			return nil
		case <-timer.C:
			// Timeout - fall back to synchronous write
			o.stats.blocked.Add(1)
			return o.write(entry)
		case <-o.closed:
			return o.write(entry)
		}

	case DropOldest:
		select {
		case old := <-o.queue:
			o.stats.incDropped(old.Level)
		default:
		}
		select {
		case o.queue <- entry:
		default:
			o.stats.incDropped(entry.Level)
		}
		return nil

	default:
		o.stats.incDropped(entry.Level)
		return nil
	}
}

// write formats and writes an entry
func (o *output) write(entry *core.Entry) error {
	var err error
	if o.writerFormatter != nil {
		o.mu.Lock()
		err = o.writerFormatter.FormatTo(entry, o.writer)
		o.mu.Unlock()
	} else {
		var data []byte
		data, err = o.formatter.Format(entry)
		if err == nil {
			o.mu.Lock()
			_, err = o.writer.Write(data)
			o.mu.Unlock()
		}
	}

	if err != nil {
		o.stats.failed.Add(1)
		return err
	}
	o.stats.processed.Add(1)
	return nil
}

// process handles async log processing
func (o *output) process() {
	defer o.wg.Done()

	for {
		select {
		case entry := <-o.queue:
			_ = o.write(entry)
			core.PutEntry(entry)
		case <-o.closed:
			o.drain()
			return
		}
	}
}

func (o *output) drain() {
	deadline := time.NewTimer(o.cfg.drainTimeout)
	defer deadline.Stop()
	for {
		select {
		case entry := <-o.queue:
			_ = o.write(entry)
			core.PutEntry(entry)
		case <-deadline.C:
			return
		default:
			return
		}
	}
}

// close stops the background goroutine after draining the queue. The
// queue channel stays open so late Handle calls never panic; they are
// written synchronously instead.
func (o *output) close() {
	o.closeOnce.Do(func() {
		close(o.closed)
		o.wg.Wait()
	})
}
