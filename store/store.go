package store

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ahrtr/gocontainer/set"
	"github.com/gavrilovmiroslav/husk"
	"github.com/gavrilovmiroslav/husk/term"
	"github.com/samber/lo"
	bolt "go.etcd.io/bbolt"
)

var (
	ErrNotFound = errors.New("run not found")
	ErrFinished = errors.New("run already recorded")
)

var (
	runsBucket   = []byte("runs")
	eventsBucket = []byte("events")
)

const (
	KindCall   = "call"
	KindReturn = "return"
	KindFail   = "fail"
)

// Run describes one recorded evaluation.
type Run struct {
	ID      uint64    `json:"id"`
	Program string    `json:"program"`
	Label   string    `json:"label"`
	When    time.Time `json:"when"`
	Value   string    `json:"value,omitempty"`
	Steps   int       `json:"steps"`
	Err     string    `json:"error,omitempty"`
}

type Event struct {
	Kind   string   `json:"kind"`
	Depth  int      `json:"depth"`
	Name   string   `json:"name"`
	Args   []string `json:"args,omitempty"`
	Result string   `json:"result,omitempty"`
	Err    string   `json:"error,omitempty"`
}

func (e Event) String() string {
	switch e.Kind {
	case KindCall:
		return fmt.Sprintf("%d call %s %v", e.Depth, e.Name, e.Args)
	case KindFail:
		return fmt.Sprintf("%d fail %s: %s", e.Depth, e.Name, e.Err)
	default:
		return fmt.Sprintf("%d return %s", e.Depth, e.Result)
	}
}

type Store struct {
	db *bolt.DB
}

func Open(file string) (*Store, error) {
	db, err := bolt.Open(file, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, b := range [][]byte{runsBucket, eventsBucket} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Begin reserves a run for a program identified by digest. Events are kept
// in memory by the returned Recorder until Finish writes them.
func (s *Store) Begin(digest, label string) (*Recorder, error) {
	r := Recorder{
		store: s,
		run: Run{
			Program: digest,
			Label:   label,
			When:    time.Now().UTC(),
		},
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		id, err := tx.Bucket(runsBucket).NextSequence()
		if err != nil {
			return err
		}
		r.run.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) Runs() ([]Run, error) {
	var list []Run
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(runsBucket).ForEach(func(_, v []byte) error {
			var r Run
			if err := json.Unmarshal(v, &r); err != nil {
				return err
			}
			list = append(list, r)
			return nil
		})
	})
	return list, err
}

// Last returns the most recently recorded run.
func (s *Store) Last() (Run, error) {
	var r Run
	err := s.db.View(func(tx *bolt.Tx) error {
		_, v := tx.Bucket(runsBucket).Cursor().Last()
		if v == nil {
			return fmt.Errorf("last: %w", ErrNotFound)
		}
		return json.Unmarshal(v, &r)
	})
	return r, err
}

func (s *Store) Run(id uint64) (Run, error) {
	var r Run
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(runsBucket).Get(itob(id))
		if v == nil {
			return fmt.Errorf("%d: %w", id, ErrNotFound)
		}
		return json.Unmarshal(v, &r)
	})
	return r, err
}

func (s *Store) Events(id uint64) ([]Event, error) {
	var list []Event
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(eventsBucket).Bucket(itob(id))
		if b == nil {
			return fmt.Errorf("%d: %w", id, ErrNotFound)
		}
		return b.ForEach(func(_, v []byte) error {
			var e Event
			if err := json.Unmarshal(v, &e); err != nil {
				return err
			}
			list = append(list, e)
			return nil
		})
	})
	return list, err
}

func (s *Store) save(run Run, events []Event) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		key := itob(run.ID)
		runs := tx.Bucket(runsBucket)
		if runs.Get(key) != nil {
			return fmt.Errorf("%d: %w", run.ID, ErrFinished)
		}
		b, err := tx.Bucket(eventsBucket).CreateBucket(key)
		if err != nil {
			return err
		}
		for i, e := range events {
			buf, err := json.Marshal(e)
			if err != nil {
				return err
			}
			if err := b.Put(itob(uint64(i)), buf); err != nil {
				return err
			}
		}
		buf, err := json.Marshal(run)
		if err != nil {
			return err
		}
		return runs.Put(key, buf)
	})
}

// Recorder is a husk.Tracer collecting the events of one run.
type Recorder struct {
	store  *Store
	run    Run
	events []Event
}

var _ husk.Tracer = (*Recorder)(nil)

func (r *Recorder) ID() uint64 {
	return r.run.ID
}

func (r *Recorder) Enter(depth int, name string, args []term.Term) {
	r.events = append(r.events, Event{
		Kind:  KindCall,
		Depth: depth,
		Name:  name,
		Args: lo.Map(args, func(a term.Term, _ int) string {
			return a.String()
		}),
	})
}

func (r *Recorder) Leave(depth int, name string, res term.Term, err error) {
	e := Event{
		Kind:  KindReturn,
		Depth: depth,
		Name:  name,
	}
	if err != nil {
		e.Kind = KindFail
		e.Err = err.Error()
	} else if res != nil {
		e.Result = res.String()
	}
	r.events = append(r.events, e)
}

// Finish stores the run with its outcome and the events seen so far.
func (r *Recorder) Finish(res husk.Result, err error) error {
	r.run.Steps = res.Steps
	if res.Value != nil {
		r.run.Value = res.Value.String()
	}
	switch {
	case err != nil:
		r.run.Err = err.Error()
	case res.Diagnostic != nil:
		r.run.Err = res.Diagnostic.Error()
	}
	return r.store.save(r.run, r.events)
}

type Count struct {
	Name  string
	Calls int
}

type Summary struct {
	Calls     int
	Failures  int
	MaxDepth  int
	Functions []Count
}

// Summarize counts calls per function. Functions are listed by decreasing
// number of calls, then by name.
func Summarize(events []Event) Summary {
	var (
		sum    Summary
		seen   = set.New()
		counts = make(map[string]int)
	)
	for _, e := range events {
		switch e.Kind {
		case KindCall:
			sum.Calls++
			counts[e.Name]++
			seen.Add(e.Name)
		case KindFail:
			sum.Failures++
		}
		if e.Depth > sum.MaxDepth {
			sum.MaxDepth = e.Depth
		}
	}
	seen.Iterate(func(v interface{}) bool {
		name := v.(string)
		sum.Functions = append(sum.Functions, Count{Name: name, Calls: counts[name]})
		return true
	})
	sort.Slice(sum.Functions, func(i, j int) bool {
		a, b := sum.Functions[i], sum.Functions[j]
		if a.Calls != b.Calls {
			return a.Calls > b.Calls
		}
		return a.Name < b.Name
	})
	return sum
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
