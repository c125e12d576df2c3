package job

import (
	"fmt"
	"sync"
)

// Filter selects jobs by tag and status. Empty sets match everything.
type Filter struct {
	Tags   map[string]struct{}
	States map[Status]struct{}
}

// Collection is an ordered name->job mapping with derived indices for
// status and tag lookups. Reads and writes may come from different
// goroutines (a poll loop mutating statuses, an HTTP handler listing jobs),
// so every accessor takes the lock.
type Collection struct {
	mu       sync.RWMutex
	jobs     map[string]*Job
	order    []string
	byStatus map[Status]map[string]*Job
	byTag    map[string]map[string]*Job
	tagOrder []string
}

func NewCollection() *Collection {
	return &Collection{
		jobs:     make(map[string]*Job),
		byStatus: make(map[Status]map[string]*Job),
		byTag:    make(map[string]map[string]*Job),
	}
}

func (c *Collection) Add(j *Job) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.jobs[j.Name]; ok {
		return fmt.Errorf("duplicate job name: %s", j.Name)
	}
	c.jobs[j.Name] = j
	c.order = append(c.order, j.Name)
	index(c.byStatus, j.Status, j)
	for _, tag := range j.Tags {
		if _, ok := c.byTag[tag]; !ok {
			c.tagOrder = append(c.tagOrder, tag)
		}
		index(c.byTag, tag, j)
	}
	return nil
}

// Get returns a copy of the named job. Jobs only leave the collection by
// value so readers never see a concurrent status update mid-field.
func (c *Collection) Get(name string) (Job, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	j, ok := c.jobs[name]
	if !ok {
		return Job{}, false
	}
	return *j, true
}

func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.jobs)
}

// Names returns job names in insertion order.
func (c *Collection) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, len(c.order))
	copy(names, c.order)
	return names
}

// Jobs returns an insertion-ordered snapshot of job copies.
func (c *Collection) Jobs() []Job {
	c.mu.RLock()
	defer c.mu.RUnlock()
	jobs := make([]Job, 0, len(c.order))
	for _, name := range c.order {
		jobs = append(jobs, *c.jobs[name])
	}
	return jobs
}

// Tags returns tracked tags in first-seen order.
func (c *Collection) Tags() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	tags := make([]string, len(c.tagOrder))
	copy(tags, c.tagOrder)
	return tags
}

// SetStatus moves a job between status buckets.
func (c *Collection) SetStatus(name string, status Status) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	j, ok := c.jobs[name]
	if !ok {
		return fmt.Errorf("job not found: %s", name)
	}
	delete(c.byStatus[j.Status], name)
	j.Status = status
	index(c.byStatus, status, j)
	return nil
}

func (c *Collection) SetExitCode(name string, code int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	j, ok := c.jobs[name]
	if !ok {
		return fmt.Errorf("job not found: %s", name)
	}
	j.ExitCode = code
	return nil
}

func (c *Collection) CountStatus(status Status) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byStatus[status])
}

func (c *Collection) CountTag(tag string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byTag[tag])
}

func (c *Collection) CountType(typ Type) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, j := range c.jobs {
		if j.Type == typ {
			n++
		}
	}
	return n
}

// Match returns copies of the jobs satisfying the filter, in insertion order.
func (c *Collection) Match(f Filter) []Job {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []Job
	for _, name := range c.order {
		j := c.jobs[name]
		if len(f.States) > 0 {
			if _, ok := f.States[j.Status]; !ok {
				continue
			}
		}
		if len(f.Tags) > 0 && !hasAnyTag(j, f.Tags) {
			continue
		}
		out = append(out, *j)
	}
	return out
}

func hasAnyTag(j *Job, tags map[string]struct{}) bool {
	for _, t := range j.Tags {
		if _, ok := tags[t]; ok {
			return true
		}
	}
	return false
}

func index[K comparable](m map[K]map[string]*Job, key K, j *Job) {
	if _, ok := m[key]; !ok {
		m[key] = make(map[string]*Job)
	}
	m[key][j.Name] = j
}
