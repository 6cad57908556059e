package pipelineruns

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/equinor/radix-console-api/api/metrics"
	"github.com/equinor/radix-console-api/internal/navigation"
	"github.com/hashicorp/golang-lru/v2/expirable"
	pipelinev1 "github.com/tektoncd/pipeline/pkg/apis/pipeline/v1"
)

// ViewerStore Log viewer sessions, evicted when the store is full or when they are older than the TTL
type ViewerStore struct {
	cache *expirable.LRU[string, *viewerSession]
	open  atomic.Int64
}

type viewerSession struct {
	mu              sync.Mutex
	id              string
	owner           string
	namespace       string
	pipelineRunName string
	pipelineRun     *pipelinev1.PipelineRun
	taskRuns        map[string]pipelinev1.TaskRun
	model           *navigation.Model
}

// NewViewerStore Constructor
func NewViewerStore(size int, ttl time.Duration) *ViewerStore {
	store := &ViewerStore{}
	store.cache = expirable.NewLRU[string, *viewerSession](size, store.onEvict, ttl)
	return store
}

// Len number of open log viewers
func (s *ViewerStore) Len() int {
	return s.cache.Len()
}

func (s *ViewerStore) add(session *viewerSession) {
	metrics.SetLogViewersOpen(int(s.open.Add(1)))
	s.cache.Add(session.id, session)
}

func (s *ViewerStore) get(id string) (*viewerSession, bool) {
	return s.cache.Get(id)
}

func (s *ViewerStore) remove(id string) bool {
	return s.cache.Remove(id)
}

func (s *ViewerStore) onEvict(_ string, _ *viewerSession) {
	metrics.SetLogViewersOpen(int(s.open.Add(-1)))
}
