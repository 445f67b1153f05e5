package tool

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wsyeabsera/clear-ai-sub000/internal/types"
)

// Registry is the tool catalog the planner plans against. The exact set of
// names it reports at plan-creation time is the set actions may reference;
// anything else is dropped as a hallucinated tool.
type Registry interface {
	// Register adds a tool to the registry
	Register(t Tool) error

	// Unregister removes a tool from the registry by name
	Unregister(name string) error

	// Get retrieves a tool by name
	Get(name string) (Tool, error)

	// GetAllTools returns descriptors for all registered tools, sorted by name
	GetAllTools() []Descriptor

	// GetToolNames returns all registered tool names, sorted
	GetToolNames() []string

	// GetToolSchema returns the parameter schema for a tool
	GetToolSchema(name string) (map[string]any, error)

	// Metrics returns execution metrics for a tool
	Metrics(name string) (Metrics, error)

	// Health returns the aggregate health of the registry
	Health(ctx context.Context) types.HealthStatus

	// HealthAll probes every tool concurrently
	HealthAll(ctx context.Context) map[string]types.HealthStatus
}

// ExecutionService invokes tools on behalf of the executor. Kept separate
// from Registry so execution backends can be swapped without touching the
// planner's catalog view.
type ExecutionService interface {
	// ExecuteTool runs a registered tool, bounded by timeout when positive.
	// Tool failures are reported inside the outcome; the error return is
	// reserved for invocation-level problems such as an unknown tool.
	ExecuteTool(ctx context.Context, name string, args map[string]any, timeout time.Duration) (*ExecutionOutcome, error)
}

// InMemoryRegistry implements Registry and ExecutionService with thread-safe
// in-process tools.
type InMemoryRegistry struct {
	mu      sync.RWMutex
	tools   map[string]Tool
	metrics map[string]*Metrics
}

// NewInMemoryRegistry creates an empty registry.
func NewInMemoryRegistry() *InMemoryRegistry {
	return &InMemoryRegistry{
		tools:   make(map[string]Tool),
		metrics: make(map[string]*Metrics),
	}
}

// Register adds a tool. Registering a duplicate name is an error.
func (r *InMemoryRegistry) Register(t Tool) error {
	if t == nil {
		return types.NewError(types.TOOL_MANIFEST_INVALID, "tool cannot be nil")
	}

	name := t.Name()
	if name == "" {
		return types.NewError(types.TOOL_MANIFEST_INVALID, "tool name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[name]; exists {
		return types.NewError(types.TOOL_ALREADY_REGISTERED,
			fmt.Sprintf("tool %q already registered", name))
	}

	r.tools[name] = t
	r.metrics[name] = NewMetrics()

	return nil
}

// Unregister removes a tool by name.
func (r *InMemoryRegistry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[name]; !exists {
		return types.NewError(types.TOOL_NOT_FOUND, fmt.Sprintf("tool %q not found", name))
	}

	delete(r.tools, name)
	delete(r.metrics, name)

	return nil
}

// Get retrieves a tool by name.
func (r *InMemoryRegistry) Get(name string) (Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, exists := r.tools[name]
	if !exists {
		return nil, types.NewError(types.TOOL_NOT_FOUND, fmt.Sprintf("tool %q not found", name))
	}

	return t, nil
}

// GetAllTools returns descriptors for every registered tool, sorted by name
// so planner prompts are deterministic.
func (r *InMemoryRegistry) GetAllTools() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	descriptors := make([]Descriptor, 0, len(r.tools))
	for _, t := range r.tools {
		descriptors = append(descriptors, NewDescriptor(t))
	}

	sort.Slice(descriptors, func(i, j int) bool {
		return descriptors[i].Name < descriptors[j].Name
	})

	return descriptors
}

// GetToolNames returns the sorted names of every registered tool.
func (r *InMemoryRegistry) GetToolNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// GetToolSchema returns the parameter schema for a tool.
func (r *InMemoryRegistry) GetToolSchema(name string) (map[string]any, error) {
	t, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return t.Parameters(), nil
}

// Metrics returns a copy of the execution metrics for a tool.
func (r *InMemoryRegistry) Metrics(name string) (Metrics, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, exists := r.metrics[name]
	if !exists {
		return Metrics{}, types.NewError(types.TOOL_NOT_FOUND, fmt.Sprintf("tool %q not found", name))
	}

	return *m, nil
}

// ExecuteTool runs a registered tool with the given arguments. A positive
// timeout bounds the call through context cancellation; tools are expected to
// honor it. Tool errors and timeouts settle into the outcome.
func (r *InMemoryRegistry) ExecuteTool(ctx context.Context, name string, args map[string]any, timeout time.Duration) (*ExecutionOutcome, error) {
	t, err := r.Get(name)
	if err != nil {
		return nil, err
	}

	execCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	result, execErr := t.Execute(execCtx, args)
	duration := time.Since(start)

	r.mu.Lock()
	if m, exists := r.metrics[name]; exists {
		if execErr != nil {
			m.RecordFailure(duration)
		} else {
			m.RecordSuccess(duration)
		}
	}
	r.mu.Unlock()

	if execErr != nil {
		msg := execErr.Error()
		if errors.Is(execErr, context.DeadlineExceeded) || errors.Is(execCtx.Err(), context.DeadlineExceeded) {
			msg = fmt.Sprintf("tool %q timed out after %s", name, timeout)
		}
		return &ExecutionOutcome{
			Success:       false,
			Error:         msg,
			ExecutionTime: duration,
		}, nil
	}

	return &ExecutionOutcome{
		Success:       true,
		Result:        result,
		ExecutionTime: duration,
	}, nil
}

// HealthAll probes every registered tool concurrently and returns the status
// per tool name.
func (r *InMemoryRegistry) HealthAll(ctx context.Context) map[string]types.HealthStatus {
	r.mu.RLock()
	tools := make(map[string]Tool, len(r.tools))
	for name, t := range r.tools {
		tools[name] = t
	}
	r.mu.RUnlock()

	results := make(chan struct {
		name   string
		status types.HealthStatus
	}, len(tools))

	g, gCtx := errgroup.WithContext(ctx)
	for name, t := range tools {
		name := name
		t := t
		g.Go(func() error {
			results <- struct {
				name   string
				status types.HealthStatus
			}{name, t.Health(gCtx)}
			return nil
		})
	}

	// Probes never return errors; they report through their status.
	_ = g.Wait()
	close(results)

	statuses := make(map[string]types.HealthStatus, len(tools))
	for res := range results {
		statuses[res.name] = res.status
	}

	return statuses
}

// Health aggregates tool health: healthy when every tool is healthy,
// unhealthy when the registry is empty or no tool is healthy, degraded
// otherwise.
func (r *InMemoryRegistry) Health(ctx context.Context) types.HealthStatus {
	statuses := r.HealthAll(ctx)

	if len(statuses) == 0 {
		return types.NewHealthStatus(types.HealthStateUnhealthy, "no tools registered")
	}

	healthy := 0
	for _, status := range statuses {
		if status.IsHealthy() {
			healthy++
		}
	}

	switch healthy {
	case len(statuses):
		return types.NewHealthStatus(types.HealthStateHealthy, "")
	case 0:
		return types.NewHealthStatus(types.HealthStateUnhealthy, "all tools unhealthy")
	default:
		return types.NewHealthStatus(types.HealthStateDegraded,
			fmt.Sprintf("%d of %d tools healthy", healthy, len(statuses)))
	}
}

var (
	_ Registry         = (*InMemoryRegistry)(nil)
	_ ExecutionService = (*InMemoryRegistry)(nil)
)
