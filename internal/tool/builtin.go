package tool

import (
	"context"
	"fmt"
	"time"

	"github.com/wsyeabsera/clear-ai-sub000/internal/types"
)

// EchoConfig configures the echo tool.
type EchoConfig struct {
	Prefix string `mapstructure:"prefix"`
}

// EchoTool returns its arguments unchanged, optionally prefixing the message.
// Useful for demos and for exercising the execution path in tests.
type EchoTool struct {
	config EchoConfig
}

// NewEchoTool creates an echo tool.
func NewEchoTool(cfg EchoConfig) *EchoTool {
	return &EchoTool{config: cfg}
}

func (t *EchoTool) Name() string        { return "echo" }
func (t *EchoTool) Description() string { return "Echoes the provided message back to the caller" }

func (t *EchoTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"message": map[string]any{
				"type":        "string",
				"description": "Message to echo back",
			},
		},
		"required": []string{"message"},
	}
}

func (t *EchoTool) Execute(ctx context.Context, args map[string]any) (map[string]any, error) {
	message, _ := args["message"].(string)
	if t.config.Prefix != "" {
		message = t.config.Prefix + message
	}
	return map[string]any{"message": message}, nil
}

func (t *EchoTool) Health(ctx context.Context) types.HealthStatus {
	return types.NewHealthStatus(types.HealthStateHealthy, "")
}

// CalcTool evaluates a basic arithmetic operation over two operands.
type CalcTool struct{}

// NewCalcTool creates a calc tool.
func NewCalcTool() *CalcTool {
	return &CalcTool{}
}

func (t *CalcTool) Name() string        { return "calc" }
func (t *CalcTool) Description() string { return "Performs basic arithmetic on two operands" }

func (t *CalcTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"op": map[string]any{
				"type": "string",
				"enum": []string{"add", "sub", "mul", "div"},
			},
			"a": map[string]any{"type": "number"},
			"b": map[string]any{"type": "number"},
		},
		"required": []string{"op", "a", "b"},
	}
}

func (t *CalcTool) Execute(ctx context.Context, args map[string]any) (map[string]any, error) {
	a, okA := toFloat(args["a"])
	b, okB := toFloat(args["b"])
	op, _ := args["op"].(string)

	if !okA || !okB {
		return nil, fmt.Errorf("operands a and b must be numbers")
	}

	var result float64
	switch op {
	case "add":
		result = a + b
	case "sub":
		result = a - b
	case "mul":
		result = a * b
	case "div":
		if b == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		result = a / b
	default:
		return nil, fmt.Errorf("unknown operation: %q", op)
	}

	return map[string]any{"result": result}, nil
}

func (t *CalcTool) Health(ctx context.Context) types.HealthStatus {
	return types.NewHealthStatus(types.HealthStateHealthy, "")
}

// WaitConfig configures the wait tool.
type WaitConfig struct {
	// MaxWait caps how long a single invocation may sleep.
	MaxWait time.Duration `mapstructure:"max_wait"`
}

// WaitTool sleeps for the requested duration, honoring cancellation. It
// exists to simulate long-running actions in demos and timeout tests.
type WaitTool struct {
	config WaitConfig
}

// NewWaitTool creates a wait tool. MaxWait defaults to 10s.
func NewWaitTool(cfg WaitConfig) *WaitTool {
	if cfg.MaxWait <= 0 {
		cfg.MaxWait = 10 * time.Second
	}
	return &WaitTool{config: cfg}
}

func (t *WaitTool) Name() string        { return "wait" }
func (t *WaitTool) Description() string { return "Waits for the requested number of milliseconds" }

func (t *WaitTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"duration_ms": map[string]any{
				"type":        "number",
				"description": "How long to wait, in milliseconds",
			},
		},
		"required": []string{"duration_ms"},
	}
}

func (t *WaitTool) Execute(ctx context.Context, args map[string]any) (map[string]any, error) {
	ms, ok := toFloat(args["duration_ms"])
	if !ok || ms < 0 {
		return nil, fmt.Errorf("duration_ms must be a non-negative number")
	}

	wait := time.Duration(ms) * time.Millisecond
	if wait > t.config.MaxWait {
		wait = t.config.MaxWait
	}

	select {
	case <-time.After(wait):
		return map[string]any{"waited_ms": wait.Milliseconds()}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (t *WaitTool) Health(ctx context.Context) types.HealthStatus {
	return types.NewHealthStatus(types.HealthStateHealthy, "")
}

// toFloat normalizes the numeric types JSON and YAML decoding produce.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
