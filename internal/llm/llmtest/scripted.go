// Package llmtest provides a scripted llm.Gateway for tests.
package llmtest

import (
	"context"
	"strings"
	"sync"

	"github.com/alexanderramin/normgate/internal/apperr"
	"github.com/alexanderramin/normgate/internal/llm"
)

// Call records one gateway invocation.
type Call struct {
	Op       string
	Messages []llm.Message
	Mode     llm.Mode
	Schema   string
}

// Prompt returns the concatenated message contents of the call.
func (c Call) Prompt() string { return llm.Transcript(c.Messages) }

// Reply is a scripted gateway outcome. Text is returned by Complete and
// decoded by CompleteStructured; Err takes precedence.
type Reply struct {
	Text  string
	Err   error
	Tools *llm.ToolResult
}

// ScriptedGateway replays queued replies in order. When Handler is set it is
// consulted instead of the queue, which suits concurrent callers whose order
// is not deterministic.
//
//	gw := llmtest.New(`{"a":1}`, "not json")
//	gw.Handler = func(c llmtest.Call) llmtest.Reply { ... }
type ScriptedGateway struct {
	mu      sync.Mutex
	queue   []Reply
	calls   []Call
	Handler func(Call) Reply
	// Fallback is returned once the queue is drained.
	Fallback Reply
}

var _ llm.Gateway = (*ScriptedGateway)(nil)

// New returns a gateway that replies with texts in order.
func New(texts ...string) *ScriptedGateway {
	g := &ScriptedGateway{}
	g.Push(texts...)
	return g
}

// Push queues text replies.
func (g *ScriptedGateway) Push(texts ...string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, t := range texts {
		g.queue = append(g.queue, Reply{Text: t})
	}
}

// PushReply queues arbitrary replies.
func (g *ScriptedGateway) PushReply(replies ...Reply) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.queue = append(g.queue, replies...)
}

// Calls returns a copy of every recorded call.
func (g *ScriptedGateway) Calls() []Call {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Call, len(g.calls))
	copy(out, g.calls)
	return out
}

// CallCount returns the number of calls made so far.
func (g *ScriptedGateway) CallCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

// CountOp returns the number of calls made through op.
func (g *ScriptedGateway) CountOp(op string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, c := range g.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// CountContaining returns the number of calls whose prompt contains substr.
func (g *ScriptedGateway) CountContaining(substr string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, c := range g.calls {
		if strings.Contains(c.Prompt(), substr) {
			n++
		}
	}
	return n
}

func (g *ScriptedGateway) next(c Call) Reply {
	g.mu.Lock()
	g.calls = append(g.calls, c)
	handler := g.Handler
	if handler == nil {
		defer g.mu.Unlock()
		if len(g.queue) == 0 {
			return g.Fallback
		}
		r := g.queue[0]
		g.queue = g.queue[1:]
		return r
	}
	g.mu.Unlock()
	return handler(c)
}

func (g *ScriptedGateway) Complete(ctx context.Context, messages []llm.Message, mode llm.Mode) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", apperr.Gateway("llmtest.Complete", err)
	}
	r := g.next(Call{Op: "complete", Messages: messages, Mode: mode})
	if r.Err != nil {
		return "", r.Err
	}
	return r.Text, nil
}

func (g *ScriptedGateway) CompleteStructured(ctx context.Context, messages []llm.Message, schema llm.Schema, mode llm.Mode, out any) error {
	if err := ctx.Err(); err != nil {
		return apperr.Gateway("llmtest.CompleteStructured", err)
	}
	r := g.next(Call{Op: "complete_structured", Messages: messages, Mode: mode, Schema: schema.Name})
	if r.Err != nil {
		return r.Err
	}
	if err := llm.DecodeJSON(r.Text, out); err != nil {
		return apperr.Gateway("llmtest.CompleteStructured", err)
	}
	return nil
}

func (g *ScriptedGateway) CompleteWithTools(ctx context.Context, messages []llm.Message, _ []llm.Tool, mode llm.Mode) (*llm.ToolResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperr.Gateway("llmtest.CompleteWithTools", err)
	}
	r := g.next(Call{Op: "complete_with_tools", Messages: messages, Mode: mode})
	if r.Err != nil {
		return nil, r.Err
	}
	if r.Tools != nil {
		return r.Tools, nil
	}
	return &llm.ToolResult{Content: r.Text, FinishReason: "stop"}, nil
}
