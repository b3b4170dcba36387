package tools

import (
	"context"

	"github.com/google/uuid"

	"smartbiz-be/pkg/ai/intent"
)

// Status of a tool invocation.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusPending = "pending"
)

// Result is the uniform envelope every tool invocation is normalized into.
type Result struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

func Success(message string, data map[string]interface{}) *Result {
	if data == nil {
		data = map[string]interface{}{}
	}
	return &Result{Status: StatusSuccess, Message: message, Data: data}
}

func Error(message string) *Result {
	return &Result{Status: StatusError, Message: message, Data: map[string]interface{}{}}
}

func Pending(message string, data map[string]interface{}) *Result {
	if data == nil {
		data = map[string]interface{}{}
	}
	return &Result{Status: StatusPending, Message: message, Data: data}
}

// Tool is one intent-triggered back-end call.
type Tool interface {
	Execute(ctx context.Context, userId uuid.UUID, entities map[string]interface{}, query string) *Result
}

// ToolFunc adapts a plain function to the Tool interface.
type ToolFunc func(ctx context.Context, userId uuid.UUID, entities map[string]interface{}, query string) *Result

func (f ToolFunc) Execute(ctx context.Context, userId uuid.UUID, entities map[string]interface{}, query string) *Result {
	return f(ctx, userId, entities, query)
}

// Router maps an intent to zero-or-one back-end tool.
type Router struct {
	tools map[intent.Intent]Tool
}

func NewRouter() *Router {
	return &Router{tools: make(map[intent.Intent]Tool)}
}

func (r *Router) Register(it intent.Intent, tool Tool) {
	r.tools[it] = tool
}

// Has reports whether a tool is registered for the intent.
func (r *Router) Has(it intent.Intent) bool {
	_, ok := r.tools[it]
	return ok
}

// Route invokes the tool registered for the intent. Intents without a
// registered tool get a pending "coming soon" envelope.
func (r *Router) Route(ctx context.Context, it intent.Intent, userId uuid.UUID, entities map[string]interface{}, query string) *Result {
	tool, ok := r.tools[it]
	if !ok {
		return Pending("This feature is coming soon.", nil)
	}
	return tool.Execute(ctx, userId, entities, query)
}
