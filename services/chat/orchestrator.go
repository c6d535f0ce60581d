// Package chat sequences one conversation turn: guardrail gate, assistant
// invocation, tool dispatch, response assembly.
package chat

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"imovelmatch/models"
	"imovelmatch/services/assistant"
	"imovelmatch/services/guardrail"
	"imovelmatch/services/session"
	"imovelmatch/services/toolset"
	"imovelmatch/utils"
)

// RefusalMessage is the fixed reply for turns rejected by the guardrail.
const RefusalMessage = "Sorry, I can only help with questions related to real estate."

// ErrRetriesExhausted reports that a tool invocation kept failing past the
// configured retry bound. The turn fails; the session survives.
var ErrRetriesExhausted = errors.New("tool retry bound exceeded")

// guided is the shape of retryable errors raised by the tool surface.
type guided interface {
	Guidance() string
}

// Orchestrator owns the per-turn pipeline and the session history.
type Orchestrator struct {
	Gate       guardrail.Gate
	Assistant  assistant.Client
	Dispatcher *toolset.Dispatcher
	Sessions   session.Store

	// MaxToolRetries bounds re-prompting after retryable tool failures
	// within a single turn.
	MaxToolRetries int
}

func NewOrchestrator(gate guardrail.Gate, client assistant.Client, dispatcher *toolset.Dispatcher, sessions session.Store, maxRetries int) *Orchestrator {
	return &Orchestrator{
		Gate:           gate,
		Assistant:      client,
		Dispatcher:     dispatcher,
		Sessions:       sessions,
		MaxToolRetries: maxRetries,
	}
}

// turnState accumulates the tables produced by tool calls during one turn.
type turnState struct {
	properties string
	slots      string
}

// HandleTurn resolves one user turn end to end. A nil response with a nil
// error means the input was blank and no turn was produced. Oracle failures
// and exhausted retries come back as errors; the session is left as it was
// before the turn.
func (o *Orchestrator) HandleTurn(ctx context.Context, sessionID, userName, input string) (*models.ChatResponse, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}

	sess := o.loadSession(ctx, sessionID, userName)

	violation, err := o.Gate.Check(ctx, input, sess.Messages)
	if err != nil {
		utils.GetLogger().Error("guardrail check failed", zap.String("session", sess.ID), zap.Error(err))
		return nil, err
	}
	if violation {
		// The turn never reaches the assistant or any tool, and leaves no
		// trace in the history.
		return &models.ChatResponse{SessionID: sess.ID, Response: RefusalMessage}, nil
	}

	conv := o.Assistant.Start(sess.Messages, sess.UserName)
	reply, err := conv.SendText(ctx, input)
	if err != nil {
		return nil, err
	}

	var state turnState
	failures := 0
	pending := append([]models.ToolCall(nil), reply.Calls...)
	for len(pending) > 0 {
		call := pending[0]
		pending = pending[1:]

		payload, retryable := o.executeCall(ctx, call, &state)
		if retryable {
			failures++
			if failures > o.MaxToolRetries {
				utils.GetLogger().Warn("tool retries exhausted",
					zap.String("session", sess.ID), zap.String("tool", call.Name))
				return nil, ErrRetriesExhausted
			}
		}

		reply, err = conv.SendToolResult(ctx, call.Name, payload)
		if err != nil {
			return nil, err
		}
		pending = append(pending, reply.Calls...)
	}

	resp := &models.ChatResponse{SessionID: sess.ID, Response: reply.Text}

	// Attach a table only when it differs from the one last shown in this
	// session, so repeated queries do not re-emit identical output.
	if state.properties != "" && state.properties != sess.LastProperties {
		resp.Properties = state.properties
		sess.LastProperties = state.properties
	}
	if state.slots != "" && state.slots != sess.LastSlots {
		resp.Slots = state.slots
		sess.LastSlots = state.slots
	}

	sess.Messages = append(sess.Messages,
		models.Message{Role: models.RoleUser, Content: input},
		models.Message{Role: models.RoleAssistant, Content: reply.Text},
	)
	if err := o.Sessions.Save(ctx, sess); err != nil {
		utils.GetLogger().Error("failed to save session", zap.String("session", sess.ID), zap.Error(err))
	}

	return resp, nil
}

// EndSession discards a session's state.
func (o *Orchestrator) EndSession(ctx context.Context, sessionID string) error {
	return o.Sessions.Delete(ctx, sessionID)
}

// executeCall validates and dispatches one oracle tool call. The returned
// payload goes back to the oracle; retryable reports whether the call failed
// with guidance and counts against the retry bound.
func (o *Orchestrator) executeCall(ctx context.Context, call models.ToolCall, state *turnState) (payload map[string]any, retryable bool) {
	req, err := toolset.Decode(call)
	if err == nil {
		var res *toolset.Result
		res, err = o.Dispatcher.Execute(ctx, req)
		if err == nil {
			switch res.Kind {
			case toolset.KindProperties:
				state.properties = res.Table
				return map[string]any{"result": res.Table}, false
			case toolset.KindSlots:
				state.slots = res.Table
				return map[string]any{"result": res.Table}, false
			default:
				return map[string]any{"result": res.Message}, false
			}
		}
	}

	var g guided
	if errors.As(err, &g) {
		return map[string]any{"error": g.Guidance()}, true
	}
	// Store or programming failure: not retryable by the oracle.
	utils.GetLogger().Error("tool execution failed", zap.String("tool", call.Name), zap.Error(err))
	return map[string]any{"error": "internal error executing the tool"}, true
}

func (o *Orchestrator) loadSession(ctx context.Context, sessionID, userName string) *models.Session {
	if sessionID != "" {
		sess, err := o.Sessions.Get(ctx, sessionID)
		if err == nil {
			if userName != "" {
				sess.UserName = userName
			}
			return sess
		}
		if !errors.Is(err, session.ErrNotFound) {
			utils.GetLogger().Warn("session lookup failed", zap.String("session", sessionID), zap.Error(err))
		}
	}
	return session.New(userName)
}
