package mcp

import (
	"encoding/json"
	"errors"
	"fmt"

	"caselaw/internal/envelope"

	"github.com/google/uuid"
)

// handleMessage processes an incoming MCP message and returns a response
func (s *Server) handleMessage(msg *Message) *Message {
	if msg.IsRequest() {
		return s.handleRequest(msg)
	}

	if msg.IsNotification() {
		s.handleNotification(msg)
		return nil
	}

	return NewErrorMessage(msg.Id, InvalidRequest, "invalid message: not a request or notification", nil)
}

// handleRequest handles a JSON-RPC request
func (s *Server) handleRequest(msg *Message) *Message {
	s.logger.Debug("handling request", "method", msg.Method, "id", msg.Id)

	switch msg.Method {
	case "initialize":
		return s.handleInitializeRequest(msg)
	case "tools/list":
		return s.handleListToolsRequest(msg)
	case "tools/call":
		return s.handleCallToolRequest(msg)
	default:
		return NewErrorMessage(msg.Id, MethodNotFound, fmt.Sprintf("method not found: %s", msg.Method), nil)
	}
}

// handleNotification handles a JSON-RPC notification
func (s *Server) handleNotification(msg *Message) {
	switch msg.Method {
	case "notifications/initialized":
		s.logger.Info("client initialized")
	default:
		s.logger.Debug("unknown notification", "method", msg.Method)
	}
}

// handleInitializeRequest handles the initialize request
func (s *Server) handleInitializeRequest(msg *Message) *Message {
	params, ok := msg.Params.(map[string]interface{})
	if !ok {
		params = make(map[string]interface{})
	}

	result, err := s.handleInitialize(params)
	if err != nil {
		return NewErrorMessage(msg.Id, InternalError, err.Error(), nil)
	}
	return NewResultMessage(msg.Id, result)
}

// handleListToolsRequest handles the tools/list request
func (s *Server) handleListToolsRequest(msg *Message) *Message {
	return NewResultMessage(msg.Id, map[string]interface{}{
		"tools": s.GetToolDefinitions(),
	})
}

// handleCallToolRequest handles the tools/call request
func (s *Server) handleCallToolRequest(msg *Message) *Message {
	params, ok := msg.Params.(map[string]interface{})
	if !ok {
		return NewErrorMessage(msg.Id, InvalidParams, "invalid params: expected object", nil)
	}

	result, err := s.handleCallTool(params)
	if err != nil {
		// Typed protocol errors keep their code; anything else is internal.
		var rpcErr *RPCError
		if errors.As(err, &rpcErr) {
			return NewErrorMessage(msg.Id, rpcErr.Code, rpcErr.Message, rpcErr.Data)
		}
		return NewErrorMessage(msg.Id, InternalError, err.Error(), nil)
	}
	return NewResultMessage(msg.Id, result)
}

// handleCallTool executes a tool. Every failure mode past this point is
// folded into the error envelope: schema violations, handler errors, and
// handler panics all come back as a well-formed payload.
func (s *Server) handleCallTool(params map[string]interface{}) (interface{}, error) {
	toolName, ok := params["name"].(string)
	if !ok {
		return nil, &RPCError{Code: InvalidParams, Message: "missing tool name"}
	}

	args, ok := params["arguments"].(map[string]interface{})
	if !ok {
		args = make(map[string]interface{})
	}

	tool, exists := s.tools[toolName]
	if !exists {
		return nil, &RPCError{Code: MethodNotFound, Message: fmt.Sprintf("unknown tool: %s", toolName)}
	}

	invocation := uuid.NewString()
	s.logger.Info("calling tool", "tool", toolName, "invocation", invocation)

	if err := validateArgs(tool.def.InputSchema, args); err != nil {
		s.logger.Warn("tool arguments rejected",
			"tool", toolName, "invocation", invocation, "error", err.Error())
		return contentResult(envelope.FromError(toolName, err))
	}

	resp := s.callHandler(tool, toolName, invocation, args)
	return contentResult(resp)
}

// callHandler runs the tool handler with panic containment.
func (s *Server) callHandler(tool registeredTool, toolName, invocation string, args map[string]interface{}) (resp *envelope.Response) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("tool handler panicked",
				"tool", toolName, "invocation", invocation, "panic", r)
			resp = envelope.FromError(toolName, fmt.Errorf("tool handler panicked: %v", r))
		}
	}()

	resp, err := tool.handler(args)
	if err != nil {
		s.logger.Warn("tool failed",
			"tool", toolName, "invocation", invocation, "error", err.Error())
		return envelope.FromError(toolName, err)
	}
	return resp
}

// contentResult wraps an envelope as MCP text content.
func contentResult(resp *envelope.Response) (interface{}, error) {
	jsonBytes, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("marshal response: %w", err)
	}
	return map[string]interface{}{
		"content": []map[string]interface{}{
			{
				"type": "text",
				"text": string(jsonBytes),
			},
		},
	}, nil
}
