// Package mcp serves the alumni dashboard as a line-delimited JSON-RPC 2.0
// tool server over stdio.
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"k8s.io/klog/v2"

	"github.com/cncf/automation/alumni-dashboard/pkg/alumni"
	"github.com/cncf/automation/alumni-dashboard/pkg/distribution"
)

// JSON-RPC structures -------------------------------------------------------

type jsonRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      json.RawMessage `json:"id,omitempty"`
}

type jsonRPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *jsonRPCError   `json:"error,omitempty"`
	ID      json.RawMessage `json:"id,omitempty"`
}

type jsonRPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Error codes.
const (
	codeToolError       = -32000
	codeMethodNotFound  = -32601
	codeInvalidParams   = -32602
	codeDataUnavailable = -32603
)

// Server state --------------------------------------------------------------

// Snapshot is what the tools answer from: the aggregate dataset and the
// generated directory.
type Snapshot struct {
	Dataset *distribution.Dataset
	Records []alumni.Record
}

// LoadFunc produces the snapshot. It runs once, in the background.
type LoadFunc func(ctx context.Context) (*Snapshot, error)

type serverState struct {
	once    sync.Once
	ready   chan struct{}
	mu      sync.RWMutex
	data    *Snapshot
	loadErr error
}

func newServerState() *serverState {
	return &serverState{ready: make(chan struct{})}
}

func (s *serverState) setSnapshot(snap *Snapshot, err error) {
	s.once.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.data = snap
		s.loadErr = err
		close(s.ready)
	})
}

func (s *serverState) waitForSnapshot(ctx context.Context) (*Snapshot, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.ready:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if s.data == nil || s.data.Dataset == nil {
		return nil, errors.New("dataset not loaded")
	}
	return s.data, nil
}

// Server ----------------------------------------------------------------------

// Server answers tool calls about one dashboard.
type Server struct {
	load  LoadFunc
	state *serverState

	outputMu sync.Mutex
	out      io.Writer
}

// NewServer returns a server whose data comes from load.
func NewServer(load LoadFunc) *Server {
	return &Server{
		load:  load,
		state: newServerState(),
	}
}

// Serve reads requests from r and writes responses and notifications to w
// until r is exhausted or ctx is cancelled. Loading runs concurrently with
// request handling; tool calls block until it finishes.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	log := klog.FromContext(ctx)
	s.out = w

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		snap, err := s.load(ctx)
		s.state.setSnapshot(snap, err)
		if err != nil {
			log.Error(err, "Error loading dataset")
			s.sendNotification("notifications/serverReady", map[string]interface{}{"error": err.Error()})
			return
		}
		log.Info("Dataset loaded", "records", len(snap.Records))
		s.sendNotification("notifications/serverReady", map[string]interface{}{})
	}()

	// The reader goroutine is not waited for: a read from stdin cannot be
	// interrupted and ends when the process exits.
	lines := make(chan string)
	var scanErr error
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		buf := make([]byte, 0, 1024*1024)
		scanner.Buffer(buf, 1024*1024)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr = scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				if scanErr != nil {
					return fmt.Errorf("read requests: %w", scanErr)
				}
				return nil
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}

			var req jsonRPCRequest
			if err := json.Unmarshal([]byte(line), &req); err != nil {
				log.Error(err, "Unable to parse JSON-RPC request")
				continue
			}
			log.V(2).Info("Handling request", "method", req.Method)

			if resp := s.handleRequest(ctx, &req); resp != nil {
				s.writeResponse(ctx, resp)
			}
		}
	}
}

func (s *Server) handleRequest(ctx context.Context, req *jsonRPCRequest) *jsonRPCResponse {
	switch req.Method {
	case "initialize":
		return &jsonRPCResponse{
			JSONRPC: "2.0",
			Result: mustJSON(map[string]interface{}{
				"protocolVersion": "2024-11-05",
				"capabilities": map[string]interface{}{
					"tools": map[string]interface{}{},
				},
				"serverInfo": map[string]string{
					"name":    "alumni-dashboard",
					"version": "0.1.0",
				},
			}),
			ID: req.ID,
		}
	case "notifications/initialized":
		return nil
	case "tools/list":
		tools := make([]map[string]interface{}, 0, len(advertisedTools))
		for _, name := range advertisedTools {
			def := toolCatalog[name]
			tools = append(tools, map[string]interface{}{
				"name":        def.Name,
				"description": def.Description,
				"inputSchema": toolInputSchema(def),
			})
		}
		return &jsonRPCResponse{
			JSONRPC: "2.0",
			Result:  mustJSON(map[string]interface{}{"tools": tools}),
			ID:      req.ID,
		}
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	default:
		// Notifications never get a reply, not even an error.
		if len(req.ID) == 0 {
			return nil
		}
		return errorResponse(req.ID, codeMethodNotFound, "Method not found", nil)
	}
}

func (s *Server) handleToolsCall(ctx context.Context, req *jsonRPCRequest) *jsonRPCResponse {
	var payload struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}
	if err := json.Unmarshal(req.Params, &payload); err != nil {
		return errorResponse(req.ID, codeInvalidParams, "Invalid params", nil)
	}

	def, ok := toolCatalog[payload.Name]
	if !ok {
		return errorResponse(req.ID, codeMethodNotFound, "Tool not found", nil)
	}

	snap, err := s.state.waitForSnapshot(ctx)
	if err != nil {
		return errorResponse(req.ID, codeDataUnavailable, "Dataset unavailable", mustJSON(map[string]string{"error": err.Error()}))
	}

	switch def.Name {
	case toolMetrics:
		return handleMetric(req.ID, def, payload.Arguments, snap)
	case toolDistribution:
		return handleDistribution(req.ID, payload.Arguments, snap)
	default:
		return handleQueryAlumni(req.ID, payload.Arguments, snap)
	}
}

func mustJSON(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}

func textResult(id json.RawMessage, text string) *jsonRPCResponse {
	return &jsonRPCResponse{
		JSONRPC: "2.0",
		Result:  mustJSON(map[string]interface{}{"content": []map[string]string{{"type": "text", "text": text}}}),
		ID:      id,
	}
}

func (s *Server) writeResponse(ctx context.Context, resp *jsonRPCResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		klog.FromContext(ctx).Error(err, "Unable to marshal response")
		return
	}
	s.writeLine(data)
}

func (s *Server) sendNotification(method string, params interface{}) {
	payload := map[string]interface{}{
		"jsonrpc": "2.0",
		"method":  method,
	}
	if params != nil {
		payload["params"] = params
	}
	s.writeLine(mustJSON(payload))
}

func (s *Server) writeLine(data []byte) {
	s.outputMu.Lock()
	defer s.outputMu.Unlock()
	fmt.Fprintln(s.out, string(data))
}

func errorResponse(id json.RawMessage, code int, message string, data json.RawMessage) *jsonRPCResponse {
	return &jsonRPCResponse{
		JSONRPC: "2.0",
		Error: &jsonRPCError{
			Code:    code,
			Message: message,
			Data:    data,
		},
		ID: id,
	}
}
