// Package engine drives the streaming loop: it grows the message buffer
// chunk by chunk, re-parses it, renders text blocks, and dispatches
// completed tool uses to their handlers.
package engine

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/restitch/restitch/internal/assistant"
	"github.com/restitch/restitch/internal/config"
	"github.com/restitch/restitch/internal/tools"
	"github.com/restitch/restitch/internal/ui"
)

// Engine consumes an assistant message stream for one logical turn. It is
// not safe for concurrent use; callers feed chunks sequentially.
type Engine struct {
	parser *assistant.Parser
	reg    *tools.Registry
	writer *ui.Writer
	log    *Logger

	buffer strings.Builder
	// Blocks before this index are finalized and already handled.
	handled int
}

// New creates an Engine. The parser vocabulary is the built-in one plus
// any extras from config.
func New(cfg *config.Config, reg *tools.Registry, writer *ui.Writer, log *Logger) *Engine {
	vocab := assistant.ExtendedVocabulary(cfg.Parser.ExtraTools, cfg.Parser.ExtraParams)
	return &Engine{
		parser: assistant.NewParser(vocab),
		reg:    reg,
		writer: writer,
		log:    log,
	}
}

// Feed appends a chunk to the buffer, re-parses, and handles every block
// that can no longer change. The last block stays pending: it may still
// grow with the next chunk.
func (e *Engine) Feed(ctx context.Context, chunk string) error {
	e.buffer.WriteString(chunk)
	blocks := e.parser.Parse(e.buffer.String())
	e.log.ChunkFed(len(chunk), e.buffer.Len(), len(blocks))
	return e.handleBlocks(ctx, blocks, false)
}

// Finish marks end of stream and handles the remaining blocks, including
// a trailing partial tool use, which is reported but never executed.
func (e *Engine) Finish(ctx context.Context) error {
	blocks := e.parser.Parse(e.buffer.String())
	return e.handleBlocks(ctx, blocks, true)
}

// Run feeds the whole reader through the engine in chunkSize pieces,
// calling pace between chunks when set, then finishes the stream.
func (e *Engine) Run(ctx context.Context, r io.Reader, chunkSize int, pace func() error) error {
	buf := make([]byte, chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := r.Read(buf)
		if n > 0 {
			if feedErr := e.Feed(ctx, string(buf[:n])); feedErr != nil {
				return feedErr
			}
			if pace != nil {
				if paceErr := pace(); paceErr != nil {
					return paceErr
				}
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}
	return e.Finish(ctx)
}

func (e *Engine) handleBlocks(ctx context.Context, blocks []assistant.ContentBlock, final bool) error {
	for i := e.handled; i < len(blocks); i++ {
		last := i == len(blocks)-1

		switch block := blocks[i].(type) {
		case *assistant.TextContent:
			// The trailing text block can still accumulate.
			if last && !final {
				return nil
			}
			e.writer.Text(block.Text)

		case *assistant.ToolUse:
			if block.Partial {
				if !final {
					return nil
				}
				// Stream ended mid-tool. Routine while streaming, but at
				// end of stream the invocation is unusable.
				e.log.IncompleteToolAtEnd(block.Name)
				e.writer.Warnf("stream ended inside <%s>; tool not executed", block.Name)
				e.handled++
				continue
			}
			e.dispatch(ctx, block)
		}
		e.handled++
	}
	return nil
}

// dispatch executes one completed tool use.
func (e *Engine) dispatch(ctx context.Context, block *assistant.ToolUse) {
	id := uuid.NewString()[:8]
	e.writer.ToolCall(id, block.Name, block.Params)

	tool := e.reg.Get(block.Name)
	if tool == nil {
		e.writer.Warnf("[%s] no handler for tool %s", id, block.Name)
		return
	}

	start := time.Now()
	err := tool.Check(ctx, block.Params)
	if err == nil {
		var result any
		result, err = tool.Call(ctx, block.Params)
		if err == nil {
			if m, ok := result.(map[string]any); ok {
				if recovered, ok := m["recovered_markers"].(int); ok && recovered > 0 {
					e.log.MarkersRecovered(block.Param(assistant.ParamPath), recovered)
				}
				e.writer.ToolResult(m)
			}
		}
	}
	e.log.ToolDispatched(id, block.Name, time.Since(start), err)
	if err != nil {
		e.writer.Errorf("[%s] %s: %v", id, block.Name, err)
	}
}
