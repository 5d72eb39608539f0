// Package split exposes the document splitter as an MCP tool.
package split

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/d-kuro/docsplit/internal/splitter"
	"github.com/d-kuro/docsplit/internal/tools"
)

const toolDescription = `Splits a generated API-reference markdown document into one file per "###" heading.

Content before the "## <anchor>" heading (default "Properties") is dropped, horizontal rules are removed, and every "## " section becomes a directory under output_dir holding one "<subsection>.md" file per "### " heading. Existing files are overwritten. Both paths must be absolute.`

// SplitArgs are the arguments of the SplitMarkdown tool.
type SplitArgs struct {
	InputPath   string `json:"input_path" jsonschema:"Absolute path of the markdown document to split"`
	OutputDir   string `json:"output_dir" jsonschema:"Absolute path of the directory that receives the section tree"`
	Anchor      string `json:"anchor,omitempty" jsonschema:"Heading title where content starts (default Properties)"`
	OnDuplicate string `json:"on_duplicate,omitempty" jsonschema:"What to do with repeated section titles: last-wins, error or merge"`
	DryRun      bool   `json:"dry_run,omitempty" jsonschema:"Report the files that would be written without writing them"`
}

// NewHandler returns the typed handler for the SplitMarkdown tool.
func NewHandler(ctx *tools.Context) mcp.ToolHandlerFor[SplitArgs, any] {
	return func(ctxReq context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[SplitArgs]) (*mcp.CallToolResultFor[any], error) {
		args := params.Arguments

		inputPath, errResult := tools.ValidatePathWithContext(ctx, args.InputPath)
		if errResult != nil {
			return errResult, nil
		}
		outputDir, errResult := tools.ValidatePathWithContext(ctx, args.OutputDir)
		if errResult != nil {
			return errResult, nil
		}

		policy, err := splitter.ParseDuplicatePolicy(args.OnDuplicate)
		if err != nil {
			return tools.ErrorResponsef("Invalid on_duplicate: %v", err), nil
		}

		opts := splitter.DefaultOptions()
		opts.OnDuplicate = policy
		if args.Anchor != "" {
			opts.Anchor = args.Anchor
		}

		logger := ctx.Logger.WithFile(inputPath)
		result, err := splitter.Split(ctxReq, splitter.Request{
			InputPath: inputPath,
			OutputDir: outputDir,
			Options:   opts,
			DryRun:    args.DryRun,
			Validator: ctx.Validator,
		}, logger)
		if err != nil {
			logger.Error("Split failed", slog.Any("error", err))
			return tools.ErrorResponsef("Split failed: %v", err), nil
		}

		logger.Info("Split completed",
			slog.Int("sections", result.Sections),
			slog.Int("files", result.Files))
		return tools.JSONResponse(result), nil
	}
}

// CreateSplitTool creates the SplitMarkdown tool.
func CreateSplitTool(ctx *tools.Context) *tools.ServerTool {
	handler := NewHandler(ctx)

	tool := &mcp.Tool{
		Name:        "SplitMarkdown",
		Description: toolDescription,
	}

	return &tools.ServerTool{
		Tool: tool,
		RegisterFunc: func(server *mcp.Server) {
			mcp.AddTool(server, tool, handler)
		},
	}
}
