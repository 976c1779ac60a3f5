package mcp

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/split-engine/internal/core/domain"
	"github.com/custodia-labs/split-engine/internal/core/ports/driving"
)

// IngestInput is the input schema for the ingest_document tool.
type IngestInput struct {
	Path          string `json:"path,omitempty" jsonschema:"local path of the file to ingest"`
	ContentBase64 string `json:"content_base64,omitempty" jsonschema:"file bytes encoded as standard base64, used when path is empty"`
	Filename      string `json:"filename,omitempty" jsonschema:"original filename; its extension selects the extractor"`
}

// IngestOutput is the output schema for the ingest_document tool.
type IngestOutput struct {
	FileID      string `json:"file_id"`
	Name        string `json:"name"`
	Extension   string `json:"ext"`
	LengthChars int    `json:"length_chars"`
}

// SplitInput is the input schema for the split_document tool.
type SplitInput struct {
	FileID     string         `json:"file_id" jsonschema:"identifier returned by ingest_document"`
	Mode       string         `json:"mode" jsonschema:"split mode: lines or size"`
	Params     map[string]any `json:"params,omitempty" jsonschema:"lines, bytes, default_lines, default_bytes"`
	OutputPath string         `json:"output_path,omitempty" jsonschema:"where to write the zip archive; omitted means no file is written"`
}

// SplitOutput is the output schema for the split_document tool.
type SplitOutput struct {
	Manifest     *domain.Manifest `json:"manifest"`
	ArchivePath  string           `json:"archive_path,omitempty"`
	ArchiveBytes int              `json:"archive_bytes"`
}

// InspectInput is the input schema for the inspect_archive tool.
type InspectInput struct {
	Path string `json:"path" jsonschema:"local path of a split archive"`
}

// InspectOutput is the output schema for the inspect_archive tool.
type InspectOutput struct {
	Manifest   *domain.Manifest `json:"manifest"`
	PieceCount int              `json:"piece_count"`
	TotalChars int              `json:"total_chars"`
	Consistent bool             `json:"consistent"`
	Problems   []string         `json:"problems,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingest_document",
		Description: "Register a .txt, .docx, .srt or .vtt document for splitting",
	}, s.handleIngest)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "split_document",
		Description: "Split a registered document by lines or bytes into a zip archive with a manifest",
	}, s.handleSplit)

	if s.ports.Archive != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "inspect_archive",
			Description: "Check that a split archive's pieces agree with its manifest",
		}, s.handleInspect)
	}
}

// handleIngest handles the ingest_document tool invocation.
func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	var (
		data []byte
		err  error
	)
	name := input.Filename

	switch {
	case input.Path != "":
		data, err = os.ReadFile(input.Path)
		if err != nil {
			return nil, IngestOutput{}, fmt.Errorf("reading %s: %w", input.Path, err)
		}
		if name == "" {
			name = filepath.Base(input.Path)
		}
	case input.ContentBase64 != "":
		data, err = base64.StdEncoding.DecodeString(input.ContentBase64)
		if err != nil {
			return nil, IngestOutput{}, fmt.Errorf("decoding content_base64: %w", err)
		}
	default:
		return nil, IngestOutput{}, ErrNoInput
	}

	result, err := s.ports.Ingest.Ingest(ctx, name, data)
	if err != nil {
		return nil, IngestOutput{}, err
	}

	return nil, IngestOutput{
		FileID:      result.ID,
		Name:        result.Name,
		Extension:   result.Extension,
		LengthChars: result.LengthChars,
	}, nil
}

// handleSplit handles the split_document tool invocation.
func (s *Server) handleSplit(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SplitInput,
) (*mcp.CallToolResult, SplitOutput, error) {
	result, err := s.ports.Split.Split(ctx, domain.SplitRequest{
		DocumentID: input.FileID,
		Mode:       domain.Mode(input.Mode),
		Params:     domain.Params(input.Params),
	})
	if err != nil {
		return nil, SplitOutput{}, err
	}

	output := SplitOutput{
		Manifest:     result.Manifest,
		ArchiveBytes: len(result.Archive),
	}

	if input.OutputPath != "" {
		if err := os.WriteFile(input.OutputPath, result.Archive, 0o644); err != nil {
			return nil, SplitOutput{}, fmt.Errorf("writing archive: %w", err)
		}
		output.ArchivePath = input.OutputPath
	}

	return nil, output, nil
}

// handleInspect handles the inspect_archive tool invocation.
func (s *Server) handleInspect(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input InspectInput,
) (*mcp.CallToolResult, InspectOutput, error) {
	data, err := os.ReadFile(input.Path)
	if err != nil {
		return nil, InspectOutput{}, fmt.Errorf("reading %s: %w", input.Path, err)
	}

	report, err := s.ports.Archive.Inspect(ctx, data)
	if err != nil {
		return nil, InspectOutput{}, err
	}
	return nil, inspectOutput(report), nil
}

func inspectOutput(report *driving.ArchiveReport) InspectOutput {
	return InspectOutput{
		Manifest:   report.Manifest,
		PieceCount: report.PieceCount,
		TotalChars: report.TotalChars,
		Consistent: report.Consistent(),
		Problems:   report.Problems,
	}
}
