package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/split-engine/internal/chunker"
	"github.com/custodia-labs/split-engine/internal/core/domain"
	"github.com/custodia-labs/split-engine/internal/core/ports/driven"
	"github.com/custodia-labs/split-engine/internal/core/ports/driving"
	"github.com/custodia-labs/split-engine/internal/logger"
)

// Ensure SplitService implements the interface.
var _ driving.SplitService = (*SplitService)(nil)

// SplitService gates, chunks, describes and packs registered documents.
type SplitService struct {
	registry driven.DocumentRegistry
	packer   driven.ArchivePacker
	policy   ThresholdPolicy
	now      func() time.Time
}

// SplitOption configures the split service.
type SplitOption func(*SplitService)

// WithThresholdPolicy replaces the default threshold policy.
func WithThresholdPolicy(p ThresholdPolicy) SplitOption {
	return func(s *SplitService) {
		s.policy = p
	}
}

// WithSplitClock overrides the clock used for manifest timestamps.
func WithSplitClock(now func() time.Time) SplitOption {
	return func(s *SplitService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSplitService creates a new split service.
func NewSplitService(
	registry driven.DocumentRegistry,
	packer driven.ArchivePacker,
	opts ...SplitOption,
) *SplitService {
	s := &SplitService{
		registry: registry,
		packer:   packer,
		policy:   DefaultThresholdPolicy(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Split runs one split request to completion.
func (s *SplitService) Split(ctx context.Context, req domain.SplitRequest) (*driving.SplitResult, error) {
	if s.registry == nil || s.packer == nil {
		return nil, errors.New("split service not configured")
	}

	logger.Section("Split")
	logger.Debug("Document: %s, mode: %s, params: %v", req.DocumentID, req.Mode, req.Params)

	if req.DocumentID == "" {
		return nil, domain.ErrDocumentNotFound
	}
	doc, err := s.registry.Get(ctx, req.DocumentID)
	if err != nil {
		return nil, err
	}

	if !req.Mode.IsValid() {
		return nil, fmt.Errorf("%w: %q (supported: lines, size)", domain.ErrInvalidMode, req.Mode)
	}

	size, err := s.chunkSize(req)
	if err != nil {
		return nil, err
	}
	skip, err := s.policy.ShouldSkip(doc.Text, req.Mode, req.Params)
	if err != nil {
		return nil, err
	}

	var (
		pieces []domain.Piece
		reason string
	)
	if skip {
		logger.Info("Below threshold, emitting a single piece")
		pieces = chunker.NewPieces(doc.Text)
		reason = domain.SkippedBelowThreshold
	} else {
		logger.Debug("Chunk size: %d", size)

		pieces, err = chunker.Split(doc.Text, req.Mode, size)
		if err != nil {
			return nil, err
		}
	}
	logger.Info("Produced %d pieces", len(pieces))

	manifest := BuildManifest(doc, req.Mode, req.Params, pieces, reason, s.now())

	archive, err := s.packer.Pack(pieces, manifest)
	if err != nil {
		return nil, fmt.Errorf("failed to pack archive: %w", err)
	}

	return &driving.SplitResult{
		Manifest:    manifest,
		Pieces:      pieces,
		Archive:     archive,
		ContentType: s.packer.ContentType(),
	}, nil
}

// chunkSize reads the lines or bytes parameter for the request mode.
func (s *SplitService) chunkSize(req domain.SplitRequest) (int, error) {
	if req.Mode == domain.ModeLines {
		return req.Params.Int(domain.ParamLines, s.policy.DefaultLines)
	}
	return req.Params.Int(domain.ParamBytes, s.policy.DefaultBytes)
}
