package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// IDLength is the number of hex characters of the content hash used as document ID.
const IDLength = 16

// Document represents an ingested file after text extraction.
// It is immutable once stored in the registry.
type Document struct {
	// ID is derived from ContentHash, so identical bytes share an ID.
	ID string

	// OriginalName is the filename supplied at upload.
	OriginalName string

	// Extension is the lowercased extension including the dot (e.g. ".txt").
	Extension string

	// ContentHash is the hex SHA-256 digest of the raw uploaded bytes.
	ContentHash string

	// Text is the normalised plain text produced by the extractor.
	Text string

	// LengthChars is the number of Unicode code points in Text.
	LengthChars int

	// IngestedAt is when the document was first stored.
	IngestedAt time.Time
}

// ContentHash returns the hex SHA-256 digest of raw.
func ContentHash(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// DocumentID derives the document identifier from a content hash.
func DocumentID(contentHash string) string {
	if len(contentHash) < IDLength {
		return contentHash
	}
	return contentHash[:IDLength]
}
