// Package zippack packs split pieces and their manifest into zip archives
// and reads them back.
//
// An archive holds one entry per piece named piece_NNNN.txt followed by a
// manifest.json entry. Entries are deflated with klauspost/compress.
package zippack
