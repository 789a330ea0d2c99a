// Package vectorspace turns page texts and questions into comparable sparse
// vectors.
//
// Tokens are lower-cased runs of two or more letters, digits or underscores.
// Stop words are dropped, then every 1-gram and 2-gram is hashed with
// MurmurHash3 into a fixed number of buckets, so the same text always maps to
// the same features regardless of corpus size or order. Raw vectors are
// L2-normalised term counts; Weight applies TF-IDF jointly over a stacked set
// of vectors (all pages plus the question) and re-normalises.
package vectorspace
