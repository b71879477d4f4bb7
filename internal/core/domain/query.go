package domain

// DefaultTopK is the number of chunks retrieved when the caller does
// not ask for a specific count.
const DefaultTopK = 5

// NotFoundAnswer is returned verbatim when retrieval produces no
// relevant chunks. The generation model is not consulted in that case.
const NotFoundAnswer = "No relevant information found in the documentation for your question."

// RetrievedChunk pairs a chunk with its cosine similarity to the query.
type RetrievedChunk struct {
	Chunk Chunk

	// Score is the cosine similarity in [-1, 1]; 0 for zero-norm
	// vectors.
	Score float64
}

// Answer is the result of a full question/answer round trip.
type Answer struct {
	// Text is the generated answer, or NotFoundAnswer when retrieval
	// came back empty.
	Text string

	// Sources lists the distinct origin documents of the chunks that
	// grounded the answer, in retrieval order.
	Sources []string

	// ChunksUsed is how many retrieved chunks went into the prompt.
	ChunksUsed int

	// Model names the generation model, empty for canned answers.
	Model string
}
