package tokenizer

// Codec is the common interface for text coders in this module.
// Both RuneCodec and Encoder implement this.
type Codec interface {
	Encode(text string) []TokenID
	Decode(ids []TokenID) string
	VocabSize() int
}
