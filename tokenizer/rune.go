package tokenizer

// RuneCodec is the simplest possible codec: each Unicode scalar is a
// token, no merging. Useful as the compression baseline.
type RuneCodec struct {
	vocab *Vocabulary
}

// NewRuneCodec builds the unit vocabulary from sample text.
func NewRuneCodec(sample string) *RuneCodec {
	v := NewVocabulary()
	v.Seed(sample)
	return &RuneCodec{vocab: v}
}

// Encode maps each scalar to its unit ID. Scalars missing from the
// sample are skipped.
func (c *RuneCodec) Encode(text string) []TokenID {
	ids := make([]TokenID, 0, len(text))
	for _, r := range text {
		if id, ok := c.vocab.ID(Unit(r)); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Decode converts unit IDs back to a string.
func (c *RuneCodec) Decode(ids []TokenID) string {
	return c.vocab.Decode(ids)
}

// VocabSize returns the number of distinct scalars in the sample.
func (c *RuneCodec) VocabSize() int {
	return c.vocab.Len()
}
