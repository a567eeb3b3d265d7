package adorn

// SkippedSlot records a slot the injector could not place because neither
// its paragraph nor section anchor resolved in the document. Skips are
// diagnostics, not errors: one hallucinated anchor must not invalidate the
// rest of the batch.
type SkippedSlot struct {
	Index       int      `json:"index"`
	Kind        SlotKind `json:"kind"`
	SectionID   string   `json:"section_id"`
	ParagraphID *string  `json:"paragraph_id"`
	Reason      string   `json:"reason"`
}

// InjectResult holds the outcome of a slot injection batch.
type InjectResult struct {
	// HTML is the serialized document after injection. A superset of the
	// input's nodes plus the inserted fragments.
	HTML string

	// Inserted is the number of slots successfully placed.
	Inserted int

	// Skipped lists slots that were dropped, in batch order.
	Skipped []SkippedSlot
}

// Injector inserts resolved slots into an anchor-annotated document.
//
// Injection is additive and order-sensitive: it never deletes or reorders
// pre-existing nodes, slots are processed in input order, and repeated
// anchors stack in that order. Unresolvable slots are skipped, never raised.
type Injector interface {
	Inject(html string, slots []Slot) (*InjectResult, error)
}
