package challenge

// Store defines the durable mapping from challenge id to challenge record.
type Store interface {
	// Create persists a freshly built challenge.
	Create(c *Challenge) error
	// Get resolves a challenge by id, failing with *NotFoundError.
	Get(id string) (*Challenge, error)
	// Save persists state changes of an existing challenge.
	Save(c *Challenge) error
	// Delete removes a challenge record. It is the compensation leg for a
	// creation whose player assignment failed.
	Delete(id string) error
}
