package gate

// Role identifies a derived account. Seed is the label mixed into the
// derivation; it is empty for roles derived from the base address alone.
type Role struct {
	Name string
	Seed []byte
}

// Bump is the stored bump seed of exactly one role. Implementations are
// distinct types per role so a bump cannot be checked against another
// role's label without an explicit conversion.
type Bump interface {
	Role() Role
	Seed() uint8
}

func (r Role) seeds(base []byte) [][]byte {
	seeds := [][]byte{base}
	if len(r.Seed) > 0 {
		seeds = append(seeds, r.Seed)
	}
	return seeds
}
