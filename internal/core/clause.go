package core

// clauseFlags packs the boolean clause metadata the spec names (deleted,
// learned-from-conflict, externally-added, watched) into one byte, the way
// the teacher's bitmask sat/clauses.go variant does.
type clauseFlags uint8

const (
	flagDeleted clauseFlags = 1 << iota
	flagLearnt
	flagWatched
	flagExternal
)

// clauseRecord is one clause's arena-owned storage. The first two entries
// of lits are always the watched literals (for watched clauses); blocker
// caches a literal that, if true at an acceptable level, lets propagation
// skip a full scan.
type clauseRecord struct {
	lits     []Literal
	blocker  Literal
	activity float64
	lbd      int
	flags    clauseFlags

	// prevPos is carried over from the teacher's clause record. Nothing
	// reads or writes it: the replacement scan in propagateWatchList
	// always starts at position 2.
	prevPos int
}

func (c *clauseRecord) isDeleted() bool  { return c.flags&flagDeleted != 0 }
func (c *clauseRecord) isLearnt() bool   { return c.flags&flagLearnt != 0 }
func (c *clauseRecord) isWatched() bool  { return c.flags&flagWatched != 0 }
func (c *clauseRecord) isExternal() bool { return c.flags&flagExternal != 0 }

func (c *clauseRecord) setDeleted(b bool)  { c.setFlag(flagDeleted, b) }
func (c *clauseRecord) setWatched(b bool)  { c.setFlag(flagWatched, b) }
func (c *clauseRecord) setFlag(f clauseFlags, on bool) {
	if on {
		c.flags |= f
	} else {
		c.flags &^= f
	}
}

// Arena owns every clause's literal buffer. Deleted clauses are pushed
// onto a freelist and their slot reused on the next allocation, reusing
// the literal slice's backing array when it has enough capacity and
// reallocating only on growth.
type Arena struct {
	clauses  []clauseRecord
	freelist []ClauseHandle
}

// NewArena returns an empty Arena.
func NewArena() *Arena {
	return &Arena{}
}

// Alloc stores a new clause and returns its handle. lits is copied.
func (a *Arena) Alloc(lits []Literal, learnt bool, external bool) ClauseHandle {
	var flags clauseFlags
	if learnt {
		flags |= flagLearnt
	}
	if external {
		flags |= flagExternal
	}
	if len(lits) >= 3 {
		flags |= flagWatched
	}

	if n := len(a.freelist); n > 0 {
		h := a.freelist[n-1]
		a.freelist = a.freelist[:n-1]
		c := &a.clauses[h]
		buf := c.lits[:0]
		*c = clauseRecord{flags: flags}
		c.lits = append(buf, lits...)
		return h
	}

	h := ClauseHandle(len(a.clauses))
	rec := clauseRecord{flags: flags}
	rec.lits = append(rec.lits, lits...)
	a.clauses = append(a.clauses, rec)
	return h
}

// Get returns the clause record for h. The returned pointer is valid until
// the next Alloc call that appends a new slot (growing the arena may move
// every record), or until h is freed.
func (a *Arena) Get(h ClauseHandle) *clauseRecord {
	return &a.clauses[h]
}

// Lits returns h's current literal slice (owned by the arena; callers must
// not retain it across a Free/Alloc).
func (a *Arena) Lits(h ClauseHandle) []Literal {
	return a.clauses[h].lits
}

// Size returns h's current logical size.
func (a *Arena) Size(h ClauseHandle) int {
	return len(a.clauses[h].lits)
}

// Free marks h deleted and pushes it onto the freelist for reuse.
func (a *Arena) Free(h ClauseHandle) {
	c := &a.clauses[h]
	if c.isDeleted() {
		return
	}
	c.setDeleted(true)
	c.lits = c.lits[:0]
	a.freelist = append(a.freelist, h)
}

// ShrinkInPlace removes literals from h's clause keeping only those for
// which keep returns true, preserving relative order. It never
// reallocates: shrinking is done within the existing backing array.
func (a *Arena) ShrinkInPlace(h ClauseHandle, keep func(Literal) bool) {
	c := &a.clauses[h]
	n := 0
	for _, l := range c.lits {
		if keep(l) {
			c.lits[n] = l
			n++
		}
	}
	c.lits = c.lits[:n]
}
