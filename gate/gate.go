// Package gate implements a two-group admission primitive: either a batch of
// readers or a batch of writers holds the gate, never both.
//
// Unlike sync.RWMutex, writers do not exclude each other. The gate only keeps
// the two groups apart; whatever the members of one group share must be
// protected by finer-grained locks.
//
// Fairness is batch release. A caller arriving while the opposite group is
// active (or already queued) waits. When the last member of the active group
// leaves, the whole opposite queue is admitted at once as the next epoch. A
// queued caller therefore waits for at most one full opposite epoch, and a
// steady stream of one group can never starve the other.
package gate

import "sync"

// Gate is a fair readers/writers gate. The zero value is not usable, use New.
type Gate struct {
	mu sync.Mutex

	readWait  *sync.Cond
	writeWait *sync.Cond

	readersActive int
	writersActive int
	readersQueued int
	writersQueued int

	// a queue generation is bumped every time the queue is released;
	// a waiter leaves when the generation differs from the one it saw
	readGen  uint64
	writeGen uint64

	epochs uint64
}

// Stats is a snapshot of the gate state.
type Stats struct {
	ReadersActive int
	WritersActive int
	ReadersQueued int
	WritersQueued int
	// Epochs counts queue releases (group switches) since creation
	Epochs uint64
}

// New returns an open gate with no members.
func New() *Gate {
	g := &Gate{}
	g.readWait = sync.NewCond(&g.mu)
	g.writeWait = sync.NewCond(&g.mu)
	return g
}

// StartRead blocks until the caller is admitted as a reader.
func (g *Gate) StartRead() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.writersActive == 0 && g.writersQueued == 0 {
		g.readersActive++
		return
	}

	gen := g.readGen
	g.readersQueued++
	for gen == g.readGen {
		g.readWait.Wait()
	}
	// readersActive was already bumped by the releasing writer
}

// EndRead leaves the gate. The last reader out admits every queued writer.
func (g *Gate) EndRead() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.readersActive <= 0 {
		panic("gate: EndRead without StartRead")
	}
	g.readersActive--
	if g.readersActive == 0 && g.writersQueued > 0 {
		g.writersActive += g.writersQueued
		g.writersQueued = 0
		g.writeGen++
		g.epochs++
		g.writeWait.Broadcast()
	}
}

// StartWrite blocks until the caller is admitted as a writer.
func (g *Gate) StartWrite() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.readersActive == 0 && g.readersQueued == 0 {
		g.writersActive++
		return
	}

	gen := g.writeGen
	g.writersQueued++
	for gen == g.writeGen {
		g.writeWait.Wait()
	}
}

// EndWrite leaves the gate. The last writer out admits every queued reader.
func (g *Gate) EndWrite() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.writersActive <= 0 {
		panic("gate: EndWrite without StartWrite")
	}
	g.writersActive--
	if g.writersActive == 0 && g.readersQueued > 0 {
		g.readersActive += g.readersQueued
		g.readersQueued = 0
		g.readGen++
		g.epochs++
		g.readWait.Broadcast()
	}
}

// Read runs fn while holding a read permit.
func (g *Gate) Read(fn func()) {
	g.StartRead()
	defer g.EndRead()
	fn()
}

// Write runs fn while holding a write permit.
func (g *Gate) Write(fn func()) {
	g.StartWrite()
	defer g.EndWrite()
	fn()
}

// Stats returns a snapshot of the gate counters.
func (g *Gate) Stats() Stats {
	g.mu.Lock()
	defer g.mu.Unlock()

	return Stats{
		ReadersActive: g.readersActive,
		WritersActive: g.writersActive,
		ReadersQueued: g.readersQueued,
		WritersQueued: g.writersQueued,
		Epochs:        g.epochs,
	}
}
