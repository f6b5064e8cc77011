package match

// Ledger helpers. Deliveries are held in ascending Seq order; the "head"
// is the most recent entry. Only the engine appends or pops; everything
// downstream (completion checks, scorecards) is a pure read.

// appendDelivery stamps the next sequence number and adds the entry.
func (m *Match) appendDelivery(d Delivery) *Delivery {
	d.Seq = len(m.Deliveries) + 1
	d.MatchID = m.ID
	m.Deliveries = append(m.Deliveries, d)
	return &m.Deliveries[len(m.Deliveries)-1]
}

// popDelivery removes and returns the most recent entry, nil if empty.
func (m *Match) popDelivery() *Delivery {
	if len(m.Deliveries) == 0 {
		return nil
	}
	last := m.Deliveries[len(m.Deliveries)-1]
	m.Deliveries = m.Deliveries[:len(m.Deliveries)-1]
	return &last
}

// LastDelivery returns the ledger head without removing it.
func (m *Match) LastDelivery() *Delivery {
	if len(m.Deliveries) == 0 {
		return nil
	}
	return &m.Deliveries[len(m.Deliveries)-1]
}

// lastDeliveryOfInnings returns the most recent entry for one innings.
func (m *Match) lastDeliveryOfInnings(inning int) *Delivery {
	for i := len(m.Deliveries) - 1; i >= 0; i-- {
		if m.Deliveries[i].Inning == inning {
			return &m.Deliveries[i]
		}
	}
	return nil
}

// EntriesForInnings returns the ordered ledger slice for one innings. The
// returned deliveries alias the match's storage; callers must not mutate.
func (m *Match) EntriesForInnings(inning int) []Delivery {
	out := make([]Delivery, 0, len(m.Deliveries))
	for _, d := range m.Deliveries {
		if d.Inning == inning {
			out = append(out, d)
		}
	}
	return out
}

// legalBallCount counts deliveries that consumed a ball of an over.
func (m *Match) legalBallCount(inning int) int {
	n := 0
	for _, d := range m.Deliveries {
		if d.Inning == inning && d.IsLegal() {
			n++
		}
	}
	return n
}
