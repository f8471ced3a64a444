package dfa

import (
	"fmt"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// Minimize collapses the automaton to its minimal equivalent via partition
// refinement and returns the result as a new automaton; the receiver is left
// untouched. Two states are merged only if they agree on acceptance and tag
// and behave identically for every symbol and every suffix, so the minimized
// automaton recognizes, for any input, the same tag at the same match length.
// The state count of the result is never larger than the receiver's, and
// minimization is idempotent.
func (a *Automaton) Minimize() *Automaton {
	tracer().Debugf("=== partition refinement ========================================")
	blocks, blockOf := a.initialPartition()
	pending := treeset.NewWith(utils.IntComparator)
	for b := range blocks {
		pending.Add(b)
	}
	for !pending.Empty() {
		b := pending.Values()[0].(int)
		pending.Remove(b)
		// snapshot of the splitter block; splits of b during this round
		// must not change it
		splitter := make(map[StateID]bool, len(blocks[b]))
		for _, s := range blocks[b] {
			splitter[s] = true
		}
		for _, c := range a.alphabet {
			// X = states transitioning into the splitter on c
			X := make(map[StateID]bool)
			for i := range a.states {
				if t, ok := a.states[i].trans[c]; ok && splitter[t] {
					X[a.states[i].id] = true
				}
			}
			if len(X) == 0 {
				continue
			}
			for y, cnt := 0, len(blocks); y < cnt; y++ {
				inter, diff := split(blocks[y], X)
				if len(inter) == 0 || len(diff) == 0 {
					continue // X does not properly split Y
				}
				blocks[y] = inter
				newb := len(blocks)
				blocks = append(blocks, diff)
				for _, s := range diff {
					blockOf[s] = newb
				}
				if pending.Contains(y) {
					// both halves stay pending; y now holds the intersection
					pending.Add(newb)
				} else if len(inter) <= len(diff) {
					// only the smaller half needs re-examination; correctness
					// holds either way, this only affects running time
					pending.Add(y)
				} else {
					pending.Add(newb)
				}
			}
		}
	}
	tracer().Debugf("%d states collapse into %d blocks", len(a.states), len(blocks))
	return a.rebuild(blocks, blockOf)
}

// initialPartition groups states by their (accepting, tag) signature: all
// non-accepting states share one block, each distinct accepting tag gets its
// own block.
func (a *Automaton) initialPartition() ([][]StateID, []int) {
	blockOf := make([]int, len(a.states))
	var blocks [][]StateID
	bySig := make(map[string]int)
	for i := range a.states {
		st := &a.states[i]
		sig := "NA"
		if st.accepting {
			sig = fmt.Sprintf("A%d", st.tag)
		}
		b, ok := bySig[sig]
		if !ok {
			b = len(blocks)
			bySig[sig] = b
			blocks = append(blocks, nil)
		}
		blocks[b] = append(blocks[b], st.id)
		blockOf[st.id] = b
	}
	return blocks, blockOf
}

// split partitions the block into the states inside X and the states outside.
func split(block []StateID, X map[StateID]bool) (inter, diff []StateID) {
	for _, s := range block {
		if X[s] {
			inter = append(inter, s)
		} else {
			diff = append(diff, s)
		}
	}
	return inter, diff
}

// rebuild constructs the minimized automaton: one representative state per
// block, transitions remapped block-to-block.
func (a *Automaton) rebuild(blocks [][]StateID, blockOf []int) *Automaton {
	min := &Automaton{
		states: make([]state, len(blocks)),
	}
	for b, block := range blocks {
		rep := &a.states[block[0]]
		for _, s := range block[1:] {
			if s < rep.id {
				rep = &a.states[s]
			}
		}
		st := state{
			id:        StateID(b),
			trans:     make(map[rune]StateID, len(rep.trans)),
			accepting: rep.accepting,
			tag:       rep.tag,
			prio:      rep.prio,
			subset:    rep.subset,
		}
		for c, t := range rep.trans {
			st.trans[c] = StateID(blockOf[t])
		}
		min.states[b] = st
	}
	min.start = StateID(blockOf[a.start])
	min.collectAlphabet()
	return min
}
