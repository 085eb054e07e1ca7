package core

// binWatch is one binary clause's entry in a literal's binary watch list:
// the clause's other literal plus its handle.
type binWatch struct {
	other  Literal
	clause ClauseHandle
}

// watchIndex holds, per literal, the binary-clause index and the
// non-binary watch list (spec §4.2). Both are indexed directly by literal
// value since literals are densely packed small integers.
type watchIndex struct {
	binary [][]binWatch
	watch  [][]ClauseHandle
}

func newWatchIndex() *watchIndex {
	return &watchIndex{}
}

// grow extends both indices so literals of variables up to maxVar are
// valid indices.
func (w *watchIndex) grow(maxVar int) {
	need := 2*(maxVar+1) + 2
	for len(w.binary) < need {
		w.binary = append(w.binary, nil)
		w.watch = append(w.watch, nil)
	}
}

func (w *watchIndex) addBinary(l Literal, other Literal, c ClauseHandle) {
	w.binary[l] = append(w.binary[l], binWatch{other: other, clause: c})
}

// removeBinary removes the (other, c) entry from l's binary list via
// swap-pop; order among binary watches is not significant.
func (w *watchIndex) removeBinary(l Literal, c ClauseHandle) {
	list := w.binary[l]
	for i, bw := range list {
		if bw.clause == c {
			list[i] = list[len(list)-1]
			w.binary[l] = list[:len(list)-1]
			return
		}
	}
}

func (w *watchIndex) watchClause(l Literal, c ClauseHandle) {
	w.watch[l] = append(w.watch[l], c)
}

func (w *watchIndex) unwatchClause(l Literal, c ClauseHandle) {
	list := w.watch[l]
	for i, h := range list {
		if h == c {
			list[i] = list[len(list)-1]
			w.watch[l] = list[:len(list)-1]
			return
		}
	}
}
