// Package navigation orders the task runs of a pipeline run and tracks which of them is
// selected for log display.
//
// A Model starts out untouched and follows the default active item, the last task run
// in the order, every time its set of task runs is replaced. Once an item is selected
// the model is touched and keeps the selection across replacements.
package navigation

// Model navigation state over a set of task runs. Not safe for concurrent use.
type Model struct {
	set        Set
	ordered    []string
	activeItem string
	hasActive  bool
	touched    bool
}

// NewModel Constructor. The active item is the default of the ordered set.
func NewModel(set Set) *Model {
	m := &Model{}
	m.load(set)
	m.activeItem, m.hasActive = DefaultActive(m.ordered)
	return m
}

// Replace replaces the set of task runs. An untouched model adopts the new default
// active item, a touched model keeps its selection, even when it is not in the new set.
func (m *Model) Replace(set Set) {
	m.load(set)
	if m.touched {
		return
	}
	m.activeItem, m.hasActive = DefaultActive(m.ordered)
}

// Select sets the active item and marks the model as touched
func (m *Model) Select(name string) {
	m.activeItem = name
	m.hasActive = true
	m.touched = true
}

// Ordered task run names
func (m *Model) Ordered() []string {
	return append([]string(nil), m.ordered...)
}

// ActiveItem name of the active task run, false when none
func (m *Model) ActiveItem() (string, bool) {
	return m.activeItem, m.hasActive
}

// ActiveRecord record of the active task run, false when none or when
// the active item is not in the current set
func (m *Model) ActiveRecord() (Record, bool) {
	if !m.hasActive {
		return Record{}, false
	}
	record, ok := m.set[m.activeItem]
	return record, ok
}

// Record record of the named task run in the current set
func (m *Model) Record(name string) (Record, bool) {
	record, ok := m.set[name]
	return record, ok
}

// Touched Indicates if an item has been selected
func (m *Model) Touched() bool {
	return m.touched
}

// Records task run records in order
func (m *Model) Records() []Record {
	records := make([]Record, 0, len(m.ordered))
	for _, name := range m.ordered {
		records = append(records, m.set[name])
	}
	return records
}

// Len number of task runs
func (m *Model) Len() int {
	return len(m.ordered)
}

func (m *Model) load(set Set) {
	m.set = make(Set, len(set))
	for name, record := range set {
		record.Name = name
		m.set[name] = record
	}
	m.ordered = Order(m.set)
}
