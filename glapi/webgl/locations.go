package webgl

type locationKey struct {
	prog uint32
	name string
}

// locationTable maps glapi.Uniform indices to driver location objects.
// Entries belong to the program they were queried from and go away with it.
type locationTable[T any] struct {
	ids    map[locationKey]int32
	values map[int32]T
	owned  map[uint32][]int32
	next   int32
}

func newLocationTable[T any]() *locationTable[T] {
	return &locationTable[T]{
		ids:    make(map[locationKey]int32),
		values: make(map[int32]T),
		owned:  make(map[uint32][]int32),
	}
}

// add stores v for name in prog. Asking again for the same name returns the
// same index.
func (t *locationTable[T]) add(prog uint32, name string, v T) int32 {
	k := locationKey{prog, name}
	if id, ok := t.ids[k]; ok {
		t.values[id] = v
		return id
	}
	id := t.next
	t.next++
	t.ids[k] = id
	t.values[id] = v
	t.owned[prog] = append(t.owned[prog], id)
	return id
}

func (t *locationTable[T]) get(id int32) (T, bool) {
	v, ok := t.values[id]
	return v, ok
}

// release forgets every location queried from prog.
func (t *locationTable[T]) release(prog uint32) {
	for _, id := range t.owned[prog] {
		delete(t.values, id)
	}
	for k := range t.ids {
		if k.prog == prog {
			delete(t.ids, k)
		}
	}
	delete(t.owned, prog)
}

func (t *locationTable[T]) len() int { return len(t.values) }
