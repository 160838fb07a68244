package transferlist

// Find returns the first entry in t whose tag matches tag_id, searching
// from the start of the list. It does not special-case TagEmpty: a caller
// searching for tag 0 will be handed the first free (EMPTY) entry, if any,
// exactly as a caller searching for any other tag is handed the first
// entry carrying it.
func (t *TL) Find(tag Tag) (Entry, bool) {
	var last *Entry

	for {
		e, ok := t.Next(last)
		if !ok {
			return Entry{}, false
		}

		if t.TagID(e) == tag {
			return e, true
		}

		last = &e
	}
}
