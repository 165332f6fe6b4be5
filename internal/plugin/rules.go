package plugin

// Edit describes additions and removals for one word set.
type Edit struct {
	Add    []string
	Remove []string
}

// Apply returns words with removals dropped and additions appended.
// Order is preserved and nothing is added twice.
func (e Edit) Apply(words []string) []string {
	removed := make(map[string]bool, len(e.Remove))
	for _, w := range e.Remove {
		removed[w] = true
	}

	seen := make(map[string]bool, len(words)+len(e.Add))
	out := make([]string, 0, len(words)+len(e.Add))
	for _, w := range words {
		if removed[w] || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	for _, w := range e.Add {
		if removed[w] || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}

func (e Edit) empty() bool {
	return len(e.Add) == 0 && len(e.Remove) == 0
}

func (e Edit) clone() Edit {
	return Edit{
		Add:    append([]string(nil), e.Add...),
		Remove: append([]string(nil), e.Remove...),
	}
}

// Changes collects the word set edits a rules script requested.
type Changes struct {
	Indenters  Edit
	Dedenters  Edit
	BlockStart Edit
	Operators  Edit
}

// Empty reports whether the script requested no edits.
func (c Changes) Empty() bool {
	return c.Indenters.empty() && c.Dedenters.empty() &&
		c.BlockStart.empty() && c.Operators.empty()
}

func (c Changes) clone() Changes {
	return Changes{
		Indenters:  c.Indenters.clone(),
		Dedenters:  c.Dedenters.clone(),
		BlockStart: c.BlockStart.clone(),
		Operators:  c.Operators.clone(),
	}
}
