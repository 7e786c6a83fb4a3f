package key

import "strings"

// Sequence is an ordered list of key presses, e.g. "ctrl-x ctrl-s".
type Sequence []Key

// ParseSequence reads space separated keys.
func ParseSequence(text string) (Sequence, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, &InputError{Text: text, Reason: "empty key sequence"}
	}
	seq := make(Sequence, 0, len(fields))
	for _, f := range fields {
		k, err := Parse(f)
		if err != nil {
			return nil, err
		}
		seq = append(seq, k)
	}
	return seq, nil
}

func (s Sequence) String() string {
	parts := make([]string, len(s))
	for i, k := range s {
		parts[i] = k.String()
	}
	return strings.Join(parts, " ")
}
