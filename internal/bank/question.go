package bank

// Label identifies one of the four answer options.
type Label string

const (
	LabelA Label = "A"
	LabelB Label = "B"
	LabelC Label = "C"
	LabelD Label = "D"
)

// Labels lists the option labels in display order.
var Labels = []Label{LabelA, LabelB, LabelC, LabelD}

// Index returns the option slot for the label, or -1 if the label
// is not one of A-D.
func (l Label) Index() int {
	for i, lbl := range Labels {
		if lbl == l {
			return i
		}
	}
	return -1
}

// Question is a single multiple-choice record. Questions are created
// once when a bank is loaded and never mutated afterwards.
type Question struct {
	ID         string
	Subject    string
	Difficulty Level

	// Concept is an optional topical tag; empty means untagged.
	Concept string

	Text    string
	Options [4]string

	// Correct is the label of the correct option, as it appears in the source.
	Correct Label
}

// Option returns the text of the option with the given label.
func (q Question) Option(l Label) string {
	i := l.Index()
	if i < 0 {
		return ""
	}
	return q.Options[i]
}
