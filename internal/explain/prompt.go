package explain

import (
	"fmt"
	"strings"

	"github.com/abhisek/examprep/internal/bank"
)

const systemPrompt = `You are a concise exam tutor. A learner preparing for a multiple-choice exam just answered a question incorrectly. Explain the correct answer plainly and accurately.`

func buildUserMessage(q bank.Question, chosen bank.Label) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Subject: %s\n", q.Subject)
	fmt.Fprintf(&b, "Difficulty: %s\n", q.Difficulty)
	if q.Concept != "" {
		fmt.Fprintf(&b, "Concept: %s\n", q.Concept)
	}
	fmt.Fprintf(&b, "\nQuestion: %s\n", q.Text)
	for _, l := range bank.Labels {
		fmt.Fprintf(&b, "%s) %s\n", l, q.Option(l))
	}
	fmt.Fprintf(&b, "\nCorrect option: %s\n", q.Correct)
	if chosen == "" {
		b.WriteString("Learner's answer: none (time ran out or skipped)\n")
	} else {
		fmt.Fprintf(&b, "Learner's answer: %s\n", chosen)
	}

	b.WriteString(`
Instructions:
1. Explain in 2-4 sentences why the correct option is right.
2. If the learner chose an option, say in 1-2 sentences why it is wrong. Otherwise leave chosen_mistake empty.
3. Give one short tip that would help on similar questions.
4. Plain text only. No markdown, no LaTeX.`)

	return b.String()
}
