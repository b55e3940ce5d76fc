package socratic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BasharShoumali/socratia-1/internal/core/domain"
)

const (
	// TooShortMessage is the soft degeneracy response when no piece qualifies.
	TooShortMessage = "The document is too short to generate questions."
	// CompletedMessage terminates the session for any step outside 1..3.
	CompletedMessage = "You have completed the study session. Good job!"
)

// Derive returns the question for one session turn. Same text and step always
// yield the same prompt; the step is echoed back unchanged and the caller
// advances it.
func Derive(text string, step int) (domain.Prompt, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Prompt{}, domain.WrapError(domain.ErrEmptyDocument, "derive question", errors.New("no text to segment"))
	}

	pieces := Segments(text)
	if len(pieces) == 0 {
		return domain.Prompt{Question: TooShortMessage, Step: step}, nil
	}

	var question string
	switch step {
	case 1:
		question = fmt.Sprintf("Explain the following idea in your own words:\n\"%s\"", pieces[0])
	case 2:
		question = fmt.Sprintf("Why is the following concept important?\n\"%s\"", pieceOrFirst(pieces, 1))
	case 3:
		question = fmt.Sprintf("What could happen if this concept is misunderstood?\n\"%s\"", pieceOrFirst(pieces, 2))
	default:
		question = CompletedMessage
	}

	return domain.Prompt{Question: question, Step: step}, nil
}

// pieceOrFirst falls back to the first piece so short documents still yield a
// question, at the cost of repeating the same quote across steps.
func pieceOrFirst(pieces []string, idx int) string {
	if idx < len(pieces) {
		return pieces[idx]
	}
	return pieces[0]
}
