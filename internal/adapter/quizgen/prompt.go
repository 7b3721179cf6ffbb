package quizgen

import (
	"fmt"

	"assessly/internal/domain"
)

// systemInstruction constrains the provider to emit nothing but JSON
const systemInstruction = "You are a quiz generator that only returns valid JSON arrays."

// BuildPrompt renders the user instruction for a generation request. The
// document text is expected to be normalized already.
func BuildPrompt(text string, count int, difficulty domain.Difficulty) string {
	return fmt.Sprintf(`Create exactly %d multiple-choice questions with %s difficulty from the following text.

Text:
%s

Return ONLY a valid JSON array with this exact structure:
[
  {
    "question": "Question text here?",
    "options": ["Option A", "Option B", "Option C", "Option D"],
    "correct_answer": "Option A",
    "marks": 1
  }
]

Requirements:
- Each question must have exactly 4 options
- The correct_answer must be one of the options exactly as written
- Assign exactly 1 mark to each question
- Return only the JSON array, no additional text
- Ensure proper JSON formatting`, count, difficulty, text)
}
