package guide

import "strings"

const StudyGuidePromptTemplate = `You are an AI tutor helping students create study guides. Transform the following academic content into a structured study guide.

Content to process:
%s

Your task:
1. Extract the most useful academic information
2. Transform it into a structured study guide
3. Break down instructions into step-by-step form if applicable
4. Extract definitions, key ideas, formulas, timelines, or comparisons for academic content
5. Always include visual suggestions for infographic creation

Output ONLY valid JSON in this exact format (no markdown, no code blocks, just the JSON):
{
  "title": "Topic name here",
  "summary": "Brief explanation for studying",
  "student_benefit_focus": "` + DefaultBenefitFocus + `",
  "sections": [
    {
      "header": "Section or step name",
      "bullet_points": ["Key point 1", "Key point 2"],
      "visual_suggestions": ["What should be drawn", "Visual emphasis"],
      "reminder_tips": ["Memory cue", "Exam helper"]
    }
  ],
  "infographic_style": "clean, minimal, academic, step-by-step"
}

Keep the tone simple and helpful, like a tutor. Ensure all fields are filled with meaningful content.`

// BuildStudyGuidePrompt places content inside the fixed instruction template.
func BuildStudyGuidePrompt(content string) string {
	return strings.Replace(StudyGuidePromptTemplate, "%s", content, 1)
}
