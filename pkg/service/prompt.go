// Prompt construction for the generation client
package service

import "fmt"

// PromptPart is one element of the ordered sequence sent to the model:
// either text or inline binary data, never both.
type PromptPart struct {
	Text     string
	Data     []byte
	MimeType string
}

// TextPart builds a text prompt part
func TextPart(text string) PromptPart {
	return PromptPart{Text: text}
}

// InlineDataPart builds an inline binary prompt part
func InlineDataPart(data []byte, mimeType string) PromptPart {
	return PromptPart{Data: data, MimeType: mimeType}
}

// IsText reports whether the part carries text rather than binary data.
func (p PromptPart) IsText() bool {
	return p.Data == nil
}

const systemPromptTemplate = `You are an AI assistant for Clarity, a customer intelligence platform. You help employees understand their customers and prospects by analyzing all available information.

Your role is to:
1. Answer questions about customers/prospects based ONLY on the provided context
2. Provide specific, evidence-based answers with citations
3. If information is not available in the context, clearly state that
4. Be concise but thorough
5. When citing information, mention the source (e.g., "According to the kickoff meeting transcript..." or "In the email dated...")

Here is all the information we have about %s:

%s

---

Now answer the following question. If you reference specific information, cite the source (transcript name, email subject, document title, or media file name). If the answer isn't in the provided context, say so.`

// BuildPrompt wraps the serialized context and the question into the ordered
// part sequence for the model: instructions+context, the question, then each
// image attachment followed by a caption naming it. Attachment order follows
// the order they were collected, so prompts are reproducible.
func BuildPrompt(companyName, contextText, question string, attachments []Attachment) []PromptPart {
	parts := []PromptPart{
		TextPart(fmt.Sprintf(systemPromptTemplate, companyName, contextText)),
		TextPart(fmt.Sprintf("Question: %s", question)),
	}
	for _, a := range attachments {
		parts = append(parts, InlineDataPart(a.Data, a.MimeType))
		parts = append(parts, TextPart(fmt.Sprintf("Image: %s", a.Title)))
	}
	return parts
}
