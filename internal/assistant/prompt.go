package assistant

import (
	"fmt"
	"strings"

	"github.com/upliftr/upliftr/internal/content"
	"github.com/upliftr/upliftr/internal/llm"
)

// Canned replies. These are fixed strings, not model output.
const (
	welcomeMessage = "Welcome to Upliftr. I’m here to help you elevate your brand. Would you like to book a consultation or hear about our services?"

	bookedCourtesyReply = "You're most welcome 😊 Our team has your details and will reach out shortly. How can i assist you more?"

	apologyReply = "I hit a snag, but don't worry—you can also reach us directly at hello@upliftr.agency."

	fallbackReply = "I'm here to help. What else can I do for you?"
)

// bookEnquiryTool is the single tool the assistant exposes to the model.
const bookEnquiryTool = "bookEnquiry"

// BookEnquiryDeclaration returns the bookEnquiry function declaration.
func BookEnquiryDeclaration() llm.FunctionDeclaration {
	return llm.FunctionDeclaration{
		Name:        bookEnquiryTool,
		Description: "Book a consultation or enquiry for a potential client. Call this only when you have the user's name, email, and a description of their project.",
		Parameters: &llm.Schema{
			Type: "object",
			Properties: map[string]llm.Schema{
				"fullName":    {Type: "string", Description: "The full name of the client."},
				"email":       {Type: "string", Description: "The contact email address."},
				"projectType": {Type: "string", Description: "The type of service they are interested in (e.g., Social Media, Production, Performance Marketing)."},
				"details":     {Type: "string", Description: "Specific details about the client's needs or goals."},
			},
			Required: []string{"fullName", "email", "projectType", "details"},
		},
	}
}

// BuildSystemInstruction constructs the fixed system instruction, listing
// the live service catalog and the four-field booking process.
func BuildSystemInstruction() string {
	var b strings.Builder

	b.WriteString("You are Upliftr's elite Digital Strategy Assistant. Your primary mission is to provide information about our agency and help users BOOK ENQUIRIES.\n\n")

	b.WriteString("UPLIFTR SERVICES:\n")
	for _, svc := range content.Services() {
		fmt.Fprintf(&b, "- %s (%s)\n", svc.Title, svc.ShortDescription)
	}

	b.WriteString("\nBOOKING PROCESS:\n")
	b.WriteString("To book an enquiry, you MUST collect:\n")
	b.WriteString("1. Full Name\n")
	b.WriteString("2. Email Address\n")
	b.WriteString("3. Project Type (choose from our services)\n")
	b.WriteString("4. Brief details about their vision.\n\n")
	b.WriteString("When you have these 4 items, call the 'bookEnquiry' tool immediately. ")
	b.WriteString("Be professional, minimalistic, and energetic. Always encourage the user to scale their brand with us.")

	return b.String()
}

// confirmationMessage interpolates the booked lead into the reply shown to
// the user and appended to the model-facing history.
func confirmationMessage(fullName, projectType, email string) string {
	return fmt.Sprintf(
		"Perfect! I've booked your enquiry for %s. Our strategy team will review your %s request and reach out to %s within 24 hours.",
		fullName, projectType, email,
	)
}
