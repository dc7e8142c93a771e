package chat

import (
	"fmt"

	"github.com/tanmaysane/studymate/internal/gateway"
)

const (
	greetingMockInterview = "Mock Interview Mode\n\nI'll ask you interview questions based on your uploaded materials. Try:\n- 'Ask me DSA questions'\n- 'Give me system design questions'\n- 'Ask behavioral questions'"

	greetingResumeReview = "Resume Review Mode\n\nUpload your resume and I'll provide detailed feedback:\n- 'Review my resume'\n- 'Suggest improvements for my skills section'\n- 'How can I make my resume ATS-friendly?'"

	greetingCompany = "Company-Specific Mode%s\n\nI'll help you prepare for specific companies:\n- 'What does Amazon ask in interviews?'\n- 'TCS interview pattern'\n- 'Common questions asked at Google'"

	greetingGeneral = "Welcome to your study assistant!\n\nI'm here to help you prepare using your uploaded study materials.\n\nTry asking:\n- 'Explain quicksort algorithm'\n- 'What are DBMS normalization forms?'\n- 'Give me OS process scheduling questions'\n- 'Common interview questions for Amazon'"
)

// Greeting returns the fixed welcome text for a mode. It is a pure
// function: the same mode and company always produce the same message.
func Greeting(mode gateway.Mode, company string) string {
	switch mode {
	case gateway.ModeMockInterview:
		return greetingMockInterview
	case gateway.ModeResumeReview:
		return greetingResumeReview
	case gateway.ModeCompanySpecific:
		suffix := ""
		if company != "" {
			suffix = " - " + company
		}
		return fmt.Sprintf(greetingCompany, suffix)
	case gateway.ModeGeneral:
		return greetingGeneral
	default:
		return greetingGeneral
	}
}
