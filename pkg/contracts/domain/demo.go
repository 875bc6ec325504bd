package domain

// User is a demo account. Passwords are compared in plain text; this is not
// an authentication system.
type User struct {
	Username string `json:"username" yaml:"username"`
	Password string `json:"-" yaml:"password"`
	Name     string `json:"name" yaml:"name"`
	Email    string `json:"email" yaml:"email"`
}

// Session is returned by a successful demo login.
type Session struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// FAQ is one canned question and answer of the research assistant.
type FAQ struct {
	Question string `json:"q" yaml:"q"`
	Answer   string `json:"a" yaml:"a"`
}

// Answer sources
const (
	AnswerSourceFAQ             = "faq"
	AnswerSourceOpenAIAvailable = "openai-available"
	AnswerSourceNone            = "none"
)

// ChatAnswer is the research assistant reply.
type ChatAnswer struct {
	Answer    string `json:"answer"`
	Source    string `json:"source"`
	Simulated bool   `json:"simulated"`
}
