package models

// ChatMessage is one turn of a tutoring conversation. Role is "user"
// or "assistant".
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TutorChatRequest accepts either a single message or a full
// transcript. Challenge marks the conversation as a bonus challenge
// session so the tutor frames it that way.
type TutorChatRequest struct {
	Subject     string        `json:"subject"`
	Message     string        `json:"message,omitempty"`
	Messages    []ChatMessage `json:"messages,omitempty"`
	Challenge   bool          `json:"challenge,omitempty"`
	ChallengeID int64         `json:"challenge_id,omitempty"`
}

type TutorChatResponse struct {
	Reply string `json:"reply"`
}
