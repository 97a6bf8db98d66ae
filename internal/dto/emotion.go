package dto

type CreateEmotionRequest struct {
	Emotion string  `json:"emotion"`
	Note    *string `json:"note,omitempty"`
}
