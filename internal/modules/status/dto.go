package status

type CreateStatusRequest struct {
	Caption         string `json:"caption" binding:"max=700"`
	MediaExternalID string `json:"media_external_id"`
	MediaKind       string `json:"media_kind" binding:"omitempty,oneof=image video"`
}

type ReactRequest struct {
	Emoji string `json:"emoji" binding:"required,max=16"`
}
