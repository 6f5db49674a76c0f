package profile

type UpdateProfileRequest struct {
	Name      string  `json:"name" binding:"omitempty,max=100"`
	About     *string `json:"about" binding:"omitempty,max=300"`
	AvatarURL *string `json:"avatar_url" binding:"omitempty,max=500"`
}

type UpdatePrivacyRequest struct {
	StatusAudience *string `json:"status_audience" binding:"omitempty,oneof=everyone nobody"`
	ReadReceipts   *bool   `json:"read_receipts"`
	ShowLastSeen   *bool   `json:"show_last_seen"`
}
